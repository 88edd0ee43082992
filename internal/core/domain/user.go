package domain

import (
	"encoding/json"
	"fmt"
)

// Role is a string tag determining which navigation set and which
// backend-enforced permissions a user has. The set below is fixed, but the
// backend may introduce new roles at any time; unknown values are carried
// through verbatim.
type Role string

const (
	RoleSystemAdmin     Role = "SYSTEM_ADMIN"
	RoleHOD             Role = "HOD"
	RoleLecturer        Role = "LECTURER"
	RoleStudent         Role = "STUDENT"
	RoleAcademicAffairs Role = "ACADEMIC_AFFAIRS"
	RolePrincipal       Role = "PRINCIPAL"
)

// UnmarshalJSON accepts both role representations the backend is known to
// emit: a plain string ("HOD") or an object ({"name":"HOD","description":…}).
// Normalising at the decode boundary means the rest of the codebase only
// ever sees Role values.
func (r *Role) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*r = Role(s)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &obj); err != nil {
		return fmt.Errorf("role: unsupported shape %s", data)
	}
	*r = Role(obj.Name)
	return nil
}

// User models an authenticated actor as reported by the profile endpoint.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email,omitempty"`
	FullName string `json:"fullName,omitempty"`
	Roles    []Role `json:"roles,omitempty"`
	Active   bool   `json:"active"`
}

// PrimaryRole is the role used for navigation: the first element of the
// roles sequence, or empty when the user has none. Role order comes straight
// from the backend response; nothing guarantees the first entry is the most
// privileged one.
func (u *User) PrimaryRole() Role {
	if u == nil || len(u.Roles) == 0 {
		return ""
	}
	return u.Roles[0]
}

// HasRole reports whether role appears anywhere in the user's role set.
func (u *User) HasRole(role Role) bool {
	if u == nil {
		return false
	}
	for _, r := range u.Roles {
		if r == role {
			return true
		}
	}
	return false
}

// Merge shallow-merges non-zero fields of partial into u. Callers are
// expected to have already persisted the change; Merge is purely local.
func (u *User) Merge(partial User) {
	if partial.Username != "" {
		u.Username = partial.Username
	}
	if partial.Email != "" {
		u.Email = partial.Email
	}
	if partial.FullName != "" {
		u.FullName = partial.FullName
	}
	if partial.Roles != nil {
		u.Roles = partial.Roles
	}
}
