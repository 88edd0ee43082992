package ports

import (
	"context"
	"io"

	"github.com/smd-system/console/internal/core/domain"
)

// RegisterInput carries the fields forwarded to POST /api/auth/register.
type RegisterInput struct {
	Username string `json:"username" validate:"required"`
	Email    string `json:"email" validate:"required,email"`
	FullName string `json:"fullName" validate:"required"`
	Password string `json:"password" validate:"required,min=8"`
}

// SyllabusInput carries the editable syllabus fields for create and update.
type SyllabusInput struct {
	CourseCode        string `json:"courseCode" validate:"required"`
	CourseName        string `json:"courseName" validate:"required"`
	Description       string `json:"description,omitempty"`
	Objectives        string `json:"objectives,omitempty"`
	Prerequisites     string `json:"prerequisites,omitempty"`
	AssessmentMethods string `json:"assessmentMethods,omitempty"`
	Textbooks         string `json:"textbooks,omitempty"`
	References        string `json:"references,omitempty"`
	Credits           int    `json:"credits,omitempty" validate:"omitempty,gt=0"`
	Semester          string `json:"semester,omitempty"`
	AcademicYear      string `json:"academicYear,omitempty"`
}

// UserInput carries the fields for creating a user through the admin screen.
type UserInput struct {
	Username string   `json:"username" validate:"required"`
	Email    string   `json:"email" validate:"required,email"`
	FullName string   `json:"fullName" validate:"required"`
	Password string   `json:"password" validate:"required,min=8"`
	Roles    []string `json:"roles,omitempty"`
	Active   bool     `json:"active"`
}

// UserUpdateInput is a partial update; nil fields are left untouched by the
// backend. The active pointer is what the toggle-active action flips.
type UserUpdateInput struct {
	Email    *string  `json:"email,omitempty"`
	FullName *string  `json:"fullName,omitempty"`
	Password *string  `json:"password,omitempty"`
	Roles    []string `json:"roles,omitempty"`
	Active   *bool    `json:"active,omitempty"`
}

// ImportResult summarises a bulk user import as reported by the backend.
type ImportResult struct {
	Imported int      `json:"imported"`
	Skipped  int      `json:"skipped"`
	Errors   []string `json:"errors,omitempty"`
}

// AuthAPI is the session-lifecycle slice of the remote SMD backend.
type AuthAPI interface {
	Login(ctx context.Context, username, password string) (token string, user *domain.User, err error)
	Register(ctx context.Context, in RegisterInput) error
	Logout(ctx context.Context, token string) error
	Profile(ctx context.Context, token string) (*domain.User, error)
}

// SyllabusAPI covers the syllabus workflow endpoints. Every call carries the
// session's bearer token; authorization decisions stay server-side.
type SyllabusAPI interface {
	List(ctx context.Context, token string, status domain.SyllabusStatus) ([]domain.Syllabus, error)
	Mine(ctx context.Context, token string) ([]domain.Syllabus, error)
	PendingReview(ctx context.Context, token string) ([]domain.Syllabus, error)
	Search(ctx context.Context, token, keyword string) ([]domain.Syllabus, error)
	Get(ctx context.Context, token string, id int64) (*domain.Syllabus, error)
	Create(ctx context.Context, token string, in SyllabusInput) (*domain.Syllabus, error)
	Update(ctx context.Context, token string, id int64, in SyllabusInput) (*domain.Syllabus, error)
	Submit(ctx context.Context, token string, id int64) error
	Approve(ctx context.Context, token string, id int64, comments string) error
	Reject(ctx context.Context, token string, id int64, comments string) error
	Publish(ctx context.Context, token string, id int64) error
}

// UserAPI covers the user administration endpoints.
type UserAPI interface {
	List(ctx context.Context, token string) ([]domain.User, error)
	Get(ctx context.Context, token string, id int64) (*domain.User, error)
	Create(ctx context.Context, token string, in UserInput) (*domain.User, error)
	Update(ctx context.Context, token string, id int64, in UserUpdateInput) (*domain.User, error)
	Delete(ctx context.Context, token string, id int64) error
	Import(ctx context.Context, token, filename string, file io.Reader) (*ImportResult, error)
}

// NotificationAPI covers the notification endpoints.
type NotificationAPI interface {
	List(ctx context.Context, token string) ([]domain.Notification, error)
	Unread(ctx context.Context, token string) ([]domain.Notification, error)
	MarkRead(ctx context.Context, token string, id int64) error
	UnreadCount(ctx context.Context, token string) (int, error)
}
