package handler

import (
	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
)

// currentUser extracts the user injected by the route guard. A nil user here
// means a handler was mounted outside the guarded group, which is a wiring
// bug; fail closed.
func currentUser(c echo.Context) (*domain.User, error) {
	user := appmw.User(c)
	if user == nil {
		return nil, domain.ErrNoSession
	}
	return user, nil
}

// audit builds the entry skeleton for a mutating action performed by the
// current user.
func audit(c echo.Context, action, target, detail string) domain.AuditEntry {
	entry := domain.AuditEntry{Action: action, Target: target, Detail: detail}
	if user := appmw.User(c); user != nil {
		entry.Actor = user.Username
		entry.Role = user.PrimaryRole()
	}
	return entry
}
