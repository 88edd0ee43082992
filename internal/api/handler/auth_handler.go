package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// AuthHandler serves the login screen's actions and the session endpoint the
// page shell polls after navigation.
type AuthHandler struct {
	sessions ports.SessionService
	auditor  ports.AuditRecorder
}

func NewAuthHandler(sessions ports.SessionService, auditor ports.AuditRecorder) *AuthHandler {
	return &AuthHandler{sessions: sessions, auditor: auditor}
}

type loginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// sessionResponse is what the shell needs to draw the chrome: the user and
// the navigation list for their primary role.
type sessionResponse struct {
	User       *domain.User     `json:"user"`
	Navigation []domain.NavItem `json:"navigation"`
}

// Login authenticates the console session.
//
// @Summary      Log in
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      loginRequest  true  "Credentials"
// @Success      200   {object}  sessionResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Router       /login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req loginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	sid := appmw.SessionID(c)
	user, err := h.sessions.Login(c.Request().Context(), sid, req.Username, req.Password)
	if err != nil {
		return err
	}

	// The login route sits outside the guard, so the actor comes from the
	// login result rather than request context.
	entry := audit(c, "session.login", user.Username, "")
	entry.Actor = user.Username
	entry.Role = user.PrimaryRole()
	h.auditor.Record(entry)

	return c.JSON(http.StatusOK, sessionResponse{
		User:       user,
		Navigation: domain.NavigationFor(user.PrimaryRole()),
	})
}

// Logout ends the console session. Always succeeds from the caller's point
// of view, whatever the backend said.
//
// @Summary      Log out
// @Tags         session
// @Produce      json
// @Success      204  "session cleared"
// @Router       /logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	sid := appmw.SessionID(c)

	if user := appmw.User(c); user != nil {
		h.auditor.Record(audit(c, "session.logout", user.Username, ""))
	}

	h.sessions.Logout(c.Request().Context(), sid)
	return c.NoContent(http.StatusNoContent)
}

// Register forwards an account registration. The current session stays as it
// was: registering is not logging in.
//
// @Summary      Register a new account
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      ports.RegisterInput  true  "Registration details"
// @Success      201   {object}  map[string]string
// @Failure      400   {object}  map[string]string
// @Router       /register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req ports.RegisterInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	if err := h.sessions.Register(c.Request().Context(), req); err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, map[string]string{"message": "registered"})
}

// Session reports the current session state and navigation. The shell calls
// it after every route change.
//
// @Summary      Current session
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session [get]
func (h *AuthHandler) Session(c echo.Context) error {
	user := appmw.User(c)
	return c.JSON(http.StatusOK, sessionResponse{
		User:       user,
		Navigation: domain.NavigationFor(user.PrimaryRole()),
	})
}

// Refresh resynchronises the session's user with server state.
//
// @Summary      Refresh the session profile
// @Tags         session
// @Produce      json
// @Success      200  {object}  sessionResponse
// @Router       /session/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	sid := appmw.SessionID(c)
	snap := h.sessions.RefreshUser(c.Request().Context(), sid)
	return c.JSON(http.StatusOK, sessionResponse{
		User:       snap.User,
		Navigation: domain.NavigationFor(snap.User.PrimaryRole()),
	})
}

// UpdateProfile merges an already-persisted profile change into the session.
// Purely local; callers must have saved the change through the users API
// first.
//
// @Summary      Merge a profile change into the session
// @Tags         session
// @Accept       json
// @Produce      json
// @Param        body  body      domain.User  true  "Partial user"
// @Success      200   {object}  sessionResponse
// @Router       /session/profile [put]
func (h *AuthHandler) UpdateProfile(c echo.Context) error {
	var partial domain.User
	if err := c.Bind(&partial); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	sid := appmw.SessionID(c)
	h.sessions.UpdateUser(sid, partial)

	snap := h.sessions.Current(sid)
	return c.JSON(http.StatusOK, sessionResponse{
		User:       snap.User,
		Navigation: domain.NavigationFor(snap.User.PrimaryRole()),
	})
}
