package middleware

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

const (
	// SessionCookie carries the console session id. The bearer token itself
	// never leaves the server; the cookie is an opaque handle to it.
	SessionCookie = "smd_sid"

	// LoginPath is the one route reachable without a user.
	LoginPath = "/login"

	ctxSessionID = "sid"
	ctxUser      = "user"
)

// Session ensures every request carries a console session id, issuing a new
// cookie on first contact. Applied globally, before the guard.
func Session() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			cookie, err := c.Cookie(SessionCookie)
			sid := ""
			if err == nil && cookie.Value != "" {
				sid = cookie.Value
			} else {
				sid = uuid.NewString()
				c.SetCookie(&http.Cookie{
					Name:     SessionCookie,
					Value:    sid,
					Path:     "/",
					HttpOnly: true,
					SameSite: http.SameSiteLaxMode,
				})
			}
			c.Set(ctxSessionID, sid)
			return next(c)
		}
	}
}

// Guard is the route guard: on every navigation it resolves the session and
// decides between three outcomes.
//
//   - Session still resolving: render the loading placeholder.
//   - No user, login route: let the login page through with no chrome.
//   - No user, any other route: redirect to the login route. The old page
//     may flash before the redirect lands; that is accepted behaviour.
//   - User present: stash it in context and render the page inside the
//     authenticated chrome.
//
// The guard also centralises inbound 401 handling: when a page controller's
// upstream call comes back unauthorized, the session is invalidated exactly
// once and the browser is sent to the login route, unless it is already
// there (which would loop).
func Guard(sessions ports.SessionService) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			sid := SessionID(c)
			snap := sessions.Resolve(c.Request().Context(), sid)

			if snap.Loading {
				return c.JSON(http.StatusOK, map[string]string{"state": "loading"})
			}

			atLogin := c.Path() == LoginPath

			if snap.User == nil && !atLogin {
				return c.Redirect(http.StatusFound, LoginPath)
			}

			if snap.User != nil {
				c.Set(ctxUser, snap.User)
			}

			err := next(c)
			if err != nil && errors.Is(err, domain.ErrUnauthorized) {
				sessions.Invalidate(c.Request().Context(), sid)
				if !atLogin {
					return c.Redirect(http.StatusFound, LoginPath)
				}
			}
			return err
		}
	}
}

// RequireRole gates a route group on role membership. Backend authorization
// still applies; this only keeps users out of chrome they cannot use.
func RequireRole(allowed ...domain.Role) echo.MiddlewareFunc {
	set := make(map[domain.Role]struct{}, len(allowed))
	for _, r := range allowed {
		set[r] = struct{}{}
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user := User(c)
			if user == nil {
				return domain.ErrNoSession
			}
			for _, r := range user.Roles {
				if _, ok := set[r]; ok {
					return next(c)
				}
			}
			return domain.ErrForbidden
		}
	}
}

// SessionID extracts the console session id injected by Session.
func SessionID(c echo.Context) string {
	sid, _ := c.Get(ctxSessionID).(string)
	return sid
}

// User extracts the resolved user injected by Guard, or nil.
func User(c echo.Context) *domain.User {
	user, _ := c.Get(ctxUser).(*domain.User)
	return user
}
