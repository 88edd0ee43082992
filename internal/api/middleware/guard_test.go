package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

type stubSessions struct {
	snap        ports.Snapshot
	invalidated int
}

func (s *stubSessions) Initialize(context.Context, string) ports.Snapshot { return s.snap }
func (s *stubSessions) Current(string) ports.Snapshot                     { return s.snap }
func (s *stubSessions) Resolve(context.Context, string) ports.Snapshot    { return s.snap }
func (s *stubSessions) Register(context.Context, ports.RegisterInput) error {
	return nil
}
func (s *stubSessions) Logout(context.Context, string)                     {}
func (s *stubSessions) RefreshUser(context.Context, string) ports.Snapshot { return s.snap }
func (s *stubSessions) UpdateUser(string, domain.User)                     {}
func (s *stubSessions) HasRole(string, domain.Role) bool                   { return false }
func (s *stubSessions) Token(context.Context, string) string               { return "" }
func (s *stubSessions) Login(context.Context, string, string, string) (*domain.User, error) {
	return nil, nil
}

func (s *stubSessions) Invalidate(context.Context, string) {
	s.invalidated++
	s.snap = ports.Snapshot{}
}

func guardContext(t *testing.T, path string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.SetPath(path)
	c.Set(ctxSessionID, "sid1")
	return c, rec
}

func TestGuard_LoadingPlaceholder(t *testing.T) {
	sessions := &stubSessions{snap: ports.Snapshot{Loading: true}}
	c, rec := guardContext(t, "/admin/users")

	called := false
	h := Guard(sessions)(func(c echo.Context) error {
		called = true
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if called {
		t.Fatalf("page must not render while loading")
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 placeholder, got %d", rec.Code)
	}
}

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	sessions := &stubSessions{}
	c, rec := guardContext(t, "/admin/users")

	h := Guard(sessions)(func(c echo.Context) error {
		t.Fatalf("page must not render for anonymous user")
		return nil
	})

	if err := h(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	if loc := rec.Header().Get("Location"); loc != LoginPath {
		t.Fatalf("redirect to %q, want %q", loc, LoginPath)
	}
}

func TestGuard_AnonymousAtLoginRenders(t *testing.T) {
	sessions := &stubSessions{}
	c, _ := guardContext(t, LoginPath)

	called := false
	h := Guard(sessions)(func(c echo.Context) error {
		called = true
		if User(c) != nil {
			t.Fatalf("login page should have no user")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
	if !called {
		t.Fatalf("login page not rendered")
	}
}

func TestGuard_AuthenticatedRenders(t *testing.T) {
	user := &domain.User{Username: "admin", Roles: []domain.Role{domain.RoleSystemAdmin}}
	sessions := &stubSessions{snap: ports.Snapshot{User: user}}
	c, _ := guardContext(t, "/admin/users")

	h := Guard(sessions)(func(c echo.Context) error {
		if User(c) != user {
			t.Fatalf("user not injected")
		}
		return c.NoContent(http.StatusOK)
	})

	if err := h(c); err != nil {
		t.Fatalf("guard: %v", err)
	}
}

func TestGuard_Upstream401InvalidatesOnceAndRedirects(t *testing.T) {
	user := &domain.User{Username: "admin"}
	sessions := &stubSessions{snap: ports.Snapshot{User: user}}
	c, rec := guardContext(t, "/admin/users")

	h := Guard(sessions)(func(c echo.Context) error {
		return domain.ErrUnauthorized
	})

	if err := h(c); err != nil {
		t.Fatalf("guard should swallow the 401 into a redirect, got %v", err)
	}
	if sessions.invalidated != 1 {
		t.Fatalf("invalidate called %d times, want 1", sessions.invalidated)
	}
	if rec.Code != http.StatusFound || rec.Header().Get("Location") != LoginPath {
		t.Fatalf("expected redirect to login, got %d %q", rec.Code, rec.Header().Get("Location"))
	}
}

func TestGuard_Upstream401AtLoginDoesNotLoop(t *testing.T) {
	sessions := &stubSessions{}
	c, rec := guardContext(t, LoginPath)

	h := Guard(sessions)(func(c echo.Context) error {
		return domain.ErrUnauthorized
	})

	err := h(c)
	if err == nil {
		t.Fatalf("expected error to propagate at login route")
	}
	if rec.Code == http.StatusFound {
		t.Fatalf("must not redirect while already on the login route")
	}
}

func TestRequireRole(t *testing.T) {
	admin := &domain.User{Roles: []domain.Role{domain.RoleSystemAdmin}}
	lecturer := &domain.User{Roles: []domain.Role{domain.RoleLecturer}}

	run := func(user *domain.User) error {
		e := echo.New()
		req := httptest.NewRequest(http.MethodGet, "/admin/users", nil)
		c := e.NewContext(req, httptest.NewRecorder())
		if user != nil {
			c.Set(ctxUser, user)
		}
		h := RequireRole(domain.RoleSystemAdmin)(func(c echo.Context) error {
			return c.NoContent(http.StatusOK)
		})
		return h(c)
	}

	if err := run(admin); err != nil {
		t.Fatalf("admin should pass: %v", err)
	}
	if err := run(lecturer); err != domain.ErrForbidden {
		t.Fatalf("lecturer should be forbidden, got %v", err)
	}
	if err := run(nil); err != domain.ErrNoSession {
		t.Fatalf("missing session should be ErrNoSession, got %v", err)
	}
}
