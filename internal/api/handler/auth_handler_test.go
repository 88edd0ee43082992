package handler

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/smd-system/console/internal/core/domain"
)

func TestAuthHandler_Login_ReturnsUserAndNavigation(t *testing.T) {
	sessions := &stubSessions{loginUser: &domain.User{
		ID:       1,
		Username: "admin",
		Roles:    []domain.Role{domain.RoleSystemAdmin},
	}}
	rec := &memRecorder{}
	h := NewAuthHandler(sessions, rec)

	c, resp := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"secret"}`)
	if err := h.Login(c); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}

	var out sessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if out.User == nil || out.User.Username != "admin" {
		t.Fatalf("user = %+v", out.User)
	}
	if len(out.Navigation) == 0 {
		t.Fatal("admin login must return navigation items")
	}
	if out.Navigation[0].Label != "Dashboard" {
		t.Fatalf("first nav item = %+v, want Dashboard", out.Navigation[0])
	}

	actions := rec.actions()
	if len(actions) != 1 || actions[0] != "session.login" {
		t.Fatalf("audit actions = %v", actions)
	}
}

func TestAuthHandler_Login_InvalidCredentials(t *testing.T) {
	sessions := &stubSessions{loginErr: domain.ErrInvalidCredentials}
	h := NewAuthHandler(sessions, &memRecorder{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login",
		`{"username":"admin","password":"wrong"}`)
	if err := h.Login(c); err != domain.ErrInvalidCredentials {
		t.Fatalf("err = %v, want ErrInvalidCredentials", err)
	}
}

func TestAuthHandler_Login_MissingFields(t *testing.T) {
	sessions := &stubSessions{}
	h := NewAuthHandler(sessions, &memRecorder{})

	c, _ := newTestContext(t, http.MethodPost, "/api/auth/login", `{"username":"admin"}`)
	err := h.Login(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("err = %v, want 400 HTTPError", err)
	}
	if sessions.loginCalls != 0 {
		t.Fatal("invalid payload must not reach the session service")
	}
}

func TestAuthHandler_Session_ReturnsNavigationForRole(t *testing.T) {
	h := NewAuthHandler(&stubSessions{}, &memRecorder{})

	c, resp := newTestContext(t, http.MethodGet, "/api/session", "")
	c.Set("user", &domain.User{Username: "lect", Roles: []domain.Role{domain.RoleLecturer}})

	if err := h.Session(c); err != nil {
		t.Fatalf("Session returned error: %v", err)
	}

	var out sessionResponse
	if err := json.Unmarshal(resp.Body.Bytes(), &out); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(out.Navigation) == 0 {
		t.Fatal("lecturer session must include navigation")
	}
	for _, item := range out.Navigation {
		if item.Path == "/admin/users" {
			t.Fatal("lecturer navigation must not include admin screens")
		}
	}
}
