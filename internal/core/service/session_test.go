package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

type stubAuthAPI struct {
	profileUser  *domain.User
	profileErr   error
	profileCalls int

	loginToken string
	loginUser  *domain.User
	loginErr   error

	logoutErr   error
	logoutCalls int
}

func (a *stubAuthAPI) Login(context.Context, string, string) (string, *domain.User, error) {
	return a.loginToken, a.loginUser, a.loginErr
}

func (a *stubAuthAPI) Register(context.Context, ports.RegisterInput) error { return nil }

func (a *stubAuthAPI) Logout(context.Context, string) error {
	a.logoutCalls++
	return a.logoutErr
}

func (a *stubAuthAPI) Profile(context.Context, string) (*domain.User, error) {
	a.profileCalls++
	return a.profileUser, a.profileErr
}

type memTokenStore struct {
	tokens map[string]string
	getErr error
}

func newMemTokenStore() *memTokenStore {
	return &memTokenStore{tokens: make(map[string]string)}
}

func (m *memTokenStore) Get(_ context.Context, sid string) (string, error) {
	if m.getErr != nil {
		return "", m.getErr
	}
	return m.tokens[sid], nil
}

func (m *memTokenStore) Set(_ context.Context, sid, token string) error {
	m.tokens[sid] = token
	return nil
}

func (m *memTokenStore) Delete(_ context.Context, sid string) error {
	delete(m.tokens, sid)
	return nil
}

func newStore(auth *stubAuthAPI, tokens *memTokenStore, demo bool) *SessionStore {
	return NewSessionStore(auth, tokens, demo, zerolog.Nop())
}

func TestSessionStore_Initialize_NoToken(t *testing.T) {
	auth := &stubAuthAPI{}
	store := newStore(auth, newMemTokenStore(), false)

	snap := store.Initialize(context.Background(), "sid1")

	if snap.Loading {
		t.Fatalf("expected loading=false")
	}
	if snap.User != nil {
		t.Fatalf("expected no user, got %+v", snap.User)
	}
	if auth.profileCalls != 0 {
		t.Fatalf("expected no profile call, got %d", auth.profileCalls)
	}
}

func TestSessionStore_Initialize_ProfileOK(t *testing.T) {
	auth := &stubAuthAPI{profileUser: &domain.User{ID: 3, Username: "hod1", Roles: []domain.Role{domain.RoleHOD}}}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "opaque-token"
	store := newStore(auth, tokens, false)

	snap := store.Initialize(context.Background(), "sid1")

	if snap.User == nil || snap.User.Username != "hod1" {
		t.Fatalf("expected hod1 user, got %+v", snap.User)
	}
	if snap.Loading {
		t.Fatalf("expected loading=false after resolution")
	}
	if !store.HasRole("sid1", domain.RoleHOD) {
		t.Fatalf("expected HOD membership")
	}
	if store.HasRole("sid1", domain.RolePrincipal) {
		t.Fatalf("unexpected PRINCIPAL membership")
	}
}

func TestSessionStore_Initialize_Profile401(t *testing.T) {
	auth := &stubAuthAPI{profileErr: domain.ErrUnauthorized}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "stale-token"
	store := newStore(auth, tokens, false)

	snap := store.Initialize(context.Background(), "sid1")

	if snap.User != nil {
		t.Fatalf("expected user absent")
	}
	if tokens.tokens["sid1"] != "" {
		t.Fatalf("expected token cleared, still %q", tokens.tokens["sid1"])
	}
}

func TestSessionStore_Initialize_ExpiredJWT(t *testing.T) {
	expired := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"username": "alice",
		"exp":      time.Now().Add(-time.Hour).Unix(),
	})
	signed, err := expired.SignedString([]byte("whatever"))
	if err != nil {
		t.Fatalf("sign token: %v", err)
	}

	auth := &stubAuthAPI{profileUser: &domain.User{Username: "alice"}}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = signed
	store := newStore(auth, tokens, false)

	snap := store.Initialize(context.Background(), "sid1")

	if snap.User != nil {
		t.Fatalf("expected user absent for expired token")
	}
	if auth.profileCalls != 0 {
		t.Fatalf("expired token should not reach the backend, got %d calls", auth.profileCalls)
	}
	if tokens.tokens["sid1"] != "" {
		t.Fatalf("expected expired token cleared")
	}
}

func TestSessionStore_Resolve_InitializesOnce(t *testing.T) {
	auth := &stubAuthAPI{profileUser: &domain.User{Username: "alice"}}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "tok"
	store := newStore(auth, tokens, false)

	store.Resolve(context.Background(), "sid1")
	store.Resolve(context.Background(), "sid1")

	if auth.profileCalls != 1 {
		t.Fatalf("expected a single profile fetch, got %d", auth.profileCalls)
	}
}

func TestSessionStore_Login_Backend(t *testing.T) {
	auth := &stubAuthAPI{
		loginToken: "fresh-token",
		loginUser:  &domain.User{ID: 9, Username: "aa1", Roles: []domain.Role{domain.RoleAcademicAffairs}},
	}
	tokens := newMemTokenStore()
	store := newStore(auth, tokens, false)

	user, err := store.Login(context.Background(), "sid1", "aa1", "secret")
	if err != nil {
		t.Fatalf("login: %v", err)
	}
	if user.Username != "aa1" {
		t.Fatalf("unexpected user %+v", user)
	}
	if tokens.tokens["sid1"] != "fresh-token" {
		t.Fatalf("token not persisted")
	}
	if store.Current("sid1").User == nil {
		t.Fatalf("session not populated")
	}
}

func TestSessionStore_Login_BackendRejects(t *testing.T) {
	auth := &stubAuthAPI{loginErr: domain.ErrInvalidCredentials}
	store := newStore(auth, newMemTokenStore(), false)

	if _, err := store.Login(context.Background(), "sid1", "x", "y"); !errors.Is(err, domain.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if store.Current("sid1").User != nil {
		t.Fatalf("session should stay logged out")
	}
}

func TestSessionStore_Login_DemoMode(t *testing.T) {
	auth := &stubAuthAPI{loginErr: errors.New("must not be called")}
	tokens := newMemTokenStore()
	store := newStore(auth, tokens, true)

	user, err := store.Login(context.Background(), "sid1", "ignored", "ignored")
	if err != nil {
		t.Fatalf("demo login: %v", err)
	}
	if user.PrimaryRole() != domain.RoleSystemAdmin {
		t.Fatalf("demo identity should be SYSTEM_ADMIN, got %q", user.PrimaryRole())
	}
	if tokens.tokens["sid1"] != "" {
		t.Fatalf("demo mode must not persist a token")
	}
}

func TestSessionStore_Logout_ServerFailureIgnored(t *testing.T) {
	auth := &stubAuthAPI{
		profileUser: &domain.User{Username: "alice"},
		logoutErr:   errors.New("timeout"),
	}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "tok"
	store := newStore(auth, tokens, false)
	store.Initialize(context.Background(), "sid1")

	store.Logout(context.Background(), "sid1")

	if auth.logoutCalls != 1 {
		t.Fatalf("expected one server logout attempt, got %d", auth.logoutCalls)
	}
	if store.Current("sid1").User != nil {
		t.Fatalf("user not cleared")
	}
	if tokens.tokens["sid1"] != "" {
		t.Fatalf("token not cleared")
	}
}

func TestSessionStore_UpdateUser(t *testing.T) {
	auth := &stubAuthAPI{profileUser: &domain.User{Username: "alice", FullName: "Alice"}}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "tok"
	store := newStore(auth, tokens, false)
	store.Initialize(context.Background(), "sid1")

	store.UpdateUser("sid1", domain.User{FullName: "Alice Liddell"})
	if got := store.Current("sid1").User.FullName; got != "Alice Liddell" {
		t.Fatalf("merge failed: %q", got)
	}

	// No-op when the session has no user.
	store.UpdateUser("other", domain.User{FullName: "nobody"})
	if store.Current("other").User != nil {
		t.Fatalf("update on empty session must not create a user")
	}
}

func TestSessionStore_Invalidate_Idempotent(t *testing.T) {
	auth := &stubAuthAPI{profileUser: &domain.User{Username: "alice"}}
	tokens := newMemTokenStore()
	tokens.tokens["sid1"] = "tok"
	store := newStore(auth, tokens, false)
	store.Initialize(context.Background(), "sid1")

	store.Invalidate(context.Background(), "sid1")
	store.Invalidate(context.Background(), "sid1")

	if store.Current("sid1").User != nil || tokens.tokens["sid1"] != "" {
		t.Fatalf("session not cleared")
	}
}
