package ports

import (
	"context"

	"github.com/smd-system/console/internal/core/domain"
)

// TokenStore persists bearer tokens per console session id. Get returns an
// empty string (no error) when no token is stored.
type TokenStore interface {
	Get(ctx context.Context, sid string) (string, error)
	Set(ctx context.Context, sid, token string) error
	Delete(ctx context.Context, sid string) error
}

// Snapshot is the externally visible state of one console session:
// who is logged in, and whether a profile resolution is in flight.
type Snapshot struct {
	User    *domain.User
	Loading bool
}

// SessionService is the single source of truth for "who is logged in" for a
// given console session. The User field is owned exclusively by the
// implementation; every other component mutates it only through these
// operations.
type SessionService interface {
	// Initialize resolves the session from its persisted token, fetching the
	// profile when one exists. Every failure degrades silently to logged out.
	Initialize(ctx context.Context, sid string) Snapshot

	// Current returns the session state without any network activity.
	Current(sid string) Snapshot

	// Resolve returns the session state, running Initialize the first time a
	// session id is seen. Called by the route guard on every navigation.
	Resolve(ctx context.Context, sid string) Snapshot

	// Login authenticates against the backend (or fabricates the demo
	// identity when demo mode is on) and persists the issued token.
	Login(ctx context.Context, sid, username, password string) (*domain.User, error)

	// Register forwards to the registration endpoint; the current session is
	// not affected.
	Register(ctx context.Context, in RegisterInput) error

	// Logout always succeeds locally: the server call's failure is ignored,
	// the token and user are cleared regardless.
	Logout(ctx context.Context, sid string)

	// RefreshUser re-fetches the profile to resynchronise with server state.
	RefreshUser(ctx context.Context, sid string) Snapshot

	// UpdateUser shallow-merges partial into the session's user, if present.
	// Purely local; no backend call.
	UpdateUser(sid string, partial domain.User)

	// HasRole reports role membership for the session's user.
	HasRole(sid string, role domain.Role) bool

	// Token returns the persisted bearer token for outbound calls, or empty.
	Token(ctx context.Context, sid string) string

	// Invalidate clears the token and user after an upstream 401. Idempotent:
	// repeated calls for the same session are harmless.
	Invalidate(ctx context.Context, sid string)
}
