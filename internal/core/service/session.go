package service

import (
	"context"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/api/metrics"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// SessionStore implements ports.SessionService. It keeps the resolved user
// in memory per console session and persists only the bearer token through
// the TokenStore, so a console restart re-resolves every session from its
// token exactly like a fresh page load.
type SessionStore struct {
	auth   ports.AuthAPI
	tokens ports.TokenStore
	log    zerolog.Logger

	// demoMode preserves the original console's credential-free login for
	// trusted internal deployments. Off by default; see config.DemoMode.
	demoMode bool

	mu       sync.RWMutex
	sessions map[string]*sessionState
}

type sessionState struct {
	user    *domain.User
	loading bool
}

func NewSessionStore(auth ports.AuthAPI, tokens ports.TokenStore, demoMode bool, log zerolog.Logger) *SessionStore {
	return &SessionStore{
		auth:     auth,
		tokens:   tokens,
		demoMode: demoMode,
		log:      log,
		sessions: make(map[string]*sessionState),
	}
}

// Initialize resolves a session from its persisted token. No token means no
// network call; any failure along the way clears the token and leaves the
// session logged out. Nothing beyond the absence of a user is surfaced.
func (s *SessionStore) Initialize(ctx context.Context, sid string) ports.Snapshot {
	s.ensure(sid)

	token, err := s.tokens.Get(ctx, sid)
	if err != nil || token == "" {
		s.setUser(sid, nil)
		return s.Current(sid)
	}

	s.setLoading(sid, true)

	if tokenExpired(token) {
		s.Invalidate(ctx, sid)
		return s.Current(sid)
	}

	user, err := s.auth.Profile(ctx, token)
	if err != nil {
		s.log.Debug().Err(err).Str("sid", sid).Msg("profile resolution failed, clearing token")
		s.Invalidate(ctx, sid)
		return s.Current(sid)
	}

	s.setUser(sid, user)
	return s.Current(sid)
}

// Resolve is Initialize-on-first-sight: sessions already resolved are
// returned as-is, so the route guard does not refetch the profile on every
// navigation.
func (s *SessionStore) Resolve(ctx context.Context, sid string) ports.Snapshot {
	s.mu.RLock()
	_, known := s.sessions[sid]
	s.mu.RUnlock()

	if known {
		return s.Current(sid)
	}
	return s.Initialize(ctx, sid)
}

func (s *SessionStore) Current(sid string) ports.Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()

	st, ok := s.sessions[sid]
	if !ok {
		return ports.Snapshot{}
	}
	return ports.Snapshot{User: st.user, Loading: st.loading}
}

// Login authenticates and populates the session. In demo mode it fabricates
// the fixed administrative identity without touching the backend, which is
// the original console's (flagged) behaviour preserved behind an explicit
// switch.
func (s *SessionStore) Login(ctx context.Context, sid, username, password string) (*domain.User, error) {
	if s.demoMode {
		user := &domain.User{
			ID:       1,
			Username: "admin",
			Email:    "admin@smd.com",
			FullName: "Admin",
			Roles:    []domain.Role{domain.RoleSystemAdmin},
			Active:   true,
		}
		s.setUser(sid, user)
		metrics.LoginsTotal.WithLabelValues("demo", "ok").Inc()
		return user, nil
	}

	s.setLoading(sid, true)

	token, user, err := s.auth.Login(ctx, username, password)
	if err != nil {
		s.setUser(sid, nil)
		metrics.LoginsTotal.WithLabelValues("backend", "error").Inc()
		return nil, err
	}

	if err := s.tokens.Set(ctx, sid, token); err != nil {
		s.setUser(sid, nil)
		metrics.LoginsTotal.WithLabelValues("backend", "error").Inc()
		return nil, err
	}

	// Some backend builds return only the token; resolve the profile then.
	if user == nil {
		user, err = s.auth.Profile(ctx, token)
		if err != nil {
			s.Invalidate(ctx, sid)
			metrics.LoginsTotal.WithLabelValues("backend", "error").Inc()
			return nil, err
		}
	}

	s.setUser(sid, user)
	metrics.LoginsTotal.WithLabelValues("backend", "ok").Inc()
	return user, nil
}

// Register forwards to the registration endpoint. The current session is
// deliberately untouched: registering does not log anyone in.
func (s *SessionStore) Register(ctx context.Context, in ports.RegisterInput) error {
	return s.auth.Register(ctx, in)
}

// Logout must always succeed locally. The backend call is best-effort; its
// failure is logged and ignored.
func (s *SessionStore) Logout(ctx context.Context, sid string) {
	if token, err := s.tokens.Get(ctx, sid); err == nil && token != "" {
		if err := s.auth.Logout(ctx, token); err != nil {
			s.log.Debug().Err(err).Str("sid", sid).Msg("server logout failed, clearing locally anyway")
		}
	}
	s.Invalidate(ctx, sid)
}

func (s *SessionStore) RefreshUser(ctx context.Context, sid string) ports.Snapshot {
	return s.Initialize(ctx, sid)
}

func (s *SessionStore) UpdateUser(sid string, partial domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sid]
	if !ok || st.user == nil {
		return
	}
	st.user.Merge(partial)
}

func (s *SessionStore) HasRole(sid string, role domain.Role) bool {
	return s.Current(sid).User.HasRole(role)
}

func (s *SessionStore) Token(ctx context.Context, sid string) string {
	token, err := s.tokens.Get(ctx, sid)
	if err != nil {
		return ""
	}
	return token
}

// Invalidate clears the persisted token and the in-memory user. Deleting an
// absent token is a no-op, so concurrent 401s collapse into one effective
// clear.
func (s *SessionStore) Invalidate(ctx context.Context, sid string) {
	if err := s.tokens.Delete(ctx, sid); err != nil {
		s.log.Warn().Err(err).Str("sid", sid).Msg("token delete failed")
	}
	s.setUser(sid, nil)
	metrics.SessionInvalidationsTotal.Inc()
}

func (s *SessionStore) ensure(sid string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.sessions[sid]; !ok {
		s.sessions[sid] = &sessionState{loading: true}
	}
}

func (s *SessionStore) setUser(sid string, user *domain.User) {
	s.mu.Lock()
	defer s.mu.Unlock()

	st, ok := s.sessions[sid]
	if !ok {
		st = &sessionState{}
		s.sessions[sid] = st
	}
	st.user = user
	st.loading = false
}

func (s *SessionStore) setLoading(sid string, loading bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if st, ok := s.sessions[sid]; ok {
		st.loading = loading
	}
}

// tokenExpired inspects the token's exp claim without verifying the
// signature; verification is the backend's job. Tokens that do not parse as
// JWTs are treated as live opaque credentials and left for the backend to
// judge.
func tokenExpired(token string) bool {
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return false
	}
	return exp.Before(time.Now())
}
