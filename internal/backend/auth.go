package backend

import (
	"context"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// AuthService covers the session-lifecycle endpoints.
type AuthService struct {
	c *Client
}

type loginResponse struct {
	Token   string       `json:"token"`
	Type    string       `json:"type,omitempty"`
	Message string       `json:"message,omitempty"`
	User    *domain.User `json:"user,omitempty"`
}

// Login calls POST /api/auth/login. A rejected credential pair maps to
// domain.ErrInvalidCredentials rather than the generic 4xx sentinel so the
// login screen can phrase it properly.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, *domain.User, error) {
	var out loginResponse
	resp, err := s.c.request(ctx, "").
		SetBody(map[string]string{"username": username, "password": password}).
		SetResult(&out).
		Post("/api/auth/login")

	if err := s.c.check("auth", resp, err); err != nil {
		// The Spring backend answers 400 for bad credentials, older builds 401.
		if resp != nil && (resp.StatusCode() == 400 || resp.StatusCode() == 401) {
			return "", nil, domain.ErrInvalidCredentials
		}
		return "", nil, err
	}
	return out.Token, out.User, nil
}

// Register calls POST /api/auth/register. The caller's session is unaffected.
func (s *AuthService) Register(ctx context.Context, in ports.RegisterInput) error {
	resp, err := s.c.request(ctx, "").
		SetBody(in).
		Post("/api/auth/register")
	return s.c.check("auth", resp, err)
}

// Logout calls POST /api/auth/logout with the session's token.
func (s *AuthService) Logout(ctx context.Context, token string) error {
	resp, err := s.c.request(ctx, token).Post("/api/auth/logout")
	return s.c.check("auth", resp, err)
}

// Profile calls GET /api/users/profile and returns the normalised user.
func (s *AuthService) Profile(ctx context.Context, token string) (*domain.User, error) {
	var out domain.User
	resp, err := s.c.request(ctx, token).
		SetResult(&out).
		Get("/api/users/profile")

	if err := s.c.check("auth", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
