package backend

import (
	"context"
	"io"
	"strconv"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// UserService covers the user administration endpoints.
type UserService struct {
	c *Client
}

func (s *UserService) List(ctx context.Context, token string) ([]domain.User, error) {
	var out []domain.User
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/users")
	if err := s.c.check("users", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *UserService) Get(ctx context.Context, token string, id int64) (*domain.User, error) {
	var out domain.User
	resp, err := s.c.request(ctx, token).
		SetResult(&out).
		Get("/api/users/" + strconv.FormatInt(id, 10))
	if err := s.c.check("users", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Create(ctx context.Context, token string, in ports.UserInput) (*domain.User, error) {
	var out domain.User
	resp, err := s.c.request(ctx, token).
		SetBody(in).
		SetResult(&out).
		Post("/api/users")
	if err := s.c.check("users", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Update(ctx context.Context, token string, id int64, in ports.UserUpdateInput) (*domain.User, error) {
	var out domain.User
	resp, err := s.c.request(ctx, token).
		SetBody(in).
		SetResult(&out).
		Put("/api/users/" + strconv.FormatInt(id, 10))
	if err := s.c.check("users", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *UserService) Delete(ctx context.Context, token string, id int64) error {
	resp, err := s.c.request(ctx, token).
		Delete("/api/users/" + strconv.FormatInt(id, 10))
	return s.c.check("users", resp, err)
}

// Import streams the uploaded CSV through to POST /api/users/import as
// multipart form data. The console never parses the file; line handling is
// the backend's concern.
func (s *UserService) Import(ctx context.Context, token, filename string, file io.Reader) (*ports.ImportResult, error) {
	var out ports.ImportResult
	resp, err := s.c.request(ctx, token).
		SetFileReader("file", filename, file).
		SetResult(&out).
		Post("/api/users/import")
	if err := s.c.check("users", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}
