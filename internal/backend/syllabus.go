package backend

import (
	"context"
	"strconv"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// SyllabusService covers the syllabus workflow endpoints. The console only
// triggers transitions; whether a submit/approve/reject/publish is legal for
// the current status is decided entirely by the backend.
type SyllabusService struct {
	c *Client
}

func (s *SyllabusService) List(ctx context.Context, token string, status domain.SyllabusStatus) ([]domain.Syllabus, error) {
	var out []domain.Syllabus
	req := s.c.request(ctx, token).SetResult(&out)
	if status != "" {
		req.SetQueryParam("status", string(status))
	}
	resp, err := req.Get("/api/syllabi")
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SyllabusService) Mine(ctx context.Context, token string) ([]domain.Syllabus, error) {
	var out []domain.Syllabus
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/syllabi/my")
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SyllabusService) PendingReview(ctx context.Context, token string) ([]domain.Syllabus, error) {
	var out []domain.Syllabus
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/syllabi/pending-review")
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SyllabusService) Search(ctx context.Context, token, keyword string) ([]domain.Syllabus, error) {
	var out []domain.Syllabus
	resp, err := s.c.request(ctx, token).
		SetQueryParam("keyword", keyword).
		SetResult(&out).
		Get("/api/syllabi/search")
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SyllabusService) Get(ctx context.Context, token string, id int64) (*domain.Syllabus, error) {
	var out domain.Syllabus
	resp, err := s.c.request(ctx, token).
		SetResult(&out).
		Get("/api/syllabi/" + strconv.FormatInt(id, 10))
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SyllabusService) Create(ctx context.Context, token string, in ports.SyllabusInput) (*domain.Syllabus, error) {
	var out domain.Syllabus
	resp, err := s.c.request(ctx, token).
		SetBody(in).
		SetResult(&out).
		Post("/api/syllabi")
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SyllabusService) Update(ctx context.Context, token string, id int64, in ports.SyllabusInput) (*domain.Syllabus, error) {
	var out domain.Syllabus
	resp, err := s.c.request(ctx, token).
		SetBody(in).
		SetResult(&out).
		Put("/api/syllabi/" + strconv.FormatInt(id, 10))
	if err := s.c.check("syllabi", resp, err); err != nil {
		return nil, err
	}
	return &out, nil
}

func (s *SyllabusService) Submit(ctx context.Context, token string, id int64) error {
	resp, err := s.c.request(ctx, token).
		Post("/api/syllabi/" + strconv.FormatInt(id, 10) + "/submit")
	return s.c.check("syllabi", resp, err)
}

// Approve and Reject carry reviewer comments as a query parameter, matching
// the backend contract (not a JSON body).
func (s *SyllabusService) Approve(ctx context.Context, token string, id int64, comments string) error {
	req := s.c.request(ctx, token)
	if comments != "" {
		req.SetQueryParam("comments", comments)
	}
	resp, err := req.Post("/api/syllabi/" + strconv.FormatInt(id, 10) + "/approve")
	return s.c.check("syllabi", resp, err)
}

func (s *SyllabusService) Reject(ctx context.Context, token string, id int64, comments string) error {
	resp, err := s.c.request(ctx, token).
		SetQueryParam("comments", comments).
		Post("/api/syllabi/" + strconv.FormatInt(id, 10) + "/reject")
	return s.c.check("syllabi", resp, err)
}

func (s *SyllabusService) Publish(ctx context.Context, token string, id int64) error {
	resp, err := s.c.request(ctx, token).
		Post("/api/syllabi/" + strconv.FormatInt(id, 10) + "/publish")
	return s.c.check("syllabi", resp, err)
}
