package backend

import (
	"context"
	"strconv"

	"github.com/smd-system/console/internal/core/domain"
)

// NotificationService covers the notification endpoints.
type NotificationService struct {
	c *Client
}

func (s *NotificationService) List(ctx context.Context, token string) ([]domain.Notification, error) {
	var out []domain.Notification
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/notifications")
	if err := s.c.check("notifications", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationService) Unread(ctx context.Context, token string) ([]domain.Notification, error) {
	var out []domain.Notification
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/notifications/unread")
	if err := s.c.check("notifications", resp, err); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *NotificationService) MarkRead(ctx context.Context, token string, id int64) error {
	resp, err := s.c.request(ctx, token).
		Put("/api/notifications/" + strconv.FormatInt(id, 10) + "/read")
	return s.c.check("notifications", resp, err)
}

func (s *NotificationService) UnreadCount(ctx context.Context, token string) (int, error) {
	var out struct {
		Count int `json:"count"`
	}
	resp, err := s.c.request(ctx, token).SetResult(&out).Get("/api/notifications/unread-count")
	if err := s.c.check("notifications", resp, err); err != nil {
		return 0, err
	}
	return out.Count, nil
}
