package handler

import (
	"context"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// DashboardHandler serves the admin dashboard's aggregate counts.
type DashboardHandler struct {
	sessions ports.SessionService
	users    ports.UserAPI
	syllabi  ports.SyllabusAPI
}

func NewDashboardHandler(sessions ports.SessionService, users ports.UserAPI, syllabi ports.SyllabusAPI) *DashboardHandler {
	return &DashboardHandler{sessions: sessions, users: users, syllabi: syllabi}
}

type dashboardStats struct {
	TotalUsers       int `json:"totalUsers"`
	TotalSyllabi     int `json:"totalSyllabi"`
	PendingApprovals int `json:"pendingApprovals"`
	PublishedSyllabi int `json:"publishedSyllabi"`
}

// Stats fetches the four dashboard counts in parallel, matching the page's
// simultaneous requests. The first error wins; partial results are discarded.
//
// @Summary      Admin dashboard statistics
// @Tags         dashboard
// @Produce      json
// @Success      200  {object}  dashboardStats
// @Failure      502  {object}  map[string]string
// @Router       /admin/dashboard [get]
func (h *DashboardHandler) Stats(c echo.Context) error {
	ctx := c.Request().Context()
	token := h.sessions.Token(ctx, appmw.SessionID(c))

	var (
		stats    dashboardStats
		mu       sync.Mutex
		wg       sync.WaitGroup
		firstErr error
	)

	setErr := func(err error) {
		mu.Lock()
		defer mu.Unlock()
		if firstErr == nil {
			firstErr = err
		}
	}

	fetchCount := func(fetch func(context.Context) (int, error), dst *int) {
		defer wg.Done()
		n, err := fetch(ctx)
		if err != nil {
			setErr(err)
			return
		}
		mu.Lock()
		*dst = n
		mu.Unlock()
	}

	wg.Add(4)
	go fetchCount(func(ctx context.Context) (int, error) {
		list, err := h.users.List(ctx, token)
		return len(list), err
	}, &stats.TotalUsers)
	go fetchCount(func(ctx context.Context) (int, error) {
		list, err := h.syllabi.List(ctx, token, "")
		return len(list), err
	}, &stats.TotalSyllabi)
	go fetchCount(func(ctx context.Context) (int, error) {
		list, err := h.syllabi.List(ctx, token, domain.StatusPendingApproval)
		return len(list), err
	}, &stats.PendingApprovals)
	go fetchCount(func(ctx context.Context) (int, error) {
		list, err := h.syllabi.List(ctx, token, domain.StatusPublished)
		return len(list), err
	}, &stats.PublishedSyllabi)
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}
	return c.JSON(http.StatusOK, stats)
}
