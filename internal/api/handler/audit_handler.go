package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/smd-system/console/internal/core/ports"
)

// AuditLogHandler serves the admin audit trail screen from the console's own
// store. Entries are written asynchronously by the audit writer.
type AuditLogHandler struct {
	repo ports.AuditRepository
}

func NewAuditLogHandler(repo ports.AuditRepository) *AuditLogHandler {
	return &AuditLogHandler{repo: repo}
}

// List returns the most recent audit entries, newest first.
//
// @Summary      List audit entries
// @Tags         audit
// @Produce      json
// @Param        limit  query    int  false  "Max entries (default 100)"
// @Success      200    {array}  domain.AuditEntry
// @Router       /admin/audit-log [get]
func (h *AuditLogHandler) List(c echo.Context) error {
	var limit int64
	if raw := c.QueryParam("limit"); raw != "" {
		n, err := strconv.ParseInt(raw, 10, 64)
		if err != nil || n < 1 {
			return echo.NewHTTPError(http.StatusBadRequest, "invalid limit")
		}
		limit = n
	}

	entries, err := h.repo.List(c.Request().Context(), limit)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, entries)
}
