package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/ports"
)

// NotificationHandler serves the notification bell and its dropdown.
type NotificationHandler struct {
	sessions      ports.SessionService
	notifications ports.NotificationAPI
}

func NewNotificationHandler(sessions ports.SessionService, notifications ports.NotificationAPI) *NotificationHandler {
	return &NotificationHandler{sessions: sessions, notifications: notifications}
}

func (h *NotificationHandler) token(c echo.Context) string {
	return h.sessions.Token(c.Request().Context(), appmw.SessionID(c))
}

// List returns all notifications for the signed-in user.
//
// @Summary      List notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /notifications [get]
func (h *NotificationHandler) List(c echo.Context) error {
	list, err := h.notifications.List(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Unread returns only unread notifications.
//
// @Summary      List unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {array}  domain.Notification
// @Router       /notifications/unread [get]
func (h *NotificationHandler) Unread(c echo.Context) error {
	list, err := h.notifications.Unread(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// MarkRead marks one notification as read.
//
// @Summary      Mark a notification read
// @Tags         notifications
// @Param        id  path  int  true  "Notification id"
// @Success      204  "marked"
// @Router       /notifications/{id}/read [put]
func (h *NotificationHandler) MarkRead(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	if err := h.notifications.MarkRead(c.Request().Context(), h.token(c), id); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// UnreadCount returns the badge count for the bell icon.
//
// @Summary      Count unread notifications
// @Tags         notifications
// @Produce      json
// @Success      200  {object}  map[string]int
// @Router       /notifications/unread-count [get]
func (h *NotificationHandler) UnreadCount(c echo.Context) error {
	count, err := h.notifications.UnreadCount(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, map[string]int{"count": count})
}
