package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// UserHandler serves the user administration screen.
type UserHandler struct {
	sessions ports.SessionService
	users    ports.UserAPI
	auditor  ports.AuditRecorder
}

func NewUserHandler(sessions ports.SessionService, users ports.UserAPI, auditor ports.AuditRecorder) *UserHandler {
	return &UserHandler{sessions: sessions, users: users, auditor: auditor}
}

func (h *UserHandler) token(c echo.Context) string {
	return h.sessions.Token(c.Request().Context(), appmw.SessionID(c))
}

// List returns every user for the admin table.
//
// @Summary      List users
// @Tags         users
// @Produce      json
// @Success      200  {array}   domain.User
// @Failure      502  {object}  map[string]string
// @Router       /admin/users [get]
func (h *UserHandler) List(c echo.Context) error {
	list, err := h.users.List(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns a single user.
//
// @Summary      Get a user
// @Tags         users
// @Produce      json
// @Param        id   path      int  true  "User id"
// @Success      200  {object}  domain.User
// @Failure      404  {object}  map[string]string
// @Router       /admin/users/{id} [get]
func (h *UserHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	user, err := h.users.Get(c.Request().Context(), h.token(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// Create adds a user account.
//
// @Summary      Create a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      ports.UserInput  true  "User details"
// @Success      201   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Router       /admin/users [post]
func (h *UserHandler) Create(c echo.Context) error {
	var req ports.UserInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	user, err := h.users.Create(c.Request().Context(), h.token(c), req)
	if err != nil {
		return err
	}

	h.auditor.Record(audit(c, "user.create", user.Username, ""))
	return c.JSON(http.StatusCreated, user)
}

// Update applies a partial user update.
//
// @Summary      Update a user
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                    true  "User id"
// @Param        body  body      ports.UserUpdateInput  true  "Fields to change"
// @Success      200   {object}  domain.User
// @Router       /admin/users/{id} [put]
func (h *UserHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.UserUpdateInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	user, err := h.users.Update(c.Request().Context(), h.token(c), id, req)
	if err != nil {
		return err
	}

	h.auditor.Record(audit(c, "user.update", strconv.FormatInt(id, 10), ""))
	return c.JSON(http.StatusOK, user)
}

type toggleActiveRequest struct {
	// Active is the value currently shown in the table, which the toggle
	// flips. Sending the current value instead of the desired one keeps the
	// flip idempotent against double clicks on a stale row.
	Active bool `json:"active"`
}

type toggleActiveResponse struct {
	ID     int64 `json:"id"`
	Active bool  `json:"active"`
}

// ToggleActive flips a user's active flag. The page applies the flip
// optimistically; on failure the error envelope carries the original value
// back so the row reverts.
//
// @Summary      Toggle a user's active flag
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "User id"
// @Param        body  body      toggleActiveRequest  true  "Current active value"
// @Success      200   {object}  toggleActiveResponse
// @Failure      502   {object}  map[string]interface{}
// @Router       /admin/users/{id}/toggle-active [post]
func (h *UserHandler) ToggleActive(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req toggleActiveRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	next := !req.Active
	_, err = h.users.Update(c.Request().Context(), h.token(c), id, ports.UserUpdateInput{Active: &next})
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		// Local rollback: hand the original value back with the failure.
		return c.JSON(http.StatusBadGateway, map[string]any{
			"error":     "toggle failed",
			"active":    req.Active,
			"retryable": true,
		})
	}

	h.auditor.Record(audit(c, "user.toggle_active", strconv.FormatInt(id, 10), strconv.FormatBool(next)))
	return c.JSON(http.StatusOK, toggleActiveResponse{ID: id, Active: next})
}

// Delete removes a user account.
//
// @Summary      Delete a user
// @Tags         users
// @Param        id  path  int  true  "User id"
// @Success      204  "deleted"
// @Router       /admin/users/{id} [delete]
func (h *UserHandler) Delete(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := h.users.Delete(c.Request().Context(), h.token(c), id); err != nil {
		return err
	}

	h.auditor.Record(audit(c, "user.delete", strconv.FormatInt(id, 10), ""))
	return c.NoContent(http.StatusNoContent)
}

// Import streams an uploaded CSV through to the backend import endpoint.
// The file is never parsed here.
//
// @Summary      Bulk-import users from CSV
// @Tags         users
// @Accept       multipart/form-data
// @Produce      json
// @Param        file  formData  file  true  "CSV file"
// @Success      200   {object}  ports.ImportResult
// @Router       /admin/users/import [post]
func (h *UserHandler) Import(c echo.Context) error {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "file is required")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unreadable file")
	}
	defer file.Close()

	result, err := h.users.Import(c.Request().Context(), h.token(c), fileHeader.Filename, file)
	if err != nil {
		return err
	}

	h.auditor.Record(audit(c, "user.import", fileHeader.Filename, strconv.Itoa(result.Imported)+" imported"))
	return c.JSON(http.StatusOK, result)
}

// pathID parses the :id path parameter.
func pathID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid id")
	}
	return id, nil
}
