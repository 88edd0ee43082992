package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// SyllabusHandler serves every syllabus-facing screen: the lecturer's own
// list, the reviewer queue, search, detail and the workflow transitions.
type SyllabusHandler struct {
	sessions ports.SessionService
	syllabi  ports.SyllabusAPI
	auditor  ports.AuditRecorder
}

func NewSyllabusHandler(sessions ports.SessionService, syllabi ports.SyllabusAPI, auditor ports.AuditRecorder) *SyllabusHandler {
	return &SyllabusHandler{sessions: sessions, syllabi: syllabi, auditor: auditor}
}

func (h *SyllabusHandler) token(c echo.Context) string {
	return h.sessions.Token(c.Request().Context(), appmw.SessionID(c))
}

// List returns syllabi, optionally filtered by status.
//
// @Summary      List syllabi
// @Tags         syllabi
// @Produce      json
// @Param        status  query     string  false  "Workflow status filter"
// @Success      200     {array}   domain.Syllabus
// @Router       /syllabi [get]
func (h *SyllabusHandler) List(c echo.Context) error {
	status := domain.SyllabusStatus(c.QueryParam("status"))
	list, err := h.syllabi.List(c.Request().Context(), h.token(c), status)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Mine returns the syllabi owned by the signed-in lecturer.
//
// @Summary      List my syllabi
// @Tags         syllabi
// @Produce      json
// @Success      200  {array}  domain.Syllabus
// @Router       /syllabi/my [get]
func (h *SyllabusHandler) Mine(c echo.Context) error {
	list, err := h.syllabi.Mine(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// PendingReview returns the reviewer queue for the signed-in HOD.
//
// @Summary      List syllabi waiting on review
// @Tags         syllabi
// @Produce      json
// @Success      200  {array}  domain.Syllabus
// @Router       /syllabi/pending-review [get]
func (h *SyllabusHandler) PendingReview(c echo.Context) error {
	list, err := h.syllabi.PendingReview(c.Request().Context(), h.token(c))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Search runs a keyword search over published syllabi.
//
// @Summary      Search syllabi
// @Tags         syllabi
// @Produce      json
// @Param        keyword  query    string  true  "Search keyword"
// @Success      200      {array}  domain.Syllabus
// @Router       /syllabi/search [get]
func (h *SyllabusHandler) Search(c echo.Context) error {
	keyword := c.QueryParam("keyword")
	if keyword == "" {
		return echo.NewHTTPError(http.StatusBadRequest, "keyword is required")
	}
	list, err := h.syllabi.Search(c.Request().Context(), h.token(c), keyword)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}

// Get returns one syllabus.
//
// @Summary      Get a syllabus
// @Tags         syllabi
// @Produce      json
// @Param        id   path      int  true  "Syllabus id"
// @Success      200  {object}  domain.Syllabus
// @Failure      404  {object}  map[string]string
// @Router       /syllabi/{id} [get]
func (h *SyllabusHandler) Get(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	syl, err := h.syllabi.Get(c.Request().Context(), h.token(c), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, syl)
}

// Create stores a new draft syllabus.
//
// @Summary      Create a syllabus
// @Tags         syllabi
// @Accept       json
// @Produce      json
// @Param        body  body      ports.SyllabusInput  true  "Syllabus content"
// @Success      201   {object}  domain.Syllabus
// @Failure      400   {object}  map[string]string
// @Router       /syllabi [post]
func (h *SyllabusHandler) Create(c echo.Context) error {
	var req ports.SyllabusInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	syl, err := h.syllabi.Create(c.Request().Context(), h.token(c), req)
	if err != nil {
		return err
	}

	h.auditor.Record(audit(c, "syllabus.create", syl.CourseCode, syl.CourseName))
	return c.JSON(http.StatusCreated, syl)
}

// Update replaces a draft syllabus's content.
//
// @Summary      Update a syllabus
// @Tags         syllabi
// @Accept       json
// @Produce      json
// @Param        id    path      int                  true  "Syllabus id"
// @Param        body  body      ports.SyllabusInput  true  "Syllabus content"
// @Success      200   {object}  domain.Syllabus
// @Router       /syllabi/{id} [put]
func (h *SyllabusHandler) Update(c echo.Context) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}

	var req ports.SyllabusInput
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, err.Error())
	}

	syl, err := h.syllabi.Update(c.Request().Context(), h.token(c), id, req)
	if err != nil {
		return err
	}

	h.auditor.Record(audit(c, "syllabus.update", strconv.FormatInt(id, 10), syl.CourseCode))
	return c.JSON(http.StatusOK, syl)
}

// Submit moves a draft into the review queue.
//
// @Summary      Submit a syllabus for review
// @Tags         syllabi
// @Produce      json
// @Param        id   path      int  true  "Syllabus id"
// @Success      200  {object}  domain.Syllabus
// @Router       /syllabi/{id}/submit [post]
func (h *SyllabusHandler) Submit(c echo.Context) error {
	return h.transition(c, "syllabus.submit", func(c echo.Context, id int64) error {
		return h.syllabi.Submit(c.Request().Context(), h.token(c), id)
	})
}

type reviewRequest struct {
	Comments string `json:"comments"`
}

// Approve advances a syllabus one workflow step.
//
// @Summary      Approve a syllabus
// @Tags         syllabi
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Syllabus id"
// @Param        body  body      reviewRequest  false  "Reviewer comments"
// @Success      200   {object}  domain.Syllabus
// @Router       /syllabi/{id}/approve [post]
func (h *SyllabusHandler) Approve(c echo.Context) error {
	var req reviewRequest
	_ = c.Bind(&req)
	return h.transition(c, "syllabus.approve", func(c echo.Context, id int64) error {
		return h.syllabi.Approve(c.Request().Context(), h.token(c), id, req.Comments)
	})
}

// Reject sends a syllabus back to its author.
//
// @Summary      Reject a syllabus
// @Tags         syllabi
// @Accept       json
// @Produce      json
// @Param        id    path      int            true   "Syllabus id"
// @Param        body  body      reviewRequest  false  "Reviewer comments"
// @Success      200   {object}  domain.Syllabus
// @Router       /syllabi/{id}/reject [post]
func (h *SyllabusHandler) Reject(c echo.Context) error {
	var req reviewRequest
	_ = c.Bind(&req)
	return h.transition(c, "syllabus.reject", func(c echo.Context, id int64) error {
		return h.syllabi.Reject(c.Request().Context(), h.token(c), id, req.Comments)
	})
}

// Publish makes an approved syllabus publicly visible.
//
// @Summary      Publish a syllabus
// @Tags         syllabi
// @Produce      json
// @Param        id   path      int  true  "Syllabus id"
// @Success      200  {object}  domain.Syllabus
// @Router       /syllabi/{id}/publish [post]
func (h *SyllabusHandler) Publish(c echo.Context) error {
	return h.transition(c, "syllabus.publish", func(c echo.Context, id int64) error {
		return h.syllabi.Publish(c.Request().Context(), h.token(c), id)
	})
}

// transition runs one workflow action and returns the re-fetched syllabus so
// the page renders the backend's view of the new state, not a guess.
func (h *SyllabusHandler) transition(c echo.Context, action string, fn func(echo.Context, int64) error) error {
	id, err := pathID(c)
	if err != nil {
		return err
	}
	if err := fn(c, id); err != nil {
		return err
	}
	syl, err := h.syllabi.Get(c.Request().Context(), h.token(c), id)
	if err != nil {
		return err
	}
	h.auditor.Record(audit(c, action, strconv.FormatInt(id, 10), string(syl.Status)))
	return c.JSON(http.StatusOK, syl)
}
