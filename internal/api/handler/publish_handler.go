package handler

import (
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	appmw "github.com/smd-system/console/internal/api/middleware"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// PublishHandler serves the admin publish screen. Approved syllabi come from
// the backend; publish batches are console-local until the backend grows a
// batch endpoint.
type PublishHandler struct {
	sessions ports.SessionService
	syllabi  ports.SyllabusAPI
	auditor  ports.AuditRecorder
	log      zerolog.Logger

	mu      sync.Mutex
	batches []domain.PublishBatch
	nextID  int64
}

func NewPublishHandler(sessions ports.SessionService, syllabi ports.SyllabusAPI, auditor ports.AuditRecorder, log zerolog.Logger) *PublishHandler {
	h := &PublishHandler{
		sessions: sessions,
		syllabi:  syllabi,
		auditor:  auditor,
		log:      log,
		batches: []domain.PublishBatch{
			{ID: 1, Name: "Spring 2024 Batch", Description: "Spring semester syllabi", SyllabusCount: 12, CreatedDate: time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC), Status: "published"},
			{ID: 2, Name: "Fall 2023 Batch", Description: "Fall semester syllabi", SyllabusCount: 8, CreatedDate: time.Date(2023, 8, 20, 0, 0, 0, 0, time.UTC), Status: "published"},
		},
		nextID: 3,
	}
	return h
}

// sampleApproved backs the screen when the backend cannot be reached, so the
// publish workflow stays demonstrable during upstream outages.
var sampleApproved = []domain.Syllabus{
	{ID: 9001, CourseCode: "CS101", CourseName: "Introduction to Computer Science", Department: "Computer Science", Status: domain.StatusApproved, Credits: 3, Semester: "Spring", AcademicYear: "2024"},
	{ID: 9002, CourseCode: "MATH201", CourseName: "Linear Algebra", Department: "Mathematics", Status: domain.StatusApproved, Credits: 4, Semester: "Spring", AcademicYear: "2024"},
	{ID: 9003, CourseCode: "ENG105", CourseName: "Academic Writing", Department: "English", Status: domain.StatusApproved, Credits: 2, Semester: "Spring", AcademicYear: "2024"},
}

type publishScreenResponse struct {
	Approved []domain.Syllabus     `json:"approved"`
	Batches  []domain.PublishBatch `json:"batches"`
	// Sample is true when the approved list is fallback data rather than a
	// live backend read.
	Sample bool `json:"sample"`
}

// Screen returns everything the publish page renders in one call.
//
// @Summary      Publish screen data
// @Tags         publish
// @Produce      json
// @Success      200  {object}  publishScreenResponse
// @Router       /admin/publish [get]
func (h *PublishHandler) Screen(c echo.Context) error {
	token := h.sessions.Token(c.Request().Context(), appmw.SessionID(c))

	approved, err := h.syllabi.List(c.Request().Context(), token, domain.StatusApproved)
	sample := false
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return err
		}
		h.log.Warn().Err(err).Msg("approved syllabi fetch failed, serving sample data")
		approved = sampleApproved
		sample = true
	}

	h.mu.Lock()
	batches := make([]domain.PublishBatch, len(h.batches))
	copy(batches, h.batches)
	h.mu.Unlock()

	return c.JSON(http.StatusOK, publishScreenResponse{
		Approved: approved,
		Batches:  batches,
		Sample:   sample,
	})
}

type createBatchRequest struct {
	Name        string  `json:"name" validate:"required"`
	Description string  `json:"description"`
	SyllabusIDs []int64 `json:"syllabusIds"`
}

// CreateBatch records a new publish batch. The batch itself is console state;
// no backend call is made.
//
// @Summary      Create a publish batch
// @Tags         publish
// @Accept       json
// @Produce      json
// @Param        body  body      createBatchRequest  true  "Batch details"
// @Success      201   {object}  domain.PublishBatch
// @Failure      400   {object}  map[string]string
// @Router       /admin/publish/batches [post]
func (h *PublishHandler) CreateBatch(c echo.Context) error {
	var req createBatchRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}
	if err := c.Validate(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "batch name is required")
	}

	h.mu.Lock()
	batch := domain.PublishBatch{
		ID:            h.nextID,
		Name:          req.Name,
		Description:   req.Description,
		SyllabusCount: len(req.SyllabusIDs),
		CreatedDate:   time.Now().UTC(),
		Status:        "draft",
	}
	h.nextID++
	h.batches = append([]domain.PublishBatch{batch}, h.batches...)
	h.mu.Unlock()

	h.auditor.Record(audit(c, "publish.batch_create", req.Name, ""))
	return c.JSON(http.StatusCreated, batch)
}
