package domain

import "time"

// SyllabusStatus represents the workflow state of a syllabus. Transitions are
// enforced entirely by the backend; the console only triggers them and renders
// the resulting state.
type SyllabusStatus string

const (
	StatusDraft           SyllabusStatus = "DRAFT"
	StatusPendingReview   SyllabusStatus = "PENDING_REVIEW"
	StatusPendingApproval SyllabusStatus = "PENDING_APPROVAL"
	StatusApproved        SyllabusStatus = "APPROVED"
	StatusPublished       SyllabusStatus = "PUBLISHED"
	StatusRejected        SyllabusStatus = "REJECTED"
)

// WorkflowSteps is the approval pipeline in display order
// (Lecturer → Head of Department → Academic Affairs → Principal → Published).
// REJECTED sits outside the pipeline and is rendered separately.
var WorkflowSteps = []SyllabusStatus{
	StatusDraft,
	StatusPendingReview,
	StatusPendingApproval,
	StatusApproved,
	StatusPublished,
}

// Syllabus is a read-through copy of a backend-owned record. The console
// never mutates one locally beyond replacing it with a fresher fetch.
type Syllabus struct {
	ID                int64          `json:"id"`
	CourseCode        string         `json:"courseCode"`
	CourseName        string         `json:"courseName"`
	Department        string         `json:"department,omitempty"`
	Status            SyllabusStatus `json:"status"`
	Credits           int            `json:"credits,omitempty"`
	Semester          string         `json:"semester,omitempty"`
	AcademicYear      string         `json:"academicYear,omitempty"`
	Description       string         `json:"description,omitempty"`
	Objectives        string         `json:"objectives,omitempty"`
	Prerequisites     string         `json:"prerequisites,omitempty"`
	AssessmentMethods string         `json:"assessmentMethods,omitempty"`
	Textbooks         string         `json:"textbooks,omitempty"`
	References        string         `json:"references,omitempty"`
	CreatedBy         string         `json:"createdBy,omitempty"`
	CreatedAt         time.Time      `json:"createdAt,omitempty"`
	UpdatedAt         time.Time      `json:"updatedAt,omitempty"`
}

// PublishBatch groups approved syllabi for bulk publication. Batches exist
// only in the console's publish screen; the backend has no batch endpoint yet.
type PublishBatch struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	Description   string    `json:"description,omitempty"`
	SyllabusCount int       `json:"syllabusCount"`
	CreatedDate   time.Time `json:"createdDate"`
	Status        string    `json:"status"` // draft, ready, published
}
