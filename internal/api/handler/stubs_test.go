package handler

import (
	"context"
	"io"
	"sync"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

// stubSessions satisfies ports.SessionService with canned values. Handlers
// under test only ever call Token; the guard is exercised in its own package.
type stubSessions struct {
	token     string
	loginUser *domain.User
	loginErr  error

	loginCalls int
}

func (s *stubSessions) Initialize(context.Context, string) ports.Snapshot {
	return ports.Snapshot{}
}
func (s *stubSessions) Current(string) ports.Snapshot                  { return ports.Snapshot{} }
func (s *stubSessions) Resolve(context.Context, string) ports.Snapshot { return ports.Snapshot{} }
func (s *stubSessions) Register(context.Context, ports.RegisterInput) error {
	return nil
}
func (s *stubSessions) Logout(context.Context, string) {}
func (s *stubSessions) RefreshUser(context.Context, string) ports.Snapshot {
	return ports.Snapshot{}
}
func (s *stubSessions) UpdateUser(string, domain.User)     {}
func (s *stubSessions) HasRole(string, domain.Role) bool   { return false }
func (s *stubSessions) Invalidate(context.Context, string) {}

func (s *stubSessions) Login(context.Context, string, string, string) (*domain.User, error) {
	s.loginCalls++
	return s.loginUser, s.loginErr
}

func (s *stubSessions) Token(context.Context, string) string { return s.token }

type stubUserAPI struct {
	users     []domain.User
	listErr   error
	updated   *domain.User
	updateErr error

	updateCalls []ports.UserUpdateInput
}

func (s *stubUserAPI) List(context.Context, string) ([]domain.User, error) {
	return s.users, s.listErr
}

func (s *stubUserAPI) Get(context.Context, string, int64) (*domain.User, error) {
	if len(s.users) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.users[0], nil
}

func (s *stubUserAPI) Create(_ context.Context, _ string, in ports.UserInput) (*domain.User, error) {
	u := domain.User{ID: 42, Username: in.Username, Email: in.Email, FullName: in.FullName, Active: true}
	return &u, nil
}

func (s *stubUserAPI) Update(_ context.Context, _ string, _ int64, in ports.UserUpdateInput) (*domain.User, error) {
	s.updateCalls = append(s.updateCalls, in)
	return s.updated, s.updateErr
}

func (s *stubUserAPI) Delete(context.Context, string, int64) error { return nil }

func (s *stubUserAPI) Import(context.Context, string, string, io.Reader) (*ports.ImportResult, error) {
	return &ports.ImportResult{Imported: 2}, nil
}

type stubSyllabusAPI struct {
	list    []domain.Syllabus
	listErr error

	// mu guards listCalls; the dashboard fans List out across goroutines.
	mu        sync.Mutex
	listCalls []domain.SyllabusStatus
}

func (s *stubSyllabusAPI) List(_ context.Context, _ string, status domain.SyllabusStatus) ([]domain.Syllabus, error) {
	s.mu.Lock()
	s.listCalls = append(s.listCalls, status)
	s.mu.Unlock()
	if s.listErr != nil {
		return nil, s.listErr
	}
	filtered := make([]domain.Syllabus, 0, len(s.list))
	for _, syl := range s.list {
		if status == "" || syl.Status == status {
			filtered = append(filtered, syl)
		}
	}
	return filtered, nil
}

func (s *stubSyllabusAPI) Mine(context.Context, string) ([]domain.Syllabus, error) {
	return s.list, s.listErr
}

func (s *stubSyllabusAPI) PendingReview(context.Context, string) ([]domain.Syllabus, error) {
	return s.list, s.listErr
}

func (s *stubSyllabusAPI) Search(context.Context, string, string) ([]domain.Syllabus, error) {
	return s.list, s.listErr
}

func (s *stubSyllabusAPI) Get(context.Context, string, int64) (*domain.Syllabus, error) {
	if len(s.list) == 0 {
		return nil, domain.ErrNotFound
	}
	return &s.list[0], nil
}

func (s *stubSyllabusAPI) Create(_ context.Context, _ string, in ports.SyllabusInput) (*domain.Syllabus, error) {
	return &domain.Syllabus{ID: 7, CourseCode: in.CourseCode, CourseName: in.CourseName, Status: domain.StatusDraft}, nil
}

func (s *stubSyllabusAPI) Update(context.Context, string, int64, ports.SyllabusInput) (*domain.Syllabus, error) {
	return s.Get(context.Background(), "", 0)
}

func (s *stubSyllabusAPI) Submit(context.Context, string, int64) error          { return nil }
func (s *stubSyllabusAPI) Approve(context.Context, string, int64, string) error { return nil }
func (s *stubSyllabusAPI) Reject(context.Context, string, int64, string) error  { return nil }
func (s *stubSyllabusAPI) Publish(context.Context, string, int64) error         { return nil }

// memRecorder captures audit entries synchronously.
type memRecorder struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *memRecorder) Record(entry domain.AuditEntry) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, entry)
}

func (r *memRecorder) actions() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.entries))
	for i, e := range r.entries {
		out[i] = e.Action
	}
	return out
}
