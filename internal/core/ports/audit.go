package ports

import (
	"context"

	"github.com/smd-system/console/internal/core/domain"
)

// AuditRepository persists console audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	List(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}

// AuditRecorder accepts entries for asynchronous persistence so page
// responses never wait on the audit write.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
