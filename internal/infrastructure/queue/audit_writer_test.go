package queue

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/core/domain"
)

type memAuditRepo struct {
	mu      sync.Mutex
	entries []domain.AuditEntry
}

func (r *memAuditRepo) Insert(_ context.Context, entry *domain.AuditEntry) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries = append(r.entries, *entry)
	return nil
}

func (r *memAuditRepo) List(context.Context, int64) ([]domain.AuditEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.AuditEntry(nil), r.entries...), nil
}

func (r *memAuditRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.entries)
}

func TestAuditWriter_PersistsEntries(t *testing.T) {
	repo := &memAuditRepo{}
	w := NewAuditWriter(2, repo, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	w.Start(ctx)

	for i := 0; i < 10; i++ {
		w.Record(domain.AuditEntry{Actor: "admin", Action: "user.toggle_active", Target: "42"})
	}

	deadline := time.After(2 * time.Second)
	for repo.count() < 10 {
		select {
		case <-deadline:
			t.Fatalf("only %d of 10 entries persisted", repo.count())
		case <-time.After(10 * time.Millisecond):
		}
	}
}

func TestAuditWriter_SameActorSameShard(t *testing.T) {
	w := NewAuditWriter(4, &memAuditRepo{}, zerolog.Nop())

	first := w.shardIndex("lecturer1")
	for i := 0; i < 100; i++ {
		if w.shardIndex("lecturer1") != first {
			t.Fatalf("shard index not deterministic")
		}
	}
}
