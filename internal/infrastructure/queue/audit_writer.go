package queue

import (
	"context"
	"hash/fnv"
	"strconv"

	"github.com/rs/zerolog"

	"github.com/smd-system/console/internal/api/metrics"
	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

const (
	defaultWorkers = 4
	channelBuffer  = 128
)

// AuditWriter persists audit entries asynchronously so mutating page actions
// never wait on Mongo. Entries shard to a fixed set of workers by actor,
// keeping per-actor write ordering intact.
type AuditWriter struct {
	workers []chan domain.AuditEntry
	repo    ports.AuditRepository
	log     zerolog.Logger
}

// NewAuditWriter creates an AuditWriter with numWorkers sharded workers.
// If numWorkers <= 0, defaultWorkers is used.
func NewAuditWriter(numWorkers int, repo ports.AuditRepository, log zerolog.Logger) *AuditWriter {
	if numWorkers <= 0 {
		numWorkers = defaultWorkers
	}
	w := &AuditWriter{
		workers: make([]chan domain.AuditEntry, numWorkers),
		repo:    repo,
		log:     log,
	}
	for i := range w.workers {
		w.workers[i] = make(chan domain.AuditEntry, channelBuffer)
	}
	return w
}

// Start launches all worker goroutines. Workers stop when ctx is cancelled.
func (w *AuditWriter) Start(ctx context.Context) {
	for i, ch := range w.workers {
		go w.runWorker(ctx, i, ch)
	}
}

// Record sends an entry to the worker responsible for its actor. Drops the
// entry (counted, logged) rather than blocking when the shard is full: audit
// is best-effort, page latency is not negotiable.
func (w *AuditWriter) Record(entry domain.AuditEntry) {
	idx := w.shardIndex(entry.Actor)
	select {
	case w.workers[idx] <- entry:
		metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(idx)).Set(float64(len(w.workers[idx])))
	default:
		metrics.AuditWriteErrorsTotal.Inc()
		w.log.Warn().
			Str("actor", entry.Actor).
			Str("action", entry.Action).
			Msg("audit queue full, entry dropped")
	}
}

// shardIndex maps an actor deterministically to a worker index.
func (w *AuditWriter) shardIndex(actor string) int {
	h := fnv.New32a()
	_, _ = h.Write([]byte(actor))
	return int(h.Sum32()) % len(w.workers)
}

func (w *AuditWriter) runWorker(ctx context.Context, id int, ch <-chan domain.AuditEntry) {
	for {
		select {
		case <-ctx.Done():
			return
		case entry, ok := <-ch:
			if !ok {
				return
			}
			metrics.AuditQueueDepth.WithLabelValues(strconv.Itoa(id)).Set(float64(len(ch)))
			if err := w.repo.Insert(ctx, &entry); err != nil {
				metrics.AuditWriteErrorsTotal.Inc()
				w.log.Error().Err(err).
					Str("actor", entry.Actor).
					Str("action", entry.Action).
					Int("worker_id", id).
					Msg("audit write failed")
			}
		}
	}
}
