package mongo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/smd-system/console/internal/core/domain"
	"github.com/smd-system/console/internal/core/ports"
)

const auditCollection = "audit_entries"

// AuditRepository implements ports.AuditRepository using MongoDB. The audit
// trail is the one dataset the console owns outright; everything else it
// renders belongs to the remote backend.
type AuditRepository struct {
	db *mongo.Database
}

// NewAuditRepository creates a new AuditRepository.
func NewAuditRepository(db *mongo.Database) ports.AuditRepository {
	return &AuditRepository{db: db}
}

// Insert persists an audit entry, assigning an id and timestamp when the
// caller left them zero.
func (r *AuditRepository) Insert(ctx context.Context, entry *domain.AuditEntry) error {
	if entry.ID == "" {
		entry.ID = uuid.NewString()
	}
	if entry.At.IsZero() {
		entry.At = time.Now().UTC()
	}

	if _, err := r.db.Collection(auditCollection).InsertOne(ctx, entry); err != nil {
		return fmt.Errorf("audit insert: %w", err)
	}
	return nil
}

// List returns the most recent entries, newest first.
func (r *AuditRepository) List(ctx context.Context, limit int64) ([]domain.AuditEntry, error) {
	if limit <= 0 {
		limit = 100
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "at", Value: -1}}).
		SetLimit(limit)

	cur, err := r.db.Collection(auditCollection).Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, fmt.Errorf("audit list: %w", err)
	}
	defer cur.Close(ctx)

	var entries []domain.AuditEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, fmt.Errorf("audit decode: %w", err)
	}
	return entries, nil
}
