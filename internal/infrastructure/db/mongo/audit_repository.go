package mongo

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/edison/video-portal/internal/core/domain"
	"github.com/edison/video-portal/internal/core/ports"
)

const collectionAuditLogs = "audit_logs"

// AuditRepository is append-only: records are inserted once and only ever
// removed through the retention purge.
type AuditRepository struct {
	col *mongo.Collection
}

func NewAuditRepository(db *mongo.Database) *AuditRepository {
	return &AuditRepository{col: db.Collection(collectionAuditLogs)}
}

type mongoAuditRecord struct {
	ID             primitive.ObjectID `bson:"_id,omitempty"`
	EntityType     string             `bson:"entity_type"`
	EntityID       string             `bson:"entity_id"`
	Operation      string             `bson:"operation"`
	Before         map[string]any     `bson:"before,omitempty"`
	After          map[string]any     `bson:"after,omitempty"`
	ModifiedFields []string           `bson:"modified_fields"`
	ActorID        string             `bson:"actor_id,omitempty"`
	IP             string             `bson:"ip,omitempty"`
	UserAgent      string             `bson:"user_agent,omitempty"`
	CreatedAt      time.Time          `bson:"created_at"`
}

func (r *AuditRepository) Insert(ctx context.Context, record *domain.AuditRecord) error {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	doc := mongoAuditRecord{
		EntityType:     record.EntityType,
		EntityID:       record.EntityID,
		Operation:      string(record.Operation),
		Before:         record.Before,
		After:          record.After,
		ModifiedFields: record.ModifiedFields,
		ActorID:        record.ActorID,
		IP:             record.IP,
		UserAgent:      record.UserAgent,
		CreatedAt:      record.CreatedAt,
	}

	res, err := r.col.InsertOne(ctx, doc)
	if err != nil {
		return fmt.Errorf("insert audit record: %w", err)
	}
	if oid, ok := res.InsertedID.(primitive.ObjectID); ok {
		record.ID = oid.Hex()
	}
	return nil
}

func (r *AuditRepository) List(ctx context.Context, filter ports.AuditFilter, page ports.Page) ([]domain.AuditRecord, int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	query := bson.M{}
	if filter.EntityType != "" {
		query["entity_type"] = filter.EntityType
	}
	if filter.ActorID != "" {
		query["actor_id"] = filter.ActorID
	}
	if !filter.From.IsZero() || !filter.To.IsZero() {
		created := bson.M{}
		if !filter.From.IsZero() {
			created["$gte"] = filter.From
		}
		if !filter.To.IsZero() {
			created["$lte"] = filter.To
		}
		query["created_at"] = created
	}

	total, err := r.col.CountDocuments(ctx, query)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit records: %w", err)
	}

	page = page.Normalize()
	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetSkip(int64((page.Number - 1) * page.Limit)).
		SetLimit(int64(page.Limit))

	cursor, err := r.col.Find(ctx, query, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var records []domain.AuditRecord
	for cursor.Next(ctx) {
		var mr mongoAuditRecord
		if err := cursor.Decode(&mr); err != nil {
			return nil, 0, fmt.Errorf("decode audit record: %w", err)
		}
		records = append(records, domain.AuditRecord{
			ID:             mr.ID.Hex(),
			EntityType:     mr.EntityType,
			EntityID:       mr.EntityID,
			Operation:      domain.Operation(mr.Operation),
			Before:         mr.Before,
			After:          mr.After,
			ModifiedFields: mr.ModifiedFields,
			ActorID:        mr.ActorID,
			IP:             mr.IP,
			UserAgent:      mr.UserAgent,
			CreatedAt:      mr.CreatedAt.UTC(),
		})
	}
	return records, total, cursor.Err()
}

func (r *AuditRepository) Count(ctx context.Context) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, defaultTimeout)
	defer cancel()

	return r.col.CountDocuments(ctx, bson.M{})
}

func (r *AuditRepository) PurgeBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	res, err := r.col.DeleteMany(ctx, bson.M{"created_at": bson.M{"$lt": cutoff}})
	if err != nil {
		return 0, fmt.Errorf("purge audit records: %w", err)
	}
	return res.DeletedCount, nil
}

// EnsureIndexes creates necessary indexes on the audit_logs collection.
func (r *AuditRepository) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	indexes := []mongo.IndexModel{
		{Keys: bson.D{{Key: "created_at", Value: -1}}},
		{Keys: bson.D{{Key: "entity_type", Value: 1}, {Key: "entity_id", Value: 1}, {Key: "operation", Value: 1}}},
		{Keys: bson.D{{Key: "actor_id", Value: 1}}},
	}

	_, err := r.col.Indexes().CreateMany(ctx, indexes)
	return err
}
