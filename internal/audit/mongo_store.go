package audit

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/BruksfildServices01/clinic-scheduler/internal/models"
)

const collectionName = "audit_logs"

type MongoStore struct {
	coll *mongo.Collection
}

func NewMongoStore(db *mongo.Database) *MongoStore {
	return &MongoStore{coll: db.Collection(collectionName)}
}

// EnsureIndexes creates the indexes used by List.
func (s *MongoStore) EnsureIndexes(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()

	indexModels := []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "created_at", Value: -1}},
			Options: options.Index().SetName("created_at_idx"),
		},
		{
			Keys:    bson.D{{Key: "action", Value: 1}, {Key: "entity", Value: 1}, {Key: "created_at", Value: -1}},
			Options: options.Index().SetName("action_entity_created_idx"),
		},
	}

	if _, err := s.coll.Indexes().CreateMany(ctx, indexModels); err != nil {
		return fmt.Errorf("failed to create audit indexes: %w", err)
	}
	return nil
}

func (s *MongoStore) Save(ctx context.Context, entry *models.AuditLog) error {
	if entry.DocumentID == "" {
		entry.DocumentID = uuid.New().String()
	}
	_, err := s.coll.InsertOne(ctx, entry)
	return err
}

func mongoFilter(f Filter) bson.M {
	filter := bson.M{}
	if f.Action != "" {
		filter["action"] = f.Action
	}
	if f.Entity != "" {
		filter["entity"] = f.Entity
	}

	created := bson.M{}
	if f.From != nil {
		created["$gte"] = *f.From
	}
	if f.To != nil {
		created["$lt"] = *f.To
	}
	if len(created) > 0 {
		filter["created_at"] = created
	}
	return filter
}

func (s *MongoStore) List(ctx context.Context, f Filter) ([]models.AuditLog, int64, error) {
	filter := mongoFilter(f)

	total, err := s.coll.CountDocuments(ctx, filter)
	if err != nil {
		return nil, 0, fmt.Errorf("count audit logs: %w", err)
	}

	opts := options.Find().
		SetSort(bson.D{{Key: "created_at", Value: -1}}).
		SetLimit(int64(f.Limit)).
		SetSkip(int64(f.Offset()))

	cursor, err := s.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, 0, fmt.Errorf("find audit logs: %w", err)
	}
	defer cursor.Close(ctx)

	logs := []models.AuditLog{}
	if err := cursor.All(ctx, &logs); err != nil {
		return nil, 0, fmt.Errorf("decode audit logs: %w", err)
	}
	return logs, total, nil
}
