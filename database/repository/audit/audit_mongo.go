package auditRepo

import (
	"context"
	"fmt"
	"time"

	"lexaid/database"
	"lexaid/models"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoAuditRepo implements AuditRepository using MongoDB.
type MongoAuditRepo struct {
	coll *mongo.Collection
}

// NewMongoAuditRepo creates a new AuditRepository backed by MongoDB.
func NewMongoAuditRepo() AuditRepository {
	coll := database.MongoClient.Database(database.DatabaseName).Collection("audit")
	repo := &MongoAuditRepo{coll: coll}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_, err := coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{
			{Key: "resource", Value: 1},
			{Key: "resourceId", Value: 1},
			{Key: "timestamp", Value: -1},
		},
	})
	if err != nil {
		fmt.Printf("failed to create audit indexes: %v\n", err)
	}
	return repo
}

// Append inserts one audit record.
func (r *MongoAuditRepo) Append(ctx context.Context, rec *models.AuditRecord) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if _, err := r.coll.InsertOne(ctx, rec); err != nil {
		return fmt.Errorf("error appending audit record: %w", err)
	}
	return nil
}

// ListForResource returns the audit trail for one resource, newest first.
func (r *MongoAuditRepo) ListForResource(ctx context.Context, resource, resourceID string, limit int64) ([]models.AuditRecord, error) {
	filter := bson.M{"resource": resource, "resourceId": resourceID}
	return r.list(ctx, filter, limit)
}

// ListRecent returns the most recent audit records across all resources.
func (r *MongoAuditRepo) ListRecent(ctx context.Context, limit int64) ([]models.AuditRecord, error) {
	return r.list(ctx, bson.M{}, limit)
}

func (r *MongoAuditRepo) list(ctx context.Context, filter bson.M, limit int64) ([]models.AuditRecord, error) {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	if limit <= 0 {
		limit = 100
	}
	opts := options.Find().SetSort(bson.D{{Key: "timestamp", Value: -1}}).SetLimit(limit)
	cursor, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to list audit records: %w", err)
	}
	defer cursor.Close(ctx)

	var recs []models.AuditRecord
	if err := cursor.All(ctx, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode audit records: %w", err)
	}
	return recs, nil
}
