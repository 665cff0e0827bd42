package repository

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MongoDeliveryHistoryRepository implements DeliveryHistoryRepository
type MongoDeliveryHistoryRepository struct {
	collection *mongo.Collection
}

// NewMongoDeliveryHistoryRepository creates a new notification history repository.
// A failed index build is logged; history still works without it, only slower.
func NewMongoDeliveryHistoryRepository(ctx context.Context, db *mongo.Database, log logger.Logger) repository.DeliveryHistoryRepository {
	r := &MongoDeliveryHistoryRepository{
		collection: db.Collection("notification_history"),
	}

	indexCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	if err := r.EnsureIndexes(indexCtx); err != nil {
		log.Warn("Failed to create notification history index", "error", err)
	}
	return r
}

// EnsureIndexes creates the compound index serving the per-user history query
func (r *MongoDeliveryHistoryRepository) EnsureIndexes(ctx context.Context) error {
	indexModel := mongo.IndexModel{
		Keys: bson.D{
			{Key: "userEmail", Value: 1},
			{Key: "createdAt", Value: -1},
		},
	}
	if _, err := r.collection.Indexes().CreateOne(ctx, indexModel); err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	return nil
}

// Save inserts a delivery record
func (r *MongoDeliveryHistoryRepository) Save(ctx context.Context, record *entity.DeliveryRecord) error {
	if record.ID == "" {
		record.ID = primitive.NewObjectID().Hex()
	}
	if record.CreatedAt.IsZero() {
		record.CreatedAt = time.Now().UTC()
	}

	_, err := r.collection.InsertOne(ctx, record)
	return err
}

// FindByUserEmail returns the most recent records for a user, newest first
func (r *MongoDeliveryHistoryRepository) FindByUserEmail(ctx context.Context, email string, limit int) ([]*entity.DeliveryRecord, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "createdAt", Value: -1}}).
		SetLimit(int64(limit))

	cursor, err := r.collection.Find(ctx, bson.M{"userEmail": normalizeEmail(email)}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	records := make([]*entity.DeliveryRecord, 0, limit)
	if err := cursor.All(ctx, &records); err != nil {
		return nil, err
	}
	return records, nil
}

// NopDeliveryHistoryRepository discards records; used when MongoDB is not configured
type NopDeliveryHistoryRepository struct{}

// Save implements DeliveryHistoryRepository
func (NopDeliveryHistoryRepository) Save(ctx context.Context, record *entity.DeliveryRecord) error {
	return nil
}

// FindByUserEmail implements DeliveryHistoryRepository
func (NopDeliveryHistoryRepository) FindByUserEmail(ctx context.Context, email string, limit int) ([]*entity.DeliveryRecord, error) {
	return []*entity.DeliveryRecord{}, nil
}
