package repository

import (
	"context"
	"testing"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/integration/mtest"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestDeliveryHistoryRepository(t *testing.T) {
	mt := mtest.New(t, mtest.NewOptions().ClientType(mtest.Mock))

	mt.Run("index failure is logged", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateCommandErrorResponse(mtest.CommandError{
			Code:    13,
			Name:    "Unauthorized",
			Message: "not authorized to create index",
		}))
		core, logs := observer.New(zapcore.WarnLevel)

		repo := NewMongoDeliveryHistoryRepository(context.Background(), mt.DB, logger.FromZap(zap.New(core)))

		require.NotNil(t, repo)
		entries := logs.FilterMessage("Failed to create notification history index").All()
		require.Len(t, entries, 1)
		assert.Contains(t, entries[0].ContextMap()["error"], "not authorized")
	})

	mt.Run("index created", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &MongoDeliveryHistoryRepository{collection: mt.Coll}

		assert.NoError(t, repo.EnsureIndexes(context.Background()))
	})

	mt.Run("save fills id and timestamp", func(mt *mtest.T) {
		mt.AddMockResponses(mtest.CreateSuccessResponse())
		repo := &MongoDeliveryHistoryRepository{collection: mt.Coll}

		record := &entity.DeliveryRecord{UserEmail: "ada@example.com", FlightNumber: "AI101", Status: entity.DeliverySent}
		require.NoError(t, repo.Save(context.Background(), record))
		assert.NotEmpty(t, record.ID)
		assert.False(t, record.CreatedAt.IsZero())
	})

	mt.Run("find decodes records", func(mt *mtest.T) {
		created := time.Date(2024, 1, 1, 10, 0, 0, 0, time.UTC)
		mt.AddMockResponses(mtest.CreateCursorResponse(0, mt.Coll.Database().Name()+"."+mt.Coll.Name(), mtest.FirstBatch,
			bson.D{
				{Key: "_id", Value: "r1"},
				{Key: "userEmail", Value: "ada@example.com"},
				{Key: "flightNumber", Value: "AI101"},
				{Key: "channel", Value: "email"},
				{Key: "status", Value: entity.DeliverySent},
				{Key: "createdAt", Value: created},
			}))
		repo := &MongoDeliveryHistoryRepository{collection: mt.Coll}

		records, err := repo.FindByUserEmail(context.Background(), "ADA@example.com", 10)
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "AI101", records[0].FlightNumber)
		assert.Equal(t, entity.DeliverySent, records[0].Status)
		assert.True(t, records[0].CreatedAt.Equal(created))
	})
}
