package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// NotificationSender delivers a notification over one channel
type NotificationSender interface {
	Channel() entity.NotificationPreference
	Send(ctx context.Context, notification *entity.Notification) error
}

// DeliveryHistoryRepository records every dispatch attempt
type DeliveryHistoryRepository interface {
	Save(ctx context.Context, record *entity.DeliveryRecord) error
	FindByUserEmail(ctx context.Context, email string, limit int) ([]*entity.DeliveryRecord, error)
}

// CycleJobRepository keeps the status of dispatched notification cycles
type CycleJobRepository interface {
	Save(ctx context.Context, job *entity.CycleJob) error
	FindByID(ctx context.Context, id string) (*entity.CycleJob, error)
}
