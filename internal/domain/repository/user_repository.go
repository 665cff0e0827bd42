package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// UserRepository defines the interface for account storage operations
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	List(ctx context.Context) ([]*entity.User, error)
	UpdatePreference(ctx context.Context, email string, preference entity.NotificationPreference) error
}
