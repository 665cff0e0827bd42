package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// FlightStatusRepository stores the per (user, flight) watermarks
type FlightStatusRepository interface {
	FindByEmail(ctx context.Context, email string) ([]*entity.PreviousFlightStatus, error)
	Upsert(ctx context.Context, email string, snapshots []entity.FlightSnapshot) error
	DeleteOrphaned(ctx context.Context) (int64, error)
}
