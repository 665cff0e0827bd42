package repository

import (
	"context"

	"flightwatch-service/internal/domain/entity"
)

// FlightRepository defines the interface for flight queries
type FlightRepository interface {
	Search(ctx context.Context, query entity.FlightSearch) ([]*entity.Flight, error)
	FindByUserEmail(ctx context.Context, email string) ([]*entity.Flight, error)
}
