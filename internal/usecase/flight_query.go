package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// SearchInput is the raw query of the flight search endpoints
type SearchInput struct {
	Date         string
	FlightNumber string
	Airline      string
	Departure    string
	Arrival      string
}

// FlightQuery serves the read side of the flight endpoints
type FlightQuery struct {
	flightRepo  repository.FlightRepository
	airlineRepo repository.AirlineRepository
	logger      logger.Logger
}

// NewFlightQuery creates a new flight query service
func NewFlightQuery(flightRepo repository.FlightRepository, airlineRepo repository.AirlineRepository, logger logger.Logger) *FlightQuery {
	return &FlightQuery{
		flightRepo:  flightRepo,
		airlineRepo: airlineRepo,
		logger:      logger,
	}
}

// Search returns the flights on the given date matching the optional filters.
// An airline code known to the reference table also matches flights stored under the airline name.
func (q *FlightQuery) Search(ctx context.Context, in SearchInput) ([]*entity.Flight, error) {
	raw := strings.TrimSpace(in.Date)
	if raw == "" {
		return nil, fmt.Errorf("%w: date is required", ErrValidation)
	}
	date, err := time.ParseInLocation(entity.DateLayout, raw, time.UTC)
	if err != nil {
		return nil, fmt.Errorf("%w: date must be YYYY-MM-DD", ErrValidation)
	}

	airline := strings.TrimSpace(in.Airline)
	return q.flightRepo.Search(ctx, entity.FlightSearch{
		Date:         date,
		FlightNumber: strings.TrimSpace(in.FlightNumber),
		Airline:      airline,
		AirlineName:  q.resolveAirline(ctx, airline),
		Departure:    strings.TrimSpace(in.Departure),
		Arrival:      strings.TrimSpace(in.Arrival),
	})
}

// UserFlights lists the flights booked by the user as status views
func (q *FlightQuery) UserFlights(ctx context.Context, email string) ([]entity.FlightStatusView, error) {
	flights, err := q.flightRepo.FindByUserEmail(ctx, strings.TrimSpace(email))
	if err != nil {
		return nil, err
	}

	views := make([]entity.FlightStatusView, 0, len(flights))
	for _, f := range flights {
		views = append(views, entity.FlightStatusView{
			FlightNumber: f.FlightNumber,
			Status:       f.Status,
			Gate:         f.Gate,
			Arrival:      f.Arrival,
			Delay:        f.Delay,
			Cancellation: f.Cancellation,
		})
	}
	return views, nil
}

// resolveAirline returns the airline name for a known code, or "" otherwise
func (q *FlightQuery) resolveAirline(ctx context.Context, airline string) string {
	if airline == "" || q.airlineRepo == nil {
		return ""
	}

	found, err := q.airlineRepo.GetByCode(ctx, airline)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			q.logger.Warn("Failed to resolve airline code", "airline", airline, "error", err)
		}
		return ""
	}
	if found.Name == airline {
		return ""
	}
	return found.Name
}
