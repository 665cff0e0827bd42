package repository

import (
	"context"
	"strings"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
)

// GormFlightRepository implements the FlightRepository interface
type GormFlightRepository struct {
	db *gorm.DB
}

// NewGormFlightRepository creates a new GORM flight repository
func NewGormFlightRepository(db *gorm.DB) repository.FlightRepository {
	return &GormFlightRepository{
		db: db,
	}
}

// Search finds the flights of a given date matching every non-empty filter
func (r *GormFlightRepository) Search(ctx context.Context, query entity.FlightSearch) ([]*entity.Flight, error) {
	tx := r.db.WithContext(ctx).Model(&Flights{}).Where("date = ?", query.Date)

	if v := strings.TrimSpace(query.FlightNumber); v != "" {
		tx = tx.Where("flight_number = ?", v)
	}
	if v := strings.TrimSpace(query.Airline); v != "" {
		if name := strings.TrimSpace(query.AirlineName); name != "" && name != v {
			tx = tx.Where("airline IN ?", []string{v, name})
		} else {
			tx = tx.Where("airline = ?", v)
		}
	}
	if v := strings.TrimSpace(query.Departure); v != "" {
		tx = tx.Where("departure = ?", v)
	}
	if v := strings.TrimSpace(query.Arrival); v != "" {
		tx = tx.Where("arrival = ?", v)
	}

	var models []Flights
	if err := tx.Order("id ASC").Find(&models).Error; err != nil {
		return nil, err
	}
	return toFlightEntities(models), nil
}

// FindByUserEmail returns the flights booked by the user
func (r *GormFlightRepository) FindByUserEmail(ctx context.Context, email string) ([]*entity.Flight, error) {
	var models []Flights
	err := r.db.WithContext(ctx).
		Model(&Flights{}).
		Select("flights.*").
		Joins("JOIN bookings ON bookings.flight_id = flights.id").
		Joins("JOIN users ON users.id = bookings.user_id").
		Where("users.email = ?", normalizeEmail(email)).
		Order("flights.date ASC, flights.id ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return toFlightEntities(models), nil
}

func toFlightEntities(models []Flights) []*entity.Flight {
	flights := make([]*entity.Flight, 0, len(models))
	for _, m := range models {
		flights = append(flights, &entity.Flight{
			ID:           m.ID,
			FlightNumber: m.FlightNumber,
			Airline:      m.Airline,
			Departure:    m.Departure,
			Arrival:      m.Arrival,
			Date:         m.Date,
			Status:       m.Status,
			Gate:         m.Gate,
			Delay:        m.Delay,
			Cancellation: m.Cancellation,
		})
	}
	return flights
}
