package repository

import (
	"context"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormFlightStatusRepository implements the FlightStatusRepository interface
type GormFlightStatusRepository struct {
	db *gorm.DB
}

// NewGormFlightStatusRepository creates a new GORM watermark repository
func NewGormFlightStatusRepository(db *gorm.DB) repository.FlightStatusRepository {
	return &GormFlightStatusRepository{
		db: db,
	}
}

// FindByEmail returns every watermark recorded for the user
func (r *GormFlightStatusRepository) FindByEmail(ctx context.Context, email string) ([]*entity.PreviousFlightStatus, error) {
	var models []PreviousFlightStatuses
	err := r.db.WithContext(ctx).
		Where("email = ?", normalizeEmail(email)).
		Order("flight_number ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}

	statuses := make([]*entity.PreviousFlightStatus, 0, len(models))
	for _, m := range models {
		statuses = append(statuses, &entity.PreviousFlightStatus{
			Email: m.Email,
			FlightSnapshot: entity.FlightSnapshot{
				FlightNumber: m.FlightNumber,
				Status:       m.Status,
				Gate:         m.Gate,
				Delay:        m.Delay,
				Cancellation: m.Cancellation,
			},
			UpdatedAt: m.UpdatedAt,
		})
	}
	return statuses, nil
}

// Upsert writes the snapshots for the user in one transaction, inserting new
// pairs and overwriting the tracked fields of existing ones.
func (r *GormFlightStatusRepository) Upsert(ctx context.Context, email string, snapshots []entity.FlightSnapshot) error {
	if len(snapshots) == 0 {
		return nil
	}

	now := time.Now().UTC()
	rows := make([]PreviousFlightStatuses, 0, len(snapshots))
	for _, s := range snapshots {
		rows = append(rows, PreviousFlightStatuses{
			Email:        normalizeEmail(email),
			FlightNumber: s.FlightNumber,
			Status:       s.Status,
			Gate:         s.Gate,
			Delay:        s.Delay,
			Cancellation: s.Cancellation,
			UpdatedAt:    now,
		})
	}

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "email"}, {Name: "flight_number"}},
			DoUpdates: clause.AssignmentColumns([]string{"status", "gate_no", "delay", "cancellation", "updated_at"}),
		}).Create(&rows).Error
	})
}

// DeleteOrphaned removes watermarks whose (email, flight number) pair no longer
// has a booking behind it.
func (r *GormFlightStatusRepository) DeleteOrphaned(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).Exec(`
		DELETE FROM previous_flight_status
		WHERE NOT EXISTS (
			SELECT 1 FROM bookings
			JOIN users ON users.id = bookings.user_id
			JOIN flights ON flights.id = bookings.flight_id
			WHERE users.email = previous_flight_status.email
			AND flights.flight_number = previous_flight_status.flight_number
		)`)
	return result.RowsAffected, result.Error
}
