package entity

import (
	"time"

	"gorm.io/gorm"
)

// Airline is reference data used to resolve airline codes in flight searches
type Airline struct {
	ID        uint
	Code      string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt
}
