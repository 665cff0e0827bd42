package repository

import (
	"database/sql/driver"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
	"gorm.io/gorm/schema"
)

// FlightList stores users.flights_list as a PostgreSQL integer array
type FlightList []int64

// Value implements driver.Valuer
func (l FlightList) Value() (driver.Value, error) {
	if l == nil {
		return pq.Int64Array{}.Value()
	}
	return pq.Int64Array(l).Value()
}

// Scan implements sql.Scanner
func (l *FlightList) Scan(src interface{}) error {
	return (*pq.Int64Array)(l).Scan(src)
}

// GormDBDataType picks the column type per dialect
func (FlightList) GormDBDataType(db *gorm.DB, field *schema.Field) string {
	if db.Dialector.Name() == "postgres" {
		return "integer[]"
	}
	return "text"
}

// Users GORM model for database mapping
type Users struct {
	ID                     uint       `gorm:"primaryKey"`
	Name                   string     `gorm:"column:name;size:255;not null"`
	Email                  string     `gorm:"column:email;size:255;uniqueIndex;not null"`
	PhoneNumber            string     `gorm:"column:phone_number;size:20;not null;default:''"`
	Password               string     `gorm:"column:password;size:255;not null"`
	NotificationPreference string     `gorm:"column:notification_preference;size:20;not null;default:''"`
	FlightsList            FlightList `gorm:"column:flights_list"`
	CreatedAt              time.Time
	UpdatedAt              time.Time
}

// TableName overrides the default table name
func (Users) TableName() string {
	return "users"
}

// Flights GORM model for database mapping
type Flights struct {
	ID           uint      `gorm:"primaryKey"`
	FlightNumber string    `gorm:"column:flight_number;size:10;not null;index"`
	Airline      string    `gorm:"column:airline;size:50;not null;default:''"`
	Departure    string    `gorm:"column:departure;size:50;not null;default:''"`
	Arrival      string    `gorm:"column:arrival;size:50;not null;default:''"`
	Date         time.Time `gorm:"column:date;type:date;index"`
	Status       string    `gorm:"column:status;size:20;not null;default:''"`
	Gate         string    `gorm:"column:gate_no;size:10;not null;default:''"`
	Delay        string    `gorm:"column:delay;size:10;not null;default:''"`
	Cancellation bool      `gorm:"column:cancellation;not null;default:false"`
}

// TableName overrides the default table name
func (Flights) TableName() string {
	return "flights"
}

// Bookings GORM model for database mapping
type Bookings struct {
	ID       uint    `gorm:"primaryKey"`
	UserID   uint    `gorm:"column:user_id;not null;index"`
	FlightID uint    `gorm:"column:flight_id;not null;index"`
	User     Users   `gorm:"foreignKey:UserID"`
	Flight   Flights `gorm:"foreignKey:FlightID"`
}

// TableName overrides the default table name
func (Bookings) TableName() string {
	return "bookings"
}

// PreviousFlightStatuses GORM model for the watermark table
type PreviousFlightStatuses struct {
	Email        string `gorm:"column:email;size:255;primaryKey"`
	FlightNumber string `gorm:"column:flight_number;size:10;primaryKey"`
	Status       string `gorm:"column:status;size:20;not null;default:''"`
	Gate         string `gorm:"column:gate_no;size:10;not null;default:''"`
	Delay        string `gorm:"column:delay;size:10;not null;default:''"`
	Cancellation bool   `gorm:"column:cancellation;not null;default:false"`
	UpdatedAt    time.Time
}

// TableName overrides the default table name
func (PreviousFlightStatuses) TableName() string {
	return "previous_flight_status"
}

// Migrations is the list of models created by AutoMigrate at startup
var Migrations = []interface{}{
	&Users{},
	&Flights{},
	&Bookings{},
	&PreviousFlightStatuses{},
	&Airlines{},
}
