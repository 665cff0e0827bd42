package entity

import "time"

// User represents a registered account
type User struct {
	ID                     uint
	Name                   string
	Email                  string
	PhoneNumber            string
	PasswordHash           string
	NotificationPreference NotificationPreference
	FlightIDs              []int64
	CreatedAt              time.Time
	UpdatedAt              time.Time
}
