package entity

import "time"

// FlightSnapshot holds the fields compared between notification cycles
type FlightSnapshot struct {
	FlightNumber string
	Status       string
	Gate         string
	Delay        string
	Cancellation bool
}

// Equal compares the tracked fields one by one
func (s FlightSnapshot) Equal(other FlightSnapshot) bool {
	return s.Status == other.Status &&
		s.Gate == other.Gate &&
		s.Delay == other.Delay &&
		s.Cancellation == other.Cancellation
}

// PreviousFlightStatus is the watermark recorded for a (user, flight) pair
// at the most recent notification cycle.
type PreviousFlightStatus struct {
	Email string
	FlightSnapshot
	UpdatedAt time.Time
}
