package entity

import "time"

// DateLayout is the calendar date format used by the flight search API
const DateLayout = "2006-01-02"

// Flight is the current state of a flight as maintained by the external feed
type Flight struct {
	ID           uint
	FlightNumber string
	Airline      string
	Departure    string
	Arrival      string
	Date         time.Time
	Status       string
	Gate         string
	Delay        string
	Cancellation bool
}

// Snapshot returns the tracked fields of the flight
func (f Flight) Snapshot() FlightSnapshot {
	return FlightSnapshot{
		FlightNumber: f.FlightNumber,
		Status:       f.Status,
		Gate:         f.Gate,
		Delay:        f.Delay,
		Cancellation: f.Cancellation,
	}
}

// FlightSearch holds the filters accepted by the flight search endpoints.
// Empty fields are not applied.
type FlightSearch struct {
	Date         time.Time
	FlightNumber string
	Airline      string
	// AirlineName is the reference name of an Airline code, matched as an alternative
	AirlineName  string
	Departure    string
	Arrival      string
}

// FlightStatusView is a flight as seen through one of the user's bookings
type FlightStatusView struct {
	FlightNumber string `json:"flight_number"`
	Status       string `json:"status"`
	Gate         string `json:"gate"`
	Arrival      string `json:"arrival"`
	Delay        string `json:"delay"`
	Cancellation bool   `json:"cancellation"`
}
