package templates

import (
	"fmt"

	"flightwatch-service/internal/domain/entity"
)

// FlightUpdateSubject is the subject line of flight update emails
const FlightUpdateSubject = "Flight Status Update"

// FlightUpdateTemplate renders the flight status update message
type FlightUpdateTemplate struct{}

// NewFlightUpdateTemplate creates a new flight update template
func NewFlightUpdateTemplate() *FlightUpdateTemplate {
	return &FlightUpdateTemplate{}
}

// Compose returns the subject and body for a changed flight
func (t *FlightUpdateTemplate) Compose(snapshot entity.FlightSnapshot) (string, string) {
	return FlightUpdateSubject, FlightUpdateMessage(snapshot)
}

// FlightUpdateMessage formats the body shared by every channel
func FlightUpdateMessage(s entity.FlightSnapshot) string {
	return fmt.Sprintf("Flight %s has an update: Status=%s, Gate No=%s, Delay=%s, Cancellation=%s",
		s.FlightNumber, s.Status, s.Gate, s.Delay, formatCancellation(s.Cancellation))
}

func formatCancellation(cancelled bool) string {
	if cancelled {
		return "True"
	}
	return "False"
}
