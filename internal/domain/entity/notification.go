package entity

import "time"

// Delivery outcomes recorded in the notification history
const (
	DeliverySent    = "SENT"
	DeliveryFailed  = "FAILED"
	DeliverySkipped = "SKIPPED"
)

// Notification is a single message handed to a delivery channel
type Notification struct {
	Channel      NotificationPreference
	Recipient    string
	UserEmail    string
	Subject      string
	Body         string
	FlightNumber string
	Snapshot     FlightSnapshot
}

// NotificationEvent is the payload published on the event bus for in-app delivery
type NotificationEvent struct {
	Email        string    `json:"email"`
	FlightNumber string    `json:"flight_number"`
	Message      string    `json:"message"`
	Status       string    `json:"status"`
	Gate         string    `json:"gate"`
	Delay        string    `json:"delay"`
	Cancellation bool      `json:"cancellation"`
	SentAt       time.Time `json:"sent_at"`
}

// DeliveryRecord is one entry in the notification history
type DeliveryRecord struct {
	ID           string    `bson:"_id,omitempty" json:"id"`
	UserEmail    string    `bson:"userEmail" json:"user_email"`
	FlightNumber string    `bson:"flightNumber" json:"flight_number"`
	Channel      string    `bson:"channel" json:"channel"`
	Recipient    string    `bson:"recipient" json:"recipient"`
	Message      string    `bson:"message" json:"message"`
	Status       string    `bson:"status" json:"status"`
	ErrorDetail  string    `bson:"errorDetail,omitempty" json:"error_detail,omitempty"`
	CreatedAt    time.Time `bson:"createdAt" json:"created_at"`
}
