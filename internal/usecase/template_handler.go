package usecase

import (
	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
)

// MessageComposer renders the notification for a changed flight
type MessageComposer interface {
	// Compose returns the subject and body for the snapshot
	Compose(snapshot entity.FlightSnapshot) (subject string, body string)
}

// ChannelRouter routes notifications to the sender matching a user's preference
type ChannelRouter interface {
	// Register registers a sender for the channel it reports
	Register(sender repository.NotificationSender)

	// SenderFor returns the sender for a preference, nil when none is registered
	SenderFor(preference entity.NotificationPreference) repository.NotificationSender
}
