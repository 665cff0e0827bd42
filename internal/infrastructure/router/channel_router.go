package router

import (
	"sync"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// ChannelRouter routes notifications to the sender registered for a preference
type ChannelRouter struct {
	mu      sync.RWMutex
	senders map[entity.NotificationPreference]repository.NotificationSender
	logger  logger.Logger
}

// NewChannelRouter creates a new channel router
func NewChannelRouter(logger logger.Logger) *ChannelRouter {
	return &ChannelRouter{
		senders: make(map[entity.NotificationPreference]repository.NotificationSender),
		logger:  logger,
	}
}

// Register registers a sender for the channel it reports.
// A later registration for the same channel replaces the earlier one.
func (r *ChannelRouter) Register(sender repository.NotificationSender) {
	channel := sender.Channel()
	if !channel.IsValid() {
		r.logger.Warn("Ignoring sender for unknown channel", "channel", channel.String())
		return
	}

	r.mu.Lock()
	r.senders[channel] = sender
	r.mu.Unlock()
	r.logger.Info("Registered sender", "channel", channel.String())
}

// SenderFor returns the sender for a preference, nil when none matches
func (r *ChannelRouter) SenderFor(preference entity.NotificationPreference) repository.NotificationSender {
	if !preference.IsValid() {
		return nil
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.senders[preference]
}
