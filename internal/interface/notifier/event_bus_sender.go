package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// PublishFunc publishes one message with the given routing key
type PublishFunc func(ctx context.Context, routingKey string, msg amqp.Publishing) error

// EventBusSender publishes in-app notifications to a topic exchange. The
// user email is the routing key so consumers can partition by user.
type EventBusSender struct {
	url      string
	exchange string
	publish  PublishFunc
	logger   logger.Logger

	mu   sync.Mutex
	conn *amqp.Connection
	ch   *amqp.Channel
}

// NewEventBusSender creates a sender that connects to the broker lazily
func NewEventBusSender(url, exchange string, logger logger.Logger) *EventBusSender {
	s := &EventBusSender{
		url:      url,
		exchange: exchange,
		logger:   logger,
	}
	s.publish = s.publishAMQP
	return s
}

// NewEventBusSenderWithPublisher creates a sender around an existing publish function
func NewEventBusSenderWithPublisher(exchange string, publish PublishFunc, logger logger.Logger) *EventBusSender {
	return &EventBusSender{
		exchange: exchange,
		publish:  publish,
		logger:   logger,
	}
}

var _ repository.NotificationSender = (*EventBusSender)(nil)

// Channel implements NotificationSender
func (s *EventBusSender) Channel() entity.NotificationPreference {
	return entity.PreferenceInApp
}

// Send publishes the notification event. No delivery confirmation is awaited.
func (s *EventBusSender) Send(ctx context.Context, n *entity.Notification) error {
	event := entity.NotificationEvent{
		Email:        n.UserEmail,
		FlightNumber: n.FlightNumber,
		Message:      n.Body,
		Status:       n.Snapshot.Status,
		Gate:         n.Snapshot.Gate,
		Delay:        n.Snapshot.Delay,
		Cancellation: n.Snapshot.Cancellation,
		SentAt:       time.Now().UTC(),
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event: %w", err)
	}

	pub := amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.New().String(),
		Timestamp:    event.SentAt,
		Body:         body,
	}

	if err := s.publish(ctx, n.Recipient, pub); err != nil {
		return fmt.Errorf("failed to publish event: %w", err)
	}

	s.logger.Debug("Notification event published",
		"exchange", s.exchange,
		"flightNumber", n.FlightNumber)
	return nil
}

func (s *EventBusSender) publishAMQP(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	ch, err := s.channelLocked()
	if err != nil {
		return err
	}

	if err := ch.PublishWithContext(ctx, s.exchange, routingKey, false, false, msg); err != nil {
		// Drop the channel so the next publish reconnects
		s.closeLocked()
		return err
	}
	return nil
}

func (s *EventBusSender) channelLocked() (*amqp.Channel, error) {
	if s.ch != nil && !s.ch.IsClosed() && s.conn != nil && !s.conn.IsClosed() {
		return s.ch, nil
	}
	s.closeLocked()

	conn, err := amqp.Dial(s.url)
	if err != nil {
		return nil, fmt.Errorf("dial broker: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("channel open: %w", err)
	}
	if err := ch.ExchangeDeclare(s.exchange, amqp.ExchangeTopic, true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("exchange declare: %w", err)
	}

	s.conn = conn
	s.ch = ch
	return ch, nil
}

func (s *EventBusSender) closeLocked() {
	if s.ch != nil {
		_ = s.ch.Close()
		s.ch = nil
	}
	if s.conn != nil {
		_ = s.conn.Close()
		s.conn = nil
	}
}

// Close releases the broker connection
func (s *EventBusSender) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closeLocked()
	return nil
}
