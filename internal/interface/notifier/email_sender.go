package notifier

import (
	"context"
	"fmt"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"

	"github.com/google/uuid"
	"gopkg.in/gomail.v2"
)

// MailDialer is the part of *gomail.Dialer used by EmailSender
type MailDialer interface {
	DialAndSend(m ...*gomail.Message) error
}

// EmailSender delivers notifications over SMTP
type EmailSender struct {
	dialer MailDialer
	from   string
	domain string
	logger logger.Logger
}

// NewSMTPDialer builds the gomail dialer for the relay
func NewSMTPDialer(host string, port int, username, password string) *gomail.Dialer {
	return gomail.NewDialer(host, port, username, password)
}

// NewEmailSender creates a new SMTP email sender
func NewEmailSender(dialer MailDialer, from, domain string, logger logger.Logger) repository.NotificationSender {
	return &EmailSender{
		dialer: dialer,
		from:   from,
		domain: domain,
		logger: logger,
	}
}

// Channel implements NotificationSender
func (s *EmailSender) Channel() entity.NotificationPreference {
	return entity.PreferenceEmail
}

// Send dials the relay and sends a plain text message
func (s *EmailSender) Send(ctx context.Context, n *entity.Notification) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := NewEmailMessage(s.from, s.domain, n)
	if err := s.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}

	s.logger.Info("Email sent", "flightNumber", n.FlightNumber)
	return nil
}

// NewEmailMessage renders a notification as an RFC 822 message
func NewEmailMessage(from, domain string, n *entity.Notification) *gomail.Message {
	msg := gomail.NewMessage()
	msg.SetHeader("Message-ID", generateMessageID(domain))
	msg.SetHeader("Date", time.Now().Format(time.RFC1123Z))
	msg.SetHeader("From", from)
	msg.SetHeader("To", n.Recipient)
	msg.SetHeader("Subject", n.Subject)
	msg.SetBody("text/plain", n.Body)
	return msg
}

func generateMessageID(domain string) string {
	if domain == "" {
		domain = "localhost"
	}
	return fmt.Sprintf("<%s@%s>", uuid.New().String(), domain)
}
