package gmail

import (
	"bytes"
	"context"
	"encoding/base64"
	"fmt"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/interface/notifier"
	"flightwatch-service/pkg/logger"

	"golang.org/x/oauth2"
	"google.golang.org/api/gmail/v1"
	"google.golang.org/api/option"
)

// GmailSender delivers email notifications through the Gmail API
type GmailSender struct {
	gmailService *gmail.Service
	from         string
	domain       string
	logger       logger.Logger
}

// NewGmailSender creates a new Gmail sender authorized by the token source
func NewGmailSender(ctx context.Context, tokenSource oauth2.TokenSource, from, domain string, logger logger.Logger) (*GmailSender, error) {
	service, err := gmail.NewService(ctx, option.WithTokenSource(tokenSource))
	if err != nil {
		return nil, err
	}
	return NewGmailSenderWithService(service, from, domain, logger), nil
}

// NewGmailSenderWithService wraps an already configured Gmail service
func NewGmailSenderWithService(service *gmail.Service, from, domain string, logger logger.Logger) *GmailSender {
	return &GmailSender{
		gmailService: service,
		from:         from,
		domain:       domain,
		logger:       logger,
	}
}

// Channel implements NotificationSender
func (s *GmailSender) Channel() entity.NotificationPreference {
	return entity.PreferenceEmail
}

// Send renders the message and submits it as a raw RFC 822 payload
func (s *GmailSender) Send(ctx context.Context, n *entity.Notification) error {
	var buf bytes.Buffer
	if _, err := notifier.NewEmailMessage(s.from, s.domain, n).WriteTo(&buf); err != nil {
		return fmt.Errorf("failed to render email: %w", err)
	}

	msg := &gmail.Message{
		Raw: base64.URLEncoding.EncodeToString(buf.Bytes()),
	}
	sent, err := s.gmailService.Users.Messages.Send("me", msg).Context(ctx).Do()
	if err != nil {
		return fmt.Errorf("failed to send gmail message: %w", err)
	}

	s.logger.Info("Email sent via Gmail",
		"messageId", sent.Id,
		"flightNumber", n.FlightNumber)
	return nil
}
