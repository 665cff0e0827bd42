package notifier

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/internal/domain/repository"
	"flightwatch-service/pkg/logger"
)

// SMSConfig holds the credentials of the Twilio-compatible SMS gateway
type SMSConfig struct {
	BaseURL    string
	AccountSID string
	AuthToken  string
	FromNumber string
	Timeout    time.Duration
}

// SMSSender sends text messages through the SMS gateway REST API
type SMSSender struct {
	cfg    SMSConfig
	client *http.Client
	logger logger.Logger
}

// NewSMSSender creates a new SMS sender
func NewSMSSender(cfg SMSConfig, logger logger.Logger) repository.NotificationSender {
	if cfg.BaseURL == "" {
		cfg.BaseURL = "https://api.twilio.com"
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &SMSSender{
		cfg:    cfg,
		client: &http.Client{Timeout: cfg.Timeout},
		logger: logger,
	}
}

// Channel implements NotificationSender
func (s *SMSSender) Channel() entity.NotificationPreference {
	return entity.PreferenceSMS
}

// Send posts the message to the gateway and returns once it is accepted
func (s *SMSSender) Send(ctx context.Context, n *entity.Notification) error {
	if n.Recipient == "" {
		return fmt.Errorf("sms recipient is empty")
	}

	form := url.Values{}
	form.Set("To", n.Recipient)
	form.Set("From", s.cfg.FromNumber)
	form.Set("Body", n.Body)

	endpoint := fmt.Sprintf("%s/2010-04-01/Accounts/%s/Messages.json",
		strings.TrimRight(s.cfg.BaseURL, "/"), url.PathEscape(s.cfg.AccountSID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.SetBasicAuth(s.cfg.AccountSID, s.cfg.AuthToken)
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "application/json")

	resp, err := s.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to send request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		var errorBody struct {
			Code    int    `json:"code"`
			Message string `json:"message"`
		}
		json.NewDecoder(resp.Body).Decode(&errorBody)
		return fmt.Errorf("sms gateway returned status %d: %s (code: %d)", resp.StatusCode, errorBody.Message, errorBody.Code)
	}

	var response struct {
		SID    string `json:"sid"`
		Status string `json:"status"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&response); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}

	s.logger.Info("SMS accepted by gateway",
		"sid", response.SID,
		"status", response.Status,
		"flightNumber", n.FlightNumber)

	return nil
}
