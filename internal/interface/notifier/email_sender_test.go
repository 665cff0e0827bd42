package notifier

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"flightwatch-service/internal/domain/entity"
	"flightwatch-service/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/gomail.v2"
)

type fakeDialer struct {
	sent []*gomail.Message
	err  error
}

func (d *fakeDialer) DialAndSend(m ...*gomail.Message) error {
	d.sent = append(d.sent, m...)
	return d.err
}

func TestEmailSenderSendsMessage(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewEmailSender(dialer, "alerts@flightwatch.test", "flightwatch.test", logger.NewNop())
	assert.Equal(t, entity.PreferenceEmail, sender.Channel())

	err := sender.Send(context.Background(), &entity.Notification{
		Recipient: "ada@example.com",
		Subject:   "Flight Status Update",
		Body:      "Flight AI101 has an update: Status=Delayed",
	})
	require.NoError(t, err)
	require.Len(t, dialer.sent, 1)

	msg := dialer.sent[0]
	assert.Equal(t, []string{"ada@example.com"}, msg.GetHeader("To"))
	assert.Equal(t, []string{"Flight Status Update"}, msg.GetHeader("Subject"))
	require.Len(t, msg.GetHeader("Message-ID"), 1)
	assert.Contains(t, msg.GetHeader("Message-ID")[0], "@flightwatch.test>")

	var buf bytes.Buffer
	_, err = msg.WriteTo(&buf)
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "Flight AI101 has an update")
}

func TestEmailSenderRelayError(t *testing.T) {
	sender := NewEmailSender(&fakeDialer{err: errors.New("connection refused")}, "a@b.c", "", logger.NewNop())
	err := sender.Send(context.Background(), &entity.Notification{Recipient: "ada@example.com"})
	assert.Error(t, err)
}

func TestEmailSenderCancelledContext(t *testing.T) {
	dialer := &fakeDialer{}
	sender := NewEmailSender(dialer, "a@b.c", "", logger.NewNop())

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, sender.Send(ctx, &entity.Notification{Recipient: "ada@example.com"}), context.Canceled)
	assert.Empty(t, dialer.sent)
}
