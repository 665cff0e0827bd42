package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CYCLE_INTERVAL", "")
	t.Setenv("EMAIL_TRANSPORT", "")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "smtp", cfg.EmailTransport)
	assert.Equal(t, time.Duration(0), cfg.CycleInterval)
	assert.Equal(t, "flight-status-notifications", cfg.EventExchange)
	assert.Equal(t, "https://api.twilio.com", cfg.SMSBaseURL)
}

func TestLoadConfigOverrides(t *testing.T) {
	t.Setenv("CYCLE_INTERVAL", "90s")
	t.Setenv("CYCLE_TIMEOUT", "45")
	t.Setenv("CYCLE_ASYNC", "true")
	t.Setenv("CYCLE_WORKERS", "not-a-number")
	t.Setenv("EMAIL_TRANSPORT", "Gmail")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, 90*time.Second, cfg.CycleInterval)
	assert.Equal(t, 45*time.Second, cfg.CycleTimeout)
	assert.True(t, cfg.CycleAsync)
	assert.Equal(t, 4, cfg.CycleWorkers)
	assert.Equal(t, "gmail", cfg.EmailTransport)
}
