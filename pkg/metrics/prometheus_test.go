package metrics

import (
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewMetricsRegistersOnRegistry(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewMetrics("flightwatch", reg)

	m.NotificationsSent.WithLabelValues("email", ResultSent).Inc()
	m.CyclesRun.WithLabelValues("all").Inc()
	m.UsersProcessed.Add(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.NotificationsSent.WithLabelValues("email", ResultSent)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.UsersProcessed))

	families, err := reg.Gather()
	require.NoError(t, err)
	names := make([]string, 0, len(families))
	for _, f := range families {
		names = append(names, f.GetName())
	}
	assert.Contains(t, names, "flightwatch_notifications_total")
	assert.Contains(t, names, "flightwatch_users_processed_total")

	// a second set on a fresh registry does not collide
	assert.NotPanics(t, func() { NewMetrics("flightwatch", prometheus.NewRegistry()) })
}
