package monitoring

import (
	"context"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pizzabot/internal/generation"
)

func TestMonitor_GetMetrics(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)
	m.Increment("orders_created")
	m.Increment("orders_created")

	metrics := m.GetMetrics()

	assert.Equal(t, 42, metrics["test_metric"])
	assert.Equal(t, int64(2), metrics["orders_created"])
	assert.Contains(t, metrics, "uptime_seconds")
}

func TestMonitor_Reset(t *testing.T) {
	m := NewMonitor()
	m.RecordMetric("test_metric", 42)

	m.Reset()

	metrics := m.GetMetrics()
	assert.NotContains(t, metrics, "test_metric")
	// uptime is added on every GetMetrics call
	assert.Contains(t, metrics, "uptime_seconds")
}

func TestMetrics_Counters(t *testing.T) {
	m := NewMetrics()

	m.ObserveIntent("track")
	m.ObserveIntent("track")
	m.ObserveIntent("general")
	m.ObserveOrderCreated(7, 1580)
	m.ObserveStatusUpdate("Cooking", "ok")
	m.ObserveStatusUpdate("Pending", "rejected")
	m.ObserveRequest("GET", "/api/v1/menu", 200, 15*time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.intents.WithLabelValues("track")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.intents.WithLabelValues("general")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.statusUpdates.WithLabelValues("Pending", "rejected")))
	assert.Equal(t, 1, testutil.CollectAndCount(m.requestDuration))

	snap := m.Snapshot()
	assert.Equal(t, int64(3), snap["chat_messages"])
	assert.Equal(t, int64(2), snap["intent_track"])
	assert.Equal(t, uint(7), snap["last_order_id"])
	assert.Equal(t, int64(1), snap["status_updates_rejected"])

	m.ResetSnapshot()
	snap = m.Snapshot()
	assert.NotContains(t, snap, "chat_messages")
	// Prometheus counters are monotonic and survive a snapshot reset
	assert.Equal(t, 1.0, testutil.ToFloat64(m.ordersCreated))
}

type fixedGenerator struct{ res generation.Result }

func (g fixedGenerator) Generate(context.Context, string, string) generation.Result { return g.res }

func TestInstrumentGenerator(t *testing.T) {
	m := NewMetrics()
	g := InstrumentGenerator(fixedGenerator{res: generation.Result{Outcome: generation.OutcomeTimeout}}, m)

	res := g.Generate(context.Background(), "hi", "English")
	require.Equal(t, generation.OutcomeTimeout, res.Outcome)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.generationOutcomes.WithLabelValues("timeout")))
	assert.Equal(t, int64(1), m.Snapshot()["generation_timeout"])
}
