package monitoring

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
)

// Metrics handles metrics collection and reporting. Collectors live on a
// private registry so tests and multiple servers never collide.
type Metrics struct {
	registry *prometheus.Registry
	monitor  *Monitor

	intents            *prometheus.CounterVec
	ordersCreated      prometheus.Counter
	statusUpdates      *prometheus.CounterVec
	generationOutcomes *prometheus.CounterVec
	requestDuration    *prometheus.HistogramVec
}

// NewMetrics creates the collectors and registers them.
func NewMetrics() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		registry: registry,
		monitor:  NewMonitor(),
		intents: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pizzabot_chat_intents_total",
				Help: "Chat messages by resolved intent",
			},
			[]string{"intent"},
		),
		ordersCreated: prometheus.NewCounter(
			prometheus.CounterOpts{
				Name: "pizzabot_orders_created_total",
				Help: "Orders placed through checkout",
			},
		),
		statusUpdates: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pizzabot_order_status_updates_total",
				Help: "Order status changes by target status and result",
			},
			[]string{"status", "result"},
		),
		generationOutcomes: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "pizzabot_generation_outcomes_total",
				Help: "Text generation calls by outcome",
			},
			[]string{"outcome"},
		),
		requestDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "pizzabot_http_request_duration_seconds",
				Help:    "HTTP request latency",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "route", "code"},
		),
	}

	registry.MustRegister(
		m.intents,
		m.ordersCreated,
		m.statusUpdates,
		m.generationOutcomes,
		m.requestDuration,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return m
}

// Registry exposes the registry for promhttp.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// ObserveIntent counts one resolved chat message.
func (m *Metrics) ObserveIntent(intent string) {
	m.intents.WithLabelValues(intent).Inc()
	m.monitor.Increment("chat_messages")
	m.monitor.Increment("intent_" + intent)
}

// ObserveOrderCreated counts one placed order.
func (m *Metrics) ObserveOrderCreated(id uint, total int64) {
	m.ordersCreated.Inc()
	m.monitor.Increment("orders_created")
	m.monitor.RecordMetric("last_order_id", id)
	m.monitor.RecordMetric("last_order_total", total)
}

// ObserveStatusUpdate counts a status change attempt; result is "ok",
// "rejected" or "error".
func (m *Metrics) ObserveStatusUpdate(status, result string) {
	m.statusUpdates.WithLabelValues(status, result).Inc()
	m.monitor.Increment("status_updates_" + result)
}

// ObserveGeneration counts one generation outcome.
func (m *Metrics) ObserveGeneration(outcome string) {
	m.generationOutcomes.WithLabelValues(outcome).Inc()
	m.monitor.Increment("generation_" + outcome)
}

// ObserveRequest records the latency of one HTTP request.
func (m *Metrics) ObserveRequest(method, route string, code int, elapsed time.Duration) {
	m.requestDuration.WithLabelValues(method, route, strconv.Itoa(code)).Observe(elapsed.Seconds())
}

// SetActiveSessions records the live session count in the snapshot.
func (m *Metrics) SetActiveSessions(n int) {
	m.monitor.RecordMetric("active_sessions", n)
}

// Snapshot returns the dashboard view of the counters.
func (m *Metrics) Snapshot() map[string]interface{} {
	return m.monitor.GetMetrics()
}

// ResetSnapshot clears the dashboard counters. The Prometheus collectors are
// left alone.
func (m *Metrics) ResetSnapshot() {
	m.monitor.Reset()
}
