// Package metrics records session activity as Prometheus metrics.
package metrics

import (
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Call outcomes.
const (
	OutcomeOK        = "ok"
	OutcomeTransport = "transport_error"
	OutcomeDecode    = "decode_error"
	OutcomeDispatch  = "dispatch_error"
)

var (
	registerOnce sync.Once

	calls = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prismslink",
			Subsystem: "session",
			Name:      "calls_total",
			Help:      "Server round trips by request method and outcome.",
		},
		[]string{"method", "outcome"},
	)
	callDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: "prismslink",
			Subsystem: "session",
			Name:      "call_duration_seconds",
			Help:      "Server round trip duration in seconds.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method"},
	)
	events = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prismslink",
			Subsystem: "router",
			Name:      "events_total",
			Help:      "Dispatched events by target (plugin name, or control).",
		},
		[]string{"target"},
	)
	keepAlivePolls = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "prismslink",
			Subsystem: "session",
			Name:      "keepalive_polls_total",
			Help:      "getEvents calls issued by the keep-alive timer.",
		},
	)
	handshakes = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "prismslink",
			Subsystem: "session",
			Name:      "handshakes_total",
			Help:      "Encryption handshakes by result.",
		},
		[]string{"result"},
	)
)

// Register adds the collectors to the default registry once.
func Register() {
	registerOnce.Do(func() {
		prometheus.MustRegister(calls, callDuration, events, keepAlivePolls, handshakes)
	})
}

// Handler serves the default registry.
func Handler() http.Handler {
	Register()
	return promhttp.Handler()
}

// RecordCall counts one round trip.
func RecordCall(method, outcome string, d time.Duration) {
	calls.WithLabelValues(method, outcome).Inc()
	callDuration.WithLabelValues(method).Observe(d.Seconds())
}

// RecordEvent counts one dispatched event.
func RecordEvent(target string) {
	events.WithLabelValues(target).Inc()
}

// RecordKeepAlivePoll counts one keep-alive getEvents call.
func RecordKeepAlivePoll() {
	keepAlivePolls.Inc()
}

// RecordHandshake counts one handshake outcome.
func RecordHandshake(result string) {
	handshakes.WithLabelValues(result).Inc()
}
