// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TurnsTotal tracks processed dialogue turns by slot and outcome
	// (resolved, clarification, rejected_validation, rejected_lock).
	TurnsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_turns_total",
			Help: "Total dialogue turns processed",
		},
		[]string{"slot", "outcome"},
	)

	// SlotsLockedTotal tracks slots confirmed and locked.
	SlotsLockedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_slots_locked_total",
			Help: "Total slots locked",
		},
		[]string{"slot"},
	)

	// ClarificationsTotal tracks clarification questions returned.
	ClarificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_clarifications_total",
			Help: "Total clarification questions returned",
		},
		[]string{"slot"},
	)

	// TripsCompletedTotal tracks conversations reaching the complete
	// state.
	TripsCompletedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dialogue_trips_completed_total",
			Help: "Total trip specifications completed",
		},
	)

	// ConversationsTotal tracks conversations created.
	ConversationsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dialogue_conversations_total",
			Help: "Total conversations created",
		},
	)

	// StoreOpDuration tracks state store load/save latency.
	StoreOpDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "state_store_op_duration_seconds",
			Help:    "State store operation duration in seconds",
			Buckets: []float64{.001, .0025, .005, .01, .025, .05, .1, .25, .5, 1},
		},
		[]string{"op"},
	)

	// EventsPublishedTotal tracks turn events published to JetStream.
	EventsPublishedTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_events_published_total",
			Help: "Total turn events published",
		},
		[]string{"type"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordTurn records the outcome of one processed turn.
func RecordTurn(slot, outcome string) {
	TurnsTotal.WithLabelValues(slot, outcome).Inc()
}

// RecordSlotLocked records a slot lock.
func RecordSlotLocked(slot string) {
	SlotsLockedTotal.WithLabelValues(slot).Inc()
}

// RecordClarification records a clarification question.
func RecordClarification(slot string) {
	ClarificationsTotal.WithLabelValues(slot).Inc()
}

// ObserveStoreOp records state store operation latency.
func ObserveStoreOp(op string, seconds float64) {
	StoreOpDuration.WithLabelValues(op).Observe(seconds)
}
