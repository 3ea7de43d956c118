// Package metrics holds the Prometheus collectors shared by the gateway and the processor.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels
const (
	OutcomeSuccess = "success"
	OutcomeError   = "error"
)

// Transaction intake labels
const (
	SourceHTTP  = "http"
	SourceKafka = "kafka"
)

// Metrics owns a private registry so tests can build as many as they like.
type Metrics struct {
	Registry *prometheus.Registry

	bookOperations        *prometheus.CounterVec
	bookOperationDuration *prometheus.HistogramVec
	transactions          *prometheus.CounterVec
	outboxMessages        *prometheus.CounterVec
	httpRequests          *prometheus.CounterVec
}

// New registers every collector in a fresh registry.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Metrics{
		Registry: reg,

		bookOperations: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zeppelin_book_operations_total",
				Help: "Book operations by name and outcome.",
			},
			[]string{"operation", "outcome"},
		),
		bookOperationDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "zeppelin_book_operation_duration_seconds",
				Help:    "Duration of book operations, including load and save.",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"operation"},
		),
		transactions: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zeppelin_transactions_total",
				Help: "Journal transactions submitted, by intake and outcome.",
			},
			[]string{"source", "outcome"},
		),
		outboxMessages: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zeppelin_outbox_messages_total",
				Help: "Outbox messages handled by the poller, by outcome.",
			},
			[]string{"outcome"},
		),
		httpRequests: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "zeppelin_http_requests_total",
				Help: "HTTP requests by route and status code class.",
			},
			[]string{"route", "status"},
		),
	}
}

func outcome(err error) string {
	if err != nil {
		return OutcomeError
	}
	return OutcomeSuccess
}

// ObserveBookOperation records one book operation that started at start.
func (m *Metrics) ObserveBookOperation(operation string, start time.Time, err error) {
	m.bookOperations.WithLabelValues(operation, outcome(err)).Inc()
	m.bookOperationDuration.WithLabelValues(operation).Observe(time.Since(start).Seconds())
}

// IncrTransaction counts a submitted transaction under SourceHTTP or SourceKafka.
func (m *Metrics) IncrTransaction(source string, err error) {
	m.transactions.WithLabelValues(source, outcome(err)).Inc()
}

// IncrOutboxMessage counts a message the poller archived ("processed"), will retry ("retry") or gave up on ("failed").
func (m *Metrics) IncrOutboxMessage(result string) {
	m.outboxMessages.WithLabelValues(result).Inc()
}

// IncrHTTPRequest counts a served request under its route template.
func (m *Metrics) IncrHTTPRequest(route string, status int) {
	m.httpRequests.WithLabelValues(route, statusClass(status)).Inc()
}

func statusClass(status int) string {
	switch {
	case status >= 500:
		return "5xx"
	case status >= 400:
		return "4xx"
	case status >= 300:
		return "3xx"
	default:
		return "2xx"
	}
}

// Handler exposes the registry in the Prometheus text format.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.Registry, promhttp.HandlerOpts{Registry: m.Registry})
}
