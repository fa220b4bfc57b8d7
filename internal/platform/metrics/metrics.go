package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	SinkAnalytics = "analytics"
	SinkWebhook   = "webhook"
	SinkJournal   = "journal"

	OutcomeSent    = "sent"
	OutcomeFailed  = "failed"
	OutcomeSkipped = "skipped"
)

// Metrics tracks what the relay forwarded and how each sink behaved.
type Metrics struct {
	EventsTotal         *prometheus.CounterVec
	SuppressedPageviews prometheus.Counter
	SinkDuration        *prometheus.HistogramVec
}

// New registers the relay metrics on reg. Pass prometheus.NewRegistry() in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		EventsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "attribution_events_total",
			Help: "Events handed to a sink, by event name, sink and outcome",
		}, []string{"event", "sink", "outcome"}),
		SuppressedPageviews: factory.NewCounter(prometheus.CounterOpts{
			Name: "attribution_suppressed_pageviews_total",
			Help: "Pageviews dropped because the visitor had no identity and no first touch",
		}),
		SinkDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "attribution_sink_duration_seconds",
			Help:    "Duration of calls to external sinks",
			Buckets: []float64{0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5},
		}, []string{"sink"}),
	}
}

func (m *Metrics) IncrementEvent(event, sink, outcome string) {
	if m == nil {
		return
	}
	m.EventsTotal.WithLabelValues(event, sink, outcome).Inc()
}

func (m *Metrics) IncrementSuppressed() {
	if m == nil {
		return
	}
	m.SuppressedPageviews.Inc()
}

// ObserveSink records the duration of a sink call.
// Call with time.Now() at the start of the operation.
func (m *Metrics) ObserveSink(sink string, start time.Time) {
	if m == nil {
		return
	}
	m.SinkDuration.WithLabelValues(sink).Observe(time.Since(start).Seconds())
}
