package metrics

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"
)

// EventMetrics counts events consumed from the event bus.
type EventMetrics interface {
	RecordEventConsumed(ctx context.Context, topic string)
}

type prometheusEventMetrics struct {
	consumed *prometheus.CounterVec
}

// NewEventMetrics registers the consumed-events counter on reg.
func NewEventMetrics(reg prometheus.Registerer, namespace string) EventMetrics {
	m := &prometheusEventMetrics{
		consumed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "eventbus",
			Name:      "events_consumed_total",
			Help:      "Events handled by in-process subscribers.",
		}, []string{"topic"}),
	}
	reg.MustRegister(m.consumed)
	return m
}

func (m *prometheusEventMetrics) RecordEventConsumed(_ context.Context, topic string) {
	m.consumed.WithLabelValues(topic).Inc()
}

type noopEventMetrics struct{}

// NewNoopEvents returns EventMetrics that discards everything.
func NewNoopEvents() EventMetrics { return noopEventMetrics{} }

func (noopEventMetrics) RecordEventConsumed(context.Context, string) {}
