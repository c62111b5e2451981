package metrics

import (
	"context"
	"net/http"

	"github.com/aretw0/transposer/pkg/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics holds the prometheus collectors fed by runner lifecycle hooks.
type Metrics struct {
	registry       *prometheus.Registry
	transpositions *prometheus.CounterVec
	annotations    prometheus.Counter
	truncated      prometheus.Counter
	duration       *prometheus.HistogramVec
}

// New creates the collectors on a private registry.
func New() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		transpositions: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "transposer_transpositions_total",
				Help: "Transpositions attempted, by destination key and outcome",
			},
			[]string{"destination", "status"},
		),
		annotations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transposer_annotations_rewritten_total",
			Help: "Annotations rewritten across all successful transpositions",
		}),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "transposer_truncated_scans_total",
			Help: "Annotation scans stopped by an unmatched parenthesis",
		}),
		duration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "transposer_transpose_duration_seconds",
				Help:    "Duration of a single destination transposition",
				Buckets: prometheus.ExponentialBuckets(0.00001, 4, 10),
			},
			[]string{"status"},
		),
	}
	m.registry.MustRegister(m.transpositions, m.annotations, m.truncated, m.duration)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the collected metrics.
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// Hooks returns lifecycle hooks that record every runner event.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTranspose: func(ctx context.Context, e *domain.TransposeEvent) {
			m.transpositions.WithLabelValues(e.Destination.Name, "ok").Inc()
			m.annotations.Add(float64(e.Annotations))
			m.duration.WithLabelValues("ok").Observe(e.Duration.Seconds())
		},
		OnFailure: func(ctx context.Context, e *domain.TransposeEvent) {
			m.transpositions.WithLabelValues(e.Destination.Name, "error").Inc()
			m.duration.WithLabelValues("error").Observe(e.Duration.Seconds())
		},
		OnTruncated: func(ctx context.Context, e *domain.TruncatedEvent) {
			m.truncated.Inc()
		},
	}
}

// Chain merges several hook sets; each callback runs in order.
func Chain(hooks ...domain.LifecycleHooks) domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnTranspose: func(ctx context.Context, e *domain.TransposeEvent) {
			for _, h := range hooks {
				if h.OnTranspose != nil {
					h.OnTranspose(ctx, e)
				}
			}
		},
		OnFailure: func(ctx context.Context, e *domain.TransposeEvent) {
			for _, h := range hooks {
				if h.OnFailure != nil {
					h.OnFailure(ctx, e)
				}
			}
		},
		OnTruncated: func(ctx context.Context, e *domain.TruncatedEvent) {
			for _, h := range hooks {
				if h.OnTruncated != nil {
					h.OnTruncated(ctx, e)
				}
			}
		},
	}
}
