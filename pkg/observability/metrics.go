package observability

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/fullytyped/pkg/schema"
)

// Metrics holds the collectors fed by compile and reject events.
type Metrics struct {
	Compiles        *prometheus.CounterVec
	CompileDuration *prometheus.HistogramVec
	Rejections      *prometheus.CounterVec
}

// NewMetrics creates the collectors and registers them with reg.
// A nil reg leaves them unregistered, which is convenient in tests.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Compiles: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fullytyped",
				Name:      "compiles_total",
				Help:      "Total number of schema compilations by type and result.",
			},
			[]string{"type", "result"},
		),
		CompileDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "fullytyped",
				Name:      "compile_duration_seconds",
				Help:      "Duration of schema compilations.",
				Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 8),
			},
			[]string{"type"},
		),
		Rejections: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "fullytyped",
				Name:      "rejections_total",
				Help:      "Total number of values rejected by Validate or Normalize, by type and error code.",
			},
			[]string{"type", "code"},
		),
	}

	if reg != nil {
		for _, c := range []prometheus.Collector{m.Compiles, m.CompileDuration, m.Rejections} {
			if err := reg.Register(c); err != nil {
				return nil, err
			}
		}
	}
	return m, nil
}

// Hooks returns the callbacks that record events into m.
func (m *Metrics) Hooks() schema.Hooks {
	return schema.Hooks{
		OnCompile: func(e *schema.CompileEvent) {
			result := "ok"
			if e.Err != nil {
				result = "error"
			}
			m.Compiles.WithLabelValues(e.Type, result).Inc()
			m.CompileDuration.WithLabelValues(e.Type).Observe(e.Duration.Seconds())
		},
		OnReject: func(e *schema.RejectEvent) {
			m.Rejections.WithLabelValues(e.Type, e.Descriptor.Code).Inc()
		},
	}
}
