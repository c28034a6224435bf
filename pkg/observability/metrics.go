package observability

import (
	"context"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/aretw0/dateq/pkg/domain"
)

// Metrics holds the Prometheus instruments for the search lifecycle.
type Metrics struct {
	searches    *prometheus.CounterVec
	partitions  prometheus.Counter
	equations   prometheus.Counter
	evaluations prometheus.Counter
	discarded   *prometheus.CounterVec
	duration    prometheus.Histogram
}

// NewMetrics creates and registers the instruments. A nil registerer
// uses the default registry.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}

	m := &Metrics{
		searches: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dateq_searches_total",
				Help: "Total number of searches, by outcome",
			},
			[]string{"status"},
		),
		partitions: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dateq_partitions_searched_total",
			Help: "Total number of digit partitions dispatched",
		}),
		equations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dateq_equations_found_total",
			Help: "Total number of deduplicated equations found",
		}),
		evaluations: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "dateq_evaluations_total",
			Help: "Total number of expression evaluations",
		}),
		discarded: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "dateq_discarded_total",
				Help: "Total number of discarded candidates, by failure class",
			},
			[]string{"reason"},
		),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "dateq_search_duration_seconds",
			Help:    "Wall-clock duration of searches",
			Buckets: prometheus.ExponentialBuckets(0.001, 4, 10),
		}),
	}

	reg.MustRegister(m.searches, m.partitions, m.equations, m.evaluations, m.discarded, m.duration)
	return m
}

// Hooks returns lifecycle hooks that feed the instruments. Merge them
// with any host hooks via domain.MergeHooks.
func (m *Metrics) Hooks() domain.LifecycleHooks {
	return domain.LifecycleHooks{
		OnPartition: func(ctx context.Context, e *domain.PartitionEvent) {
			m.partitions.Inc()
		},
		OnEquation: func(ctx context.Context, e *domain.EquationEvent) {
			m.equations.Inc()
		},
		OnSearchEnd: func(ctx context.Context, e *domain.SearchEndEvent) {
			status := "ok"
			if e.Err != nil {
				status = "error"
			}
			m.searches.WithLabelValues(status).Inc()
			m.evaluations.Add(float64(e.Stats.Evaluations))
			m.duration.Observe(e.Stats.Duration.Seconds())

			d := e.Stats.Discarded
			m.discarded.WithLabelValues("division_by_zero").Add(float64(d.DivisionByZero))
			m.discarded.WithLabelValues("factorial_domain").Add(float64(d.FactorialDomain))
			m.discarded.WithLabelValues("invalid_result").Add(float64(d.InvalidResult))
			m.discarded.WithLabelValues("overflow").Add(float64(d.Overflow))
		},
	}
}
