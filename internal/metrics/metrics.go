// Package metrics holds the prometheus collectors recorded by master assembly.
package metrics

import (
	"errors"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

const namespace = "casestack"

// Outcome labels.
const (
	OutcomeOK    = "ok"
	OutcomeError = "error"
)

// Assembly records master assembly counts, stacked leaves and latency.
//
// A nil *Assembly is valid and records nothing.
type Assembly struct {
	assemblies *prometheus.CounterVec
	leaves     prometheus.Counter
	duration   prometheus.Histogram
}

// NewAssembly creates the collectors and registers them with reg. Collectors
// already registered by another Assembly are reused.
func NewAssembly(reg prometheus.Registerer) (*Assembly, error) {
	m := &Assembly{
		assemblies: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "assemblies_total",
			Help:      "Number of master assemblies by container kind and outcome.",
		}, []string{"kind", "outcome"}),
		leaves: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "leaves_total",
			Help:      "Number of per-case leaves stacked into masters.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "assemble_duration_seconds",
			Help:      "Wall time of master assembly.",
			Buckets:   prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
	}

	var err error
	if m.assemblies, err = register(reg, m.assemblies); err != nil {
		return nil, err
	}
	if m.leaves, err = register(reg, m.leaves); err != nil {
		return nil, err
	}
	if m.duration, err = register(reg, m.duration); err != nil {
		return nil, err
	}

	return m, nil
}

func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}

		return c, err
	}

	return c, nil
}

// Observe records one finished assembly.
func (m *Assembly) Observe(kind string, leaves int, elapsed time.Duration, err error) {
	if m == nil {
		return
	}

	outcome := OutcomeOK
	if err != nil {
		outcome = OutcomeError
	} else {
		m.leaves.Add(float64(leaves))
	}
	m.assemblies.WithLabelValues(kind, outcome).Inc()
	m.duration.Observe(elapsed.Seconds())
}
