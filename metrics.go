package grantkit

import (
	"errors"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects Prometheus metrics for permission checks. A nil *Metrics
// is valid and records nothing, so instrumentation stays optional.
type Metrics struct {
	decisions  *prometheus.CounterVec
	faults     *prometheus.CounterVec
	chainDepth prometheus.Histogram
}

// NewMetrics creates the check metrics and registers them on reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		decisions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grantkit_decisions_total",
			Help: "Permission check decisions by action and outcome.",
		}, []string{"action", "outcome"}),
		faults: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "grantkit_structural_faults_total",
			Help: "Role graph faults surfaced during checks, by kind.",
		}, []string{"kind"}),
		chainDepth: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "grantkit_ancestor_chain_depth",
			Help:    "Ancestor chain length walked per check.",
			Buckets: []float64{1, 2, 4, 8, 16, 32, 64},
		}),
	}
	reg.MustRegister(m.decisions, m.faults, m.chainDepth)
	return m
}

func (m *Metrics) observeDecision(action string, permitted bool, depth int) {
	if m == nil {
		return
	}
	outcome := "deny"
	if permitted {
		outcome = "allow"
	}
	m.decisions.WithLabelValues(action, outcome).Inc()
	m.chainDepth.Observe(float64(depth))
}

func (m *Metrics) observeFault(err error) {
	if m == nil {
		return
	}
	var kind string
	switch {
	case errors.Is(err, ErrUnknownRole):
		kind = "unknown_role"
	case errors.Is(err, ErrCyclicHierarchy):
		kind = "cyclic_hierarchy"
	case errors.Is(err, ErrHierarchyTooDeep):
		kind = "hierarchy_too_deep"
	default:
		kind = "other"
	}
	m.faults.WithLabelValues(kind).Inc()
}
