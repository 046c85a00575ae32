package statetree

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/npillmayer/uistate/state"
)

// Metrics holds the prometheus counters of state tree updates. A nil
// *Metrics is valid and counts nothing.
type Metrics struct {
	batches     prometheus.Counter
	evaluations *prometheus.CounterVec
	changes     *prometheus.CounterVec
	invalid     *prometheus.CounterVec
	stops       *prometheus.CounterVec
}

// NewMetrics creates the update counters and registers them with reg.
// Counter names are prefixed with namespace.
func NewMetrics(reg prometheus.Registerer, namespace string) (*Metrics, error) {
	m := &Metrics{
		batches: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "update_batches_total",
			Help:      "Total number of update batches",
		}),
		evaluations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "evaluations_total",
			Help:      "Total number of node evaluations per derivation kind",
		}, []string{"kind"}),
		changes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "changes_total",
			Help:      "Total number of evaluations which changed a node's state",
		}, []string{"kind"}),
		invalid: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "invalid_values_total",
			Help:      "Total number of evaluations aborted by an invalid attribute value",
		}, []string{"kind"}),
		stops: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "propagation_stops_total",
			Help:      "Total number of unchanged evaluations which stopped upward propagation",
		}, []string{"kind"}),
	}
	for _, c := range []prometheus.Collector{m.batches, m.evaluations, m.changes, m.invalid, m.stops} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) batch() {
	if m != nil {
		m.batches.Inc()
	}
}

func (m *Metrics) evaluated(k state.Kind) {
	if m != nil {
		m.evaluations.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) changed(k state.Kind) {
	if m != nil {
		m.changes.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) invalidValue(k state.Kind) {
	if m != nil {
		m.invalid.WithLabelValues(k.String()).Inc()
	}
}

func (m *Metrics) stopped(k state.Kind) {
	if m != nil {
		m.stops.WithLabelValues(k.String()).Inc()
	}
}
