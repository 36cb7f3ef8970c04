package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics tracks provisioning cycles and availability probes. All methods are
// safe on a nil receiver so callers can run without metrics.
type Metrics struct {
	Registry *prometheus.Registry

	// Cycle results by outcome and the step that ended the cycle.
	Cycles *prometheus.CounterVec

	// Remote step latencies.
	StepDuration *prometheus.HistogramVec

	// Money reported by the registrar for successful purchases.
	Spent prometheus.Counter

	// Availability probe results by classification.
	Probes *prometheus.CounterVec
}

// New registers every metric on a fresh registry so repeated runs in one
// process (and tests) don't collide on the default registerer.
func New() *Metrics {
	reg := prometheus.NewRegistry()
	f := promauto.With(reg)

	return &Metrics{
		Registry: reg,
		Cycles: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dotprovision_cycles_total",
			Help: "Provisioning cycles by result and the step they ended on",
		}, []string{"result", "step"}), // result: "succeeded", "failed", "skipped"

		StepDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "dotprovision_step_duration_seconds",
			Help:    "Duration of provisioning steps",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"step"}),

		Spent: f.NewCounter(prometheus.CounterOpts{
			Name: "dotprovision_purchase_spent_total",
			Help: "Total amount paid to the registrar",
		}),

		Probes: f.NewCounterVec(prometheus.CounterOpts{
			Name: "dotprovision_probes_total",
			Help: "Availability probes by classification",
		}, []string{"status"}),
	}
}

func (m *Metrics) IncrementCycle(result, step string) {
	if m != nil {
		m.Cycles.WithLabelValues(result, step).Inc()
	}
}

func (m *Metrics) ObserveStep(step string, d time.Duration) {
	if m != nil {
		m.StepDuration.WithLabelValues(step).Observe(d.Seconds())
	}
}

func (m *Metrics) AddSpent(amount float64) {
	if m != nil && amount > 0 {
		m.Spent.Add(amount)
	}
}

func (m *Metrics) IncrementProbe(status string) {
	if m != nil {
		m.Probes.WithLabelValues(status).Inc()
	}
}

// WriteTextfile dumps the registry in the node_exporter textfile format.
func (m *Metrics) WriteTextfile(path string) error {
	if m == nil || path == "" {
		return nil
	}
	return prometheus.WriteToTextfile(path, m.Registry)
}
