package progress

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/openshift/ci-regression-reporter/pkg/regressionreport/reconcile"
)

const (
	outcomeProcessed = "processed"
	outcomeSkipped   = "skipped"
)

// Metrics counts the builds the engine processed. The metrics are registered
// on their own registry, exported once the report is done.
type Metrics struct {
	registry        *prometheus.Registry
	builds          *prometheus.CounterVec
	lastBuildNumber *prometheus.GaugeVec

	lock   sync.Mutex
	newest map[string]int
}

func NewMetrics() *Metrics {
	m := &Metrics{
		registry: prometheus.NewRegistry(),
		builds: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "regression_report_builds_total",
			Help: "Builds read while reconciling regression results, by job and outcome.",
		}, []string{"job", "outcome"}),
		lastBuildNumber: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "regression_report_last_build_number",
			Help: "Number of the newest build read for a job.",
		}, []string{"job"}),
		newest: map[string]int{},
	}
	m.registry.MustRegister(m.builds, m.lastBuildNumber)
	return m
}

func (m *Metrics) BuildProcessed(p reconcile.Progress) {
	outcome := outcomeProcessed
	if p.Skipped {
		outcome = outcomeSkipped
	}
	m.builds.With(prometheus.Labels{"job": p.Job, "outcome": outcome}).Inc()
	if p.Skipped {
		return
	}

	m.lock.Lock()
	defer m.lock.Unlock()
	if newest, seen := m.newest[p.Job]; seen && newest >= p.BuildNumber {
		return
	}
	m.newest[p.Job] = p.BuildNumber
	m.lastBuildNumber.With(prometheus.Labels{"job": p.Job}).Set(float64(p.BuildNumber))
}

// Gatherer exposes the registry holding the metrics.
func (m *Metrics) Gatherer() prometheus.Gatherer {
	return m.registry
}

// WriteTextfile writes the metrics in the text exposition format, replacing filename atomically.
func (m *Metrics) WriteTextfile(filename string) error {
	return prometheus.WriteToTextfile(filename, m.registry)
}
