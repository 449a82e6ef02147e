package engine

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/go-drift/fiber/pkg/core"
)

// Metrics exports render loop events as Prometheus metrics. Register it on
// a Root with core.WithObserver.
type Metrics struct {
	units          prometheus.Counter
	slices         prometheus.Counter
	yields         prometheus.Counter
	commits        prometheus.Counter
	restarts       prometheus.Counter
	effects        *prometheus.CounterVec
	sliceDuration  prometheus.Histogram
	commitDuration prometheus.Histogram
}

var _ core.Observer = (*Metrics)(nil)

var durationBuckets = []float64{0.0001, 0.0005, 0.001, 0.002, 0.004, 0.008, 0.016, 0.05}

// NewMetrics creates the metrics and registers them on reg. A nil reg
// leaves them unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		units: factory.NewCounter(prometheus.CounterOpts{
			Name: "fiber_units_total",
			Help: "Total number of fibers processed",
		}),
		slices: factory.NewCounter(prometheus.CounterOpts{
			Name: "fiber_slices_total",
			Help: "Total number of work loop slices",
		}),
		yields: factory.NewCounter(prometheus.CounterOpts{
			Name: "fiber_yields_total",
			Help: "Slices that ended with work left",
		}),
		commits: factory.NewCounter(prometheus.CounterOpts{
			Name: "fiber_commits_total",
			Help: "Total number of commits",
		}),
		restarts: factory.NewCounter(prometheus.CounterOpts{
			Name: "fiber_restarts_total",
			Help: "Render passes restarted by state updates",
		}),
		effects: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "fiber_effects_total",
			Help: "Host mutations applied by commits",
		}, []string{"effect"}),
		sliceDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fiber_slice_duration_seconds",
			Help:    "Duration of work loop slices",
			Buckets: durationBuckets,
		}),
		commitDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "fiber_commit_duration_seconds",
			Help:    "Duration of commits",
			Buckets: durationBuckets,
		}),
	}
}

// ObserveSlice implements core.Observer.
func (m *Metrics) ObserveSlice(ev core.SliceEvent) {
	m.units.Add(float64(ev.Units))
	m.slices.Inc()
	if ev.Yielded {
		m.yields.Inc()
	}
	m.restarts.Add(float64(ev.Restarts))
	m.sliceDuration.Observe(ev.Duration.Seconds())
}

// ObserveCommit implements core.Observer.
func (m *Metrics) ObserveCommit(ev core.CommitEvent) {
	m.commits.Inc()
	m.effects.WithLabelValues(core.Placement.String()).Add(float64(ev.Placements))
	m.effects.WithLabelValues(core.Update.String()).Add(float64(ev.Updates))
	m.effects.WithLabelValues(core.Deletion.String()).Add(float64(ev.Deletions))
	m.commitDuration.Observe(ev.Duration.Seconds())
}
