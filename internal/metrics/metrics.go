// Package metrics exposes integration statistics to Prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"projectile-sim/internal/trajectory"
)

// Recorder counts integrations and keeps the metrics of the latest one.
// It satisfies scenario.Observer.
type Recorder struct {
	registry *prometheus.Registry

	runs       *prometheus.CounterVec
	samples    *prometheus.HistogramVec
	truncated  prometheus.Counter
	lastRange  *prometheus.GaugeVec
	lastHeight *prometheus.GaugeVec
	lastFlight *prometheus.GaugeVec
}

// NewRecorder registers all collectors on a private registry.
func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		runs: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "projectile_runs_total",
				Help: "Trajectories integrated, by integration mode",
			},
			[]string{"mode"},
		),
		samples: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "projectile_trajectory_samples",
				Help:    "Number of samples per trajectory",
				Buckets: prometheus.ExponentialBuckets(10, 4, 6),
			},
			[]string{"mode"},
		),
		truncated: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "projectile_truncated_total",
			Help: "Trajectories stopped at the sample cap before landing",
		}),
		lastRange: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "projectile_last_range_meters", Help: "Range of the latest trajectory"},
			[]string{"mode"},
		),
		lastHeight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "projectile_last_max_height_meters", Help: "Apex of the latest trajectory"},
			[]string{"mode"},
		),
		lastFlight: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{Name: "projectile_last_flight_time_seconds", Help: "Flight time of the latest trajectory"},
			[]string{"mode"},
		),
	}
	r.registry.MustRegister(r.runs, r.samples, r.truncated, r.lastRange, r.lastHeight, r.lastFlight)
	return r
}

// ObserveRun records one integration.
func (r *Recorder) ObserveRun(p trajectory.Params, tr trajectory.Trajectory, m trajectory.Metrics) {
	mode := string(tr.Mode)
	r.runs.WithLabelValues(mode).Inc()
	r.samples.WithLabelValues(mode).Observe(float64(tr.Len()))
	if tr.Truncated {
		r.truncated.Inc()
	}
	r.lastRange.WithLabelValues(mode).Set(m.Range)
	r.lastHeight.WithLabelValues(mode).Set(m.MaxHeight)
	r.lastFlight.WithLabelValues(mode).Set(m.FlightTime)
}

// Registry returns the registry holding the recorder's collectors.
func (r *Recorder) Registry() *prometheus.Registry { return r.registry }

// Handler serves the registry in the Prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
