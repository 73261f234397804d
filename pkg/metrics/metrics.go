// Package metrics exposes Prometheus instrumentation for the simulation and
// interaction layers.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Registry holds all metrics for one process.
type Registry struct {
	// Simulation
	TicksTotal    prometheus.Counter
	StepDuration  prometheus.Histogram
	Alpha         prometheus.Gauge
	SceneNodes    prometheus.Gauge
	SceneLinks    prometheus.Gauge
	ViewsTotal    prometheus.Counter
	ViewBuildTime prometheus.Histogram

	// Interaction
	DragEventsTotal *prometheus.CounterVec
	SelectionsTotal *prometheus.CounterVec

	registry *prometheus.Registry
}

// NewRegistry creates a registry with all collectors registered.
func NewRegistry() *Registry {
	reg := prometheus.NewRegistry()
	r := &Registry{registry: reg}

	r.TicksTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "textnet_simulation_ticks_total",
		Help: "Total number of solver steps taken",
	})
	r.StepDuration = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "textnet_simulation_step_duration_seconds",
		Help:    "Duration of one solver step",
		Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1},
	})
	r.Alpha = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "textnet_simulation_alpha",
		Help: "Current simulation temperature",
	})
	r.SceneNodes = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "textnet_scene_nodes",
		Help: "Nodes bound in the current scene",
	})
	r.SceneLinks = promauto.With(reg).NewGauge(prometheus.GaugeOpts{
		Name: "textnet_scene_links",
		Help: "Links bound in the current scene",
	})
	r.ViewsTotal = promauto.With(reg).NewCounter(prometheus.CounterOpts{
		Name: "textnet_views_constructed_total",
		Help: "Graph views constructed over the process lifetime",
	})
	r.ViewBuildTime = promauto.With(reg).NewHistogram(prometheus.HistogramOpts{
		Name:    "textnet_view_build_duration_seconds",
		Help:    "Time to resolve, style, and bind a new graph view",
		Buckets: []float64{0.001, 0.01, 0.05, 0.1, 0.5, 1},
	})
	r.DragEventsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "textnet_drag_events_total",
		Help: "Drag protocol events by phase",
	}, []string{"phase"})
	r.SelectionsTotal = promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
		Name: "textnet_selections_total",
		Help: "Selection events by primitive kind and context hit/miss",
	}, []string{"kind", "found"})

	return r
}

// RecordStep records one completed solver step.
func (r *Registry) RecordStep(alpha float64, duration time.Duration) {
	r.TicksTotal.Inc()
	r.StepDuration.Observe(duration.Seconds())
	r.Alpha.Set(alpha)
}

// RecordViewBuilt records a successful view construction.
func (r *Registry) RecordViewBuilt(nodes, links int, duration time.Duration) {
	r.ViewsTotal.Inc()
	r.ViewBuildTime.Observe(duration.Seconds())
	r.SceneNodes.Set(float64(nodes))
	r.SceneLinks.Set(float64(links))
}

// RecordDrag records a drag protocol event ("start", "move", "end").
func (r *Registry) RecordDrag(phase string) {
	r.DragEventsTotal.WithLabelValues(phase).Inc()
}

// RecordSelection records a selection event. kind is "node" or "link".
func (r *Registry) RecordSelection(kind string, found bool) {
	f := "false"
	if found {
		f = "true"
	}
	r.SelectionsTotal.WithLabelValues(kind, f).Inc()
}

// Handler returns an HTTP handler serving the registry in Prometheus
// exposition format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}

// Prometheus exposes the underlying registry, mainly for tests.
func (r *Registry) Prometheus() *prometheus.Registry { return r.registry }
