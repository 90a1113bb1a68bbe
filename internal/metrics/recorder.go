// Package metrics records run metrics for the converter and writes them in the
// Prometheus text format, suitable for a node_exporter textfile collector.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/goliatone/go-wp2md/internal/export"
)

const namespace = "wp2md"

// Recorder owns a private registry so repeated runs in one process never
// collide on metric registration.
type Recorder struct {
	registry *prometheus.Registry

	commandsTotal   *prometheus.CounterVec
	commandDuration *prometheus.HistogramVec
	itemsTotal      *prometheus.CounterVec
	collisionsTotal prometheus.Counter
	lastRun         prometheus.Gauge
}

// NewRecorder constructs a Recorder with every metric registered.
func NewRecorder() *Recorder {
	registry := prometheus.NewRegistry()
	factory := promauto.With(registry)

	return &Recorder{
		registry: registry,
		commandsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "commands",
				Name:      "total",
				Help:      "Commands executed by command name and status",
			},
			[]string{"command", "status"},
		),
		commandDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: "commands",
				Name:      "duration_seconds",
				Help:      "Command duration in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60, 300},
			},
			[]string{"command"},
		),
		itemsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "items_total",
				Help:      "Items seen by create runs, by outcome",
			},
			[]string{"outcome"},
		),
		collisionsTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "path_collisions_total",
				Help:      "Items that replaced another item's output path",
			},
		),
		lastRun: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: namespace,
				Subsystem: "export",
				Name:      "last_run_timestamp_seconds",
				Help:      "Unix time of the last completed create run",
			},
		),
	}
}

// ObserveCommand records one command execution.
func (r *Recorder) ObserveCommand(command, status string, duration time.Duration) {
	if r == nil {
		return
	}
	r.commandsTotal.WithLabelValues(command, status).Inc()
	r.commandDuration.WithLabelValues(command).Observe(duration.Seconds())
}

// ObserveSummary records the per-item outcome of a create run.
func (r *Recorder) ObserveSummary(summary export.Summary) {
	if r == nil {
		return
	}
	r.itemsTotal.WithLabelValues("succeeded").Add(float64(summary.Succeeded))
	r.itemsTotal.WithLabelValues("warned").Add(float64(summary.Warned))
	r.itemsTotal.WithLabelValues("failed").Add(float64(summary.Failed))
	r.itemsTotal.WithLabelValues("skipped").Add(float64(summary.Skipped))
	r.collisionsTotal.Add(float64(summary.Collisions))
	r.lastRun.SetToCurrentTime()
}

// Gatherer exposes the registry for callers that serve or inspect metrics.
func (r *Recorder) Gatherer() prometheus.Gatherer {
	return r.registry
}

// WriteTextfile writes every metric to path atomically.
func (r *Recorder) WriteTextfile(path string) error {
	return prometheus.WriteToTextfile(path, r.registry)
}
