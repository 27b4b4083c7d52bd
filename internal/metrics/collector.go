// Package metrics provides Prometheus metrics for the worker supervisor.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Stop modes for the stops counter.
const (
	StopGraceful = "graceful"
	StopForced   = "forced"
)

// Collector holds the supervisor's Prometheus metrics.
type Collector struct {
	info           *prometheus.GaugeVec
	workerUp       prometheus.Gauge
	spawnAttempts  prometheus.Counter
	spawnFailures  *prometheus.CounterVec
	startTimestamp prometheus.Gauge
	workerPID      prometheus.Gauge
	stops          *prometheus.CounterVec
}

// CollectorConfig holds static labels for the info metric.
type CollectorConfig struct {
	Version string
	Profile string
}

// NewCollectorWithRegistry creates a collector registered with registry.
// Each host owns its registry; nothing is registered globally.
func NewCollectorWithRegistry(cfg CollectorConfig, registry prometheus.Registerer) *Collector {
	c := &Collector{
		info: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "sidecar_shell_info",
				Help: "Information about the host build (value always 1)",
			},
			[]string{"version", "profile"},
		),
		workerUp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidecar_worker_up",
			Help: "1 if a worker was spawned and not stopped by the host",
		}),
		spawnAttempts: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "sidecar_worker_spawn_attempts_total",
			Help: "Worker launch attempts",
		}),
		spawnFailures: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidecar_worker_spawn_failures_total",
				Help: "Worker launch failures by stage (locate, build, spawn)",
			},
			[]string{"stage"},
		),
		startTimestamp: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidecar_worker_start_timestamp_seconds",
			Help: "Unix time the current worker was spawned",
		}),
		workerPID: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "sidecar_worker_pid",
			Help: "Process ID of the current worker (0 = none)",
		}),
		stops: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "sidecar_worker_stops_total",
				Help: "Worker terminations by the host, by mode",
			},
			[]string{"mode"},
		),
	}

	registry.MustRegister(
		c.info,
		c.workerUp,
		c.spawnAttempts,
		c.spawnFailures,
		c.startTimestamp,
		c.workerPID,
		c.stops,
	)

	c.info.WithLabelValues(cfg.Version, cfg.Profile).Set(1)
	return c
}

// LaunchAttempted records the start of a launch.
func (c *Collector) LaunchAttempted() {
	c.spawnAttempts.Inc()
}

// LaunchFailed records a failed launch at the given stage.
func (c *Collector) LaunchFailed(stage string) {
	c.spawnFailures.WithLabelValues(stage).Inc()
}

// WorkerStarted records a successful spawn.
func (c *Collector) WorkerStarted(pid int, at time.Time) {
	c.workerUp.Set(1)
	c.workerPID.Set(float64(pid))
	c.startTimestamp.Set(float64(at.UnixNano()) / 1e9)
}

// WorkerStopped records the host terminating the worker.
func (c *Collector) WorkerStopped(forced bool) {
	mode := StopGraceful
	if forced {
		mode = StopForced
	}
	c.stops.WithLabelValues(mode).Inc()
	c.workerUp.Set(0)
	c.workerPID.Set(0)
}
