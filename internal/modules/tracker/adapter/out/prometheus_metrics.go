package out

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	trackerout "timelevel/internal/modules/tracker/port/out"
)

// PrometheusMetrics exports tracker gauges and counters on a private registry,
// so several trackers in one process never collide.
type PrometheusMetrics struct {
	registry    *prometheus.Registry
	checkpoints *prometheus.CounterVec
	checkpointD prometheus.Histogram
	totalMs     prometheus.Gauge
	sessionMs   prometheus.Gauge
	level       prometheus.Gauge
	levelUps    prometheus.Counter
	effectFails *prometheus.CounterVec
}

func NewPrometheusMetrics() *PrometheusMetrics {
	m := &PrometheusMetrics{
		registry: prometheus.NewRegistry(),
		checkpoints: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timelevel_checkpoints_total",
			Help: "Persistence checkpoints by outcome.",
		}, []string{"outcome"}),
		checkpointD: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "timelevel_checkpoint_duration_seconds",
			Help:    "Time spent folding and writing a checkpoint.",
			Buckets: prometheus.ExponentialBuckets(0.0005, 4, 8),
		}),
		totalMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timelevel_total_milliseconds",
			Help: "Accumulated active time including the unsaved session.",
		}),
		sessionMs: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timelevel_session_milliseconds",
			Help: "Time elapsed in the current session.",
		}),
		level: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "timelevel_level",
			Help: "Current level.",
		}),
		levelUps: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "timelevel_level_ups_total",
			Help: "Level-up events dispatched.",
		}),
		effectFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "timelevel_effect_failures_total",
			Help: "Level-up effects that returned an error or panicked.",
		}, []string{"effect"}),
	}
	m.registry.MustRegister(
		m.checkpoints,
		m.checkpointD,
		m.totalMs,
		m.sessionMs,
		m.level,
		m.levelUps,
		m.effectFails,
	)
	return m
}

var _ trackerout.Metrics = (*PrometheusMetrics)(nil)

func (m *PrometheusMetrics) CheckpointDone(d time.Duration, err error) {
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	m.checkpoints.WithLabelValues(outcome).Inc()
	m.checkpointD.Observe(d.Seconds())
}

func (m *PrometheusMetrics) Observe(totalMs, sessionMs int64, level int) {
	m.totalMs.Set(float64(totalMs))
	m.sessionMs.Set(float64(sessionMs))
	m.level.Set(float64(level))
}

func (m *PrometheusMetrics) LevelUp(int) {
	m.levelUps.Inc()
}

func (m *PrometheusMetrics) EffectFailed(name string) {
	m.effectFails.WithLabelValues(name).Inc()
}

// Registry exposes the collectors for scraping or inspection.
func (m *PrometheusMetrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus text format.
func (m *PrometheusMetrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
