// Package telemetry exports prometheus collectors for playback sessions.
package telemetry

import (
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/san-kum/algoviz/internal/playback"
)

const namespace = "algoviz"

// Metrics groups the collectors. Build one per registry; Default uses the
// global one that promhttp serves.
type Metrics struct {
	StepsTotal     *prometheus.CounterVec
	RunsTotal      *prometheus.CounterVec
	RunSteps       *prometheus.HistogramVec
	RunDuration    *prometheus.HistogramVec
	ActiveSessions prometheus.Gauge
}

func New(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		StepsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "steps_published_total",
			Help:      "Steps published by playback controllers, replays included",
		}, []string{"family", "algorithm"}),
		RunsTotal: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "runs_total",
			Help:      "Finished playback runs by outcome",
		}, []string{"family", "algorithm", "outcome"}),
		RunSteps: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_steps",
			Help:      "Steps pulled from the producer per run",
			Buckets:   prometheus.ExponentialBuckets(8, 2, 12),
		}, []string{"family"}),
		RunDuration: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "run_duration_seconds",
			Help:      "Wall time of a playback run",
			Buckets:   []float64{0.01, 0.05, 0.1, 0.5, 1, 5, 10, 30, 60, 300},
		}, []string{"family"}),
		ActiveSessions: f.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_sessions",
			Help:      "Open websocket playback sessions",
		}),
	}
}

var (
	defaultOnce    sync.Once
	defaultMetrics *Metrics
)

// Default returns the collectors registered with prometheus.DefaultRegisterer.
func Default() *Metrics {
	defaultOnce.Do(func() {
		defaultMetrics = New(prometheus.DefaultRegisterer)
	})
	return defaultMetrics
}

// Observer returns a playback observer that records one algorithm's runs.
// The clock starts at the first published step after each finish.
func (m *Metrics) Observer(family, algorithm string) *RunObserver {
	return &RunObserver{m: m, family: family, algorithm: algorithm, now: time.Now}
}

type RunObserver struct {
	m         *Metrics
	family    string
	algorithm string
	now       func() time.Time

	mu    sync.Mutex
	start time.Time
}

var _ playback.Observer = (*RunObserver)(nil)

func (o *RunObserver) OnStep(playback.Entry) {
	o.mu.Lock()
	if o.start.IsZero() {
		o.start = o.now()
	}
	o.mu.Unlock()
	o.m.StepsTotal.WithLabelValues(o.family, o.algorithm).Inc()
}

func (o *RunObserver) OnFinish(r playback.Result) {
	o.mu.Lock()
	start := o.start
	o.start = time.Time{}
	o.mu.Unlock()

	o.m.RunsTotal.WithLabelValues(o.family, o.algorithm, r.Outcome).Inc()
	o.m.RunSteps.WithLabelValues(o.family).Observe(float64(r.Steps))
	if !start.IsZero() {
		o.m.RunDuration.WithLabelValues(o.family).Observe(o.now().Sub(start).Seconds())
	}
}
