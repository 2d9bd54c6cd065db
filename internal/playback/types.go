package playback

import (
	"errors"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel/trace"

	"github.com/san-kum/algoviz/internal/grid"
	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/step"
)

const (
	DefaultSpeed        = 100 * time.Millisecond
	DefaultPollInterval = 50 * time.Millisecond
)

var (
	ErrNilProducer = errors.New("playback: nil producer")
	ErrExhausted   = errors.New("playback: producer already exhausted")
	ErrRunPanicked = errors.New("playback: run panicked")
)

type Mode int

const (
	Idle Mode = iota
	Running
	Paused
)

func (m Mode) String() string {
	switch m {
	case Running:
		return "running"
	case Paused:
		return "paused"
	default:
		return "idle"
	}
}

// Entry is one recorded position in the history. Array and Grid hold the
// published state after the step was applied, so replaying an entry never
// needs its neighbors. Entries are shared; treat them as read-only.
type Entry struct {
	Index int        `json:"index"`
	Step  step.Step  `json:"step"`
	Array []int      `json:"array,omitempty"`
	Grid  *grid.Grid `json:"grid,omitempty"`
}

// Snapshot is a copy of the published state.
type Snapshot struct {
	Mode              Mode          `json:"-"`
	State             string        `json:"state"`
	Current           step.Step     `json:"current"`
	Paused            bool          `json:"paused"`
	Running           bool          `json:"running"`
	HasActiveProducer bool          `json:"hasActiveProducer"`
	HistoryIndex      int           `json:"historyIndex"`
	HistoryLen        int           `json:"historyLen"`
	Speed             time.Duration `json:"speed"`
}

type Reason int

const (
	Completed Reason = iota
	Canceled
	Failed
)

func (r Reason) String() string {
	switch r {
	case Canceled:
		return "canceled"
	case Failed:
		return "failed"
	default:
		return "completed"
	}
}

// Result summarizes a finished run. Err is set when the run Failed; the
// published state is whatever the last good step left.
type Result struct {
	Reason  Reason             `json:"-"`
	Outcome string             `json:"outcome"`
	Steps   int                `json:"steps"`
	Metrics map[string]float64 `json:"metrics"`
	Err     error              `json:"-"`
	Error   string             `json:"error,omitempty"`
}

// Observer is notified of every published entry, including replays, and
// once when a run ends. Callbacks run outside the controller lock but must
// not call Stop, which waits for the run loop that is calling them.
type Observer interface {
	OnStep(e Entry)
	OnFinish(r Result)
}

type Option func(*Controller)

// WithSpeed sets the pause between steps of a continuous run. Zero runs
// unpaced.
func WithSpeed(d time.Duration) Option {
	return func(c *Controller) { c.speed = d }
}

func WithPollInterval(d time.Duration) Option {
	return func(c *Controller) {
		if d > 0 {
			c.pollInterval = d
		}
	}
}

// WithHistoryLimit keeps only the newest n entries. Zero keeps everything.
func WithHistoryLimit(n int) Option {
	return func(c *Controller) { c.historyLimit = max(0, n) }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Controller) {
		if l != nil {
			c.logger = l
		}
	}
}

func WithTracer(t trace.Tracer) Option {
	return func(c *Controller) {
		if t != nil {
			c.tracer = t
		}
	}
}

// WithMetrics replaces the per-run metric set. The factory is called once
// per run.
func WithMetrics(fn func() []metrics.Metric) Option {
	return func(c *Controller) {
		if fn != nil {
			c.newMetrics = fn
		}
	}
}

func WithObserver(o Observer) Option {
	return func(c *Controller) { c.observers = append(c.observers, o) }
}
