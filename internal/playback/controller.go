// Package playback drives step producers for an interactive view. A
// Controller owns the published state of one visualization session: the
// current array or grid, the highlighted indices and pseudo-code line, the
// pacing and pause flags, and a history that can be scrubbed in both
// directions.
//
// The controller moves between three modes. Idle has no producer. Running
// pulls steps in a background loop, pacing between pulls. Paused keeps the
// producer but pulls nothing until resumed or stepped by hand.
package playback

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/time/rate"

	"github.com/san-kum/algoviz/internal/metrics"
	"github.com/san-kum/algoviz/internal/step"
)

const tracerName = "github.com/san-kum/algoviz/internal/playback"

// run is one producer's lifetime inside the controller.
type run struct {
	producer  *step.Producer
	cancel    context.CancelFunc
	done      chan struct{}
	exhausted bool
	result    Result
}

type Controller struct {
	mu sync.Mutex

	speed        time.Duration
	pollInterval time.Duration
	historyLimit int
	limiter      *rate.Limiter
	logger       *slog.Logger
	tracer       trace.Tracer
	newMetrics   func() []metrics.Metric
	observers    []Observer

	cur     *run
	paused  bool
	resume  chan struct{}
	metrics []metrics.Metric

	history []Entry
	cursor  int
	seq     int
	view    step.Step
}

func New(opts ...Option) *Controller {
	c := &Controller{
		speed:        DefaultSpeed,
		pollInterval: DefaultPollInterval,
		logger:       slog.Default().With("component", "playback"),
		tracer:       otel.Tracer(tracerName),
		newMetrics:   metrics.Default,
		resume:       make(chan struct{}, 1),
		cursor:       -1,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.limiter = newLimiter(c.speed)
	return c
}

func limitFor(d time.Duration) rate.Limit {
	if d <= 0 {
		return rate.Inf
	}
	return rate.Every(d)
}

// newLimiter starts without a spare token, so the first wait after a pull
// already lasts a full interval.
func newLimiter(d time.Duration) *rate.Limiter {
	l := rate.NewLimiter(limitFor(d), 1)
	l.Allow()
	return l
}

func (c *Controller) AddObserver(o Observer) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.observers = append(c.observers, o)
}

// Start begins a continuous run of p. Calling Start again with the producer
// that is already active resumes it if paused and is otherwise a no-op. A
// different producer stops the current run first. Start does not block.
func (c *Controller) Start(ctx context.Context, p *step.Producer) error {
	_, err := c.start(ctx, p, false)
	return err
}

// Load makes p the active producer in Paused mode, ready for StepForward or
// TogglePause.
func (c *Controller) Load(ctx context.Context, p *step.Producer) error {
	_, err := c.start(ctx, p, true)
	return err
}

// Run starts p and blocks until the run completes, is stopped, or ctx ends.
// A failed run returns its result together with the error that ended it.
func (c *Controller) Run(ctx context.Context, p *step.Producer) (Result, error) {
	r, err := c.start(ctx, p, false)
	if err != nil {
		return Result{}, err
	}
	<-r.done
	if err := ctx.Err(); err != nil {
		return r.result, err
	}
	return r.result, r.result.Err
}

func (c *Controller) start(ctx context.Context, p *step.Producer, paused bool) (*run, error) {
	if p == nil {
		return nil, ErrNilProducer
	}

	c.mu.Lock()
	if c.cur != nil && c.cur.producer == p {
		r := c.cur
		if !paused {
			c.setPausedLocked(false)
		}
		c.mu.Unlock()
		return r, nil
	}
	active := c.cur != nil
	c.mu.Unlock()

	if active {
		c.Stop()
	}
	if p.Exhausted() {
		return nil, ErrExhausted
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()

	runCtx, cancel := context.WithCancel(ctx)
	r := &run{producer: p, cancel: cancel, done: make(chan struct{})}
	c.cur = r
	c.paused = paused
	c.limiter = newLimiter(c.speed)
	c.metrics = c.newMetrics()
	for _, m := range c.metrics {
		m.Reset()
	}

	go c.loop(runCtx, r)
	return r, nil
}

// TogglePause flips between Running and Paused. It does nothing when Idle.
func (c *Controller) TogglePause() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return
	}
	c.setPausedLocked(!c.paused)
}

func (c *Controller) setPausedLocked(paused bool) {
	c.paused = paused
	if !paused {
		select {
		case c.resume <- struct{}{}:
		default:
		}
	}
}

// Stop ends any run, releases the producer and clears the history and the
// highlighted state. The last array or grid stays visible.
func (c *Controller) Stop() {
	c.mu.Lock()
	r := c.cur
	c.mu.Unlock()

	if r != nil {
		r.cancel()
		<-r.done
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.clearLocked()
}

func (c *Controller) clearLocked() {
	c.history = nil
	c.cursor = -1
	c.paused = false
	c.view = step.Step{Array: c.view.Array, Grid: c.view.Grid}
}

// StepForward replays the next cached entry if the cursor is behind the end
// of the history, and otherwise pulls one step from the producer. It
// reports whether anything was published.
func (c *Controller) StepForward() bool {
	c.mu.Lock()
	e, ok := c.advanceLocked()
	c.mu.Unlock()
	if ok {
		c.notify(e)
	}
	return ok
}

// StepBackward moves the cursor back one entry and republishes it. It never
// touches the producer and does nothing at the start of the history.
func (c *Controller) StepBackward() bool {
	c.mu.Lock()
	if c.cursor <= 0 {
		c.mu.Unlock()
		return false
	}
	c.cursor--
	e := c.history[c.cursor]
	c.showLocked(e)
	c.mu.Unlock()

	c.notify(e)
	return true
}

// SetSpeed changes the pacing of the current and future runs.
func (c *Controller) SetSpeed(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.speed = d
	c.limiter.SetLimit(limitFor(d))
}

func (c *Controller) State() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()

	mode := Idle
	if c.cur != nil {
		mode = Running
		if c.paused {
			mode = Paused
		}
	}
	return Snapshot{
		Mode:              mode,
		State:             mode.String(),
		Current:           c.view.Clone(),
		Paused:            mode == Paused,
		Running:           mode == Running,
		HasActiveProducer: c.cur != nil,
		HistoryIndex:      c.cursor,
		HistoryLen:        len(c.history),
		Speed:             c.speed,
	}
}

// History returns the recorded entries. The slice is a copy; the entries
// are shared with the controller.
func (c *Controller) History() []Entry {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.history)
}

// Metrics reads the metrics of the current or most recent run.
func (c *Controller) Metrics() map[string]float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return metrics.Summary(c.metrics)
}

// Done returns a channel closed when the current run ends, or nil when Idle.
func (c *Controller) Done() <-chan struct{} {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur == nil {
		return nil
	}
	return c.cur.done
}

func (c *Controller) advanceLocked() (Entry, bool) {
	if c.cursor < len(c.history)-1 {
		c.cursor++
		e := c.history[c.cursor]
		c.showLocked(e)
		return e, true
	}
	if c.cur == nil || c.cur.exhausted {
		return Entry{}, false
	}

	s, ok := c.cur.producer.Next()
	if !ok {
		c.cur.exhausted = true
		c.cur.cancel()
		return Entry{}, false
	}
	s = s.Clone()
	for _, m := range c.metrics {
		m.Observe(s)
	}
	return c.recordLocked(s), true
}

// recordLocked appends s to the history. Array and grid carry over from the
// previous entry when s has none.
func (c *Controller) recordLocked(s step.Step) Entry {
	e := Entry{Index: c.seq, Step: s, Array: c.view.Array, Grid: c.view.Grid}
	if s.Array != nil {
		e.Array = s.Array
	}
	if s.Grid != nil {
		e.Grid = s.Grid
	}
	c.seq++

	c.history = append(c.history, e)
	if c.historyLimit > 0 && len(c.history) > c.historyLimit {
		c.history = c.history[len(c.history)-c.historyLimit:]
	}
	c.cursor = len(c.history) - 1
	c.showLocked(e)
	return e
}

func (c *Controller) showLocked(e Entry) {
	v := e.Step
	v.Array = e.Array
	v.Grid = e.Grid
	c.view = v
}

func (c *Controller) notify(e Entry) {
	c.mu.Lock()
	obs := slices.Clone(c.observers)
	c.mu.Unlock()
	for _, o := range obs {
		o.OnStep(e)
	}
}
