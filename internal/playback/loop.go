package playback

import (
	"context"
	"fmt"
	"slices"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/san-kum/algoviz/internal/metrics"
)

// loop drives r until it is exhausted, canceled or failed. Cancellation is
// checked before every pull and again after every pacing wait.
func (c *Controller) loop(ctx context.Context, r *run) {
	defer close(r.done)

	ctx, span := c.tracer.Start(ctx, "playback.run")
	defer span.End()
	c.logger.Debug("run started")

	reason, err := c.drive(ctx, r)

	res := c.finish(r, reason, err)
	span.SetAttributes(
		attribute.Int("algoviz.steps", res.Steps),
		attribute.String("algoviz.outcome", res.Outcome),
	)
	switch reason {
	case Canceled:
		span.AddEvent("canceled")
	case Failed:
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		c.logger.Error("run failed", "steps", res.Steps, "error", err)
	}
	c.logger.Debug("run finished", "outcome", res.Outcome, "steps", res.Steps)

	c.mu.Lock()
	obs := slices.Clone(c.observers)
	c.mu.Unlock()
	for _, o := range obs {
		o.OnFinish(res)
	}
}

// drive pulls and publishes until the run ends. A panic in the producer or
// in an observer fails the run instead of the process.
func (c *Controller) drive(ctx context.Context, r *run) (reason Reason, err error) {
	defer func() {
		if v := recover(); v != nil {
			reason, err = Failed, fmt.Errorf("%w: %v", ErrRunPanicked, v)
		}
	}()

	ticker := time.NewTicker(c.pollInterval)
	defer ticker.Stop()

	for {
		paused, exhausted, live := c.status(r)
		if exhausted {
			break
		}
		if !live || ctx.Err() != nil {
			return Canceled, nil
		}
		if paused {
			select {
			case <-ctx.Done():
			case <-ticker.C:
			case <-c.resume:
			}
			continue
		}

		e, ok, live := c.advance(r)
		if !live {
			return Canceled, nil
		}
		if !ok {
			break
		}
		c.notify(e)

		// A failed wait means ctx ended; the next iteration sorts out why.
		_ = c.pace(ctx)
	}
	if err := r.producer.Err(); err != nil {
		return Failed, err
	}
	return Completed, nil
}

func (c *Controller) status(r *run) (paused, exhausted, live bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.paused, r.exhausted, c.cur == r
}

func (c *Controller) advance(r *run) (Entry, bool, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.cur != r {
		return Entry{}, false, false
	}
	e, ok := c.advanceLocked()
	return e, ok, true
}

// pace waits one pacing interval, returning early with an error when ctx
// ends.
func (c *Controller) pace(ctx context.Context) error {
	c.mu.Lock()
	lim := c.limiter
	c.mu.Unlock()

	res := lim.Reserve()
	d := res.Delay()
	if d <= 0 {
		return nil
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		res.Cancel()
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

// finish releases the producer and leaves the history in place so a
// completed or interrupted run can still be scrubbed.
func (c *Controller) finish(r *run, reason Reason, err error) Result {
	c.mu.Lock()
	defer c.mu.Unlock()

	r.producer.Close()
	r.cancel()
	r.result = Result{
		Reason:  reason,
		Outcome: reason.String(),
		Steps:   r.producer.Pulled(),
		Metrics: metrics.Summary(c.metrics),
		Err:     err,
	}
	if err != nil {
		r.result.Error = err.Error()
	}
	if c.cur == r {
		c.cur = nil
		c.paused = false
	}
	return r.result
}
