package step

import (
	"errors"
	"fmt"
	"iter"
)

// ErrPanicked wraps the value a sequence panicked with.
var ErrPanicked = errors.New("step: sequence panicked")

// Producer is a single-pass, pull-driven view of a step sequence. Each call
// to Next resumes the algorithm exactly where it last yielded.
//
// A Producer is not safe for concurrent use; the caller serializes Next and
// Close.
type Producer struct {
	next   func() (Step, bool)
	stop   func()
	done   bool
	pulled int
	err    error
}

// Pull wraps seq. The sequence does not start running until the first Next.
func Pull(seq iter.Seq[Step]) *Producer {
	next, stop := iter.Pull(seq)
	return &Producer{next: next, stop: stop}
}

// Next pulls one step. It returns false once the sequence is exhausted or
// the producer was closed. A panic inside the sequence ends it the same way
// and is kept for Err.
func (p *Producer) Next() (s Step, ok bool) {
	if p.done {
		return Step{}, false
	}
	defer func() {
		if v := recover(); v != nil {
			p.done = true
			p.err = fmt.Errorf("%w: %v", ErrPanicked, v)
			s, ok = Step{}, false
		}
	}()
	s, ok = p.next()
	if !ok {
		p.done = true
		return Step{}, false
	}
	p.pulled++
	return s, true
}

// Close releases the suspended sequence. Calling Close more than once is fine.
func (p *Producer) Close() {
	p.done = true
	p.stop()
}

func (p *Producer) Exhausted() bool { return p.done }

// Err reports why the sequence ended early, or nil.
func (p *Producer) Err() error { return p.err }

// Pulled is the number of steps handed out so far.
func (p *Producer) Pulled() int { return p.pulled }
