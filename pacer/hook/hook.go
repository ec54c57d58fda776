// Package hook defines the attachment point between a pacer and
// whatever drives it once per cycle.
//
// The pacer core never depends on a concrete host loop; hosts expose a
// Source, attach the pacer's Tick to it, and detach on teardown.
package hook

import (
	"context"
	"sync"
)

// Source is a per-cycle notification source. The contract: invoke the
// attached function exactly once per cycle, from a consistent
// goroutine, until Detach. A single consumer is supported; the last
// Attach wins.
type Source interface {
	Attach(fn func())
	Detach()
}

// Loop is a Source that drives the attached function as fast as the
// function allows, on the goroutine that calls Run. With a pacer's
// Tick attached, the pacer's own wait sets the cycle length.
type Loop struct {
	mu sync.Mutex
	fn func()
}

// NewLoop creates a loop with nothing attached.
func NewLoop() *Loop {
	return &Loop{}
}

func (l *Loop) Attach(fn func()) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fn = fn
}

func (l *Loop) Detach() {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.fn = nil
}

// Run invokes the attached function until the context is cancelled or
// the consumer detaches. Cancellation is checked between cycles only;
// an in-flight cycle always completes.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		l.mu.Lock()
		fn := l.fn
		l.mu.Unlock()

		if fn == nil {
			return nil
		}
		fn()
	}
}
