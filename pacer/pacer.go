// Package pacer implements a drift-free periodic pacer: it runs a
// callback at a target frequency, correcting for scheduling jitter and
// oversleep without accumulating drift, and without unbounded catch-up
// after long stalls.
//
// Boundaries advance on a fixed schedule (previous boundary plus one
// interval) rather than being recomputed from "now" each cycle, so
// small per-cycle wake-up errors never shift future cycles. Only a
// stall longer than one full extra interval resets the schedule.
package pacer

import (
	"log/slog"
	"math"
	"sync"

	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
	"github.com/CanTalat-Yakan/go-pacer/pacer/wait"
)

// State describes the pacer lifecycle.
type State int

const (
	// Unconfigured means SetTarget has never been called; ticks run
	// the callback back-to-back with no waiting.
	Unconfigured State = iota
	// Active means the pacer is configured, either bounded or
	// unlimited.
	Active
	// Stopped is terminal: the callback is cleared and further ticks
	// are ignored. A new pacer is required to resume.
	Stopped
)

// Waiter blocks the calling goroutine until the clock reaches target.
// freq is the clock frequency in ticks per second.
type Waiter interface {
	Until(target, freq int64)
}

// Pacer owns the cadence state for one tick stream: target rate, fixed
// tick interval, and the next scheduled boundary.
//
// Tick is driven by a single external trigger goroutine. SetTarget and
// Stop may be called from other goroutines; the small state block is
// mutex-guarded, and the wait itself happens outside the lock.
type Pacer struct {
	mu sync.Mutex

	clock  clock.Clock
	waiter Waiter

	target        float64
	freq          int64
	intervalTicks int64
	nextBoundary  int64

	callback func()
	state    State
}

// New creates an unconfigured pacer on the system monotonic clock.
func New() *Pacer {
	c := clock.NewMonotonic()
	return &Pacer{
		clock:  c,
		waiter: wait.New(c),
	}
}

// NewWithClock creates a pacer on an injected clock and waiter, used
// by tests to simulate time.
func NewWithClock(c clock.Clock, w Waiter) *Pacer {
	return &Pacer{
		clock:  c,
		waiter: w,
	}
}

// SetTarget reconfigures the pacing rate in ticks per second and
// returns the effective rate for diagnostic display.
//
// A rate of zero or below disables waiting entirely (unlimited mode).
// NaN and ±Inf are invalid: they are logged and treated as unlimited,
// the same observable state as an explicit zero. Any valid rate change
// reschedules the next boundary from the present moment; a cadence
// computed for the old rate never leaks into the new one.
func (p *Pacer) SetTarget(rate float64) float64 {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.state == Stopped {
		return 0
	}

	if math.IsNaN(rate) || math.IsInf(rate, 0) {
		slog.Warn("invalid target rate, limiter disabled", "rate", rate)
		rate = 0
	}

	p.state = Active

	if rate <= 0 {
		p.target = 0
		p.intervalTicks = 0
		p.nextBoundary = 0
		return 0
	}

	p.target = rate
	p.freq = p.clock.Frequency()
	p.intervalTicks = int64(float64(p.freq) / rate)
	p.nextBoundary = p.clock.Now() + p.intervalTicks
	return rate
}

// Target returns the current target rate; zero means unlimited.
func (p *Pacer) Target() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.target
}

// Interval returns the tick interval in clock ticks; zero means
// unlimited.
func (p *Pacer) Interval() int64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.intervalTicks
}

// SetCallback installs the action invoked once per cycle. Last writer
// wins; nil clears the slot.
func (p *Pacer) SetCallback(fn func()) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callback = fn
}

// Tick runs one cycle: invoke the callback, then wait out the rest of
// the interval and advance the schedule. Call it exactly once per
// external trigger, from one goroutine.
//
// Callback panics are not recovered here; they propagate to the
// trigger's failure policy.
func (p *Pacer) Tick() {
	p.mu.Lock()
	if p.state == Stopped {
		p.mu.Unlock()
		return
	}
	cb := p.callback
	p.mu.Unlock()

	if cb != nil {
		cb()
	}

	p.mu.Lock()
	interval := p.intervalTicks
	if interval == 0 {
		p.mu.Unlock()
		return
	}

	now := p.clock.Now()
	if p.nextBoundary <= 0 {
		// First bounded cycle since the rate change: schedule
		// lazily from here.
		p.nextBoundary = now + interval
	}
	boundary := p.nextBoundary
	freq := p.freq
	p.mu.Unlock()

	if now < boundary {
		p.waiter.Until(boundary, freq)
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	// A concurrent SetTarget mid-wait already rescheduled; its
	// schedule wins.
	if p.intervalTicks != interval || p.nextBoundary != boundary {
		return
	}

	p.nextBoundary += interval

	afterWait := p.clock.Now()
	if afterWait > p.nextBoundary+interval {
		// Fell behind by more than one full extra interval. Resume
		// a fresh cadence from the present instead of running
		// missed cycles back-to-back.
		p.nextBoundary = afterWait + interval
		slog.Debug("pacer resynchronized after stall",
			"behind_ticks", afterWait-boundary,
			"interval_ticks", interval)
	}
}

// Stop tears the pacer down: the callback is dropped and all further
// ticks are ignored. Stop is idempotent and terminal.
func (p *Pacer) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.callback = nil
	p.nextBoundary = 0
	p.state = Stopped
}

// State reports the current lifecycle state.
func (p *Pacer) State() State {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.state
}
