// Package wait provides a high-precision blocking wait against a
// monotonic tick clock.
//
// The waiter sleeps for the bulk of the remaining time, then busy-polls
// the clock for the final stretch. OS sleep primitives are only
// reliable down to roughly scheduler-quantum granularity, so the spin
// phase is what turns a "wake up eventually" primitive into a
// microsecond-level one without burning a core for the whole wait.
package wait

import (
	"runtime"

	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
)

// DefaultSpinThreshold is the remaining time, in nanoseconds, below
// which the waiter stops sleeping and busy-polls the clock.
const DefaultSpinThreshold = 80_000

// SleepFunc suspends the calling goroutine for approximately ns
// nanoseconds. Implementations may wake early; the waiter re-measures
// after every call.
type SleepFunc func(ns int64)

// Waiter blocks the calling goroutine until a target tick timestamp.
type Waiter struct {
	clock         clock.Clock
	sleep         SleepFunc
	spinThreshold int64
}

// New creates a waiter using the platform's precision sleep.
func New(c clock.Clock) *Waiter {
	return &Waiter{
		clock:         c,
		sleep:         sleepNanoseconds,
		spinThreshold: DefaultSpinThreshold,
	}
}

// NewWithSleep creates a waiter with an injected sleep function, used
// by tests to pair the waiter with a manual clock.
func NewWithSleep(c clock.Clock, sleep SleepFunc) *Waiter {
	return &Waiter{
		clock:         c,
		sleep:         sleep,
		spinThreshold: DefaultSpinThreshold,
	}
}

// Until blocks until the clock reaches target. freq is the clock's
// tick frequency in ticks per second; it converts remaining ticks into
// the nanoseconds the sleep primitive understands.
//
// Returns immediately if target has already passed. Never returns
// before target is reached.
func (w *Waiter) Until(target, freq int64) {
	for {
		now := w.clock.Now()
		remaining := target - now
		if remaining <= 0 {
			return
		}

		remainingNs := ticksToNanos(remaining, freq)
		if remainingNs <= w.spinThreshold {
			break
		}

		// Sleep off everything above the spin threshold, then
		// re-measure. A single sleep is never trusted: the OS may
		// overshoot, undershoot, or wake us for a signal.
		w.sleep(remainingNs - w.spinThreshold)
	}

	for w.clock.Now() < target {
		runtime.Gosched()
	}
}

func ticksToNanos(ticks, freq int64) int64 {
	if freq <= 0 {
		return 0
	}
	return int64(float64(ticks) / float64(freq) * 1e9)
}
