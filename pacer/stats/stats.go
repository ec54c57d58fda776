// Package stats measures how a paced loop actually runs: effective
// rate, average period, and worst-case jitter against the target
// period. It observes only; it never influences the cadence.
package stats

import (
	"time"

	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
)

const defaultWindow = 120

// Report is one snapshot of loop behavior over the sample window.
type Report struct {
	Ticks         uint64
	EffectiveRate float64
	AvgPeriod     time.Duration
	MaxJitter     time.Duration
	TargetPeriod  time.Duration
}

// Tracker accumulates per-tick samples over a sliding window. It is
// driven from the tick goroutine and read from the same goroutine;
// like the cadence state itself, it is not concurrency-safe.
type Tracker struct {
	clock  clock.Clock
	window int

	samples []int64
	last    int64
	ticks   uint64
}

// NewTracker creates a tracker over the default 120-tick window.
func NewTracker(c clock.Clock) *Tracker {
	return &Tracker{
		clock:  c,
		window: defaultWindow,
		last:   -1,
	}
}

// Sample records the completion of one tick.
func (t *Tracker) Sample() {
	now := t.clock.Now()
	t.ticks++

	if t.last >= 0 {
		t.samples = append(t.samples, now-t.last)
		if len(t.samples) > t.window {
			t.samples = t.samples[1:]
		}
	}
	t.last = now
}

// Reset drops the window, e.g. after a rate change, so stale periods
// from the old cadence don't pollute the new one.
func (t *Tracker) Reset() {
	t.samples = t.samples[:0]
	t.last = -1
}

// Report summarizes the current window against targetRate (zero means
// unlimited, reported with a zero target period).
func (t *Tracker) Report(targetRate float64) Report {
	r := Report{Ticks: t.ticks}

	freq := t.clock.Frequency()
	if targetRate > 0 {
		r.TargetPeriod = ticksToDuration(int64(float64(freq)/targetRate), freq)
	}

	if len(t.samples) == 0 {
		return r
	}

	var sum int64
	var maxJitter int64
	targetTicks := int64(0)
	if targetRate > 0 {
		targetTicks = int64(float64(freq) / targetRate)
	}

	for _, s := range t.samples {
		sum += s
		if targetTicks > 0 {
			jitter := s - targetTicks
			if jitter < 0 {
				jitter = -jitter
			}
			if jitter > maxJitter {
				maxJitter = jitter
			}
		}
	}

	avg := sum / int64(len(t.samples))
	r.AvgPeriod = ticksToDuration(avg, freq)
	r.MaxJitter = ticksToDuration(maxJitter, freq)
	if avg > 0 {
		r.EffectiveRate = float64(freq) / float64(avg)
	}
	return r
}

func ticksToDuration(ticks, freq int64) time.Duration {
	if freq <= 0 {
		return 0
	}
	return time.Duration(float64(ticks) / float64(freq) * float64(time.Second))
}
