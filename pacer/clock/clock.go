// Package clock abstracts the monotonic tick source used for pacing.
//
// The pacer core never reads wall time directly: all cadence math runs
// on integer ticks from a Clock, which makes every timing property
// testable with a manually advanced clock instead of sleeps.
package clock

import "time"

// Clock is a monotonic tick counter with a fixed frequency.
//
// Now returns ticks since an arbitrary epoch; only differences are
// meaningful. Frequency returns ticks per second and is constant for
// the lifetime of the clock.
type Clock interface {
	Now() int64
	Frequency() int64
}

// Monotonic is the production clock. It counts nanoseconds elapsed
// since process start using the runtime's monotonic reading, so it is
// immune to NTP and manual wall-clock adjustments.
type Monotonic struct {
	epoch time.Time
}

// NewMonotonic creates a monotonic clock anchored at the current time.
func NewMonotonic() *Monotonic {
	return &Monotonic{epoch: time.Now()}
}

func (m *Monotonic) Now() int64 {
	return time.Since(m.epoch).Nanoseconds()
}

// Frequency is 1 GHz: one tick per nanosecond.
func (m *Monotonic) Frequency() int64 {
	return int64(time.Second / time.Nanosecond)
}

// Manual is a test clock advanced explicitly by the caller. It is not
// safe for concurrent use; tests drive it from a single goroutine.
type Manual struct {
	now  int64
	freq int64
}

// NewManual creates a manual clock with the given frequency, starting
// at tick zero.
func NewManual(freq int64) *Manual {
	return &Manual{freq: freq}
}

func (m *Manual) Now() int64 {
	return m.now
}

func (m *Manual) Frequency() int64 {
	return m.freq
}

// Advance moves the clock forward by n ticks.
func (m *Manual) Advance(n int64) {
	m.now += n
}

// Set jumps the clock to an absolute tick value.
func (m *Manual) Set(now int64) {
	m.now = now
}
