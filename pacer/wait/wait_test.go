package wait

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
)

func TestUntilReturnsImmediatelyWhenPast(t *testing.T) {
	c := clock.NewManual(1_000_000)
	c.Set(5000)

	slept := false
	w := NewWithSleep(c, func(ns int64) { slept = true })

	w.Until(4000, c.Frequency())
	w.Until(5000, c.Frequency())

	assert.False(t, slept, "no sleep expected when target already reached")
	assert.Equal(t, int64(5000), c.Now(), "waiter must not touch the clock")
}

func TestUntilSleepsDownToSpinThreshold(t *testing.T) {
	// 1 MHz clock: 1 tick = 1µs. Target is 10ms out, so the first
	// coarse sleep should request remaining minus the spin threshold.
	c := clock.NewManual(1_000_000)

	var requested []int64
	w := NewWithSleep(c, func(ns int64) {
		requested = append(requested, ns)
		// Simulate a sleep that overshoots slightly, as OS sleeps
		// do. Landing past the target also keeps the spin phase
		// from polling a clock that only this callback advances.
		c.Advance(ns/1000 + 200)
	})

	target := int64(10_000)
	w.Until(target, c.Frequency())

	require.Len(t, requested, 1)
	assert.Equal(t, int64(10_000_000-DefaultSpinThreshold), requested[0])
	assert.GreaterOrEqual(t, c.Now(), target)
}

func TestUntilReMeasuresAfterShortSleep(t *testing.T) {
	// A sleep that undershoots by half must trigger another sleep
	// rather than being trusted.
	c := clock.NewManual(1_000_000)

	calls := 0
	w := NewWithSleep(c, func(ns int64) {
		calls++
		c.Advance(ns / 1000 / 2)
		if calls > 2 {
			c.Set(20_000)
		}
	})

	w.Until(20_000, c.Frequency())
	assert.GreaterOrEqual(t, calls, 2, "undershooting sleeps must be re-measured")
}

func TestUntilNeverReturnsEarly(t *testing.T) {
	c := clock.NewMonotonic()
	w := New(c)

	for _, d := range []time.Duration{500 * time.Microsecond, 2 * time.Millisecond, 10 * time.Millisecond} {
		target := c.Now() + d.Nanoseconds()
		w.Until(target, c.Frequency())
		now := c.Now()

		assert.GreaterOrEqual(t, now, target, "woke before target for %v wait", d)

		// Generous tolerance band: loaded CI schedulers overshoot,
		// but anything past 5ms means the spin phase is not working.
		assert.Less(t, now-target, (5 * time.Millisecond).Nanoseconds(),
			"overshoot too large for %v wait", d)
	}
}

func TestTicksToNanos(t *testing.T) {
	assert.Equal(t, int64(10_000_000), ticksToNanos(10_000, 1_000_000))
	assert.Equal(t, int64(1), ticksToNanos(1, 1_000_000_000))
	assert.Equal(t, int64(0), ticksToNanos(100, 0))
}
