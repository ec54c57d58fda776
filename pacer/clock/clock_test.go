package clock

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestMonotonicAdvances(t *testing.T) {
	c := NewMonotonic()

	a := c.Now()
	time.Sleep(time.Millisecond)
	b := c.Now()

	assert.Greater(t, b, a, "monotonic clock should move forward")
	assert.Equal(t, int64(1_000_000_000), c.Frequency())
}

func TestManualClock(t *testing.T) {
	c := NewManual(1_000_000)

	assert.Equal(t, int64(0), c.Now())
	assert.Equal(t, int64(1_000_000), c.Frequency())

	c.Advance(500)
	assert.Equal(t, int64(500), c.Now())

	c.Advance(1500)
	assert.Equal(t, int64(2000), c.Now())

	c.Set(10_000)
	assert.Equal(t, int64(10_000), c.Now())
}
