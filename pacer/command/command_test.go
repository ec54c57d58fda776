package command

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/CanTalat-Yakan/go-pacer/pacer"
	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
)

type noWait struct{}

func (noWait) Until(target, freq int64) {}

func newLimiter() *pacer.Pacer {
	return pacer.NewWithClock(clock.NewManual(1_000_000), noWait{})
}

func TestEmptyArgumentReportsCurrentRate(t *testing.T) {
	p := newLimiter()
	cmd := NewRate(p)

	assert.Equal(t, "rate: 0.000", cmd.Execute(""))

	p.SetTarget(59.7)
	assert.Equal(t, "rate: 59.700", cmd.Execute("  "))
}

func TestValidArgumentAppliesAndEchoes(t *testing.T) {
	p := newLimiter()
	cmd := NewRate(p)

	assert.Equal(t, "rate: 120.000", cmd.Execute("120"))
	assert.Equal(t, float64(120), p.Target())

	assert.Equal(t, "rate: 0.000", cmd.Execute("0"))
	assert.Equal(t, float64(0), p.Target())

	assert.Equal(t, "rate: 0.000", cmd.Execute("-30"))

	// ParseFloat accepts these spellings; the limiter's invalid-input
	// policy turns them into unlimited, same as any other entry point.
	assert.Equal(t, "rate: 0.000", cmd.Execute("NaN"))
	assert.Equal(t, "rate: 0.000", cmd.Execute("+Inf"))
}

func TestInvalidArgumentIsAnError(t *testing.T) {
	p := newLimiter()
	p.SetTarget(60)
	cmd := NewRate(p)

	assert.Equal(t, `invalid rate "fast": expected a number`, cmd.Execute("fast"))
	assert.Equal(t, float64(60), p.Target(), "failed parse must not change state")
}

func TestName(t *testing.T) {
	assert.Equal(t, "rate", NewRate(newLimiter()).Name())
}
