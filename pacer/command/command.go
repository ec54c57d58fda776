// Package command exposes the pacer's reconfiguration API as a named
// diagnostic text command, independent of any particular console.
package command

import (
	"fmt"
	"strconv"
	"strings"
)

// Limiter is the slice of the pacer the rate command needs.
type Limiter interface {
	SetTarget(rate float64) float64
	Target() float64
}

// Rate is a diagnostic command that reads or sets the target rate.
type Rate struct {
	limiter Limiter
}

// NewRate binds the rate command to a limiter.
func NewRate(l Limiter) *Rate {
	return &Rate{limiter: l}
}

// Name returns the command's registration name.
func (r *Rate) Name() string {
	return "rate"
}

// Execute runs the command with a single optional numeric argument.
// An empty argument reports the current effective rate; a valid number
// applies it and echoes the result; anything else is an error string.
// Zero means unlimited in both directions.
func (r *Rate) Execute(arg string) string {
	arg = strings.TrimSpace(arg)
	if arg == "" {
		return formatRate(r.limiter.Target())
	}

	rate, err := strconv.ParseFloat(arg, 64)
	if err != nil {
		return fmt.Sprintf("invalid rate %q: expected a number", arg)
	}

	return formatRate(r.limiter.SetTarget(rate))
}

// formatRate always prints three decimals; 0.000 is unlimited.
func formatRate(rate float64) string {
	return fmt.Sprintf("rate: %.3f", rate)
}
