// Package backend defines the presentation surfaces for a paced loop.
//
// Backends are responsible for:
//   - Displaying loop progress (terminal dashboard, log output)
//   - Translating platform events into rate changes or shutdown
//   - Deciding when a bounded run is complete
package backend

import "github.com/CanTalat-Yakan/go-pacer/pacer/stats"

// Backend presents one paced loop.
type Backend interface {
	// Init configures the backend. Required before Update.
	Init(config Config) error

	// Update runs once per tick with a fresh snapshot. Backends
	// should poll their platform events here and use the config
	// callbacks to talk back to the loop.
	Update(snapshot Snapshot) error

	// Cleanup releases platform resources on shutdown.
	Cleanup() error
}

// Config holds backend configuration.
type Config struct {
	Title      string
	TargetRate float64
	Callbacks  Callbacks
}

// Callbacks let backends communicate with the loop driving them.
type Callbacks struct {
	// OnQuit requests shutdown (key press, tick budget reached).
	OnQuit func()

	// OnRateCommand forwards a diagnostic command argument ("", a
	// number, or garbage) and receives the response text.
	OnRateCommand func(arg string) string
}

// Snapshot is the per-tick state handed to Update.
type Snapshot struct {
	TargetRate float64
	Report     stats.Report
}
