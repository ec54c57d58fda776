package backend

import (
	"log/slog"
	"time"
)

const progressInterval = 60

// Headless runs a paced loop without a display, for batch runs and
// benchmarks: it logs progress periodically and signals OnQuit once
// the tick budget is spent.
type Headless struct {
	config    Config
	maxTicks  uint64
	lastRate  float64
	startedAt time.Time
}

// NewHeadless creates a headless backend with a tick budget.
func NewHeadless(maxTicks uint64) *Headless {
	return &Headless{maxTicks: maxTicks}
}

func (h *Headless) Init(config Config) error {
	h.config = config
	h.lastRate = config.TargetRate
	h.startedAt = time.Now()

	slog.Info("running headless",
		"ticks", h.maxTicks,
		"target_rate", config.TargetRate)
	return nil
}

func (h *Headless) Update(snapshot Snapshot) error {
	if snapshot.TargetRate != h.lastRate {
		slog.Info("target rate changed",
			"from", h.lastRate, "to", snapshot.TargetRate)
		h.lastRate = snapshot.TargetRate
	}

	if snapshot.Report.Ticks%progressInterval == 0 {
		slog.Debug("tick progress",
			"completed", snapshot.Report.Ticks,
			"total", h.maxTicks,
			"effective_rate", snapshot.Report.EffectiveRate,
			"max_jitter", snapshot.Report.MaxJitter)
	}

	if snapshot.Report.Ticks >= h.maxTicks {
		slog.Info("headless run completed",
			"ticks", snapshot.Report.Ticks,
			"elapsed", time.Since(h.startedAt),
			"effective_rate", snapshot.Report.EffectiveRate,
			"max_jitter", snapshot.Report.MaxJitter)
		if h.config.Callbacks.OnQuit != nil {
			h.config.Callbacks.OnQuit()
		}
	}
	return nil
}

func (h *Headless) Cleanup() error {
	return nil
}
