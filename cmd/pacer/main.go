package main

import (
	"context"
	"errors"
	"log/slog"
	"os"

	"github.com/hackebrot/go-fibonacci"
	"github.com/urfave/cli"

	"github.com/CanTalat-Yakan/go-pacer/pacer"
	"github.com/CanTalat-Yakan/go-pacer/pacer/backend"
	"github.com/CanTalat-Yakan/go-pacer/pacer/backend/terminal"
	"github.com/CanTalat-Yakan/go-pacer/pacer/clock"
	"github.com/CanTalat-Yakan/go-pacer/pacer/command"
	"github.com/CanTalat-Yakan/go-pacer/pacer/hook"
	"github.com/CanTalat-Yakan/go-pacer/pacer/stats"
	"github.com/CanTalat-Yakan/go-pacer/pacer/wait"
)

func main() {
	app := cli.NewApp()
	app.Name = "pacer"
	app.Description = "A drift-free periodic pacer"
	app.Usage = "pacer [options]"
	app.Version = "1.0.0"
	app.Flags = []cli.Flag{
		cli.Float64Flag{
			Name:  "rate",
			Usage: "Target rate in ticks per second (0 = unlimited)",
			Value: 60,
		},
		cli.BoolFlag{
			Name:  "headless",
			Usage: "Run without the dashboard",
		},
		cli.IntFlag{
			Name:  "ticks",
			Usage: "Number of ticks to run in headless mode (required for headless)",
			Value: 0,
		},
		cli.IntFlag{
			Name:  "work",
			Usage: "Simulated per-tick workload: compute the nth Fibonacci number (0 = none)",
			Value: 0,
		},
		cli.BoolFlag{
			Name:  "debug",
			Usage: "Enable debug logging",
		},
	}
	app.Action = runPacer

	err := app.Run(os.Args)
	if err != nil {
		slog.Error("Error running pacer", "error", err)
		os.Exit(1)
	}
}

func runPacer(c *cli.Context) error {
	level := slog.LevelInfo
	if c.Bool("debug") {
		level = slog.LevelDebug
	}

	headless := c.Bool("headless")
	var b backend.Backend
	if headless {
		ticks := c.Int("ticks")
		if ticks <= 0 {
			return errors.New("headless mode requires --ticks option with a positive value")
		}
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level})
		slog.SetDefault(slog.New(handler))
		b = backend.NewHeadless(uint64(ticks))
	} else {
		// The dashboard owns the terminal; keep stderr logging quiet
		// to errors only.
		handler := slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelError})
		slog.SetDefault(slog.New(handler))
		b = terminal.New()
	}

	mono := clock.NewMonotonic()
	p := pacer.NewWithClock(mono, wait.New(mono))
	tracker := stats.NewTracker(mono)
	rateCmd := command.NewRate(p)

	p.SetCallback(workload(c.Int("work")))
	p.SetTarget(c.Float64("rate"))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	loop := hook.NewLoop()

	err := b.Init(backend.Config{
		Title:      "go-pacer",
		TargetRate: p.Target(),
		Callbacks: backend.Callbacks{
			OnQuit: func() {
				loop.Detach()
				cancel()
			},
			OnRateCommand: func(arg string) string {
				res := rateCmd.Execute(arg)
				if arg != "" {
					// New cadence: stale periods would report as
					// jitter they are not.
					tracker.Reset()
				}
				return res
			},
		},
	})
	if err != nil {
		return err
	}
	defer b.Cleanup()

	loop.Attach(func() {
		p.Tick()
		tracker.Sample()

		target := p.Target()
		if err := b.Update(backend.Snapshot{
			TargetRate: target,
			Report:     tracker.Report(target),
		}); err != nil {
			slog.Error("backend update failed", "error", err)
			loop.Detach()
		}
	})

	runErr := loop.Run(ctx)
	p.Stop()

	if errors.Is(runErr, context.Canceled) {
		return nil
	}
	return runErr
}

// workload returns the per-tick callback: a Fibonacci computation as a
// stand-in for real consumer work, or a no-op.
func workload(n int) func() {
	if n <= 0 {
		return nil
	}
	strategy := fibonacci.NewRecursive()
	return func() {
		strategy.Compute(n)
	}
}
