// Package terminal implements a tcell dashboard backend for a paced
// loop: live target vs. effective rate, jitter, and interactive rate
// control.
package terminal

import (
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"

	"github.com/CanTalat-Yakan/go-pacer/pacer/backend"
)

const rateStep = 5.0

// Backend implements backend.Backend using tcell.
type Backend struct {
	screen  tcell.Screen
	config  backend.Config
	running bool

	input    string // digits typed for a new rate
	response string // last diagnostic command response
}

// New creates an uninitialized terminal backend.
func New() *Backend {
	return &Backend{}
}

// Init sets up the tcell screen and signal handling.
func (t *Backend) Init(config backend.Config) error {
	t.config = config

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to initialize terminal: %v", err)
	}

	t.screen = screen
	t.running = true

	t.screen.SetStyle(tcell.StyleDefault.
		Background(tcell.ColorBlack).
		Foreground(tcell.ColorWhite))
	t.screen.Clear()

	go t.handleSignals()

	slog.Info("terminal backend initialized", "target_rate", config.TargetRate)
	return nil
}

// Update polls input events and redraws the dashboard.
func (t *Backend) Update(snapshot backend.Snapshot) error {
	if !t.running {
		return nil
	}

	for t.screen.HasPendingEvent() {
		ev := t.screen.PollEvent()
		switch ev := ev.(type) {
		case *tcell.EventKey:
			t.handleKey(ev, snapshot)
		case *tcell.EventResize:
			t.screen.Sync()
		}
	}

	t.draw(snapshot)
	return nil
}

func (t *Backend) handleKey(ev *tcell.EventKey, snapshot backend.Snapshot) {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		t.quit()
	case tcell.KeyEnter:
		if t.input != "" {
			t.runCommand(t.input)
			t.input = ""
		}
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		if len(t.input) > 0 {
			t.input = t.input[:len(t.input)-1]
		}
	case tcell.KeyRune:
		t.handleRune(ev.Rune(), snapshot)
	}
}

func (t *Backend) handleRune(r rune, snapshot backend.Snapshot) {
	switch {
	case r == 'q':
		t.quit()
	case r == 'u':
		t.runCommand("0")
	case r == '+' || r == '=':
		t.runCommand(fmt.Sprintf("%g", snapshot.TargetRate+rateStep))
	case r == '-':
		next := snapshot.TargetRate - rateStep
		if next < 0 {
			next = 0
		}
		t.runCommand(fmt.Sprintf("%g", next))
	case (r >= '0' && r <= '9') || r == '.':
		t.input += string(r)
	}
}

func (t *Backend) runCommand(arg string) {
	if t.config.Callbacks.OnRateCommand == nil {
		return
	}
	t.response = t.config.Callbacks.OnRateCommand(arg)
}

func (t *Backend) quit() {
	t.running = false
	if t.config.Callbacks.OnQuit != nil {
		t.config.Callbacks.OnQuit()
	}
}

func (t *Backend) draw(snapshot backend.Snapshot) {
	t.screen.Clear()

	style := tcell.StyleDefault
	title := tcell.StyleDefault.Bold(true)
	dim := tcell.StyleDefault.Foreground(tcell.ColorGray)

	t.drawText(0, 0, title, t.config.Title)

	target := "unlimited"
	if snapshot.TargetRate > 0 {
		target = fmt.Sprintf("%.3f Hz", snapshot.TargetRate)
	}
	r := snapshot.Report
	t.drawText(0, 2, style, fmt.Sprintf("target rate:    %s", target))
	t.drawText(0, 3, style, fmt.Sprintf("effective rate: %.3f Hz", r.EffectiveRate))
	t.drawText(0, 4, style, fmt.Sprintf("avg period:     %s", r.AvgPeriod.Round(time.Microsecond)))
	t.drawText(0, 5, style, fmt.Sprintf("max jitter:     %s", r.MaxJitter.Round(time.Microsecond)))
	t.drawText(0, 6, style, fmt.Sprintf("ticks:          %d", r.Ticks))

	if t.input != "" {
		t.drawText(0, 8, style, fmt.Sprintf("new rate: %s_", t.input))
	} else if t.response != "" {
		t.drawText(0, 8, dim, t.response)
	}

	t.drawText(0, 10, dim, "[0-9.] enter rate  [+/-] step  [u] unlimited  [q] quit")

	t.screen.Show()
}

func (t *Backend) drawText(x, y int, style tcell.Style, text string) {
	for i, r := range text {
		t.screen.SetContent(x+i, y, r, nil, style)
	}
}

func (t *Backend) handleSignals() {
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan
	t.quit()
}

// Cleanup restores the terminal.
func (t *Backend) Cleanup() error {
	if t.screen != nil {
		t.screen.Fini()
	}
	return nil
}
