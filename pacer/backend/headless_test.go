package backend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CanTalat-Yakan/go-pacer/pacer/stats"
)

func TestHeadlessQuitsAtTickBudget(t *testing.T) {
	quits := 0
	h := NewHeadless(3)
	require.NoError(t, h.Init(Config{
		TargetRate: 60,
		Callbacks:  Callbacks{OnQuit: func() { quits++ }},
	}))

	for ticks := uint64(1); ticks <= 3; ticks++ {
		err := h.Update(Snapshot{
			TargetRate: 60,
			Report:     stats.Report{Ticks: ticks},
		})
		require.NoError(t, err)
	}

	assert.Equal(t, 1, quits, "quit exactly once, at the budget")
	require.NoError(t, h.Cleanup())
}

func TestHeadlessWithoutQuitCallback(t *testing.T) {
	h := NewHeadless(1)
	require.NoError(t, h.Init(Config{}))

	assert.NotPanics(t, func() {
		h.Update(Snapshot{Report: stats.Report{Ticks: 1}})
	})
}
