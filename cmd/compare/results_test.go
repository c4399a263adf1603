package main

import (
	"testing"

	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/stretchr/testify/assert"
)

func TestResults(t *testing.T) {
	r := newResults(4)
	r.Record(0, state.OutcomeXWins) // AI-1 as X wins.
	r.Record(1, state.OutcomeXWins) // AI-2 as X wins.
	r.Record(1, state.OutcomeOWins) // AI-1 as O wins.
	progress := r.Record(0, state.OutcomeTie)

	assert.Equal(t, tally{winsAsX: 1, winsAsO: 1, lossesAsO: 1, draws: 1}, r.tallies[0])
	assert.Equal(t, tally{winsAsX: 1, lossesAsX: 1, lossesAsO: 1, draws: 1}, r.tallies[1])
	assert.Contains(t, progress, "4/4 matches: AI-1 2-1-1 AI-2")

	report := r.Report([2]string{"minimax", "random"})
	assert.Contains(t, report, `AI-1 "minimax": 2 wins (X: 1, O: 1), 1 draws, 1 losses (X: 0, O: 1)`)
	assert.Contains(t, report, `AI-2 "random": 1 wins (X: 1, O: 0), 1 draws, 2 losses (X: 1, O: 1)`)
	assert.Contains(t, report, "XWins      2")
	assert.Contains(t, report, "Tie        1")
}
