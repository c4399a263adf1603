package state_test

import (
	"testing"

	. "github.com/janpfeifer/tttGo/internal/state"
	. "github.com/janpfeifer/tttGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPlace(t *testing.T) {
	var b Board
	require.NoError(t, b.Place(1, 1, MarkX))
	assert.Equal(t, MarkX, b.At(1, 1))
	assert.Equal(t, MarkX, b[4])

	// Occupied cell.
	err := b.Place(1, 1, MarkO)
	require.ErrorIs(t, err, ErrIllegalMove)
	assert.Equal(t, MarkX, b.At(1, 1), "failed placement must not change the board")

	// Off the board.
	require.ErrorIs(t, b.Place(3, 0, MarkO), ErrIllegalMove)
	require.ErrorIs(t, b.Place(0, -1, MarkO), ErrIllegalMove)
	require.ErrorIs(t, b.PlaceCell(9, MarkO), ErrIllegalMove)

	// Marks that can't play.
	require.ErrorIs(t, b.PlaceCell(0, MarkEmpty), ErrInvalidMark)
	require.ErrorIs(t, b.PlaceCell(0, MarkInvalid), ErrInvalidMark)
	require.ErrorIs(t, b.PlaceCell(0, Mark(17)), ErrInvalidMark)
	assert.Equal(t, 1, b.MovesPlayed())
}

func TestCellIndex(t *testing.T) {
	for cell := range NumCells {
		row, col := CellPos(cell)
		assert.Equal(t, cell, CellIndex(row, col))
	}
	row, col := CellPos(5)
	assert.Equal(t, 1, row)
	assert.Equal(t, 2, col)
}

func TestIsWin(t *testing.T) {
	testCases := []struct {
		board       string
		win, xWins  bool
		oWins, full bool
	}{
		{".../.../...", false, false, false, false},
		{"xxx/oo./...", true, true, false, false},
		{"xo./xo./x..", true, true, false, false},
		{"oxx/.ox/..o", true, false, true, false},
		{"xxo/.o./o.x", true, false, true, false},
		{"xox/xoo/oxx", false, false, false, true},
		{"xxx/oox/oxo", true, true, false, true},
	}
	for _, tc := range testCases {
		b := MustParseBoard(tc.board)
		assert.Equalf(t, tc.win, b.IsWin(), "IsWin(%s)", tc.board)
		assert.Equalf(t, tc.xWins, b.IsWin(MarkX), "IsWin(%s, x)", tc.board)
		assert.Equalf(t, tc.oWins, b.IsWin(MarkO), "IsWin(%s, o)", tc.board)
		assert.Equalf(t, tc.full, b.IsFull(), "IsFull(%s)", tc.board)
		assert.Equalf(t, tc.full && !tc.win, b.IsTie(), "IsTie(%s)", tc.board)
	}
}

func TestOutcome(t *testing.T) {
	assert.Equal(t, OutcomeInProgress, BuildBoard(t, "x..", ".o.", "...").Outcome())
	assert.Equal(t, OutcomeXWins, BuildBoard(t, "xxx", "oo.", "...").Outcome())
	assert.Equal(t, OutcomeOWins, BuildBoard(t, "x.o", "xo.", "o.x").Outcome())
	assert.Equal(t, OutcomeTie, BuildBoard(t, "xox", "xoo", "oxx").Outcome())
	assert.Equal(t, MarkO, OutcomeOWins.Winner())
	assert.Equal(t, MarkEmpty, OutcomeTie.Winner())
	assert.True(t, OutcomeTie.IsFinished())
	assert.False(t, OutcomeInProgress.IsFinished())
}

func TestWinAndTieExclusive(t *testing.T) {
	boards := ReachableBoards()
	// Well known count of tic-tac-toe positions reachable from the empty board.
	require.Len(t, boards, 5478)
	var wins, ties int
	for _, b := range boards {
		if b.IsWin() {
			wins++
			assert.Falsef(t, b.IsTie(), "board %s is both a win and a tie", b)
		}
		if b.IsTie() {
			ties++
		}
	}
	// 626 finished by X, 316 by O, and 16 ties.
	assert.Equal(t, 626+316, wins)
	assert.Equal(t, 16, ties)
}

func TestNextMark(t *testing.T) {
	var b Board
	assert.Equal(t, MarkX, b.NextMark())
	b[0] = MarkX
	assert.Equal(t, MarkO, b.NextMark())
	b[4] = MarkO
	assert.Equal(t, MarkX, b.NextMark())
	assert.Equal(t, MarkO, MarkX.Opponent())
	assert.Equal(t, MarkX, MarkO.Opponent())
	assert.Equal(t, MarkInvalid, MarkEmpty.Opponent())
}

func TestEmptyCells(t *testing.T) {
	b := BuildBoard(t, "x.o/.x./o..")
	var cells []int
	for cell := range b.EmptyCells() {
		cells = append(cells, cell)
	}
	assert.Equal(t, []int{1, 3, 5, 7, 8}, cells)
}

func TestParseBoard(t *testing.T) {
	for _, b := range ReachableBoards()[:200] {
		parsed, err := ParseBoard(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, parsed)
	}
	b, err := ParseBoard("XX_\nOO_\n___")
	require.NoError(t, err)
	assert.Equal(t, "xx./oo./...", b.String())

	_, err = ParseBoard("xx./oo./..")
	assert.Error(t, err)
	_, err = ParseBoard("xx./oo./...x")
	assert.Error(t, err)
	_, err = ParseBoard("xx./oz./...")
	assert.Error(t, err)
}

func TestMarkEnum(t *testing.T) {
	m, err := MarkString("x")
	require.NoError(t, err)
	assert.Equal(t, MarkX, m)
	m, err = MarkString("O")
	require.NoError(t, err)
	assert.Equal(t, MarkO, m)
	_, err = MarkString("z")
	assert.Error(t, err)
	assert.Equal(t, "X", MarkX.String())
	assert.Equal(t, byte('o'), MarkO.Symbol())
}
