package minimax_test

import (
	"testing"

	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	. "github.com/janpfeifer/tttGo/internal/searchers/minimax"
	. "github.com/janpfeifer/tttGo/internal/state"
	. "github.com/janpfeifer/tttGo/internal/state/statetest"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"k8s.io/klog/v2"
)

func init() {
	klog.InitFlags(nil)
}

func TestEmptyBoardIsDraw(t *testing.T) {
	var board Board
	searcher := New(nil)
	score := searcher.Minimax(&board, NumCells, NegInf, PosInf, true)
	assert.Equal(t, 0, score, "perfect play from the empty board is a tie")
	assert.Equal(t, Board{}, board, "board must be restored")
}

func TestSearchEmptyBoard(t *testing.T) {
	var board Board
	cell, score, cellsScores, err := New(nil).Search(&board, MarkX)
	require.NoError(t, err)
	assert.Contains(t, []int{0, 2, 4, 6, 8}, cell)
	assert.Equal(t, 0, score)
	require.Len(t, cellsScores, NumCells)
	for _, cs := range cellsScores {
		// Any first move is a draw with perfect play.
		assert.Equalf(t, 0, cs.Score, "cell %d", cs.Cell)
	}
}

func TestSearchCompletesLine(t *testing.T) {
	board := BuildBoard(t, "xx.", "oo.", "...")
	cell, score, _, err := New(nil).Search(board, MarkX)
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
	assert.Equal(t, WinScore, score)

	// O to move wins either by completing its row (5), or by blocking X in 2, which also
	// creates two threats. Wins score the same regardless of how long they take, so the
	// first cell is kept.
	cell, score, cellsScores, err := New(nil).Search(board, MarkO)
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
	assert.Equal(t, -WinScore, score)
	assert.Contains(t, cellsScores, searchers.CellScore{Cell: 5, Score: -WinScore})
}

func TestSearchBlocks(t *testing.T) {
	// X threatens the top row: O must block in cell 2, every other cell loses.
	board := BuildBoard(t, "xx.", ".o.", "...")
	cell, score, cellsScores, err := New(nil).Search(board, MarkO)
	require.NoError(t, err)
	assert.Equal(t, 2, cell)
	assert.Equal(t, 0, score)
	for _, cs := range cellsScores {
		if cs.Cell != 2 {
			assert.Equalf(t, WinScore, cs.Score, "cell %d should lose for O", cs.Cell)
		}
	}
}

func TestSearchFullBoard(t *testing.T) {
	board := BuildBoard(t, "xox", "xoo", "oxx")
	require.True(t, board.IsTie())
	_, _, _, err := New(nil).Search(board, MarkX)
	require.ErrorIs(t, err, ErrNoLegalMove)
}

func TestSearchInvalidMark(t *testing.T) {
	var board Board
	_, _, _, err := New(nil).Search(&board, MarkEmpty)
	require.ErrorIs(t, err, ErrInvalidMark)
	_, _, _, err = New(nil).Search(&board, MarkInvalid)
	require.ErrorIs(t, err, ErrInvalidMark)
}

func TestRollback(t *testing.T) {
	boards := ReachableBoards()
	searcher := New(nil)
	limited := New(nil).WithMaxDepth(2)
	for ii, b := range boards {
		if ii%7 != 0 || b.IsFull() {
			continue
		}
		board := b
		_, _, _, err := searcher.Search(&board, board.NextMark())
		require.NoError(t, err)
		require.Equal(t, b, board)
		_, _, _, err = limited.Search(&board, board.NextMark())
		require.NoError(t, err)
		require.Equal(t, b, board)
		_ = searcher.Minimax(&board, 3, NegInf, PosInf, board.NextMark() == MarkX)
		require.Equal(t, b, board)
	}
}

func TestPruningEquivalence(t *testing.T) {
	minMoves := 0
	if testing.Short() {
		minMoves = 3
	}
	for _, b := range ReachableBoards() {
		if b.IsFinished() || b.MovesPlayed() < minMoves {
			continue
		}
		maximizing := b.NextMark() == MarkX
		for _, depth := range []int{NumCells - b.MovesPlayed(), 2} {
			board := b
			pruned := New(nil).Minimax(&board, depth, NegInf, PosInf, maximizing)
			unpruned := New(nil).WithPruning(false).Minimax(&board, depth, NegInf, PosInf, maximizing)
			require.Equalf(t, unpruned, pruned, "board %s, depth %d", b, depth)
		}
	}
}

func TestPruningStats(t *testing.T) {
	var board Board
	pruned := New(nil)
	_, _, _, err := pruned.Search(&board, MarkX)
	require.NoError(t, err)
	unpruned := New(nil).WithPruning(false)
	_, _, _, err = unpruned.Search(&board, MarkX)
	require.NoError(t, err)

	assert.Greater(t, pruned.Stats().Prunes, int64(0))
	assert.Equal(t, int64(0), unpruned.Stats().Prunes)
	assert.Less(t, pruned.Stats().Nodes, unpruned.Stats().Nodes)
	pruned.ResetStats()
	assert.Equal(t, Stats{}, pruned.Stats())
}

func TestEvaluateIdempotent(t *testing.T) {
	board := BuildBoard(t, "x..", ".o.", "..x")
	searcher := New(nil)
	first := searcher.Evaluate(board)
	second := searcher.Evaluate(board)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, searcher.Cache().Len())
	value, found := searcher.Cache().Get(Key{Board: *board})
	require.True(t, found)
	assert.Equal(t, first, value)
}

func TestStaticScore(t *testing.T) {
	testCases := []struct {
		board string
		want  int
	}{
		{".../.../...", 0},
		{".../.x./...", CenterWeight},
		{"x../.o./...", CornerWeight - CenterWeight + 1},
		{"..x/.o./...", CornerWeight - CenterWeight + 1},
		// The top-right alignment penalizes the far corner held by O even for X's block.
		{"..x/.o./o..", CornerWeight - CornerWeight - CenterWeight + 1 - 5},
		{"xo./.../...", CornerWeight + 1},
		{"xxx/oo./...", WinScore},
		{"x.o/xo./o.x", -WinScore},
		{"xox/xoo/oxx", TieScore},
	}
	for _, tc := range testCases {
		board := MustParseBoard(tc.board)
		assert.Equalf(t, tc.want, StaticScore(&board), "StaticScore(%s)", tc.board)
	}
}

func TestCacheByDepth(t *testing.T) {
	board := BuildBoard(t, "x..", "...", "...")
	fresh := New(nil)
	wantCell, wantScore, _, err := fresh.Search(board, MarkO)
	require.NoError(t, err)

	// A shallow search first, sharing the cache: keyed by depth, the later full search
	// is not affected by the cut-off evaluations.
	cache := NewCache()
	_, _, _, err = New(cache).WithCacheByDepth(true).WithMaxDepth(1).Search(board, MarkO)
	require.NoError(t, err)
	sizeAfterShallow := cache.Len()
	require.Greater(t, sizeAfterShallow, 0)
	cell, score, _, err := New(cache).WithCacheByDepth(true).Search(board, MarkO)
	require.NoError(t, err)
	assert.Equal(t, wantCell, cell)
	assert.Equal(t, wantScore, score)
	assert.Greater(t, cache.Len(), sizeAfterShallow)
}

func TestParallel(t *testing.T) {
	for _, layout := range []string{".../.../...", "x../.../...", "x../.o./..x", "xx./oo./..."} {
		board := MustParseBoard(layout)
		wantCell, wantScore, wantScores, err := New(nil).Search(&board, board.NextMark())
		require.NoError(t, err)
		cell, score, cellsScores, err := New(nil).WithParallel(true).Search(&board, board.NextMark())
		require.NoError(t, err)
		assert.Equalf(t, wantCell, cell, "board %s", layout)
		assert.Equalf(t, wantScore, score, "board %s", layout)
		assert.Equalf(t, wantScores, cellsScores, "board %s", layout)
		assert.Equal(t, MustParseBoard(layout), board)
	}
}

func TestNewFromParams(t *testing.T) {
	params := parameters.NewFromConfigString("max_depth=2,no_pruning,parallel,cache_by_depth,other=1")
	searcher, err := NewFromParams(nil, params)
	require.NoError(t, err)
	assert.Equal(t, parameters.Params{"other": "1"}, params)
	var _ searchers.Searcher = searcher

	// Search still works with every option set.
	board := BuildBoard(t, "xx.", "oo.", "...")
	cell, _, _, err := searcher.Search(board, MarkX)
	require.NoError(t, err)
	assert.Equal(t, 2, cell)

	_, err = NewFromParams(nil, parameters.NewFromConfigString("max_depth=-1"))
	assert.Error(t, err)
	_, err = NewFromParams(nil, parameters.NewFromConfigString("max_depth=abc"))
	assert.Error(t, err)
}
