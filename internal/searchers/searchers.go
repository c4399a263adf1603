// Package searchers defines the interface of the search algorithms, and meta-searchers that
// can wrap any of them.
package searchers

import (
	"fmt"

	. "github.com/janpfeifer/tttGo/internal/state"
)

// CellScore is the evaluation found for playing in Cell.
// Positive scores favor MarkX, negative scores favor MarkO.
type CellScore struct {
	Cell, Score int
}

// String implements fmt.Stringer.
func (cs CellScore) String() string {
	return fmt.Sprintf("%d:%d", cs.Cell, cs.Score)
}

// Searcher is the interface that any of the search algorithms
// must adhere to be valid.
type Searcher interface {
	// Search returns the cell (0 to 8, row-major) where mark should play on the given board,
	// along with the evaluation of playing there.
	//
	// It also returns the score of each of the candidate cells, in row-major order.
	//
	// The board may be changed during the search, but it is restored before returning.
	// It fails with state.ErrNoLegalMove if the board is full, and with state.ErrInvalidMark
	// if mark is not one of the players.
	Search(board *Board, mark Mark) (cell, score int, cellsScores []CellScore, err error)
}
