// Package statetest provides helper functions to create tests using tic-tac-toe state.
package statetest

import (
	"testing"

	"github.com/janpfeifer/tttGo/internal/generics"
	. "github.com/janpfeifer/tttGo/internal/state"
)

// BuildBoard from its text representation, one string per row (or the full board in a single
// string). It fails the test if the layout can't be parsed.
func BuildBoard(t testing.TB, rows ...string) *Board {
	t.Helper()
	text := ""
	for _, row := range rows {
		text += row
	}
	b, err := ParseBoard(text)
	if err != nil {
		t.Fatalf("BuildBoard(%q): %+v", rows, err)
	}
	return &b
}

// ReachableBoards enumerates every board reachable from the empty board by alternating
// marks, starting with MarkX and stopping at a win or a full board. Each board is
// listed once, in depth-first order.
func ReachableBoards() []Board {
	seen := generics.MakeSet[Board](6000)
	var boards []Board
	var visit func(b Board, next Mark)
	visit = func(b Board, next Mark) {
		if seen.Has(b) {
			return
		}
		seen.Insert(b)
		boards = append(boards, b)
		if b.IsFinished() {
			return
		}
		for cell := range b.EmptyCells() {
			child := b
			child[cell] = next
			visit(child, next.Opponent())
		}
	}
	visit(Board{}, MarkX)
	return boards
}
