package minimax

import (
	. "github.com/janpfeifer/tttGo/internal/state"
)

// Evaluation weights. Positive values favor MarkX, negative values favor MarkO.
const (
	// WinScore for MarkX completing a line; -WinScore for MarkO.
	WinScore = 20

	// TieScore for a full board without a winner.
	TieScore = 0

	// CenterWeight for occupying the center cell.
	CenterWeight = 5

	// CornerWeight for occupying each of the corners.
	CornerWeight = 1
)

const centerCell = 4

var cornerCells = [4]int{0, 2, 6, 8}

// alignment is a three-cell line seen from one of its ends: if end and middle hold
// opposing marks, the end's owner is "blocking" a line, and the far cell may complete a
// threat. Each alignment carries its own weights.
type alignment struct {
	end, middle, far int

	// Applied when end is MarkX and middle is MarkO: xBlock, plus xThreat if far is MarkO.
	xBlock, xThreat int

	// Applied when end is MarkO and middle is MarkX: oBlock, plus oThreat if far is MarkX.
	oBlock, oThreat int
}

// alignments lists rows and columns seen from both ends, and the diagonals seen from each
// of the corners. The diagonal weights are not symmetric.
var alignments = func() (list []alignment) {
	for ii := range BoardSize {
		row, col := CellIndex(ii, 0), CellIndex(0, ii)
		list = append(list,
			alignment{end: row, middle: row + 1, far: row + 2, xBlock: 1, xThreat: 5, oBlock: -1, oThreat: -5},
			alignment{end: row + 2, middle: row + 1, far: row, xBlock: 1, xThreat: 5, oBlock: -1, oThreat: -5},
			alignment{end: col + 6, middle: col + 3, far: col, xBlock: 1, xThreat: 5, oBlock: -1, oThreat: -5},
			alignment{end: col, middle: col + 3, far: col + 6, xBlock: 1, xThreat: 5, oBlock: -1, oThreat: -5},
		)
	}
	list = append(list,
		alignment{end: 0, middle: 4, far: 8, xBlock: 1, xThreat: 5, oBlock: -1, oThreat: -5},
		alignment{end: 2, middle: 4, far: 6, xBlock: 1, xThreat: -5, oBlock: -1, oThreat: -5},
		alignment{end: 6, middle: 4, far: 2, xBlock: -1, xThreat: -5, oBlock: -1, oThreat: -5},
		alignment{end: 8, middle: 4, far: 0, xBlock: -1, xThreat: -5, oBlock: -1, oThreat: -5},
	)
	return
}()

// StaticScore returns the evaluation of the board without searching.
//
// Finished boards are scored by their outcome only: WinScore, -WinScore or TieScore.
// Other boards (a depth-limited cut-off) are scored by a positional heuristic.
func StaticScore(board *Board) int {
	switch {
	case board.IsWin(MarkX):
		return WinScore
	case board.IsWin(MarkO):
		return -WinScore
	case board.IsFull():
		return TieScore
	}
	return PositionalScore(board)
}

// PositionalScore rewards the center, the corners and blocking of the opponent's lines.
func PositionalScore(board *Board) (score int) {
	score += markSign(board[centerCell]) * CenterWeight
	for _, corner := range cornerCells {
		score += markSign(board[corner]) * CornerWeight
	}
	for _, a := range alignments {
		switch {
		case board[a.end] == MarkX && board[a.middle] == MarkO:
			score += a.xBlock
			if board[a.far] == MarkO {
				score += a.xThreat
			}
		case board[a.end] == MarkO && board[a.middle] == MarkX:
			score += a.oBlock
			if board[a.far] == MarkX {
				score += a.oThreat
			}
		}
	}
	return
}

func markSign(m Mark) int {
	switch m {
	case MarkX:
		return 1
	case MarkO:
		return -1
	}
	return 0
}
