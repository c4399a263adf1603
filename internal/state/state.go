// Package state holds the tic-tac-toe board: the marks on each of the 9 cells, and the
// win/tie detection.
package state

import (
	"fmt"
	"iter"
	"strings"

	"github.com/pkg/errors"
)

// Mark occupying a cell. The zero value is an empty cell.
type Mark uint8

const (
	MarkEmpty Mark = iota

	// MarkX is the first player to move, and the maximizing side of the evaluation.
	MarkX

	// MarkO is the second player to move, and the minimizing side of the evaluation.
	MarkO

	// MarkInvalid represents an invalid Mark.
	MarkInvalid
)

//go:generate go tool enumer -type=Mark -trimprefix=Mark -values -text state.go

const (
	// BoardSize is the number of rows and of columns.
	BoardSize = 3

	// NumCells in the board.
	NumCells = BoardSize * BoardSize
)

var (
	// ErrIllegalMove is returned when placing a mark in an occupied or out-of-range cell, or
	// after the game is over.
	ErrIllegalMove = errors.New("illegal move")

	// ErrNoLegalMove is returned when a move is requested for a full board.
	ErrNoLegalMove = errors.New("no legal move")

	// ErrInvalidMark is returned when a mark other than MarkX or MarkO is used to play.
	ErrInvalidMark = errors.New("invalid mark")
)

var markSymbols = [MarkInvalid]byte{'.', 'x', 'o'}

// IsPlayer returns whether the mark is one of the two player marks, MarkX or MarkO.
func (m Mark) IsPlayer() bool {
	return m == MarkX || m == MarkO
}

// Opponent returns the other player's mark. It returns MarkInvalid for non-player marks.
func (m Mark) Opponent() Mark {
	switch m {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	}
	return MarkInvalid
}

// Symbol used in the text representation of the board: 'x', 'o' or '.'.
func (m Mark) Symbol() byte {
	if m >= MarkInvalid {
		return '?'
	}
	return markSymbols[m]
}

// CheckPlayer returns ErrInvalidMark (with context) if m is not a player mark.
func CheckPlayer(m Mark) error {
	if !m.IsPlayer() {
		return errors.Wrapf(ErrInvalidMark, "mark %s cannot play", m)
	}
	return nil
}

// Board is a compact representation of the game state: 9 cells in row-major order.
//
// It's a value type, comparable and hashable, so it can be used directly as a map key.
// The zero value is the empty board.
type Board [NumCells]Mark

// Lines lists the cells of each of the 8 winning lines: 3 rows, 3 columns and the 2 diagonals.
var Lines = [8][BoardSize]int{
	{0, 1, 2}, {3, 4, 5}, {6, 7, 8},
	{0, 3, 6}, {1, 4, 7}, {2, 5, 8},
	{0, 4, 8}, {2, 4, 6},
}

// CellIndex converts row and column to the linear (row-major) cell index.
func CellIndex(row, col int) int {
	return row*BoardSize + col
}

// CellPos converts the linear cell index to row and column.
func CellPos(cell int) (row, col int) {
	return cell / BoardSize, cell % BoardSize
}

// ValidCell returns whether cell is in the range 0 to 8.
func ValidCell(cell int) bool {
	return cell >= 0 && cell < NumCells
}

// At returns the mark at the given row and column.
func (b *Board) At(row, col int) Mark {
	return b[CellIndex(row, col)]
}

// Place puts mark in the given row and column.
func (b *Board) Place(row, col int, mark Mark) error {
	if row < 0 || row >= BoardSize || col < 0 || col >= BoardSize {
		return errors.Wrapf(ErrIllegalMove, "position (%d, %d) is off the board", row, col)
	}
	return b.PlaceCell(CellIndex(row, col), mark)
}

// PlaceCell puts mark in the given cell. The cell must be empty.
func (b *Board) PlaceCell(cell int, mark Mark) error {
	if err := CheckPlayer(mark); err != nil {
		return err
	}
	if !ValidCell(cell) {
		return errors.Wrapf(ErrIllegalMove, "cell %d is off the board", cell)
	}
	if b[cell] != MarkEmpty {
		return errors.Wrapf(ErrIllegalMove, "cell %d is already taken by %s", cell, b[cell])
	}
	b[cell] = mark
	return nil
}

// IsWin returns whether any line is fully occupied by a single mark.
// If marks are given, only wins by those marks count.
func (b *Board) IsWin(marks ...Mark) bool {
	for _, line := range Lines {
		m := b[line[0]]
		if m == MarkEmpty || b[line[1]] != m || b[line[2]] != m {
			continue
		}
		if len(marks) == 0 {
			return true
		}
		for _, want := range marks {
			if m == want {
				return true
			}
		}
	}
	return false
}

// IsFull returns whether there are no empty cells left.
func (b *Board) IsFull() bool {
	for _, m := range b {
		if m == MarkEmpty {
			return false
		}
	}
	return true
}

// IsTie returns whether the board is full and nobody won.
func (b *Board) IsTie() bool {
	return !b.IsWin() && b.IsFull()
}

// IsFinished returns whether the game is over, either by a win or a tie.
func (b *Board) IsFinished() bool {
	return b.IsWin() || b.IsFull()
}

// Winner returns the mark that completed a line, or MarkEmpty if there is none.
// If (on an unreachable board) both marks have a line, the first line found wins.
func (b *Board) Winner() Mark {
	for _, line := range Lines {
		m := b[line[0]]
		if m != MarkEmpty && b[line[1]] == m && b[line[2]] == m {
			return m
		}
	}
	return MarkEmpty
}

// Outcome of the board.
func (b *Board) Outcome() Outcome {
	switch b.Winner() {
	case MarkX:
		return OutcomeXWins
	case MarkO:
		return OutcomeOWins
	}
	if b.IsFull() {
		return OutcomeTie
	}
	return OutcomeInProgress
}

// MovesPlayed is the number of occupied cells.
func (b *Board) MovesPlayed() (count int) {
	for _, m := range b {
		if m != MarkEmpty {
			count++
		}
	}
	return
}

// NextMark returns the mark expected to play next, assuming MarkX starts and marks alternate.
func (b *Board) NextMark() Mark {
	var counts [MarkInvalid]int
	for _, m := range b {
		if m < MarkInvalid {
			counts[m]++
		}
	}
	if counts[MarkX] > counts[MarkO] {
		return MarkO
	}
	return MarkX
}

// EmptyCells iterates over the empty cells in row-major order.
//
// The board must not be changed during the iteration.
func (b *Board) EmptyCells() iter.Seq[int] {
	return func(yield func(int) bool) {
		for cell, m := range b {
			if m == MarkEmpty {
				if !yield(cell) {
					return
				}
			}
		}
	}
}

// String returns the 3 rows separated by '/', e.g.: "xo./.x./..o".
func (b Board) String() string {
	var sb strings.Builder
	for row := range BoardSize {
		if row > 0 {
			sb.WriteByte('/')
		}
		for col := range BoardSize {
			sb.WriteByte(b[CellIndex(row, col)].Symbol())
		}
	}
	return sb.String()
}

// ParseBoard parses the representation returned by Board.String.
//
// Rows can be separated by '/', newlines or nothing. Empty cells can be '.', '_', '-' or ' ',
// and marks are case-insensitive.
func ParseBoard(text string) (b Board, err error) {
	cell := 0
	for _, r := range text {
		var m Mark
		switch r {
		case '/', '\n', '\r', '|':
			continue
		case '.', '_', '-', ' ':
			m = MarkEmpty
		case 'x', 'X':
			m = MarkX
		case 'o', 'O', '0':
			m = MarkO
		default:
			return b, errors.Errorf("invalid symbol %q in board %q", r, text)
		}
		if cell >= NumCells {
			return b, errors.Errorf("board %q has more than %d cells", text, NumCells)
		}
		b[cell] = m
		cell++
	}
	if cell != NumCells {
		return b, errors.Errorf("board %q has %d cells, wanted %d", text, cell, NumCells)
	}
	return b, nil
}

// MustParseBoard is like ParseBoard, but panics on error. Used for static boards and tests.
func MustParseBoard(text string) Board {
	b, err := ParseBoard(text)
	if err != nil {
		panic(fmt.Sprintf("MustParseBoard: %+v", err))
	}
	return b
}
