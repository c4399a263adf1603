// Package cli implements a command-line UI for the game.
package cli

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/janpfeifer/tttGo/internal/game"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/term"
	"k8s.io/klog/v2"
)

const (
	CharsPerColumn = 5
	maxParseErrors = 3
)

// ErrTooManyParsingErrors is returned by ReadCommand when the user fails to enter a valid
// command too many times in a row.
var ErrTooManyParsingErrors = errors.New("failed to read command 3 times")

var ansiFilter = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

// displayWidth of s removes its color/control sequences and returns the length of what is left.
func displayWidth(s string) int {
	return len([]rune(ansiFilter.ReplaceAllString(s, "")))
}

// CommandType enumerates what the user can ask for at the prompt.
type CommandType int

const (
	// CommandPlay a mark in Command.Cell.
	CommandPlay CommandType = iota

	// CommandHint asks for the best move.
	CommandHint
)

// Command read from the user.
type Command struct {
	Type CommandType
	Cell int
}

var (
	rowColParser = regexp.MustCompile(`^\s*(-?\d+)[\s,]+(-?\d+)\s*$`)
	cellParser   = regexp.MustCompile(`^\s*(-?\d+)\s*$`)
)

// ParseCommand parses one line typed by the user: "row col" (0-based), a cell index 0 to 8
// (row-major) or "hint" (also "h" or "?").
//
// It doesn't check whether the cell is empty, see UI.ReadCommand.
func ParseCommand(text string) (cmd Command, err error) {
	text = strings.ToLower(strings.TrimSpace(text))
	switch text {
	case "hint", "h", "?":
		return Command{Type: CommandHint}, nil
	}
	if matches := rowColParser.FindStringSubmatch(text); len(matches) == 3 {
		var rowCol [2]int
		for ii := range rowCol {
			rowCol[ii], err = strconv.Atoi(matches[1+ii])
			if err != nil {
				return cmd, errors.Wrapf(err, "failed to parse %q", matches[1+ii])
			}
			if rowCol[ii] < 0 || rowCol[ii] >= BoardSize {
				return cmd, errors.Wrapf(ErrIllegalMove, "row and column must be between 0 and %d, got %q", BoardSize-1, text)
			}
		}
		return Command{Type: CommandPlay, Cell: CellIndex(rowCol[0], rowCol[1])}, nil
	}
	if matches := cellParser.FindStringSubmatch(text); len(matches) == 2 {
		cmd.Cell, err = strconv.Atoi(matches[1])
		if err != nil {
			return cmd, errors.Wrapf(err, "failed to parse %q", matches[1])
		}
		if !ValidCell(cmd.Cell) {
			return cmd, errors.Wrapf(ErrIllegalMove, "cell must be between 0 and %d, got %d", NumCells-1, cmd.Cell)
		}
		return
	}
	return cmd, errors.Errorf("can't parse %q: type \"row col\", a cell number or \"hint\"", text)
}

// UI renders boards and reads the human moves from a terminal.
type UI struct {
	color, clearScreen bool
	reader             *bufio.Reader
	out                io.Writer

	// suggestion to highlight in the next board printed, -1 if none.
	suggestion int

	styles styles
}

type styles struct {
	marks      [MarkInvalid]lipgloss.Style
	suggestion lipgloss.Style
	banner     lipgloss.Style
	draw       lipgloss.Style
	title      lipgloss.Style
}

func newStyles(color bool) (s styles) {
	cell := lipgloss.NewStyle().Width(CharsPerColumn).Align(lipgloss.Center)
	for ii := range s.marks {
		s.marks[ii] = cell
	}
	s.suggestion = cell
	s.banner = lipgloss.NewStyle().Padding(1, 2)
	s.draw = s.banner
	s.title = lipgloss.NewStyle()
	if !color {
		return
	}
	s.marks[MarkEmpty] = cell.Foreground(lipgloss.Color("8"))
	s.marks[MarkX] = cell.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("1"))
	s.marks[MarkO] = cell.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("2"))
	s.suggestion = cell.Blink(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("11"))
	s.banner = s.banner.Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("10"))
	s.draw = s.draw.Foreground(lipgloss.Color("0")).Background(lipgloss.Color("13"))
	s.title = s.title.Bold(true).Foreground(lipgloss.Color("15"))
	return
}

// New creates a UI reading from the standard input and writing to the standard output.
func New(color bool, clearScreen bool) *UI {
	return NewWithIO(os.Stdin, os.Stdout, color, clearScreen)
}

// NewWithIO creates a UI reading commands from r and printing to w.
func NewWithIO(r io.Reader, w io.Writer, color bool, clearScreen bool) *UI {
	return &UI{
		color:       color,
		clearScreen: clearScreen,
		reader:      bufio.NewReader(r),
		out:         w,
		suggestion:  -1,
		styles:      newStyles(color),
	}
}

// terminalWidth returns the width of the output, or 0 if it is not a terminal.
func (ui *UI) terminalWidth() int {
	f, ok := ui.out.(*os.File)
	if !ok || !term.IsTerminal(int(f.Fd())) {
		return 0
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil {
		return 0
	}
	return width
}

func (ui *UI) printCentered(block string) {
	lines := strings.Split(block, "\n")
	blockWidth := 0
	for _, line := range lines {
		blockWidth = max(blockWidth, displayWidth(line))
	}
	indent := max((ui.terminalWidth()-blockWidth)/2, 0)
	for _, line := range lines {
		if len(line) == 0 {
			_, _ = fmt.Fprintln(ui.out)
			continue
		}
		_, _ = fmt.Fprintf(ui.out, "%s%s\n", strings.Repeat(" ", indent), line)
	}
}

// Suggest highlights cell in the next board printed. It matches game.Session.OnSuggestion.
func (ui *UI) Suggest(cell int, mark Mark) {
	ui.suggestion = cell
	_, _ = fmt.Fprintf(ui.out, "    Suggested move for %s: cell %d %s\n", mark, cell, rowColString(cell))
}

func rowColString(cell int) string {
	row, col := CellPos(cell)
	return fmt.Sprintf("(row %d, col %d)", row, col)
}

// Print the board, preceded by the move number and followed by whose turn it is.
func (ui *UI) Print(board *Board) {
	if ui.clearScreen {
		_, _ = fmt.Fprint(ui.out, "\033c")
	}
	_, _ = fmt.Fprintf(ui.out, "\n%s\n\n", ui.styles.title.Render(fmt.Sprintf("Move #%d", board.MovesPlayed()+1)))
	ui.PrintBoard(board)
	if !board.IsFinished() {
		_, _ = fmt.Fprintf(ui.out, "\n    %s turn to play\n", ui.playerString(board.NextMark()))
	}
}

// PrintBoard prints the board centered in the terminal. Empty cells show their index,
// and the suggested cell, if any, is highlighted.
func (ui *UI) PrintBoard(board *Board) {
	separator := strings.Repeat(strings.Repeat("─", CharsPerColumn)+"┼", BoardSize)
	separator = strings.TrimSuffix(separator, "┼")
	var sb strings.Builder
	for row := range BoardSize {
		if row > 0 {
			sb.WriteString(separator + "\n")
		}
		cells := make([]string, 0, BoardSize)
		for col := range BoardSize {
			cells = append(cells, ui.renderCell(board, CellIndex(row, col)))
		}
		sb.WriteString(strings.Join(cells, "│") + "\n")
	}
	ui.printCentered(sb.String())
	ui.suggestion = -1
}

func (ui *UI) renderCell(board *Board, cell int) string {
	mark := board[cell]
	if !mark.IsPlayer() {
		text := strconv.Itoa(cell)
		if cell == ui.suggestion {
			return ui.styles.suggestion.Render(text)
		}
		return ui.styles.marks[MarkEmpty].Render(text)
	}
	return ui.styles.marks[mark].Render(strings.ToUpper(string(mark.Symbol())))
}

func (ui *UI) playerString(mark Mark) string {
	if !mark.IsPlayer() {
		return mark.String()
	}
	return ui.styles.marks[mark].UnsetWidth().Render(" " + mark.String() + " ")
}

// PrintWinner prints the banner with the outcome of the game. It matches game.Session.OnGameOver.
func (ui *UI) PrintWinner(outcome Outcome) {
	_, _ = fmt.Fprintln(ui.out)
	switch {
	case outcome == OutcomeTie:
		ui.printCentered(ui.styles.draw.Render("*** DRAW: nobody wins! ***"))
	case outcome.IsFinished():
		ui.printCentered(ui.styles.banner.Render(
			fmt.Sprintf("*** %s PLAYER WINS!! Congratulations! ***", strings.ToUpper(outcome.Winner().String()))))
	default:
		klog.Warningf("PrintWinner(%s) called before the end of the game", outcome)
		return
	}
	_, _ = fmt.Fprintln(ui.out)
}

// ReadCommand prompts the user for mark's move, and reads it.
// A play command is only returned for an empty cell of board.
//
// It returns ErrTooManyParsingErrors after 3 invalid lines in a row, or the reader's error
// (typically io.EOF).
func (ui *UI) ReadCommand(board *Board, mark Mark) (cmd Command, err error) {
	// ANSI escape codes: purplish background for the input area, and reset.
	const (
		inputAreaColor = "\033[30;45;2m"
		inputAreaReset = "\033[39;49;0m\033[0K" // Reset color and clear to the end-of-line.
		inputWidth     = 10
	)

	for range maxParseErrors {
		_, _ = fmt.Fprintf(ui.out, "    %s move > ", ui.playerString(mark))
		if ui.color {
			// Print "input area" in purple, and move the cursor back to the beginning of the input area.
			_, _ = fmt.Fprintf(ui.out, "%s%s\033[%dD", inputAreaColor, strings.Repeat(" ", inputWidth), inputWidth-1)
		}

		var text string
		text, err = ui.reader.ReadString('\n')
		if ui.color {
			_, _ = fmt.Fprint(ui.out, inputAreaReset) // We don't want the purple color to leak.
		}
		if err != nil && (text == "" || err != io.EOF) {
			return
		}
		err = nil

		cmd, err = ParseCommand(text)
		if err != nil {
			_, _ = fmt.Fprintf(ui.out, "    * %v\n", err)
			continue
		}
		if cmd.Type == CommandPlay && board[cmd.Cell] != MarkEmpty {
			_, _ = fmt.Fprintf(ui.out, "    * Cell %d %s is already taken by %s, choose another one.\n",
				cmd.Cell, rowColString(cmd.Cell), board[cmd.Cell])
			continue
		}
		return cmd, nil
	}
	return cmd, ErrTooManyParsingErrors
}

// RunNextMove reads and plays the human move for mark on the session. "hint" commands ask
// the session for the best move, which is highlighted in the board printed next.
func (ui *UI) RunNextMove(session *game.Session, mark Mark) (Outcome, error) {
	for {
		board := session.Board()
		ui.Print(&board)
		_, _ = fmt.Fprintln(ui.out)
		cmd, err := ui.ReadCommand(&board, mark)
		if errors.Is(err, ErrTooManyParsingErrors) {
			continue
		}
		if err != nil {
			return OutcomeInProgress, errors.WithMessage(err, "reading next move")
		}
		if cmd.Type == CommandHint {
			if _, _, err = session.BestMove(mark); err != nil {
				return OutcomeInProgress, err
			}
			continue
		}
		return session.Play(cmd.Cell, mark)
	}
}
