// ttt plays tic-tac-toe in the terminal: human against the AI, human against human (-hotseat)
// or AI against AI (-watch). With -solve it prints the best move for the -board position and exits.
package main

import (
	"flag"
	"fmt"
	"math/rand/v2"
	"strings"

	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/game"
	"github.com/janpfeifer/tttGo/internal/players"
	_ "github.com/janpfeifer/tttGo/internal/players/default"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"k8s.io/klog/v2"
)

var (
	flagHotseat    = flag.Bool("hotseat", false, "Hotseat match: human vs human")
	flagWatch      = flag.Bool("watch", false, "Watch mode: AI vs AI playing")
	flagFirst      = flag.String("first", "", "Who plays first: human or ai. Default is random.")
	flagAIConfig   = flag.String("config", "minimax", "AI configuration against which to play, e.g. \"minimax:max_depth=2,randomness=1\"")
	flagAIConfig2  = flag.String("config2", "minimax:randomness=1", "Second AI configuration, if playing AI vs AI with -watch")
	flagHintConfig = flag.String("hint_config", "", "Configuration of the searcher used for hints, e.g. \"max_depth=4\"")
	flagBoard      = flag.String("board", "", "Starting position, rows separated by \"/\", e.g. \"xo./.x./...\". Default is the empty board.")
	flagSolve      = flag.Bool("solve", false, "Print the best move for the -board position and exit.")
	flagConfigFile = flag.String("config_file", "", "Optional YAML, TOML or JSON file with values for the other flags. "+
		"Flags given explicitly in the command line take precedence.")
	flagColor = flag.Bool("color", true, "Use colors in the terminal.")

	// aiPlayers indexed by the mark they play: if nil, it's a human playing.
	aiPlayers [MarkInvalid]players.Player
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	must.M(loadConfigFile(flag.CommandLine, *flagConfigFile))

	var board Board
	if *flagBoard != "" {
		var err error
		board, err = ParseBoard(*flagBoard)
		if err != nil {
			klog.Exitf("Invalid -board=%q: %+v", *flagBoard, err)
		}
	}
	if *flagSolve {
		solve(board)
		return
	}

	// Create players, session and UI.
	createPlayers()
	session := must.M1(game.NewSession(*flagHintConfig))
	session.SetBoard(board)
	ui := cli.New(*flagColor, false)
	session.OnSuggestion(ui.Suggest)
	session.OnGameOver(func(outcome Outcome) {
		b := session.Board()
		ui.Print(&b)
		ui.PrintWinner(outcome)
	})
	klog.V(1).Infof("Session %s started", session.ID())

	// Loop over match.
	mark := board.NextMark()
	for !session.Outcome().IsFinished() {
		aiPlayer := aiPlayers[mark]
		if aiPlayer == nil {
			if _, err := ui.RunNextMove(session, mark); err != nil {
				klog.Exitf("Failed to run match: %+v", err)
			}
		} else {
			board := session.Board()
			if *flagWatch {
				ui.Print(&board)
			}
			cell, score, err := aiPlayer.Play(board, mark)
			if err != nil {
				klog.Exitf("AI %s failed to play: %+v", aiPlayer, err)
			}
			row, col := CellPos(cell)
			fmt.Printf("\n    AI %s (%s) plays cell %d (row %d, col %d), score=%d\n", mark, aiPlayer, cell, row, col, score)
			must.M1(session.Play(cell, mark))
		}
		mark = mark.Opponent()
	}
}

// solve prints the best move for the player next to play in board.
func solve(board Board) {
	if board.IsFinished() {
		fmt.Printf("Board %s is finished: %s\n", board, board.Outcome())
		return
	}
	player := must.M1(players.New(*flagAIConfig))
	mark := board.NextMark()
	cell, score, err := player.Play(board, mark)
	if err != nil {
		klog.Exitf("Failed to solve board %s: %+v", board, err)
	}
	row, col := CellPos(cell)
	fmt.Printf("Board %s: best move for %s is cell %d (row %d, col %d), score=%d\n", board, mark, cell, row, col, score)
}

// createPlayers in aiPlayers.
func createPlayers() {
	if *flagHotseat && *flagWatch {
		klog.Exitf("-hotseat and -watch cannot be used together")
	}
	if *flagHotseat {
		// Both players are human, nothing to do.
		return
	}

	// Create AI player:
	var aiMark Mark
	if *flagWatch {
		aiMark = MarkX
	} else {
		switch strings.ToLower(*flagFirst) {
		case "human":
			aiMark = MarkO
		case "ai":
			aiMark = MarkX
		case "":
			// Random:
			aiMark = MarkX + Mark(rand.IntN(2))
		default:
			exceptions.Panicf("invalid -first=%q, only valid values are \"human\" or \"ai\"", *flagFirst)
		}
	}
	aiPlayers[aiMark] = must.M1(players.New(*flagAIConfig))
	if !*flagWatch {
		return
	}

	// Create second AI
	aiPlayers[aiMark.Opponent()] = must.M1(players.New(*flagAIConfig2))
}
