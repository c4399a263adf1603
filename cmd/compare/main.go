// compare plays a number of matches between two AI configurations, alternating who starts,
// and reports the wins and draws of each.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"runtime"
	"sync"
	"syscall"

	"github.com/janpfeifer/must"
	"github.com/janpfeifer/tttGo/internal/players"
	_ "github.com/janpfeifer/tttGo/internal/players/default"
	"github.com/janpfeifer/tttGo/internal/state"
	"github.com/janpfeifer/tttGo/internal/ui/cli"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

var (
	flagConfigs = [2]*string{
		flag.String("config1", "", "Configuration of the first AI, e.g. \"minimax:max_depth=2\"."),
		flag.String("config2", "", "Configuration of the second AI, e.g. \"random\"."),
	}
	flagNumMatches  = flag.Int("num_matches", 100, "Number of matches: the AIs take turns playing X, who starts.")
	flagParallelism = flag.Int("parallelism", 0, "Matches played simultaneously. Defaults to GOMAXPROCS.")
	flagPrintSteps  = flag.Bool("print_steps", false, "Print every move and board, best with -parallelism=1.")
)

func main() {
	klog.InitFlags(nil)
	flag.Parse()

	if *flagConfigs[0] == "" || *flagConfigs[1] == "" {
		klog.Exit("You must configure both players to compare with flags -config1 and -config2")
	}
	if *flagNumMatches <= 0 {
		klog.Exitf("Invalid -num_matches=%d", *flagNumMatches)
	}

	// Capture Control+C
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	// Check configurations before starting.
	for _, config := range flagConfigs {
		must.M1(players.New(*config))
	}
	must.M(runMatches(ctx))
}

func runMatches(ctx context.Context) error {
	r := newResults(*flagNumMatches)
	var wg errgroup.Group
	wg.SetLimit(getParallelism())
	fmt.Printf("\r%s\033[0K", r)

	for matchIdx := range *flagNumMatches {
		wg.Go(func() error {
			// Each match has its own players, since they hold their own caches.
			var matchPlayers [2]players.Player
			for ii, config := range flagConfigs {
				var err error
				matchPlayers[ii], err = players.New(*config)
				if err != nil {
					return err
				}
			}
			xIdx := matchIdx % 2
			if xIdx == 1 {
				matchPlayers[0], matchPlayers[1] = matchPlayers[1], matchPlayers[0]
			}
			outcome, err := runMatch(ctx, matchIdx, matchPlayers)
			if err != nil || ctx.Err() != nil {
				return err
			}
			progress := r.Record(xIdx, outcome)
			muStepUI.Lock()
			fmt.Printf("\r%s\033[0K", progress)
			muStepUI.Unlock()
			return nil
		})
	}
	err := wg.Wait()
	fmt.Printf("\r%s\033[0K\n", r)
	fmt.Print(r.Report([2]string{*flagConfigs[0], *flagConfigs[1]}))
	if ctx.Err() != nil {
		fmt.Printf("Interrupted: %s\n", ctx.Err())
		return nil
	}
	return err
}

var (
	stepUI   = cli.New(true, false)
	muStepUI sync.Mutex
)

// runMatch plays one match: aiPlayers[0] plays MarkX and starts, aiPlayers[1] plays MarkO.
func runMatch(ctx context.Context, matchNum int, aiPlayers [2]players.Player) (state.Outcome, error) {
	if klog.V(1).Enabled() {
		klog.Infof("Starting match %d: %s vs %s", matchNum, aiPlayers[0], aiPlayers[1])
		defer klog.Infof("Finished match %d", matchNum)
	}
	matchName := fmt.Sprintf("Match-%05d", matchNum)
	var board state.Board
	mark := state.MarkX
	for !board.IsFinished() {
		if ctx.Err() != nil {
			klog.V(1).Infof("Match %d interrupted: %s", matchNum, ctx.Err())
			return state.OutcomeInProgress, nil
		}
		player := aiPlayers[mark-state.MarkX]
		cell, score, err := player.Play(board, mark)
		if err != nil {
			return state.OutcomeInProgress, errors.WithMessagef(err, "%s, player %s", matchName, player)
		}
		if err = board.PlaceCell(cell, mark); err != nil {
			return state.OutcomeInProgress, errors.WithMessagef(err, "%s, player %s", matchName, player)
		}
		if *flagPrintSteps {
			muStepUI.Lock()
			fmt.Printf("\n%s, move #%d: %s (%s) plays cell %d, score=%d\n", matchName, board.MovesPlayed(), mark, player, cell, score)
			stepUI.PrintBoard(&board)
			fmt.Println("------------------")
			muStepUI.Unlock()
		}
		mark = mark.Opponent()
	}
	return board.Outcome(), nil
}

// getParallelism returns the parallelism.
func getParallelism() (parallelism int) {
	parallelism = runtime.GOMAXPROCS(0)
	if *flagParallelism > 0 {
		parallelism = *flagParallelism
	}
	return
}
