package players

import (
	"fmt"
	"strings"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/searchers/minimax"
	. "github.com/janpfeifer/tttGo/internal/state"
	"k8s.io/klog/v2"
)

// SearcherPlayer is the standard set up for an AI: a minimax searcher, with its own evaluation
// cache, optionally wrapped by a randomized searcher.
// It implements the Player interface.
type SearcherPlayer struct {
	Searcher searchers.Searcher
	Minimax  *minimax.Searcher
	config   string
}

// Assert that SearcherPlayer is a Player.
var _ Player = &SearcherPlayer{}

// NewSearcherPlayer creates a SearcherPlayer from the parameters.
//
// Parameters:
//
//   - max_depth (int): Max depth of search, default is 0, meaning search until the end of the game.
//   - no_pruning (bool): Disables alpha-beta pruning. It's slower, but the results are the same.
//   - parallel (bool): Search the candidate moves in parallel.
//   - cache_by_depth (bool): Key the evaluation cache on the depth and the side to move as well.
//   - randomness (float): Adds a layer of randomness in the search: the first level choice is
//     distributed according to a softmax of the scores of each move, divided by this value.
//     So lower values (closer to 0) means less randomness, higher value means more randomness,
//     hence more exploration. Default is 0.
//   - max_move_randomness (int): Only use randomness while fewer marks than this are on the board.
//   - seed (int): Seed for the randomness, for reproducible matches.
//
// The parameters used are removed from params.
func NewSearcherPlayer(params parameters.Params) (*SearcherPlayer, error) {
	var parts []string
	for key, value := range generics.SortedKeysAndValues(params) {
		if value != "" {
			key = fmt.Sprintf("%s=%s", key, value)
		}
		parts = append(parts, key)
	}
	config := strings.Join(parts, ",")
	mm, err := minimax.NewFromParams(minimax.NewCache(), params)
	if err != nil {
		return nil, err
	}
	searcher, err := searchers.RandomizeFromParams(mm, params)
	if err != nil {
		return nil, err
	}
	return &SearcherPlayer{Searcher: searcher, Minimax: mm, config: config}, nil
}

// Play implements the Player interface.
func (p *SearcherPlayer) Play(board Board, mark Mark) (cell, score int, err error) {
	cell, score, _, err = p.Searcher.Search(&board, mark)
	if err != nil {
		return
	}
	if klog.V(2).Enabled() {
		klog.Infof("Move #%d: AI (%s) playing %s in cell %d, score=%d",
			board.MovesPlayed()+1, p, mark, cell, score)
	}
	return
}

// NewGame implements the Player interface: it clears the evaluation cache.
func (p *SearcherPlayer) NewGame() {
	if klog.V(1).Enabled() {
		st := p.Minimax.Stats()
		klog.Infof("Player %s: new game, last game stats %+v, cache size %d", p, st, p.Minimax.Cache().Len())
	}
	p.Minimax.Cache().Clear()
	p.Minimax.ResetStats()
}

// String implements fmt.Stringer and the Player interface.
func (p *SearcherPlayer) String() string {
	if p.config == "" {
		return "minimax"
	}
	return "minimax:" + p.config
}
