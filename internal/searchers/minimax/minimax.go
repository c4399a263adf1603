// Package minimax implements the tic-tac-toe search engine: minimax with alpha-beta pruning,
// a static evaluation for the cut-off positions and a cache of evaluated positions.
package minimax

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"
)

// Bounds used as the initial alpha-beta window.
const (
	NegInf = math.MinInt
	PosInf = math.MaxInt
)

// Searcher implements the searchers.Searcher interface.
//
// It doesn't own its Cache: a game.Session owns one, and it is passed to New.
type Searcher struct {
	cache        *Cache
	maxDepth     int
	pruning      bool
	parallel     bool
	cacheByDepth bool
	stats        stats
}

// Assert that Searcher implements searchers.Searcher.
var _ searchers.Searcher = (*Searcher)(nil)

// stats stores running stats collected during the search: for benchmarking, monitoring and debugging purposes.
// Counters are atomic, since the root branches may be searched in parallel.
type stats struct {
	// nodes visited and not found in the cache.
	nodes atomic.Int64

	// leafEvals is the number of static evaluations computed.
	leafEvals atomic.Int64

	cacheHits atomic.Int64
	prunes    atomic.Int64
}

// Stats is a snapshot of the search counters.
type Stats struct {
	Nodes, LeafEvals, CacheHits, Prunes int64
}

// New returns a minimax searchers.Searcher implementation that uses the given cache.
// If cache is nil a new one is created.
//
// By default, it searches to the end of the game with alpha-beta pruning, sequentially, and
// the cache is keyed on the board only.
// There are other optional configurations, see methods Searcher.With...
//
// See: wikipedia.org/wiki/Alpha-beta_pruning
func New(cache *Cache) *Searcher {
	if cache == nil {
		cache = NewCache()
	}
	return &Searcher{
		cache:   cache,
		pruning: true,
	}
}

// NewFromParams creates a Searcher configured with the parameters:
//
//   - max_depth (int): see WithMaxDepth. Default is 0, search until the end of the game.
//   - no_pruning (bool): disable alpha-beta pruning, see WithPruning.
//   - parallel (bool): see WithParallel.
//   - cache_by_depth (bool): see WithCacheByDepth.
//
// The parameters used are removed from params.
func NewFromParams(cache *Cache, params parameters.Params) (*Searcher, error) {
	s := New(cache)
	maxDepth, err := parameters.PopParamOr(params, "max_depth", 0)
	if err != nil {
		return nil, err
	}
	if maxDepth < 0 {
		return nil, errors.Errorf("invalid max_depth=%d, it must be >= 0", maxDepth)
	}
	noPruning, err := parameters.PopParamOr(params, "no_pruning", false)
	if err != nil {
		return nil, err
	}
	parallel, err := parameters.PopParamOr(params, "parallel", false)
	if err != nil {
		return nil, err
	}
	cacheByDepth, err := parameters.PopParamOr(params, "cache_by_depth", false)
	if err != nil {
		return nil, err
	}
	return s.WithMaxDepth(maxDepth).WithPruning(!noPruning).WithParallel(parallel).WithCacheByDepth(cacheByDepth), nil
}

// WithMaxDepth limits the number of plies searched after each candidate move. Each player
// playing counts as one ply. See https://en.wikipedia.org/wiki/Ply_(game_theory).
//
// Positions where the limit is reached are scored with the positional heuristic,
// see PositionalScore. A value of 0 (the default) searches until the end of the game.
func (s *Searcher) WithMaxDepth(maxDepth int) *Searcher {
	s.maxDepth = maxDepth
	return s
}

// WithPruning enables or disables alpha-beta pruning. It is enabled by default.
//
// Pruning doesn't change the value of the search, only its cost.
func (s *Searcher) WithPruning(pruning bool) *Searcher {
	s.pruning = pruning
	return s
}

// WithParallel searches each candidate cell of the root in parallel. Each one works on a
// private copy of the board, and they share the cache.
func (s *Searcher) WithParallel(parallel bool) *Searcher {
	s.parallel = parallel
	return s
}

// WithCacheByDepth keys the cache on the board, the depth left and the side to move, instead
// of the board only.
//
// With the default (board only) a position evaluated at a depth-limited cut-off is reused as is
// if it is reached again with more depth left, for instance in a later move of the game.
// This only matters when WithMaxDepth is set: when searching to the end of the game only
// finished positions are ever evaluated.
func (s *Searcher) WithCacheByDepth(cacheByDepth bool) *Searcher {
	s.cacheByDepth = cacheByDepth
	return s
}

// Cache used by the Searcher.
func (s *Searcher) Cache() *Cache {
	return s.cache
}

// Stats returns the counters accumulated since the Searcher was created or since ResetStats.
func (s *Searcher) Stats() Stats {
	return Stats{
		Nodes:     s.stats.nodes.Load(),
		LeafEvals: s.stats.leafEvals.Load(),
		CacheHits: s.stats.cacheHits.Load(),
		Prunes:    s.stats.prunes.Load(),
	}
}

// ResetStats zeroes the counters.
func (s *Searcher) ResetStats() {
	s.stats.nodes.Store(0)
	s.stats.leafEvals.Store(0)
	s.stats.cacheHits.Store(0)
	s.stats.prunes.Store(0)
}

func (s *Searcher) cacheKey(board *Board, depth int, maximizing bool) Key {
	if !s.cacheByDepth {
		return Key{Board: *board}
	}
	return Key{Board: *board, Depth: int8(depth), Maximizing: maximizing}
}

// Evaluate returns the static evaluation of the board (see StaticScore), and stores it in the
// cache under the board's key. If the board is already cached, the cached value is returned.
func (s *Searcher) Evaluate(board *Board) int {
	key := Key{Board: *board}
	if value, found := s.cache.Get(key); found {
		return value
	}
	return s.evaluate(board, key)
}

// evaluate a board whose key was not found in the cache.
func (s *Searcher) evaluate(board *Board, key Key) int {
	return s.cache.computeOnce(key, func() int {
		s.stats.leafEvals.Add(1)
		return StaticScore(board)
	})
}

// Minimax returns the value of the board, searching up to depth plies, with MarkX playing if
// maximizing, MarkO otherwise.
//
// Cached positions are returned as is. Positions where depth reaches 0, or that are won or
// tied, are statically evaluated.
//
// The board is changed during the search, and restored before returning.
func (s *Searcher) Minimax(board *Board, depth, alpha, beta int, maximizing bool) int {
	key := s.cacheKey(board, depth, maximizing)
	if value, found := s.cache.Get(key); found {
		s.stats.cacheHits.Add(1)
		return value
	}
	s.stats.nodes.Add(1)
	if depth <= 0 || board.IsWin() || board.IsTie() {
		return s.evaluate(board, key)
	}

	mark, bestScore := MarkO, PosInf
	if maximizing {
		mark, bestScore = MarkX, NegInf
	}
	for cell := range NumCells {
		if board[cell] != MarkEmpty {
			continue
		}
		board[cell] = mark
		score := s.Minimax(board, depth-1, alpha, beta, !maximizing)
		board[cell] = MarkEmpty

		if maximizing {
			bestScore = max(bestScore, score)
			alpha = max(alpha, score)
		} else {
			bestScore = min(bestScore, score)
			beta = min(beta, score)
		}

		// Prune: the opponent will never take this path, so we can stop here.
		if s.pruning && beta <= alpha {
			s.stats.prunes.Add(1)
			break
		}
	}
	return bestScore
}

// rootDepth is the depth searched after each candidate move of the root.
func (s *Searcher) rootDepth(board *Board) int {
	depth := NumCells - board.MovesPlayed()
	if s.maxDepth > 0 && s.maxDepth < depth {
		depth = s.maxDepth
	}
	return depth
}

// Search implements searchers.Searcher.
//
// For each empty cell it places mark there, and runs Minimax with the opponent to move.
// It returns the cell with the highest score for MarkX, or the lowest for MarkO. Ties are
// broken by the first cell in row-major order.
func (s *Searcher) Search(board *Board, mark Mark) (cell, score int, cellsScores []searchers.CellScore, err error) {
	if err = CheckPlayer(mark); err != nil {
		return
	}
	if board.IsFull() {
		err = errors.Wrapf(ErrNoLegalMove, "board %s is full", board)
		return
	}

	start := time.Now()
	depth := s.rootDepth(board)
	if s.parallel {
		cellsScores, err = s.searchParallel(*board, mark, depth)
		if err != nil {
			return
		}
	} else {
		cellsScores = s.searchSequential(board, mark, depth)
	}

	cell = -1
	for ii, cs := range cellsScores {
		if ii == 0 || (mark == MarkX && cs.Score > score) || (mark == MarkO && cs.Score < score) {
			cell, score = cs.Cell, cs.Score
		}
	}

	if klog.V(2).Enabled() {
		elapsed := time.Since(start).Seconds()
		st := s.Stats()
		klog.Infof("Search(%s, %s): cell=%d, score=%d, depth=%d, scores=%v", board, mark, cell, score, depth, cellsScores)
		klog.Infof("  Counts: %+v, cache size=%d", st, s.cache.Len())
		klog.Infof("  nodes/s=%.1f", float64(st.Nodes)/elapsed)
	}
	return
}

func (s *Searcher) searchSequential(board *Board, mark Mark, depth int) []searchers.CellScore {
	cellsScores := make([]searchers.CellScore, 0, NumCells)
	for cell := range NumCells {
		if board[cell] != MarkEmpty {
			continue
		}
		board[cell] = mark
		score := s.Minimax(board, depth, NegInf, PosInf, mark != MarkX)
		board[cell] = MarkEmpty
		cellsScores = append(cellsScores, searchers.CellScore{Cell: cell, Score: score})
	}
	return cellsScores
}

// searchParallel takes the board by value: each branch works on its own copy.
func (s *Searcher) searchParallel(board Board, mark Mark, depth int) ([]searchers.CellScore, error) {
	cellsScores := make([]searchers.CellScore, 0, NumCells)
	for cell := range board.EmptyCells() {
		cellsScores = append(cellsScores, searchers.CellScore{Cell: cell})
	}
	var g errgroup.Group
	for ii := range cellsScores {
		g.Go(func() error {
			branch := board
			branch[cellsScores[ii].Cell] = mark
			cellsScores[ii].Score = s.Minimax(&branch, depth, NegInf, PosInf, mark != MarkX)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, errors.WithMessagef(err, "parallel search of board %s", board)
	}
	return cellsScores, nil
}
