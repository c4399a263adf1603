// Package game holds a Session: one tic-tac-toe game, with its board, its evaluation cache
// and the searcher used to suggest moves.
//
// Front-ends drive a Session with three calls, Play, BestMove and NewGame, and get notified
// through the OnGameOver and OnSuggestion callbacks.
package game

import (
	"github.com/google/uuid"
	"github.com/janpfeifer/tttGo/internal/parameters"
	"github.com/janpfeifer/tttGo/internal/searchers"
	"github.com/janpfeifer/tttGo/internal/searchers/minimax"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// Session of one game. It is not safe for concurrent use: create one Session per game
// being played.
type Session struct {
	id       uuid.UUID
	board    Board
	cache    *minimax.Cache
	minimax  *minimax.Searcher
	searcher searchers.Searcher

	onGameOver   []func(Outcome)
	onSuggestion []func(cell int, mark Mark)
}

// NewSession creates a Session with an empty board.
//
// The config string is a comma-separated list of parameters configuring the searcher:
// "max_depth", "no_pruning", "parallel" and "cache_by_depth" (see minimax.NewFromParams)
// and "randomness", "max_move_randomness" and "seed" (see searchers.RandomizeFromParams).
// Unknown parameters are an error.
func NewSession(config string) (*Session, error) {
	params := parameters.NewFromConfigString(config)
	s := &Session{
		id:    uuid.New(),
		cache: minimax.NewCache(),
	}
	var err error
	s.minimax, err = minimax.NewFromParams(s.cache, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "session config %q", config)
	}
	s.searcher, err = searchers.RandomizeFromParams(s.minimax, params)
	if err != nil {
		return nil, errors.WithMessagef(err, "session config %q", config)
	}
	if err = parameters.CheckAllUsed(params); err != nil {
		return nil, errors.WithMessagef(err, "session config %q", config)
	}
	klog.V(1).Infof("Session %s: created with config %q", s.id, config)
	return s, nil
}

// ID uniquely identifies the session, used in logs.
func (s *Session) ID() uuid.UUID { return s.id }

// Board returns a copy of the current board.
func (s *Session) Board() Board { return s.board }

// Outcome of the current board.
func (s *Session) Outcome() Outcome { return s.board.Outcome() }

// CacheSize is the number of evaluations cached so far in the game.
func (s *Session) CacheSize() int { return s.cache.Len() }

// Searcher returns the minimax searcher used by the session, e.g. to read its Stats.
func (s *Session) Searcher() *minimax.Searcher { return s.minimax }

// OnGameOver registers a callback called once when a Play ends the game.
func (s *Session) OnGameOver(fn func(outcome Outcome)) {
	s.onGameOver = append(s.onGameOver, fn)
}

// OnSuggestion registers a callback called with every cell returned by BestMove.
func (s *Session) OnSuggestion(fn func(cell int, mark Mark)) {
	s.onSuggestion = append(s.onSuggestion, fn)
}

// NewGame empties the board and the evaluation cache.
func (s *Session) NewGame() {
	s.board = Board{}
	s.cache.Clear()
	s.minimax.ResetStats()
	klog.V(1).Infof("Session %s: new game", s.id)
}

// SetBoard starts the game from the given position. The evaluation cache and the search
// stats are cleared.
func (s *Session) SetBoard(board Board) {
	s.board = board
	s.cache.Clear()
	s.minimax.ResetStats()
	klog.V(1).Infof("Session %s: board set to %s", s.id, board)
}

// Play places mark in cell, and returns the resulting outcome.
//
// It fails with ErrIllegalMove if the game is already over, or the cell is occupied or out of
// range, and with ErrInvalidMark if mark is not MarkX or MarkO. The board is not changed on
// failure.
//
// If the move ends the game, the OnGameOver callbacks are called before returning.
func (s *Session) Play(cell int, mark Mark) (Outcome, error) {
	if s.board.IsFinished() {
		return s.board.Outcome(), errors.Wrapf(ErrIllegalMove, "game already over (%s), can't play %s in cell %d",
			s.board.Outcome(), mark, cell)
	}
	if err := s.board.PlaceCell(cell, mark); err != nil {
		return OutcomeInProgress, err
	}
	outcome := s.board.Outcome()
	klog.V(1).Infof("Session %s: %s played cell %d -> %s (%s)", s.id, mark, cell, s.board, outcome)
	if outcome.IsFinished() {
		for _, fn := range s.onGameOver {
			fn(outcome)
		}
	}
	return outcome, nil
}

// BestMove searches the best cell for mark in the current board, and returns it with its
// evaluation: positive values favor MarkX, negative values MarkO.
//
// It fails with ErrNoLegalMove if the game is over, won or tied. The board is left unchanged:
// the caller decides whether to Play the suggested cell. The OnSuggestion callbacks are called with
// the cell found.
func (s *Session) BestMove(mark Mark) (cell, score int, err error) {
	if s.board.IsFinished() {
		return -1, 0, errors.Wrapf(ErrNoLegalMove, "session %s: game already over (%s)", s.id, s.board.Outcome())
	}
	board := s.board
	cell, score, _, err = s.searcher.Search(&board, mark)
	if err != nil {
		return -1, 0, errors.WithMessagef(err, "session %s", s.id)
	}
	if klog.V(1).Enabled() {
		klog.Infof("Session %s: best move for %s is cell %d (score %d), cache size %d",
			s.id, mark, cell, score, s.cache.Len())
	}
	for _, fn := range s.onSuggestion {
		fn(cell, mark)
	}
	return
}
