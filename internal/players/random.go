package players

import (
	"math/rand/v2"

	"github.com/janpfeifer/tttGo/internal/parameters"
	. "github.com/janpfeifer/tttGo/internal/state"
	"github.com/pkg/errors"
)

// RandomPlayer plays uniformly at random among the empty cells.
type RandomPlayer struct {
	rng *rand.Rand
}

// Assert that RandomPlayer is a Player.
var _ Player = &RandomPlayer{}

// NewRandomPlayer creates a RandomPlayer. The optional parameter "seed" (int) makes its
// moves reproducible.
func NewRandomPlayer(params parameters.Params) (*RandomPlayer, error) {
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	p := &RandomPlayer{}
	if seed != 0 {
		p.rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	} else {
		p.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return p, nil
}

// Play implements the Player interface. The score is always 0.
func (p *RandomPlayer) Play(board Board, mark Mark) (cell, score int, err error) {
	if err = CheckPlayer(mark); err != nil {
		return
	}
	var cells []int
	for cell := range board.EmptyCells() {
		cells = append(cells, cell)
	}
	if len(cells) == 0 {
		return -1, 0, errors.Wrapf(ErrNoLegalMove, "board %s is full", board)
	}
	return cells[p.rng.IntN(len(cells))], 0, nil
}

// NewGame implements the Player interface. Nothing to reset.
func (p *RandomPlayer) NewGame() {}

// String implements fmt.Stringer and the Player interface.
func (p *RandomPlayer) String() string { return "random" }
