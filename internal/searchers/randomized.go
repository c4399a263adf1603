package searchers

import (
	"math/rand/v2"

	"github.com/chewxy/math32"
	"github.com/gomlx/exceptions"
	"github.com/janpfeifer/tttGo/internal/parameters"
	. "github.com/janpfeifer/tttGo/internal/state"
	"k8s.io/klog/v2"
)

// NewRandomizedSearcher adds randomness to the cell chosen by an existing Searcher.
// Args:
//
//   - searcher: Baseline Searcher.
//   - randomness (>=0): Amount of randomness to use: it is applied as a divisor to the scores
//     returned by the Searcher, except if there is a winning move.
//     The larger the value the more it leads to randomness (exploration), and lower values
//     lead to "pick the best scoring move" (exploitation), with zero meaning no randomness.
//   - maxMoveRandomness: once this many marks are on the board no more randomness is used.
//     Zero means randomness is used for the whole match.
//   - rng: source of randomness. If nil, a randomly seeded one is used.
func NewRandomizedSearcher(searcher Searcher, randomness float32, maxMoveRandomness int, rng *rand.Rand) Searcher {
	if randomness <= 0 {
		// Without randomness, simply return the original Searcher.
		return searcher
	}
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	return &randomizedSearcher{searcher: searcher, randomness: randomness, maxMoveRandomness: maxMoveRandomness, rng: rng}
}

// RandomizeFromParams wraps searcher with NewRandomizedSearcher, configured by the parameters
// "randomness", "max_move_randomness" and "seed". The parameters used are removed from params.
func RandomizeFromParams(searcher Searcher, params parameters.Params) (Searcher, error) {
	randomness, err := parameters.PopParamOr(params, "randomness", float32(0))
	if err != nil {
		return nil, err
	}
	maxMoveRandomness, err := parameters.PopParamOr(params, "max_move_randomness", 0)
	if err != nil {
		return nil, err
	}
	seed, err := parameters.PopParamOr(params, "seed", 0)
	if err != nil {
		return nil, err
	}
	var rng *rand.Rand
	if seed != 0 {
		rng = rand.New(rand.NewPCG(uint64(seed), uint64(seed)))
	}
	return NewRandomizedSearcher(searcher, randomness, maxMoveRandomness, rng), nil
}

// randomizedSearcher is a meta Searcher, that introduces randomness to its scorer.
type randomizedSearcher struct {
	searcher          Searcher
	randomness        float32
	maxMoveRandomness int
	rng               *rand.Rand
}

// Assert randomizedSearcher is a Searcher.
var _ Searcher = &randomizedSearcher{}

// Search implements the Searcher interface.
func (rs *randomizedSearcher) Search(board *Board, mark Mark) (cell, score int, cellsScores []CellScore, err error) {
	cell, score, cellsScores, err = rs.searcher.Search(board, mark)
	if err != nil {
		return
	}
	if board[cell] != MarkEmpty {
		exceptions.Panicf("randomizedSearcher: searcher returned cell %d, occupied by %s in board %s", cell, board[cell], board)
	}

	// If we reached the max move number for randomness, or if there is only one cell possible,
	// or if it is a winning move, we don't add any randomness.
	if (rs.maxMoveRandomness > 0 && board.MovesPlayed() >= rs.maxMoveRandomness) || len(cellsScores) <= 1 {
		return
	}
	after := *board
	after[cell] = mark
	if after.IsWin(mark) {
		return
	}

	// Scores are oriented to MarkX, so they are flipped for MarkO.
	logits := make([]float32, len(cellsScores))
	for ii, cs := range cellsScores {
		logits[ii] = float32(cs.Score) / rs.randomness
		if mark == MarkO {
			logits[ii] = -logits[ii]
		}
	}
	probabilities := softmax(logits)

	// Select from probabilities.
	chance := rs.rng.Float32()
	selected := len(probabilities) - 1 // In case rounding errors leave some chance unused.
	for ii, value := range probabilities {
		if chance > value {
			chance -= value
			continue
		}
		selected = ii
		break
	}
	chosen := cellsScores[selected]
	if klog.V(2).Enabled() {
		klog.Infof("randomizedSearcher selection: %s (best was cell %d, score %d)", chosen, cell, score)
	}
	return chosen.Cell, chosen.Score, cellsScores, nil
}

func softmax(values []float32) (probs []float32) {
	probs = make([]float32, len(values))
	var sum float32

	// Subtract maxValue from all values keep the probability the same, but makes for more numerically stable
	// values.
	maxValue := values[0]
	for _, value := range values[1:] {
		maxValue = math32.Max(maxValue, value)
	}
	for ii, value := range values {
		probs[ii] = math32.Exp(value - maxValue)
		sum += probs[ii]
	}
	for ii := range probs {
		probs[ii] /= sum
	}
	return
}
