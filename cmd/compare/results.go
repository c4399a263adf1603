package main

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/janpfeifer/tttGo/internal/generics"
	"github.com/janpfeifer/tttGo/internal/state"
)

// tally of one AI over the matches.
type tally struct {
	winsAsX, winsAsO, lossesAsX, lossesAsO, draws int
}

func (t tally) wins() int   { return t.winsAsX + t.winsAsO }
func (t tally) losses() int { return t.lossesAsX + t.lossesAsO }

// Results of the comparison, safe for concurrent use. Index 0 is the AI configured
// with -config1, index 1 with -config2.
type Results struct {
	mu       sync.Mutex
	start    time.Time
	total    int
	played   int
	tallies  [2]tally
	outcomes map[state.Outcome]int
}

func newResults(total int) *Results {
	return &Results{start: time.Now(), total: total, outcomes: make(map[state.Outcome]int)}
}

// Record the outcome of a match where the AI xIdx played MarkX. It returns the progress line
// after the match.
func (r *Results) Record(xIdx int, outcome state.Outcome) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.played++
	r.outcomes[outcome]++
	x, o := &r.tallies[xIdx], &r.tallies[1-xIdx]
	switch outcome {
	case state.OutcomeXWins:
		x.winsAsX++
		o.lossesAsO++
	case state.OutcomeOWins:
		o.winsAsO++
		x.lossesAsX++
	case state.OutcomeTie:
		x.draws++
		o.draws++
	}
	return r.progressLocked()
}

// String returns the progress line.
func (r *Results) String() string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.progressLocked()
}

func (r *Results) progressLocked() string {
	return fmt.Sprintf("%d/%d matches: AI-1 %d-%d-%d AI-2 (wins-draws-losses of AI-1), %s",
		r.played, r.total, r.tallies[0].wins(), r.tallies[0].draws, r.tallies[0].losses(),
		time.Since(r.start).Round(time.Millisecond))
}

// Report lists the wins and losses of each AI by the mark played, and the count of each outcome.
func (r *Results) Report(names [2]string) string {
	r.mu.Lock()
	defer r.mu.Unlock()
	var sb strings.Builder
	for ii, t := range r.tallies {
		_, _ = fmt.Fprintf(&sb, "AI-%d %q: %d wins (X: %d, O: %d), %d draws, %d losses (X: %d, O: %d)\n",
			ii+1, names[ii], t.wins(), t.winsAsX, t.winsAsO, t.draws, t.losses(), t.lossesAsX, t.lossesAsO)
	}
	for outcome, count := range generics.SortedKeysAndValues(r.outcomes) {
		_, _ = fmt.Fprintf(&sb, "  %-10s %d\n", outcome, count)
	}
	return sb.String()
}
