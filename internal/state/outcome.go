package state

// Outcome of a match.
type Outcome uint8

const (
	OutcomeInProgress Outcome = iota
	OutcomeXWins
	OutcomeOWins
	OutcomeTie
)

//go:generate go tool enumer -type=Outcome -trimprefix=Outcome -values -text outcome.go

// IsFinished returns whether the outcome is final.
func (o Outcome) IsFinished() bool {
	return o != OutcomeInProgress
}

// Winner returns the mark that won, or MarkEmpty for a tie or a match in progress.
func (o Outcome) Winner() Mark {
	switch o {
	case OutcomeXWins:
		return MarkX
	case OutcomeOWins:
		return MarkO
	}
	return MarkEmpty
}
