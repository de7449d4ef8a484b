package engine

// GameStatus is the session state machine.
type GameStatus int

const (
	StatusNotStarted GameStatus = iota
	StatusInProgress
	StatusWon
	StatusLost
)

// String returns a human-readable name for the status.
func (s GameStatus) String() string {
	switch s {
	case StatusNotStarted:
		return "not_started"
	case StatusInProgress:
		return "in_progress"
	case StatusWon:
		return "won"
	case StatusLost:
		return "lost"
	default:
		return "unknown"
	}
}

// Terminal reports whether the status accepts no further actions.
func (s GameStatus) Terminal() bool {
	return s == StatusWon || s == StatusLost
}

// OutcomeKind classifies the result of a reveal request.
type OutcomeKind int

const (
	// OutcomeAlreadyHandled: the cell was already revealed or is flagged.
	OutcomeAlreadyHandled OutcomeKind = iota
	// OutcomeMineHit: the cell held a mine and the session is lost.
	OutcomeMineHit
	// OutcomeCleared: exactly one safe cell was revealed.
	OutcomeCleared
	// OutcomeCascadeCleared: a zero cell opened its neighbourhood.
	OutcomeCascadeCleared
	// OutcomeRejected: out-of-bounds request or session already over.
	OutcomeRejected
)

// String returns a human-readable name for the outcome kind.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeAlreadyHandled:
		return "already_handled"
	case OutcomeMineHit:
		return "mine_hit"
	case OutcomeCleared:
		return "cleared"
	case OutcomeCascadeCleared:
		return "cascade_cleared"
	case OutcomeRejected:
		return "rejected"
	default:
		return "unknown"
	}
}

// RevealOutcome is returned by every reveal request.
type RevealOutcome struct {
	Kind OutcomeKind
	Cell Coord

	// Count is the adjacency count of Cell for Cleared and CascadeCleared.
	Count int

	// Revealed lists every cell this request moved from hidden to visited,
	// Cell first.
	Revealed []Coord

	// Reason explains an OutcomeRejected, usually ErrOutOfBounds or
	// ErrSessionOver.
	Reason error
}

// FlagState is returned by flag toggles.
type FlagState int

const (
	FlagUnchanged FlagState = iota
	FlagPlaced
	FlagRemoved
)

// String returns a human-readable name for the flag state.
func (f FlagState) String() string {
	switch f {
	case FlagPlaced:
		return "placed"
	case FlagRemoved:
		return "removed"
	default:
		return "unchanged"
	}
}
