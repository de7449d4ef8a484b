// Package engine implements the minesweeper board and game-state engine:
// mine placement, first-click relocation, the depth-bounded reveal cascade,
// flags and win/loss detection. It has no presentation dependencies.
package engine

// Default cascade budgets. The first reveal of a session cascades less deep
// than later ones.
const (
	DefaultFirstDepth = 3
	DefaultDepth      = 5
)

// Option configures a Session.
type Option func(*Session)

// WithCascadeDepths sets the budgets for the first and later reveals.
// Pass Unbounded for either to lift the limit.
func WithCascadeDepths(first, later int) Option {
	return func(s *Session) {
		s.firstDepth = first
		s.depth = later
	}
}

// WithUnboundedCascade opens whole zero regions on every reveal.
func WithUnboundedCascade() Option {
	return WithCascadeDepths(Unbounded, Unbounded)
}

// WithMines replaces the generated layout with a fixed one.
// The layout must match the session's mine count and lie within the grid;
// it still goes through first-click relocation.
func WithMines(mines ...Coord) Option {
	return func(s *Session) {
		s.preset = NewCoordSet(mines...)
	}
}

// Session is one game. It is not safe for concurrent use.
type Session struct {
	board
	numMines   int
	rng        Source
	status     GameStatus
	firstDepth int
	depth      int
	preset     CoordSet
	losing     *Coord
	moves      int
}

// NewSession validates the parameters and places the mines.
func NewSession(rows, cols, numMines int, rng Source, opts ...Option) (*Session, error) {
	if err := ValidateBoard(rows, cols, numMines); err != nil {
		return nil, err
	}
	grid := Grid{Rows: rows, Cols: cols}

	s := &Session{
		board: board{
			grid:    grid,
			visited: make(CoordSet),
			flags:   make(CoordSet),
		},
		numMines:   numMines,
		rng:        rng,
		status:     StatusNotStarted,
		firstDepth: DefaultFirstDepth,
		depth:      DefaultDepth,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.preset != nil {
		if s.preset.Len() != numMines {
			return nil, &ConfigError{Rows: rows, Cols: cols, Mines: numMines, Reason: "fixed layout has the wrong mine count"}
		}
		for c := range s.preset {
			if !grid.InBounds(c) {
				return nil, &ConfigError{Rows: rows, Cols: cols, Mines: numMines, Reason: "fixed layout lies outside the grid"}
			}
		}
		s.mines = s.preset
		s.preset = nil
		return s, nil
	}

	mines, err := Generate(grid, numMines, rng)
	if err != nil {
		return nil, err
	}
	s.mines = mines
	return s, nil
}

// Grid returns the board dimensions.
func (s *Session) Grid() Grid {
	return s.grid
}

// Status returns the current game status.
func (s *Session) Status() GameStatus {
	return s.status
}

// NumMines returns the configured mine count.
func (s *Session) NumMines() int {
	return s.numMines
}

// Moves returns the number of reveal and flag requests that changed state.
func (s *Session) Moves() int {
	return s.moves
}

// RevealedCount returns the number of visited cells.
func (s *Session) RevealedCount() int {
	return s.visited.Len()
}

// FlagCount returns the number of flags on the board.
func (s *Session) FlagCount() int {
	return s.flags.Len()
}

// MinesRemaining returns the mine count minus the flags placed.
// It may go negative when the player over-flags.
func (s *Session) MinesRemaining() int {
	return s.numMines - s.flags.Len()
}

// Reveal handles a reveal request for c.
func (s *Session) Reveal(c Coord) RevealOutcome {
	if s.status.Terminal() {
		return RevealOutcome{Kind: OutcomeRejected, Cell: c, Reason: ErrSessionOver}
	}
	if !s.grid.InBounds(c) {
		return RevealOutcome{Kind: OutcomeRejected, Cell: c, Reason: ErrOutOfBounds}
	}
	if s.flags.Has(c) {
		return RevealOutcome{Kind: OutcomeAlreadyHandled, Cell: c}
	}

	budget := s.depth
	if s.status == StatusNotStarted {
		mines, err := Sanitize(s.grid, s.mines, s.rng, c)
		if err != nil {
			return RevealOutcome{Kind: OutcomeRejected, Cell: c, Reason: err}
		}
		s.mines = mines
		s.status = StatusInProgress
		budget = s.firstDepth
	}

	out := s.reveal(c, budget)
	switch out.Kind {
	case OutcomeMineHit:
		s.moves++
		losing := c
		s.losing = &losing
		s.status = StatusLost
	case OutcomeCleared, OutcomeCascadeCleared:
		s.moves++
		if s.visited.Len() == s.grid.Size()-s.numMines {
			s.status = StatusWon
		}
	}
	return out
}

// ToggleFlag places or removes a flag on a hidden cell.
// Revealed cells, out-of-bounds cells and finished sessions are left alone.
func (s *Session) ToggleFlag(c Coord) FlagState {
	if s.status.Terminal() || !s.grid.InBounds(c) {
		return FlagUnchanged
	}
	if s.flags.Has(c) {
		s.flags.Remove(c)
		s.moves++
		return FlagRemoved
	}
	if s.visited.Has(c) {
		return FlagUnchanged
	}
	s.flags.Add(c)
	s.moves++
	return FlagPlaced
}

// Adjacent returns the number of mines around c.
// The value is only meaningful to players once c is revealed.
func (s *Session) Adjacent(c Coord) int {
	return s.adjacent(c)
}
