package engine

// CellView is the read-only projection of one cell for presentation layers.
type CellView struct {
	Coord   Coord
	Visited bool
	Flagged bool

	// Mine is only reported once the session is over.
	Mine bool

	// Exploded marks the mine that ended a lost game.
	Exploded bool

	// Adjacent is the mine count around a visited safe cell, 0 otherwise.
	Adjacent int
}

// BoardView is a snapshot of the whole session.
type BoardView struct {
	Rows           int
	Cols           int
	Status         GameStatus
	Mines          int
	MinesRemaining int
	Revealed       int
	Cells          [][]CellView
}

// Cell returns the view of c. Out-of-bounds coordinates yield a zero view
// carrying only the coordinate.
func (s *Session) Cell(c Coord) CellView {
	v := CellView{Coord: c}
	if !s.grid.InBounds(c) {
		return v
	}

	v.Visited = s.visited.Has(c)
	v.Flagged = s.flags.Has(c)
	if s.status.Terminal() {
		v.Mine = s.mines.Has(c)
		v.Exploded = s.losing != nil && *s.losing == c
	}
	if v.Visited && !s.mines.Has(c) {
		v.Adjacent = s.adjacent(c)
	}
	return v
}

// View returns a copy of the full board state.
func (s *Session) View() BoardView {
	cells := make([][]CellView, s.grid.Rows)
	for r := range cells {
		cells[r] = make([]CellView, s.grid.Cols)
		for c := range cells[r] {
			cells[r][c] = s.Cell(C(r, c))
		}
	}
	return BoardView{
		Rows:           s.grid.Rows,
		Cols:           s.grid.Cols,
		Status:         s.status,
		Mines:          s.numMines,
		MinesRemaining: s.MinesRemaining(),
		Revealed:       s.visited.Len(),
		Cells:          cells,
	}
}

// Snapshot captures the complete session state for determinism testing.
type Snapshot struct {
	Status  GameStatus
	Mines   []Coord
	Visited []Coord
	Flags   []Coord
	Moves   int
}

// Snapshot returns the current session snapshot. Unlike views it includes
// the hidden mine layout, so it must not reach players.
func (s *Session) Snapshot() Snapshot {
	return Snapshot{
		Status:  s.status,
		Mines:   s.mines.Sorted(),
		Visited: s.visited.Sorted(),
		Flags:   s.flags.Sorted(),
		Moves:   s.moves,
	}
}
