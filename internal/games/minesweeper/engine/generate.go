package engine

// Generate places numMines mines uniformly at random over the grid.
// The result always holds exactly numMines distinct in-bounds coordinates.
func Generate(grid Grid, numMines int, rng Source) (CoordSet, error) {
	if grid.Rows <= 0 || grid.Cols <= 0 {
		return nil, &ConfigError{Rows: grid.Rows, Cols: grid.Cols, Mines: numMines, Reason: "dimensions must be positive"}
	}
	if numMines < 0 || numMines >= grid.Size() {
		return nil, &ConfigError{
			Rows:   grid.Rows,
			Cols:   grid.Cols,
			Mines:  numMines,
			Reason: "mine count must be in [0, rows*cols)",
		}
	}

	return NewCoordSet(sample(grid.Coords(), numMines, rng)...), nil
}
