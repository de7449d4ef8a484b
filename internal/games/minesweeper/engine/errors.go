package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrOutOfBounds is reported when a request references a cell outside the grid.
	ErrOutOfBounds = errors.New("engine: coordinate out of bounds")

	// ErrSessionOver is reported when an action arrives after the game ended.
	ErrSessionOver = errors.New("engine: session is over")
)

// ConfigError describes an invalid (rows, cols, mines) combination.
type ConfigError struct {
	Rows   int
	Cols   int
	Mines  int
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("engine: invalid board %dx%d with %d mines: %s", e.Rows, e.Cols, e.Mines, e.Reason)
}

// ValidateBoard checks that a session with these parameters can be created
// and that any first click can be given a mine-free safe zone.
func ValidateBoard(rows, cols, mines int) error {
	grid, err := NewGrid(rows, cols)
	if err != nil {
		var cfgErr *ConfigError
		if errors.As(err, &cfgErr) {
			cfgErr.Mines = mines
		}
		return err
	}
	if mines < 0 {
		return &ConfigError{Rows: rows, Cols: cols, Mines: mines, Reason: "mine count must not be negative"}
	}
	if mines >= grid.Size() {
		return &ConfigError{Rows: rows, Cols: cols, Mines: mines, Reason: "mine count must be below the cell count"}
	}
	if limit := grid.Size() - grid.MaxZoneSize(); mines > limit {
		return &ConfigError{
			Rows:   rows,
			Cols:   cols,
			Mines:  mines,
			Reason: fmt.Sprintf("at most %d mines leave room for a safe first click", limit),
		}
	}
	return nil
}
