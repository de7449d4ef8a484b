package engine

import "math"

// Grid is the fixed coordinate space of a board.
// It is immutable after construction.
type Grid struct {
	Rows int
	Cols int
}

// NewGrid creates a grid with the given dimensions.
// Both dimensions must be positive and the cell count must fit in an int.
func NewGrid(rows, cols int) (Grid, error) {
	if rows <= 0 || cols <= 0 {
		return Grid{}, &ConfigError{Rows: rows, Cols: cols, Reason: "dimensions must be positive"}
	}
	if rows > math.MaxInt/cols {
		return Grid{}, &ConfigError{Rows: rows, Cols: cols, Reason: "cell count overflows"}
	}
	return Grid{Rows: rows, Cols: cols}, nil
}

// Size returns the number of cells in the grid.
func (g Grid) Size() int {
	return g.Rows * g.Cols
}

// InBounds returns true if the coordinate is within the grid boundaries.
func (g Grid) InBounds(c Coord) bool {
	return c.Row >= 0 && c.Row < g.Rows && c.Col >= 0 && c.Col < g.Cols
}

// Index converts a coordinate to a row-major index.
func (g Grid) Index(c Coord) int {
	return c.Row*g.Cols + c.Col
}

// CoordAt converts a row-major index back to a coordinate.
func (g Grid) CoordAt(i int) Coord {
	return Coord{Row: i / g.Cols, Col: i % g.Cols}
}

// Neighbors returns the in-bounds Moore neighbours of c (at most 8),
// ordered by row then column.
func (g Grid) Neighbors(c Coord) []Coord {
	out := make([]Coord, 0, len(mooreOffsets))
	for _, d := range mooreOffsets {
		n := c.Add(d[0], d[1])
		if g.InBounds(n) {
			out = append(out, n)
		}
	}
	return out
}

// Zone returns the 3x3 block centred on c, clipped to the grid.
// The block includes c itself when c is in bounds.
func (g Grid) Zone(c Coord) []Coord {
	out := make([]Coord, 0, 9)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			n := c.Add(dr, dc)
			if g.InBounds(n) {
				out = append(out, n)
			}
		}
	}
	return out
}

// MaxZoneSize returns the largest clipped 3x3 block the grid can hold.
func (g Grid) MaxZoneSize() int {
	return min(g.Rows, 3) * min(g.Cols, 3)
}

// Coords returns all coordinates in row-major order.
func (g Grid) Coords() []Coord {
	out := make([]Coord, 0, g.Size())
	for r := 0; r < g.Rows; r++ {
		for c := 0; c < g.Cols; c++ {
			out = append(out, C(r, c))
		}
	}
	return out
}
