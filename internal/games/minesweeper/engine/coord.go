package engine

import "fmt"

// Coord is a cell position on the board.
// Row increases downward, Col increases to the right.
type Coord struct {
	Row int
	Col int
}

// C is a convenience constructor for Coord.
func C(row, col int) Coord {
	return Coord{Row: row, Col: col}
}

// String returns a string representation of the coordinate.
func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns a new Coord offset by (dr, dc).
func (c Coord) Add(dr, dc int) Coord {
	return Coord{Row: c.Row + dr, Col: c.Col + dc}
}

// Chebyshev returns the king-move distance to another coordinate.
func (c Coord) Chebyshev(other Coord) int {
	dr := c.Row - other.Row
	dc := c.Col - other.Col
	if dr < 0 {
		dr = -dr
	}
	if dc < 0 {
		dc = -dc
	}
	if dr > dc {
		return dr
	}
	return dc
}

// mooreOffsets lists the eight neighbour offsets in row-major order.
var mooreOffsets = [8][2]int{
	{-1, -1}, {-1, 0}, {-1, 1},
	{0, -1}, {0, 1},
	{1, -1}, {1, 0}, {1, 1},
}
