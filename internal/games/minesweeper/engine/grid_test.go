package engine

import (
	"errors"
	"math"
	"testing"
)

func TestNewGridRejectsBadDimensions(t *testing.T) {
	tests := []struct {
		rows, cols int
	}{
		{0, 5},
		{5, 0},
		{-1, 3},
		{3, -2},
		{math.MaxInt/16 + 1, 16},
		{math.MaxInt, math.MaxInt},
	}

	for _, tt := range tests {
		_, err := NewGrid(tt.rows, tt.cols)
		var cfgErr *ConfigError
		if !errors.As(err, &cfgErr) {
			t.Errorf("NewGrid(%d, %d): expected ConfigError, got %v", tt.rows, tt.cols, err)
		}
	}
}

func TestGridInBounds(t *testing.T) {
	g, err := NewGrid(4, 6)
	if err != nil {
		t.Fatalf("NewGrid failed: %v", err)
	}

	testCases := []struct {
		coord    Coord
		expected bool
	}{
		{C(0, 0), true},
		{C(3, 5), true},
		{C(2, 3), true},
		{C(-1, 0), false},
		{C(0, -1), false},
		{C(4, 0), false},
		{C(0, 6), false},
	}

	for _, tc := range testCases {
		if got := g.InBounds(tc.coord); got != tc.expected {
			t.Errorf("InBounds(%v): expected %v, got %v", tc.coord, tc.expected, got)
		}
	}
}

func TestGridNeighborsClipped(t *testing.T) {
	g := Grid{Rows: 5, Cols: 5}

	testCases := []struct {
		name  string
		coord Coord
		count int
	}{
		{"corner", C(0, 0), 3},
		{"far corner", C(4, 4), 3},
		{"edge", C(0, 2), 5},
		{"interior", C(2, 2), 8},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			neighbors := g.Neighbors(tc.coord)
			if len(neighbors) != tc.count {
				t.Errorf("Neighbors(%v): got %d cells, want %d", tc.coord, len(neighbors), tc.count)
			}
			for _, n := range neighbors {
				if n == tc.coord {
					t.Errorf("Neighbors(%v) contains the cell itself", tc.coord)
				}
				if n.Chebyshev(tc.coord) != 1 {
					t.Errorf("Neighbors(%v) contains non-adjacent %v", tc.coord, n)
				}
			}
		})
	}
}

func TestGridZone(t *testing.T) {
	g := Grid{Rows: 4, Cols: 4}

	testCases := []struct {
		coord Coord
		size  int
	}{
		{C(0, 0), 4},
		{C(3, 3), 4},
		{C(0, 1), 6},
		{C(1, 1), 9},
	}

	for _, tc := range testCases {
		zone := g.Zone(tc.coord)
		if len(zone) != tc.size {
			t.Errorf("Zone(%v): got %d cells, want %d", tc.coord, len(zone), tc.size)
		}
		if !NewCoordSet(zone...).Has(tc.coord) {
			t.Errorf("Zone(%v) does not contain the centre", tc.coord)
		}
	}
}

func TestGridMaxZoneSize(t *testing.T) {
	testCases := []struct {
		g    Grid
		want int
	}{
		{Grid{Rows: 1, Cols: 1}, 1},
		{Grid{Rows: 1, Cols: 10}, 3},
		{Grid{Rows: 2, Cols: 2}, 4},
		{Grid{Rows: 20, Cols: 20}, 9},
	}

	for _, tc := range testCases {
		if got := tc.g.MaxZoneSize(); got != tc.want {
			t.Errorf("MaxZoneSize(%dx%d) = %d, want %d", tc.g.Rows, tc.g.Cols, got, tc.want)
		}
	}
}

func TestGridIndexRoundTrip(t *testing.T) {
	g := Grid{Rows: 3, Cols: 7}
	for i, c := range g.Coords() {
		if g.Index(c) != i {
			t.Errorf("Index(%v) = %d, want %d", c, g.Index(c), i)
		}
		if g.CoordAt(i) != c {
			t.Errorf("CoordAt(%d) = %v, want %v", i, g.CoordAt(i), c)
		}
	}
}

func TestValidateBoard(t *testing.T) {
	tests := []struct {
		name              string
		rows, cols, mines int
		ok                bool
	}{
		{"classic", 20, 20, 50, true},
		{"no mines", 3, 3, 0, true},
		{"single cell", 1, 1, 0, true},
		{"zero rows", 0, 4, 1, false},
		{"negative mines", 4, 4, -1, false},
		{"mines fill board", 3, 3, 9, false},
		{"no room for safe zone", 4, 4, 8, false},
		{"exactly enough room", 4, 4, 7, true},
		{"thin board", 1, 5, 2, true},
		{"thin board too full", 1, 5, 3, false},
		{"cell count overflows", math.MaxInt/16 + 1, 16, 5, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateBoard(tt.rows, tt.cols, tt.mines)
			if tt.ok && err != nil {
				t.Errorf("expected valid board, got %v", err)
			}
			if !tt.ok {
				var cfgErr *ConfigError
				if !errors.As(err, &cfgErr) {
					t.Fatalf("expected ConfigError, got %v", err)
				}
				if cfgErr.Mines != tt.mines {
					t.Errorf("ConfigError.Mines = %d, want %d", cfgErr.Mines, tt.mines)
				}
			}
		})
	}
}
