package engine

import (
	"errors"
	"testing"
)

func TestSanitizeClearsSafeZone(t *testing.T) {
	tests := []struct {
		rows, cols, mines int
	}{
		{4, 4, 7},
		{5, 5, 10},
		{9, 9, 10},
		{3, 8, 10},
	}

	for _, tt := range tests {
		g := Grid{Rows: tt.rows, Cols: tt.cols}
		for seed := int64(1); seed <= 5; seed++ {
			for _, clicked := range g.Coords() {
				rng := NewSource(seed)
				mines, err := Generate(g, tt.mines, rng)
				if err != nil {
					t.Fatalf("Generate failed: %v", err)
				}

				out, err := Sanitize(g, mines, rng, clicked)
				if err != nil {
					t.Fatalf("Sanitize(%v) on %dx%d failed: %v", clicked, tt.rows, tt.cols, err)
				}
				if out.Len() != tt.mines {
					t.Errorf("Sanitize(%v): got %d mines, want %d", clicked, out.Len(), tt.mines)
				}
				for _, z := range g.Zone(clicked) {
					if out.Has(z) {
						t.Errorf("Sanitize(%v): mine left in safe zone at %v", clicked, z)
					}
				}
			}
		}
	}
}

func TestSanitizeDoesNotModifyInput(t *testing.T) {
	g := Grid{Rows: 4, Cols: 4}
	mines := NewCoordSet(C(0, 0), C(1, 1), C(3, 3))

	out, err := Sanitize(g, mines, NewSource(3), C(0, 0))
	if err != nil {
		t.Fatalf("Sanitize failed: %v", err)
	}
	if !mines.Has(C(0, 0)) || !mines.Has(C(1, 1)) || mines.Len() != 3 {
		t.Errorf("input set was modified: %v", mines.Sorted())
	}
	if !out.Has(C(3, 3)) {
		t.Error("mine outside the safe zone was moved")
	}
}

func TestSanitizeNoDisplacementKeepsLayout(t *testing.T) {
	g := Grid{Rows: 6, Cols: 6}
	mines := NewCoordSet(C(0, 0), C(5, 5))
	rng := &scriptedSource{values: []int{5, 5, 5}}

	out, err := Sanitize(g, mines, rng, C(3, 2))
	if err != nil {
		t.Fatalf("Sanitize failed: %v", err)
	}
	if out.Len() != 2 || !out.Has(C(0, 0)) || !out.Has(C(5, 5)) {
		t.Errorf("layout changed without displaced mines: %v", out.Sorted())
	}
	if rng.pos != 0 {
		t.Errorf("randomness consumed without displaced mines: %d draws", rng.pos)
	}
}

func TestSanitizeUsesClippedZoneSize(t *testing.T) {
	g := Grid{Rows: 4, Cols: 4}
	mines := make(CoordSet)
	for _, c := range g.Coords()[:8] {
		mines.Add(c)
	}

	// A corner zone has 4 cells, leaving 12 for 8 mines.
	if _, err := Sanitize(g, mines, NewSource(1), C(3, 3)); err != nil {
		t.Errorf("corner click should fit 8 mines: %v", err)
	}

	// An interior zone has 9 cells, leaving 7.
	_, err := Sanitize(g, mines, NewSource(1), C(1, 1))
	var cfgErr *ConfigError
	if !errors.As(err, &cfgErr) {
		t.Errorf("interior click with 8 mines: expected ConfigError, got %v", err)
	}
}

func TestSanitizeOutOfBounds(t *testing.T) {
	g := Grid{Rows: 3, Cols: 3}
	_, err := Sanitize(g, NewCoordSet(), NewSource(1), C(3, 0))
	if !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
}
