package engine

import "testing"

// scriptedSource replays fixed values, reduced modulo n. It yields 0 once
// the script runs out.
type scriptedSource struct {
	values []int
	pos    int
}

func (s *scriptedSource) Intn(n int) int {
	if s.pos >= len(s.values) {
		return 0
	}
	v := s.values[s.pos] % n
	s.pos++
	return v
}

// checkInvariants verifies the set invariants of a session.
func checkInvariants(t *testing.T, s *Session) {
	t.Helper()

	if s.mines.Len() != s.numMines {
		t.Errorf("mine count = %d, want %d", s.mines.Len(), s.numMines)
	}
	if s.visited.Intersects(s.flags) {
		t.Error("a cell is both visited and flagged")
	}
	for c := range s.visited {
		if s.mines.Has(c) && (s.status != StatusLost || s.losing == nil || *s.losing != c) {
			t.Errorf("visited mine %v outside of the losing cell", c)
		}
	}
	for _, set := range []CoordSet{s.mines, s.visited, s.flags} {
		for c := range set {
			if !s.grid.InBounds(c) {
				t.Errorf("coordinate %v out of bounds", c)
			}
		}
	}
}
