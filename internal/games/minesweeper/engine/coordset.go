package engine

import "sort"

// CoordSet is a set of coordinates.
type CoordSet map[Coord]struct{}

// NewCoordSet builds a set from the given coordinates.
func NewCoordSet(coords ...Coord) CoordSet {
	s := make(CoordSet, len(coords))
	for _, c := range coords {
		s[c] = struct{}{}
	}
	return s
}

// Has reports whether c is in the set.
func (s CoordSet) Has(c Coord) bool {
	_, ok := s[c]
	return ok
}

// Add inserts c.
func (s CoordSet) Add(c Coord) {
	s[c] = struct{}{}
}

// Remove deletes c.
func (s CoordSet) Remove(c Coord) {
	delete(s, c)
}

// Len returns the number of coordinates in the set.
func (s CoordSet) Len() int {
	return len(s)
}

// Clone returns an independent copy of the set.
func (s CoordSet) Clone() CoordSet {
	out := make(CoordSet, len(s))
	for c := range s {
		out[c] = struct{}{}
	}
	return out
}

// Sorted returns the coordinates ordered by row then column.
func (s CoordSet) Sorted() []Coord {
	out := make([]Coord, 0, len(s))
	for c := range s {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Row != out[j].Row {
			return out[i].Row < out[j].Row
		}
		return out[i].Col < out[j].Col
	})
	return out
}

// Intersects reports whether the two sets share any coordinate.
func (s CoordSet) Intersects(other CoordSet) bool {
	small, large := s, other
	if len(small) > len(large) {
		small, large = large, small
	}
	for c := range small {
		if large.Has(c) {
			return true
		}
	}
	return false
}
