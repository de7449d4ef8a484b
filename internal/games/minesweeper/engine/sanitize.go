package engine

import "fmt"

// Sanitize moves every mine out of the clipped 3x3 block around clicked.
// Removed mines are replaced by cells drawn uniformly from outside the block,
// so the returned set has the same size as mines. mines is not modified.
func Sanitize(grid Grid, mines CoordSet, rng Source, clicked Coord) (CoordSet, error) {
	if !grid.InBounds(clicked) {
		return nil, fmt.Errorf("sanitize %v: %w", clicked, ErrOutOfBounds)
	}

	zone := NewCoordSet(grid.Zone(clicked)...)
	if limit := grid.Size() - zone.Len(); mines.Len() > limit {
		return nil, &ConfigError{
			Rows:   grid.Rows,
			Cols:   grid.Cols,
			Mines:  mines.Len(),
			Reason: fmt.Sprintf("safe zone around %v leaves room for only %d mines", clicked, limit),
		}
	}

	out := make(CoordSet, mines.Len())
	displaced := 0
	for c := range mines {
		if zone.Has(c) {
			displaced++
			continue
		}
		out.Add(c)
	}
	if displaced == 0 {
		return out, nil
	}

	// Candidates are collected in row-major order so a fixed Source gives a
	// fixed result.
	candidates := make([]Coord, 0, grid.Size()-zone.Len()-out.Len())
	for _, c := range grid.Coords() {
		if zone.Has(c) || out.Has(c) {
			continue
		}
		candidates = append(candidates, c)
	}
	for _, c := range sample(candidates, displaced, rng) {
		out.Add(c)
	}
	return out, nil
}
