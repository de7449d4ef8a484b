package engine

import "github.com/gammazero/deque"

// Unbounded as a depth budget disables the cascade limit.
const Unbounded = -1

// board holds the mutable cell sets of a session.
type board struct {
	grid    Grid
	mines   CoordSet
	visited CoordSet
	flags   CoordSet
}

// adjacent returns the number of mines among the Moore neighbours of c.
func (b *board) adjacent(c Coord) int {
	count := 0
	for _, n := range b.grid.Neighbors(c) {
		if b.mines.Has(n) {
			count++
		}
	}
	return count
}

type pendingCell struct {
	cell   Coord
	budget int
}

// reveal opens origin and cascades through zero cells.
// A zero cell with budget > 0 opens each neighbour with budget-1, in
// row-major neighbour order, depth first. A cell already visited when its
// turn comes is skipped even if it was opened with a smaller budget, so the
// opened region depends on that order. A negative budget never runs out.
func (b *board) reveal(origin Coord, budget int) RevealOutcome {
	if b.visited.Has(origin) || b.flags.Has(origin) {
		return RevealOutcome{Kind: OutcomeAlreadyHandled, Cell: origin}
	}
	if b.mines.Has(origin) {
		b.visited.Add(origin)
		return RevealOutcome{Kind: OutcomeMineHit, Cell: origin, Revealed: []Coord{origin}}
	}

	var revealed []Coord
	var stack deque.Deque[pendingCell]
	stack.PushBack(pendingCell{cell: origin, budget: budget})

	for stack.Len() > 0 {
		p := stack.PopBack()
		if b.visited.Has(p.cell) || b.flags.Has(p.cell) {
			continue
		}
		// Neighbours of a zero cell are never mines.
		b.visited.Add(p.cell)
		revealed = append(revealed, p.cell)
		if p.budget == 0 || b.adjacent(p.cell) != 0 {
			continue
		}
		neighbors := b.grid.Neighbors(p.cell)
		for i := len(neighbors) - 1; i >= 0; i-- {
			stack.PushBack(pendingCell{cell: neighbors[i], budget: p.budget - 1})
		}
	}

	kind := OutcomeCleared
	if len(revealed) > 1 {
		kind = OutcomeCascadeCleared
	}
	return RevealOutcome{
		Kind:     kind,
		Cell:     origin,
		Count:    b.adjacent(origin),
		Revealed: revealed,
	}
}
