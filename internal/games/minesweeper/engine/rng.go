package engine

import "math/rand"

// Source supplies randomness to mine placement and first-click relocation.
// *rand.Rand satisfies it.
type Source interface {
	// Intn returns a uniform value in [0, n). n is always positive.
	Intn(n int) int
}

// NewSource returns a seeded deterministic Source.
func NewSource(seed int64) *rand.Rand {
	return rand.New(rand.NewSource(seed))
}

// sample picks k distinct elements of pool uniformly, using a partial
// Fisher-Yates shuffle. pool is reordered in place.
func sample(pool []Coord, k int, rng Source) []Coord {
	for i := 0; i < k; i++ {
		j := i + rng.Intn(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
