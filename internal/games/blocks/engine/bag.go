package engine

import (
	"fmt"
	"math/rand"
)

// Bag produces the piece sequence using the 7-bag scheme: pieces are drawn
// without replacement from a shuffled permutation of all seven kinds, and a
// fresh permutation is appended whenever the queue runs dry. Any 14
// consecutive draws therefore contain each kind exactly twice.
type Bag struct {
	queue []PieceKind // materialized future draws, front first
	rng   *rand.Rand
}

// NewBag creates a bag drawing randomness from rng.
func NewBag(rng *rand.Rand) *Bag {
	return &Bag{rng: rng}
}

// Next draws the next piece kind, refilling the bag as needed.
func (b *Bag) Next() PieceKind {
	b.ensure(1)
	kind := b.queue[0]
	b.queue = b.queue[1:]
	return kind
}

// Peek returns the next n kinds without consuming them, materializing
// additional bag refills as needed.
func (b *Bag) Peek(n int) []PieceKind {
	b.ensure(n)
	out := make([]PieceKind, n)
	copy(out, b.queue[:n])
	return out
}

// ensure materializes at least n future draws.
func (b *Bag) ensure(n int) {
	for len(b.queue) < n {
		b.refill()
	}
}

// refill appends a uniformly shuffled permutation of all seven kinds.
func (b *Bag) refill() {
	perm := make([]PieceKind, KindCount)
	for i := range perm {
		perm[i] = PieceKind(i)
	}
	b.rng.Shuffle(KindCount, func(i, j int) {
		perm[i], perm[j] = perm[j], perm[i]
	})

	// The refill must be a permutation of all seven kinds.
	var seen [KindCount]bool
	for _, k := range perm {
		if k >= KindCount || seen[k] {
			panic(fmt.Sprintf("engine: bag refill is not a permutation: %v", perm))
		}
		seen[k] = true
	}

	b.queue = append(b.queue, perm...)
}
