package engine

import (
	"math/rand"
	"testing"
)

func TestBagFairness(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(42)))

	// Any 14k draws must contain each kind exactly 2k times.
	const cycles = 100
	counts := make(map[PieceKind]int)
	for i := 0; i < 14*cycles; i++ {
		counts[bag.Next()]++
	}

	for kind := PieceKind(0); kind < KindCount; kind++ {
		if counts[kind] != 2*cycles {
			t.Errorf("kind %s drawn %d times, want %d", kind, counts[kind], 2*cycles)
		}
	}
}

func TestBagNoRepeatWithinCycle(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(7)))

	for cycle := 0; cycle < 50; cycle++ {
		var seen [KindCount]bool
		for i := 0; i < KindCount; i++ {
			kind := bag.Next()
			if seen[kind] {
				t.Fatalf("cycle %d drew %s twice", cycle, kind)
			}
			seen[kind] = true
		}
	}
}

func TestBagPeekNonDestructive(t *testing.T) {
	bag := NewBag(rand.New(rand.NewSource(3)))

	// Peeking past the first bag forces refills without consuming anything.
	first := bag.Peek(10)
	if len(first) != 10 {
		t.Fatalf("Peek(10) returned %d kinds", len(first))
	}

	second := bag.Peek(10)
	for i := range first {
		if first[i] != second[i] {
			t.Fatalf("repeated Peek diverged at %d: %s vs %s", i, first[i], second[i])
		}
	}

	for i, want := range first {
		if got := bag.Next(); got != want {
			t.Errorf("draw %d = %s, want peeked %s", i, got, want)
		}
	}
}

func TestBagSameSeedSameSequence(t *testing.T) {
	a := NewBag(rand.New(rand.NewSource(99)))
	b := NewBag(rand.New(rand.NewSource(99)))

	for i := 0; i < 70; i++ {
		if ka, kb := a.Next(), b.Next(); ka != kb {
			t.Fatalf("sequences diverged at draw %d: %s vs %s", i, ka, kb)
		}
	}
}
