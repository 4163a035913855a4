package rng

import "testing"

func TestDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)

	for i := 0; i < 1000; i++ {
		va, vb := a.Next(), b.Next()
		if va != vb {
			t.Fatalf("sequences diverged at step %d: %d != %d", i, va, vb)
		}
	}
}

func TestDifferentSeedsDiverge(t *testing.T) {
	a := New(1)
	b := New(2)

	same := true
	for i := 0; i < 8; i++ {
		if a.Next() != b.Next() {
			same = false
		}
	}
	if same {
		t.Fatal("expected different seeds to produce different sequences")
	}
}

func TestNextFloatRange(t *testing.T) {
	r := New(7)
	for i := 0; i < 100000; i++ {
		f := r.NextFloat()
		if f < 0 || f >= 1 {
			t.Fatalf("NextFloat out of range: %v", f)
		}
	}
}
