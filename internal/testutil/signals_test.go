package testutil

import (
	"math"
	"testing"
)

func TestDeterministicSine(t *testing.T) {
	s := DeterministicSine(1000, 48000, 1.0, 48)
	if len(s) != 48 {
		t.Fatalf("len = %d, want 48", len(s))
	}
	if math.Abs(s[0]) > 1e-15 {
		t.Fatalf("s[0] = %v, want 0", s[0])
	}
	for i, v := range s {
		if v < -1 || v > 1 {
			t.Fatalf("s[%d] = %v out of range", i, v)
		}
	}
}

func TestDeterministicNoise(t *testing.T) {
	a := DeterministicNoise(42, 1.0, 64)
	b := DeterministicNoise(42, 1.0, 64)
	if len(a) != 64 {
		t.Fatalf("len = %d, want 64", len(a))
	}
	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("noise not deterministic at index %d", i)
		}
	}
}

func TestImpulse(t *testing.T) {
	x := Impulse(4, 2)
	if x[2] != 1 || Energy(x) != 1 {
		t.Fatalf("unexpected impulse %v", x)
	}
	if Energy(Impulse(4, 9)) != 0 {
		t.Fatal("out-of-range impulse must be silent")
	}
}

func TestSplitBlocks(t *testing.T) {
	tests := []struct {
		name  string
		total int
		sizes []int
		want  []int
	}{
		{name: "single", total: 10, want: []int{10}},
		{name: "even", total: 8, sizes: []int{4}, want: []int{4, 4}},
		{name: "short tail", total: 10, sizes: []int{4}, want: []int{4, 4, 2}},
		{name: "cycle", total: 10, sizes: []int{1, 3}, want: []int{1, 3, 1, 3, 1, 1}},
		{name: "skip invalid", total: 4, sizes: []int{0, -2, 2}, want: []int{2, 2}},
		{name: "empty", total: 0, sizes: []int{3}, want: nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			blocks := SplitBlocks(tt.total, tt.sizes...)
			if len(blocks) != len(tt.want) {
				t.Fatalf("got %d blocks, want %d: %v", len(blocks), len(tt.want), blocks)
			}
			next := 0
			for i, b := range blocks {
				if b.Start != next || b.Len() != tt.want[i] {
					t.Fatalf("block %d = %+v, want start %d len %d", i, b, next, tt.want[i])
				}
				next = b.End
			}
		})
	}
}
