package buffer

import "testing"

func fill(b *Buffer) {
	for i := range b.Samples() {
		b.Samples()[i] = float64(i + 1)
	}
}

func TestNewZeroFilled(t *testing.T) {
	b := New(8)
	if b.Len() != 8 {
		t.Fatalf("Len() = %d, want 8", b.Len())
	}
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v, want 0", i, v)
		}
	}
}

func TestNewNegativeLength(t *testing.T) {
	b := New(-1)
	if b.Len() != 0 {
		t.Fatalf("Len() = %d, want 0 for negative input", b.Len())
	}
}

func TestReservePreservesData(t *testing.T) {
	b := New(4)
	b.Samples()[0] = 42
	b.Reserve(16)
	if b.Cap() < 16 {
		t.Fatalf("Cap() = %d, want >= 16", b.Cap())
	}
	if b.Len() != 4 {
		t.Fatalf("Len() = %d, want 4 after Reserve", b.Len())
	}
	if b.Samples()[0] != 42 {
		t.Fatal("Reserve did not preserve data")
	}

	before := &b.Samples()[0]
	b.Resize(16)
	if &b.Samples()[0] != before {
		t.Fatal("Resize within reserved capacity reallocated")
	}
}

func TestResize(t *testing.T) {
	tests := []struct {
		name string
		from int
		to   int
	}{
		{name: "grow", from: 4, to: 9},
		{name: "shrink", from: 9, to: 4},
		{name: "same", from: 6, to: 6},
		{name: "to zero", from: 6, to: 0},
		{name: "negative", from: 6, to: -3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := New(tt.from)
			fill(b)
			b.Resize(tt.to)

			want := max(tt.to, 0)
			if b.Len() != want {
				t.Fatalf("Len() = %d, want %d", b.Len(), want)
			}
			for i, v := range b.Samples() {
				expected := 0.0
				if i < tt.from {
					expected = float64(i + 1)
				}
				if v != expected {
					t.Fatalf("index %d: got %v, want %v", i, v, expected)
				}
			}
		})
	}
}

func TestResizeIdempotent(t *testing.T) {
	b := New(4)
	fill(b)
	for range 3 {
		b.Resize(6)
	}
	want := []float64{1, 2, 3, 4, 0, 0}
	for i, v := range b.Samples() {
		if v != want[i] {
			t.Fatalf("index %d: got %v, want %v", i, v, want[i])
		}
	}
}

func TestResizeReuseClearsStaleData(t *testing.T) {
	b := New(4)
	fill(b)
	b.Resize(2)
	b.Resize(4)
	// Elements 2 and 3 should be zeroed even though capacity was reused.
	if b.Samples()[2] != 0 || b.Samples()[3] != 0 {
		t.Fatalf("stale data visible after Resize: %v", b.Samples())
	}
}

func TestZero(t *testing.T) {
	b := New(3)
	fill(b)
	b.Zero()
	for i, v := range b.Samples() {
		if v != 0 {
			t.Fatalf("Samples()[%d] = %v after Zero", i, v)
		}
	}
}
