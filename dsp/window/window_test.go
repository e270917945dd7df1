package window

import (
	"errors"
	"math"
	"testing"
)

func TestGenerateShapes(t *testing.T) {
	tests := []struct {
		typ        Type
		edge, peak float64
	}{
		{TypeRectangular, 1, 1},
		{TypeHann, 0, 1},
		{TypeHamming, 0.08, 1},
		{TypeBlackman, 0, 1},
	}

	for _, tt := range tests {
		t.Run(Info(tt.typ).Name, func(t *testing.T) {
			w := Generate(tt.typ, 65)
			if len(w) != 65 {
				t.Fatalf("len = %d, want 65", len(w))
			}
			if math.Abs(w[0]-tt.edge) > 1e-12 || math.Abs(w[64]-tt.edge) > 1e-12 {
				t.Fatalf("edges = %v, %v, want %v", w[0], w[64], tt.edge)
			}
			if math.Abs(w[32]-tt.peak) > 1e-12 {
				t.Fatalf("centre = %v, want %v", w[32], tt.peak)
			}
			for i := range w {
				if math.Abs(w[i]-w[64-i]) > 1e-12 {
					t.Fatalf("not symmetric at %d", i)
				}
			}
		})
	}
}

func TestPeriodicDiffersFromSymmetric(t *testing.T) {
	a := Generate(TypeHann, 16)
	b := Generate(TypeHann, 16, WithPeriodic())

	if math.Abs(a[15]-b[15]) < 1e-12 {
		t.Fatal("expected different end coefficient for periodic form")
	}
	if b[8] != 1 {
		t.Fatalf("periodic centre = %v, want 1", b[8])
	}
}

func TestGenerateEdgeLengths(t *testing.T) {
	if w := Generate(TypeHann, 0); w != nil {
		t.Fatalf("length 0 = %v, want nil", w)
	}
	if w := Generate(TypeHann, 1); len(w) != 1 || w[0] != 1 {
		t.Fatalf("length 1 = %v, want [1]", w)
	}
}

func TestApplyInPlace(t *testing.T) {
	buf := []float64{1, 2, 3, 4, 5, 6, 7, 8}
	Apply(TypeRectangular, buf)
	for i, v := range buf {
		if v != float64(i+1) {
			t.Fatalf("rectangular should be passthrough at %d: %v", i, v)
		}
	}

	Apply(TypeHann, buf)
	if buf[0] != 0 || buf[7] != 0 {
		t.Fatalf("hann edges = %v, %v, want 0", buf[0], buf[7])
	}

	Apply(TypeHann, nil)
}

func TestHannValidation(t *testing.T) {
	if _, err := Hann(0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("err = %v, want ErrInvalidLength", err)
	}

	w, err := Hann(3)
	if err != nil {
		t.Fatal(err)
	}
	if w[0] != 0 || w[1] != 1 || w[2] != 0 {
		t.Fatalf("Hann(3) = %v", w)
	}
}

func TestCoherentGainMatchesMean(t *testing.T) {
	for _, typ := range []Type{TypeRectangular, TypeHann, TypeHamming, TypeBlackman} {
		w := Generate(typ, 4096, WithPeriodic())
		mean := 0.0
		for _, v := range w {
			mean += v
		}
		mean /= float64(len(w))

		if math.Abs(mean-Info(typ).CoherentGain) > 1e-9 {
			t.Fatalf("%s: mean = %v, want %v", Info(typ).Name, mean, Info(typ).CoherentGain)
		}
	}
}
