package main

import (
	"path/filepath"
	"testing"

	"github.com/cwbudde/algo-fdn/internal/wavio"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
)

func TestFFTSizeFor(t *testing.T) {
	tests := []struct{ n, want int }{
		{0, 2},
		{3, 2},
		{1024, 1024},
		{1500, 1024},
		{10 * maxFFTSize, maxFFTSize},
	}
	for _, tt := range tests {
		if got := fftSizeFor(tt.n); got != tt.want {
			t.Errorf("fftSizeFor(%d) = %d, want %d", tt.n, got, tt.want)
		}
	}
}

func TestWriteImpulseResponse(t *testing.T) {
	hook := test.NewGlobal()
	defer hook.Reset()

	const rate = 8000
	path := filepath.Join(t.TempDir(), "ir.wav")
	if err := writeImpulseResponse(path, rate, 256, 1, nil); err != nil {
		t.Fatal(err)
	}

	clip, err := wavio.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if clip.Frames() != rate || clip.Format.BitDepth != irBitDepth {
		t.Fatalf("ir clip = %d frames at %d bit", clip.Frames(), clip.Format.BitDepth)
	}

	var summary *logrus.Entry
	decayRows := 0
	for _, e := range hook.AllEntries() {
		switch e.Message {
		case "impulse response analysed":
			summary = e
		case "decay":
			decayRows++
		}
	}

	if summary == nil {
		t.Fatal("no analysis summary logged")
	}
	for _, key := range []string{"rt60_s", "spec_peak", "centroid"} {
		if _, ok := summary.Data[key]; !ok {
			t.Errorf("summary missing %q", key)
		}
	}
	if summary.Data["onset"] != 800 {
		t.Errorf("onset = %v, want 800", summary.Data["onset"])
	}

	// 7200 samples after the onset in quarter-second blocks.
	if decayRows != 4 {
		t.Errorf("decay rows = %d, want 4", decayRows)
	}
}
