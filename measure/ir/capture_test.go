package ir

import (
	"errors"
	"testing"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

type passthrough struct{}

func (passthrough) Process(out, in []float64) error {
	copy(out, in)
	return nil
}

type failing struct{ after int }

var errBoom = errors.New("boom")

func (f *failing) Process(out, in []float64) error {
	if f.after == 0 {
		return errBoom
	}
	f.after--
	copy(out, in)
	return nil
}

func TestCapturePassthrough(t *testing.T) {
	resp, err := Capture(passthrough{}, 7, 20)
	if err != nil {
		t.Fatal(err)
	}
	if len(resp) != 20 {
		t.Fatalf("len = %d, want 20", len(resp))
	}
	for i, v := range resp {
		want := 0.0
		if i == 0 {
			want = 1
		}
		if v != want {
			t.Fatalf("resp[%d] = %v, want %v", i, v, want)
		}
	}
}

func TestCaptureFDNLatency(t *testing.T) {
	for _, frame := range []int{1, 100, 256, 1000} {
		fdn, err := reverb.NewFDN(frame)
		if err != nil {
			t.Fatal(err)
		}

		resp, err := Capture(fdn, frame, 1000)
		if err != nil {
			t.Fatal(err)
		}

		for i := range fdn.Latency() {
			if resp[i] != 0 {
				t.Fatalf("frame %d: resp[%d] = %v before latency", frame, i, resp[i])
			}
		}
		if resp[fdn.Latency()] != 1 {
			t.Fatalf("frame %d: resp[%d] = %v, want 1", frame, fdn.Latency(), resp[fdn.Latency()])
		}
	}
}

func TestCaptureErrors(t *testing.T) {
	if _, err := Capture(passthrough{}, 0, 10); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("frame 0: err = %v", err)
	}
	if _, err := Capture(passthrough{}, 8, 0); !errors.Is(err, ErrInvalidLength) {
		t.Fatalf("length 0: err = %v", err)
	}
	if _, err := Capture(&failing{after: 2}, 8, 100); !errors.Is(err, errBoom) {
		t.Fatalf("processor error not wrapped: %v", err)
	}
}
