// Package render runs the FDN over a whole signal in fixed-size blocks.
package render

import (
	"errors"
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

// ErrInvalidConfig is returned for a non-positive frame size or a negative tail.
var ErrInvalidConfig = errors.New("render: invalid config")

// Config controls an offline render.
type Config struct {
	// FrameSize is the fixed block length handed to the engine.
	FrameSize int
	// TailSamples of silence are appended after the input, rounded up to
	// whole blocks, so the reverb can ring out.
	TailSamples int
	// Options configure the freshly constructed engine.
	Options []reverb.FDNOption
	// Progress, when set, is called after every block with the number of
	// samples processed so far and the padded total.
	Progress func(done, total int)
}

// PaddedLen returns the output length Render produces for n input samples.
func (c Config) PaddedLen(n int) int {
	if c.FrameSize <= 0 {
		return 0
	}
	return ceilBlocks(n, c.FrameSize) + ceilBlocks(c.TailSamples, c.FrameSize)
}

// Render processes src through a new FDN. The last partial block is
// zero-padded, so the result always holds a whole number of blocks.
func Render(src []float64, cfg Config) ([]float64, error) {
	if cfg.FrameSize <= 0 || cfg.TailSamples < 0 {
		return nil, fmt.Errorf("%w: frame=%d tail=%d", ErrInvalidConfig, cfg.FrameSize, cfg.TailSamples)
	}

	fdn, err := reverb.NewFDN(cfg.FrameSize, cfg.Options...)
	if err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	total := cfg.PaddedLen(len(src))
	out := make([]float64, total)
	in := make([]float64, cfg.FrameSize)

	for start := 0; start < total; start += cfg.FrameSize {
		n := 0
		if start < len(src) {
			n = copy(in, src[start:])
		}
		clear(in[n:])

		if err := fdn.Process(out[start:start+cfg.FrameSize], in); err != nil {
			return nil, fmt.Errorf("render: block at %d: %w", start, err)
		}

		if cfg.Progress != nil {
			cfg.Progress(start+cfg.FrameSize, total)
		}
	}

	return out, nil
}

func ceilBlocks(n, size int) int {
	return (n + size - 1) / size * size
}
