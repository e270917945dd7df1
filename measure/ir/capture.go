package ir

import "fmt"

// Processor renders one block of output from one block of input.
type Processor interface {
	Process(out, in []float64) error
}

// Capture feeds p a unit impulse at sample 0 followed by silence, in blocks
// of frameSize, and returns the first length output samples.
func Capture(p Processor, frameSize, length int) ([]float64, error) {
	if frameSize <= 0 || length <= 0 {
		return nil, fmt.Errorf("%w: frame=%d length=%d", ErrInvalidLength, frameSize, length)
	}

	in := make([]float64, frameSize)
	out := make([]float64, frameSize)
	resp := make([]float64, 0, length+frameSize)

	in[0] = 1
	for len(resp) < length {
		if err := p.Process(out, in); err != nil {
			return nil, fmt.Errorf("ir: capture at sample %d: %w", len(resp), err)
		}
		resp = append(resp, out...)
		in[0] = 0
	}

	return resp[:length], nil
}
