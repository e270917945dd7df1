package delay

import (
	"errors"
	"fmt"
)

// Errors returned by Line.
var (
	ErrInvalidSize    = errors.New("delay: size must be > 0")
	ErrLengthMismatch = errors.New("delay: input and output lengths differ")
)

// Line is a circular FIFO modelling a pure delay of Len() samples.
//
// Push and pop share a single cursor, so once the buffer is full every
// write replaces exactly the sample being read.
type Line struct {
	buffer []float64
	pos    int
	filled int
	steady bool
}

// New returns an empty delay line of fixed size.
func New(size int) (*Line, error) {
	if size <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	return &Line{buffer: make([]float64, size)}, nil
}

// Len returns the delay in samples.
func (d *Line) Len() int {
	return len(d.buffer)
}

// Steady reports whether the line has filled once.
func (d *Line) Steady() bool {
	return d.steady
}

// ProcessSample pushes x and returns the sample delayed by Len().
func (d *Line) ProcessSample(x float64) float64 {
	if !d.steady {
		if d.filled < len(d.buffer) {
			d.buffer[d.pos] = x
			d.advance()
			d.filled++
			return 0
		}
		if d.filled != len(d.buffer) {
			panic(fmt.Sprintf("delay: fill count %d exceeds size %d", d.filled, len(d.buffer)))
		}
		d.steady = true
	}

	y := d.buffer[d.pos]
	d.buffer[d.pos] = x
	d.advance()
	return y
}

// Process delays in into out. Both slices must have the same length; on a
// mismatch no state is touched.
func (d *Line) Process(out, in []float64) error {
	if len(out) != len(in) {
		return fmt.Errorf("%w: out=%d in=%d", ErrLengthMismatch, len(out), len(in))
	}

	i := 0
	for ; i < len(in) && !d.steady; i++ {
		out[i] = d.ProcessSample(in[i])
	}

	// Steady state: plain shift register. in and out may alias because
	// each position is read before it is written.
	buf := d.buffer
	pos := d.pos
	for ; i < len(in); i++ {
		x := in[i]
		out[i] = buf[pos]
		buf[pos] = x
		pos++
		if pos == len(buf) {
			pos = 0
		}
	}
	d.pos = pos

	return nil
}

// Reset empties the line and returns it to the fill phase.
func (d *Line) Reset() {
	for i := range d.buffer {
		d.buffer[i] = 0
	}
	d.pos = 0
	d.filled = 0
	d.steady = false
}

func (d *Line) advance() {
	d.pos++
	if d.pos == len(d.buffer) {
		d.pos = 0
	}
}
