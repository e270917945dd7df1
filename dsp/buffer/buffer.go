package buffer

// Buffer wraps a float64 slice with reuse-friendly semantics.
// DSP functions accept raw []float64; use Samples() to bridge.
type Buffer struct {
	samples []float64
}

// New returns a zero-filled Buffer of the given length.
func New(length int) *Buffer {
	if length < 0 {
		length = 0
	}
	return &Buffer{samples: make([]float64, length)}
}

// Samples returns the underlying slice. It is invalidated by Resize.
func (b *Buffer) Samples() []float64 {
	return b.samples
}

// Len returns the current number of samples.
func (b *Buffer) Len() int {
	return len(b.samples)
}

// Cap returns the current capacity of the backing slice.
func (b *Buffer) Cap() int {
	return cap(b.samples)
}

// Reserve ensures capacity is at least n, preserving existing data.
// If the current capacity is already >= n this is a no-op.
func (b *Buffer) Reserve(n int) {
	if n <= cap(b.samples) {
		return
	}
	grown := make([]float64, len(b.samples), n)
	copy(grown, b.samples)
	b.samples = grown
}

// Resize sets the length to n, reusing existing capacity when possible.
// Samples below min(old, n) are kept; new trailing samples are zero.
func (b *Buffer) Resize(n int) {
	if n < 0 {
		n = 0
	}
	oldLen := len(b.samples)
	if n == oldLen {
		return
	}
	if n <= cap(b.samples) {
		b.samples = b.samples[:n]
	} else {
		s := make([]float64, n)
		copy(s, b.samples)
		b.samples = s
	}
	// The backing array may still hold samples from before a shrink.
	for i := oldLen; i < n; i++ {
		b.samples[i] = 0
	}
}

// Zero sets all samples to 0.
func (b *Buffer) Zero() {
	for i := range b.samples {
		b.samples[i] = 0
	}
}
