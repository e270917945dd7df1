package core

// EnsureLen returns a slice with the requested length, reusing buf capacity if possible.
// Contents are unspecified when a new slice is not allocated.
func EnsureLen(buf []float64, n int) []float64 {
	if n <= 0 {
		return buf[:0]
	}
	if cap(buf) >= n {
		return buf[:n]
	}
	return make([]float64, n)
}

// Zero sets all values in buf to 0.
func Zero(buf []float64) {
	for i := range buf {
		buf[i] = 0
	}
}

// Widen converts single-precision samples into dst and returns the number
// of converted elements.
func Widen(dst []float64, src []float32) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float64(src[i])
	}
	return n
}

// Narrow converts double-precision samples into dst and returns the number
// of converted elements.
func Narrow(dst []float32, src []float64) int {
	n := min(len(dst), len(src))
	for i := range n {
		dst[i] = float32(src[i])
	}
	return n
}
