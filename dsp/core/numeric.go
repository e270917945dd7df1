package core

import (
	"math"

	"github.com/cwbudde/algo-vecmath"
)

const defaultEpsilon = 1e-12

// SilenceDB is reported for all-zero signals instead of -Inf.
const SilenceDB = -200.0

// NearlyEqual reports whether a and b are equal within eps.
func NearlyEqual(a, b, eps float64) bool {
	if eps <= 0 {
		eps = defaultEpsilon
	}

	diff := math.Abs(a - b)
	if diff <= eps {
		return true
	}

	largest := math.Max(math.Abs(a), math.Abs(b))
	if largest == 0 {
		return diff <= eps
	}

	return diff/largest <= eps
}

// LinearToDB converts linear amplitude to dB (20*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearToDB(linear float64) float64 {
	if linear < 0 {
		return math.NaN()
	}

	if linear == 0 {
		return math.Inf(-1)
	}

	return 20 * log10(linear)
}

// LinearPowerToDB converts linear power to dB (10*log10 convention).
// Returns -Inf for zero and NaN for negative values.
func LinearPowerToDB(power float64) float64 {
	if power < 0 {
		return math.NaN()
	}

	if power == 0 {
		return math.Inf(-1)
	}

	return 10 * log10(power)
}

// PeakDB returns the absolute peak of buf in dBFS, floored at SilenceDB.
func PeakDB(buf []float64) float64 {
	if len(buf) == 0 {
		return SilenceDB
	}

	peak := vecmath.MaxAbs(buf)
	if peak == 0 {
		return SilenceDB
	}

	return math.Max(LinearToDB(peak), SilenceDB)
}
