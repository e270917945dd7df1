// Package testutil holds signal generators and assertions shared by tests.
package testutil

import (
	"math"
	"math/rand"
)

// DeterministicSine generates a deterministic sine wave.
func DeterministicSine(freqHz, sampleRate, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	step := 2 * math.Pi * freqHz / sampleRate
	for i := range out {
		out[i] = amplitude * math.Sin(step*float64(i))
	}
	return out
}

// DeterministicNoise generates white noise with a fixed seed for reproducibility.
func DeterministicNoise(seed int64, amplitude float64, length int) []float64 {
	out := make([]float64, length)
	rng := rand.New(rand.NewSource(seed))
	for i := range out {
		out[i] = (rng.Float64()*2 - 1) * amplitude
	}
	return out
}

// Impulse generates a unit impulse at the given position.
func Impulse(length, pos int) []float64 {
	out := make([]float64, length)
	if pos >= 0 && pos < length {
		out[pos] = 1
	}
	return out
}

// Block is a half-open sample range [Start, End).
type Block struct {
	Start, End int
}

// Len returns the block length.
func (b Block) Len() int { return b.End - b.Start }

// SplitBlocks cuts [0, total) into consecutive blocks whose lengths cycle
// through sizes. Non-positive sizes are skipped; with no usable size the
// whole range is a single block. The last block may be short.
func SplitBlocks(total int, sizes ...int) []Block {
	var usable []int
	for _, s := range sizes {
		if s > 0 {
			usable = append(usable, s)
		}
	}
	if len(usable) == 0 {
		return []Block{{Start: 0, End: total}}
	}

	var blocks []Block
	for start, k := 0, 0; start < total; k++ {
		end := min(start+usable[k%len(usable)], total)
		blocks = append(blocks, Block{Start: start, End: end})
		start = end
	}
	return blocks
}

// Energy returns the sum of squares of x.
func Energy(x []float64) float64 {
	var e float64
	for _, v := range x {
		e += v * v
	}
	return e
}
