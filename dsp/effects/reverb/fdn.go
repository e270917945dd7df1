package reverb

import (
	"errors"
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/buffer"
	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/delay"
	"github.com/cwbudde/algo-vecmath"
)

// FDNChannels is the fixed number of delay channels.
const FDNChannels = 4

const (
	defaultFDNFeedbackGain = 0.65
	minFDNCompDelay        = 1

	// fdnMatrixNorm is the spectral norm of fdnMatrix: its rows are
	// orthogonal with norm sqrt(2).
	fdnMatrixNorm = math.Sqrt2
)

var fdnDelaySamples = [FDNChannels]int{800, 1422, 2483, 4227}

// fdnMatrix has a zero diagonal so no channel feeds straight back into itself.
var fdnMatrix = [FDNChannels][FDNChannels]float64{
	{0, 1, 1, 0},
	{-1, 0, 0, -1},
	{1, 0, 0, -1},
	{0, 1, -1, 0},
}

// Errors returned by FDN.
var (
	ErrInvalidFrameSize    = errors.New("reverb: invalid frame size")
	ErrFrameSizeMismatch   = errors.New("reverb: block length does not match frame size")
	ErrInvalidFeedbackGain = errors.New("reverb: feedback gain must be finite with |g|*sqrt(2) < 1")
)

// FDN is a four-channel feedback delay network reverb processing fixed-size
// blocks. It is not safe for concurrent use.
type FDN struct {
	direct   [FDNChannels]*delay.Line
	comp     [FDNChannels]*delay.Line
	feedback [FDNChannels]*buffer.Buffer

	// mix[out][in] = fdnMatrix[out][in] * gain
	mix  [FDNChannels][FDNChannels]float64
	gain float64

	frameSize int
	local     [FDNChannels][]float64
	tap       []float64
}

// NewFDN creates a network for blocks of frameSize samples. The frame size
// also fixes the feedback compensation delays for the lifetime of the FDN.
func NewFDN(frameSize int, opts ...FDNOption) (*FDN, error) {
	if frameSize <= 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidFrameSize, frameSize)
	}

	cfg := defaultFDNConfig()
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	g := cfg.feedbackGain
	if math.IsNaN(g) || math.IsInf(g, 0) || math.Abs(g)*fdnMatrixNorm >= 1 {
		return nil, fmt.Errorf("%w: %f", ErrInvalidFeedbackGain, g)
	}

	capacity := max(frameSize, cfg.maxFrameSize)
	f := &FDN{
		gain:      g,
		frameSize: frameSize,
		tap:       make([]float64, frameSize, capacity),
	}

	for ch := range FDNChannels {
		var err error

		f.direct[ch], err = delay.New(fdnDelaySamples[ch])
		if err != nil {
			return nil, err
		}

		f.comp[ch], err = delay.New(max(fdnDelaySamples[ch]-frameSize, minFDNCompDelay))
		if err != nil {
			return nil, err
		}

		f.feedback[ch] = buffer.New(frameSize)
		f.feedback[ch].Reserve(capacity)
		f.local[ch] = make([]float64, frameSize, capacity)

		for in := range FDNChannels {
			f.mix[ch][in] = fdnMatrix[ch][in] * g
		}
	}

	return f, nil
}

// FrameSize returns the block length Process currently expects.
func (f *FDN) FrameSize() int { return f.frameSize }

// FeedbackGain returns the scalar applied to the mixing matrix.
func (f *FDN) FeedbackGain() float64 { return f.gain }

// DelaySamples returns the per-channel direct delays.
func (f *FDN) DelaySamples() [FDNChannels]int { return fdnDelaySamples }

// CompensationSamples returns the per-channel feedback compensation delays.
func (f *FDN) CompensationSamples() [FDNChannels]int {
	var out [FDNChannels]int
	for ch, line := range f.comp {
		out[ch] = line.Len()
	}
	return out
}

// Latency returns the index of the first output sample an input impulse
// can reach.
func (f *FDN) Latency() int {
	return fdnDelaySamples[0]
}

// TailSamples estimates how long the output takes to decay by floorDB
// (a negative value) after the input goes silent.
func (f *FDN) TailSamples(floorDB float64) int {
	longest := fdnDelaySamples[FDNChannels-1]

	loopDB := 20 * math.Log10(math.Abs(f.gain)*fdnMatrixNorm)
	if floorDB >= 0 || math.IsInf(loopDB, -1) {
		return longest
	}

	loops := math.Ceil(floorDB / loopDB)
	return int(loops+1) * longest
}

// UpdateFrameSize sets the block length for subsequent Process calls. The
// feedback state keeps its first min(old, n) samples and is zero-padded on
// growth. Delay lines are left untouched. Calling it with the current size
// is a no-op, so hosts may call it before every block.
func (f *FDN) UpdateFrameSize(n int) error {
	if n < 0 {
		return fmt.Errorf("%w: %d", ErrInvalidFrameSize, n)
	}
	if n == f.frameSize {
		return nil
	}

	for ch := range FDNChannels {
		f.feedback[ch].Resize(n)
		f.local[ch] = core.EnsureLen(f.local[ch], n)
	}
	f.tap = core.EnsureLen(f.tap, n)
	f.frameSize = n

	return nil
}

// Process renders one block. Both slices must have length FrameSize();
// otherwise ErrFrameSizeMismatch is returned and no state changes. out may
// alias in.
func (f *FDN) Process(out, in []float64) error {
	n := f.frameSize
	if len(in) != n || len(out) != n {
		return fmt.Errorf("%w: in=%d out=%d frame=%d", ErrFrameSizeMismatch, len(in), len(out), n)
	}
	if n == 0 {
		return nil
	}

	for ch := range FDNChannels {
		copy(f.local[ch], in)
	}
	core.Zero(out)

	// Inject the previous block's feedback. It must be read here, before the
	// compensation lines overwrite it below.
	for o := range FDNChannels {
		for i := range FDNChannels {
			vecmath.ScaleBlock(f.tap, f.feedback[i].Samples(), f.mix[o][i])
			vecmath.AddBlockInPlace(f.local[o], f.tap)
		}
	}

	for ch, line := range f.direct {
		if err := line.Process(f.tap, f.local[ch]); err != nil {
			return fmt.Errorf("reverb: direct line %d: %w", ch, err)
		}
		vecmath.AddBlockInPlace(out, f.tap)
	}

	for ch, line := range f.comp {
		if err := line.Process(f.feedback[ch].Samples(), f.local[ch]); err != nil {
			return fmt.Errorf("reverb: compensation line %d: %w", ch, err)
		}
	}

	return nil
}

// ProcessInPlace renders one block in place.
func (f *FDN) ProcessInPlace(buf []float64) error {
	return f.Process(buf, buf)
}

// Reset returns every delay line to its fill phase and clears the feedback
// state. Compensation delays keep their construction-time lengths.
func (f *FDN) Reset() {
	for ch := range FDNChannels {
		f.direct[ch].Reset()
		f.comp[ch].Reset()
		f.feedback[ch].Zero()
	}
}
