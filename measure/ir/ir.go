package ir

import (
	"errors"
	"math"

	"github.com/cwbudde/algo-fdn/dsp/core"
)

// Errors returned by IR capture and analysis.
var (
	ErrEmptyIR           = errors.New("ir: impulse response is empty")
	ErrInvalidSampleRate = errors.New("ir: sample rate must be positive")
	ErrInvalidLength     = errors.New("ir: invalid length")
	ErrNoDecay           = errors.New("ir: insufficient decay for RT calculation")
)

const onsetThreshold = 0.1 // -20 dB below peak

// Metrics holds impulse response analysis results. Times are in seconds.
type Metrics struct {
	RT60       float64 // T30 when available, otherwise T20
	EDT        float64 // 0 to -10 dB slope, extrapolated to -60 dB
	T20        float64 // -5 to -25 dB slope
	T30        float64 // -5 to -35 dB slope
	C80        float64 // clarity at 80 ms in dB
	D50        float64 // definition at 50 ms (ratio 0-1)
	CenterTime float64
	OnsetIndex int // first sample within -20 dB of the peak
	PeakIndex  int
	PeakDB     float64
}

// Analyzer computes IR metrics at a fixed sample rate.
type Analyzer struct {
	SampleRate float64
}

// NewAnalyzer creates an IR analyzer with the given sample rate.
func NewAnalyzer(sampleRate float64) *Analyzer {
	return &Analyzer{SampleRate: sampleRate}
}

func (a *Analyzer) check(ir []float64) error {
	if len(ir) == 0 {
		return ErrEmptyIR
	}
	if a.SampleRate <= 0 {
		return ErrInvalidSampleRate
	}
	return nil
}

// Analyze computes all metrics. Time-based metrics are measured from the
// onset, so a reverb's pre-delay does not count towards them.
func (a *Analyzer) Analyze(ir []float64) (Metrics, error) {
	if err := a.check(ir); err != nil {
		return Metrics{}, err
	}

	peakIdx, peak := findPeak(ir)
	onset := findOnset(ir, peak*onsetThreshold)
	body := ir[onset:]
	curve := schroeder(body)

	m := Metrics{
		EDT:        a.reverbTime(curve, 0, -10),
		T20:        a.reverbTime(curve, -5, -25),
		T30:        a.reverbTime(curve, -5, -35),
		C80:        a.clarity(body, 80),
		D50:        a.definition(body, 50),
		CenterTime: a.centerTime(body),
		OnsetIndex: onset,
		PeakIndex:  peakIdx,
		PeakDB:     core.PeakDB(ir),
	}

	m.RT60 = m.T30
	if m.RT60 == 0 {
		m.RT60 = m.T20
	}

	return m, nil
}

// RT60 returns the reverberation time, or ErrNoDecay when the response
// does not fall by at least 25 dB.
func (a *Analyzer) RT60(ir []float64) (float64, error) {
	m, err := a.Analyze(ir)
	if err != nil {
		return 0, err
	}
	if m.RT60 <= 0 {
		return 0, ErrNoDecay
	}
	return m.RT60, nil
}

// SchroederIntegral returns the backward-integrated energy decay curve in
// dB relative to the total energy, floored at core.SilenceDB.
func (a *Analyzer) SchroederIntegral(ir []float64) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	return schroeder(ir), nil
}

// BlockEnergy returns the sum of squares of each consecutive block of ir;
// the last block may be short.
func (a *Analyzer) BlockEnergy(ir []float64, block int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if block <= 0 {
		return nil, ErrInvalidLength
	}

	out := make([]float64, 0, (len(ir)+block-1)/block)
	for start := 0; start < len(ir); start += block {
		var e float64
		for _, v := range ir[start:min(start+block, len(ir))] {
			e += v * v
		}
		out = append(out, e)
	}
	return out, nil
}

func schroeder(ir []float64) []float64 {
	curve := make([]float64, len(ir))

	var acc float64
	for i := len(ir) - 1; i >= 0; i-- {
		acc += ir[i] * ir[i]
		curve[i] = acc
	}

	total := curve[0]
	for i, e := range curve {
		if total <= 0 || e <= 0 {
			curve[i] = core.SilenceDB
			continue
		}
		curve[i] = core.LinearPowerToDB(e / total)
	}
	return curve
}

// reverbTime fits a line to the decay curve between startDB and endDB and
// extrapolates it to -60 dB. Returns 0 when the curve never reaches endDB.
func (a *Analyzer) reverbTime(curve []float64, startDB, endDB float64) float64 {
	start, end := -1, -1
	for i, v := range curve {
		if start < 0 && v <= startDB {
			start = i
		}
		if start >= 0 && v <= endDB {
			end = i
			break
		}
	}
	if start < 0 || end <= start {
		return 0
	}

	var sumX, sumY, sumXX, sumXY float64
	for i := start; i <= end; i++ {
		x := float64(i - start)
		y := curve[i]
		sumX += x
		sumY += y
		sumXX += x * x
		sumXY += x * y
	}

	n := float64(end - start + 1)
	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return 0
	}

	slope := (n*sumXY - sumX*sumY) / denom // dB per sample
	if slope >= 0 {
		return 0
	}

	return -60 / (slope * a.SampleRate)
}

func (a *Analyzer) boundary(timeMs float64) int {
	return int(math.Round(timeMs * 0.001 * a.SampleRate))
}

func (a *Analyzer) definition(ir []float64, timeMs float64) float64 {
	b := min(a.boundary(timeMs), len(ir))

	early := energy(ir[:b])
	total := early + energy(ir[b:])
	if total <= 0 {
		return 0
	}
	return early / total
}

func (a *Analyzer) clarity(ir []float64, timeMs float64) float64 {
	b := min(a.boundary(timeMs), len(ir))

	early, late := energy(ir[:b]), energy(ir[b:])
	switch {
	case late <= 0:
		return math.Inf(1)
	case early <= 0:
		return math.Inf(-1)
	}
	return core.LinearPowerToDB(early / late)
}

func (a *Analyzer) centerTime(ir []float64) float64 {
	var num, den float64
	for i, v := range ir {
		e := v * v
		num += float64(i) / a.SampleRate * e
		den += e
	}
	if den <= 0 {
		return 0
	}
	return num / den
}

func energy(x []float64) float64 {
	var e float64
	for _, v := range x {
		e += v * v
	}
	return e
}

func findPeak(ir []float64) (int, float64) {
	idx, peak := 0, 0.0
	for i, v := range ir {
		if av := math.Abs(v); av > peak {
			idx, peak = i, av
		}
	}
	return idx, peak
}

func findOnset(ir []float64, threshold float64) int {
	if threshold <= 0 {
		return 0
	}
	for i, v := range ir {
		if math.Abs(v) >= threshold {
			return i
		}
	}
	return 0
}
