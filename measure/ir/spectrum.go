package ir

import (
	"fmt"
	"math"

	algofft "github.com/MeKo-Christian/algo-fft"
	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/window"
	"github.com/cwbudde/algo-vecmath"
)

// Spectrum returns the magnitude response of ir in dB for bins 0..fftSize/2.
// The first fftSize samples are Hann-windowed; shorter responses are
// zero-padded. fftSize must be a power of two >= 2.
func (a *Analyzer) Spectrum(ir []float64, fftSize int) ([]float64, error) {
	if len(ir) == 0 {
		return nil, ErrEmptyIR
	}
	if fftSize < 2 || fftSize&(fftSize-1) != 0 {
		return nil, fmt.Errorf("%w: fft size %d is not a power of two", ErrInvalidLength, fftSize)
	}

	n := min(len(ir), fftSize)
	frame := make([]float64, n)
	copy(frame, ir[:n])
	window.Apply(window.TypeHann, frame)

	in := make([]complex128, fftSize)
	for i, v := range frame {
		in[i] = complex(v, 0)
	}

	plan, err := algofft.NewPlan64(fftSize)
	if err != nil {
		return nil, fmt.Errorf("ir: fft plan: %w", err)
	}

	out := make([]complex128, fftSize)
	if err := plan.Forward(out, in); err != nil {
		return nil, fmt.Errorf("ir: fft: %w", err)
	}

	bins := fftSize/2 + 1
	re := make([]float64, bins)
	im := make([]float64, bins)
	for k := range bins {
		re[k] = real(out[k])
		im[k] = imag(out[k])
	}

	mag := make([]float64, bins)
	vecmath.Magnitude(mag, re, im)
	for k, v := range mag {
		mag[k] = math.Max(core.LinearToDB(v), core.SilenceDB)
	}

	return mag, nil
}

// SpectrumStats summarises a magnitude spectrum.
type SpectrumStats struct {
	PeakHz     float64
	PeakDB     float64
	CentroidHz float64 // magnitude-weighted mean frequency
}

// SpectrumStats computes Spectrum and reduces it to its peak and centroid.
func (a *Analyzer) SpectrumStats(ir []float64, fftSize int) (SpectrumStats, error) {
	if a.SampleRate <= 0 {
		return SpectrumStats{}, ErrInvalidSampleRate
	}

	spec, err := a.Spectrum(ir, fftSize)
	if err != nil {
		return SpectrumStats{}, err
	}

	binHz := a.SampleRate / float64(fftSize)
	peak := 0

	var num, den float64
	for k, db := range spec {
		if db > spec[peak] {
			peak = k
		}
		m := math.Pow(10, db/20)
		num += float64(k) * binHz * m
		den += m
	}

	stats := SpectrumStats{
		PeakHz: float64(peak) * binHz,
		PeakDB: spec[peak],
	}
	if den > 0 {
		stats.CentroidHz = num / den
	}
	return stats, nil
}
