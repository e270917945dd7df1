// Package ir captures and analyses impulse responses of block processors.
//
// Capture drives any Processor with a unit impulse followed by silence.
// Analyzer derives decay metrics from the Schroeder backward integration of
// the squared response:
//
//   - RT60: reverberation time (T30, falling back to T20)
//   - EDT: early decay time (0 to -10 dB, extrapolated)
//   - C80, D50: clarity and definition
//   - CenterTime: temporal energy centroid
//
// Spectrum returns the Hann-windowed magnitude response in dB.
//
// # Usage
//
//	resp, err := ir.Capture(fdn, 256, 5*48000)
//	metrics, err := ir.NewAnalyzer(48000).Analyze(resp)
//	fmt.Printf("RT60 = %.2f s\n", metrics.RT60)
package ir
