// Package window generates the tapering windows used before spectral
// analysis of impulse responses.
//
// Windows are symmetric by default; WithPeriodic selects the FFT framing
// form. A single-sample window is always 1.
package window
