// Package delay provides a fixed-length integer delay line with an explicit
// fill phase.
//
// A Line of size N outputs silence for the first N samples it is fed and,
// from then on, the sample written N positions earlier. The transition to
// steady state happens exactly once, on the sample that finds the buffer
// full, and may fall anywhere inside a processed block.
package delay
