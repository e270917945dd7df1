// Package buffer provides a resizable float64 sample buffer whose length
// tracks a host block size.
//
// Resize preserves the leading samples, zero-fills growth and truncates on
// shrink. Reserve pre-allocates capacity so that later resizes up to that
// size never allocate, which keeps real-time callbacks allocation free.
package buffer
