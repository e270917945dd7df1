// Package playback plays audio through the FDN in real time. The audio
// device pulls blocks of whatever size it likes, and each pull becomes one
// engine call of that length.
package playback

import (
	"encoding/binary"
	"fmt"
	"io"
	"math"
	"sync"
)

const bytesPerSample = 4 // float32 little endian, mono

// Engine is the block processor driven by a Stream.
type Engine interface {
	UpdateFrameSize(n int) error
	Process(out, in []float64) error
}

// Stream is an io.Reader producing float32 little-endian mono samples.
// Each Read resizes the engine to the requested block length, processes the
// next block of source material and encodes the result. After the source is
// exhausted, tail samples of silence keep the reverb ringing before io.EOF.
type Stream struct {
	mu     sync.Mutex
	engine Engine
	src    []float64
	pos    int
	tail   int
	in     []float64
	out    []float64
	err    error
}

// NewStream creates a stream over src followed by tail silent samples.
func NewStream(engine Engine, src []float64, tail int) *Stream {
	return &Stream{
		engine: engine,
		src:    src,
		tail:   max(tail, 0),
	}
}

// Remaining returns the number of samples not yet delivered.
func (s *Stream) Remaining() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.remaining()
}

// Err returns the first engine error encountered, if any.
func (s *Stream) Err() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Stream) remaining() int {
	return len(s.src) - s.pos + s.tail
}

// Read implements io.Reader.
func (s *Stream) Read(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.err != nil {
		return 0, s.err
	}

	left := s.remaining()
	if left == 0 {
		return 0, io.EOF
	}

	n := min(len(p)/bytesPerSample, left)
	if n == 0 {
		return 0, nil
	}

	if cap(s.in) < n {
		s.in = make([]float64, n)
		s.out = make([]float64, n)
	}
	in, out := s.in[:n], s.out[:n]

	k := copy(in, s.src[s.pos:])
	clear(in[k:])
	s.pos += k
	s.tail -= n - k

	if err := s.engine.UpdateFrameSize(n); err != nil {
		s.err = fmt.Errorf("playback: resize to %d: %w", n, err)
		return 0, s.err
	}
	if err := s.engine.Process(out, in); err != nil {
		s.err = fmt.Errorf("playback: process: %w", err)
		return 0, s.err
	}

	for i, v := range out {
		binary.LittleEndian.PutUint32(p[i*bytesPerSample:], math.Float32bits(float32(v)))
	}

	return n * bytesPerSample, nil
}
