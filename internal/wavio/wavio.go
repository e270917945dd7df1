// Package wavio reads and writes WAV files as float64 samples.
//
// Integer PCM (16, 24 and 32 bit, plain or WAVE_FORMAT_EXTENSIBLE) is
// normalised to [-1, 1). 32-bit IEEE float data is passed through unscaled.
package wavio

import (
	"errors"
	"fmt"
	"io"
	"math"
	"os"

	"github.com/go-audio/audio"
	"github.com/go-audio/wav"
)

var (
	ErrInvalidFile       = errors.New("wavio: not a valid WAV file")
	ErrUnsupportedFormat = errors.New("wavio: unsupported sample format")
)

// WAV fmt chunk audio format tags.
const (
	wavFormatPCM        = 1
	wavFormatIEEEFloat  = 3
	wavFormatExtensible = 0xFFFE

	floatBitDepth = 32
)

// Format describes the sample layout of a clip.
type Format struct {
	SampleRate  int
	BitDepth    int
	NumChannels int
	// Float marks 32-bit IEEE float samples; otherwise integer PCM.
	Float bool
}

// Clip holds interleaved samples. Integer PCM is normalised to [-1, 1).
type Clip struct {
	Format  Format
	Samples []float64
}

// Frames returns the number of sample frames in the clip.
func (c *Clip) Frames() int {
	if c.Format.NumChannels <= 0 {
		return 0
	}
	return len(c.Samples) / c.Format.NumChannels
}

func fullScale(bitDepth int) (float64, error) {
	switch bitDepth {
	case 16, 24, 32:
		return math.Ldexp(1, bitDepth-1), nil
	default:
		return 0, fmt.Errorf("%w: %d-bit", ErrUnsupportedFormat, bitDepth)
	}
}

// Read decodes a WAV stream.
func Read(r io.ReadSeeker) (*Clip, error) {
	dec := wav.NewDecoder(r)
	if !dec.IsValidFile() {
		return nil, ErrInvalidFile
	}

	f := Format{
		SampleRate:  int(dec.SampleRate),
		BitDepth:    int(dec.BitDepth),
		NumChannels: int(dec.NumChans),
	}

	var scale float64
	switch dec.WavAudioFormat {
	case wavFormatPCM, wavFormatExtensible:
		s, err := fullScale(f.BitDepth)
		if err != nil {
			return nil, err
		}
		scale = s
	case wavFormatIEEEFloat:
		if f.BitDepth != floatBitDepth {
			return nil, fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, f.BitDepth)
		}
		f.Float = true
	default:
		return nil, fmt.Errorf("%w: audio format %d", ErrUnsupportedFormat, dec.WavAudioFormat)
	}

	buf, err := dec.FullPCMBuffer()
	if err != nil {
		return nil, fmt.Errorf("wavio: decode: %w", err)
	}

	clip := &Clip{Format: f, Samples: make([]float64, len(buf.Data))}
	for i, v := range buf.Data {
		// The decoder returns 32-bit words as sign-extended ints.
		if f.Float {
			clip.Samples[i] = float64(math.Float32frombits(uint32(v)))
			continue
		}
		clip.Samples[i] = float64(v) / scale
	}

	return clip, nil
}

// ReadFile decodes the WAV file at path.
func ReadFile(path string) (*Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	clip, err := Read(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return clip, nil
}

// Write encodes clip in its own format. Integer samples outside the
// representable range are clamped; float samples are written as is.
func Write(w io.WriteSeeker, clip *Clip) error {
	f := clip.Format
	if f.SampleRate <= 0 || f.NumChannels <= 0 {
		return fmt.Errorf("%w: rate=%d channels=%d", ErrUnsupportedFormat, f.SampleRate, f.NumChannels)
	}

	data := make([]int, len(clip.Samples))
	tag := wavFormatPCM

	if f.Float {
		if f.BitDepth != floatBitDepth {
			return fmt.Errorf("%w: %d-bit float", ErrUnsupportedFormat, f.BitDepth)
		}
		tag = wavFormatIEEEFloat
		for i, v := range clip.Samples {
			data[i] = int(int32(math.Float32bits(float32(v))))
		}
	} else {
		scale, err := fullScale(f.BitDepth)
		if err != nil {
			return err
		}
		for i, v := range clip.Samples {
			data[i] = int(math.Max(-scale, math.Min(scale-1, math.Round(v*scale))))
		}
	}

	enc := wav.NewEncoder(w, f.SampleRate, f.BitDepth, f.NumChannels, tag)
	buf := &audio.IntBuffer{
		Format:         &audio.Format{NumChannels: f.NumChannels, SampleRate: f.SampleRate},
		Data:           data,
		SourceBitDepth: f.BitDepth,
	}
	if err := enc.Write(buf); err != nil {
		return fmt.Errorf("wavio: encode: %w", err)
	}

	return enc.Close()
}

// WriteFile encodes clip to a new file at path.
func WriteFile(path string, clip *Clip) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	if err := Write(f, clip); err != nil {
		f.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	return f.Close()
}
