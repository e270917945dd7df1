package playback

import (
	"context"
	"fmt"
	"time"

	"github.com/ebitengine/oto/v3"
	"github.com/sirupsen/logrus"
)

const pollInterval = 50 * time.Millisecond

// Player owns the audio device. Only one Player may exist per process.
type Player struct {
	ctx        *oto.Context
	sampleRate int
}

// NewPlayer opens a mono float32 output at sampleRate. bufferSize sets the
// device buffer length; zero selects the driver default.
func NewPlayer(sampleRate int, bufferSize time.Duration) (*Player, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatFloat32LE,
		BufferSize:   bufferSize,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("playback: open device: %w", err)
	}
	<-ready

	logrus.WithFields(logrus.Fields{
		"sample_rate": sampleRate,
		"buffer":      bufferSize,
	}).Debug("audio device ready")

	return &Player{ctx: ctx, sampleRate: sampleRate}, nil
}

// Play blocks until s is drained, the engine fails or ctx is cancelled.
func (p *Player) Play(ctx context.Context, s *Stream) error {
	player := p.ctx.NewPlayer(s)
	defer player.Close()

	log := logrus.WithFields(logrus.Fields{
		"function": "Play",
		"samples":  s.Remaining(),
	})
	log.Info("playback started")
	player.Play()

	ticker := time.NewTicker(pollInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			player.Pause()
			log.WithField("remaining", s.Remaining()).Info("playback cancelled")
			return ctx.Err()
		case <-ticker.C:
			if err := s.Err(); err != nil {
				return err
			}
			if !player.IsPlaying() {
				log.Info("playback finished")
				return player.Err()
			}
		}
	}
}
