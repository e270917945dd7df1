// Command fdnplay plays a WAV file through the feedback delay network on the
// default audio device.
//
// Usage:
//
//	fdnplay [flags] INPUT
//
// Multichannel input is mixed down to mono. The device decides how many
// samples it pulls at a time; each pull is processed as one engine block.
// Interrupt with Ctrl-C to stop early.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdn/internal/playback"
	"github.com/cwbudde/algo-fdn/internal/wavio"
	"github.com/sirupsen/logrus"
)

func main() {
	block := flag.Int("block", 512, "initial engine block size; also fixes the compensation delays")
	maxBlock := flag.Int("max-block", 8192, "largest device pull served without allocating")
	gain := flag.Float64("gain", 0.65, "feedback gain (|gain|*sqrt(2) must stay below 1)")
	tail := flag.Float64("tail", 3.0, "seconds of reverb tail after the input ends")
	bufferSize := flag.Duration("buffer", 50*time.Millisecond, "device buffer length")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: fdnplay [flags] INPUT\n\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 1 {
		flag.Usage()
		os.Exit(2)
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	clip, err := wavio.ReadFile(flag.Arg(0))
	if err != nil {
		die("failed to read input: %v", err)
	}

	fdn, err := reverb.NewFDN(*block, reverb.WithFeedbackGain(*gain), reverb.WithMaxFrameSize(*maxBlock))
	if err != nil {
		die("invalid engine settings: %v", err)
	}

	player, err := playback.NewPlayer(clip.Format.SampleRate, *bufferSize)
	if err != nil {
		die("%v", err)
	}

	mono := downmix(clip)
	stream := playback.NewStream(fdn, mono, int(*tail*float64(clip.Format.SampleRate)))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	logrus.WithFields(logrus.Fields{
		"input":    flag.Arg(0),
		"duration": time.Duration(float64(len(mono)) / float64(clip.Format.SampleRate) * float64(time.Second)).Round(time.Millisecond),
		"latency":  fdn.Latency(),
	}).Info("playing")

	if err := player.Play(ctx, stream); err != nil && ctx.Err() == nil {
		die("playback failed: %v", err)
	}
}

func downmix(clip *wavio.Clip) []float64 {
	ch := clip.Format.NumChannels
	if ch == 1 {
		return clip.Samples
	}

	mono := make([]float64, clip.Frames())
	for i := range mono {
		var sum float64
		for _, v := range clip.Samples[i*ch : (i+1)*ch] {
			sum += v
		}
		mono[i] = sum / float64(ch)
	}
	return mono
}

func die(format string, args ...any) {
	logrus.Fatalf(format, args...)
}
