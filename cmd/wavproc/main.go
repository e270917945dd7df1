// Command wavproc renders a WAV file through the feedback delay network.
//
// Usage:
//
//	wavproc [flags] INPUT OUTPUT
//
// Interleaved channels are processed as a single sample stream, so the
// network's delays count in interleaved samples. The output keeps the
// input's sample rate, bit depth and channel count.
//
// Examples:
//
//	wavproc dry.wav wet.wav
//	wavproc -block 512 -tail 4 dry.wav wet.wav
//	wavproc -ir ir.wav -gain 0.6 dry.wav wet.wav
package main

import (
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
	"github.com/cwbudde/algo-fdn/internal/render"
	"github.com/cwbudde/algo-fdn/internal/wavio"
	"github.com/cwbudde/algo-fdn/measure/ir"
	"github.com/sirupsen/logrus"
	"golang.org/x/term"
)

const (
	irBitDepth = 24
	maxFFTSize = 1 << 16
	decaySteps = 4 // decay report rows per second
)

func main() {
	block := flag.Int("block", 256, "processing block size in samples")
	gain := flag.Float64("gain", 0.65, "feedback gain (|gain|*sqrt(2) must stay below 1)")
	tail := flag.Float64("tail", 2.0, "seconds of silence appended so the reverb can ring out")
	irPath := flag.String("ir", "", "optional path to write the engine's impulse response")
	irSeconds := flag.Float64("ir-seconds", 5.0, "impulse response length in seconds")
	verbose := flag.Bool("v", false, "verbose logging")
	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, "Usage: wavproc [flags] INPUT OUTPUT\n\n")
		fmt.Fprintf(os.Stderr, "Processes a WAV file through a 4-channel feedback delay network.\n\n")
		fmt.Fprintf(os.Stderr, "Flags:\n")
		flag.PrintDefaults()
	}
	flag.Parse()

	if flag.NArg() != 2 {
		flag.Usage()
		os.Exit(2)
	}
	if *block <= 0 {
		die("block must be > 0")
	}
	if *tail < 0 {
		die("tail must be >= 0")
	}
	if *verbose {
		logrus.SetLevel(logrus.DebugLevel)
	}

	inPath, outPath := flag.Arg(0), flag.Arg(1)
	opts := []reverb.FDNOption{reverb.WithFeedbackGain(*gain)}

	clip, err := wavio.ReadFile(inPath)
	if err != nil {
		die("failed to read input: %v", err)
	}

	f := clip.Format
	log := logrus.WithFields(logrus.Fields{
		"input":       inPath,
		"sample_rate": f.SampleRate,
		"channels":    f.NumChannels,
		"bit_depth":   f.BitDepth,
		"frames":      clip.Frames(),
		"block":       *block,
	})
	log.Debug("input loaded")

	cfg := render.Config{
		FrameSize:   *block,
		TailSamples: int(*tail*float64(f.SampleRate)) * f.NumChannels,
		Options:     opts,
	}
	if term.IsTerminal(int(os.Stderr.Fd())) {
		cfg.Progress = progressPrinter()
	}

	start := time.Now()
	out, err := render.Render(clip.Samples, cfg)
	if err != nil {
		die("render failed: %v", err)
	}
	if cfg.Progress != nil {
		fmt.Fprintln(os.Stderr)
	}
	out = out[:len(out)/f.NumChannels*f.NumChannels]

	if err := wavio.WriteFile(outPath, &wavio.Clip{Format: f, Samples: out}); err != nil {
		die("failed to write output: %v", err)
	}

	log.WithFields(logrus.Fields{
		"output":  outPath,
		"samples": len(out),
		"peak_db": fmt.Sprintf("%.2f", core.PeakDB(out)),
		"elapsed": time.Since(start).Round(time.Millisecond),
	}).Info("rendered")

	if *irPath != "" {
		if err := writeImpulseResponse(*irPath, f.SampleRate, *block, *irSeconds, opts); err != nil {
			die("failed to write impulse response: %v", err)
		}
	}
}

func writeImpulseResponse(path string, sampleRate, block int, seconds float64, opts []reverb.FDNOption) error {
	fdn, err := reverb.NewFDN(block, opts...)
	if err != nil {
		return err
	}

	resp, err := ir.Capture(fdn, block, int(seconds*float64(sampleRate)))
	if err != nil {
		return err
	}

	clip := &wavio.Clip{
		Format:  wavio.Format{SampleRate: sampleRate, BitDepth: irBitDepth, NumChannels: 1},
		Samples: resp,
	}
	if err := wavio.WriteFile(path, clip); err != nil {
		return err
	}

	analyzer := ir.NewAnalyzer(float64(sampleRate))
	m, err := analyzer.Analyze(resp)
	if err != nil {
		return err
	}

	spec, err := analyzer.SpectrumStats(resp, fftSizeFor(len(resp)))
	if err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{
		"ir":          path,
		"rt60_s":      fmt.Sprintf("%.3f", m.RT60),
		"edt_s":       fmt.Sprintf("%.3f", m.EDT),
		"c80_db":      fmt.Sprintf("%.2f", m.C80),
		"d50":         fmt.Sprintf("%.3f", m.D50),
		"center_time": fmt.Sprintf("%.3f", m.CenterTime),
		"onset":       m.OnsetIndex,
		"peak_db":     fmt.Sprintf("%.2f", m.PeakDB),
		"spec_peak":   fmt.Sprintf("%.1f Hz", spec.PeakHz),
		"centroid":    fmt.Sprintf("%.1f Hz", spec.CentroidHz),
	}).Info("impulse response analysed")

	return logDecay(analyzer, resp[m.OnsetIndex:], sampleRate/decaySteps)
}

// logDecay reports the energy decay curve and per-block energy at every
// block boundary after the onset.
func logDecay(a *ir.Analyzer, resp []float64, block int) error {
	if block <= 0 {
		return nil
	}

	curve, err := a.SchroederIntegral(resp)
	if err != nil {
		return err
	}
	energy, err := a.BlockEnergy(resp, block)
	if err != nil {
		return err
	}

	for i, e := range energy {
		logrus.WithFields(logrus.Fields{
			"t_s":       fmt.Sprintf("%.2f", float64(i*block)/a.SampleRate),
			"edc_db":    fmt.Sprintf("%.1f", curve[i*block]),
			"energy_db": fmt.Sprintf("%.1f", max(core.LinearPowerToDB(e), core.SilenceDB)),
		}).Info("decay")
	}
	return nil
}

// fftSizeFor returns the largest power of two not above n, capped at
// maxFFTSize.
func fftSizeFor(n int) int {
	size := 2
	for size*2 <= min(n, maxFFTSize) {
		size *= 2
	}
	return size
}

// progressPrinter reports whole-percent steps on stderr.
func progressPrinter() func(done, total int) {
	last := -1
	return func(done, total int) {
		if total <= 0 {
			return
		}
		pct := done * 100 / total
		if pct == last {
			return
		}
		last = pct
		fmt.Fprintf(os.Stderr, "\rrendering %3d%%", pct)
	}
}

func die(format string, args ...any) {
	logrus.Fatalf(format, args...)
}
