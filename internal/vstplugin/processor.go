// Package vstplugin adapts the FDN to the vst3go processor contract.
//
// The adapter is free of cgo so it can be tested on its own; cmd/fdnvst
// registers it with the VST3 bridge.
package vstplugin

import (
	"errors"
	"fmt"
	"sync/atomic"

	"github.com/cwbudde/algo-fdn/dsp/core"
	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
	"github.com/justyntemme/vst3go/pkg/framework/bus"
	"github.com/justyntemme/vst3go/pkg/framework/param"
	"github.com/justyntemme/vst3go/pkg/framework/plugin"
	"github.com/justyntemme/vst3go/pkg/framework/process"
)

const (
	PluginID       = "com.cwbudde.fdn"
	PluginName     = "FDN"
	PluginVersion  = "1.0.0"
	PluginVendor   = "algo-fdn"
	PluginCategory = "Fx|Reverb"

	// DesignFrameSize fixes the engine's compensation delays independently
	// of the block size the host negotiates.
	DesignFrameSize = 512

	defaultMaxBlock = 1024
	tailFloorDB     = -90.0
)

var (
	ErrInvalidBlockSize = errors.New("vstplugin: max block size must be positive")
	ErrBlockTooLarge    = errors.New("vstplugin: block exceeds negotiated max size")
	ErrNoAudioBus       = errors.New("vstplugin: missing audio channel")
)

// Info returns the plugin metadata.
func Info() plugin.Info {
	return plugin.Info{
		ID:       PluginID,
		Name:     PluginName,
		Version:  PluginVersion,
		Vendor:   PluginVendor,
		Category: PluginCategory,
	}
}

// Processor runs a mono FDN inside a plugin host.
type Processor struct {
	params *param.Registry
	buses  *bus.Configuration
	opts   []reverb.FDNOption

	fdn        *reverb.FDN
	sampleRate float64
	in, out    []float64

	failures atomic.Uint64
}

// New creates a processor ready for blocks of up to 1024 samples until the
// host calls Initialize.
func New(opts ...reverb.FDNOption) (*Processor, error) {
	p := &Processor{
		params: param.NewRegistry(),
		buses:  bus.NewEffectMono(),
		opts:   opts,
	}
	if err := p.allocate(defaultMaxBlock); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *Processor) allocate(maxBlock int) error {
	opts := append([]reverb.FDNOption{reverb.WithMaxFrameSize(maxBlock)}, p.opts...)
	fdn, err := reverb.NewFDN(min(DesignFrameSize, maxBlock), opts...)
	if err != nil {
		return fmt.Errorf("vstplugin: %w", err)
	}

	p.fdn = fdn
	p.in = make([]float64, maxBlock)
	p.out = make([]float64, maxBlock)
	return nil
}

// Initialize sizes the engine and scratch buffers for the host's largest
// block. The engine state starts silent.
func (p *Processor) Initialize(sampleRate float64, maxBlockSize int32) error {
	if maxBlockSize <= 0 {
		return fmt.Errorf("%w: %d", ErrInvalidBlockSize, maxBlockSize)
	}
	p.sampleRate = sampleRate
	return p.allocate(int(maxBlockSize))
}

// ProcessAudio runs one single-precision block from the first input channel
// to the first output channel. On any contract error the output is
// silenced and Failures is incremented.
func (p *Processor) ProcessAudio(ctx *process.Context) {
	n := ctx.NumSamples()
	if n == 0 {
		return
	}

	if n > len(p.in) || len(ctx.Input) == 0 || len(ctx.Output) == 0 ||
		len(ctx.Input[0]) < n || len(ctx.Output[0]) < n {
		p.failures.Add(1)
		ctx.Clear()
		return
	}

	in, out := p.in[:n], p.out[:n]
	core.Widen(in, ctx.Input[0][:n])

	if err := p.ProcessDouble(out, in); err != nil {
		ctx.Clear()
		return
	}

	core.Narrow(ctx.Output[0][:n], out)
}

// ProcessDouble runs one double-precision block. The engine is resized to
// len(in) first, so every call may use a different block length up to the
// negotiated maximum.
func (p *Processor) ProcessDouble(out, in []float64) error {
	if len(in) > len(p.in) {
		p.failures.Add(1)
		clear(out)
		return fmt.Errorf("%w: %d > %d", ErrBlockTooLarge, len(in), len(p.in))
	}

	if err := p.fdn.UpdateFrameSize(len(in)); err != nil {
		p.failures.Add(1)
		clear(out)
		return err
	}
	if err := p.fdn.Process(out, in); err != nil {
		p.failures.Add(1)
		clear(out)
		return err
	}
	return nil
}

// GetParameters returns the (empty) parameter registry.
func (p *Processor) GetParameters() *param.Registry {
	return p.params
}

// GetBuses returns the mono in / mono out bus layout.
func (p *Processor) GetBuses() *bus.Configuration {
	return p.buses
}

// SetActive clears the reverb state when processing stops.
func (p *Processor) SetActive(active bool) error {
	if !active {
		p.fdn.Reset()
	}
	return nil
}

// GetLatencySamples reports zero: the output is fully wet, so the shortest
// delay path is the reverb's pre-delay rather than processing latency.
func (p *Processor) GetLatencySamples() int32 {
	return 0
}

// GetTailSamples reports how long the reverb rings after silence.
func (p *Processor) GetTailSamples() int32 {
	return int32(p.fdn.TailSamples(tailFloorDB))
}

// SampleRate returns the rate passed to Initialize.
func (p *Processor) SampleRate() float64 { return p.sampleRate }

// Failures returns the number of blocks rejected since creation.
func (p *Processor) Failures() uint64 { return p.failures.Load() }
