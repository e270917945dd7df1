//go:build vst3

// Command fdnvst builds the FDN as a VST3 plugin.
//
// The vst3go C bridge sources must be on the include path:
//
//	CGO_CFLAGS="-I$VST3GO_DIR -I$VST3GO_DIR/include" \
//		go build -tags vst3 -buildmode=c-shared -o FDN.so ./cmd/fdnvst
package main

// #include "bridge/bridge.c"
// #include "bridge/component.c"
import "C"

import (
	"github.com/cwbudde/algo-fdn/internal/vstplugin"
	"github.com/justyntemme/vst3go/pkg/framework/plugin"
	vst3plugin "github.com/justyntemme/vst3go/pkg/plugin"
)

type fdnPlugin struct{}

func (fdnPlugin) GetInfo() plugin.Info {
	return vstplugin.Info()
}

func (fdnPlugin) CreateProcessor() vst3plugin.Processor {
	p, err := vstplugin.New()
	if err != nil {
		// Default settings are always valid.
		panic(err)
	}
	return p
}

func init() {
	vst3plugin.SetFactoryInfo(vst3plugin.FactoryInfo{
		Vendor: vstplugin.PluginVendor,
		URL:    "https://github.com/cwbudde/algo-fdn",
	})

	vst3plugin.Register(fdnPlugin{})
}

// Required for c-shared build mode.
func main() {}
