package ir_test

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-fdn/measure/ir"
)

func ExampleAnalyzer_Analyze() {
	const sampleRate = 48000.0

	// 60 dB of decay over half a second.
	resp := make([]float64, 48000)
	for i := range resp {
		resp[i] = math.Pow(10, -3*float64(i)/(0.5*sampleRate))
	}

	m, err := ir.NewAnalyzer(sampleRate).Analyze(resp)
	if err != nil {
		fmt.Println(err)
		return
	}

	fmt.Printf("RT60 = %.2f s\n", m.RT60)
	// Output:
	// RT60 = 0.50 s
}
