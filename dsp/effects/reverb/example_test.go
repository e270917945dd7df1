package reverb_test

import (
	"fmt"

	"github.com/cwbudde/algo-fdn/dsp/effects/reverb"
)

func ExampleFDN() {
	const frame = 256

	f, err := reverb.NewFDN(frame)
	if err != nil {
		panic(err)
	}

	in := make([]float64, frame)
	out := make([]float64, frame)
	in[0] = 1

	first := -1
	for block := 0; first < 0; block++ {
		if err := f.Process(out, in); err != nil {
			panic(err)
		}
		in[0] = 0
		for i, v := range out {
			if v != 0 {
				first = block*frame + i
				fmt.Printf("first output at sample %d: %.2f\n", first, v)
				break
			}
		}
	}

	// Output:
	// first output at sample 800: 1.00
}
