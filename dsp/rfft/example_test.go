package rfft_test

import (
	"fmt"

	"github.com/cwbudde/algo-freqresp/dsp/rfft"
)

func ExampleNewPlan() {
	plan, err := rfft.NewPlan(rfft.BackendAlgoFFT, 4)
	if err != nil {
		panic(err)
	}

	re := make([]float64, 2)
	im := make([]float64, 2)
	if err := plan.Forward(re, im, []float64{2, 0, 0, 0}); err != nil {
		panic(err)
	}

	fmt.Printf("DC=%.0f Nyquist=%.0f\n", re[0], im[0])
	// Output:
	// DC=2 Nyquist=2
}
