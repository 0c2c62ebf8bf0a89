package response

import (
	"fmt"
	"math"

	"github.com/cwbudde/algo-freqresp/dsp/core"
)

// MaxDiffDB returns the largest absolute difference between two equally long
// curves, expressed in dB (20*log10). Equal entries, including matching
// infinities, contribute nothing, so identical curves give -Inf. A NaN entry
// makes the result NaN.
func MaxDiffDB(a, b []float64) (float64, error) {
	if len(a) != len(b) {
		return 0, fmt.Errorf("response: curve length mismatch: %d != %d", len(a), len(b))
	}

	maxDiff := 0.0
	for i := range a {
		if a[i] == b[i] {
			continue
		}
		maxDiff = math.Max(maxDiff, math.Abs(a[i]-b[i]))
	}

	return core.LinearToDB(maxDiff), nil
}
