package search

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// relativize rescales v so that comparisons stay meaningful across iterations
// with very different raw ranges. A zero-variance input carries no ordering
// signal and maps to all ones. Otherwise v is standardized; positive entries
// are log-compressed with a floor at 1 and non-positive entries map into
// (0, 1], so every output is strictly positive. The cloning probability
// formula divides by these values and relies on that positivity.
func relativize(v []float64) []float64 {
	out := make([]float64, len(v))
	mean, std := stat.MeanStdDev(v, nil)
	if std == 0 {
		for i := range out {
			out[i] = 1
		}
		return out
	}
	for i, x := range v {
		z := (x - mean) / std
		if z > 0 {
			out[i] = math.Log1p(z) + 1
		} else {
			out[i] = math.Exp(z)
		}
	}
	return out
}
