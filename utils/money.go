package utils

import "math"

// Round2 rounds x to currency precision (2 decimal places, half away
// from zero). Totals apply it exactly once, at the final sum.
func Round2(x float64) float64 {
	return math.Round(x*100) / 100
}
