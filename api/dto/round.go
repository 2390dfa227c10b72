package dto

import "math"

// Round2 rounds a metric to two decimals. Stored metrics stay unrounded;
// rounding happens at the presentation boundary and nowhere earlier.
func Round2(value float64) float64 {
	return math.Round(value*100) / 100
}
