package sampling

import "math"

// RoundAwayFromZero rounds x to the nearest integer with ties away from
// zero (C99 round semantics).
func RoundAwayFromZero(x float64) int64 {
	if math.IsNaN(x) {
		return 0
	}
	if x >= 0 {
		return int64(math.Floor(x + 0.5))
	}
	return -int64(math.Floor(-x + 0.5))
}
