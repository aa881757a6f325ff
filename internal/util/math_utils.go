package util

import "math"

// Percentage returns part/total as a whole percentage, rounded half up.
// A zero total yields 0.
func Percentage(part, total int) int {
	if total <= 0 {
		return 0
	}
	return int(math.Round(float64(part) / float64(total) * 100))
}
