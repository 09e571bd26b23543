package shared

import (
	"math"

	"golang.org/x/exp/constraints"
)

// Round rounds v to the given number of decimal places, halves away from zero.
func Round[F constraints.Float](v F, places int) F {
	scale := math.Pow10(places)
	return F(math.Round(float64(v)*scale) / scale)
}

// Percent returns part/whole*100, or 0 when whole is zero.
func Percent(part, whole int) float64 {
	if whole == 0 {
		return 0
	}
	return float64(part) / float64(whole) * 100
}
