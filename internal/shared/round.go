package shared

import "math"

// Round rounds v to the given number of decimal places, half away from zero
func Round(v float64, places int) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return v
	}
	p := math.Pow(10, float64(places))
	return math.Round(v*p) / p
}

// Percent returns 100*part/whole rounded to places, or 0 when whole is zero
func Percent(part, whole float64, places int) float64 {
	if whole == 0 {
		return 0
	}
	return Round(100*part/whole, places)
}
