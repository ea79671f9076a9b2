package mathutil

// Clamp limits v to [lo, hi].
func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// Saturate clamps v to [0, 1].
func Saturate(v float64) float64 {
	return Clamp(v, 0, 1)
}

// Lerp interpolates a toward b by t.
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
