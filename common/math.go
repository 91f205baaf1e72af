package common

import "math"

// Clamp01 clamps v into [0, 1]. NaN maps to 0.
func Clamp01(v float32) float32 {
	if !(v > 0) {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// RoundToInt rounds to the nearest integer, halves going to the even neighbor.
func RoundToInt(v float32) int {
	return int(math.RoundToEven(float64(v)))
}

func AbsInt(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
