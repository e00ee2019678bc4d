package trajectory

import (
	"math"

	"gonum.org/v1/gonum/num/quat"
)

func lerp(a, b, t float64) float64 {
	return a + t*(b-a)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// at reads s[i], treating missing entries as zero. Goal messages may omit
// velocity or acceleration fields entirely.
func at(s []float64, i int) float64 {
	if i < len(s) {
		return s[i]
	}
	return 0
}

// setAt writes s[i] if the slot exists; outputs only carry the fields the
// caller allocated.
func setAt(s []float64, i int, v float64) {
	if i < len(s) {
		s[i] = v
	}
}

func quatDot(a, b quat.Number) float64 {
	return a.Real*b.Real + a.Imag*b.Imag + a.Jmag*b.Jmag + a.Kmag*b.Kmag
}

// quatNormalize rescales q to unit length, guarding the zero quaternion.
func quatNormalize(q quat.Number) quat.Number {
	n := quat.Abs(q)
	if n == 0 || math.IsNaN(n) {
		return quat.Number{Real: 1}
	}
	return quat.Scale(1/n, q)
}
