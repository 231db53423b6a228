package services

import "math"

// Cosine computes cosine similarity between two float32 vectors. Mismatched
// lengths and zero-norm vectors both score 0 rather than erroring: the core
// scoring path must stay total for any string input.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		x := float64(a[i])
		y := float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}

	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}
	return dot / den
}

func cosine64(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0
	}

	var dot, na, nb float64
	for i := 0; i < len(a); i++ {
		dot += a[i] * b[i]
		na += a[i] * a[i]
		nb += b[i] * b[i]
	}

	den := math.Sqrt(na) * math.Sqrt(nb)
	if den == 0 {
		return 0
	}
	return dot / den
}

func round3(v float64) float64 {
	return math.Round(v*1000) / 1000
}
