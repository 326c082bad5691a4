package ir

import (
	"math"
	"strconv"
)

// AmplitudePrecision is the number of decimals used when amplitudes are
// rendered for hashing and golden snapshots.
const AmplitudePrecision = 9

// FormatAmplitude renders a complex amplitude as "re+imi" with prec decimals.
// Negative zero is printed as zero so that results differing only in the sign
// of a vanishing component format identically.
func FormatAmplitude(a complex128, prec int) string {
	re := clean(real(a), prec)
	im := clean(imag(a), prec)
	s := strconv.FormatFloat(re, 'f', prec, 64)
	if im >= 0 {
		s += "+"
	}
	return s + strconv.FormatFloat(im, 'f', prec, 64) + "i"
}

// FormatAmplitudes applies FormatAmplitude to every element.
func FormatAmplitudes(v []complex128, prec int) []string {
	out := make([]string, len(v))
	for i, a := range v {
		out[i] = FormatAmplitude(a, prec)
	}
	return out
}

// FormatProbability renders a probability with prec decimals.
func FormatProbability(p float64, prec int) string {
	return strconv.FormatFloat(clean(p, prec), 'f', prec, 64)
}

// clean rounds x to prec decimals and folds negative zero to zero.
func clean(x float64, prec int) float64 {
	scale := math.Pow(10, float64(prec))
	r := math.Round(x*scale) / scale
	if r == 0 {
		return 0
	}
	return r
}
