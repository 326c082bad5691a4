// Package testutil provides deterministic helpers shared by package tests.
package testutil

import (
	"math/cmplx"

	"github.com/stretchr/testify/assert"
)

// TB is the subset of testing.TB the assertion helpers need.
type TB interface {
	Helper()
	Errorf(format string, args ...any)
}

// AssertVectorInDelta fails the test when the vectors differ in length or any
// pair of entries differs by more than delta in modulus.
func AssertVectorInDelta(t TB, expected, actual []complex128, delta float64) bool {
	t.Helper()
	if !assert.Len(t, actual, len(expected)) {
		return false
	}
	ok := true
	for i := range expected {
		if d := cmplx.Abs(expected[i] - actual[i]); d > delta {
			ok = assert.Fail(t, "amplitude mismatch",
				"index %d: expected %v, actual %v (|diff| %.3g > %.3g)", i, expected[i], actual[i], d, delta)
		}
	}
	return ok
}

// AssertNormalized fails the test when Σ|a|² differs from 1 by more than delta.
func AssertNormalized(t TB, v []complex128, delta float64) bool {
	t.Helper()
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return assert.InDelta(t, 1.0, sum, delta, "sum of squared magnitudes")
}
