package harness

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
)

var r2 = 1 / math.Sqrt2

func bell() linalg.Vector {
	return linalg.Vector{complex(r2, 0), 0, 0, complex(r2, 0)}
}

func amp(re, im float64) *Amplitude {
	a := Amplitude(complex(re, im))
	return &a
}

func ctx2() AssertionContext {
	return AssertionContext{Qubits: 2, Tolerance: 1e-9, Budget: qerr.Unlimited()}
}

func TestEvaluateAssertions_AllPass(t *testing.T) {
	assertions := []Assertion{
		{Type: AssertAmplitudes, Amplitudes: []Amplitude{Amplitude(complex(r2, 0)), 0, 0, Amplitude(complex(r2, 0))}},
		{Type: AssertAmplitude, Index: 3, Value: amp(r2, 0)},
		{Type: AssertProbabilities, Probabilities: []float64{0.5, 0, 0, 0.5}},
		{Type: AssertNormalized},
		{Type: AssertExpectation, Observable: "X", Qubit: 1, Value: amp(0, 0)},
		{Type: AssertSampleSupport, Shots: 200, Seed: 9, Outcomes: []int{0, 3}},
	}

	errs := EvaluateAssertions(bell(), assertions, ctx2())
	assert.Empty(t, errs)
}

func TestEvaluateAssertions_SomeFail(t *testing.T) {
	assertions := []Assertion{
		{Type: AssertNormalized},
		{Type: AssertAmplitude, Index: 1, Value: amp(r2, 0)},
		{Type: AssertProbabilities, Probabilities: []float64{1, 0, 0, 0}},
	}

	errs := EvaluateAssertions(bell(), assertions, ctx2())
	require.Len(t, errs, 2)
	assert.Contains(t, errs[0], "assertions[1]")
	assert.Contains(t, errs[0], "amplitude[1]")
	assert.Contains(t, errs[1], "assertions[2]")
	assert.Contains(t, errs[1], "P(0)")
}

func TestEvaluateAssertions_UnknownType(t *testing.T) {
	errs := EvaluateAssertions(bell(), []Assertion{{Type: "trace_order"}}, ctx2())
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "unknown assertion type: trace_order")
}

func TestAssertAmplitudes_Mismatch(t *testing.T) {
	err := assertAmplitudes(bell(), Assertion{Amplitudes: []Amplitude{1, 0, 0, 0}}, 1e-9)
	require.Error(t, err)

	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertAmplitudes, ae.Type)
	assert.Contains(t, ae.Expected, "amplitude[0]")

	err = assertAmplitudes(bell(), Assertion{Amplitudes: []Amplitude{1, 0}}, 1e-9)
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "2 amplitudes", ae.Expected)
	assert.Equal(t, "4 amplitudes", ae.Actual)
}

func TestAssertAmplitudes_RespectsTolerance(t *testing.T) {
	want := Assertion{Amplitudes: []Amplitude{Amplitude(complex(r2+1e-6, 0)), 0, 0, Amplitude(complex(r2, 0))}}
	assert.Error(t, assertAmplitudes(bell(), want, 1e-9))
	assert.NoError(t, assertAmplitudes(bell(), want, 1e-5))
}

func TestAssertAmplitude_ComplexValue(t *testing.T) {
	vec := linalg.Vector{complex(r2, 0), complex(0, -r2)}
	assert.NoError(t, assertAmplitude(vec, Assertion{Index: 1, Value: amp(0, -r2)}, 1e-9))
	assert.Error(t, assertAmplitude(vec, Assertion{Index: 1, Value: amp(0, r2)}, 1e-9))
	assert.Error(t, assertAmplitude(vec, Assertion{Index: 2, Value: amp(0, 0)}, 1e-9))
}

func TestAssertNormalized_Fails(t *testing.T) {
	err := assertNormalized(linalg.Vector{1, 1}, 1e-9)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, "sum |a|^2 = 2", ae.Actual)
}

func TestAssertExpectation(t *testing.T) {
	// |10> has <X_0> = 0 and <H_0> = -1/sqrt2.
	vec := linalg.Vector{0, 0, 1, 0}
	actx := ctx2()

	assert.NoError(t, assertExpectation(vec, Assertion{Observable: "x", Qubit: 0, Value: amp(0, 0)}, actx))
	assert.NoError(t, assertExpectation(vec, Assertion{Observable: "H", Qubit: 0, Value: amp(-r2, 0)}, actx))
	assert.NoError(t, assertExpectation(vec, Assertion{Observable: "H", Qubit: 1, Value: amp(r2, 0)}, actx))

	err := assertExpectation(vec, Assertion{Observable: "H", Qubit: 0, Value: amp(r2, 0)}, actx)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertExpectation, ae.Type)
	assert.Contains(t, ae.Expected, "<H_0>")
}

func TestAssertExpectation_BudgetRefusal(t *testing.T) {
	actx := ctx2()
	actx.Budget = qerr.Budget{LimitBytes: 64}
	err := assertExpectation(bell(), Assertion{Observable: "X", Qubit: 0, Value: amp(0, 0)}, actx)
	require.Error(t, err)
	assert.True(t, qerr.IsResourceExhausted(err))
}

func TestAssertSampleSupport(t *testing.T) {
	a := Assertion{Shots: 500, Seed: 42, Outcomes: []int{0, 3}}
	assert.NoError(t, assertSampleSupport(bell(), a, 1e-9))

	a.Outcomes = []int{0}
	err := assertSampleSupport(bell(), a, 1e-9)
	var ae *AssertionError
	require.ErrorAs(t, err, &ae)
	assert.Equal(t, AssertSampleSupport, ae.Type)
	assert.Contains(t, ae.Actual, "produced 3")
}

func TestAssertSampleSupport_UnnormalizedState(t *testing.T) {
	err := assertSampleSupport(linalg.Vector{1, 1}, Assertion{Shots: 1, Outcomes: []int{0}}, 1e-9)
	require.Error(t, err)
	assert.True(t, qerr.IsInvalidState(err))
}

func TestAssertionError_ErrorFormat(t *testing.T) {
	err := &AssertionError{
		Type:     AssertAmplitude,
		Expected: "amplitude[0] = (1+0i)",
		Actual:   "amplitude[0] = (0+0i)",
	}

	msg := err.Error()
	assert.Contains(t, msg, "Assertion failed: amplitude")
	assert.Contains(t, msg, "Expected: amplitude[0] = (1+0i)")
	assert.Contains(t, msg, "Actual: amplitude[0] = (0+0i)")
}
