package harness

import (
	"fmt"
	"math"
	"math/cmplx"
	"math/rand/v2"
	"strings"

	"github.com/roach88/qsim/internal/dense"
	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/measure"
	"github.com/roach88/qsim/internal/qerr"
)

// AssertionError is returned when an assertion fails.
type AssertionError struct {
	Type     string // Assertion type for categorization
	Expected string // Human-readable expected outcome
	Actual   string // Human-readable actual outcome
}

// Error implements the error interface.
func (e *AssertionError) Error() string {
	var buf strings.Builder
	fmt.Fprintf(&buf, "Assertion failed: %s\n", e.Type)
	fmt.Fprintf(&buf, "  Expected: %s\n", e.Expected)
	fmt.Fprintf(&buf, "  Actual: %s", e.Actual)
	return buf.String()
}

// AssertionContext carries what assertions need besides the vector.
type AssertionContext struct {
	Qubits    int
	Tolerance float64
	Budget    qerr.Budget
}

// EvaluateAssertions checks every assertion against vec and returns the
// failure messages. An empty slice means all assertions held.
func EvaluateAssertions(vec linalg.Vector, assertions []Assertion, actx AssertionContext) []string {
	errs := []string{}
	for i, a := range assertions {
		if err := evaluateAssertion(vec, a, actx); err != nil {
			errs = append(errs, fmt.Sprintf("assertions[%d]: %v", i, err))
		}
	}
	return errs
}

func evaluateAssertion(vec linalg.Vector, a Assertion, actx AssertionContext) error {
	switch a.Type {
	case AssertAmplitudes:
		return assertAmplitudes(vec, a, actx.Tolerance)
	case AssertAmplitude:
		return assertAmplitude(vec, a, actx.Tolerance)
	case AssertProbabilities:
		return assertProbabilities(vec, a, actx.Tolerance)
	case AssertNormalized:
		return assertNormalized(vec, actx.Tolerance)
	case AssertExpectation:
		return assertExpectation(vec, a, actx)
	case AssertSampleSupport:
		return assertSampleSupport(vec, a, actx.Tolerance)
	default:
		return fmt.Errorf("unknown assertion type: %s", a.Type)
	}
}

func assertAmplitudes(vec linalg.Vector, a Assertion, tol float64) error {
	if len(a.Amplitudes) != len(vec) {
		return &AssertionError{
			Type:     AssertAmplitudes,
			Expected: fmt.Sprintf("%d amplitudes", len(a.Amplitudes)),
			Actual:   fmt.Sprintf("%d amplitudes", len(vec)),
		}
	}
	for i, want := range a.Amplitudes {
		if cmplx.Abs(complex128(want)-vec[i]) > tol {
			return &AssertionError{
				Type:     AssertAmplitudes,
				Expected: fmt.Sprintf("amplitude[%d] = %v", i, complex128(want)),
				Actual:   fmt.Sprintf("amplitude[%d] = %v", i, vec[i]),
			}
		}
	}
	return nil
}

func assertAmplitude(vec linalg.Vector, a Assertion, tol float64) error {
	if a.Index < 0 || a.Index >= len(vec) || a.Value == nil {
		return fmt.Errorf("amplitude assertion needs an index in range and a value")
	}
	want := complex128(*a.Value)
	if got := vec[a.Index]; cmplx.Abs(want-got) > tol {
		return &AssertionError{
			Type:     AssertAmplitude,
			Expected: fmt.Sprintf("amplitude[%d] = %v", a.Index, want),
			Actual:   fmt.Sprintf("amplitude[%d] = %v", a.Index, got),
		}
	}
	return nil
}

func assertProbabilities(vec linalg.Vector, a Assertion, tol float64) error {
	probs := measure.Probabilities(vec)
	if len(a.Probabilities) != len(probs) {
		return &AssertionError{
			Type:     AssertProbabilities,
			Expected: fmt.Sprintf("%d probabilities", len(a.Probabilities)),
			Actual:   fmt.Sprintf("%d probabilities", len(probs)),
		}
	}
	for i, want := range a.Probabilities {
		if math.Abs(want-probs[i]) > tol {
			return &AssertionError{
				Type:     AssertProbabilities,
				Expected: fmt.Sprintf("P(%d) = %g", i, want),
				Actual:   fmt.Sprintf("P(%d) = %g", i, probs[i]),
			}
		}
	}
	return nil
}

func assertNormalized(vec linalg.Vector, tol float64) error {
	if norm := vec.NormSquared(); math.Abs(norm-1) > tol {
		return &AssertionError{
			Type:     AssertNormalized,
			Expected: "sum |a|^2 = 1",
			Actual:   fmt.Sprintf("sum |a|^2 = %g", norm),
		}
	}
	return nil
}

// assertExpectation builds the observable on the full register with the
// dense factor fold and compares <vec|O|vec>.
func assertExpectation(vec linalg.Vector, a Assertion, actx AssertionContext) error {
	g, err := gates.Lookup(a.Observable)
	if err != nil {
		return err
	}
	op, err := dense.Applicator{Budget: actx.Budget}.BuildOperator(actx.Qubits, map[int]gates.Gate{a.Qubit: g})
	if err != nil {
		return err
	}
	got, err := measure.ExpectationReal(vec, op, actx.Tolerance)
	if err != nil {
		return err
	}
	want := real(complex128(*a.Value))
	if math.Abs(want-got) > actx.Tolerance {
		return &AssertionError{
			Type:     AssertExpectation,
			Expected: fmt.Sprintf("<%s_%d> = %g", g.Name, a.Qubit, want),
			Actual:   fmt.Sprintf("<%s_%d> = %g", g.Name, a.Qubit, got),
		}
	}
	return nil
}

// assertSampleSupport draws shots outcomes with a fixed seed and checks that
// every outcome is in the allowed set.
func assertSampleSupport(vec linalg.Vector, a Assertion, tol float64) error {
	sampler := measure.Sampler{Source: rand.NewPCG(a.Seed, 0), Tolerance: tol}
	samples, err := sampler.Sample(vec, a.Shots)
	if err != nil {
		return err
	}
	allowed := make(map[int]bool, len(a.Outcomes))
	for _, o := range a.Outcomes {
		allowed[o] = true
	}
	for i, s := range samples {
		if !allowed[s] {
			return &AssertionError{
				Type:     AssertSampleSupport,
				Expected: fmt.Sprintf("outcomes in %v", a.Outcomes),
				Actual:   fmt.Sprintf("shot %d produced %d", i, s),
			}
		}
	}
	return nil
}
