// Package measure reads flattened amplitude vectors: Born-rule sampling and
// operator expectation values. Nothing here mutates the vector it is given.
//
// Randomness is always injected as a math/rand/v2 Source so callers can fix a
// seed and reproduce an exact outcome sequence.
package measure

import (
	"math"
	"math/rand/v2"

	"gonum.org/v1/gonum/stat/distuv"

	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
)

// DefaultTolerance bounds |Σ|a|² - 1| for a vector to count as normalized.
const DefaultTolerance = 1e-9

// Probabilities returns |a_i|² for every amplitude.
func Probabilities(v linalg.Vector) []float64 {
	p := make([]float64, len(v))
	for i, a := range v {
		p[i] = real(a)*real(a) + imag(a)*imag(a)
	}
	return p
}

// MaxShots is the largest draw count Sample and Counts accept.
const MaxShots = 1 << 30

// intBytes is the size of one recorded outcome.
const intBytes = 8

// Sampler draws basis outcomes from a state vector.
type Sampler struct {
	// Source drives every draw. It must not be nil.
	Source rand.Source

	// Tolerance is the normalization slack; zero means DefaultTolerance.
	Tolerance float64

	// Budget bounds the outcome slice Sample allocates.
	Budget qerr.Budget
}

// Sample draws k independent basis indices with probability |a_i|².
//
// An unnormalized vector fails with INVALID_STATE; it is never renormalized.
// A k whose outcome slice would exceed the budget fails with
// RESOURCE_EXHAUSTED before anything is allocated.
func (s Sampler) Sample(v linalg.Vector, k int) ([]int, error) {
	const op = "measure.Sample"
	probs, err := s.prepare(op, v, k)
	if err != nil {
		return nil, err
	}
	if err := s.Budget.Reserve(op, int64(k)*intBytes); err != nil {
		return nil, err
	}

	out := make([]int, k)
	if k == 0 {
		return out, nil
	}
	dist := distuv.NewCategorical(probs, s.Source)
	for i := range out {
		out[i] = int(dist.Rand())
	}
	return out, nil
}

// Counts draws k outcomes like Sample but only keeps how often each basis
// index occurred, so memory stays at one counter per amplitude. For the same
// source state it yields Histogram(Sample(v, k), len(v)).
func (s Sampler) Counts(v linalg.Vector, k int) ([]int, error) {
	const op = "measure.Counts"
	probs, err := s.prepare(op, v, k)
	if err != nil {
		return nil, err
	}

	counts := make([]int, len(v))
	if k == 0 {
		return counts, nil
	}
	dist := distuv.NewCategorical(probs, s.Source)
	for i := 0; i < k; i++ {
		counts[int(dist.Rand())]++
	}
	return counts, nil
}

// prepare validates the arguments shared by Sample and Counts and returns the
// outcome probabilities.
func (s Sampler) prepare(op string, v linalg.Vector, k int) ([]float64, error) {
	if s.Source == nil {
		return nil, qerr.InvalidArgument(op, "nil random source")
	}
	if k < 0 {
		return nil, qerr.InvalidArgument(op, "sample count must be non-negative").With("k", k)
	}
	if k > MaxShots {
		return nil, qerr.ResourceExhausted(op, "sample count exceeds limit").
			With("k", k).With("max", MaxShots)
	}
	if len(v) == 0 {
		return nil, qerr.InvalidState(op, "empty state vector")
	}

	probs := Probabilities(v)
	var total float64
	for _, p := range probs {
		total += p
	}
	tol := s.Tolerance
	if tol <= 0 {
		tol = DefaultTolerance
	}
	if math.IsNaN(total) || math.Abs(total-1) > tol {
		return nil, qerr.InvalidState(op, "state vector is not normalized").
			With("norm", total).With("tolerance", tol)
	}
	return probs, nil
}

// Sample draws k outcomes from v using src and DefaultTolerance.
func Sample(v linalg.Vector, k int, src rand.Source) ([]int, error) {
	return Sampler{Source: src}.Sample(v, k)
}

// Histogram counts how often each basis index in [0, dim) occurs in samples.
// Indices outside the range are ignored.
func Histogram(samples []int, dim int) []int {
	counts := make([]int, dim)
	for _, s := range samples {
		if s >= 0 && s < dim {
			counts[s]++
		}
	}
	return counts
}

// Expectation returns <v|op|v> = conj(v) · (op · v).
//
// op is expected to be Hermitian, in which case the result is real up to
// rounding. This is not enforced; see ExpectationReal for a checked variant.
func Expectation(v linalg.Vector, op linalg.Matrix) (complex128, error) {
	const name = "measure.Expectation"
	if op.Rows != len(v) || op.Cols != len(v) {
		return 0, qerr.InvalidArgument(name, "operator shape does not match state").
			With("rows", op.Rows).With("cols", op.Cols).With("len", len(v))
	}
	ket, err := op.MulVec(v)
	if err != nil {
		return 0, qerr.InvalidArgument(name, "%v", err)
	}
	bra := v
	out, err := bra.Dot(ket)
	if err != nil {
		return 0, qerr.InvalidArgument(name, "%v", err)
	}
	return out, nil
}

// ExpectationReal returns the real expectation of a Hermitian operator. A
// non-Hermitian operator fails with INVALID_ARGUMENT.
func ExpectationReal(v linalg.Vector, op linalg.Matrix, tol float64) (float64, error) {
	if !op.IsHermitian(tol) {
		return 0, qerr.InvalidArgument("measure.ExpectationReal", "operator is not Hermitian")
	}
	e, err := Expectation(v, op)
	if err != nil {
		return 0, err
	}
	return real(e), nil
}
