// Package dense applies gates by materializing the global 2^n x 2^n operator
// as an ordered Kronecker product of per-qubit factors and multiplying it into
// a flat state vector.
//
// Building the operator costs O(4^n) time and memory. That ceiling is why the
// contraction path exists; this path is kept as the reference the contraction
// results are checked against. Operator construction is gated by a
// qerr.Budget so oversized requests fail before anything is allocated.
//
// Qubit 0 is the leftmost Kronecker factor and therefore the most significant
// bit of a basis index.
package dense

import (
	"sort"

	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
)

// Factors returns the ordered local factors for an n-qubit register: the 2x2
// identity everywhere except at the overridden positions. A gate of arity k
// placed at index covers positions [index, index+k), so the list holds one
// entry per covered span rather than one per qubit.
func Factors(n int, overrides map[int]gates.Gate) ([]linalg.Matrix, error) {
	const op = "dense.Factors"
	if err := qerr.CheckQubits(op, n); err != nil {
		return nil, err
	}

	positions := make([]int, 0, len(overrides))
	for idx := range overrides {
		positions = append(positions, idx)
	}
	sort.Ints(positions)

	next := 0
	for _, idx := range positions {
		g := overrides[idx]
		if err := qerr.CheckIndex(op, idx, n); err != nil {
			return nil, err
		}
		if idx < next {
			return nil, qerr.InvalidArgument(op, "overrides overlap").With("index", idx)
		}
		if g.Arity < 1 || idx+g.Arity > n {
			return nil, qerr.InvalidArgument(op, "gate does not fit in register").
				With("gate", g.Name).With("index", idx).With("n", n)
		}
		next = idx + g.Arity
	}

	identity := linalg.Identity(2)
	factors := make([]linalg.Matrix, 0, n)
	for pos := 0; pos < n; {
		if g, ok := overrides[pos]; ok {
			factors = append(factors, g.Matrix)
			pos += g.Arity
			continue
		}
		factors = append(factors, identity)
		pos++
	}
	return factors, nil
}

// Applicator is the dense operator applicator.
type Applicator struct {
	Budget qerr.Budget
}

// BuildOperator folds Factors(n, overrides) into the global operator. The fold
// alternates between two buffers allocated once at full size.
func (a Applicator) BuildOperator(n int, overrides map[int]gates.Gate) (linalg.Matrix, error) {
	if err := a.Budget.ReserveOperator("dense.BuildOperator", n); err != nil {
		return linalg.Matrix{}, err
	}
	factors, err := Factors(n, overrides)
	if err != nil {
		return linalg.Matrix{}, err
	}

	dim := 1 << n
	front := linalg.Matrix{Data: make([]complex128, dim*dim)}
	back := linalg.Matrix{Data: make([]complex128, dim*dim)}

	first := factors[0]
	front.Rows, front.Cols = first.Rows, first.Cols
	front.Data = front.Data[:len(first.Data)]
	copy(front.Data, first.Data)

	for _, f := range factors[1:] {
		back = linalg.KronInto(back, front, f)
		front, back = back, front
	}
	return front, nil
}

// ApplySingle applies a one-qubit gate at index and returns a new vector.
func (a Applicator) ApplySingle(n int, state linalg.Vector, g gates.Gate, index int) (linalg.Vector, error) {
	const op = "dense.ApplySingle"
	if err := checkState(op, n, state); err != nil {
		return nil, err
	}
	if g.Arity != 1 {
		return nil, qerr.InvalidArgument(op, "gate %s is not a single-qubit gate", g.Name)
	}
	if err := qerr.CheckIndex(op, index, n); err != nil {
		return nil, err
	}
	return a.apply(n, state, map[int]gates.Gate{index: g})
}

// ApplyTwo applies a two-qubit gate to the adjacent pair (index, index+1),
// with index as the gate's first qubit. It requires index+1 < n.
func (a Applicator) ApplyTwo(n int, state linalg.Vector, g gates.Gate, index int) (linalg.Vector, error) {
	const op = "dense.ApplyTwo"
	if err := checkState(op, n, state); err != nil {
		return nil, err
	}
	if g.Arity != 2 {
		return nil, qerr.InvalidArgument(op, "gate %s is not a two-qubit gate", g.Name)
	}
	if index < 0 || index+1 >= n {
		return nil, qerr.InvalidArgument(op, "index out of range: no adjacent qubit").
			With("index", index).With("n", n)
	}
	return a.apply(n, state, map[int]gates.Gate{index: g})
}

func (a Applicator) apply(n int, state linalg.Vector, overrides map[int]gates.Gate) (linalg.Vector, error) {
	operator, err := a.BuildOperator(n, overrides)
	if err != nil {
		return nil, err
	}
	return operator.MulVec(state)
}

// checkState validates n and that state holds 2^n amplitudes.
func checkState(op string, n int, state linalg.Vector) error {
	if err := qerr.CheckQubits(op, n); err != nil {
		return err
	}
	if len(state) != 1<<n {
		return qerr.InvalidArgument(op, "state length does not match qubit count").
			With("len", len(state)).With("n", n)
	}
	return nil
}
