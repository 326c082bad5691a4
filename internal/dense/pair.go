package dense

import (
	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/tensor"
)

// ApplyPair applies a two-qubit gate to any two distinct qubits. The basis is
// relabelled so (first, second) become the adjacent pair (0, 1), ApplyTwo runs
// at index 0, and the relabelling is undone. The global operator is still
// materialized; only the amplitude order changes around it.
func (a Applicator) ApplyPair(n int, state linalg.Vector, g gates.Gate, first, second int) (linalg.Vector, error) {
	const op = "dense.ApplyPair"
	if err := checkState(op, n, state); err != nil {
		return nil, err
	}
	if err := qerr.CheckIndex(op, first, n); err != nil {
		return nil, err
	}
	if err := qerr.CheckIndex(op, second, n); err != nil {
		return nil, err
	}
	if first == second {
		return nil, qerr.InvalidArgument(op, "control and target must differ").With("qubit", first)
	}
	if second == first+1 {
		return a.ApplyTwo(n, state, g, first)
	}

	shape := make([]int, n)
	for i := range shape {
		shape[i] = 2
	}
	t, err := tensor.FromVector(state, shape...)
	if err != nil {
		return nil, err
	}
	front, err := t.MoveAxes([]int{first, second}, []int{0, 1})
	if err != nil {
		return nil, err
	}

	out, err := a.ApplyTwo(n, front.Flatten(), g, 0)
	if err != nil {
		return nil, err
	}

	back, err := tensor.FromVector(out, shape...)
	if err != nil {
		return nil, err
	}
	restored, err := back.MoveAxes([]int{0, 1}, []int{first, second})
	if err != nil {
		return nil, err
	}
	return restored.Flatten(), nil
}
