// Package contract applies gates to a multi-axis state tensor by contracting
// the gate's input axes against the state axes of the qubits it acts on.
//
// No global operator is ever built: a single-qubit gate costs O(2^n) and a
// two-qubit gate O(4 * 2^n). After each contraction the gate's output axes
// lead the result, and they are moved back with an explicit permutation so
// that axis i corresponds to qubit i before and after every call.
package contract

import (
	"github.com/roach88/qsim/internal/gates"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/tensor"
)

// Applicator is the contraction applicator.
type Applicator struct {
	Budget qerr.Budget
}

// ApplySingle applies a one-qubit gate to qubit index and returns a new tensor.
func (a Applicator) ApplySingle(state tensor.Tensor, g gates.Gate, index int) (tensor.Tensor, error) {
	const op = "contract.ApplySingle"
	n := state.Rank()
	if err := a.check(op, state); err != nil {
		return tensor.Tensor{}, err
	}
	if g.Arity != 1 {
		return tensor.Tensor{}, qerr.InvalidArgument(op, "gate %s is not a single-qubit gate", g.Name)
	}
	if err := qerr.CheckIndex(op, index, n); err != nil {
		return tensor.Tensor{}, err
	}
	return a.apply(state, g, []int{index})
}

// ApplyTwo applies a two-qubit gate with control and target at any two
// distinct axes. The gate's first qubit binds to control, its second to target.
func (a Applicator) ApplyTwo(state tensor.Tensor, g gates.Gate, control, target int) (tensor.Tensor, error) {
	const op = "contract.ApplyTwo"
	n := state.Rank()
	if err := a.check(op, state); err != nil {
		return tensor.Tensor{}, err
	}
	if g.Arity != 2 {
		return tensor.Tensor{}, qerr.InvalidArgument(op, "gate %s is not a two-qubit gate", g.Name)
	}
	if err := qerr.CheckIndex(op, control, n); err != nil {
		return tensor.Tensor{}, err
	}
	if err := qerr.CheckIndex(op, target, n); err != nil {
		return tensor.Tensor{}, err
	}
	if control == target {
		return tensor.Tensor{}, qerr.InvalidArgument(op, "control and target must differ").With("qubit", control)
	}
	return a.apply(state, g, []int{control, target})
}

// apply contracts g's input axes against the state axes in qubits, then moves
// the leading output axes back to qubits.
func (a Applicator) apply(state tensor.Tensor, g gates.Gate, qubits []int) (tensor.Tensor, error) {
	contracted, err := tensor.Contract(g.Tensor(), g.InputAxes(), state, qubits)
	if err != nil {
		return tensor.Tensor{}, err
	}
	return contracted.MoveAxes(g.OutputAxes(), qubits)
}

// check validates the state shape and the memory budget.
func (a Applicator) check(op string, state tensor.Tensor) error {
	n := state.Rank()
	if err := a.Budget.ReserveTensor(op, n); err != nil {
		return err
	}
	for axis, d := range state.Shape() {
		if d != 2 {
			return qerr.InvalidArgument(op, "state axis must have extent 2").With("axis", axis).With("extent", d)
		}
	}
	return nil
}
