// Package gates holds the fixed gate catalogue: Pauli-X, Hadamard and CNOT.
//
// Each gate is available as a matrix (dense path) and as a tensor with one
// output and one input axis per qubit (contraction path). For a k-qubit gate
// the tensor has rank 2k: axes [0, k) are outputs and axes [k, 2k) are inputs,
// which is the row/column split of the matrix reshaped to extent 2 per axis.
package gates

import (
	"math"
	"strings"

	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/tensor"
)

// Gate is a named unitary acting on Arity adjacent qubits.
type Gate struct {
	Name   string
	Arity  int
	Matrix linalg.Matrix
}

// Catalogue names.
const (
	NameX    = "X"
	NameH    = "H"
	NameCNOT = "CNOT"
)

var invSqrt2 = complex(1/math.Sqrt2, 0)

var (
	// X swaps the two amplitude components of a qubit.
	X = Gate{
		Name:  NameX,
		Arity: 1,
		Matrix: linalg.FromRows([][]complex128{
			{0, 1},
			{1, 0},
		}),
	}

	// H maps |0> to (|0>+|1>)/√2 and |1> to (|0>-|1>)/√2.
	H = Gate{
		Name:  NameH,
		Arity: 1,
		Matrix: linalg.FromRows([][]complex128{
			{1, 1},
			{1, -1},
		}).Scale(invSqrt2),
	}

	// CNOT flips the second qubit iff the first is |1>.
	CNOT = Gate{
		Name:  NameCNOT,
		Arity: 2,
		Matrix: linalg.FromRows([][]complex128{
			{1, 0, 0, 0},
			{0, 1, 0, 0},
			{0, 0, 0, 1},
			{0, 0, 1, 0},
		}),
	}
)

// Catalogue returns every gate in a fixed order.
func Catalogue() []Gate {
	return []Gate{X, H, CNOT}
}

// Lookup resolves a gate by name. Matching is case-insensitive and "CX" is
// accepted for CNOT.
func Lookup(name string) (Gate, error) {
	switch strings.ToUpper(strings.TrimSpace(name)) {
	case NameX:
		return X, nil
	case NameH:
		return H, nil
	case NameCNOT, "CX":
		return CNOT, nil
	default:
		return Gate{}, qerr.InvalidArgument("gates.Lookup", "unknown gate %q", name)
	}
}

// Tensor returns the gate reshaped to rank 2*Arity with extent 2 per axis.
func (g Gate) Tensor() tensor.Tensor {
	shape := make([]int, 2*g.Arity)
	for i := range shape {
		shape[i] = 2
	}
	t, err := tensor.FromMatrix(g.Matrix, shape...)
	if err != nil {
		// Catalogue matrices are 2^k x 2^k by construction.
		panic(err)
	}
	return t
}

// OutputAxes returns the tensor axes indexing the gate's output.
func (g Gate) OutputAxes() []int {
	return axisRange(0, g.Arity)
}

// InputAxes returns the tensor axes contracted against the state.
func (g Gate) InputAxes() []int {
	return axisRange(g.Arity, 2*g.Arity)
}

// Dim returns the matrix dimension 2^Arity.
func (g Gate) Dim() int {
	return 1 << g.Arity
}

// IsUnitary reports whether g†g = I within tol.
func (g Gate) IsUnitary(tol float64) bool {
	return g.Matrix.Rows == g.Dim() && g.Matrix.IsUnitary(tol)
}

func axisRange(from, to int) []int {
	out := make([]int, 0, to-from)
	for i := from; i < to; i++ {
		out = append(out, i)
	}
	return out
}
