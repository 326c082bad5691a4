package sim

import (
	"github.com/roach88/qsim/internal/config"
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/tensor"
)

// State is an immutable register produced by Init or Apply.
type State interface {
	// Qubits is the register width n.
	Qubits() int

	// Representation reports which applicator family owns the state.
	Representation() config.Representation

	// flatten returns the amplitudes in axis order, sharing storage.
	flatten() linalg.Vector
}

// VectorState is a flat 2^n amplitude vector.
type VectorState struct {
	n    int
	amps linalg.Vector
}

// Qubits implements State.
func (s *VectorState) Qubits() int { return s.n }

// Representation implements State.
func (s *VectorState) Representation() config.Representation { return config.RepresentationDense }

// Vector returns a copy of the amplitudes.
func (s *VectorState) Vector() linalg.Vector { return s.amps.Clone() }

func (s *VectorState) flatten() linalg.Vector { return s.amps }

// TensorState is a rank-n tensor with one extent-2 axis per qubit.
type TensorState struct {
	t tensor.Tensor
}

// Qubits implements State.
func (s *TensorState) Qubits() int { return s.t.Rank() }

// Representation implements State.
func (s *TensorState) Representation() config.Representation { return config.RepresentationTensor }

// Tensor returns the underlying tensor. Tensor values are never mutated in
// place, so sharing it is safe.
func (s *TensorState) Tensor() tensor.Tensor { return s.t }

func (s *TensorState) flatten() linalg.Vector { return s.t.Flatten() }
