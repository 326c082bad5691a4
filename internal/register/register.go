// Package register builds the initial all-|0> register in either the flat
// vector form or the multi-axis tensor form.
//
// Both constructors compose the register by repeated pairwise tensor products
// of the single-qubit |0> state, so the two forms agree under flattening.
package register

import (
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
	"github.com/roach88/qsim/internal/tensor"
)

// Zero returns the single-qubit |0> amplitudes.
func Zero() linalg.Vector {
	return linalg.Vector{1, 0}
}

// One returns the single-qubit |1> amplitudes.
func One() linalg.Vector {
	return linalg.Vector{0, 1}
}

// NewVector returns |0>^n as a flat vector of 2^n amplitudes.
func NewVector(n int, budget qerr.Budget) (linalg.Vector, error) {
	if err := budget.ReserveVector("register.NewVector", n); err != nil {
		return nil, err
	}
	reg := Zero()
	for i := 1; i < n; i++ {
		reg = reg.Kron(Zero())
	}
	return reg, nil
}

// NewTensor returns |0>^n as a tensor with n axes of extent 2.
func NewTensor(n int, budget qerr.Budget) (tensor.Tensor, error) {
	if err := budget.ReserveTensor("register.NewTensor", n); err != nil {
		return tensor.Tensor{}, err
	}
	zero, err := tensor.FromVector(Zero(), 2)
	if err != nil {
		return tensor.Tensor{}, err
	}
	reg := zero
	for i := 1; i < n; i++ {
		reg = tensor.Outer(reg, zero)
	}
	return reg, nil
}
