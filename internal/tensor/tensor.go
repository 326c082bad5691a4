// Package tensor implements the dense multi-axis complex tensor used by the
// contraction simulation path.
//
// Storage is row-major: the last axis varies fastest. For a state tensor with
// n axes of extent 2 this makes axis 0 the most significant bit of the flat
// index, which matches the Kronecker ordering of the dense path.
//
// Every operation returns a new tensor; no function mutates its inputs.
package tensor

import (
	"github.com/roach88/qsim/internal/linalg"
	"github.com/roach88/qsim/internal/qerr"
)

// Tensor is an immutable-by-convention dense complex tensor.
type Tensor struct {
	shape []int
	data  []complex128
}

// Zeros allocates a zero tensor with the given shape.
func Zeros(shape ...int) Tensor {
	return Tensor{shape: append([]int(nil), shape...), data: make([]complex128, size(shape))}
}

// FromVector reshapes a copy of v into shape.
func FromVector(v linalg.Vector, shape ...int) (Tensor, error) {
	if size(shape) != len(v) {
		return Tensor{}, qerr.InvalidArgument("tensor.FromVector", "shape does not match data length").
			With("shape", shape).With("len", len(v))
	}
	data := make([]complex128, len(v))
	copy(data, v)
	return Tensor{shape: append([]int(nil), shape...), data: data}, nil
}

// FromMatrix reshapes a copy of m's row-major data into shape.
func FromMatrix(m linalg.Matrix, shape ...int) (Tensor, error) {
	return FromVector(linalg.Vector(m.Data), shape...)
}

// Shape returns a copy of the tensor's shape.
func (t Tensor) Shape() []int {
	return append([]int(nil), t.shape...)
}

// Rank returns the number of axes.
func (t Tensor) Rank() int {
	return len(t.shape)
}

// Size returns the number of entries.
func (t Tensor) Size() int {
	return len(t.data)
}

// At returns the entry at the given multi-index. It panics on a malformed index.
func (t Tensor) At(idx ...int) complex128 {
	if len(idx) != len(t.shape) {
		panic("tensor: index rank mismatch")
	}
	st := strides(t.shape)
	off := 0
	for i, x := range idx {
		if x < 0 || x >= t.shape[i] {
			panic("tensor: index out of range")
		}
		off += x * st[i]
	}
	return t.data[off]
}

// Flatten returns the entries in row-major order as a new vector.
func (t Tensor) Flatten() linalg.Vector {
	out := make(linalg.Vector, len(t.data))
	copy(out, t.data)
	return out
}

// Outer returns the outer product a ⊗ b with shape a.shape ++ b.shape.
func Outer(a, b Tensor) Tensor {
	out := Tensor{
		shape: append(append([]int(nil), a.shape...), b.shape...),
		data:  make([]complex128, len(a.data)*len(b.data)),
	}
	for i, x := range a.data {
		row := out.data[i*len(b.data) : (i+1)*len(b.data)]
		for j, y := range b.data {
			row[j] = x * y
		}
	}
	return out
}

// size returns the product of extents; the empty shape has size 1.
func size(shape []int) int {
	n := 1
	for _, d := range shape {
		n *= d
	}
	return n
}

// strides returns row-major strides for shape.
func strides(shape []int) []int {
	st := make([]int, len(shape))
	acc := 1
	for i := len(shape) - 1; i >= 0; i-- {
		st[i] = acc
		acc *= shape[i]
	}
	return st
}

// odometer walks the linear offsets Σ idx_k * st[k] in row-major order over
// shape without materializing them.
type odometer struct {
	shape, st, idx []int
	off            int
}

func newOdometer(shape, st []int) *odometer {
	return &odometer{shape: shape, st: st, idx: make([]int, len(shape))}
}

// next advances to the following index tuple, wrapping to zero after the last.
func (o *odometer) next() {
	for k := len(o.shape) - 1; k >= 0; k-- {
		o.idx[k]++
		o.off += o.st[k]
		if o.idx[k] < o.shape[k] {
			return
		}
		o.off -= o.idx[k] * o.st[k]
		o.idx[k] = 0
	}
}

// offsets collects every odometer offset. Only used for the small contracted
// and output-row index sets.
func offsets(shape, st []int) []int {
	out := make([]int, size(shape))
	o := newOdometer(shape, st)
	for i := range out {
		out[i] = o.off
		o.next()
	}
	return out
}
