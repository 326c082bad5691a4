package tensor

import "github.com/roach88/qsim/internal/qerr"

// Transpose returns a copy of t whose axis j is t's axis perm[j].
func (t Tensor) Transpose(perm []int) (Tensor, error) {
	const op = "tensor.Transpose"
	if len(perm) != t.Rank() {
		return Tensor{}, qerr.InvalidArgument(op, "permutation length differs from rank").
			With("perm", perm).With("rank", t.Rank())
	}
	if err := checkAxes(op, perm, t.Rank()); err != nil {
		return Tensor{}, err
	}

	shape := pick(t.shape, perm)
	src := newOdometer(shape, pick(strides(t.shape), perm))
	out := Tensor{shape: shape, data: make([]complex128, len(t.data))}
	for i := range out.data {
		out.data[i] = t.data[src.off]
		src.next()
	}
	return out, nil
}

// MoveAxesPerm returns the permutation that places axis src[k] at position
// dst[k] while keeping every other axis in its original relative order.
func MoveAxesPerm(rank int, src, dst []int) ([]int, error) {
	const op = "tensor.MoveAxes"
	if len(src) != len(dst) {
		return nil, qerr.InvalidArgument(op, "source and destination differ in length").
			With("src", src).With("dst", dst)
	}
	if err := checkAxes(op, src, rank); err != nil {
		return nil, err
	}
	if err := checkAxes(op, dst, rank); err != nil {
		return nil, err
	}

	perm := make([]int, rank)
	for i := range perm {
		perm[i] = -1
	}
	for k := range src {
		perm[dst[k]] = src[k]
	}
	rest := complement(src, rank)
	r := 0
	for i := range perm {
		if perm[i] < 0 {
			perm[i] = rest[r]
			r++
		}
	}
	return perm, nil
}

// MoveAxes moves the axes listed in src to the positions listed in dst.
func (t Tensor) MoveAxes(src, dst []int) (Tensor, error) {
	perm, err := MoveAxesPerm(t.Rank(), src, dst)
	if err != nil {
		return Tensor{}, err
	}
	return t.Transpose(perm)
}
