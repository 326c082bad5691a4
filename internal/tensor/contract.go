package tensor

import "github.com/roach88/qsim/internal/qerr"

// Contract sums a and b over the paired axes axesA[k] <-> axesB[k].
//
// The result's axes are the free axes of a in their original order followed
// by the free axes of b in their original order. Paired axes must have equal
// extents and each axis may appear at most once per side.
func Contract(a Tensor, axesA []int, b Tensor, axesB []int) (Tensor, error) {
	const op = "tensor.Contract"
	if len(axesA) != len(axesB) {
		return Tensor{}, qerr.InvalidArgument(op, "axis lists differ in length").
			With("a", len(axesA)).With("b", len(axesB))
	}
	if err := checkAxes(op, axesA, a.Rank()); err != nil {
		return Tensor{}, err
	}
	if err := checkAxes(op, axesB, b.Rank()); err != nil {
		return Tensor{}, err
	}
	for k := range axesA {
		if a.shape[axesA[k]] != b.shape[axesB[k]] {
			return Tensor{}, qerr.InvalidArgument(op, "contracted extents differ").
				With("axis_a", axesA[k]).With("axis_b", axesB[k])
		}
	}

	stA, stB := strides(a.shape), strides(b.shape)
	freeA, freeB := complement(axesA, a.Rank()), complement(axesB, b.Rank())

	sumShape := pick(a.shape, axesA)
	sumA := offsets(sumShape, pick(stA, axesA))
	sumB := offsets(sumShape, pick(stB, axesB))

	// b's free offsets span the state and are walked, not tabulated.
	baseA := offsets(pick(a.shape, freeA), pick(stA, freeA))
	shapeB := pick(b.shape, freeB)
	rowB := size(shapeB)
	baseB := newOdometer(shapeB, pick(stB, freeB))

	out := Tensor{
		shape: append(pick(a.shape, freeA), shapeB...),
		data:  make([]complex128, len(baseA)*rowB),
	}
	i := 0
	for _, oa := range baseA {
		for j := 0; j < rowB; j++ {
			ob := baseB.off
			var acc complex128
			for c := range sumA {
				acc += a.data[oa+sumA[c]] * b.data[ob+sumB[c]]
			}
			out.data[i] = acc
			i++
			baseB.next()
		}
	}
	return out, nil
}

// checkAxes validates that axes are in range and distinct.
func checkAxes(op string, axes []int, rank int) error {
	seen := make([]bool, rank)
	for _, ax := range axes {
		if ax < 0 || ax >= rank {
			return qerr.InvalidArgument(op, "axis out of range").With("axis", ax).With("rank", rank)
		}
		if seen[ax] {
			return qerr.InvalidArgument(op, "axis repeated").With("axis", ax)
		}
		seen[ax] = true
	}
	return nil
}

// complement returns the axes of [0, rank) not listed in axes, ascending.
func complement(axes []int, rank int) []int {
	used := make([]bool, rank)
	for _, ax := range axes {
		used[ax] = true
	}
	out := make([]int, 0, rank-len(axes))
	for ax := 0; ax < rank; ax++ {
		if !used[ax] {
			out = append(out, ax)
		}
	}
	return out
}

// pick returns xs[idx[0]], xs[idx[1]], ...
func pick(xs []int, idx []int) []int {
	out := make([]int, len(idx))
	for i, j := range idx {
		out[i] = xs[j]
	}
	return out
}
