package qerr

import "math"

// MaxQubits is the representable qubit ceiling. Basis indices are Go ints and
// dense operators square the dimension, so anything beyond this would
// overflow shift arithmetic long before it fits in memory.
const MaxQubits = 30

// complexBytes is the size of one complex128 entry.
const complexBytes = 16

// Budget is a memory ceiling for state and operator allocations.
// A zero or negative LimitBytes disables the byte check; MaxQubits still applies.
type Budget struct {
	LimitBytes int64
}

// Unlimited returns a budget with no byte ceiling.
func Unlimited() Budget {
	return Budget{}
}

// MegaBytes returns a budget of mb mebibytes.
func MegaBytes(mb int64) Budget {
	return Budget{LimitBytes: mb << 20}
}

// VectorBytes is the footprint of a 2^n amplitude vector.
func VectorBytes(n int) int64 {
	return pow2Bytes(n)
}

// TensorBytes is the footprint of one gate contraction on an n-axis state
// tensor. The input, the contracted tensor and its axis-permuted copy are
// live together; the estimate rounds that up to 4 state-sized buffers.
func TensorBytes(n int) int64 {
	return pow2Bytes(n + 2)
}

// OperatorBytes is the footprint of building a 2^n x 2^n dense operator with
// two accumulation buffers.
func OperatorBytes(n int) int64 {
	return pow2Bytes(2*n + 1)
}

// pow2Bytes returns 16 * 2^exp, saturating at math.MaxInt64.
func pow2Bytes(exp int) int64 {
	// 16 == 2^4
	if exp+4 >= 63 {
		return math.MaxInt64
	}
	return int64(complexBytes) << exp
}

// CheckQubits validates n against [1, MaxQubits].
func CheckQubits(op string, n int) error {
	if n < 1 {
		return InvalidArgument(op, "qubit count must be at least 1").With("n", n)
	}
	if n > MaxQubits {
		return ResourceExhausted(op, "qubit count exceeds representable limit").
			With("n", n).With("max", MaxQubits)
	}
	return nil
}

// Reserve fails with RESOURCE_EXHAUSTED when bytes exceeds the ceiling.
func (b Budget) Reserve(op string, bytes int64) error {
	if b.LimitBytes > 0 && bytes > b.LimitBytes {
		return ResourceExhausted(op, "allocation exceeds memory budget").
			With("bytes", bytes).With("limit", b.LimitBytes)
	}
	return nil
}

// ReserveVector checks n and the footprint of a flat state vector.
func (b Budget) ReserveVector(op string, n int) error {
	if err := CheckQubits(op, n); err != nil {
		return err
	}
	return b.Reserve(op, VectorBytes(n))
}

// ReserveTensor checks n and the footprint of a state tensor contraction.
func (b Budget) ReserveTensor(op string, n int) error {
	if err := CheckQubits(op, n); err != nil {
		return err
	}
	return b.Reserve(op, TensorBytes(n))
}

// ReserveOperator checks n and the footprint of a dense global operator.
func (b Budget) ReserveOperator(op string, n int) error {
	if err := CheckQubits(op, n); err != nil {
		return err
	}
	return b.Reserve(op, OperatorBytes(n))
}
