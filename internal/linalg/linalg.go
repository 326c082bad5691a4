// Package linalg holds the flat complex vector and matrix types used by the
// dense simulation path and by measurement.
//
// Matrices are row-major. Kronecker products follow the usual convention
// (A ⊗ B)[i*rb+k][j*cb+l] = A[i][j] * B[k][l], so the left factor owns the
// most significant bits of the combined index.
package linalg

import (
	"fmt"
	"math/cmplx"
)

// Vector is a complex amplitude vector.
type Vector []complex128

// Clone returns an independent copy of v.
func (v Vector) Clone() Vector {
	out := make(Vector, len(v))
	copy(out, v)
	return out
}

// NormSquared returns Σ|v_i|².
func (v Vector) NormSquared() float64 {
	var sum float64
	for _, a := range v {
		sum += real(a)*real(a) + imag(a)*imag(a)
	}
	return sum
}

// Dot returns Σ conj(v_i) * w_i.
func (v Vector) Dot(w Vector) (complex128, error) {
	if len(v) != len(w) {
		return 0, fmt.Errorf("dot: length mismatch %d != %d", len(v), len(w))
	}
	var sum complex128
	for i := range v {
		sum += cmplx.Conj(v[i]) * w[i]
	}
	return sum, nil
}

// Kron returns the Kronecker product v ⊗ w.
func (v Vector) Kron(w Vector) Vector {
	out := make(Vector, len(v)*len(w))
	for i, a := range v {
		row := out[i*len(w) : (i+1)*len(w)]
		for j, b := range w {
			row[j] = a * b
		}
	}
	return out
}

// Matrix is a dense row-major complex matrix.
type Matrix struct {
	Rows, Cols int
	Data       []complex128
}

// NewMatrix allocates a zero rows x cols matrix.
func NewMatrix(rows, cols int) Matrix {
	return Matrix{Rows: rows, Cols: cols, Data: make([]complex128, rows*cols)}
}

// FromRows builds a matrix from row slices. All rows must have equal length.
func FromRows(rows [][]complex128) Matrix {
	if len(rows) == 0 {
		return Matrix{}
	}
	m := NewMatrix(len(rows), len(rows[0]))
	for i, r := range rows {
		if len(r) != m.Cols {
			panic(fmt.Sprintf("linalg: ragged row %d: %d != %d", i, len(r), m.Cols))
		}
		copy(m.Data[i*m.Cols:], r)
	}
	return m
}

// Identity returns the n x n identity.
func Identity(n int) Matrix {
	m := NewMatrix(n, n)
	for i := 0; i < n; i++ {
		m.Data[i*n+i] = 1
	}
	return m
}

// At returns m[i][j].
func (m Matrix) At(i, j int) complex128 {
	return m.Data[i*m.Cols+j]
}

// Scale returns s * m.
func (m Matrix) Scale(s complex128) Matrix {
	out := NewMatrix(m.Rows, m.Cols)
	for i, a := range m.Data {
		out.Data[i] = s * a
	}
	return out
}

// ConjTranspose returns m†.
func (m Matrix) ConjTranspose() Matrix {
	out := NewMatrix(m.Cols, m.Rows)
	for i := 0; i < m.Rows; i++ {
		for j := 0; j < m.Cols; j++ {
			out.Data[j*m.Rows+i] = cmplx.Conj(m.Data[i*m.Cols+j])
		}
	}
	return out
}

// Mul returns m * o.
func (m Matrix) Mul(o Matrix) (Matrix, error) {
	if m.Cols != o.Rows {
		return Matrix{}, fmt.Errorf("mul: shape mismatch %dx%d * %dx%d", m.Rows, m.Cols, o.Rows, o.Cols)
	}
	out := NewMatrix(m.Rows, o.Cols)
	for i := 0; i < m.Rows; i++ {
		for k := 0; k < m.Cols; k++ {
			a := m.Data[i*m.Cols+k]
			if a == 0 {
				continue
			}
			for j := 0; j < o.Cols; j++ {
				out.Data[i*o.Cols+j] += a * o.Data[k*o.Cols+j]
			}
		}
	}
	return out, nil
}

// MulVec returns m * v as a new vector.
func (m Matrix) MulVec(v Vector) (Vector, error) {
	if m.Cols != len(v) {
		return nil, fmt.Errorf("mulvec: shape mismatch %dx%d * %d", m.Rows, m.Cols, len(v))
	}
	out := make(Vector, m.Rows)
	for i := 0; i < m.Rows; i++ {
		row := m.Data[i*m.Cols : (i+1)*m.Cols]
		var sum complex128
		for j, a := range row {
			sum += a * v[j]
		}
		out[i] = sum
	}
	return out, nil
}

// KronInto writes a ⊗ b into dst and returns dst resized to the product
// shape. dst.Data must have capacity for (a.Rows*b.Rows)*(a.Cols*b.Cols)
// entries and must not share storage with a or b.
func KronInto(dst Matrix, a, b Matrix) Matrix {
	rows, cols := a.Rows*b.Rows, a.Cols*b.Cols
	dst.Rows, dst.Cols = rows, cols
	dst.Data = dst.Data[:rows*cols]
	for i := 0; i < a.Rows; i++ {
		for j := 0; j < a.Cols; j++ {
			s := a.Data[i*a.Cols+j]
			for k := 0; k < b.Rows; k++ {
				out := dst.Data[(i*b.Rows+k)*cols+j*b.Cols:]
				in := b.Data[k*b.Cols : (k+1)*b.Cols]
				for l, x := range in {
					out[l] = s * x
				}
			}
		}
	}
	return dst
}

// Kron returns a ⊗ b in a freshly allocated matrix.
func Kron(a, b Matrix) Matrix {
	return KronInto(NewMatrix(a.Rows*b.Rows, a.Cols*b.Cols), a, b)
}

// EqualWithin reports whether m and o have the same shape and every entry
// differs by at most tol in modulus.
func (m Matrix) EqualWithin(o Matrix, tol float64) bool {
	if m.Rows != o.Rows || m.Cols != o.Cols {
		return false
	}
	for i := range m.Data {
		if cmplx.Abs(m.Data[i]-o.Data[i]) > tol {
			return false
		}
	}
	return true
}

// IsUnitary reports whether m†m = I within tol.
func (m Matrix) IsUnitary(tol float64) bool {
	if m.Rows != m.Cols {
		return false
	}
	p, err := m.ConjTranspose().Mul(m)
	if err != nil {
		return false
	}
	return p.EqualWithin(Identity(m.Rows), tol)
}

// IsHermitian reports whether m = m† within tol.
func (m Matrix) IsHermitian(tol float64) bool {
	return m.Rows == m.Cols && m.EqualWithin(m.ConjTranspose(), tol)
}
