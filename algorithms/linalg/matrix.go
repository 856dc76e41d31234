// Package linalg provides the dense complex matrix used by the DFT engine.
//
// CMatrix stores its elements in a single row-major slice. A matrix with a
// non-positive dimension is the empty 0×0 matrix; it is a valid value and
// multiplies to another empty matrix.
package linalg

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"gonum.org/v1/gonum/blas"
	"gonum.org/v1/gonum/blas/cblas128"
	"gonum.org/v1/gonum/cmplxs"
)

// ErrDimensionMismatch is returned by Mul when the inner dimensions differ.
var ErrDimensionMismatch = errors.New("linalg: dimension mismatch")

// CMatrix is a row-major matrix of complex128 values.
type CMatrix struct {
	rows, cols int
	data       []complex128
}

// NewCMatrix creates a zero-filled rows×cols matrix.
func NewCMatrix(rows, cols int) *CMatrix {
	if rows <= 0 || cols <= 0 {
		return &CMatrix{}
	}
	return &CMatrix{
		rows: rows,
		cols: cols,
		data: make([]complex128, rows*cols),
	}
}

// NewColumn creates an N×1 column vector holding a copy of values.
func NewColumn(values []complex128) *CMatrix {
	m := NewCMatrix(len(values), 1)
	copy(m.data, values)
	return m
}

// NewRealColumn creates an N×1 column vector from real samples with zero imaginary parts.
func NewRealColumn(values []float64) *CMatrix {
	m := NewCMatrix(len(values), 1)
	for i, v := range values {
		m.data[i] = complex(v, 0)
	}
	return m
}

// Rows returns the number of rows
func (m *CMatrix) Rows() int { return m.rows }

// Cols returns the number of columns
func (m *CMatrix) Cols() int { return m.cols }

// Dims returns the number of rows and columns
func (m *CMatrix) Dims() (int, int) { return m.rows, m.cols }

// IsEmpty reports whether the matrix has no elements
func (m *CMatrix) IsEmpty() bool { return len(m.data) == 0 }

func (m *CMatrix) index(r, c int) int {
	if r < 0 || r >= m.rows || c < 0 || c >= m.cols {
		panic(fmt.Sprintf("linalg: index (%d, %d) out of range for %d×%d matrix", r, c, m.rows, m.cols))
	}
	return r*m.cols + c
}

// At returns the element at (r, c). It panics if the index is out of range.
func (m *CMatrix) At(r, c int) complex128 {
	return m.data[m.index(r, c)]
}

// Set stores v at (r, c). It panics if the index is out of range.
func (m *CMatrix) Set(r, c int, v complex128) {
	m.data[m.index(r, c)] = v
}

// Column returns a copy of column c.
func (m *CMatrix) Column(c int) []complex128 {
	if m.IsEmpty() {
		return []complex128{}
	}
	out := make([]complex128, m.rows)
	for r := range m.rows {
		out[r] = m.At(r, c)
	}
	return out
}

// RawData returns the row-major backing slice. Writes through it modify m.
func (m *CMatrix) RawData() []complex128 {
	return m.data
}

// Reset clears the matrix back to 0×0.
func (m *CMatrix) Reset() {
	m.rows, m.cols = 0, 0
	m.data = nil
}

// Clone returns a deep copy of m.
func (m *CMatrix) Clone() *CMatrix {
	out := NewCMatrix(m.rows, m.cols)
	copy(out.data, m.data)
	return out
}

// EqualApprox reports whether a and b have the same shape and every element
// pair agrees within tol (absolute or relative).
func EqualApprox(a, b *CMatrix, tol float64) bool {
	if a.rows != b.rows || a.cols != b.cols {
		return false
	}
	return cmplxs.EqualApprox(a.data, b.data, tol)
}

// Mul returns the product a×b as a new matrix.
func Mul(a, b *CMatrix) (*CMatrix, error) {
	if a.cols != b.rows {
		return nil, fmt.Errorf("%w: %d×%d times %d×%d", ErrDimensionMismatch, a.rows, a.cols, b.rows, b.cols)
	}

	out := NewCMatrix(a.rows, b.cols)
	if out.IsEmpty() || a.cols == 0 {
		return out, nil
	}

	cblas128.Gemm(blas.NoTrans, blas.NoTrans, 1,
		a.general(), b.general(), 0, out.general())

	return out, nil
}

func (m *CMatrix) general() cblas128.General {
	return cblas128.General{
		Rows:   m.rows,
		Cols:   m.cols,
		Stride: m.cols,
		Data:   m.data,
	}
}

// Format renders the matrix one row per line, elements as (re, im) separated by tabs.
func (m *CMatrix) Format(precision int) string {
	var b strings.Builder
	for r := range m.rows {
		for c := range m.cols {
			if c > 0 {
				b.WriteByte('\t')
			}
			v := m.At(r, c)
			fmt.Fprintf(&b, "(%.*f, %.*f)", precision, real(v), precision, imag(v))
		}
		b.WriteByte('\n')
	}
	return b.String()
}

// String implements fmt.Stringer with four decimals
func (m *CMatrix) String() string {
	return m.Format(4)
}

// WriteTo writes the String form of m to w.
func (m *CMatrix) WriteTo(w io.Writer) (int64, error) {
	n, err := io.WriteString(w, m.String())
	return int64(n), err
}
