// Package matrix implements a dense 2-D matrix of float64 values together
// with the shape-checked arithmetic the rest of the library is built on.
//
// Every matrix owns its storage exclusively: operations allocate and return
// new matrices and never alias their inputs. Shapes are fixed at
// construction; any operation whose operands have incompatible dimensions
// fails with a ShapeError before allocating or mutating anything.
package matrix

import (
	"fmt"
	"math/rand"

	"gonum.org/v1/gonum/floats"
)

// Shape holds the dimensions of a matrix.
type Shape struct {
	Rows int
	Cols int
}

// Validate checks that both dimensions are positive.
func (s Shape) Validate() error {
	if s.Rows <= 0 || s.Cols <= 0 {
		return fmt.Errorf("matrix: invalid shape %v: dimensions must be > 0", s)
	}
	return nil
}

// Equal reports whether two shapes match exactly.
func (s Shape) Equal(other Shape) bool {
	return s.Rows == other.Rows && s.Cols == other.Cols
}

// NumElements returns the total number of elements a matrix of this shape holds.
func (s Shape) NumElements() int {
	return s.Rows * s.Cols
}

// String formats the shape as "[rows x cols]".
func (s Shape) String() string {
	return fmt.Sprintf("[%dx%d]", s.Rows, s.Cols)
}

// Matrix is a dense, row-major matrix of float64 values.
//
// The zero value is not usable; construct matrices with New, Full, Random,
// FromSlice or Identity.
type Matrix struct {
	rows int
	cols int
	data []float64 // len == rows*cols, element (i,j) at data[i*cols+j]
}

// New returns a zero-filled rows x cols matrix.
func New(rows, cols int) (*Matrix, error) {
	shape := Shape{Rows: rows, Cols: cols}
	if err := shape.Validate(); err != nil {
		return nil, err
	}
	return &Matrix{
		rows: rows,
		cols: cols,
		data: make([]float64, rows*cols),
	}, nil
}

// Full returns a rows x cols matrix with every element set to v.
func Full(rows, cols int, v float64) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	for i := range m.data {
		m.data[i] = v
	}
	return m, nil
}

// Random returns a rows x cols matrix with elements drawn uniformly from
// [lo, hi). A nil rnd falls back to the shared math/rand source.
//
// Used for weight and bias initialization.
func Random(rows, cols int, lo, hi float64, rnd *rand.Rand) (*Matrix, error) {
	if hi < lo {
		return nil, fmt.Errorf("matrix: invalid random range [%g, %g)", lo, hi)
	}
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	span := hi - lo
	for i := range m.data {
		if rnd != nil {
			m.data[i] = lo + rnd.Float64()*span
		} else {
			m.data[i] = lo + rand.Float64()*span
		}
	}
	return m, nil
}

// FromSlice builds a rows x cols matrix from row-major data.
// The slice is copied, so the caller keeps ownership of data.
func FromSlice(data []float64, rows, cols int) (*Matrix, error) {
	m, err := New(rows, cols)
	if err != nil {
		return nil, err
	}
	if len(data) != rows*cols {
		return nil, fmt.Errorf("matrix: FromSlice: data length %d does not match shape %v", len(data), m.Shape())
	}
	copy(m.data, data)
	return m, nil
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	m, err := New(n, n)
	if err != nil {
		return nil, err
	}
	for i := 0; i < n; i++ {
		m.data[i*n+i] = 1
	}
	return m, nil
}

// Rows returns the number of rows.
func (m *Matrix) Rows() int { return m.rows }

// Cols returns the number of columns.
func (m *Matrix) Cols() int { return m.cols }

// Shape returns the matrix dimensions.
func (m *Matrix) Shape() Shape { return Shape{Rows: m.rows, Cols: m.cols} }

// At returns the element at (row, col), zero-based.
//
// Indices are not range-checked beyond the bounds of the underlying slice;
// passing a valid (row, col) pair is the caller's responsibility.
func (m *Matrix) At(row, col int) float64 {
	return m.data[row*m.cols+col]
}

// Set stores v at (row, col), zero-based. Same precondition as At.
func (m *Matrix) Set(row, col int, v float64) {
	m.data[row*m.cols+col] = v
}

// Data returns a copy of the underlying row-major storage.
func (m *Matrix) Data() []float64 {
	out := make([]float64, len(m.data))
	copy(out, m.data)
	return out
}

// Clone returns a deep copy of the matrix.
func (m *Matrix) Clone() *Matrix {
	return &Matrix{
		rows: m.rows,
		cols: m.cols,
		data: append([]float64(nil), m.data...),
	}
}

// EqualApprox reports whether both matrices have the same shape and all
// elements are within tol of each other.
func (m *Matrix) EqualApprox(other *Matrix, tol float64) bool {
	if !m.Shape().Equal(other.Shape()) {
		return false
	}
	return floats.EqualApprox(m.data, other.data, tol)
}
