// Copyright 2026 Hebb ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package matrix

import (
	"io"
	"math/rand"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// Matrix is a dense, row-major 2-D matrix of float64 values.
type Matrix = matrix.Matrix

// Shape holds the dimensions of a matrix.
type Shape = matrix.Shape

// ShapeError describes an operation whose operand dimensions are
// incompatible; it carries both operand shapes for diagnostics.
type ShapeError = matrix.ShapeError

// ErrShapeMismatch is matched by errors.Is for every shape violation.
var ErrShapeMismatch = matrix.ErrShapeMismatch

// New returns a zero-filled rows x cols matrix.
func New(rows, cols int) (*Matrix, error) {
	return matrix.New(rows, cols)
}

// Full returns a rows x cols matrix with every element set to v.
func Full(rows, cols int, v float64) (*Matrix, error) {
	return matrix.Full(rows, cols, v)
}

// Random returns a rows x cols matrix with elements drawn uniformly from
// [lo, hi). A nil rnd falls back to the shared math/rand source.
func Random(rows, cols int, lo, hi float64, rnd *rand.Rand) (*Matrix, error) {
	return matrix.Random(rows, cols, lo, hi, rnd)
}

// FromSlice builds a rows x cols matrix from row-major data. The slice is
// copied.
func FromSlice(data []float64, rows, cols int) (*Matrix, error) {
	return matrix.FromSlice(data, rows, cols)
}

// Identity returns the n x n identity matrix.
func Identity(n int) (*Matrix, error) {
	return matrix.Identity(n)
}

// MSE returns the mean squared error between two equally shaped matrices:
// sum((a-b)^2) / (2 * rows * cols).
func MSE(a, b *Matrix) (float64, error) {
	return matrix.MSE(a, b)
}

// Fprint writes the row-major dump of m to w.
func Fprint(w io.Writer, m *Matrix) error {
	return matrix.Fprint(w, m)
}

// Print writes the row-major dump of m to standard output.
func Print(m *Matrix) {
	matrix.Print(m)
}
