package matrix

import (
	"runtime"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"
)

// parallelWork is the number of multiply-adds above which MatMul splits its
// row range across goroutines. Below it the goroutine overhead dominates.
const parallelWork = 1 << 18

// Add returns the element-wise sum a + b.
// Both matrices must have the same shape.
func (m *Matrix) Add(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeError("Add", m, other)
	}
	out := m.Clone()
	floats.Add(out.data, other.data)
	return out, nil
}

// Sub returns the element-wise difference a - b.
// Both matrices must have the same shape.
func (m *Matrix) Sub(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeError("Sub", m, other)
	}
	out := m.Clone()
	floats.Sub(out.data, other.data)
	return out, nil
}

// Hadamard returns the element-wise product of two equally shaped matrices.
func (m *Matrix) Hadamard(other *Matrix) (*Matrix, error) {
	if !m.Shape().Equal(other.Shape()) {
		return nil, shapeError("Hadamard", m, other)
	}
	out := m.Clone()
	floats.Mul(out.data, other.data)
	return out, nil
}

// Scale returns k * m. Scaling always succeeds.
func (m *Matrix) Scale(k float64) *Matrix {
	out := m.Clone()
	floats.Scale(k, out.data)
	return out
}

// Transpose returns a new [cols x rows] matrix with result(j,i) = m(i,j).
func (m *Matrix) Transpose() *Matrix {
	out := &Matrix{
		rows: m.cols,
		cols: m.rows,
		data: make([]float64, len(m.data)),
	}
	for i := 0; i < m.rows; i++ {
		for j := 0; j < m.cols; j++ {
			out.data[j*out.cols+i] = m.data[i*m.cols+j]
		}
	}
	return out
}

// MatMul returns the matrix product m * other.
//
// Requires m.Cols() == other.Rows(); the result has shape
// [m.Rows() x other.Cols()] with element (i,j) = sum_k m(i,k)*other(k,j).
//
// This is the dominant cost center of the package, O(rows*cols*inner).
// Large products are partitioned by row across goroutines; the result is
// identical to the sequential computation since each goroutine writes a
// disjoint row range.
func (m *Matrix) MatMul(other *Matrix) (*Matrix, error) {
	if m.cols != other.rows {
		return nil, shapeError("MatMul", m, other)
	}
	out := &Matrix{
		rows: m.rows,
		cols: other.cols,
		data: make([]float64, m.rows*other.cols),
	}

	workers := runtime.GOMAXPROCS(0)
	if m.rows*m.cols*other.cols < parallelWork || workers < 2 || m.rows < 2 {
		m.matMulRows(other, out, 0, m.rows)
		return out, nil
	}

	if workers > m.rows {
		workers = m.rows
	}
	chunk := (m.rows + workers - 1) / workers

	var g errgroup.Group
	for lo := 0; lo < m.rows; lo += chunk {
		hi := lo + chunk
		if hi > m.rows {
			hi = m.rows
		}
		lo, hi := lo, hi
		g.Go(func() error {
			m.matMulRows(other, out, lo, hi)
			return nil
		})
	}
	// Workers cannot fail; Wait only synchronizes.
	_ = g.Wait()
	return out, nil
}

// matMulRows computes out rows [lo, hi) of the product m * other.
//
// Uses the i-k-j loop order: the inner AddScaled walks both the output row
// and a row of other sequentially, keeping the traversal cache-friendly.
func (m *Matrix) matMulRows(other, out *Matrix, lo, hi int) {
	for i := lo; i < hi; i++ {
		outRow := out.data[i*out.cols : (i+1)*out.cols]
		for k := 0; k < m.cols; k++ {
			aik := m.data[i*m.cols+k]
			if aik == 0 {
				continue
			}
			floats.AddScaled(outRow, aik, other.data[k*other.cols:(k+1)*other.cols])
		}
	}
}

// MSE returns the mean squared error between two equally shaped matrices:
//
//	sum((a(i,j) - b(i,j))^2) / (2 * rows * cols)
//
// The 1/2 factor matches the gradient convention used by the network's
// output-layer delta.
func MSE(a, b *Matrix) (float64, error) {
	if !a.Shape().Equal(b.Shape()) {
		return 0, shapeError("MSE", a, b)
	}
	diff := append([]float64(nil), a.data...)
	floats.Sub(diff, b.data)
	n := float64(a.rows * a.cols)
	return floats.Dot(diff, diff) / (2 * n), nil
}
