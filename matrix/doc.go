// Copyright 2026 Hebb ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package matrix provides the public API for the dense matrix engine.
//
// # Overview
//
// A Matrix is a dense, row-major 2-D table of float64 values with its shape
// fixed at construction. Operations return new matrices and never alias
// their inputs, and every dimension-incompatible call fails with a
// ShapeError before anything is allocated or mutated:
//
//	a, _ := matrix.FromSlice([]float64{1, 2, 3, 4}, 2, 2)
//	b, _ := matrix.Identity(2)
//
//	sum, err := a.Add(b)       // element-wise, shapes must match
//	prod, err := a.MatMul(b)   // inner dimensions must agree
//	h, err := a.Hadamard(b)    // element-wise product
//	tr := a.Transpose()        // always succeeds
//	half := a.Scale(0.5)       // always succeeds
//
// # Error Handling
//
// All shape violations are reported through the same taxonomy:
//
//	if errors.Is(err, matrix.ErrShapeMismatch) {
//	    var shapeErr *matrix.ShapeError
//	    errors.As(err, &shapeErr) // carries both operand shapes
//	}
//
// There is no broadcasting and no silent truncation anywhere in the engine.
package matrix
