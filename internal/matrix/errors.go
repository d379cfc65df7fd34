package matrix

import (
	"errors"
	"fmt"
)

// ErrShapeMismatch is the sentinel matched by errors.Is for every
// dimension-compatibility failure raised by this package.
var ErrShapeMismatch = errors.New("matrix: shape mismatch")

// ShapeError describes an operation whose operand dimensions are
// incompatible. It carries both operand shapes for diagnostics.
type ShapeError struct {
	Op string // operation that failed, e.g. "Add" or "MatMul"
	A  Shape
	B  Shape
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("matrix: %s: shape mismatch %v vs %v", e.Op, e.A, e.B)
}

// Is reports whether target is ErrShapeMismatch, so that
// errors.Is(err, ErrShapeMismatch) holds for every ShapeError.
func (e *ShapeError) Is(target error) bool {
	return target == ErrShapeMismatch
}

// shapeError builds a ShapeError for op with the shapes of both operands.
func shapeError(op string, a, b *Matrix) error {
	return &ShapeError{Op: op, A: a.Shape(), B: b.Shape()}
}
