// Package nn implements a fully connected feedforward neural network trained
// by backpropagation with gradient descent, built entirely on the matrix
// engine in internal/matrix.
package nn

import (
	"math"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// apply returns a new matrix with fn applied to every element.
func apply(m *matrix.Matrix, fn func(float64) float64) *matrix.Matrix {
	out := m.Clone()
	for i := 0; i < out.Rows(); i++ {
		for j := 0; j < out.Cols(); j++ {
			out.Set(i, j, fn(out.At(i, j)))
		}
	}
	return out
}

// Sigmoid applies 1/(1+e^-x) element-wise.
//
// Part of the activation library; the network wiring itself uses ReLU for
// hidden layers and Softmax for the output layer.
func Sigmoid(m *matrix.Matrix) *matrix.Matrix {
	return apply(m, func(x float64) float64 {
		return 1 / (1 + math.Exp(-x))
	})
}

// SigmoidDerivative applies sigma(x)*(1-sigma(x)) element-wise, where x is
// the pre-activation value.
func SigmoidDerivative(m *matrix.Matrix) *matrix.Matrix {
	return apply(m, func(x float64) float64 {
		s := 1 / (1 + math.Exp(-x))
		return s * (1 - s)
	})
}

// ReLU applies max(0, x) element-wise.
func ReLU(m *matrix.Matrix) *matrix.Matrix {
	return apply(m, func(x float64) float64 {
		if x > 0 {
			return x
		}
		return 0
	})
}

// ReLUDerivative applies the ReLU derivative element-wise: 1 for x > 0 and
// 0 otherwise. The derivative at exactly 0 is defined as 0.
func ReLUDerivative(m *matrix.Matrix) *matrix.Matrix {
	return apply(m, func(x float64) float64 {
		if x > 0 {
			return 1
		}
		return 0
	})
}

// Softmax applies e^x_i / sum_j e^x_j over each column independently, so
// every column of the result sums to 1 and every entry lies in (0, 1).
//
// The column maximum is subtracted before exponentiation. That leaves the
// result unchanged mathematically but keeps e^x finite for large logits.
func Softmax(m *matrix.Matrix) *matrix.Matrix {
	out := m.Clone()
	for j := 0; j < out.Cols(); j++ {
		max := out.At(0, j)
		for i := 1; i < out.Rows(); i++ {
			if v := out.At(i, j); v > max {
				max = v
			}
		}
		sum := 0.0
		for i := 0; i < out.Rows(); i++ {
			e := math.Exp(out.At(i, j) - max)
			out.Set(i, j, e)
			sum += e
		}
		for i := 0; i < out.Rows(); i++ {
			out.Set(i, j, out.At(i, j)/sum)
		}
	}
	return out
}
