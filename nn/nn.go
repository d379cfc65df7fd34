// Copyright 2026 Hebb ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/hebb-ml/hebb/internal/matrix"
	"github.com/hebb-ml/hebb/internal/nn"
)

// Network is a fully connected feedforward network trained by
// backpropagation with gradient descent.
type Network = nn.Network

// Config holds the hyperparameters a network is constructed with.
type Config = nn.Config

// InitStrategy selects the weight/bias initialization scheme.
type InitStrategy = nn.InitStrategy

// Initialization strategies.
const (
	InitHe      InitStrategy = nn.InitHe
	InitXavier  InitStrategy = nn.InitXavier
	InitUniform InitStrategy = nn.InitUniform
	InitZero    InitStrategy = nn.InitZero
)

// ErrInvalidConfig is matched by errors.Is for every configuration failure.
var ErrInvalidConfig = nn.ErrInvalidConfig

// New constructs a network with the given layer widths; layers[0] is the
// input width and layers[len-1] the output width.
func New(layers []int, cfg Config) (*Network, error) {
	return nn.New(layers, cfg)
}

// ParseInitStrategy converts a strategy name ("he", "xavier", "uniform",
// "zero") into an InitStrategy.
func ParseInitStrategy(name string) (InitStrategy, error) {
	return nn.ParseInitStrategy(name)
}

// Activation library

// Sigmoid applies 1/(1+e^-x) element-wise.
func Sigmoid(m *matrix.Matrix) *matrix.Matrix { return nn.Sigmoid(m) }

// SigmoidDerivative applies sigma(x)*(1-sigma(x)) element-wise.
func SigmoidDerivative(m *matrix.Matrix) *matrix.Matrix { return nn.SigmoidDerivative(m) }

// ReLU applies max(0, x) element-wise.
func ReLU(m *matrix.Matrix) *matrix.Matrix { return nn.ReLU(m) }

// ReLUDerivative applies 1 for x > 0 and 0 otherwise, element-wise.
func ReLUDerivative(m *matrix.Matrix) *matrix.Matrix { return nn.ReLUDerivative(m) }

// Softmax applies e^x_i / sum_j e^x_j over each column independently.
func Softmax(m *matrix.Matrix) *matrix.Matrix { return nn.Softmax(m) }

// CrossEntropy returns the cross-entropy loss between a softmax prediction
// and a one-hot expected matrix, averaged over the sample columns.
func CrossEntropy(prediction, expected *matrix.Matrix) (float64, error) {
	return nn.CrossEntropy(prediction, expected)
}
