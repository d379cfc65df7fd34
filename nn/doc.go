// Copyright 2026 Hebb ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides the public API for the feedforward neural network.
//
// # Overview
//
// A Network is constructed from an ordered list of layer widths and a
// hyperparameter Config. One weight matrix and one bias vector are allocated
// per layer transition; hidden transitions apply ReLU and the final
// transition applies column-wise softmax:
//
//	net, err := nn.New([]int{784, 64, 32, 10}, nn.Config{
//	    LearningRate: 0.001,
//	    Init:         nn.InitHe,
//	})
//
//	output, err := net.Feedforward(input) // pure inference
//	err = net.Train(input, expected)      // one backprop + SGD step
//
// Inputs are matrices whose rows match the input width; multiple samples may
// be presented as columns.
//
// # Output delta invariant
//
// Train computes the output-layer delta as activation - expected. That
// formula is the derivative of cross-entropy loss through a softmax output
// layer; it is only correct for that pairing. Swapping the output activation
// requires swapping the delta computation with it.
package nn
