// Copyright 2026 Hebb ML. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebb-ml/hebb/matrix"
	"github.com/hebb-ml/hebb/nn"
)

// End-to-end check through the public surface: construct, infer, train.
func TestPublicAPI(t *testing.T) {
	net, err := nn.New([]int{2, 4, 2}, nn.Config{LearningRate: 0.1, Seed: 1})
	require.NoError(t, err)

	input, err := matrix.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)
	expected, err := matrix.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)

	out, err := net.Feedforward(input)
	require.NoError(t, err)
	assert.InDelta(t, 1.0, out.At(0, 0)+out.At(1, 0), 1e-9)

	initial, err := net.Loss(input, expected)
	require.NoError(t, err)

	for i := 0; i < 100; i++ {
		require.NoError(t, net.Train(input, expected))
	}

	final, err := net.Loss(input, expected)
	require.NoError(t, err)
	assert.Less(t, final, initial)

	_, err = nn.New([]int{5}, nn.Config{LearningRate: 0.1})
	assert.ErrorIs(t, err, nn.ErrInvalidConfig)
}
