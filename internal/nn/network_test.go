package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// testConfig is a valid baseline configuration for network tests.
func testConfig() Config {
	return Config{LearningRate: 0.1, Seed: 42}
}

func TestNewRejectsSingleLayer(t *testing.T) {
	_, err := New([]int{5}, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsNonPositiveWidth(t *testing.T) {
	_, err := New([]int{4, 0, 2}, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New([]int{4, -3}, testConfig())
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewRejectsBadHyperparameters(t *testing.T) {
	_, err := New([]int{2, 2}, Config{LearningRate: 0})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New([]int{2, 2}, Config{LearningRate: -0.1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New([]int{2, 2}, Config{LearningRate: 0.1, L2Lambda: -1})
	assert.ErrorIs(t, err, ErrInvalidConfig)

	_, err = New([]int{2, 2}, Config{LearningRate: 0.1, DeltaGain: -2})
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestNewAppliesDefaults(t *testing.T) {
	n, err := New([]int{2, 2}, Config{LearningRate: 0.1})
	require.NoError(t, err)

	cfg := n.Config()
	assert.Equal(t, 1.0, cfg.DeltaGain)
	assert.Equal(t, 0.05, cfg.UniformLimit)
	assert.Zero(t, cfg.L2Lambda)
}

func TestNewAllocatesTransitionShapes(t *testing.T) {
	n, err := New([]int{3, 5, 2}, testConfig())
	require.NoError(t, err)

	assert.Equal(t, matrix.Shape{Rows: 5, Cols: 3}, n.Weight(0).Shape())
	assert.Equal(t, matrix.Shape{Rows: 5, Cols: 1}, n.Bias(0).Shape())
	assert.Equal(t, matrix.Shape{Rows: 2, Cols: 5}, n.Weight(1).Shape())
	assert.Equal(t, matrix.Shape{Rows: 2, Cols: 1}, n.Bias(1).Shape())
}

func TestNewZeroInit(t *testing.T) {
	n, err := New([]int{3, 2}, Config{LearningRate: 0.1, Init: InitZero})
	require.NoError(t, err)

	for _, v := range n.Weight(0).Data() {
		assert.Zero(t, v)
	}
	for _, v := range n.Bias(0).Data() {
		assert.Zero(t, v)
	}
}

func TestNewHeInitWithinLimit(t *testing.T) {
	n, err := New([]int{8, 4}, Config{LearningRate: 0.1, Init: InitHe, Seed: 7})
	require.NoError(t, err)

	limit := math.Sqrt(2.0 / 8.0)
	for _, v := range n.Weight(0).Data() {
		assert.GreaterOrEqual(t, v, -limit)
		assert.Less(t, v, limit)
	}
}

func TestNewXavierInitWithinLimit(t *testing.T) {
	n, err := New([]int{8, 4}, Config{LearningRate: 0.1, Init: InitXavier, Seed: 7})
	require.NoError(t, err)

	limit := math.Sqrt(6.0 / 12.0)
	for _, v := range n.Weight(0).Data() {
		assert.GreaterOrEqual(t, v, -limit)
		assert.Less(t, v, limit)
	}
}

func TestSeededConstructionIsDeterministic(t *testing.T) {
	a, err := New([]int{4, 3, 2}, testConfig())
	require.NoError(t, err)
	b, err := New([]int{4, 3, 2}, testConfig())
	require.NoError(t, err)

	assert.True(t, a.Weight(0).EqualApprox(b.Weight(0), 0))
	assert.True(t, a.Weight(1).EqualApprox(b.Weight(1), 0))
	assert.True(t, a.Bias(0).EqualApprox(b.Bias(0), 0))
}

func TestParseInitStrategy(t *testing.T) {
	for _, name := range []string{"he", "xavier", "uniform", "zero"} {
		s, err := ParseInitStrategy(name)
		require.NoError(t, err)
		assert.Equal(t, name, s.String())
	}

	_, err := ParseInitStrategy("glorot")
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestFeedforwardBatchShapeAndSoftmax(t *testing.T) {
	n, err := New([]int{3, 5, 2}, testConfig())
	require.NoError(t, err)

	input, err := matrix.FromSlice([]float64{
		0.1, 0.5, 0.9, 0.2,
		0.4, 0.3, 0.7, 0.8,
		0.6, 0.2, 0.1, 0.5,
	}, 3, 4)
	require.NoError(t, err)

	out, err := n.Feedforward(input)
	require.NoError(t, err)

	assert.Equal(t, matrix.Shape{Rows: 2, Cols: 4}, out.Shape())
	for j := 0; j < 4; j++ {
		sum := 0.0
		for i := 0; i < 2; i++ {
			sum += out.At(i, j)
		}
		assert.InDelta(t, 1.0, sum, 1e-9)
	}
}

func TestFeedforwardIsPure(t *testing.T) {
	n, err := New([]int{3, 5, 2}, testConfig())
	require.NoError(t, err)

	input, err := matrix.Random(3, 4, 0, 1, nil)
	require.NoError(t, err)

	first, err := n.Feedforward(input)
	require.NoError(t, err)
	second, err := n.Feedforward(input)
	require.NoError(t, err)

	assert.True(t, first.EqualApprox(second, 0), "unchanged weights must yield identical output")
}

func TestFeedforwardRejectsWrongInputWidth(t *testing.T) {
	n, err := New([]int{3, 2}, testConfig())
	require.NoError(t, err)

	input, err := matrix.New(4, 1)
	require.NoError(t, err)

	_, err = n.Feedforward(input)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)
}

func TestTrainRejectsBadShapesBeforeMutating(t *testing.T) {
	n, err := New([]int{3, 2}, testConfig())
	require.NoError(t, err)

	wBefore := n.Weight(0)
	bBefore := n.Bias(0)

	input, err := matrix.New(3, 1)
	require.NoError(t, err)

	// Wrong output width.
	badExpected, err := matrix.New(5, 1)
	require.NoError(t, err)
	err = n.Train(input, badExpected)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// Mismatched column counts.
	wideExpected, err := matrix.New(2, 3)
	require.NoError(t, err)
	err = n.Train(input, wideExpected)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	// Wrong input width.
	badInput, err := matrix.New(4, 1)
	require.NoError(t, err)
	goodExpected, err := matrix.New(2, 1)
	require.NoError(t, err)
	err = n.Train(badInput, goodExpected)
	assert.ErrorIs(t, err, matrix.ErrShapeMismatch)

	assert.True(t, n.Weight(0).EqualApprox(wBefore, 0), "failed Train must not corrupt weights")
	assert.True(t, n.Bias(0).EqualApprox(bBefore, 0), "failed Train must not corrupt biases")
}

func TestTrainConvergesOnFixedSample(t *testing.T) {
	n, err := New([]int{2, 4, 2}, Config{LearningRate: 0.1, Seed: 42})
	require.NoError(t, err)

	input, err := matrix.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)
	expected, err := matrix.FromSlice([]float64{1, 0}, 2, 1)
	require.NoError(t, err)

	initial, err := n.Loss(input, expected)
	require.NoError(t, err)

	for i := 0; i < 500; i++ {
		require.NoError(t, n.Train(input, expected))
	}

	final, err := n.Loss(input, expected)
	require.NoError(t, err)

	assert.Less(t, final, initial/10, "500 steps on a fixed sample must cut MSE by an order of magnitude")
}

func TestTrainConvergesWithRegularizationAndGain(t *testing.T) {
	n, err := New([]int{2, 6, 2}, Config{
		LearningRate: 0.05,
		L2Lambda:     1e-4,
		DeltaGain:    1.5,
		Init:         InitXavier,
		Seed:         11,
	})
	require.NoError(t, err)

	input, err := matrix.FromSlice([]float64{0.5, 1}, 2, 1)
	require.NoError(t, err)
	expected, err := matrix.FromSlice([]float64{0, 1}, 2, 1)
	require.NoError(t, err)

	initial, err := n.Loss(input, expected)
	require.NoError(t, err)

	for i := 0; i < 300; i++ {
		require.NoError(t, n.Train(input, expected))
	}

	final, err := n.Loss(input, expected)
	require.NoError(t, err)
	assert.Less(t, final, initial)
}

func TestTrainAcceptsBatchedColumns(t *testing.T) {
	n, err := New([]int{2, 4, 2}, Config{LearningRate: 0.05, Seed: 3})
	require.NoError(t, err)

	// Three samples as columns; targets one-hot per column.
	input, err := matrix.FromSlice([]float64{
		1, 0, 0.5,
		0, 1, 0.5,
	}, 2, 3)
	require.NoError(t, err)
	expected, err := matrix.FromSlice([]float64{
		1, 0, 1,
		0, 1, 0,
	}, 2, 3)
	require.NoError(t, err)

	initial, err := n.Loss(input, expected)
	require.NoError(t, err)

	for i := 0; i < 200; i++ {
		require.NoError(t, n.Train(input, expected))
	}

	final, err := n.Loss(input, expected)
	require.NoError(t, err)
	assert.Less(t, final, initial)
}

func TestWeightAccessorReturnsClone(t *testing.T) {
	n, err := New([]int{2, 2}, testConfig())
	require.NoError(t, err)

	w := n.Weight(0)
	w.Set(0, 0, 1e6)

	assert.NotEqual(t, 1e6, n.Weight(0).At(0, 0), "external writes must not reach network state")
}
