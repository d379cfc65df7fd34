package nn

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// ErrInvalidConfig is the sentinel matched by errors.Is for every network
// configuration failure: fewer than two layers, a non-positive layer width,
// or out-of-range hyperparameters.
var ErrInvalidConfig = errors.New("nn: invalid configuration")

// Config holds the hyperparameters a network is constructed with.
//
// Each network carries its own Config, so multiple networks with different
// hyperparameters can coexist in one process.
type Config struct {
	// LearningRate scales every gradient-descent update. Must be > 0.
	LearningRate float64

	// L2Lambda adds lambda*weight to each weight gradient (L2 weight
	// decay). Must be >= 0; zero disables regularization.
	L2Lambda float64

	// DeltaGain rescales the delta propagated to the previous layer,
	// countering vanishing gradients in deep stacks. Must be > 0 when set;
	// zero means the default of 1 (no rescaling).
	DeltaGain float64

	// Init selects the weight/bias initialization scheme.
	Init InitStrategy

	// UniformLimit is the half-width used by InitUniform. Zero means the
	// default of 0.05.
	UniformLimit float64

	// Seed makes initialization deterministic when non-zero.
	Seed int64
}

// withDefaults returns the config with unset optional fields filled in.
func (c Config) withDefaults() Config {
	if c.DeltaGain == 0 {
		c.DeltaGain = 1
	}
	if c.UniformLimit == 0 {
		c.UniformLimit = 0.05
	}
	return c
}

// validate reports the first configuration violation, if any.
func (c Config) validate() error {
	if c.LearningRate <= 0 {
		return fmt.Errorf("%w: learning rate %g must be > 0", ErrInvalidConfig, c.LearningRate)
	}
	if c.L2Lambda < 0 {
		return fmt.Errorf("%w: L2 lambda %g must be >= 0", ErrInvalidConfig, c.L2Lambda)
	}
	if c.DeltaGain < 0 {
		return fmt.Errorf("%w: delta gain %g must be > 0", ErrInvalidConfig, c.DeltaGain)
	}
	if c.UniformLimit < 0 {
		return fmt.Errorf("%w: uniform limit %g must be >= 0", ErrInvalidConfig, c.UniformLimit)
	}
	return nil
}

// Network is a fully connected feedforward network.
//
// For layer widths {l0, ..., ln} it owns n weight matrices, the i-th of
// shape [l(i+1) x l(i)], and n bias vectors of shape [l(i+1) x 1]. Hidden
// transitions apply ReLU, the final transition applies column-wise Softmax.
//
// Weights and biases mutate only through Train; accessors hand out clones.
type Network struct {
	layers  []int
	weights []*matrix.Matrix
	biases  []*matrix.Matrix
	cfg     Config
}

// New constructs a network with the given layer widths.
//
// layers[0] is the input width and layers[len-1] the output width; at least
// two layers are required and every width must be positive. Weights and
// biases for each transition are initialized per cfg.Init.
func New(layers []int, cfg Config) (*Network, error) {
	if len(layers) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 layers, got %d", ErrInvalidConfig, len(layers))
	}
	for i, width := range layers {
		if width <= 0 {
			return nil, fmt.Errorf("%w: layer %d has non-positive width %d", ErrInvalidConfig, i, width)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	cfg = cfg.withDefaults()

	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}

	n := &Network{
		layers:  append([]int(nil), layers...),
		weights: make([]*matrix.Matrix, len(layers)-1),
		biases:  make([]*matrix.Matrix, len(layers)-1),
		cfg:     cfg,
	}
	for i := 0; i < len(layers)-1; i++ {
		fanIn, fanOut := layers[i], layers[i+1]

		w, err := initMatrix(cfg.Init, fanOut, fanIn, fanIn, fanOut, cfg.UniformLimit, rnd)
		if err != nil {
			return nil, err
		}
		b, err := initMatrix(cfg.Init, fanOut, 1, fanIn, fanOut, cfg.UniformLimit, rnd)
		if err != nil {
			return nil, err
		}
		n.weights[i] = w
		n.biases[i] = b
	}
	return n, nil
}

// Layers returns a copy of the layer widths.
func (n *Network) Layers() []int {
	return append([]int(nil), n.layers...)
}

// Config returns the hyperparameters the network was constructed with,
// after defaulting.
func (n *Network) Config() Config {
	return n.cfg
}

// Weight returns a clone of the weight matrix for transition i.
func (n *Network) Weight(i int) *matrix.Matrix {
	return n.weights[i].Clone()
}

// Bias returns a clone of the bias vector for transition i.
func (n *Network) Bias(i int) *matrix.Matrix {
	return n.biases[i].Clone()
}

// checkInput verifies that the sample widths agree with the declared layer
// widths before anything is computed or mutated.
func (n *Network) checkInput(op string, input *matrix.Matrix) error {
	if input.Rows() != n.layers[0] {
		return &matrix.ShapeError{
			Op: op,
			A:  input.Shape(),
			B:  matrix.Shape{Rows: n.layers[0], Cols: input.Cols()},
		}
	}
	return nil
}

// addBias adds the [out x 1] bias vector to every column of z.
//
// Expressed through the engine as bias * ones(1, cols); the engine itself
// never broadcasts.
func addBias(z, bias *matrix.Matrix) (*matrix.Matrix, error) {
	if z.Cols() == 1 {
		return z.Add(bias)
	}
	ones, err := matrix.Full(1, z.Cols(), 1)
	if err != nil {
		return nil, err
	}
	expanded, err := bias.MatMul(ones)
	if err != nil {
		return nil, err
	}
	return z.Add(expanded)
}

// forward runs the network on input. When cache is true it also returns
// every pre-activation z and every activation, with the input as
// activations[0]; Train consumes those for backpropagation.
func (n *Network) forward(input *matrix.Matrix, cache bool) (out *matrix.Matrix, zs, activations []*matrix.Matrix, err error) {
	activation := input
	if cache {
		zs = make([]*matrix.Matrix, 0, len(n.weights))
		activations = make([]*matrix.Matrix, 0, len(n.weights)+1)
		activations = append(activations, input)
	}

	for i := range n.weights {
		wa, err := n.weights[i].MatMul(activation)
		if err != nil {
			return nil, nil, nil, err
		}
		z, err := addBias(wa, n.biases[i])
		if err != nil {
			return nil, nil, nil, err
		}
		if cache {
			zs = append(zs, z)
		}

		if i < len(n.weights)-1 {
			activation = ReLU(z)
		} else {
			activation = Softmax(z)
		}
		if cache {
			activations = append(activations, activation)
		}
	}
	return activation, zs, activations, nil
}

// Feedforward runs an inference pass and returns the final activation.
//
// The input must have layers[0] rows; any column count is accepted, each
// column being one sample. Feedforward is pure: it never mutates network
// state, so repeated calls with unchanged weights yield identical output.
func (n *Network) Feedforward(input *matrix.Matrix) (*matrix.Matrix, error) {
	if err := n.checkInput("Feedforward", input); err != nil {
		return nil, err
	}
	out, _, _, err := n.forward(input, false)
	return out, err
}

// Train performs one backpropagation step with gradient-descent updates.
//
// The output delta is activation - expected, which is the loss derivative
// for a softmax output layer paired with cross-entropy loss. Changing the
// output activation requires changing this delta with it; the two are a
// single invariant, not independent choices.
//
// Multi-column inputs are allowed; gradients are then summed over the batch
// columns. All shape validation happens before any weight or bias mutates,
// and each layer's propagated delta is computed from the pre-update weights.
func (n *Network) Train(input, expected *matrix.Matrix) error {
	if err := n.checkInput("Train", input); err != nil {
		return err
	}
	last := len(n.layers) - 1
	if expected.Rows() != n.layers[last] || expected.Cols() != input.Cols() {
		return &matrix.ShapeError{
			Op: "Train",
			A:  expected.Shape(),
			B:  matrix.Shape{Rows: n.layers[last], Cols: input.Cols()},
		}
	}

	_, zs, activations, err := n.forward(input, true)
	if err != nil {
		return err
	}

	// Softmax + cross-entropy output delta.
	delta, err := activations[len(activations)-1].Sub(expected)
	if err != nil {
		return err
	}

	for i := len(n.weights) - 1; i >= 0; i-- {
		weightGrad, err := delta.MatMul(activations[i].Transpose())
		if err != nil {
			return err
		}
		if n.cfg.L2Lambda > 0 {
			weightGrad, err = weightGrad.Add(n.weights[i].Scale(n.cfg.L2Lambda))
			if err != nil {
				return err
			}
		}
		biasGrad, err := sumColumns(delta)
		if err != nil {
			return err
		}

		// The propagated delta must see the pre-update weights.
		if i > 0 {
			weightedErr, err := n.weights[i].Transpose().MatMul(delta)
			if err != nil {
				return err
			}
			delta, err = weightedErr.Hadamard(ReLUDerivative(zs[i-1]))
			if err != nil {
				return err
			}
			if n.cfg.DeltaGain != 1 {
				delta = delta.Scale(n.cfg.DeltaGain)
			}
		}

		n.weights[i], err = n.weights[i].Sub(weightGrad.Scale(n.cfg.LearningRate))
		if err != nil {
			return err
		}
		n.biases[i], err = n.biases[i].Sub(biasGrad.Scale(n.cfg.LearningRate))
		if err != nil {
			return err
		}
	}
	return nil
}

// sumColumns reduces m to a [rows x 1] vector by summing across columns.
// For a single-column matrix this is the matrix itself.
func sumColumns(m *matrix.Matrix) (*matrix.Matrix, error) {
	if m.Cols() == 1 {
		return m, nil
	}
	ones, err := matrix.Full(m.Cols(), 1, 1)
	if err != nil {
		return nil, err
	}
	return m.MatMul(ones)
}

// Loss runs a forward pass and returns the mean squared error of the output
// against expected. Convenience for progress reporting.
func (n *Network) Loss(input, expected *matrix.Matrix) (float64, error) {
	out, err := n.Feedforward(input)
	if err != nil {
		return 0, err
	}
	return matrix.MSE(out, expected)
}
