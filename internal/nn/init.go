package nn

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// InitStrategy selects how weights and biases are initialized at network
// construction. The scheme materially affects convergence, so it is part of
// the configuration rather than hard-coded.
type InitStrategy int

const (
	// InitHe draws from U(-limit, limit) with limit = sqrt(2/fanIn).
	// Suited to ReLU hidden layers; the default.
	InitHe InitStrategy = iota

	// InitXavier draws from U(-limit, limit) with
	// limit = sqrt(6/(fanIn+fanOut)).
	InitXavier

	// InitUniform draws from U(-limit, limit) with a caller-supplied limit
	// (Config.UniformLimit).
	InitUniform

	// InitZero fills weights and biases with zeros.
	InitZero
)

// String returns the strategy name as used by ParseInitStrategy.
func (s InitStrategy) String() string {
	switch s {
	case InitHe:
		return "he"
	case InitXavier:
		return "xavier"
	case InitUniform:
		return "uniform"
	case InitZero:
		return "zero"
	default:
		return fmt.Sprintf("InitStrategy(%d)", int(s))
	}
}

// ParseInitStrategy converts a strategy name ("he", "xavier", "uniform",
// "zero") into an InitStrategy.
func ParseInitStrategy(name string) (InitStrategy, error) {
	switch name {
	case "he":
		return InitHe, nil
	case "xavier":
		return InitXavier, nil
	case "uniform":
		return InitUniform, nil
	case "zero":
		return InitZero, nil
	default:
		return 0, fmt.Errorf("%w: unknown init strategy %q", ErrInvalidConfig, name)
	}
}

// initLimit returns the half-width of the uniform distribution for the
// given strategy and layer fan.
func initLimit(s InitStrategy, fanIn, fanOut int, uniformLimit float64) float64 {
	switch s {
	case InitXavier:
		return math.Sqrt(6 / float64(fanIn+fanOut))
	case InitUniform:
		return uniformLimit
	case InitZero:
		return 0
	default: // InitHe
		return math.Sqrt(2 / float64(fanIn))
	}
}

// initMatrix allocates a rows x cols matrix initialized per the strategy.
func initMatrix(s InitStrategy, rows, cols, fanIn, fanOut int, uniformLimit float64, rnd *rand.Rand) (*matrix.Matrix, error) {
	if s == InitZero {
		return matrix.New(rows, cols)
	}
	limit := initLimit(s, fanIn, fanOut, uniformLimit)
	return matrix.Random(rows, cols, -limit, limit, rnd)
}
