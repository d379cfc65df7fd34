package nn

import (
	"math"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// ceEpsilon guards the log against zero predictions.
const ceEpsilon = 1e-12

// CrossEntropy returns the cross-entropy loss between a prediction matrix
// (softmax output, columns are samples) and a one-hot expected matrix of the
// same shape, averaged over the sample columns:
//
//	-sum(expected(i,j) * log(prediction(i,j))) / cols
//
// This is the loss whose gradient the Train output delta
// (activation - expected) corresponds to.
func CrossEntropy(prediction, expected *matrix.Matrix) (float64, error) {
	if !prediction.Shape().Equal(expected.Shape()) {
		return 0, &matrix.ShapeError{Op: "CrossEntropy", A: prediction.Shape(), B: expected.Shape()}
	}
	total := 0.0
	for i := 0; i < prediction.Rows(); i++ {
		for j := 0; j < prediction.Cols(); j++ {
			if e := expected.At(i, j); e != 0 {
				total -= e * math.Log(prediction.At(i, j)+ceEpsilon)
			}
		}
	}
	return total / float64(prediction.Cols()), nil
}
