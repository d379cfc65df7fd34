// Package train drives network training and evaluation over loaded
// datasets: epoch sequencing, per-sample training steps, progress logging,
// and argmax-accuracy measurement.
package train

import (
	"fmt"
	"log"
	"math/rand"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
	"gonum.org/v1/gonum/floats"

	"github.com/hebb-ml/hebb/internal/dataset"
	"github.com/hebb-ml/hebb/internal/nn"
)

// Config controls the training loop.
type Config struct {
	// Epochs is the number of full passes over the training set. Must be > 0.
	Epochs int

	// Shuffle reorders samples before every epoch.
	Shuffle bool

	// Seed makes shuffling deterministic when non-zero.
	Seed int64

	// LogEvery logs progress after that many samples within an epoch.
	// Zero disables per-sample progress logging.
	LogEvery int
}

// Trainer runs epochs of single-sample training steps against one network.
type Trainer struct {
	net *nn.Network
	cfg Config
	rnd *rand.Rand
}

// New creates a trainer for net.
func New(net *nn.Network, cfg Config) (*Trainer, error) {
	if net == nil {
		return nil, fmt.Errorf("train: nil network")
	}
	if cfg.Epochs <= 0 {
		return nil, fmt.Errorf("train: epochs %d must be > 0", cfg.Epochs)
	}
	var rnd *rand.Rand
	if cfg.Seed != 0 {
		rnd = rand.New(rand.NewSource(cfg.Seed))
	}
	return &Trainer{net: net, cfg: cfg, rnd: rnd}, nil
}

// Run trains over samples for the configured number of epochs and returns
// the average per-sample error of the final epoch.
//
// The error reported for each sample is the mean squared error of the
// network output before that sample's update, matching what a caller
// watching convergence cares about.
func (t *Trainer) Run(samples []dataset.Sample) (float64, error) {
	if len(samples) == 0 {
		return 0, fmt.Errorf("train: no samples")
	}

	order := make([]int, len(samples))
	for i := range order {
		order[i] = i
	}

	var epochErr float64
	for epoch := 1; epoch <= t.cfg.Epochs; epoch++ {
		if t.cfg.Shuffle {
			t.shuffle(order)
		}

		total := 0.0
		for done, idx := range order {
			s := samples[idx]

			mse, err := t.net.Loss(s.Input, s.Expected)
			if err != nil {
				return 0, fmt.Errorf("train: epoch %d sample %d: %w", epoch, idx, err)
			}
			if err := t.net.Train(s.Input, s.Expected); err != nil {
				return 0, fmt.Errorf("train: epoch %d sample %d: %w", epoch, idx, err)
			}
			total += mse

			if t.cfg.LogEvery > 0 && (done+1)%t.cfg.LogEvery == 0 {
				log.Printf("train: epoch %d: processed %d/%d samples", epoch, done+1, len(samples))
			}
		}

		epochErr = total / float64(len(samples))
		log.Printf("train: epoch %d/%d complete, average error %g", epoch, t.cfg.Epochs, epochErr)
	}
	return epochErr, nil
}

func (t *Trainer) shuffle(order []int) {
	swap := func(i, j int) { order[i], order[j] = order[j], order[i] }
	if t.rnd != nil {
		t.rnd.Shuffle(len(order), swap)
	} else {
		rand.Shuffle(len(order), swap)
	}
}

// Accuracy summarizes an evaluation run.
type Accuracy struct {
	Correct int
	Total   int
}

// Ratio returns the fraction of correctly classified samples.
func (a Accuracy) Ratio() float64 {
	if a.Total == 0 {
		return 0
	}
	return float64(a.Correct) / float64(a.Total)
}

// Evaluate classifies every sample with the network and counts how often
// the argmax of the output matches the sample label.
//
// Samples are fanned out across goroutines; Feedforward is pure so the
// network state is only read, never written.
func Evaluate(net *nn.Network, samples []dataset.Sample) (Accuracy, error) {
	if len(samples) == 0 {
		return Accuracy{}, nil
	}

	workers := runtime.GOMAXPROCS(0)
	if workers > len(samples) {
		workers = len(samples)
	}
	chunk := (len(samples) + workers - 1) / workers

	var correct atomic.Int64
	var g errgroup.Group
	for lo := 0; lo < len(samples); lo += chunk {
		hi := lo + chunk
		if hi > len(samples) {
			hi = len(samples)
		}
		part := samples[lo:hi]
		g.Go(func() error {
			local := 0
			for _, s := range part {
				out, err := net.Feedforward(s.Input)
				if err != nil {
					return err
				}
				if floats.MaxIdx(out.Data()) == s.Label {
					local++
				}
			}
			correct.Add(int64(local))
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return Accuracy{}, fmt.Errorf("train: evaluate: %w", err)
	}
	return Accuracy{Correct: int(correct.Load()), Total: len(samples)}, nil
}
