// Package main provides the hebb CLI: training and evaluating a feedforward
// classifier on comma-separated datasets.
package main

import (
	"flag"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/hebb-ml/hebb/internal/dataset"
	"github.com/hebb-ml/hebb/internal/train"
	"github.com/hebb-ml/hebb/nn"
)

const version = "v0.1.0"

func main() {
	if len(os.Args) < 2 {
		usage()
		return
	}

	switch os.Args[1] {
	case "version":
		fmt.Printf("hebb %s\n", version)
	case "train":
		if err := runTrain(os.Args[2:]); err != nil {
			fmt.Fprintln(os.Stderr, "error:", err)
			os.Exit(1)
		}
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Println("hebb - feedforward neural network trainer")
	fmt.Println()
	fmt.Println("Commands:")
	fmt.Println("  train      Train a network on a CSV dataset and report accuracy")
	fmt.Println("  version    Show version")
}

func runTrain(args []string) error {
	fs := flag.NewFlagSet("train", flag.ExitOnError)

	trainPath := fs.String("train", "", "path to the training dataset (required)")
	testPath := fs.String("test", "", "path to the test dataset (optional)")
	layersFlag := fs.String("layers", "784,64,32,10", "comma-separated layer widths, input first")
	epochs := fs.Int("epochs", 10, "number of training epochs")
	lr := fs.Float64("lr", 0.001, "learning rate")
	l2 := fs.Float64("l2", 0, "L2 weight-decay lambda")
	gain := fs.Float64("gain", 1, "delta rescaling gain for deep stacks")
	initName := fs.String("init", "he", "init strategy: he, xavier, uniform or zero")
	seed := fs.Int64("seed", 0, "random seed (0 = nondeterministic)")
	shuffle := fs.Bool("shuffle", true, "shuffle samples every epoch")
	logEvery := fs.Int("log-every", 1000, "samples between progress log lines (0 = off)")

	if err := fs.Parse(args); err != nil {
		return err
	}
	if *trainPath == "" {
		return fmt.Errorf("-train is required")
	}

	layers, err := parseLayers(*layersFlag)
	if err != nil {
		return err
	}

	initStrategy, err := nn.ParseInitStrategy(*initName)
	if err != nil {
		return err
	}

	net, err := nn.New(layers, nn.Config{
		LearningRate: *lr,
		L2Lambda:     *l2,
		DeltaGain:    *gain,
		Init:         initStrategy,
		Seed:         *seed,
	})
	if err != nil {
		return err
	}

	classes := layers[len(layers)-1]
	trainSet, err := dataset.LoadFile(*trainPath, classes)
	if err != nil {
		return err
	}
	if len(trainSet) == 0 {
		return fmt.Errorf("no training data in %s", *trainPath)
	}

	trainer, err := train.New(net, train.Config{
		Epochs:   *epochs,
		Shuffle:  *shuffle,
		Seed:     *seed,
		LogEvery: *logEvery,
	})
	if err != nil {
		return err
	}

	finalErr, err := trainer.Run(trainSet)
	if err != nil {
		return err
	}
	fmt.Printf("training complete, final epoch average error %g\n", finalErr)

	if *testPath == "" {
		return nil
	}

	testSet, err := dataset.LoadFile(*testPath, classes)
	if err != nil {
		return err
	}
	acc, err := train.Evaluate(net, testSet)
	if err != nil {
		return err
	}
	fmt.Printf("test accuracy %.2f%% (%d/%d correct)\n", 100*acc.Ratio(), acc.Correct, acc.Total)
	return nil
}

// parseLayers converts "784,64,32,10" into layer widths.
func parseLayers(s string) ([]int, error) {
	parts := strings.Split(s, ",")
	layers := make([]int, 0, len(parts))
	for _, p := range parts {
		n, err := strconv.Atoi(strings.TrimSpace(p))
		if err != nil {
			return nil, fmt.Errorf("invalid layer width %q: %w", p, err)
		}
		layers = append(layers, n)
	}
	return layers, nil
}
