// Package dataset loads training samples from comma-separated text files.
//
// Each line holds the feature values followed by a trailing integer class
// label, e.g. for MNIST-style data: 784 pixel intensities in [0, 255] and a
// digit in [0, 9]. Features are normalized to [0, 1] and labels are one-hot
// encoded, producing matrices ready to feed the network.
package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/hebb-ml/hebb/internal/matrix"
)

// pixelScale normalizes raw feature values into [0, 1].
const pixelScale = 255.0

// logEvery is how many parsed lines pass between progress log entries.
const logEvery = 10000

// Sample pairs one input column vector with its one-hot expected output.
type Sample struct {
	Input    *matrix.Matrix // [features x 1]
	Expected *matrix.Matrix // [classes x 1]
	Label    int
}

// Load reads comma-separated samples from r. Every record must have the
// same number of fields: the features followed by one label in
// [0, classes).
func Load(r io.Reader, classes int) ([]Sample, error) {
	if classes < 2 {
		return nil, fmt.Errorf("dataset: need at least 2 classes, got %d", classes)
	}

	reader := csv.NewReader(r)
	reader.ReuseRecord = true

	var samples []Sample
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("dataset: read record: %w", err)
		}
		if len(record) < 2 {
			return nil, fmt.Errorf("dataset: record %d has %d fields, need features plus a label", len(samples)+1, len(record))
		}

		sample, err := parseRecord(record, classes)
		if err != nil {
			return nil, fmt.Errorf("dataset: record %d: %w", len(samples)+1, err)
		}
		samples = append(samples, sample)

		if len(samples)%logEvery == 0 {
			log.Printf("dataset: processed %d lines", len(samples))
		}
	}
	return samples, nil
}

// LoadFile opens path and loads its samples via Load.
func LoadFile(path string, classes int) ([]Sample, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: open %s: %w", path, err)
	}
	defer f.Close()

	samples, err := Load(f, classes)
	if err != nil {
		return nil, err
	}
	log.Printf("dataset: finished loading %s (%d samples)", path, len(samples))
	return samples, nil
}

// parseRecord converts one CSV record (features..., label) into a Sample.
func parseRecord(record []string, classes int) (Sample, error) {
	features := len(record) - 1

	label, err := strconv.Atoi(record[features])
	if err != nil {
		return Sample{}, fmt.Errorf("invalid label %q: %w", record[features], err)
	}
	if label < 0 || label >= classes {
		return Sample{}, fmt.Errorf("label %d out of range [0, %d)", label, classes)
	}

	input, err := matrix.New(features, 1)
	if err != nil {
		return Sample{}, err
	}
	for i := 0; i < features; i++ {
		v, err := strconv.ParseFloat(record[i], 64)
		if err != nil {
			return Sample{}, fmt.Errorf("invalid feature %q at column %d: %w", record[i], i, err)
		}
		input.Set(i, 0, v/pixelScale)
	}

	expected, err := matrix.New(classes, 1)
	if err != nil {
		return Sample{}, err
	}
	expected.Set(label, 0, 1)

	return Sample{Input: input, Expected: expected, Label: label}, nil
}
