/*
Copyright 2025 The nlp-estimator-tutorial Authors.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

// Package padding normalizes variable-length index sequences to the fixed
// shape consumed by the model input layer.
package padding

import (
	"errors"
	"fmt"
)

// ErrInvalidArgument is returned when the target length or the input batch
// cannot produce a fixed-shape result.
var ErrInvalidArgument = errors.New("invalid padding argument")

// Config holds the padding parameters shared by all batches of a run.
type Config struct {
	// TargetLength is the fixed sequence length after padding/truncation.
	TargetLength int `json:"targetLength"`
	// FillValue is appended to sequences shorter than TargetLength.
	FillValue int32 `json:"fillValue"`
}

// defaultTargetLength bounds review sequences to a fixed model input width.
const defaultTargetLength = 200

// DefaultConfig returns a default configuration for the padder.
func DefaultConfig() *Config {
	return &Config{
		TargetLength: defaultTargetLength,
		FillValue:    0,
	}
}

// Pad normalizes a single sequence to targetLength: longer sequences keep
// their first targetLength elements, shorter ones are right-padded with
// fill. The second return value is the effective length,
// min(len(seq), targetLength): the number of leading elements that are real
// content rather than filler, which a sequential consumer uses to stop at
// the true end of the sequence.
func Pad(seq []int32, targetLength int, fill int32) ([]int32, int32, error) {
	if targetLength <= 0 {
		return nil, 0, fmt.Errorf("%w: target length %d must be positive",
			ErrInvalidArgument, targetLength)
	}

	effective := len(seq)
	if effective > targetLength {
		effective = targetLength
	}

	padded := make([]int32, targetLength)
	copy(padded, seq[:effective])
	for i := effective; i < targetLength; i++ {
		padded[i] = fill
	}

	//nolint:gosec // bounded by targetLength
	return padded, int32(effective), nil
}

// PadBatch normalizes every sequence of the batch to targetLength and
// returns the batch-shaped matrix alongside the per-sequence effective
// lengths. The batch must be non-empty.
func PadBatch(seqs [][]int32, targetLength int, fill int32) ([][]int32, []int32, error) {
	if len(seqs) == 0 {
		return nil, nil, fmt.Errorf("%w: empty batch", ErrInvalidArgument)
	}

	padded := make([][]int32, len(seqs))
	lengths := make([]int32, len(seqs))

	for i, seq := range seqs {
		p, l, err := Pad(seq, targetLength, fill)
		if err != nil {
			return nil, nil, err
		}

		padded[i] = p
		lengths[i] = l
	}

	return padded, lengths, nil
}
