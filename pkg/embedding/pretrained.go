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

// Package embedding seeds the downstream model's embedding matrix from
// externally pre-trained word vectors.
package embedding

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// ErrMalformedVector is returned when a vector line cannot be parsed or has
// an inconsistent dimension.
var ErrMalformedVector = errors.New("malformed word vector")

// Vectors is a token to pre-trained vector table of a single dimension.
type Vectors struct {
	Dim  int
	data map[string][]float32
}

// Lookup returns the pre-trained vector of the token, if present.
func (v *Vectors) Lookup(token string) ([]float32, bool) {
	vec, ok := v.data[token]
	return vec, ok
}

// Len returns the number of tokens in the table.
func (v *Vectors) Len() int {
	return len(v.data)
}

// ReadVectors parses a GloVe-style text table: one `token v1 v2 ... vd`
// line per token, whitespace separated. All lines must share one
// dimension.
func ReadVectors(r io.Reader) (*Vectors, error) {
	vectors := &Vectors{data: make(map[string][]float32)}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		fields := strings.Fields(scanner.Text())
		if len(fields) == 0 {
			continue
		}
		if len(fields) < 2 {
			return nil, fmt.Errorf("%w: line %d has no vector components", ErrMalformedVector, lineNo)
		}

		token := fields[0]
		vec := make([]float32, len(fields)-1)
		for i, field := range fields[1:] {
			val, err := strconv.ParseFloat(field, 32)
			if err != nil {
				return nil, fmt.Errorf("%w: line %d component %d: %v", ErrMalformedVector, lineNo, i, err)
			}

			vec[i] = float32(val)
		}

		if vectors.Dim == 0 {
			vectors.Dim = len(vec)
		} else if len(vec) != vectors.Dim {
			return nil, fmt.Errorf("%w: line %d has dimension %d, expected %d",
				ErrMalformedVector, lineNo, len(vec), vectors.Dim)
		}

		vectors.data[token] = vec
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read word vectors: %w", err)
	}

	return vectors, nil
}
