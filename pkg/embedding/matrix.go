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

package embedding

import (
	"fmt"
	"math/rand"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/vocab"
)

// DefaultDim matches the 50-dimensional pre-trained vectors used with the
// review corpus.
const DefaultDim = 50

// Config holds the parameters for embedding-matrix seeding.
type Config struct {
	// Dim is the embedding dimension.
	Dim int `json:"dim"`
	// Seed drives the random initialization of rows without a pre-trained
	// vector, making the matrix reproducible.
	Seed int64 `json:"seed"`
	// Scale bounds random components to (-Scale, Scale).
	Scale float32 `json:"scale"`
}

// DefaultConfig returns a default configuration for embedding-matrix
// seeding.
func DefaultConfig() *Config {
	return &Config{
		Dim:   DefaultDim,
		Seed:  1,
		Scale: 0.1,
	}
}

// BuildInitMatrix produces a vocabSize x dim matrix seeding the downstream
// embedding layer. The row of every vocabulary token present in the
// pre-trained table equals that table's vector; all other rows, reserved
// indices included, get seeded-random initialization. Deterministic for a
// given vocabulary, table and config.
func BuildInitMatrix(v *vocab.Vocabulary, vectors *Vectors, config *Config) ([][]float32, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.Dim <= 0 {
		return nil, fmt.Errorf("embedding dimension %d must be positive", config.Dim)
	}
	if vectors != nil && vectors.Dim != config.Dim {
		return nil, fmt.Errorf("pre-trained vectors have dimension %d, expected %d",
			vectors.Dim, config.Dim)
	}

	rng := rand.New(rand.NewSource(config.Seed)) //nolint:gosec // reproducible init, not crypto

	matrix := make([][]float32, v.Size())
	for i := range matrix {
		row := make([]float32, config.Dim)
		for j := range row {
			row[j] = (rng.Float32()*2 - 1) * config.Scale
		}

		matrix[i] = row
	}

	if vectors == nil {
		return matrix, nil
	}

	for i, token := range v.AssignedTokens() {
		if vec, ok := vectors.Lookup(token); ok {
			row := matrix[vocab.ReservedIndices+i]
			copy(row, vec)
		}
	}

	return matrix, nil
}
