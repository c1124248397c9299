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

// Package vocab implements the frequency-ranked vocabulary table that maps
// review tokens to model input indices and back.
package vocab

import (
	"errors"
	"fmt"
)

const (
	// PadIndex is the reserved index used as padding filler.
	PadIndex int32 = 0
	// StartIndex is the reserved index marking the start of a sequence.
	StartIndex int32 = 1
	// UnknownIndex is the reserved index for out-of-vocabulary tokens.
	UnknownIndex int32 = 2

	// ReservedIndices is the number of indices not assignable to tokens.
	ReservedIndices = 3
)

var (
	// ErrInvalidIndex is returned by TokenOf for indices with no assigned
	// token.
	ErrInvalidIndex = errors.New("index has no assigned token")
	// ErrInvalidConfig is returned when a vocabulary is configured too small
	// to hold the reserved indices.
	ErrInvalidConfig = errors.New("invalid vocabulary configuration")
)

// Config holds the construction bounds for a Vocabulary.
type Config struct {
	// VocabSize is the upper bound on distinct indices, reserved ones
	// included. Must be at least ReservedIndices.
	VocabSize int `json:"vocabSize"`
}

// defaultVocabSize matches the bound commonly used for the review corpus.
const defaultVocabSize = 10000

// DefaultConfig returns a default configuration for the vocabulary.
func DefaultConfig() *Config {
	return &Config{
		VocabSize: defaultVocabSize,
	}
}

// TokenCount pairs a token with its corpus frequency.
type TokenCount struct {
	Token string
	Count int
}

// Vocabulary is an immutable bidirectional mapping between tokens and
// indices. Indices 0-2 are reserved (padding, start, unknown); assigned
// indices start at ReservedIndices, most frequent token first.
//
// A Vocabulary is safe for concurrent use once constructed.
type Vocabulary struct {
	size    int
	indexOf map[string]int32
	tokenOf []string // tokenOf[i-ReservedIndices] is the token of index i
}

// NewVocabulary builds a Vocabulary from frequency-ranked token counts.
// The counts must be ordered by descending frequency, ties broken by first
// occurrence in the corpus; RankTokenCounts produces this ordering.
// Tokens beyond the VocabSize bound are dropped and will map to
// UnknownIndex.
func NewVocabulary(config *Config, counts []TokenCount) (*Vocabulary, error) {
	if config == nil {
		config = DefaultConfig()
	}
	if config.VocabSize < ReservedIndices {
		return nil, fmt.Errorf("%w: vocabSize %d is below the %d reserved indices",
			ErrInvalidConfig, config.VocabSize, ReservedIndices)
	}

	assignable := config.VocabSize - ReservedIndices
	if len(counts) < assignable {
		assignable = len(counts)
	}

	v := &Vocabulary{
		size:    ReservedIndices + assignable,
		indexOf: make(map[string]int32, assignable),
		tokenOf: make([]string, assignable),
	}

	for i := 0; i < assignable; i++ {
		token := counts[i].Token
		if _, seen := v.indexOf[token]; seen {
			return nil, fmt.Errorf("%w: duplicate token %q in ranked counts",
				ErrInvalidConfig, token)
		}

		//nolint:gosec // bounded by VocabSize
		idx := int32(ReservedIndices + i)
		v.indexOf[token] = idx
		v.tokenOf[i] = token
	}

	return v, nil
}

// IndexOf returns the index assigned to the token, or UnknownIndex if the
// token was not among the most frequent tokens at construction. It never
// fails.
func (v *Vocabulary) IndexOf(token string) int32 {
	if idx, ok := v.indexOf[token]; ok {
		return idx
	}

	return UnknownIndex
}

// TokenOf is the inverse lookup. It fails with ErrInvalidIndex for the
// reserved indices and for indices outside the assigned range.
func (v *Vocabulary) TokenOf(index int32) (string, error) {
	if index < ReservedIndices || int(index) >= v.size {
		return "", fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}

	return v.tokenOf[index-ReservedIndices], nil
}

// Size returns the number of indices tracked by the vocabulary, reserved
// ones included.
func (v *Vocabulary) Size() int {
	return v.size
}

// AssignedTokens returns the tokens in index order, starting at
// ReservedIndices. Used for embedding-matrix seeding and weight inspection.
func (v *Vocabulary) AssignedTokens() []string {
	tokens := make([]string, len(v.tokenOf))
	copy(tokens, v.tokenOf)
	return tokens
}
