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

// Package textproc converts raw review sentences into token and index
// sequences.
package textproc

import (
	"strings"
	"unicode"
)

// Tokenizer interface defines the methods for turning a sentence into an
// ordered sequence of normalized tokens.
type Tokenizer interface {
	// Tokenize normalizes the sentence and splits it into tokens.
	// An empty sentence yields an empty slice; this is not an error.
	Tokenize(sentence string) []string
}

// WordTokenizer is a pure, deterministic word-level tokenizer: it strips
// all punctuation except the apostrophe, lower-cases the text, and splits
// on whitespace. Normalization relies only on the unicode tables, so the
// output is independent of locale and environment.
type WordTokenizer struct{}

var _ Tokenizer = WordTokenizer{}

// NewWordTokenizer creates a new WordTokenizer.
func NewWordTokenizer() WordTokenizer {
	return WordTokenizer{}
}

// Tokenize implements Tokenizer.
func (WordTokenizer) Tokenize(sentence string) []string {
	var b strings.Builder
	b.Grow(len(sentence))

	for _, r := range sentence {
		if unicode.IsPunct(r) && r != '\'' {
			continue
		}

		b.WriteRune(unicode.ToLower(r))
	}

	return strings.Fields(b.String())
}
