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

package textproc

import (
	"github.com/13301132691/nlp-estimator-tutorial/pkg/vocab"
)

// Encoder turns a raw sentence into a vocabulary index sequence.
type Encoder interface {
	// EncodeSentence tokenizes and indexes the sentence. Never fails:
	// unknown tokens map to the out-of-vocabulary index and an empty
	// sentence encodes to the start marker alone.
	EncodeSentence(sentence string) []int32
}

// SequenceIndexer maps token sequences to vocabulary index sequences.
// The vocabulary is shared read-only, so an indexer is safe for concurrent
// use.
type SequenceIndexer struct {
	tokenizer  Tokenizer
	vocabulary *vocab.Vocabulary
}

var _ Encoder = &SequenceIndexer{}

// NewSequenceIndexer creates a SequenceIndexer over the given vocabulary.
func NewSequenceIndexer(tokenizer Tokenizer, vocabulary *vocab.Vocabulary) *SequenceIndexer {
	return &SequenceIndexer{
		tokenizer:  tokenizer,
		vocabulary: vocabulary,
	}
}

// IndexSequence maps tokens to their vocabulary indices, prepending the
// start-of-sequence marker. Unknown tokens map to vocab.UnknownIndex; this
// is the designed fallback, not an error. Output length is always
// 1 + len(tokens).
func (s *SequenceIndexer) IndexSequence(tokens []string) []int32 {
	seq := make([]int32, 0, len(tokens)+1)
	seq = append(seq, vocab.StartIndex)

	for _, token := range tokens {
		seq = append(seq, s.vocabulary.IndexOf(token))
	}

	return seq
}

// EncodeSentence tokenizes the sentence and indexes the resulting tokens.
// An empty sentence encodes to the start marker alone.
func (s *SequenceIndexer) EncodeSentence(sentence string) []int32 {
	return s.IndexSequence(s.tokenizer.Tokenize(sentence))
}
