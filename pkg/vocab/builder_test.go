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

package vocab_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/13301132691/nlp-estimator-tutorial/pkg/vocab"
)

// fieldsTokenizer splits on whitespace only, keeping the builder tests
// independent of the word tokenizer's normalization rules.
type fieldsTokenizer struct{}

func (fieldsTokenizer) Tokenize(sentence string) []string {
	return strings.Fields(sentence)
}

func TestRankTokenCounts_DescendingFrequency(t *testing.T) {
	sentences := []string{
		"the movie the movie the",
		"a great movie",
	}

	ranked := RankTokenCounts(fieldsTokenizer{}, sentences)
	require.Len(t, ranked, 4)
	assert.Equal(t, TokenCount{Token: "the", Count: 3}, ranked[0])
	assert.Equal(t, TokenCount{Token: "movie", Count: 3}, ranked[1])
}

func TestRankTokenCounts_TieBreakByFirstOccurrence(t *testing.T) {
	// All tokens occur exactly once; ranking must follow corpus order.
	sentences := []string{"zebra apple mango", "kiwi"}

	ranked := RankTokenCounts(fieldsTokenizer{}, sentences)
	tokens := make([]string, len(ranked))
	for i, tc := range ranked {
		tokens[i] = tc.Token
	}

	assert.Equal(t, []string{"zebra", "apple", "mango", "kiwi"}, tokens)

	// The same corpus ranks identically on a second pass.
	rankedAgain := RankTokenCounts(fieldsTokenizer{}, sentences)
	assert.Equal(t, ranked, rankedAgain)
}

func TestBuildFromCorpus(t *testing.T) {
	sentences := []string{
		"great great movie",
		"bad movie",
	}

	v, err := BuildFromCorpus(&Config{VocabSize: 5}, fieldsTokenizer{}, sentences)
	require.NoError(t, err)

	assert.Equal(t, 5, v.Size())
	assert.Equal(t, int32(3), v.IndexOf("great"))
	assert.Equal(t, int32(4), v.IndexOf("movie"))
	// "bad" did not make the cut.
	assert.Equal(t, UnknownIndex, v.IndexOf("bad"))
}
