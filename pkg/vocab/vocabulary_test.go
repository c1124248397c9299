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
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/13301132691/nlp-estimator-tutorial/pkg/vocab"
)

func TestVocabulary_FrequencyOrdering(t *testing.T) {
	counts := []TokenCount{
		{Token: "the", Count: 100},
		{Token: "a", Count: 90},
		{Token: "dog", Count: 5},
	}

	v, err := NewVocabulary(&Config{VocabSize: 6}, counts)
	require.NoError(t, err)

	assert.Equal(t, int32(3), v.IndexOf("the"))
	assert.Equal(t, int32(4), v.IndexOf("a"))
	assert.Equal(t, int32(5), v.IndexOf("dog"))
	assert.Less(t, v.IndexOf("the"), v.IndexOf("a"))
	assert.Less(t, v.IndexOf("a"), v.IndexOf("dog"))
}

func TestVocabulary_OOVFallback(t *testing.T) {
	v, err := NewVocabulary(&Config{VocabSize: 5}, []TokenCount{
		{Token: "great", Count: 10},
		{Token: "movie", Count: 8},
	})
	require.NoError(t, err)

	assert.Equal(t, UnknownIndex, v.IndexOf("unseen"))
	// Tokens dropped by the size bound fall back to UnknownIndex too.
	v, err = NewVocabulary(&Config{VocabSize: 4}, []TokenCount{
		{Token: "great", Count: 10},
		{Token: "movie", Count: 8},
	})
	require.NoError(t, err)
	assert.Equal(t, int32(3), v.IndexOf("great"))
	assert.Equal(t, UnknownIndex, v.IndexOf("movie"))
}

func TestVocabulary_RoundTrip(t *testing.T) {
	counts := []TokenCount{
		{Token: "great", Count: 10},
		{Token: "movie", Count: 8},
		{Token: "bad", Count: 3},
	}

	v, err := NewVocabulary(&Config{VocabSize: 6}, counts)
	require.NoError(t, err)

	for i := int32(ReservedIndices); int(i) < v.Size(); i++ {
		token, err := v.TokenOf(i)
		require.NoError(t, err)
		assert.Equal(t, i, v.IndexOf(token), "round trip mismatch for index %d", i)
	}
}

func TestVocabulary_TokenOfInvalidIndex(t *testing.T) {
	v, err := NewVocabulary(&Config{VocabSize: 5}, []TokenCount{
		{Token: "great", Count: 10},
	})
	require.NoError(t, err)

	cases := []struct {
		name  string
		index int32
	}{
		{name: "padding index", index: PadIndex},
		{name: "start index", index: StartIndex},
		{name: "unknown index", index: UnknownIndex},
		{name: "negative index", index: -1},
		{name: "beyond size", index: 100},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := v.TokenOf(c.index)
			require.ErrorIs(t, err, ErrInvalidIndex)
		})
	}
}

func TestVocabulary_TooSmall(t *testing.T) {
	_, err := NewVocabulary(&Config{VocabSize: 2}, nil)
	require.ErrorIs(t, err, ErrInvalidConfig)
}

func TestVocabulary_SnapshotRoundTrip(t *testing.T) {
	v, err := NewVocabulary(&Config{VocabSize: 6}, []TokenCount{
		{Token: "great", Count: 10},
		{Token: "movie", Count: 8},
		{Token: "bad", Count: 3},
	})
	require.NoError(t, err)

	b, err := v.Marshal()
	require.NoError(t, err)

	// Canonical encoding: equal vocabularies serialize identically.
	b2, err := v.Marshal()
	require.NoError(t, err)
	assert.Equal(t, b, b2)

	restored, err := Unmarshal(b)
	require.NoError(t, err)
	assert.Equal(t, v.Size(), restored.Size())
	assert.Equal(t, v.AssignedTokens(), restored.AssignedTokens())
	assert.Equal(t, v.IndexOf("movie"), restored.IndexOf("movie"))
}
