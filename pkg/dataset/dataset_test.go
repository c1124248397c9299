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

package dataset_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/dataset"
)

// makeExamples builds positive examples from texts.
func makeExamples(texts ...string) []dataset.Example {
	examples := make([]dataset.Example, len(texts))
	for i, text := range texts {
		examples[i] = dataset.Example{Text: text, Label: 1}
	}
	return examples
}

func TestReadExamples(t *testing.T) {
	corpus := strings.Join([]string{
		"1\tGreat, GREAT movie!!",
		"0\tAwful. Simply awful.",
		"",
		"1\tLoved every minute of it",
	}, "\n")

	examples, err := dataset.ReadExamples(strings.NewReader(corpus))
	require.NoError(t, err)
	require.Len(t, examples, 3)

	assert.Equal(t, dataset.Example{Text: "Great, GREAT movie!!", Label: 1}, examples[0])
	assert.Equal(t, dataset.Example{Text: "Awful. Simply awful.", Label: 0}, examples[1])
	assert.Equal(t, int32(1), examples[2].Label)
}

func TestReadExamples_Malformed(t *testing.T) {
	cases := []struct {
		name   string
		corpus string
	}{
		{name: "no tab separator", corpus: "1 Great movie"},
		{name: "non-numeric label", corpus: "pos\tGreat movie"},
		{name: "non-binary label", corpus: "2\tGreat movie"},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			_, err := dataset.ReadExamples(strings.NewReader(c.corpus))
			require.ErrorIs(t, err, dataset.ErrMalformedRecord)
		})
	}
}

func TestSplit_Validate(t *testing.T) {
	split := &dataset.Split{
		Train: makeExamples("a good film", "a bad film"),
		Test:  makeExamples("an average film"),
	}
	require.NoError(t, split.Validate())

	overlapping := &dataset.Split{
		Train: makeExamples("a good film"),
		Test:  makeExamples("a good film"),
	}
	require.Error(t, overlapping.Validate())
}

func TestTexts(t *testing.T) {
	examples := makeExamples("first", "second")
	assert.Equal(t, []string{"first", "second"}, dataset.Texts(examples))
}

func TestChunk(t *testing.T) {
	examples := makeExamples("a", "b", "c", "d", "e")

	chunks, err := dataset.Chunk(examples, 2)
	require.NoError(t, err)
	require.Len(t, chunks, 3)
	assert.Len(t, chunks[0], 2)
	assert.Len(t, chunks[1], 2)
	assert.Len(t, chunks[2], 1)

	_, err = dataset.Chunk(examples, 0)
	require.Error(t, err)
}
