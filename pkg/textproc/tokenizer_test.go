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

package textproc_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/textproc"
)

func TestWordTokenizer_Tokenize(t *testing.T) {
	tokenizer := textproc.NewWordTokenizer()

	cases := []struct {
		name     string
		sentence string
		want     []string
	}{
		{
			name:     "punctuation stripped and lower-cased",
			sentence: "Great, GREAT movie!!",
			want:     []string{"great", "great", "movie"},
		},
		{
			name:     "apostrophe is kept",
			sentence: "It wasn't bad.",
			want:     []string{"it", "wasn't", "bad"},
		},
		{
			name:     "empty sentence",
			sentence: "",
			want:     []string{},
		},
		{
			name:     "whitespace only",
			sentence: "  \t \n ",
			want:     []string{},
		},
		{
			name:     "punctuation only",
			sentence: "?!... --- ;;",
			want:     []string{},
		},
		{
			name:     "mixed punctuation inside words",
			sentence: `"Absolutely" [the] best; film? ever...`,
			want:     []string{"absolutely", "the", "best", "film", "ever"},
		},
		{
			name:     "digits survive",
			sentence: "A solid 10 out of 10!",
			want:     []string{"a", "solid", "10", "out", "of", "10"},
		},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := tokenizer.Tokenize(c.sentence)
			assert.Equal(t, c.want, got)
		})
	}
}

func TestWordTokenizer_Deterministic(t *testing.T) {
	tokenizer := textproc.NewWordTokenizer()

	sentences := []string{
		"Great, GREAT movie!!",
		"Ein grossartiger Film, wirklich.",
		"C'était formidable !",
		"",
	}
	for _, sentence := range sentences {
		first := tokenizer.Tokenize(sentence)
		second := tokenizer.Tokenize(sentence)
		assert.Equal(t, first, second, "tokenize(%q) not deterministic", sentence)
	}
}
