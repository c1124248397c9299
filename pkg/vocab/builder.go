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

package vocab

import (
	"sort"
)

// Tokenizer is the subset of the text-processing contract the builder needs.
// Declared locally to avoid a dependency cycle with pkg/textproc.
type Tokenizer interface {
	Tokenize(sentence string) []string
}

// RankTokenCounts counts token occurrences across sentences and returns the
// counts ordered by descending frequency. Ties are broken by first
// occurrence in the corpus, so the ranking is reproducible across runs
// given the same corpus.
func RankTokenCounts(tokenizer Tokenizer, sentences []string) []TokenCount {
	counts := make(map[string]int)
	firstSeen := make(map[string]int)
	order := 0

	for _, sentence := range sentences {
		for _, token := range tokenizer.Tokenize(sentence) {
			if _, seen := counts[token]; !seen {
				firstSeen[token] = order
				order++
			}
			counts[token]++
		}
	}

	ranked := make([]TokenCount, 0, len(counts))
	for token, count := range counts {
		ranked = append(ranked, TokenCount{Token: token, Count: count})
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Count != ranked[j].Count {
			return ranked[i].Count > ranked[j].Count
		}

		return firstSeen[ranked[i].Token] < firstSeen[ranked[j].Token]
	})

	return ranked
}

// BuildFromCorpus tokenizes the sentences, ranks the token frequencies and
// constructs a Vocabulary bounded by the config.
func BuildFromCorpus(config *Config, tokenizer Tokenizer, sentences []string) (*Vocabulary, error) {
	return NewVocabulary(config, RankTokenCounts(tokenizer, sentences))
}
