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

// Package dataset loads the labeled movie-review corpus and splits it into
// batches for the preprocessing pipeline.
package dataset

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"k8s.io/apimachinery/pkg/util/sets"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/utils"
)

// ErrMalformedRecord is returned when a corpus line cannot be parsed.
var ErrMalformedRecord = errors.New("malformed corpus record")

// Example is a single labeled review. Labels are binary: 0 negative,
// 1 positive.
type Example struct {
	Text  string
	Label int32
}

// ReadExamples parses a corpus of `label<TAB>text` lines. Blank lines are
// skipped.
func ReadExamples(r io.Reader) ([]Example, error) {
	var examples []Example

	scanner := bufio.NewScanner(r)
	// Reviews can exceed bufio's default token size.
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		label, text, found := strings.Cut(line, "\t")
		if !found {
			return nil, fmt.Errorf("%w: line %d has no tab separator", ErrMalformedRecord, lineNo)
		}

		parsed, err := strconv.ParseInt(strings.TrimSpace(label), 10, 32)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d label %q: %v", ErrMalformedRecord, lineNo, label, err)
		}
		if parsed != 0 && parsed != 1 {
			return nil, fmt.Errorf("%w: line %d label %d is not binary", ErrMalformedRecord, lineNo, parsed)
		}

		examples = append(examples, Example{Text: text, Label: int32(parsed)})
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read corpus: %w", err)
	}

	return examples, nil
}

// Split partitions the corpus into disjoint train and test sets.
type Split struct {
	Train []Example
	Test  []Example
}

// Validate checks that no review text appears in both partitions.
func (s *Split) Validate() error {
	trainTexts := sets.New[string]()
	for _, ex := range s.Train {
		trainTexts.Insert(ex.Text)
	}

	for _, ex := range s.Test {
		if trainTexts.Has(ex.Text) {
			return fmt.Errorf("train/test sets are not disjoint: %q appears in both", ex.Text)
		}
	}

	return nil
}

// Texts returns the review texts of the examples in order. Used to build
// the vocabulary from the training partition.
func Texts(examples []Example) []string {
	return utils.SliceMap(examples, func(ex Example) string {
		return ex.Text
	})
}

// Chunk splits the examples into consecutive batches of at most batchSize.
// The final batch may be smaller.
func Chunk(examples []Example, batchSize int) ([][]Example, error) {
	if batchSize <= 0 {
		return nil, fmt.Errorf("batch size %d must be positive", batchSize)
	}

	var chunks [][]Example
	for start := 0; start < len(examples); start += batchSize {
		end := start + batchSize
		if end > len(examples) {
			end = len(examples)
		}

		chunks = append(chunks, examples[start:end])
	}

	return chunks, nil
}
