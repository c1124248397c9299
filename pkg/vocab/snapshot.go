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
	"fmt"

	"github.com/fxamacker/cbor/v2"
)

// snapshot is the wire form of a frozen vocabulary: the assigned tokens in
// index order. Reserved indices carry no tokens and are not serialized.
type snapshot struct {
	VocabSize int      `cbor:"vocabSize"`
	Tokens    []string `cbor:"tokens"`
}

// Marshal serializes the vocabulary with canonical CBOR encoding, so equal
// vocabularies produce identical bytes.
func (v *Vocabulary) Marshal() ([]byte, error) {
	encMode, err := cbor.CanonicalEncOptions().EncMode() // deterministic
	if err != nil {
		return nil, fmt.Errorf("failed to create CBOR encoder: %w", err)
	}

	b, err := encMode.Marshal(snapshot{
		VocabSize: v.size,
		Tokens:    v.tokenOf,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to marshal vocabulary snapshot: %w", err)
	}

	return b, nil
}

// Unmarshal reconstructs a frozen vocabulary from its snapshot bytes.
func Unmarshal(data []byte) (*Vocabulary, error) {
	var snap snapshot
	if err := cbor.Unmarshal(data, &snap); err != nil {
		return nil, fmt.Errorf("failed to unmarshal vocabulary snapshot: %w", err)
	}

	if snap.VocabSize != ReservedIndices+len(snap.Tokens) {
		return nil, fmt.Errorf("%w: snapshot size %d does not match %d tokens",
			ErrInvalidConfig, snap.VocabSize, len(snap.Tokens))
	}

	v := &Vocabulary{
		size:    snap.VocabSize,
		indexOf: make(map[string]int32, len(snap.Tokens)),
		tokenOf: snap.Tokens,
	}

	for i, token := range snap.Tokens {
		if _, seen := v.indexOf[token]; seen {
			return nil, fmt.Errorf("%w: duplicate token %q in snapshot",
				ErrInvalidConfig, token)
		}

		//nolint:gosec // bounded by snapshot size
		v.indexOf[token] = int32(ReservedIndices + i)
	}

	return v, nil
}
