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
	"context"
	"fmt"
	"sync"
)

// InMemoryStoreConfig holds the configuration for the InMemoryStore.
type InMemoryStoreConfig struct{}

// DefaultInMemoryStoreConfig returns a default configuration for the
// InMemoryStore.
func DefaultInMemoryStoreConfig() *InMemoryStoreConfig {
	return &InMemoryStoreConfig{}
}

// InMemoryStore is an in-memory implementation of the Store interface.
// Snapshots are kept in their serialized form so Load returns an
// independent Vocabulary value.
type InMemoryStore struct {
	mu   sync.RWMutex
	data map[string][]byte
}

var _ Store = &InMemoryStore{}

// NewInMemoryStore creates a new InMemoryStore instance.
func NewInMemoryStore(_ *InMemoryStoreConfig) *InMemoryStore {
	return &InMemoryStore{
		data: make(map[string][]byte),
	}
}

// Save persists the vocabulary snapshot under the given name.
func (s *InMemoryStore) Save(_ context.Context, name string, v *Vocabulary) error {
	b, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("failed to snapshot vocabulary %q: %w", name, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[name] = b

	return nil
}

// Load retrieves the vocabulary stored under the given name.
func (s *InMemoryStore) Load(_ context.Context, name string) (*Vocabulary, error) {
	s.mu.RLock()
	b, ok := s.data[name]
	s.mu.RUnlock()

	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
	}

	return Unmarshal(b)
}
