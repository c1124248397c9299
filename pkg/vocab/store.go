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
	"errors"
	"fmt"
)

// ErrNotFound is returned by Store.Load when no vocabulary is stored under
// the requested name.
var ErrNotFound = errors.New("vocabulary not found")

// StoreConfig holds the configuration for the vocabulary store.
// It may configure several backends such as listed within the struct.
// If multiple backends are configured, only the first one will be used.
type StoreConfig struct {
	// InMemoryConfig holds the configuration for the in-memory store.
	InMemoryConfig *InMemoryStoreConfig `json:"inMemoryConfig"`
	// RedisConfig holds the configuration for the Redis store.
	RedisConfig *RedisStoreConfig `json:"redisConfig"`
}

// DefaultStoreConfig returns a default configuration for the vocabulary
// store.
func DefaultStoreConfig() *StoreConfig {
	return &StoreConfig{
		InMemoryConfig: DefaultInMemoryStoreConfig(),
	}
}

// Store persists frozen vocabularies under a name so that a fleet of
// preprocessing workers can share one table built from the training corpus.
//
// Store operations are thread-safe and can be performed concurrently.
type Store interface {
	// Save persists the vocabulary snapshot under the given name,
	// overwriting any previous snapshot.
	Save(ctx context.Context, name string, v *Vocabulary) error
	// Load retrieves the vocabulary stored under the given name.
	// It returns ErrNotFound when no snapshot exists for the name.
	Load(ctx context.Context, name string) (*Vocabulary, error)
}

// NewStore creates a new Store instance.
func NewStore(cfg *StoreConfig) (Store, error) {
	if cfg == nil {
		cfg = DefaultStoreConfig()
	}

	switch {
	case cfg.InMemoryConfig != nil:
		return NewInMemoryStore(cfg.InMemoryConfig), nil
	case cfg.RedisConfig != nil:
		store, err := NewRedisStore(cfg.RedisConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create Redis store: %w", err)
		}

		return store, nil
	default:
		return nil, fmt.Errorf("no valid store configuration provided")
	}
}
