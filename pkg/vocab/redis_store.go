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
	"strings"

	"github.com/redis/go-redis/v9"
)

// redisKeyPrefix namespaces vocabulary snapshots in the Redis keyspace.
const redisKeyPrefix = "vocab:"

// RedisStoreConfig holds the configuration for the RedisStore.
type RedisStoreConfig struct {
	Address string `json:"address,omitempty"` // Redis server address
}

// DefaultRedisStoreConfig returns a default configuration for the
// RedisStore.
func DefaultRedisStoreConfig() *RedisStoreConfig {
	return &RedisStoreConfig{
		Address: "redis://127.0.0.1:6379",
	}
}

// NewRedisStore creates a new RedisStore instance.
func NewRedisStore(config *RedisStoreConfig) (Store, error) {
	if config == nil {
		config = DefaultRedisStoreConfig()
	}

	if !strings.HasPrefix(config.Address, "redis://") &&
		!strings.HasPrefix(config.Address, "rediss://") &&
		!strings.HasPrefix(config.Address, "unix://") {
		config.Address = "redis://" + config.Address
	}

	redisOpt, err := redis.ParseURL(config.Address)
	if err != nil {
		return nil, fmt.Errorf("failed to parse redisURL: %w", err)
	}

	redisClient := redis.NewClient(redisOpt)
	if err := redisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{
		RedisClient: redisClient,
	}, nil
}

// RedisStore implements the Store interface using Redis as the backend for
// vocabulary snapshots.
type RedisStore struct {
	RedisClient *redis.Client
}

var _ Store = &RedisStore{}

// Save persists the vocabulary snapshot under the given name.
func (r *RedisStore) Save(ctx context.Context, name string, v *Vocabulary) error {
	b, err := v.Marshal()
	if err != nil {
		return fmt.Errorf("failed to snapshot vocabulary %q: %w", name, err)
	}

	if err := r.RedisClient.Set(ctx, redisKeyPrefix+name, b, 0).Err(); err != nil {
		return fmt.Errorf("failed to save vocabulary %q to Redis: %w", name, err)
	}

	return nil
}

// Load retrieves the vocabulary stored under the given name.
func (r *RedisStore) Load(ctx context.Context, name string) (*Vocabulary, error) {
	b, err := r.RedisClient.Get(ctx, redisKeyPrefix+name).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, fmt.Errorf("%w: %q", ErrNotFound, name)
		}

		return nil, fmt.Errorf("failed to load vocabulary %q from Redis: %w", name, err)
	}

	return Unmarshal(b)
}
