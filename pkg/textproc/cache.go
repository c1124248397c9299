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

package textproc

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	"github.com/dgraph-io/ristretto/v2"
	"github.com/dustin/go-humanize"
	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/sync/singleflight"
)

const (
	// defaultCacheSize sets the maximum number of encoded sequences the LRU
	// cache can store.
	defaultCacheSize = 500000

	defaultNumCounters = 1e7  // keys tracked by ristretto admission
	defaultBufferItems = 64   // default buffer size for ristretto
	defaultMaxCost     = "64MiB"
)

// SequenceCache caches encoded index sequences keyed by the xxhash of the
// source sentence. Cached values must be treated as immutable by callers.
//
// Cache operations are thread-safe and can be performed concurrently.
type SequenceCache interface {
	// Get returns the cached sequence for the key, if present.
	Get(key uint64) ([]int32, bool)
	// Add stores the sequence under the key.
	Add(key uint64, seq []int32)
}

// CacheConfig holds the configuration for the sequence cache.
// It may configure several backends such as listed within the struct.
// If multiple backends are configured, only the first one will be used.
type CacheConfig struct {
	// LRUConfig holds the configuration for the LRU cache.
	LRUConfig *LRUCacheConfig `json:"lruConfig"`
	// CostAwareConfig holds the configuration for the cost-aware cache.
	CostAwareConfig *CostAwareCacheConfig `json:"costAwareConfig"`
}

// DefaultCacheConfig returns a default configuration for the sequence
// cache.
func DefaultCacheConfig() *CacheConfig {
	return &CacheConfig{
		LRUConfig: DefaultLRUCacheConfig(),
	}
}

// NewSequenceCache creates a new SequenceCache instance.
func NewSequenceCache(cfg *CacheConfig) (SequenceCache, error) {
	if cfg == nil {
		cfg = DefaultCacheConfig()
	}

	switch {
	case cfg.LRUConfig != nil:
		cache, err := NewLRUSequenceCache(cfg.LRUConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create LRU sequence cache: %w", err)
		}

		return cache, nil
	case cfg.CostAwareConfig != nil:
		cache, err := NewCostAwareSequenceCache(cfg.CostAwareConfig)
		if err != nil {
			return nil, fmt.Errorf("failed to create cost-aware sequence cache: %w", err)
		}

		return cache, nil
	default:
		return nil, fmt.Errorf("no valid cache configuration provided")
	}
}

// LRUCacheConfig contains initialization settings for the LRU sequence
// cache.
type LRUCacheConfig struct {
	CacheSize int `json:"cacheSize"`
}

// DefaultLRUCacheConfig returns an LRUCacheConfig instance with default
// configuration.
func DefaultLRUCacheConfig() *LRUCacheConfig {
	return &LRUCacheConfig{
		CacheSize: defaultCacheSize,
	}
}

// LRUSequenceCache is an entry-count bounded cache with LRU eviction.
type LRUSequenceCache struct {
	cache *lru.Cache[uint64, []int32]
}

var _ SequenceCache = &LRUSequenceCache{}

// NewLRUSequenceCache initializes the LRUSequenceCache.
func NewLRUSequenceCache(config *LRUCacheConfig) (*LRUSequenceCache, error) {
	if config == nil {
		config = DefaultLRUCacheConfig()
	}

	cache, err := lru.New[uint64, []int32](config.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize sequence cache: %w", err)
	}

	return &LRUSequenceCache{cache: cache}, nil
}

// Get returns the cached sequence for the key, if present.
func (c *LRUSequenceCache) Get(key uint64) ([]int32, bool) {
	return c.cache.Get(key)
}

// Add stores the sequence under the key.
func (c *LRUSequenceCache) Add(key uint64, seq []int32) {
	c.cache.Add(key, seq)
}

// CostAwareCacheConfig holds the configuration for the cost-aware sequence
// cache.
type CostAwareCacheConfig struct {
	// Size is the maximum memory used by cached sequences.
	// Supports human-readable formats like "64MiB", "1GB", etc.
	Size string `json:"size,omitempty"`
}

// DefaultCostAwareCacheConfig returns a default configuration for the
// cost-aware sequence cache.
func DefaultCostAwareCacheConfig() *CostAwareCacheConfig {
	return &CostAwareCacheConfig{
		Size: defaultMaxCost,
	}
}

// CostAwareSequenceCache bounds the cache by estimated memory cost rather
// than entry count.
type CostAwareSequenceCache struct {
	cache *ristretto.Cache[uint64, []int32]
}

var _ SequenceCache = &CostAwareSequenceCache{}

// NewCostAwareSequenceCache creates a new CostAwareSequenceCache instance.
func NewCostAwareSequenceCache(config *CostAwareCacheConfig) (*CostAwareSequenceCache, error) {
	if config == nil {
		config = DefaultCostAwareCacheConfig()
	}

	sizeBytes, err := humanize.ParseBytes(config.Size)
	if err != nil {
		return nil, fmt.Errorf("failed to parse cache size %q: %w", config.Size, err)
	}

	cache, err := ristretto.NewCache(&ristretto.Config[uint64, []int32]{
		NumCounters: defaultNumCounters,
		MaxCost:     int64(sizeBytes), // #nosec G115
		BufferItems: defaultBufferItems,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cost-aware sequence cache: %w", err)
	}

	return &CostAwareSequenceCache{cache: cache}, nil
}

// Get returns the cached sequence for the key, if present.
func (c *CostAwareSequenceCache) Get(key uint64) ([]int32, bool) {
	return c.cache.Get(key)
}

// Add stores the sequence under the key, costed by its byte size.
func (c *CostAwareSequenceCache) Add(key uint64, seq []int32) {
	const keyBytes = 8
	cost := int64(keyBytes + 4*len(seq))
	c.cache.Set(key, seq, cost)
	c.cache.Wait()
}

// CachedEncoder wraps a SequenceIndexer with a SequenceCache. Concurrent
// misses for the same sentence are coalesced with singleflight so the
// sentence is encoded once.
type CachedEncoder struct {
	indexer *SequenceIndexer
	cache   SequenceCache
	group   singleflight.Group
}

var _ Encoder = &CachedEncoder{}

// NewCachedEncoder creates a CachedEncoder over the given indexer and
// cache.
func NewCachedEncoder(indexer *SequenceIndexer, cache SequenceCache) *CachedEncoder {
	return &CachedEncoder{
		indexer: indexer,
		cache:   cache,
	}
}

// SentenceKey returns the cache key of a sentence.
func SentenceKey(sentence string) uint64 {
	return xxhash.Sum64String(sentence)
}

// EncodeSentence returns the index sequence of the sentence, from cache
// when possible. The pipeline is deterministic, so cached results are
// identical to direct encoding. The returned slice must not be mutated.
func (e *CachedEncoder) EncodeSentence(sentence string) []int32 {
	key := SentenceKey(sentence)
	if seq, ok := e.cache.Get(key); ok {
		return seq
	}

	result, _, shared := e.group.Do(sentence, func() (any, error) {
		return e.indexer.EncodeSentence(sentence), nil
	})

	seq, ok := result.([]int32)
	if !ok {
		// Unreachable with the closure above; encode directly as a fallback.
		seq = e.indexer.EncodeSentence(sentence)
	}

	if !shared {
		// Only add to cache if this goroutine actually encoded the sentence.
		e.cache.Add(key, seq)
	}

	return seq
}
