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
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/textproc"
)

func TestNewSequenceCache_BackendSelection(t *testing.T) {
	lruCache, err := textproc.NewSequenceCache(&textproc.CacheConfig{
		LRUConfig: textproc.DefaultLRUCacheConfig(),
	})
	require.NoError(t, err)
	assert.IsType(t, &textproc.LRUSequenceCache{}, lruCache)

	costAware, err := textproc.NewSequenceCache(&textproc.CacheConfig{
		CostAwareConfig: textproc.DefaultCostAwareCacheConfig(),
	})
	require.NoError(t, err)
	assert.IsType(t, &textproc.CostAwareSequenceCache{}, costAware)

	_, err = textproc.NewSequenceCache(&textproc.CacheConfig{})
	require.Error(t, err)
}

func TestLRUSequenceCache_Eviction(t *testing.T) {
	cache, err := textproc.NewLRUSequenceCache(&textproc.LRUCacheConfig{CacheSize: 2})
	require.NoError(t, err)

	cache.Add(1, []int32{1, 3})
	cache.Add(2, []int32{1, 4})
	cache.Add(3, []int32{1, 5})

	_, ok := cache.Get(1)
	assert.False(t, ok, "oldest entry should be evicted")

	seq, ok := cache.Get(3)
	assert.True(t, ok)
	assert.Equal(t, []int32{1, 5}, seq)
}

func TestCachedEncoder_MatchesDirectEncoding(t *testing.T) {
	indexer := newTestIndexer(t)
	cache, err := textproc.NewLRUSequenceCache(nil)
	require.NoError(t, err)
	encoder := textproc.NewCachedEncoder(indexer, cache)

	sentence := "Great, GREAT movie!!"
	direct := indexer.EncodeSentence(sentence)

	first := encoder.EncodeSentence(sentence)
	assert.Equal(t, direct, first)

	// Second call is served from cache and must be identical.
	second := encoder.EncodeSentence(sentence)
	assert.Equal(t, direct, second)

	key := textproc.SentenceKey(sentence)
	cached, ok := cache.Get(key)
	assert.True(t, ok)
	assert.Equal(t, direct, cached)
}

func TestCachedEncoder_ConcurrentCallers(t *testing.T) {
	indexer := newTestIndexer(t)
	cache, err := textproc.NewLRUSequenceCache(nil)
	require.NoError(t, err)
	encoder := textproc.NewCachedEncoder(indexer, cache)

	sentences := []string{
		"Great, GREAT movie!!",
		"what a bad movie",
		"a truly great film",
	}

	var wg sync.WaitGroup
	results := make([][]int32, 100)
	for i := 0; i < 100; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = encoder.EncodeSentence(sentences[i%len(sentences)])
		}(i)
	}
	wg.Wait()

	for i, seq := range results {
		expected := indexer.EncodeSentence(sentences[i%len(sentences)])
		assert.Equal(t, expected, seq, "goroutine %d got a divergent encoding", i)
	}
}
