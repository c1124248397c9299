package preprocess

import (
	"github.com/13301132691/nlp-estimator-tutorial/pkg/preprocess/metrics"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/textproc"
)

type instrumentedCache struct {
	next textproc.SequenceCache
}

// NewInstrumentedCache wraps a SequenceCache and emits hit/miss metrics
// for Get.
func NewInstrumentedCache(next textproc.SequenceCache) textproc.SequenceCache {
	return &instrumentedCache{next: next}
}

func (c *instrumentedCache) Get(key uint64) ([]int32, bool) {
	seq, ok := c.next.Get(key)
	if ok {
		metrics.CacheHits.Inc()
	} else {
		metrics.CacheMisses.Inc()
	}

	return seq, ok
}

func (c *instrumentedCache) Add(key uint64, seq []int32) {
	c.next.Add(key, seq)
}
