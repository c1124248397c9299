// Copyright 2025 The nlp-estimator-tutorial Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"k8s.io/klog/v2"
	"sigs.k8s.io/controller-runtime/pkg/metrics"
)

var (
	// SentencesEncoded counts how many sentences were encoded into index
	// sequences.
	SentencesEncoded = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentiment", Subsystem: "preprocess", Name: "sentences_encoded_total",
		Help: "Total number of sentences encoded into index sequences",
	})
	// OOVTokens counts tokens that fell back to the out-of-vocabulary index.
	OOVTokens = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentiment", Subsystem: "preprocess", Name: "oov_tokens_total",
		Help: "Total number of tokens mapped to the out-of-vocabulary index",
	})

	// CacheHits counts sequence-cache hits.
	CacheHits = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentiment", Subsystem: "preprocess", Name: "cache_hits_total",
		Help: "Number of sentences served from the sequence cache",
	})
	// CacheMisses counts sequence-cache misses.
	CacheMisses = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "sentiment", Subsystem: "preprocess", Name: "cache_misses_total",
		Help: "Number of sentences encoded on a sequence-cache miss",
	})
	// EncodeLatency logs latency of batch encoding.
	EncodeLatency = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "sentiment", Subsystem: "preprocess", Name: "encode_latency_seconds",
		Help:    "Latency of batch encoding in seconds",
		Buckets: prometheus.DefBuckets,
	})
)

// Collectors returns a slice of all registered Prometheus collectors.
func Collectors() []prometheus.Collector {
	return []prometheus.Collector{
		SentencesEncoded, OOVTokens,
		CacheHits, CacheMisses, EncodeLatency,
	}
}

var registerMetricsOnce = sync.Once{}

// Register registers all metrics with the controller-runtime registry.
func Register() {
	registerMetricsOnce.Do(func() {
		metrics.Registry.MustRegister(Collectors()...)
	})
}

// StartMetricsLogging spawns a goroutine that logs current metric values
// every interval.
func StartMetricsLogging(ctx context.Context, interval time.Duration) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for range ticker.C {
			logMetrics(ctx)
		}
	}()
}

func logMetrics(ctx context.Context) {
	var m dto.Metric

	err := SentencesEncoded.Write(&m)
	if err != nil {
		return
	}
	sentences := m.GetCounter().GetValue()

	err = OOVTokens.Write(&m)
	if err != nil {
		return
	}
	oov := m.GetCounter().GetValue()

	var hitsMetric dto.Metric
	err = CacheHits.Write(&hitsMetric)
	if err != nil {
		return
	}
	hits := hitsMetric.GetCounter().GetValue()

	var missesMetric dto.Metric
	err = CacheMisses.Write(&missesMetric)
	if err != nil {
		return
	}
	misses := missesMetric.GetCounter().GetValue()

	var latencyMetric dto.Metric
	err = EncodeLatency.Write(&latencyMetric)
	if err != nil {
		return
	}
	latencyCount := latencyMetric.GetHistogram().GetSampleCount()
	latencySum := latencyMetric.GetHistogram().GetSampleSum()

	klog.FromContext(ctx).WithName("metrics").Info("metrics beat",
		"sentences", sentences,
		"oov_tokens", oov,
		"cache_hits", hits,
		"cache_misses", misses,
		"latency_count", latencyCount,
		"latency_sum", latencySum,
	)
}
