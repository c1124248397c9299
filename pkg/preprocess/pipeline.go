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

// Package preprocess wires the vocabulary, tokenizer, indexer, sequence
// cache and padder into the batch-encoding pipeline consumed by model
// training.
package preprocess

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"
	"k8s.io/klog/v2"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/dataset"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/padding"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/preprocess/metrics"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/textproc"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/utils/logging"
	"github.com/13301132691/nlp-estimator-tutorial/pkg/vocab"
)

// Config holds the configuration for the preprocessing pipeline.
// The configuration covers the different components found in the pipeline.
type Config struct {
	VocabConfig  *vocab.Config         `json:"vocabConfig"`
	CacheConfig  *textproc.CacheConfig `json:"cacheConfig"`
	PadderConfig *padding.Config       `json:"padderConfig"`
	PoolConfig   *PoolConfig           `json:"poolConfig"`

	// EncodeConcurrency bounds the number of batches encoded in parallel
	// by EncodeDataset.
	EncodeConcurrency int `json:"encodeConcurrency"`

	// EnableMetrics toggles whether encodes/OOV-hits/cache activity are
	// recorded.
	EnableMetrics bool `json:"enableMetrics"`
	// MetricsLoggingInterval defines the interval at which metrics are
	// logged. If zero, metrics logging is disabled.
	// Requires `EnableMetrics` to be true.
	MetricsLoggingInterval time.Duration `json:"metricsLoggingInterval"`
}

const defaultEncodeConcurrency = 4

// NewDefaultConfig returns a default configuration for the pipeline.
func NewDefaultConfig() *Config {
	return &Config{
		VocabConfig:       vocab.DefaultConfig(),
		CacheConfig:       textproc.DefaultCacheConfig(),
		PadderConfig:      padding.DefaultConfig(),
		PoolConfig:        DefaultPoolConfig(),
		EncodeConcurrency: defaultEncodeConcurrency,
		EnableMetrics:     false,
	}
}

// Batch is the fixed-shape structure handed to the model-training
// collaborator: a batch x targetLength index matrix, the per-sequence
// effective lengths used to mask padding, and the aligned labels.
type Batch struct {
	PaddedTokens [][]int32
	Lengths      []int32
	Labels       []int32
}

// Pipeline encodes labeled review batches over a shared, frozen
// vocabulary. Safe for concurrent use.
type Pipeline struct {
	config *Config

	vocabulary *vocab.Vocabulary
	encoder    textproc.Encoder
	warmupPool *Pool

	enableMetrics bool
}

// NewPipeline creates a Pipeline over an already-built vocabulary.
// The vocabulary is shared read-only across every pipeline stage.
func NewPipeline(ctx context.Context, config *Config, vocabulary *vocab.Vocabulary) (*Pipeline, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	indexer := textproc.NewSequenceIndexer(textproc.NewWordTokenizer(), vocabulary)

	cache, err := textproc.NewSequenceCache(config.CacheConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create sequence cache: %w", err)
	}

	// wrap in metrics only if enabled
	if config.EnableMetrics {
		cache = NewInstrumentedCache(cache)
		metrics.Register()
		if config.MetricsLoggingInterval > 0 {
			// this is non-blocking
			metrics.StartMetricsLogging(ctx, config.MetricsLoggingInterval)
		}
	}

	encoder := textproc.NewCachedEncoder(indexer, cache)

	return &Pipeline{
		config:        config,
		vocabulary:    vocabulary,
		encoder:       encoder,
		warmupPool:    NewWarmupPool(config.PoolConfig, encoder),
		enableMetrics: config.EnableMetrics,
	}, nil
}

// BuildPipeline builds the vocabulary from the training sentences and
// creates a Pipeline over it.
func BuildPipeline(ctx context.Context, config *Config, trainSentences []string) (*Pipeline, error) {
	if config == nil {
		config = NewDefaultConfig()
	}

	vocabulary, err := vocab.BuildFromCorpus(config.VocabConfig, textproc.NewWordTokenizer(), trainSentences)
	if err != nil {
		return nil, fmt.Errorf("failed to build vocabulary: %w", err)
	}

	return NewPipeline(ctx, config, vocabulary)
}

// Vocabulary returns the pipeline's frozen vocabulary, e.g. for inverse
// lookups when inspecting model weights.
func (p *Pipeline) Vocabulary() *vocab.Vocabulary {
	return p.vocabulary
}

// WarmupPool returns the background pool that pre-encodes sentences into
// the sequence cache.
func (p *Pipeline) WarmupPool() *Pool {
	return p.warmupPool
}

// Run starts the pipeline's warm-up pool and blocks until the context is
// cancelled.
func (p *Pipeline) Run(ctx context.Context) {
	p.warmupPool.Run(ctx)
}

// EncodeExamples encodes one batch of labeled examples into the
// fixed-shape structure consumed by training.
func (p *Pipeline) EncodeExamples(ctx context.Context, examples []dataset.Example) (*Batch, error) {
	if len(examples) == 0 {
		return nil, fmt.Errorf("%w: empty batch", padding.ErrInvalidArgument)
	}

	if p.enableMetrics {
		timer := prometheus.NewTimer(metrics.EncodeLatency)
		defer timer.ObserveDuration()
	}

	traceLogger := klog.FromContext(ctx).V(logging.TRACE).WithName("preprocess.EncodeExamples")

	seqs := make([][]int32, len(examples))
	labels := make([]int32, len(examples))
	for i, ex := range examples {
		seqs[i] = p.encoder.EncodeSentence(ex.Text)
		labels[i] = ex.Label
	}

	if p.enableMetrics {
		metrics.SentencesEncoded.Add(float64(len(examples)))
		metrics.OOVTokens.Add(float64(countOOV(seqs)))
	}

	padded, lengths, err := padding.PadBatch(seqs,
		p.config.PadderConfig.TargetLength, p.config.PadderConfig.FillValue)
	if err != nil {
		return nil, fmt.Errorf("failed to pad batch: %w", err)
	}

	traceLogger.Info("encoded batch", "size", len(examples),
		"target-length", p.config.PadderConfig.TargetLength)

	return &Batch{
		PaddedTokens: padded,
		Lengths:      lengths,
		Labels:       labels,
	}, nil
}

// EncodeDataset chunks the examples and encodes the batches concurrently.
// Batches are independent of each other and the vocabulary is read-only,
// so the work shards freely; the result preserves corpus order.
func (p *Pipeline) EncodeDataset(ctx context.Context, examples []dataset.Example, batchSize int) ([]*Batch, error) {
	chunks, err := dataset.Chunk(examples, batchSize)
	if err != nil {
		return nil, err
	}

	batches := make([]*Batch, len(chunks))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.config.EncodeConcurrency)

	for i, chunk := range chunks {
		g.Go(func() error {
			batch, err := p.EncodeExamples(ctx, chunk)
			if err != nil {
				return fmt.Errorf("failed to encode batch %d: %w", i, err)
			}

			batches[i] = batch
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return batches, nil
}

// countOOV counts indices that fell back to the out-of-vocabulary marker.
func countOOV(seqs [][]int32) int {
	count := 0
	for _, seq := range seqs {
		for _, idx := range seq {
			if idx == vocab.UnknownIndex {
				count++
			}
		}
	}

	return count
}
