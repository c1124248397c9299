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

package preprocess

import (
	"context"
	"sync"

	"k8s.io/client-go/util/workqueue"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/textproc"
)

const defaultWorkers = 5

// PoolConfig holds the configuration for the warm-up pool.
type PoolConfig struct {
	WorkersCount int `json:"workersCount"`
}

// DefaultPoolConfig returns a default configuration for the warm-up pool.
func DefaultPoolConfig() *PoolConfig {
	return &PoolConfig{
		WorkersCount: defaultWorkers,
	}
}

// Task represents a unit of work for pre-encoding a sentence.
type Task struct {
	Sentence string
}

// Pool encapsulates the queue and worker pool that encode sentences into
// the sequence cache ahead of batch assembly.
type Pool struct {
	workers int
	queue   workqueue.TypedRateLimitingInterface[Task]
	wg      sync.WaitGroup

	encoder textproc.Encoder
}

// NewWarmupPool initializes a Pool with the specified number of workers
// and the provided encoder.
func NewWarmupPool(config *PoolConfig, encoder textproc.Encoder) *Pool {
	if config == nil {
		config = DefaultPoolConfig()
	}

	return &Pool{
		workers: config.WorkersCount,
		queue:   workqueue.NewTypedRateLimitingQueue(workqueue.DefaultTypedControllerRateLimiter[Task]()),
		encoder: encoder,
	}
}

// AddTask enqueues a sentence for pre-encoding.
// This method only enqueues the task and does not start processing it.
func (pool *Pool) AddTask(sentence string) {
	pool.queue.Add(Task{Sentence: sentence})
}

// Run launches worker goroutines that process tasks until the context is
// cancelled.
func (pool *Pool) Run(ctx context.Context) {
	for i := 0; i < pool.workers; i++ {
		pool.wg.Add(1)
		go pool.workerLoop()
	}

	<-ctx.Done()

	pool.queue.ShutDown()
	pool.wg.Wait()
}

// workerLoop is the main processing loop for each worker.
func (pool *Pool) workerLoop() {
	defer pool.wg.Done()
	for {
		task, shutdown := pool.queue.Get()
		if shutdown {
			return
		}

		pool.processTask(task)
		pool.queue.Forget(task)
		pool.queue.Done(task)
	}
}

// processTask encodes the sentence, populating the sequence cache as a
// side effect. Encoding never fails, so tasks are never retried.
func (pool *Pool) processTask(task Task) {
	pool.encoder.EncodeSentence(task.Sentence)
}
