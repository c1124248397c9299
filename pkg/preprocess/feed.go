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

package preprocess

import (
	"context"
	"encoding/binary"
	"fmt"
	"sync/atomic"

	zmq "github.com/pebbe/zmq4"
	"github.com/vmihailenco/msgpack/v5"
	"k8s.io/klog/v2"

	"github.com/13301132691/nlp-estimator-tutorial/pkg/utils/logging"
)

// FeedConfig holds the configuration for the batch feed publisher.
type FeedConfig struct {
	// ZMQEndpoint is the ZMQ address the trainer subscribes on
	// (e.g., "tcp://*:5557").
	ZMQEndpoint string `json:"zmqEndpoint"`
	// Topic is the ZMQ topic batches are published under.
	Topic string `json:"topic"`
}

// DefaultFeedConfig returns a default configuration for the batch feed.
func DefaultFeedConfig() *FeedConfig {
	return &FeedConfig{
		ZMQEndpoint: "tcp://*:5557",
		Topic:       "batches@train",
	}
}

// BatchMessage is the wire form of a Batch.
// It is encoded as an array to keep the framing compact and
// position-based.
type BatchMessage struct {
	_            struct{} `msgpack:",array"`
	PaddedTokens [][]int32
	Lengths      []int32
	Labels       []int32
}

// Publisher streams encoded batches to the external training collaborator
// over a ZMQ PUB socket. Messages carry `{topic, big-endian seq, msgpack
// payload}` so the subscriber can detect gaps.
type Publisher struct {
	socket   *zmq.Socket
	endpoint string
	topic    string
	seqNum   uint64
}

// NewPublisher creates a new batch feed publisher bound to the configured
// endpoint.
func NewPublisher(config *FeedConfig) (*Publisher, error) {
	if config == nil {
		config = DefaultFeedConfig()
	}

	socket, err := zmq.NewSocket(zmq.PUB)
	if err != nil {
		return nil, fmt.Errorf("failed to create ZMQ PUB socket: %w", err)
	}

	if err := socket.Bind(config.ZMQEndpoint); err != nil {
		socket.Close()
		return nil, fmt.Errorf("failed to bind to %s: %w", config.ZMQEndpoint, err)
	}

	return &Publisher{
		socket:   socket,
		endpoint: config.ZMQEndpoint,
		topic:    config.Topic,
	}, nil
}

// PublishBatch publishes one encoded batch.
func (p *Publisher) PublishBatch(ctx context.Context, batch *Batch) error {
	debugLogger := klog.FromContext(ctx).V(logging.DEBUG).WithName("batch-feed")

	payload, err := msgpack.Marshal(&BatchMessage{
		PaddedTokens: batch.PaddedTokens,
		Lengths:      batch.Lengths,
		Labels:       batch.Labels,
	})
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	// sequence number for ordering
	seq := atomic.AddUint64(&p.seqNum, 1)
	seqBytes := make([]byte, 8)
	binary.BigEndian.PutUint64(seqBytes, seq)

	// send topic, sequence, payload
	if _, err := p.socket.SendMessage(p.topic, seqBytes, payload); err != nil {
		return fmt.Errorf("failed to send batch to topic %s: %w", p.topic, err)
	}

	debugLogger.Info("published batch", "topic", p.topic, "seq", seq,
		"batch-size", len(batch.Labels), "payload-bytes", len(payload))
	return nil
}

// Close closes the publisher and cleans up resources.
func (p *Publisher) Close() error {
	if p.socket != nil {
		return p.socket.Close()
	}
	return nil
}
