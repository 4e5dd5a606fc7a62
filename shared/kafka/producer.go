package kafka

import (
	"context"
	"encoding/json"
	"fmt"

	"topicbot/types"

	"github.com/IBM/sarama"
)

// syncProducer is the part of sarama.SyncProducer the publisher uses
type syncProducer interface {
	SendMessages(msgs []*sarama.ProducerMessage) error
	Close() error
}

// TopicPublisher hands selected topics to downstream generators
type TopicPublisher struct {
	producer syncProducer
	topic    string
}

// NewTopicPublisher connects a synchronous producer to brokers
func NewTopicPublisher(brokers []string, topic string) (*TopicPublisher, error) {
	cfg := sarama.NewConfig()
	cfg.Version = sarama.V3_6_0_0
	cfg.Producer.RequiredAcks = sarama.WaitForAll
	cfg.Producer.Return.Successes = true
	cfg.Producer.Retry.Max = 3

	producer, err := sarama.NewSyncProducer(brokers, cfg)
	if err != nil {
		return nil, fmt.Errorf("kafka: create producer: %w", err)
	}
	return &TopicPublisher{producer: producer, topic: topic}, nil
}

// Publish sends one message per topic message, keyed by slug.
// All messages are sent as a single batch.
func (p *TopicPublisher) Publish(ctx context.Context, msgs []types.TopicMessage) error {
	if len(msgs) == 0 {
		return nil
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	batch := make([]*sarama.ProducerMessage, 0, len(msgs))
	for _, m := range msgs {
		body, err := json.Marshal(m)
		if err != nil {
			return fmt.Errorf("kafka: marshal topic %q: %w", m.Topic.Keyword, err)
		}
		batch = append(batch, &sarama.ProducerMessage{
			Topic: p.topic,
			Key:   sarama.StringEncoder(m.Slug),
			Value: sarama.ByteEncoder(body),
		})
	}

	if err := p.producer.SendMessages(batch); err != nil {
		return fmt.Errorf("kafka: publish to %s: %w", p.topic, err)
	}
	return nil
}

// Close flushes and closes the producer
func (p *TopicPublisher) Close() error {
	return p.producer.Close()
}
