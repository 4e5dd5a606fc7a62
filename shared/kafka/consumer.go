package kafka

import (
	"context"
	"encoding/json"
	"errors"

	"github.com/IBM/sarama"
	"github.com/rs/zerolog"
)

// MessageHandler processes one consumed message.
// If shouldMark is false the message is left unmarked and redelivered.
type MessageHandler interface {
	HandleMessage(ctx context.Context, message []byte) (shouldMark bool, err error)
}

// ConsumerConfig holds Kafka consumer configuration
type ConsumerConfig struct {
	Brokers []string
	Topic   string
	GroupID string
	Handler MessageHandler
	Logger  zerolog.Logger
}

// Consumer reads a topic as part of a consumer group
type Consumer struct {
	group   sarama.ConsumerGroup
	handler MessageHandler
	topic   string
	groupID string
	ready   chan bool
	logger  zerolog.Logger
}

// NewConsumer creates a new Kafka consumer
func NewConsumer(cfg ConsumerConfig) (*Consumer, error) {
	saramaConfig := sarama.NewConfig()
	saramaConfig.Version = sarama.V3_6_0_0
	saramaConfig.Consumer.Group.Rebalance.GroupStrategies = []sarama.BalanceStrategy{sarama.NewBalanceStrategyRoundRobin()}
	saramaConfig.Consumer.Offsets.Initial = sarama.OffsetNewest
	saramaConfig.Consumer.Return.Errors = true

	group, err := sarama.NewConsumerGroup(cfg.Brokers, cfg.GroupID, saramaConfig)
	if err != nil {
		return nil, err
	}

	return &Consumer{
		group:   group,
		handler: cfg.Handler,
		topic:   cfg.Topic,
		groupID: cfg.GroupID,
		ready:   make(chan bool),
		logger:  cfg.Logger.With().Str("component", "kafka-consumer").Logger(),
	}, nil
}

// Start joins the group and consumes in the background until ctx is done
func (c *Consumer) Start(ctx context.Context) error {
	handler := &groupHandler{
		handler: c.handler,
		ready:   c.ready,
		logger:  c.logger,
	}

	go func() {
		for {
			if err := c.group.Consume(ctx, []string{c.topic}, handler); err != nil {
				if errors.Is(err, context.Canceled) || errors.Is(err, sarama.ErrClosedConsumerGroup) {
					return
				}
				c.logger.Error().Err(err).Msg("Consume failed")
			}
			if ctx.Err() != nil {
				return
			}
			handler.ready = make(chan bool)
		}
	}()

	select {
	case <-c.ready:
	case <-ctx.Done():
		return ctx.Err()
	}
	c.logger.Info().Str("group", c.groupID).Str("topic", c.topic).Msg("Kafka consumer started")

	go func() {
		for err := range c.group.Errors() {
			c.logger.Error().Err(err).Msg("Kafka consumer error")
		}
	}()

	return nil
}

// Close leaves the group
func (c *Consumer) Close() error {
	c.logger.Info().Msg("Closing Kafka consumer")
	return c.group.Close()
}

// groupHandler implements sarama.ConsumerGroupHandler
type groupHandler struct {
	handler MessageHandler
	ready   chan bool
	logger  zerolog.Logger
}

// Setup is run at the beginning of a new session, before ConsumeClaim
func (h *groupHandler) Setup(sarama.ConsumerGroupSession) error {
	close(h.ready)
	return nil
}

// Cleanup is run at the end of a session, once all ConsumeClaim goroutines have exited
func (h *groupHandler) Cleanup(sarama.ConsumerGroupSession) error {
	return nil
}

// ConsumeClaim must start a consumer loop of ConsumerGroupClaim's Messages()
func (h *groupHandler) ConsumeClaim(session sarama.ConsumerGroupSession, claim sarama.ConsumerGroupClaim) error {
	for {
		select {
		case message, ok := <-claim.Messages():
			if !ok || message == nil {
				return nil
			}

			h.logger.Debug().
				Int32("partition", message.Partition).
				Int64("offset", message.Offset).
				Str("key", string(message.Key)).
				Msg("Received message")

			shouldMark, err := h.handler.HandleMessage(session.Context(), message.Value)
			if err != nil {
				h.logger.Warn().Err(err).Msg("Failed to handle message")
			}
			if shouldMark {
				session.MarkMessage(message, "")
			}

		case <-session.Context().Done():
			return nil
		}
	}
}

// TypedMessageHandler decodes JSON messages into T before processing
type TypedMessageHandler[T any] struct {
	// Validate reports whether the message should be processed
	Validate func(msg *T) bool
	// Process handles the decoded message
	Process func(ctx context.Context, msg *T) error
	// AlwaysMark marks undecodable or invalid messages so they are not redelivered
	AlwaysMark bool
}

// HandleMessage implements MessageHandler
func (h *TypedMessageHandler[T]) HandleMessage(ctx context.Context, message []byte) (bool, error) {
	var msg T
	if err := json.Unmarshal(message, &msg); err != nil {
		return h.AlwaysMark, err
	}

	if h.Validate != nil && !h.Validate(&msg) {
		return h.AlwaysMark, nil
	}

	if err := h.Process(ctx, &msg); err != nil {
		return false, err
	}
	return true, nil
}
