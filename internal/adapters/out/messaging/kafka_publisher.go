// Package messaging delivers relayed outbox messages to the brokers: the
// parcel event stream on Kafka and recipient notifications on RabbitMQ.
package messaging

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"logistics/internal/core/ports"

	"github.com/segmentio/kafka-go"
)

const (
	HeaderEventType = "event-type"
	HeaderMessageID = "message-id"
)

// Writer is the subset of kafka.Writer the publisher needs.
type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

// KafkaPublisher writes outbox messages to one topic keyed by aggregate id,
// so every event of a parcel lands on the same partition in order.
type KafkaPublisher struct {
	writer Writer
	logger *slog.Logger
}

func NewKafkaPublisher(broker, topic string, logger *slog.Logger) *KafkaPublisher {
	return NewKafkaPublisherWithWriter(&kafka.Writer{
		Addr:                   kafka.TCP(broker),
		Topic:                  topic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireAll,
		AllowAutoTopicCreation: true,
		WriteTimeout:           10 * time.Second,
	}, logger)
}

func NewKafkaPublisherWithWriter(w Writer, logger *slog.Logger) *KafkaPublisher {
	return &KafkaPublisher{writer: w, logger: logger.With("component", "kafka_publisher")}
}

func (p *KafkaPublisher) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(msg.AggregateID.String()),
		Value: msg.Payload,
		Time:  msg.OccurredAt,
		Headers: []kafka.Header{
			{Key: HeaderEventType, Value: []byte(msg.EventType)},
			{Key: HeaderMessageID, Value: []byte(msg.ID.String())},
		},
	})
	if err != nil {
		return fmt.Errorf("kafka write: %w", err)
	}

	p.logger.DebugContext(ctx, "event published",
		"event_type", msg.EventType,
		"aggregate_id", msg.AggregateID.String(),
	)
	return nil
}

func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
