package messaging

import (
	"context"
	"fmt"
	"log/slog"

	"logistics/internal/core/ports"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Channel is the subset of *amqp.Channel the notifier needs.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// RabbitNotifier puts recipient-facing events on a durable queue consumed by
// the notification service.
type RabbitNotifier struct {
	conn    *amqp.Connection
	channel Channel
	queue   string
	logger  *slog.Logger
}

// DialRabbitNotifier connects to the broker and declares the queue.
func DialRabbitNotifier(url, queue string, logger *slog.Logger) (*RabbitNotifier, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	n, err := NewRabbitNotifierWithChannel(ch, queue, logger)
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	n.conn = conn
	return n, nil
}

func NewRabbitNotifierWithChannel(ch Channel, queue string, logger *slog.Logger) (*RabbitNotifier, error) {
	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return nil, fmt.Errorf("declare queue %s: %w", queue, err)
	}
	return &RabbitNotifier{
		channel: ch,
		queue:   queue,
		logger:  logger.With("component", "rabbit_notifier"),
	}, nil
}

func (n *RabbitNotifier) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	err := n.channel.PublishWithContext(ctx, "", n.queue, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    msg.ID.String(),
		Type:         msg.EventType,
		Timestamp:    msg.OccurredAt,
		Headers:      amqp.Table{"aggregate_id": msg.AggregateID.String()},
		Body:         msg.Payload,
	})
	if err != nil {
		return fmt.Errorf("rabbitmq publish: %w", err)
	}

	n.logger.DebugContext(ctx, "notification queued",
		"event_type", msg.EventType,
		"aggregate_id", msg.AggregateID.String(),
	)
	return nil
}

func (n *RabbitNotifier) Close() error {
	if err := n.channel.Close(); err != nil {
		return err
	}
	if n.conn != nil {
		return n.conn.Close()
	}
	return nil
}
