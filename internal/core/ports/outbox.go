package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// OutboxMessage is a serialised domain event waiting to be relayed.
type OutboxMessage struct {
	ID          kernel.UUID
	EventType   string
	AggregateID kernel.UUID
	Payload     []byte
	OccurredAt  time.Time
}

// OutboxRepository reads and acknowledges outbox rows. Rows are written by
// the unit of work on commit.
type OutboxRepository interface {
	// FetchPending locks up to limit unprocessed messages, skipping rows
	// locked by another relay.
	FetchPending(ctx context.Context, limit int) ([]OutboxMessage, error)
	MarkProcessed(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers one outbox message to a broker.
type EventPublisher interface {
	Publish(ctx context.Context, msg OutboxMessage) error
}
