// Package outboxrepo stores domain events in the transactional outbox and
// hands them to the relay.
package outboxrepo

import (
	"encoding/json"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"

	"github.com/google/uuid"
)

// MessageDTO is one serialised domain event. ProcessedAt stays NULL until the
// relay has published it.
type MessageDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EventType   string     `gorm:"type:varchar(64);not null"`
	AggregateID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Payload     []byte     `gorm:"type:jsonb;not null"`
	OccurredAt  time.Time  `gorm:"not null;index"`
	ProcessedAt *time.Time `gorm:"index"`
}

func (MessageDTO) TableName() string {
	return "outbox_messages"
}

func fromEvent(e kernel.DomainEvent) (MessageDTO, error) {
	payload, err := json.Marshal(e)
	if err != nil {
		return MessageDTO{}, fmt.Errorf("marshal %s: %w", e.EventType(), err)
	}

	return MessageDTO{
		ID:          e.EventID().Bytes(),
		EventType:   e.EventType(),
		AggregateID: e.AggregateID().Bytes(),
		Payload:     payload,
		OccurredAt:  e.OccurredAt(),
	}, nil
}

func toMessage(dto MessageDTO) (ports.OutboxMessage, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}
	aggregateID, err := kernel.UUIDFromBytes(dto.AggregateID[:])
	if err != nil {
		return ports.OutboxMessage{}, err
	}

	return ports.OutboxMessage{
		ID:          id,
		EventType:   dto.EventType,
		AggregateID: aggregateID,
		Payload:     dto.Payload,
		OccurredAt:  dto.OccurredAt,
	}, nil
}
