package messaging

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/ports"
)

// Router sends every event to the stream. Recipient notifications are also
// sent to the notifier once the stream accepted them, so a failed message is
// retried as a whole and consumers of either side may see it twice.
type Router struct {
	stream        ports.EventPublisher
	notifications ports.EventPublisher
	notifyTypes   map[string]struct{}
}

func NewRouter(stream, notifications ports.EventPublisher) *Router {
	return &Router{
		stream:        stream,
		notifications: notifications,
		notifyTypes: map[string]struct{}{
			parcel.EventPickupCodeIssued: {},
			parcel.EventArrivedAtStation: {},
		},
	}
}

func (r *Router) Publish(ctx context.Context, msg ports.OutboxMessage) error {
	if err := r.stream.Publish(ctx, msg); err != nil {
		return err
	}
	if _, ok := r.notifyTypes[msg.EventType]; !ok {
		return nil
	}
	if err := r.notifications.Publish(ctx, msg); err != nil {
		return fmt.Errorf("notify %s: %w", msg.EventType, err)
	}
	return nil
}
