// Package ports defines the contracts between the logistics core and its
// adapters: repositories bound to a unit of work, the outbox, and the
// publishers that deliver domain events.
package ports

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
)

// ParcelRepository persists the Parcel aggregate together with its items and
// the status log entries appended since it was loaded.
type ParcelRepository interface {
	// Add stores a new parcel. A duplicate tracking number or pickup code is
	// reported as errs.ErrObjectAlreadyExists.
	Add(ctx context.Context, p *parcel.Parcel) error

	// Update stores the parcel's current state and appends its pending log
	// entries in the same transaction.
	Update(ctx context.Context, p *parcel.Parcel) error

	// Get loads a parcel and locks its row until the transaction ends.
	Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error)

	GetByTrackingNumber(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error)

	// GetMany loads and locks several parcels. Any missing id is an
	// errs.ErrObjectNotFound.
	GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error)

	// ListStorageExpired returns at_station parcels without a return request
	// whose storage window at their current pickup station ended before at,
	// oldest arrival first.
	ListStorageExpired(ctx context.Context, at time.Time, limit int) ([]*parcel.Parcel, error)
}
