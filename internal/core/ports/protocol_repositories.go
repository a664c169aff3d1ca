package ports

import (
	"context"

	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/model/returns"
)

type HandoverRepository interface {
	Add(ctx context.Context, h *handover.Handover) error
	Update(ctx context.Context, h *handover.Handover) error
	Get(ctx context.Context, id kernel.UUID) (*handover.Handover, error)
	ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*handover.Handover, error)
}

// ReturnRepository enforces at most one return request per parcel; Add
// reports a second request as returns.ErrReturnAlreadyExists.
type ReturnRepository interface {
	Add(ctx context.Context, r *returns.Request) error
	Update(ctx context.Context, r *returns.Request) error
	Get(ctx context.Context, id kernel.UUID) (*returns.Request, error)

	// FindByParcel returns nil without error when the parcel has no return.
	FindByParcel(ctx context.Context, parcelID kernel.UUID) (*returns.Request, error)
}

type ExchangeRepository interface {
	Add(ctx context.Context, e *exchange.Exchange) error
	ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*exchange.Exchange, error)
}

// PickupRepository enforces at most one pickup per parcel; Add reports a
// second pickup as pickup.ErrPickupAlreadyRecorded.
type PickupRepository interface {
	Add(ctx context.Context, p *pickup.Pickup) error
	FindByParcel(ctx context.Context, parcelID kernel.UUID) (*pickup.Pickup, error)
}
