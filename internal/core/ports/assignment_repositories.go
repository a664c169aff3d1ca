package ports

import (
	"context"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transit"
)

// TransitRepository persists transit assignments and their pending log entries.
type TransitRepository interface {
	Add(ctx context.Context, a *transit.Assignment) error
	Update(ctx context.Context, a *transit.Assignment) error
	Get(ctx context.Context, id kernel.UUID) (*transit.Assignment, error)
}

// DeliveryRepository persists delivery assignments and their pending log entries.
type DeliveryRepository interface {
	Add(ctx context.Context, a *delivery.Assignment) error
	Update(ctx context.Context, a *delivery.Assignment) error
	Get(ctx context.Context, id kernel.UUID) (*delivery.Assignment, error)
}

type VehicleRepository interface {
	Add(ctx context.Context, v *transit.Vehicle) error
	Get(ctx context.Context, id kernel.UUID) (*transit.Vehicle, error)
}
