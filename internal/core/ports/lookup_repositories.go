package ports

import (
	"context"

	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/staff"
)

// Staff, customers and locations are managed outside the core. The core only
// looks them up; Add exists for provisioning and tests.
type (
	StaffRepository interface {
		Add(ctx context.Context, s *staff.Staff) error
		Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error)
	}

	CustomerRepository interface {
		Add(ctx context.Context, c *customer.Customer) error
		Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error)
	}

	LocationRepository interface {
		Add(ctx context.Context, l *location.Location) error
		Get(ctx context.Context, id kernel.UUID) (*location.Location, error)
	}
)
