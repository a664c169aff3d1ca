package ports

import (
	"context"
)

// UnitOfWorkFactory creates a UnitOfWork per command so concurrent requests
// never share a transaction.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork is a business transaction boundary. Repositories obtained after
// Begin run inside the transaction. Commit writes the domain events of every
// aggregate stored through those repositories to the outbox before the
// transaction commits.
type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error

	ParcelRepository() ParcelRepository
	HandoverRepository() HandoverRepository
	ReturnRepository() ReturnRepository
	ExchangeRepository() ExchangeRepository
	PickupRepository() PickupRepository
	TransitRepository() TransitRepository
	DeliveryRepository() DeliveryRepository
	VehicleRepository() VehicleRepository
	StaffRepository() StaffRepository
	CustomerRepository() CustomerRepository
	LocationRepository() LocationRepository
	OutboxRepository() OutboxRepository
}
