// Package commands contains the operations that change logistics state.
// Every handler follows the same shape: validate the command, open a unit of
// work, authorize the acting staff member, load and mutate aggregates through
// repositories, then commit.
package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/ports"
)

// Unit of Work interfaces narrowed to what each family of handlers touches.
type (
	// TxManager handles the transaction lifecycle.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	ParcelRepoFactory interface {
		ParcelRepository() ports.ParcelRepository
	}

	// LookupRepoFactory exposes the externally managed staff, customer and
	// location records.
	LookupRepoFactory interface {
		StaffRepository() ports.StaffRepository
		CustomerRepository() ports.CustomerRepository
		LocationRepository() ports.LocationRepository
	}

	ProtocolRepoFactory interface {
		HandoverRepository() ports.HandoverRepository
		ReturnRepository() ports.ReturnRepository
		ExchangeRepository() ports.ExchangeRepository
		PickupRepository() ports.PickupRepository
	}

	AssignmentRepoFactory interface {
		TransitRepository() ports.TransitRepository
		DeliveryRepository() ports.DeliveryRepository
		VehicleRepository() ports.VehicleRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// ParcelUoW serves the parcel lifecycle commands.
	ParcelUoW interface {
		TxManager
		ParcelRepoFactory
		LookupRepoFactory
	}

	ParcelUoWFactory interface {
		Create() ParcelUoW
	}

	// ProtocolUoW serves handover, return, exchange and pickup commands.
	ProtocolUoW interface {
		ParcelUoW
		ProtocolRepoFactory
	}

	ProtocolUoWFactory interface {
		Create() ProtocolUoW
	}

	// AssignmentUoW serves transit and delivery assignment commands.
	AssignmentUoW interface {
		ParcelUoW
		AssignmentRepoFactory
	}

	AssignmentUoWFactory interface {
		Create() AssignmentUoW
	}

	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// IdentifierSource issues generated identifiers. *kernel.IdentifierGenerator
// satisfies it.
type IdentifierSource interface {
	NextTrackingNumber() (kernel.TrackingNumber, error)
	NextPickupCode() (kernel.PickupCode, error)
}
