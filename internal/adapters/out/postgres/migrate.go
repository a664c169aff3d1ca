package postgres

import (
	"logistics/internal/adapters/out/postgres/deliveryrepo"
	"logistics/internal/adapters/out/postgres/directoryrepo"
	"logistics/internal/adapters/out/postgres/outboxrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/adapters/out/postgres/protocolrepo"
	"logistics/internal/adapters/out/postgres/transitrepo"

	"gorm.io/gorm"
)

// Models lists every table owned by the service in creation order.
func Models() []any {
	return []any{
		&directoryrepo.LocationDTO{},
		&directoryrepo.StaffDTO{},
		&directoryrepo.CustomerDTO{},
		&parcelrepo.ParcelDTO{},
		&parcelrepo.ItemDTO{},
		&parcelrepo.StatusLogDTO{},
		&protocolrepo.HandoverDTO{},
		&protocolrepo.ReturnDTO{},
		&protocolrepo.ExchangeDTO{},
		&protocolrepo.PickupDTO{},
		&transitrepo.VehicleDTO{},
		&transitrepo.AssignmentDTO{},
		&transitrepo.LogDTO{},
		&deliveryrepo.AssignmentDTO{},
		&deliveryrepo.LogDTO{},
		&outboxrepo.MessageDTO{},
	}
}

// Migrate creates or alters the schema to match the models.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(Models()...)
}

// TableNames returns the tables created by Migrate. Tests truncate them
// between cases.
func TableNames() []string {
	return []string{
		"outbox_messages",
		"delivery_logs",
		"delivery_assignments",
		"transit_logs",
		"transit_assignments",
		"vehicles",
		"parcel_pickups",
		"parcel_exchanges",
		"return_requests",
		"handovers",
		"parcel_status_logs",
		"parcel_items",
		"parcels",
		"customers",
		"staff",
		"locations",
	}
}
