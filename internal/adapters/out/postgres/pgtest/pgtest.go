// Package pgtest starts a disposable PostgreSQL container for integration
// tests and migrates the service schema into it.
package pgtest

import (
	"context"
	"encoding/json"
	"strings"
	"time"

	"logistics/internal/adapters/out/postgres"
	"logistics/internal/adapters/out/postgres/directoryrepo"
	"logistics/internal/adapters/out/postgres/parcelrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/staff"

	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

type Database struct {
	Container *tcpostgres.PostgresContainer
	DB        *gorm.DB
}

// Start runs postgres:15-alpine and applies postgres.Migrate.
func Start(ctx context.Context) (*Database, error) {
	container, err := tcpostgres.Run(ctx,
		"postgres:15-alpine",
		tcpostgres.WithDatabase("logistics_test"),
		tcpostgres.WithUsername("testuser"),
		tcpostgres.WithPassword("testpass"),
		testcontainers.WithWaitStrategy(wait.ForLog("database system is ready to accept connections").
			WithOccurrence(2).
			WithStartupTimeout(30*time.Second)),
	)
	if err != nil {
		return nil, err
	}

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	db, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Silent),
		TranslateError: true,
	})
	if err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	if err = postgres.Migrate(db); err != nil {
		_ = container.Terminate(ctx)
		return nil, err
	}

	return &Database{Container: container, DB: db}, nil
}

// Truncate empties every service table.
func (d *Database) Truncate() error {
	return d.DB.Exec("TRUNCATE TABLE " + strings.Join(postgres.TableNames(), ", ") + " CASCADE").Error
}

func (d *Database) Terminate(ctx context.Context) error {
	if d == nil || d.Container == nil {
		return nil
	}
	return d.Container.Terminate(ctx)
}

var identifiers = kernel.NewIdentifierGenerator()

// SeedStaff inserts an active staff member with role so rows referencing it
// satisfy their foreign keys.
func (d *Database) SeedStaff(ctx context.Context, role staff.Role) (kernel.UUID, error) {
	employeeID, err := identifiers.NextStaffID()
	if err != nil {
		return kernel.UUID{}, err
	}
	id := kernel.NewUUID()
	err = d.DB.WithContext(ctx).Create(&directoryrepo.StaffDTO{
		ID:         id.Bytes(),
		EmployeeID: employeeID.String(),
		Name:       "Staff " + employeeID.String(),
		Role:       string(role),
		Active:     true,
	}).Error
	return id, err
}

func (d *Database) SeedCustomer(ctx context.Context) (kernel.UUID, error) {
	id := kernel.NewUUID()
	err := d.DB.WithContext(ctx).Create(&directoryrepo.CustomerDTO{
		ID:         id.Bytes(),
		Name:       "Customer " + id.String()[:8],
		Registered: true,
	}).Error
	return id, err
}

// SeedLocation inserts an active location. Pickup stations get a storage
// window of maxStorageDays; other kinds ignore it.
func (d *Database) SeedLocation(ctx context.Context, kind location.Kind, maxStorageDays int) (kernel.UUID, error) {
	var details []byte
	if kind == location.PickupStation {
		var err error
		if details, err = json.Marshal(location.StationDetails{MaxStorageDays: maxStorageDays}); err != nil {
			return kernel.UUID{}, err
		}
	}
	id := kernel.NewUUID()
	err := d.DB.WithContext(ctx).Create(&directoryrepo.LocationDTO{
		ID:      id.Bytes(),
		Name:    string(kind) + " " + id.String()[:8],
		Kind:    string(kind),
		Details: details,
		Active:  true,
	}).Error
	return id, err
}

// SeedParcel inserts a packed parcel row for tests of the records a parcel owns.
func (d *Database) SeedParcel(ctx context.Context) (kernel.UUID, error) {
	tn, err := identifiers.NextTrackingNumber()
	if err != nil {
		return kernel.UUID{}, err
	}
	id := kernel.NewUUID()
	now := time.Now().UTC()
	err = d.DB.WithContext(ctx).Create(&parcelrepo.ParcelDTO{
		ID:             id.Bytes(),
		TrackingNumber: tn.String(),
		WeightKg:       1,
		Priority:       string(parcel.Standard),
		PaymentStatus:  string(parcel.NoPaymentDue),
		Status:         string(parcel.Packed),
		CreatedAt:      now,
		UpdatedAt:      now,
	}).Error
	return id, err
}
