package directoryrepo

import (
	"context"
	"errors"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormStaffRepository implements ports.StaffRepository using GORM.
type GormStaffRepository struct {
	db *gorm.DB
}

func NewGormStaffRepository(db *gorm.DB) *GormStaffRepository {
	return &GormStaffRepository{db: db}
}

func (r *GormStaffRepository) Add(ctx context.Context, s *staff.Staff) error {
	if err := s.Validate(); err != nil {
		return err
	}

	dto := staffFromDomain(s)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "staff", s.EmployeeID().String())
	}
	return nil
}

func (r *GormStaffRepository) Get(ctx context.Context, id kernel.UUID) (*staff.Staff, error) {
	var dto StaffDTO
	if err := first(ctx, r.db, &dto, id, "staff"); err != nil {
		return nil, err
	}
	return staffToDomain(dto)
}

// GormCustomerRepository implements ports.CustomerRepository using GORM.
type GormCustomerRepository struct {
	db *gorm.DB
}

func NewGormCustomerRepository(db *gorm.DB) *GormCustomerRepository {
	return &GormCustomerRepository{db: db}
}

func (r *GormCustomerRepository) Add(ctx context.Context, c *customer.Customer) error {
	if err := c.Validate(); err != nil {
		return err
	}

	dto := customerFromDomain(c)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "customer", c.ID().String())
	}
	return nil
}

func (r *GormCustomerRepository) Get(ctx context.Context, id kernel.UUID) (*customer.Customer, error) {
	var dto CustomerDTO
	if err := first(ctx, r.db, &dto, id, "customer"); err != nil {
		return nil, err
	}
	return customerToDomain(dto)
}

// GormLocationRepository implements ports.LocationRepository using GORM.
type GormLocationRepository struct {
	db *gorm.DB
}

func NewGormLocationRepository(db *gorm.DB) *GormLocationRepository {
	return &GormLocationRepository{db: db}
}

func (r *GormLocationRepository) Add(ctx context.Context, l *location.Location) error {
	if err := l.Validate(); err != nil {
		return err
	}

	dto, err := locationFromDomain(l)
	if err != nil {
		return err
	}
	if err = r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "location", l.ID().String())
	}
	return nil
}

func (r *GormLocationRepository) Get(ctx context.Context, id kernel.UUID) (*location.Location, error) {
	var dto LocationDTO
	if err := first(ctx, r.db, &dto, id, "location"); err != nil {
		return nil, err
	}
	return locationToDomain(dto)
}

func first(ctx context.Context, db *gorm.DB, dest any, id kernel.UUID, name string) error {
	if err := id.Validate(); err != nil {
		return err
	}

	if err := db.WithContext(ctx).First(dest, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return errs.NewObjectNotFoundError(name, id.String())
		}
		return err
	}
	return nil
}
