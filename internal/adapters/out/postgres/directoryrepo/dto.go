// Package directoryrepo persists the reference data the core looks up:
// staff, customers and locations.
package directoryrepo

import (
	"logistics/internal/core/domain/model/customer"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/staff"

	"github.com/google/uuid"
)

type StaffDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	EmployeeID string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_staff_employee_id"`
	Name       string     `gorm:"type:varchar(255);not null"`
	Role       string     `gorm:"type:varchar(32);not null"`
	LocationID *uuid.UUID `gorm:"type:uuid;index"`
	Active     bool       `gorm:"not null"`
}

func (StaffDTO) TableName() string {
	return "staff"
}

type CustomerDTO struct {
	ID                   uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name                 string    `gorm:"type:varchar(255);not null"`
	Email                string    `gorm:"type:varchar(255)"`
	Phone                string    `gorm:"type:varchar(32)"`
	Address              string    `gorm:"type:text"`
	Registered           bool      `gorm:"not null"`
	IdentificationNumber string    `gorm:"type:varchar(64)"`
}

func (CustomerDTO) TableName() string {
	return "customers"
}

// LocationDTO stores the kind-specific details as jsonb.
type LocationDTO struct {
	ID      uuid.UUID `gorm:"type:uuid;primaryKey"`
	Name    string    `gorm:"type:varchar(255);not null"`
	City    string    `gorm:"type:varchar(128)"`
	Address string    `gorm:"type:text"`
	Kind    string    `gorm:"type:varchar(32);not null;index"`
	Details []byte    `gorm:"type:jsonb"`
	Active  bool      `gorm:"not null"`
}

func (LocationDTO) TableName() string {
	return "locations"
}

func staffFromDomain(s *staff.Staff) StaffDTO {
	return StaffDTO{
		ID:         s.ID().Bytes(),
		EmployeeID: s.EmployeeID().String(),
		Name:       s.Name(),
		Role:       s.Role().String(),
		LocationID: kernel.OptionalBytes(s.LocationID()),
		Active:     s.IsActive(),
	}
}

func staffToDomain(dto StaffDTO) (*staff.Staff, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	locationID, err := kernel.OptionalUUIDFromBytes(dto.LocationID)
	if err != nil {
		return nil, err
	}
	return staff.RestoreStaff(id, kernel.StaffID(dto.EmployeeID), dto.Name, staff.Role(dto.Role), locationID, dto.Active)
}

func customerFromDomain(c *customer.Customer) CustomerDTO {
	return CustomerDTO{
		ID:                   c.ID().Bytes(),
		Name:                 c.Name(),
		Email:                c.Email(),
		Phone:                c.Phone(),
		Address:              c.Address(),
		Registered:           c.IsRegistered(),
		IdentificationNumber: c.IdentificationNumber(),
	}
}

func customerToDomain(dto CustomerDTO) (*customer.Customer, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return customer.NewCustomer(id, dto.Name, dto.Email, dto.Phone, dto.Address, dto.Registered, dto.IdentificationNumber)
}

func locationFromDomain(l *location.Location) (LocationDTO, error) {
	details, err := location.EncodeDetails(l.Details())
	if err != nil {
		return LocationDTO{}, err
	}

	return LocationDTO{
		ID:      l.ID().Bytes(),
		Name:    l.Name(),
		City:    l.City(),
		Address: l.Address(),
		Kind:    l.Kind().String(),
		Details: details,
		Active:  l.IsActive(),
	}, nil
}

func locationToDomain(dto LocationDTO) (*location.Location, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	kind := location.Kind(dto.Kind)
	details, err := location.DecodeDetails(kind, dto.Details)
	if err != nil {
		return nil, err
	}

	return location.RestoreLocation(id, dto.Name, dto.City, dto.Address, kind, details, dto.Active)
}
