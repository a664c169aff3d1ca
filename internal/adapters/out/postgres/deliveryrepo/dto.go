// Package deliveryrepo persists last-mile delivery assignments and the
// courier's log.
package deliveryrepo

import (
	"time"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

type AssignmentDTO struct {
	ID                 uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID           uuid.UUID  `gorm:"type:uuid;not null;index"`
	CourierID          uuid.UUID  `gorm:"type:uuid;not null;index"`
	VehicleID          *uuid.UUID `gorm:"type:uuid"`
	OriginID           *uuid.UUID `gorm:"type:uuid"`
	DestinationAddress string     `gorm:"type:text"`
	DestinationCity    string     `gorm:"type:varchar(128)"`
	Status             string     `gorm:"type:varchar(24);not null;index"`
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	RequiresSignature  bool      `gorm:"not null"`
	SignedOff          bool      `gorm:"not null"`
	CreatedAt          time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "delivery_assignments"
}

// LogDTO keeps the courier's free-text status as entered.
type LogDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	Status       string     `gorm:"type:varchar(64);not null"`
	LocationID   *uuid.UUID `gorm:"type:uuid"`
	StaffID      *uuid.UUID `gorm:"type:uuid"`
	Note         string     `gorm:"type:text"`
	Timestamp    time.Time  `gorm:"not null"`
}

func (LogDTO) TableName() string {
	return "delivery_logs"
}

func fromDomain(a *delivery.Assignment) AssignmentDTO {
	return AssignmentDTO{
		ID:                 a.ID().Bytes(),
		ParcelID:           a.ParcelID().Bytes(),
		CourierID:          a.CourierID().Bytes(),
		VehicleID:          kernel.OptionalBytes(a.VehicleID()),
		OriginID:           kernel.OptionalBytes(a.OriginID()),
		DestinationAddress: a.DestinationAddress(),
		DestinationCity:    a.DestinationCity(),
		Status:             a.Status().String(),
		DepartureTime:      a.DepartureTime(),
		ArrivalTime:        a.ArrivalTime(),
		RequiresSignature:  a.RequiresSignature(),
		SignedOff:          a.SignedOff(),
		CreatedAt:          a.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*delivery.Assignment, error) {
	status, err := delivery.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 3)
	for i, raw := range []uuid.UUID{dto.ID, dto.ParcelID, dto.CourierID} {
		if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
			return nil, err
		}
	}
	vehicleID, err := kernel.OptionalUUIDFromBytes(dto.VehicleID)
	if err != nil {
		return nil, err
	}
	originID, err := kernel.OptionalUUIDFromBytes(dto.OriginID)
	if err != nil {
		return nil, err
	}

	return delivery.RestoreAssignment(delivery.State{
		ID:                 ids[0],
		ParcelID:           ids[1],
		CourierID:          ids[2],
		VehicleID:          vehicleID,
		OriginID:           originID,
		DestinationAddress: dto.DestinationAddress,
		DestinationCity:    dto.DestinationCity,
		Status:             status,
		DepartureTime:      dto.DepartureTime,
		ArrivalTime:        dto.ArrivalTime,
		RequiresSignature:  dto.RequiresSignature,
		SignedOff:          dto.SignedOff,
		CreatedAt:          dto.CreatedAt,
	})
}

func logFromDomain(l delivery.Log) LogDTO {
	return LogDTO{
		ID:           l.ID().Bytes(),
		AssignmentID: l.AssignmentID().Bytes(),
		Status:       l.Status(),
		LocationID:   kernel.OptionalBytes(l.LocationID()),
		StaffID:      kernel.OptionalBytes(l.StaffID()),
		Note:         l.Note(),
		Timestamp:    l.Timestamp(),
	}
}
