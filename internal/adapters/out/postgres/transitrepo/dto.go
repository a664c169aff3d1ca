// Package transitrepo persists transit assignments, their log and the
// vehicle fleet.
package transitrepo

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/transit"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

// AssignmentDTO keeps the parcel batch as a text array. The batch is fixed
// when the assignment is created.
type AssignmentDTO struct {
	ID                 uuid.UUID      `gorm:"type:uuid;primaryKey"`
	VehicleID          uuid.UUID      `gorm:"type:uuid;not null;index"`
	DriverID           uuid.UUID      `gorm:"type:uuid;not null;index"`
	OriginID           uuid.UUID      `gorm:"type:uuid;not null"`
	DestinationID      uuid.UUID      `gorm:"type:uuid;not null"`
	ParcelIDs          pq.StringArray `gorm:"type:text[];not null"`
	Status             string         `gorm:"type:varchar(16);not null;index"`
	ScheduledDeparture *time.Time
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	CreatedAt          time.Time `gorm:"not null"`
}

func (AssignmentDTO) TableName() string {
	return "transit_assignments"
}

type LogDTO struct {
	ID           uuid.UUID  `gorm:"type:uuid;primaryKey"`
	AssignmentID uuid.UUID  `gorm:"type:uuid;not null;index"`
	LocationID   *uuid.UUID `gorm:"type:uuid"`
	StaffID      *uuid.UUID `gorm:"type:uuid"`
	Note         string     `gorm:"type:text;not null"`
	Timestamp    time.Time  `gorm:"not null"`
}

func (LogDTO) TableName() string {
	return "transit_logs"
}

type VehicleDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	PlateNumber string    `gorm:"type:varchar(32);not null;uniqueIndex:idx_vehicles_plate"`
	Type        string    `gorm:"type:varchar(16);not null"`
	CapacityKg  float64   `gorm:"type:numeric(10,2);not null"`
	Active      bool      `gorm:"not null"`
}

func (VehicleDTO) TableName() string {
	return "vehicles"
}

func fromDomain(a *transit.Assignment) AssignmentDTO {
	parcelIDs := make(pq.StringArray, 0, len(a.ParcelIDs()))
	for _, id := range a.ParcelIDs() {
		parcelIDs = append(parcelIDs, id.String())
	}

	return AssignmentDTO{
		ID:                 a.ID().Bytes(),
		VehicleID:          a.VehicleID().Bytes(),
		DriverID:           a.DriverID().Bytes(),
		OriginID:           a.OriginID().Bytes(),
		DestinationID:      a.DestinationID().Bytes(),
		ParcelIDs:          parcelIDs,
		Status:             a.Status().String(),
		ScheduledDeparture: a.ScheduledDeparture(),
		DepartureTime:      a.DepartureTime(),
		ArrivalTime:        a.ArrivalTime(),
		CreatedAt:          a.CreatedAt(),
	}
}

func toDomain(dto AssignmentDTO) (*transit.Assignment, error) {
	status, err := transit.ParseStatus(dto.Status)
	if err != nil {
		return nil, err
	}

	parcelIDs := make([]kernel.UUID, 0, len(dto.ParcelIDs))
	for _, raw := range dto.ParcelIDs {
		id, parseErr := kernel.UUIDFromString(raw)
		if parseErr != nil {
			return nil, parseErr
		}
		parcelIDs = append(parcelIDs, id)
	}

	ids := make([]kernel.UUID, 5)
	for i, raw := range []uuid.UUID{dto.ID, dto.VehicleID, dto.DriverID, dto.OriginID, dto.DestinationID} {
		if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
			return nil, err
		}
	}

	return transit.RestoreAssignment(transit.State{
		ID:                 ids[0],
		VehicleID:          ids[1],
		DriverID:           ids[2],
		OriginID:           ids[3],
		DestinationID:      ids[4],
		ParcelIDs:          parcelIDs,
		Status:             status,
		ScheduledDeparture: dto.ScheduledDeparture,
		DepartureTime:      dto.DepartureTime,
		ArrivalTime:        dto.ArrivalTime,
		CreatedAt:          dto.CreatedAt,
	})
}

func logFromDomain(l transit.Log) LogDTO {
	return LogDTO{
		ID:           l.ID().Bytes(),
		AssignmentID: l.AssignmentID().Bytes(),
		LocationID:   kernel.OptionalBytes(l.LocationID()),
		StaffID:      kernel.OptionalBytes(l.StaffID()),
		Note:         l.Note(),
		Timestamp:    l.Timestamp(),
	}
}

func vehicleFromDomain(v *transit.Vehicle) VehicleDTO {
	return VehicleDTO{
		ID:          v.ID().Bytes(),
		PlateNumber: v.PlateNumber(),
		Type:        string(v.Type()),
		CapacityKg:  v.CapacityKg(),
		Active:      v.IsActive(),
	}
}

func vehicleToDomain(dto VehicleDTO) (*transit.Vehicle, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}
	return transit.RestoreVehicle(id, dto.PlateNumber, transit.VehicleType(dto.Type), dto.CapacityKg, dto.Active)
}
