// Package parcelrepo persists parcels, their items and their status log.
package parcelrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/directoryrepo"
	"logistics/internal/adapters/out/postgres/protocolrepo"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"

	"github.com/google/uuid"
)

// ParcelDTO is a row of the parcels table. Customer and location references
// are nullable and set to null when the referenced row is deleted. Items, the
// status log and the protocol records are owned by the parcel and deleted
// with it.
type ParcelDTO struct {
	ID                   uuid.UUID  `gorm:"type:uuid;primaryKey"`
	TrackingNumber       string     `gorm:"type:varchar(32);not null;uniqueIndex:idx_parcels_tracking_number"`
	WeightKg             float64    `gorm:"type:numeric(10,3);not null"`
	SenderID             *uuid.UUID `gorm:"type:uuid;index"`
	RecipientID          *uuid.UUID `gorm:"type:uuid;index"`
	OriginID             *uuid.UUID `gorm:"type:uuid"`
	DestinationID        *uuid.UUID `gorm:"type:uuid;index"`
	DeliveryAddress      string     `gorm:"type:text"`
	LengthCm             float64
	WidthCm              float64
	HeightCm             float64
	Fragile              bool
	RequiresSignature    bool
	Priority             string     `gorm:"type:varchar(16);not null"`
	PaymentStatus        string     `gorm:"type:varchar(16);not null"`
	DeliveryFee          int64      `gorm:"not null"`
	ExtraCharges         int64      `gorm:"not null"`
	SpecialInstructions  string     `gorm:"type:text"`
	ExpectedDeliveryDate *time.Time `gorm:"type:date"`
	Status               string     `gorm:"type:varchar(32);not null;index"`
	CurrentLocation      string     `gorm:"type:varchar(255)"`
	PickupCode           *string    `gorm:"type:char(8);uniqueIndex:idx_parcels_pickup_code"`
	CurrentStationID     *uuid.UUID `gorm:"type:uuid;index"`
	StationArrivalTime   *time.Time
	CreatedAt            time.Time `gorm:"not null"`
	UpdatedAt            time.Time `gorm:"not null"`
	Items                []ItemDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`

	Sender         *directoryrepo.CustomerDTO `gorm:"foreignKey:SenderID;constraint:OnDelete:SET NULL"`
	Recipient      *directoryrepo.CustomerDTO `gorm:"foreignKey:RecipientID;constraint:OnDelete:SET NULL"`
	Origin         *directoryrepo.LocationDTO `gorm:"foreignKey:OriginID;constraint:OnDelete:SET NULL"`
	Destination    *directoryrepo.LocationDTO `gorm:"foreignKey:DestinationID;constraint:OnDelete:SET NULL"`
	CurrentStation *directoryrepo.LocationDTO `gorm:"foreignKey:CurrentStationID;constraint:OnDelete:SET NULL"`

	StatusLogs []StatusLogDTO             `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Handovers  []protocolrepo.HandoverDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Return     *protocolrepo.ReturnDTO    `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Exchanges  []protocolrepo.ExchangeDTO `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
	Pickup     *protocolrepo.PickupDTO    `gorm:"foreignKey:ParcelID;constraint:OnDelete:CASCADE"`
}

func (ParcelDTO) TableName() string {
	return "parcels"
}

type ItemDTO struct {
	ID          uint      `gorm:"primaryKey"`
	ParcelID    uuid.UUID `gorm:"type:uuid;not null;index"`
	Name        string    `gorm:"type:varchar(255);not null"`
	Description string    `gorm:"type:text"`
	Category    string    `gorm:"type:varchar(32);not null"`
	Quantity    int       `gorm:"not null"`
	WeightKg    *float64  `gorm:"type:numeric(10,3)"`
	Value       *int64
}

func (ItemDTO) TableName() string {
	return "parcel_items"
}

// StatusLogDTO is an append-only audit row. Rows are never updated.
type StatusLogDTO struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID  `gorm:"type:uuid;not null;index:idx_status_logs_parcel_time,priority:1"`
	Status     string     `gorm:"type:varchar(32);not null"`
	LocationID *uuid.UUID `gorm:"type:uuid"`
	StaffID    *uuid.UUID `gorm:"type:uuid"`
	Note       string     `gorm:"type:text"`
	Timestamp  time.Time  `gorm:"not null;index:idx_status_logs_parcel_time,priority:2"`

	Location *directoryrepo.LocationDTO `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
	Staff    *directoryrepo.StaffDTO    `gorm:"foreignKey:StaffID;constraint:OnDelete:SET NULL"`
}

func (StatusLogDTO) TableName() string {
	return "parcel_status_logs"
}

func fromDomain(p *parcel.Parcel) ParcelDTO {
	attrs := p.Attributes()

	var pickupCode *string
	if code := p.PickupCode(); code != nil {
		s := code.String()
		pickupCode = &s
	}

	dto := ParcelDTO{
		ID:                   p.ID().Bytes(),
		TrackingNumber:       p.TrackingNumber().String(),
		WeightKg:             p.WeightKg(),
		SenderID:             kernel.OptionalBytes(attrs.SenderID),
		RecipientID:          kernel.OptionalBytes(attrs.RecipientID),
		OriginID:             kernel.OptionalBytes(attrs.OriginID),
		DestinationID:        kernel.OptionalBytes(attrs.DestinationID),
		DeliveryAddress:      attrs.DeliveryAddress,
		LengthCm:             attrs.Dimensions.LengthCm,
		WidthCm:              attrs.Dimensions.WidthCm,
		HeightCm:             attrs.Dimensions.HeightCm,
		Fragile:              attrs.Fragile,
		RequiresSignature:    attrs.RequiresSignature,
		Priority:             string(attrs.Priority),
		PaymentStatus:        string(attrs.Payment),
		DeliveryFee:          attrs.DeliveryFee,
		ExtraCharges:         attrs.ExtraCharges,
		SpecialInstructions:  attrs.SpecialInstructions,
		ExpectedDeliveryDate: attrs.ExpectedDeliveryDate,
		Status:               string(p.Status()),
		CurrentLocation:      p.CurrentLocation(),
		PickupCode:           pickupCode,
		CurrentStationID:     kernel.OptionalBytes(p.CurrentStationID()),
		StationArrivalTime:   p.StationArrivalTime(),
		CreatedAt:            p.CreatedAt(),
		UpdatedAt:            p.UpdatedAt(),
	}

	for _, item := range p.Items() {
		dto.Items = append(dto.Items, ItemDTO{
			ParcelID:    dto.ID,
			Name:        item.Name(),
			Description: item.Description(),
			Category:    string(item.Category()),
			Quantity:    item.Quantity(),
			WeightKg:    item.WeightKg(),
			Value:       item.Value(),
		})
	}

	return dto
}

func toDomain(dto ParcelDTO) (*parcel.Parcel, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return nil, err
	}

	refs := make([]*kernel.UUID, 5)
	var refErrs []error
	for i, raw := range []*uuid.UUID{dto.SenderID, dto.RecipientID, dto.OriginID, dto.DestinationID, dto.CurrentStationID} {
		refs[i], err = kernel.OptionalUUIDFromBytes(raw)
		refErrs = append(refErrs, err)
	}
	if err = errors.Join(refErrs...); err != nil {
		return nil, err
	}

	items := make([]parcel.Item, 0, len(dto.Items))
	for _, row := range dto.Items {
		item, itemErr := parcel.NewItem(row.Name, row.Description, parcel.Category(row.Category),
			row.Quantity, row.WeightKg, row.Value)
		if itemErr != nil {
			return nil, itemErr
		}
		items = append(items, item)
	}

	var pickupCode *kernel.PickupCode
	if dto.PickupCode != nil {
		code := kernel.PickupCode(*dto.PickupCode)
		pickupCode = &code
	}

	return parcel.RestoreParcel(parcel.State{
		ID:             id,
		TrackingNumber: kernel.TrackingNumber(dto.TrackingNumber),
		WeightKg:       dto.WeightKg,
		Attributes: parcel.Attributes{
			SenderID:             refs[0],
			RecipientID:          refs[1],
			OriginID:             refs[2],
			DestinationID:        refs[3],
			DeliveryAddress:      dto.DeliveryAddress,
			Dimensions:           parcel.Dimensions{LengthCm: dto.LengthCm, WidthCm: dto.WidthCm, HeightCm: dto.HeightCm},
			Fragile:              dto.Fragile,
			RequiresSignature:    dto.RequiresSignature,
			Priority:             parcel.Priority(dto.Priority),
			Payment:              parcel.PaymentStatus(dto.PaymentStatus),
			DeliveryFee:          dto.DeliveryFee,
			ExtraCharges:         dto.ExtraCharges,
			SpecialInstructions:  dto.SpecialInstructions,
			ExpectedDeliveryDate: dto.ExpectedDeliveryDate,
		},
		Items:              items,
		Status:             parcel.Status(dto.Status),
		CurrentLocation:    dto.CurrentLocation,
		PickupCode:         pickupCode,
		CurrentStationID:   refs[4],
		StationArrivalTime: dto.StationArrivalTime,
		CreatedAt:          dto.CreatedAt,
		UpdatedAt:          dto.UpdatedAt,
	})
}

func logFromDomain(e parcel.LogEntry) StatusLogDTO {
	return StatusLogDTO{
		ID:         e.ID().Bytes(),
		ParcelID:   e.ParcelID().Bytes(),
		Status:     string(e.Status()),
		LocationID: kernel.OptionalBytes(e.LocationID()),
		StaffID:    kernel.OptionalBytes(e.StaffID()),
		Note:       e.Note(),
		Timestamp:  e.Timestamp(),
	}
}
