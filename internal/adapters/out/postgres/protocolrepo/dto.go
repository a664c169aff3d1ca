// Package protocolrepo persists the custody protocol records kept around a
// parcel: handovers, return requests, exchanges and pickups.
package protocolrepo

import (
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/directoryrepo"
	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/model/returns"

	"github.com/google/uuid"
)

// HandoverDTO references are set to null when the staff, customer or
// location row is deleted. The parcel owns the row.
type HandoverDTO struct {
	ID           uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	ParcelID     uuid.UUID                  `gorm:"type:uuid;not null;index"`
	Type         string                     `gorm:"type:varchar(32);not null"`
	FromStaffID  *uuid.UUID                 `gorm:"type:uuid"`
	ToStaffID    *uuid.UUID                 `gorm:"type:uuid"`
	ToCustomerID *uuid.UUID                 `gorm:"type:uuid"`
	LocationID   *uuid.UUID                 `gorm:"type:uuid"`
	FromAck      bool                       `gorm:"not null"`
	ToAck        bool                       `gorm:"not null"`
	Note         string                     `gorm:"type:text"`
	CreatedAt    time.Time                  `gorm:"not null"`
	FromStaff    *directoryrepo.StaffDTO    `gorm:"foreignKey:FromStaffID;constraint:OnDelete:SET NULL"`
	ToStaff      *directoryrepo.StaffDTO    `gorm:"foreignKey:ToStaffID;constraint:OnDelete:SET NULL"`
	ToCustomer   *directoryrepo.CustomerDTO `gorm:"foreignKey:ToCustomerID;constraint:OnDelete:SET NULL"`
	Location     *directoryrepo.LocationDTO `gorm:"foreignKey:LocationID;constraint:OnDelete:SET NULL"`
}

func (HandoverDTO) TableName() string {
	return "handovers"
}

// ReturnDTO rows are unique per parcel.
type ReturnDTO struct {
	ID          uuid.UUID  `gorm:"type:uuid;primaryKey"`
	ParcelID    uuid.UUID  `gorm:"type:uuid;not null;uniqueIndex:idx_return_requests_parcel"`
	Reason      string     `gorm:"type:varchar(32);not null"`
	InitiatedBy *uuid.UUID `gorm:"type:uuid"`
	InitiatedAt time.Time  `gorm:"not null"`
	CompletedAt *time.Time
	ReturnTo    *uuid.UUID                 `gorm:"type:uuid"`
	Description string                     `gorm:"type:text"`
	Initiator   *directoryrepo.StaffDTO    `gorm:"foreignKey:InitiatedBy;constraint:OnDelete:SET NULL"`
	Destination *directoryrepo.LocationDTO `gorm:"foreignKey:ReturnTo;constraint:OnDelete:SET NULL"`
}

func (ReturnDTO) TableName() string {
	return "return_requests"
}

type ExchangeDTO struct {
	ID              uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	ParcelID        uuid.UUID                  `gorm:"type:uuid;not null;index"`
	FromRecipientID *uuid.UUID                 `gorm:"type:uuid"`
	ToRecipientID   *uuid.UUID                 `gorm:"type:uuid"`
	FromStationID   *uuid.UUID                 `gorm:"type:uuid"`
	ToStationID     *uuid.UUID                 `gorm:"type:uuid"`
	SwitchedBy      *uuid.UUID                 `gorm:"type:uuid"`
	SwitchedAt      time.Time                  `gorm:"not null"`
	Note            string                     `gorm:"type:text"`
	FromRecipient   *directoryrepo.CustomerDTO `gorm:"foreignKey:FromRecipientID;constraint:OnDelete:SET NULL"`
	ToRecipient     *directoryrepo.CustomerDTO `gorm:"foreignKey:ToRecipientID;constraint:OnDelete:SET NULL"`
	FromStation     *directoryrepo.LocationDTO `gorm:"foreignKey:FromStationID;constraint:OnDelete:SET NULL"`
	ToStation       *directoryrepo.LocationDTO `gorm:"foreignKey:ToStationID;constraint:OnDelete:SET NULL"`
	Switcher        *directoryrepo.StaffDTO    `gorm:"foreignKey:SwitchedBy;constraint:OnDelete:SET NULL"`
}

func (ExchangeDTO) TableName() string {
	return "parcel_exchanges"
}

// PickupDTO rows are unique per parcel. Guest columns are empty for
// registered recipients.
type PickupDTO struct {
	ID         uuid.UUID                  `gorm:"type:uuid;primaryKey"`
	ParcelID   uuid.UUID                  `gorm:"type:uuid;not null;uniqueIndex:idx_parcel_pickups_parcel"`
	CustomerID *uuid.UUID                 `gorm:"type:uuid"`
	GuestName  string                     `gorm:"type:varchar(255)"`
	GuestID    string                     `gorm:"type:varchar(64)"`
	PickupCode *string                    `gorm:"type:char(8)"`
	VerifiedBy *uuid.UUID                 `gorm:"type:uuid"`
	SignedOff  bool                       `gorm:"not null"`
	PickedUpAt time.Time                  `gorm:"not null"`
	Customer   *directoryrepo.CustomerDTO `gorm:"foreignKey:CustomerID;constraint:OnDelete:SET NULL"`
	Verifier   *directoryrepo.StaffDTO    `gorm:"foreignKey:VerifiedBy;constraint:OnDelete:SET NULL"`
}

func (PickupDTO) TableName() string {
	return "parcel_pickups"
}

func handoverFromDomain(h *handover.Handover) HandoverDTO {
	return HandoverDTO{
		ID:           h.ID().Bytes(),
		ParcelID:     h.ParcelID().Bytes(),
		Type:         h.Type().String(),
		FromStaffID:  kernel.OptionalBytes(h.FromStaffID()),
		ToStaffID:    kernel.OptionalBytes(h.ToStaffID()),
		ToCustomerID: kernel.OptionalBytes(h.ToCustomerID()),
		LocationID:   kernel.OptionalBytes(h.LocationID()),
		FromAck:      h.FromAck(),
		ToAck:        h.ToAck(),
		Note:         h.Note(),
		CreatedAt:    h.CreatedAt(),
	}
}

func handoverToDomain(dto HandoverDTO) (*handover.Handover, error) {
	ids, err := requiredIDs(dto.ID, dto.ParcelID)
	if err != nil {
		return nil, err
	}
	refs, err := optionalIDs(dto.FromStaffID, dto.ToStaffID, dto.ToCustomerID, dto.LocationID)
	if err != nil {
		return nil, err
	}

	return handover.RestoreHandover(ids[0], ids[1], handover.Type(dto.Type),
		refs[0], refs[1], refs[2], refs[3], dto.FromAck, dto.ToAck, dto.Note, dto.CreatedAt)
}

func returnFromDomain(r *returns.Request) ReturnDTO {
	return ReturnDTO{
		ID:          r.ID().Bytes(),
		ParcelID:    r.ParcelID().Bytes(),
		Reason:      r.Reason().String(),
		InitiatedBy: kernel.OptionalBytes(r.InitiatedBy()),
		InitiatedAt: r.InitiatedAt(),
		CompletedAt: r.CompletedAt(),
		ReturnTo:    kernel.OptionalBytes(r.ReturnTo()),
		Description: r.Description(),
	}
}

func returnToDomain(dto ReturnDTO) (*returns.Request, error) {
	ids, err := requiredIDs(dto.ID, dto.ParcelID)
	if err != nil {
		return nil, err
	}
	refs, err := optionalIDs(dto.InitiatedBy, dto.ReturnTo)
	if err != nil {
		return nil, err
	}

	return returns.RestoreRequest(ids[0], ids[1], returns.Reason(dto.Reason), refs[0],
		dto.InitiatedAt, dto.CompletedAt, refs[1], dto.Description)
}

func exchangeFromDomain(e *exchange.Exchange) ExchangeDTO {
	return ExchangeDTO{
		ID:              e.ID().Bytes(),
		ParcelID:        e.ParcelID().Bytes(),
		FromRecipientID: kernel.OptionalBytes(e.FromRecipientID()),
		ToRecipientID:   kernel.OptionalBytes(e.ToRecipientID()),
		FromStationID:   kernel.OptionalBytes(e.FromStationID()),
		ToStationID:     kernel.OptionalBytes(e.ToStationID()),
		SwitchedBy:      kernel.OptionalBytes(e.SwitchedBy()),
		SwitchedAt:      e.SwitchedAt(),
		Note:            e.Note(),
	}
}

func exchangeToDomain(dto ExchangeDTO) (*exchange.Exchange, error) {
	ids, err := requiredIDs(dto.ID, dto.ParcelID)
	if err != nil {
		return nil, err
	}
	refs, err := optionalIDs(dto.FromRecipientID, dto.ToRecipientID, dto.FromStationID, dto.ToStationID, dto.SwitchedBy)
	if err != nil {
		return nil, err
	}

	return exchange.RestoreExchange(ids[0], ids[1], refs[0], refs[1], refs[2], refs[3],
		refs[4], dto.Note, dto.SwitchedAt)
}

func pickupFromDomain(p *pickup.Pickup) PickupDTO {
	var code *string
	if c := p.PickupCode(); c != nil {
		s := c.String()
		code = &s
	}

	return PickupDTO{
		ID:         p.ID().Bytes(),
		ParcelID:   p.ParcelID().Bytes(),
		CustomerID: kernel.OptionalBytes(p.CustomerID()),
		GuestName:  p.GuestName(),
		GuestID:    p.GuestID(),
		PickupCode: code,
		VerifiedBy: kernel.OptionalBytes(p.VerifiedBy()),
		SignedOff:  p.SignedOff(),
		PickedUpAt: p.PickedUpAt(),
	}
}

func pickupToDomain(dto PickupDTO) (*pickup.Pickup, error) {
	ids, err := requiredIDs(dto.ID, dto.ParcelID)
	if err != nil {
		return nil, err
	}
	refs, err := optionalIDs(dto.CustomerID, dto.VerifiedBy)
	if err != nil {
		return nil, err
	}

	var code *kernel.PickupCode
	if dto.PickupCode != nil {
		c := kernel.PickupCode(*dto.PickupCode)
		code = &c
	}

	return pickup.RestorePickup(ids[0], ids[1], refs[0], dto.GuestName, dto.GuestID,
		code, refs[1], dto.SignedOff, dto.PickedUpAt), nil
}

func requiredIDs(raw ...uuid.UUID) ([]kernel.UUID, error) {
	ids := make([]kernel.UUID, len(raw))
	errList := make([]error, len(raw))
	for i, r := range raw {
		ids[i], errList[i] = kernel.UUIDFromBytes(r[:])
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return ids, nil
}

func optionalIDs(raw ...*uuid.UUID) ([]*kernel.UUID, error) {
	ids := make([]*kernel.UUID, len(raw))
	errList := make([]error, len(raw))
	for i, r := range raw {
		ids[i], errList[i] = kernel.OptionalUUIDFromBytes(r)
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}
	return ids, nil
}
