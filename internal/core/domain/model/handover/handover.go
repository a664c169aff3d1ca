package handover

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrTypeIsInvalid            = errs.NewValueIsInvalidError("handover type")
	ErrFromStaffIsRequired      = errs.NewValueIsRequiredError("from staff")
	ErrToStaffIsRequired        = errs.NewValueIsRequiredError("to staff")
	ErrToCustomerIsRequired     = errs.NewValueIsRequiredError("to customer")
	ErrRecipientsAreExclusive   = errs.NewValueIsInvalidError("to staff and to customer are mutually exclusive")
	ErrNotReceivingParty        = errs.NewAccessIsDeniedError("only the receiving staff member can acknowledge a handover")
	ErrAlreadyAcknowledged      = errs.NewStateIsInvalidError("handover is already acknowledged")
	ErrHandoverIsNotConstructed = errors.New("Handover must be created via NewHandover constructor")
)

// Type is the direction of a custody transfer.
type Type string

const (
	WarehouseToDriver Type = "warehouse_to_driver"
	DriverToWarehouse Type = "driver_to_warehouse"
	DriverToStation   Type = "driver_to_station"
	StationToCourier  Type = "station_to_courier"
	CourierToCustomer Type = "courier_to_customer"
	ReturnToStation   Type = "return_to_station"
	ReturnToWarehouse Type = "return_to_warehouse"
	InterWarehouse    Type = "inter_warehouse"
)

func AllTypes() []Type {
	return []Type{
		WarehouseToDriver, DriverToWarehouse, DriverToStation, StationToCourier,
		CourierToCustomer, ReturnToStation, ReturnToWarehouse, InterWarehouse,
	}
}

func ParseType(s string) (Type, error) {
	t := Type(strings.ToLower(strings.TrimSpace(s)))
	return t, t.Validate()
}

func (t Type) Validate() error {
	for _, v := range AllTypes() {
		if t == v {
			return nil
		}
	}
	return fmt.Errorf("%w: %q", ErrTypeIsInvalid, string(t))
}

func (t Type) String() string { return string(t) }

// ToCustomer reports whether the receiving party is a customer rather than staff.
func (t Type) ToCustomer() bool { return t == CourierToCustomer }

// Handover records one custody transfer of a parcel. It is observational: the
// parcel status is not derived from it.
type Handover struct {
	id           kernel.UUID
	parcelID     kernel.UUID
	handoverType Type
	fromStaffID  *kernel.UUID
	toStaffID    *kernel.UUID
	toCustomerID *kernel.UUID
	locationID   *kernel.UUID
	fromAck      bool
	toAck        bool
	note         string
	createdAt    time.Time
	guard        guard.ConstructorGuard
}

// NewHandover records a transfer initiated by recordedBy. from_ack is set
// when the recorder is the handing-over staff member; to_ack starts unset.
//
// courier_to_customer transfers require toCustomer; every other type requires
// toStaff. Supplying both is rejected.
func NewHandover(
	id, parcelID kernel.UUID,
	handoverType Type,
	fromStaff kernel.UUID,
	toStaff, toCustomer, locationID *kernel.UUID,
	recordedBy kernel.UUID,
	note string,
	now time.Time,
) (*Handover, error) {
	var fromErr error
	if fromStaff.Validate() != nil {
		fromErr = ErrFromStaffIsRequired
	}

	if err := errors.Join(
		id.Validate(),
		parcelID.Validate(),
		handoverType.Validate(),
		fromErr,
		validateReceiver(handoverType, toStaff, toCustomer),
	); err != nil {
		return nil, err
	}

	return &Handover{
		id:           id,
		parcelID:     parcelID,
		handoverType: handoverType,
		fromStaffID:  &fromStaff,
		toStaffID:    toStaff,
		toCustomerID: toCustomer,
		locationID:   locationID,
		fromAck:      recordedBy.IsEqual(fromStaff),
		note:         strings.TrimSpace(note),
		createdAt:    now,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// RestoreHandover rebuilds a stored handover. Staff, customer and location
// references are nil once the referenced record was deleted.
func RestoreHandover(
	id, parcelID kernel.UUID,
	handoverType Type,
	fromStaff, toStaff, toCustomer, locationID *kernel.UUID,
	fromAck, toAck bool,
	note string,
	createdAt time.Time,
) (*Handover, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), handoverType.Validate()); err != nil {
		return nil, err
	}

	return &Handover{
		id:           id,
		parcelID:     parcelID,
		handoverType: handoverType,
		fromStaffID:  fromStaff,
		toStaffID:    toStaff,
		toCustomerID: toCustomer,
		locationID:   locationID,
		fromAck:      fromAck,
		toAck:        toAck,
		note:         note,
		createdAt:    createdAt,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func validateReceiver(t Type, toStaff, toCustomer *kernel.UUID) error {
	if toStaff != nil && toCustomer != nil {
		return ErrRecipientsAreExclusive
	}
	if t.ToCustomer() {
		if toCustomer == nil {
			return ErrToCustomerIsRequired
		}
		return nil
	}
	if toCustomer != nil {
		return fmt.Errorf("%w: %s hands over to staff", ErrRecipientsAreExclusive, t)
	}
	if toStaff == nil {
		return ErrToStaffIsRequired
	}
	return nil
}

func (h *Handover) Validate() error {
	if h == nil {
		return ErrHandoverIsNotConstructed
	}
	return h.guard.Validate(ErrHandoverIsNotConstructed)
}

func (h *Handover) ID() kernel.UUID { return h.id }
func (h *Handover) ParcelID() kernel.UUID { return h.parcelID }
func (h *Handover) Type() Type { return h.handoverType }
func (h *Handover) FromStaffID() *kernel.UUID { return h.fromStaffID }
func (h *Handover) ToStaffID() *kernel.UUID { return h.toStaffID }
func (h *Handover) ToCustomerID() *kernel.UUID { return h.toCustomerID }
func (h *Handover) LocationID() *kernel.UUID { return h.locationID }
func (h *Handover) FromAck() bool { return h.fromAck }
func (h *Handover) ToAck() bool { return h.toAck }
func (h *Handover) Note() string { return h.note }
func (h *Handover) CreatedAt() time.Time { return h.createdAt }

// Acknowledge confirms receipt. Only the receiving staff member may do so,
// and only once.
func (h *Handover) Acknowledge(staffID kernel.UUID) error {
	if h.toStaffID == nil || !h.toStaffID.IsEqual(staffID) {
		return ErrNotReceivingParty
	}
	if h.toAck {
		return ErrAlreadyAcknowledged
	}
	h.toAck = true
	return nil
}
