// Package exchange keeps the history of recipient and station reassignments.
// A parcel may be exchanged any number of times.
package exchange

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrTargetIsRequired         = errs.NewValueIsRequiredError("new recipient or new station")
	ErrSwitchedByIsRequired     = errs.NewValueIsRequiredError("switched by")
	ErrExchangeIsNotConstructed = errors.New("Exchange must be created via NewExchange constructor")
)

// Exchange is one reassignment. The from side is a snapshot of the parcel's
// live recipient and destination at the moment of the switch.
type Exchange struct {
	id              kernel.UUID
	parcelID        kernel.UUID
	fromRecipientID *kernel.UUID
	toRecipientID   *kernel.UUID
	fromStationID   *kernel.UUID
	toStationID     *kernel.UUID
	switchedBy      *kernel.UUID
	switchedAt      time.Time
	note            string
	guard           guard.ConstructorGuard
}

func NewExchange(
	id, parcelID kernel.UUID,
	fromRecipient, toRecipient, fromStation, toStation *kernel.UUID,
	switchedBy kernel.UUID,
	note string,
	now time.Time,
) (*Exchange, error) {
	var targetErr, byErr error
	if toRecipient == nil && toStation == nil {
		targetErr = ErrTargetIsRequired
	}
	if switchedBy.Validate() != nil {
		byErr = ErrSwitchedByIsRequired
	}
	if err := errors.Join(id.Validate(), parcelID.Validate(), targetErr, byErr); err != nil {
		return nil, err
	}

	return &Exchange{
		id:              id,
		parcelID:        parcelID,
		fromRecipientID: fromRecipient,
		toRecipientID:   toRecipient,
		fromStationID:   fromStation,
		toStationID:     toStation,
		switchedBy:      &switchedBy,
		switchedAt:      now,
		note:            strings.TrimSpace(note),
		guard:           guard.NewConstructorGuard(),
	}, nil
}

// RestoreExchange rebuilds a stored exchange. Every reference is nil once
// the referenced record was deleted, so only the identifiers are checked.
func RestoreExchange(
	id, parcelID kernel.UUID,
	fromRecipient, toRecipient, fromStation, toStation, switchedBy *kernel.UUID,
	note string,
	switchedAt time.Time,
) (*Exchange, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate()); err != nil {
		return nil, err
	}

	return &Exchange{
		id:              id,
		parcelID:        parcelID,
		fromRecipientID: fromRecipient,
		toRecipientID:   toRecipient,
		fromStationID:   fromStation,
		toStationID:     toStation,
		switchedBy:      switchedBy,
		switchedAt:      switchedAt,
		note:            note,
		guard:           guard.NewConstructorGuard(),
	}, nil
}

func (e *Exchange) Validate() error {
	if e == nil {
		return ErrExchangeIsNotConstructed
	}
	return e.guard.Validate(ErrExchangeIsNotConstructed)
}

func (e *Exchange) ID() kernel.UUID { return e.id }
func (e *Exchange) ParcelID() kernel.UUID { return e.parcelID }
func (e *Exchange) FromRecipientID() *kernel.UUID { return e.fromRecipientID }
func (e *Exchange) ToRecipientID() *kernel.UUID { return e.toRecipientID }
func (e *Exchange) FromStationID() *kernel.UUID { return e.fromStationID }
func (e *Exchange) ToStationID() *kernel.UUID { return e.toStationID }
func (e *Exchange) SwitchedBy() *kernel.UUID { return e.switchedBy }
func (e *Exchange) SwitchedAt() time.Time { return e.switchedAt }
func (e *Exchange) Note() string { return e.note }
