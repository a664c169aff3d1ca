// Package pickup records how a parcel was collected at a station: by its
// registered recipient or by a guest presenting the pickup code.
package pickup

import (
	"errors"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrPickupAlreadyRecorded  = errs.NewObjectAlreadyExistsError("pickup for parcel", nil)
	ErrInvalidPickupCode      = errs.NewValueIsInvalidError("pickup code does not match")
	ErrNotRecipient           = errs.NewValueIsInvalidError("customer is not the parcel recipient")
	ErrParcelIsNotAtStation   = errs.NewStateIsInvalidError("parcel is not waiting at a station")
	ErrClaimIsAmbiguous       = errs.NewValueIsInvalidError("claim must name either a customer or a guest")
	ErrGuestNameIsRequired    = errs.NewValueIsRequiredError("guest name")
	ErrGuestIDIsRequired      = errs.NewValueIsRequiredError("guest id number")
	ErrPickupIsNotConstructed = errors.New("Pickup must be created via NewPickup constructor")
)

// Guest identifies an unregistered collector.
type Guest struct {
	Name     string
	IDNumber string
	Code     string
}

func (g Guest) validate() error {
	var nameErr, idErr error
	if strings.TrimSpace(g.Name) == "" {
		nameErr = ErrGuestNameIsRequired
	}
	if strings.TrimSpace(g.IDNumber) == "" {
		idErr = ErrGuestIDIsRequired
	}
	return errors.Join(nameErr, idErr)
}

// Claim names who is collecting. Exactly one of CustomerID and Guest is set.
type Claim struct {
	CustomerID *kernel.UUID
	Guest      *Guest
}

func (c Claim) Validate() error {
	switch {
	case c.CustomerID != nil && c.Guest == nil:
		return nil
	case c.CustomerID == nil && c.Guest != nil:
		return c.Guest.validate()
	default:
		return ErrClaimIsAmbiguous
	}
}

// Pickup is the single collection record of a parcel.
type Pickup struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	customerID *kernel.UUID
	guestName  string
	guestID    string
	pickupCode *kernel.PickupCode
	verifiedBy *kernel.UUID
	signedOff  bool
	pickedUpAt time.Time
	guard      guard.ConstructorGuard
}

// NewPickup builds the record for an already verified claim. For guests the
// code they presented is kept for audit.
func NewPickup(id, parcelID kernel.UUID, claim Claim, verifiedBy kernel.UUID, now time.Time) (*Pickup, error) {
	if err := errors.Join(id.Validate(), parcelID.Validate(), verifiedBy.Validate(), claim.Validate()); err != nil {
		return nil, err
	}

	p := &Pickup{
		id:         id,
		parcelID:   parcelID,
		customerID: claim.CustomerID,
		verifiedBy: &verifiedBy,
		signedOff:  true,
		pickedUpAt: now,
		guard:      guard.NewConstructorGuard(),
	}
	if claim.Guest != nil {
		code := kernel.PickupCode(claim.Guest.Code)
		p.guestName = strings.TrimSpace(claim.Guest.Name)
		p.guestID = strings.TrimSpace(claim.Guest.IDNumber)
		p.pickupCode = &code
	}
	return p, nil
}

// RestorePickup rebuilds a stored pickup. customerID and verifiedBy are nil
// once the referenced record was deleted.
func RestorePickup(
	id, parcelID kernel.UUID,
	customerID *kernel.UUID,
	guestName, guestID string,
	pickupCode *kernel.PickupCode,
	verifiedBy *kernel.UUID,
	signedOff bool,
	pickedUpAt time.Time,
) *Pickup {
	return &Pickup{
		id:         id,
		parcelID:   parcelID,
		customerID: customerID,
		guestName:  guestName,
		guestID:    guestID,
		pickupCode: pickupCode,
		verifiedBy: verifiedBy,
		signedOff:  signedOff,
		pickedUpAt: pickedUpAt,
		guard:      guard.NewConstructorGuard(),
	}
}

func (p *Pickup) Validate() error {
	if p == nil {
		return ErrPickupIsNotConstructed
	}
	return p.guard.Validate(ErrPickupIsNotConstructed)
}

func (p *Pickup) ID() kernel.UUID { return p.id }
func (p *Pickup) ParcelID() kernel.UUID { return p.parcelID }
func (p *Pickup) CustomerID() *kernel.UUID { return p.customerID }
func (p *Pickup) GuestName() string { return p.guestName }
func (p *Pickup) GuestID() string { return p.guestID }
func (p *Pickup) PickupCode() *kernel.PickupCode { return p.pickupCode }
func (p *Pickup) VerifiedBy() *kernel.UUID { return p.verifiedBy }
func (p *Pickup) SignedOff() bool { return p.signedOff }
func (p *Pickup) PickedUpAt() time.Time { return p.pickedUpAt }
func (p *Pickup) IsGuest() bool { return p.customerID == nil }
