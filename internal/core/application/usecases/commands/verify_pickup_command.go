package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/pkg/guard"
)

var ErrVerifyPickupCommandIsNotConstructed = errors.New(
	"VerifyPickupCommand must be created via NewVerifyPickupCommand constructor",
)

// VerifyPickupCommand hands a parcel over at the station either to its
// registered recipient or to a guest presenting the pickup code.
//
// Example:
//
//	guest := pickup.Guest{Name: "Ann Lee", IDNumber: "X1234567", Code: "9F3A01BC"}
//	cmd, err := NewVerifyPickupCommand(stationStaffID, parcelID, pickup.Claim{Guest: &guest})
type VerifyPickupCommand struct { //nolint:recvcheck //using for validation
	actorID  kernel.UUID
	parcelID kernel.UUID
	claim    pickup.Claim

	guard guard.ConstructorGuard
}

func NewVerifyPickupCommand(actorID, parcelID kernel.UUID, claim pickup.Claim) (VerifyPickupCommand, error) {
	var parcelErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	if err := errors.Join(validateActor(actorID), parcelErr, claim.Validate()); err != nil {
		return VerifyPickupCommand{}, err
	}

	return VerifyPickupCommand{
		actorID:  actorID,
		parcelID: parcelID,
		claim:    claim,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c VerifyPickupCommand) Validate() error {
	return c.guard.Validate(ErrVerifyPickupCommandIsNotConstructed)
}

func (c VerifyPickupCommand) ActorID() kernel.UUID { return c.actorID }
func (c VerifyPickupCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c VerifyPickupCommand) Claim() pickup.Claim { return c.claim }
