package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrInitiateReturnCommandIsNotConstructed = errors.New(
		"InitiateReturnCommand must be created via NewInitiateReturnCommand constructor",
	)
	ErrCompleteReturnCommandIsNotConstructed = errors.New(
		"CompleteReturnCommand must be created via NewCompleteReturnCommand constructor",
	)
	ErrReturnIDIsRequired = errs.NewValueIsRequiredError("return id")
)

// InitiateReturnCommand opens the single return request a parcel may have.
type InitiateReturnCommand struct { //nolint:recvcheck //using for validation
	actorID     kernel.UUID
	parcelID    kernel.UUID
	reason      returns.Reason
	returnTo    kernel.UUID
	description string

	guard guard.ConstructorGuard
}

func NewInitiateReturnCommand(
	actorID, parcelID kernel.UUID,
	reason string,
	returnTo kernel.UUID,
	description string,
) (InitiateReturnCommand, error) {
	var parcelErr, returnToErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	if returnTo.Validate() != nil {
		returnToErr = returns.ErrReturnToIsRequired
	}
	r, reasonErr := returns.ParseReason(reason)

	if err := errors.Join(validateActor(actorID), parcelErr, reasonErr, returnToErr); err != nil {
		return InitiateReturnCommand{}, err
	}

	return InitiateReturnCommand{
		actorID:     actorID,
		parcelID:    parcelID,
		reason:      r,
		returnTo:    returnTo,
		description: strings.TrimSpace(description),
		guard:       guard.NewConstructorGuard(),
	}, nil
}

func (c InitiateReturnCommand) Validate() error {
	return c.guard.Validate(ErrInitiateReturnCommandIsNotConstructed)
}

func (c InitiateReturnCommand) ActorID() kernel.UUID { return c.actorID }
func (c InitiateReturnCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c InitiateReturnCommand) Reason() returns.Reason { return c.reason }
func (c InitiateReturnCommand) ReturnTo() kernel.UUID { return c.returnTo }
func (c InitiateReturnCommand) Description() string { return c.description }

// CompleteReturnCommand closes a return and moves the parcel into its
// returned status.
type CompleteReturnCommand struct { //nolint:recvcheck //using for validation
	actorID  kernel.UUID
	returnID kernel.UUID

	guard guard.ConstructorGuard
}

func NewCompleteReturnCommand(actorID, returnID kernel.UUID) (CompleteReturnCommand, error) {
	var idErr error
	if returnID.Validate() != nil {
		idErr = ErrReturnIDIsRequired
	}
	if err := errors.Join(validateActor(actorID), idErr); err != nil {
		return CompleteReturnCommand{}, err
	}

	return CompleteReturnCommand{
		actorID:  actorID,
		returnID: returnID,
		guard:    guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteReturnCommand) Validate() error {
	return c.guard.Validate(ErrCompleteReturnCommandIsNotConstructed)
}

func (c CompleteReturnCommand) ActorID() kernel.UUID { return c.actorID }
func (c CompleteReturnCommand) ReturnID() kernel.UUID { return c.returnID }
