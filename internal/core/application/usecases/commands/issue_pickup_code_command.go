package commands

import (
	"errors"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrIssuePickupCodeCommandIsNotConstructed = errors.New(
	"IssuePickupCodeCommand must be created via NewIssuePickupCodeCommand constructor",
)

// IssuePickupCodeCommand generates the code a guest collector presents at
// the station. Issuing again replaces the previous code.
type IssuePickupCodeCommand struct { //nolint:recvcheck //using for validation
	actorID  kernel.UUID
	parcelID kernel.UUID

	guard guard.ConstructorGuard
}

func NewIssuePickupCodeCommand(actorID, parcelID kernel.UUID) (IssuePickupCodeCommand, error) {
	cmd := IssuePickupCodeCommand{guard: guard.NewConstructorGuard()}

	var parcelErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	if err := errors.Join(validateActor(actorID), parcelErr); err != nil {
		return IssuePickupCodeCommand{}, err
	}

	cmd.actorID, cmd.parcelID = actorID, parcelID
	return cmd, nil
}

func (c IssuePickupCodeCommand) Validate() error {
	return c.guard.Validate(ErrIssuePickupCodeCommandIsNotConstructed)
}

func (c IssuePickupCodeCommand) ActorID() kernel.UUID { return c.actorID }
func (c IssuePickupCodeCommand) ParcelID() kernel.UUID { return c.parcelID }
