package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrUpdateParcelStatusCommandIsNotConstructed = errors.New(
		"UpdateParcelStatusCommand must be created via NewUpdateParcelStatusCommand constructor",
	)
	ErrParcelIDIsRequired = errs.NewValueIsRequiredError("parcel id")
)

// UpdateParcelStatusCommand moves a parcel to a new status and appends the
// matching status log entry.
type UpdateParcelStatusCommand struct { //nolint:recvcheck //using for validation
	actorID    kernel.UUID
	parcelID   kernel.UUID
	status     parcel.Status
	locationID *kernel.UUID
	note       string

	guard guard.ConstructorGuard
}

// NewUpdateParcelStatusCommand parses status case-insensitively.
func NewUpdateParcelStatusCommand(
	actorID, parcelID kernel.UUID,
	status string,
	locationID *kernel.UUID,
	note string,
) (UpdateParcelStatusCommand, error) {
	cmd := UpdateParcelStatusCommand{
		locationID: locationID,
		note:       strings.TrimSpace(note),
		guard:      guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		cmd.setActorID(actorID),
		cmd.setParcelID(parcelID),
		cmd.setStatus(status),
	); err != nil {
		return UpdateParcelStatusCommand{}, err
	}

	return cmd, nil
}

func (c UpdateParcelStatusCommand) Validate() error {
	return c.guard.Validate(ErrUpdateParcelStatusCommandIsNotConstructed)
}

func (c UpdateParcelStatusCommand) ActorID() kernel.UUID { return c.actorID }
func (c UpdateParcelStatusCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c UpdateParcelStatusCommand) Status() parcel.Status { return c.status }
func (c UpdateParcelStatusCommand) LocationID() *kernel.UUID { return c.locationID }
func (c UpdateParcelStatusCommand) Note() string { return c.note }

func (c *UpdateParcelStatusCommand) setActorID(actorID kernel.UUID) error {
	if err := validateActor(actorID); err != nil {
		return err
	}
	c.actorID = actorID
	return nil
}

func (c *UpdateParcelStatusCommand) setParcelID(parcelID kernel.UUID) error {
	if parcelID.Validate() != nil {
		return ErrParcelIDIsRequired
	}
	c.parcelID = parcelID
	return nil
}

func (c *UpdateParcelStatusCommand) setStatus(status string) error {
	s, err := parcel.ParseStatus(status)
	if err != nil {
		return err
	}
	c.status = s
	return nil
}
