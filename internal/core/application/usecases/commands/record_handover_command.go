package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrRecordHandoverCommandIsNotConstructed = errors.New(
		"RecordHandoverCommand must be created via NewRecordHandoverCommand constructor",
	)
	ErrAcknowledgeHandoverCommandIsNotConstructed = errors.New(
		"AcknowledgeHandoverCommand must be created via NewAcknowledgeHandoverCommand constructor",
	)
	ErrHandoverIDIsRequired = errs.NewValueIsRequiredError("handover id")
)

// RecordHandoverCommand documents a custody transfer. Receiver rules for the
// handover type are checked by the handover itself.
type RecordHandoverCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	parcelID     kernel.UUID
	handoverType handover.Type
	fromStaffID  kernel.UUID
	toStaffID    *kernel.UUID
	toCustomerID *kernel.UUID
	locationID   *kernel.UUID
	note         string

	guard guard.ConstructorGuard
}

func NewRecordHandoverCommand(
	actorID, parcelID kernel.UUID,
	handoverType string,
	fromStaffID kernel.UUID,
	toStaffID, toCustomerID, locationID *kernel.UUID,
	note string,
) (RecordHandoverCommand, error) {
	cmd := RecordHandoverCommand{
		fromStaffID:  fromStaffID,
		toStaffID:    toStaffID,
		toCustomerID: toCustomerID,
		locationID:   locationID,
		note:         strings.TrimSpace(note),
		guard:        guard.NewConstructorGuard(),
	}

	var parcelErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	t, typeErr := handover.ParseType(handoverType)

	if err := errors.Join(validateActor(actorID), parcelErr, typeErr); err != nil {
		return RecordHandoverCommand{}, err
	}

	cmd.actorID, cmd.parcelID, cmd.handoverType = actorID, parcelID, t
	return cmd, nil
}

func (c RecordHandoverCommand) Validate() error {
	return c.guard.Validate(ErrRecordHandoverCommandIsNotConstructed)
}

func (c RecordHandoverCommand) ActorID() kernel.UUID { return c.actorID }
func (c RecordHandoverCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c RecordHandoverCommand) Type() handover.Type { return c.handoverType }
func (c RecordHandoverCommand) FromStaffID() kernel.UUID { return c.fromStaffID }
func (c RecordHandoverCommand) ToStaffID() *kernel.UUID { return c.toStaffID }
func (c RecordHandoverCommand) ToCustomerID() *kernel.UUID { return c.toCustomerID }
func (c RecordHandoverCommand) LocationID() *kernel.UUID { return c.locationID }
func (c RecordHandoverCommand) Note() string { return c.note }

// AcknowledgeHandoverCommand is sent by the receiving staff member.
type AcknowledgeHandoverCommand struct { //nolint:recvcheck //using for validation
	actorID    kernel.UUID
	handoverID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAcknowledgeHandoverCommand(actorID, handoverID kernel.UUID) (AcknowledgeHandoverCommand, error) {
	var idErr error
	if handoverID.Validate() != nil {
		idErr = ErrHandoverIDIsRequired
	}
	if err := errors.Join(validateActor(actorID), idErr); err != nil {
		return AcknowledgeHandoverCommand{}, err
	}

	return AcknowledgeHandoverCommand{
		actorID:    actorID,
		handoverID: handoverID,
		guard:      guard.NewConstructorGuard(),
	}, nil
}

func (c AcknowledgeHandoverCommand) Validate() error {
	return c.guard.Validate(ErrAcknowledgeHandoverCommandIsNotConstructed)
}

func (c AcknowledgeHandoverCommand) ActorID() kernel.UUID { return c.actorID }
func (c AcknowledgeHandoverCommand) HandoverID() kernel.UUID { return c.handoverID }
