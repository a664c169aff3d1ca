package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var ErrRecordExchangeCommandIsNotConstructed = errors.New(
	"RecordExchangeCommand must be created via NewRecordExchangeCommand constructor",
)

// RecordExchangeCommand redirects a parcel to a new recipient, a new
// destination station, or both.
type RecordExchangeCommand struct { //nolint:recvcheck //using for validation
	actorID       kernel.UUID
	parcelID      kernel.UUID
	toRecipientID *kernel.UUID
	toStationID   *kernel.UUID
	note          string

	guard guard.ConstructorGuard
}

func NewRecordExchangeCommand(
	actorID, parcelID kernel.UUID,
	toRecipientID, toStationID *kernel.UUID,
	note string,
) (RecordExchangeCommand, error) {
	var parcelErr, targetErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	if toRecipientID == nil && toStationID == nil {
		targetErr = exchange.ErrTargetIsRequired
	}
	if err := errors.Join(validateActor(actorID), parcelErr, targetErr); err != nil {
		return RecordExchangeCommand{}, err
	}

	return RecordExchangeCommand{
		actorID:       actorID,
		parcelID:      parcelID,
		toRecipientID: toRecipientID,
		toStationID:   toStationID,
		note:          strings.TrimSpace(note),
		guard:         guard.NewConstructorGuard(),
	}, nil
}

func (c RecordExchangeCommand) Validate() error {
	return c.guard.Validate(ErrRecordExchangeCommandIsNotConstructed)
}

func (c RecordExchangeCommand) ActorID() kernel.UUID { return c.actorID }
func (c RecordExchangeCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c RecordExchangeCommand) ToRecipientID() *kernel.UUID { return c.toRecipientID }
func (c RecordExchangeCommand) ToStationID() *kernel.UUID { return c.toStationID }
func (c RecordExchangeCommand) Note() string { return c.note }
