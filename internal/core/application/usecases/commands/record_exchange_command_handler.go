package commands

import (
	"context"

	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/policy"
)

// RecordExchangeCommandHandler switches the parcel's live recipient and
// destination and keeps an exchange record with the previous values.
type RecordExchangeCommandHandler struct {
	uowFactory ProtocolUoWFactory
	policy     policy.Policy
}

func NewRecordExchangeCommandHandler(uowFactory ProtocolUoWFactory) RecordExchangeCommandHandler {
	return RecordExchangeCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *RecordExchangeCommandHandler) Handle(ctx context.Context, cmd RecordExchangeCommand) (*exchange.Exchange, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "record exchange"); err != nil {
		return nil, err
	}

	if err := requireCustomer(ctx, uow.CustomerRepository(), cmd.ToRecipientID()); err != nil {
		return nil, err
	}
	if err := requireLocation(ctx, uow.LocationRepository(), cmd.ToStationID()); err != nil {
		return nil, err
	}

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	fromRecipient, fromStation := p.RecipientID(), p.DestinationID()
	actorID := cmd.ActorID()
	at := now()

	if err = p.Redirect(cmd.ToRecipientID(), cmd.ToStationID(), &actorID, exchangeNote(cmd.Note()), at); err != nil {
		return nil, err
	}

	record, err := exchange.NewExchange(
		kernel.NewUUID(),
		p.ID(),
		fromRecipient,
		cmd.ToRecipientID(),
		fromStation,
		cmd.ToStationID(),
		actorID,
		cmd.Note(),
		at,
	)
	if err != nil {
		return nil, err
	}

	if err = uow.ExchangeRepository().Add(ctx, record); err != nil {
		return nil, err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return record, nil
}

func exchangeNote(note string) string {
	if note == "" {
		return "redirected by exchange"
	}
	return "redirected by exchange: " + note
}
