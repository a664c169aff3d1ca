package commands

import (
	"context"

	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/policy"
)

// UpdateParcelStatusCommandHandler applies a manual status change. The
// status and its log entry are written in one transaction with the parcel
// row locked, so concurrent updates serialise. Moving a parcel to at_station
// at a pickup station starts its storage window and notifies the recipient.
type UpdateParcelStatusCommandHandler struct {
	uowFactory ParcelUoWFactory
	policy     policy.Policy
}

func NewUpdateParcelStatusCommandHandler(uowFactory ParcelUoWFactory) UpdateParcelStatusCommandHandler {
	return UpdateParcelStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *UpdateParcelStatusCommandHandler) Handle(
	ctx context.Context,
	cmd UpdateParcelStatusCommand,
) (*parcel.Parcel, error) {
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

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "update parcel status"); err != nil {
		return nil, err
	}

	var loc *location.Location
	if cmd.LocationID() != nil {
		var err error
		if loc, err = uow.LocationRepository().Get(ctx, *cmd.LocationID()); err != nil {
			return nil, err
		}
	}

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	at := now()
	if cmd.Status() == parcel.AtStation && loc != nil && loc.IsPickupStation() {
		err = p.ArriveAtStation(loc, &actorID, cmd.Note(), at)
	} else {
		err = p.UpdateStatus(cmd.Status(), &actorID, cmd.LocationID(), cmd.Note(), at)
		if err == nil && loc != nil {
			p.MoveTo(loc.Label(), at)
		}
	}
	if err != nil {
		return nil, err
	}

	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
