package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/core/domain/policy"
	"logistics/internal/core/domain/services"
)

// InitiateReturnCommandHandler opens a return request. Initiation does not
// change the parcel's status. A cancelled parcel cannot be returned and a
// parcel that already has a request gets returns.ErrReturnAlreadyExists.
type InitiateReturnCommandHandler struct {
	uowFactory ProtocolUoWFactory
	policy     policy.Policy
}

func NewInitiateReturnCommandHandler(uowFactory ProtocolUoWFactory) InitiateReturnCommandHandler {
	return InitiateReturnCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *InitiateReturnCommandHandler) Handle(ctx context.Context, cmd InitiateReturnCommand) (*returns.Request, error) {
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

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "initiate return"); err != nil {
		return nil, err
	}

	// The parcel row lock serialises concurrent initiations for one parcel.
	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if p.Status() == parcel.Cancelled {
		return nil, fmt.Errorf("%w: %s", parcel.ErrStatusIsTerminal, p.Status())
	}

	returnRepo := uow.ReturnRepository()
	existing, err := returnRepo.FindByParcel(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, returns.ErrReturnAlreadyExists
	}

	returnTo := cmd.ReturnTo()
	if err = requireLocation(ctx, uow.LocationRepository(), &returnTo); err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	request, err := returns.NewRequest(
		kernel.NewUUID(),
		p.ID(),
		cmd.Reason(),
		&actorID,
		returnTo,
		cmd.Description(),
		now(),
	)
	if err != nil {
		return nil, err
	}

	if err = returnRepo.Add(ctx, request); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}

// CompleteReturnCommandHandler closes a return. The parcel becomes
// returned_warehouse or returned_station depending on the kind of location
// it went back to.
type CompleteReturnCommandHandler struct {
	uowFactory  ProtocolUoWFactory
	disposition services.ReturnDisposition
	policy      policy.Policy
}

func NewCompleteReturnCommandHandler(uowFactory ProtocolUoWFactory) CompleteReturnCommandHandler {
	return CompleteReturnCommandHandler{
		uowFactory:  uowFactory,
		disposition: services.NewReturnDisposition(),
		policy:      policy.ActiveStaff,
	}
}

func (h *CompleteReturnCommandHandler) Handle(ctx context.Context, cmd CompleteReturnCommand) (*returns.Request, error) {
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

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "complete return"); err != nil {
		return nil, err
	}

	returnRepo := uow.ReturnRepository()
	request, err := returnRepo.Get(ctx, cmd.ReturnID())
	if err != nil {
		return nil, err
	}

	at := now()
	if err = request.Complete(at); err != nil {
		return nil, err
	}

	returnTo, err := uow.LocationRepository().Get(ctx, *request.ReturnTo())
	if err != nil {
		return nil, err
	}

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, request.ParcelID())
	if err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	if err = p.CompleteReturn(h.disposition.StatusFor(returnTo), returnTo, &actorID, at); err != nil {
		return nil, err
	}

	if err = returnRepo.Update(ctx, request); err != nil {
		return nil, err
	}
	if err = parcelRepo.Update(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return request, nil
}
