package commands

import (
	"context"

	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/policy"
	"logistics/internal/core/domain/services"
)

// VerifyPickupCommandHandler records a station pickup. A failed verification
// leaves no pickup record and no status change behind.
type VerifyPickupCommandHandler struct {
	uowFactory ProtocolUoWFactory
	verifier   services.PickupVerifier
	policy     policy.Policy
}

func NewVerifyPickupCommandHandler(uowFactory ProtocolUoWFactory) VerifyPickupCommandHandler {
	return VerifyPickupCommandHandler{
		uowFactory: uowFactory,
		verifier:   services.NewPickupVerifier(),
		policy:     policy.ActiveStaff,
	}
}

func (h *VerifyPickupCommandHandler) Handle(ctx context.Context, cmd VerifyPickupCommand) (*pickup.Pickup, error) {
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

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "verify pickup"); err != nil {
		return nil, err
	}

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	pickupRepo := uow.PickupRepository()
	existing, err := pickupRepo.FindByParcel(ctx, p.ID())
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, pickup.ErrPickupAlreadyRecorded
	}

	claim := cmd.Claim()
	if err = requireCustomer(ctx, uow.CustomerRepository(), claim.CustomerID); err != nil {
		return nil, err
	}

	record, err := h.verifier.Verify(p, claim, cmd.ActorID(), now())
	if err != nil {
		return nil, err
	}

	if err = pickupRepo.Add(ctx, record); err != nil {
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
