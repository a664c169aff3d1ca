package commands

import (
	"context"

	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/policy"
)

// IssuePickupCodeCommandHandler assigns a pickup code unique across parcels.
// A code already held by another parcel is regenerated and the transaction
// retried, up to maxAttempts times.
type IssuePickupCodeCommandHandler struct {
	uowFactory  ParcelUoWFactory
	identifiers IdentifierSource
	policy      policy.Policy
	maxAttempts int
}

func NewIssuePickupCodeCommandHandler(
	uowFactory ParcelUoWFactory,
	identifiers IdentifierSource,
	maxAttempts int,
) IssuePickupCodeCommandHandler {
	return IssuePickupCodeCommandHandler{
		uowFactory:  uowFactory,
		identifiers: identifiers,
		policy:      policy.ActiveStaff,
		maxAttempts: maxAttempts,
	}
}

func (h *IssuePickupCodeCommandHandler) Handle(ctx context.Context, cmd IssuePickupCodeCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var issued *parcel.Parcel
	err := retryOnConflict(h.maxAttempts, func() error {
		p, err := h.issue(ctx, cmd)
		if err != nil {
			return err
		}
		issued = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return issued, nil
}

func (h *IssuePickupCodeCommandHandler) issue(ctx context.Context, cmd IssuePickupCodeCommand) (*parcel.Parcel, error) {
	code, err := h.identifiers.NextPickupCode()
	if err != nil {
		return nil, err
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "issue pickup code"); err != nil {
		return nil, err
	}

	parcelRepo := uow.ParcelRepository()
	p, err := parcelRepo.Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}

	if err = p.IssuePickupCode(code, now()); err != nil {
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
