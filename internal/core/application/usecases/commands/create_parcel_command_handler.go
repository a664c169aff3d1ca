package commands

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/policy"
)

// CreateParcelCommandHandler registers parcels with a freshly generated
// tracking number. A tracking number already taken in storage is regenerated
// and the whole transaction retried, up to maxAttempts times.
type CreateParcelCommandHandler struct {
	uowFactory  ParcelUoWFactory
	identifiers IdentifierSource
	policy      policy.Policy
	maxAttempts int
}

func NewCreateParcelCommandHandler(
	uowFactory ParcelUoWFactory,
	identifiers IdentifierSource,
	maxAttempts int,
) CreateParcelCommandHandler {
	return CreateParcelCommandHandler{
		uowFactory:  uowFactory,
		identifiers: identifiers,
		policy:      policy.ActiveStaff,
		maxAttempts: maxAttempts,
	}
}

func (h *CreateParcelCommandHandler) Handle(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	var created *parcel.Parcel
	err := retryOnConflict(h.maxAttempts, func() error {
		p, err := h.create(ctx, cmd)
		if err != nil {
			return err
		}
		created = p
		return nil
	})
	if err != nil {
		return nil, err
	}

	return created, nil
}

func (h *CreateParcelCommandHandler) create(ctx context.Context, cmd CreateParcelCommand) (*parcel.Parcel, error) {
	tn, err := h.identifiers.NextTrackingNumber()
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

	if err = authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "create parcel"); err != nil {
		return nil, err
	}

	attrs := cmd.Attributes()
	customers := uow.CustomerRepository()
	locations := uow.LocationRepository()
	for _, ref := range []*kernel.UUID{attrs.SenderID, attrs.RecipientID} {
		if err = requireCustomer(ctx, customers, ref); err != nil {
			return nil, err
		}
	}
	for _, ref := range []*kernel.UUID{attrs.OriginID, attrs.DestinationID} {
		if err = requireLocation(ctx, locations, ref); err != nil {
			return nil, err
		}
	}

	actorID := cmd.ActorID()
	p, err := parcel.NewParcel(kernel.NewUUID(), tn, cmd.WeightKg(), attrs, cmd.Items(), &actorID, now())
	if err != nil {
		return nil, err
	}

	if err = uow.ParcelRepository().Add(ctx, p); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return p, nil
}
