package commands

import (
	"context"
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var ErrExpireStoredParcelsCommandIsNotConstructed = errors.New(
	"ExpireStoredParcelsCommand must be created via NewExpireStoredParcelsCommand constructor",
)

// ExpireStoredParcelsCommand is issued by the pickup window job. It carries
// the job's clock so a run is deterministic.
type ExpireStoredParcelsCommand struct { //nolint:recvcheck //using for validation
	at    time.Time
	limit int

	guard guard.ConstructorGuard
}

func NewExpireStoredParcelsCommand(at time.Time, limit int) (ExpireStoredParcelsCommand, error) {
	if at.IsZero() {
		return ExpireStoredParcelsCommand{}, errs.NewValueIsRequiredError("at")
	}
	if limit <= 0 {
		return ExpireStoredParcelsCommand{}, errs.NewValueIsOutOfRangeError("limit", limit, 1, "unbounded")
	}
	return ExpireStoredParcelsCommand{at: at, limit: limit, guard: guard.NewConstructorGuard()}, nil
}

func (c ExpireStoredParcelsCommand) Validate() error {
	return c.guard.Validate(ErrExpireStoredParcelsCommandIsNotConstructed)
}

func (c ExpireStoredParcelsCommand) At() time.Time { return c.at }
func (c ExpireStoredParcelsCommand) Limit() int { return c.limit }

// ExpireStoredParcelsCommandHandler opens an expired_window return for every
// parcel that waited at its current pickup station longer than that
// station's storage limit.
// The return goes back to the parcel's origin, or to the station itself when
// the origin is unknown. Each parcel is handled in its own transaction so one
// failure does not block the rest of the batch.
type ExpireStoredParcelsCommandHandler struct {
	uowFactory ProtocolUoWFactory
}

func NewExpireStoredParcelsCommandHandler(uowFactory ProtocolUoWFactory) ExpireStoredParcelsCommandHandler {
	return ExpireStoredParcelsCommandHandler{uowFactory: uowFactory}
}

// Handle returns the ids of parcels that got a return request. Errors for
// individual parcels are joined; parcels that succeeded stay committed.
func (h *ExpireStoredParcelsCommandHandler) Handle(
	ctx context.Context,
	cmd ExpireStoredParcelsCommand,
) ([]kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return nil, err
	}

	candidates, err := h.listCandidates(ctx, cmd.At(), cmd.Limit())
	if err != nil {
		return nil, err
	}

	expired := make([]kernel.UUID, 0)
	var errList []error
	for _, id := range candidates {
		opened, expireErr := h.expire(ctx, id, cmd.At())
		if expireErr != nil {
			errList = append(errList, expireErr)
			continue
		}
		if opened {
			expired = append(expired, id)
		}
	}

	return expired, errors.Join(errList...)
}

func (h *ExpireStoredParcelsCommandHandler) listCandidates(
	ctx context.Context,
	at time.Time,
	limit int,
) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	parcels, err := uow.ParcelRepository().ListStorageExpired(ctx, at, limit)
	if err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(parcels))
	for _, p := range parcels {
		ids = append(ids, p.ID())
	}
	return ids, nil
}

func (h *ExpireStoredParcelsCommandHandler) expire(ctx context.Context, parcelID kernel.UUID, at time.Time) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	p, err := uow.ParcelRepository().Get(ctx, parcelID)
	if err != nil {
		return false, err
	}
	if p.Status() != parcel.AtStation || p.CurrentStationID() == nil {
		return false, nil
	}

	station, err := uow.LocationRepository().Get(ctx, *p.CurrentStationID())
	if err != nil {
		return false, err
	}
	if !p.StorageExpired(station.MaxStorageDays(), at) {
		return false, nil
	}

	returnRepo := uow.ReturnRepository()
	existing, err := returnRepo.FindByParcel(ctx, p.ID())
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}

	returnTo := station.ID()
	if origin := p.Attributes().OriginID; origin != nil {
		returnTo = *origin
	}

	request, err := returns.NewRequest(
		kernel.NewUUID(),
		p.ID(),
		returns.ExpiredWindow,
		nil,
		returnTo,
		"storage window expired at "+station.Label(),
		at,
	)
	if err != nil {
		return false, err
	}

	if err = returnRepo.Add(ctx, request); err != nil {
		return false, err
	}

	if err = uow.Commit(ctx); err != nil {
		return false, err
	}

	return true, nil
}
