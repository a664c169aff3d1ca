package commands

import (
	"context"
	"fmt"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/core/domain/policy"
	"logistics/internal/core/ports"
	"logistics/internal/pkg/errs"
)

var ErrCourierIsNotEligible = errs.NewValueIsInvalidError("courier must be an active staff member with the courier role")

// CreateDeliveryAssignmentCommandHandler assigns a parcel to a courier.
type CreateDeliveryAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     policy.Policy
}

func NewCreateDeliveryAssignmentCommandHandler(uowFactory AssignmentUoWFactory) CreateDeliveryAssignmentCommandHandler {
	return CreateDeliveryAssignmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.Management,
	}
}

func (h *CreateDeliveryAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateDeliveryAssignmentCommand,
) (*delivery.Assignment, error) {
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

	staffRepo := uow.StaffRepository()
	if err := authorize(ctx, staffRepo, h.policy, cmd.ActorID(), "create delivery assignment"); err != nil {
		return nil, err
	}

	courier, err := staffRepo.Get(ctx, cmd.CourierID())
	if err != nil {
		return nil, err
	}
	if courier.Role() != staff.CourierRole || !courier.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s (active=%t)", ErrCourierIsNotEligible, courier.EmployeeID(), courier.Role(), courier.IsActive())
	}

	if cmd.VehicleID() != nil {
		if _, err = uow.VehicleRepository().Get(ctx, *cmd.VehicleID()); err != nil {
			return nil, err
		}
	}
	if err = requireLocation(ctx, uow.LocationRepository(), cmd.OriginID()); err != nil {
		return nil, err
	}

	p, err := uow.ParcelRepository().Get(ctx, cmd.ParcelID())
	if err != nil {
		return nil, err
	}
	if p.Status().IsTerminal() {
		return nil, fmt.Errorf("%w: %s", parcel.ErrStatusIsTerminal, p.Status())
	}

	address := cmd.DestinationAddress()
	if address == "" {
		address = p.Attributes().DeliveryAddress
	}
	requiresSignature := p.RequiresSignature()
	if cmd.RequiresSignature() != nil {
		requiresSignature = *cmd.RequiresSignature()
	}

	assignment, err := delivery.NewAssignment(
		kernel.NewUUID(),
		p.ID(),
		cmd.CourierID(),
		cmd.VehicleID(),
		cmd.OriginID(),
		address,
		cmd.DestinationCity(),
		requiresSignature,
		now(),
	)
	if err != nil {
		return nil, err
	}

	if err = uow.DeliveryRepository().Add(ctx, assignment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignment, nil
}

// AppendDeliveryLogResult is the updated assignment and the stored entry.
type AppendDeliveryLogResult struct {
	Assignment *delivery.Assignment
	Log        delivery.Log
}

// AppendDeliveryLogCommandHandler stores a delivery log entry and applies
// the declared transition for its status text, if any, to the assignment and
// the parcel in the same transaction.
type AppendDeliveryLogCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     policy.Policy
}

func NewAppendDeliveryLogCommandHandler(uowFactory AssignmentUoWFactory) AppendDeliveryLogCommandHandler {
	return AppendDeliveryLogCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *AppendDeliveryLogCommandHandler) Handle(
	ctx context.Context,
	cmd AppendDeliveryLogCommand,
) (AppendDeliveryLogResult, error) {
	if err := cmd.Validate(); err != nil {
		return AppendDeliveryLogResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AppendDeliveryLogResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "append delivery log"); err != nil {
		return AppendDeliveryLogResult{}, err
	}
	if err := requireLocation(ctx, uow.LocationRepository(), cmd.LocationID()); err != nil {
		return AppendDeliveryLogResult{}, err
	}

	deliveryRepo := uow.DeliveryRepository()
	assignment, err := deliveryRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return AppendDeliveryLogResult{}, err
	}

	actorID := cmd.ActorID()
	at := now()
	entry, transition, err := assignment.AppendLog(cmd.Status(), cmd.LocationID(), &actorID, cmd.Note(), at)
	if err != nil {
		return AppendDeliveryLogResult{}, err
	}

	if transition != nil && transition.ParcelStatus != "" {
		parcelRepo := uow.ParcelRepository()
		var p *parcel.Parcel
		if p, err = parcelRepo.Get(ctx, assignment.ParcelID()); err != nil {
			return AppendDeliveryLogResult{}, err
		}
		note := fmt.Sprintf("delivery log: %s", cmd.Status())
		var station *location.Location
		if transition.ParcelStatus == parcel.AtStation {
			if station, err = returnStation(ctx, uow.LocationRepository(), cmd.LocationID(), assignment.OriginID()); err != nil {
				return AppendDeliveryLogResult{}, err
			}
		}
		if station != nil {
			err = p.ArriveAtStation(station, &actorID, note, at)
		} else {
			err = p.UpdateStatus(transition.ParcelStatus, &actorID, cmd.LocationID(), note, at)
		}
		if err != nil {
			return AppendDeliveryLogResult{}, err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return AppendDeliveryLogResult{}, err
		}
	}

	if err = deliveryRepo.Update(ctx, assignment); err != nil {
		return AppendDeliveryLogResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AppendDeliveryLogResult{}, err
	}

	return AppendDeliveryLogResult{Assignment: assignment, Log: entry}, nil
}

// returnStation picks the pickup station a returned delivery is stored at:
// the logged location when it is a station, otherwise the assignment's
// origin when that is one. It returns nil when neither is a station.
func returnStation(
	ctx context.Context,
	repo ports.LocationRepository,
	candidates ...*kernel.UUID,
) (*location.Location, error) {
	for _, id := range candidates {
		if id == nil {
			continue
		}
		loc, err := repo.Get(ctx, *id)
		if err != nil {
			return nil, err
		}
		if loc.IsPickupStation() {
			return loc, nil
		}
	}
	return nil, nil //nolint:nilnil // no station is not an error
}
