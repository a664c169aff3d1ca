package commands

import (
	"context"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/staff"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/core/domain/policy"
	"logistics/internal/pkg/errs"
)

var ErrDriverIsNotEligible = errs.NewValueIsInvalidError("driver must be an active staff member with the driver role")

// CreateTransitAssignmentCommandHandler schedules a transit run. The
// vehicle must be active and able to carry the total parcel weight, the
// driver must be an active driver, and no parcel may be in a terminal status.
type CreateTransitAssignmentCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     policy.Policy
}

func NewCreateTransitAssignmentCommandHandler(uowFactory AssignmentUoWFactory) CreateTransitAssignmentCommandHandler {
	return CreateTransitAssignmentCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.Management,
	}
}

func (h *CreateTransitAssignmentCommandHandler) Handle(
	ctx context.Context,
	cmd CreateTransitAssignmentCommand,
) (*transit.Assignment, error) {
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
	if err := authorize(ctx, staffRepo, h.policy, cmd.ActorID(), "create transit assignment"); err != nil {
		return nil, err
	}

	driver, err := staffRepo.Get(ctx, cmd.DriverID())
	if err != nil {
		return nil, err
	}
	if driver.Role() != staff.DriverRole || !driver.IsActive() {
		return nil, fmt.Errorf("%w: %s is %s (active=%t)", ErrDriverIsNotEligible, driver.EmployeeID(), driver.Role(), driver.IsActive())
	}

	locations := uow.LocationRepository()
	for _, id := range []kernel.UUID{cmd.OriginID(), cmd.DestinationID()} {
		if _, err = locations.Get(ctx, id); err != nil {
			return nil, err
		}
	}

	assignment, err := transit.NewAssignment(
		kernel.NewUUID(),
		cmd.VehicleID(),
		cmd.DriverID(),
		cmd.OriginID(),
		cmd.DestinationID(),
		cmd.ParcelIDs(),
		cmd.ScheduledDeparture(),
		now(),
	)
	if err != nil {
		return nil, err
	}

	parcels, err := uow.ParcelRepository().GetMany(ctx, assignment.ParcelIDs())
	if err != nil {
		return nil, err
	}
	var totalKg float64
	for _, p := range parcels {
		if p.Status().IsTerminal() {
			return nil, fmt.Errorf("%w: parcel %s is %s", parcel.ErrStatusIsTerminal, p.TrackingNumber(), p.Status())
		}
		totalKg += p.WeightKg()
	}

	vehicle, err := uow.VehicleRepository().Get(ctx, cmd.VehicleID())
	if err != nil {
		return nil, err
	}
	if err = vehicle.CanCarry(totalKg); err != nil {
		return nil, err
	}

	if err = uow.TransitRepository().Add(ctx, assignment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignment, nil
}

// ChangeTransitStatusCommandHandler drives the transit state machine and
// its declared parcel side effects:
//   - depart moves every non-terminal parcel to in_transit
//   - complete places parcels at a pickup station destination, or updates
//     their current location for any other destination
//   - cancel leaves parcels untouched
//
// Departure and arrival are also written to the assignment's log.
type ChangeTransitStatusCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     policy.Policy
}

func NewChangeTransitStatusCommandHandler(uowFactory AssignmentUoWFactory) ChangeTransitStatusCommandHandler {
	return ChangeTransitStatusCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *ChangeTransitStatusCommandHandler) Handle(
	ctx context.Context,
	cmd ChangeTransitStatusCommand,
) (*transit.Assignment, error) {
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

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "change transit status"); err != nil {
		return nil, err
	}

	transitRepo := uow.TransitRepository()
	assignment, err := transitRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return nil, err
	}

	actorID := cmd.ActorID()
	at := now()
	switch cmd.Action() {
	case DepartTransit:
		err = h.depart(ctx, uow, assignment, actorID, at)
	case CompleteTransit:
		err = h.complete(ctx, uow, assignment, actorID, at)
	case CancelTransit:
		err = assignment.Cancel()
	}
	if err != nil {
		return nil, err
	}

	if err = transitRepo.Update(ctx, assignment); err != nil {
		return nil, err
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, err
	}

	return assignment, nil
}

func (h *ChangeTransitStatusCommandHandler) depart(
	ctx context.Context,
	uow AssignmentUoW,
	a *transit.Assignment,
	actorID kernel.UUID,
	at time.Time,
) error {
	if err := a.Depart(at); err != nil {
		return err
	}

	originID := a.OriginID()
	a.AppendLog(&originID, &actorID, "departed", at)

	return h.forEachOpenParcel(ctx, uow, a, func(p *parcel.Parcel) error {
		return p.UpdateStatus(parcel.InTransit, &actorID, &originID, "departed on transit", at)
	})
}

func (h *ChangeTransitStatusCommandHandler) complete(
	ctx context.Context,
	uow AssignmentUoW,
	a *transit.Assignment,
	actorID kernel.UUID,
	at time.Time,
) error {
	if err := a.Complete(at); err != nil {
		return err
	}

	destination, err := uow.LocationRepository().Get(ctx, a.DestinationID())
	if err != nil {
		return err
	}

	destinationID := destination.ID()
	a.AppendLog(&destinationID, &actorID, "arrived at "+destination.Label(), at)

	return h.forEachOpenParcel(ctx, uow, a, func(p *parcel.Parcel) error {
		if destination.IsPickupStation() {
			return p.ArriveAtStation(destination, &actorID, "", at)
		}
		p.MoveTo(destination.Label(), at)
		return nil
	})
}

// forEachOpenParcel applies fn to every carried parcel that is not terminal
// and stores the result.
func (h *ChangeTransitStatusCommandHandler) forEachOpenParcel(
	ctx context.Context,
	uow AssignmentUoW,
	a *transit.Assignment,
	fn func(p *parcel.Parcel) error,
) error {
	parcelRepo := uow.ParcelRepository()
	parcels, err := parcelRepo.GetMany(ctx, a.ParcelIDs())
	if err != nil {
		return err
	}

	for _, p := range parcels {
		if p.Status().IsTerminal() {
			continue
		}
		if err = fn(p); err != nil {
			return err
		}
		if err = parcelRepo.Update(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// AppendTransitLogCommandHandler records an informational entry. The
// assignment's status is never changed by a log entry.
type AppendTransitLogCommandHandler struct {
	uowFactory AssignmentUoWFactory
	policy     policy.Policy
}

func NewAppendTransitLogCommandHandler(uowFactory AssignmentUoWFactory) AppendTransitLogCommandHandler {
	return AppendTransitLogCommandHandler{
		uowFactory: uowFactory,
		policy:     policy.ActiveStaff,
	}
}

func (h *AppendTransitLogCommandHandler) Handle(ctx context.Context, cmd AppendTransitLogCommand) (transit.Log, error) {
	if err := cmd.Validate(); err != nil {
		return transit.Log{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return transit.Log{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err := authorize(ctx, uow.StaffRepository(), h.policy, cmd.ActorID(), "append transit log"); err != nil {
		return transit.Log{}, err
	}
	if err := requireLocation(ctx, uow.LocationRepository(), cmd.LocationID()); err != nil {
		return transit.Log{}, err
	}

	transitRepo := uow.TransitRepository()
	assignment, err := transitRepo.Get(ctx, cmd.AssignmentID())
	if err != nil {
		return transit.Log{}, err
	}

	actorID := cmd.ActorID()
	entry := assignment.AppendLog(cmd.LocationID(), &actorID, cmd.Note(), now())

	if err = transitRepo.Update(ctx, assignment); err != nil {
		return transit.Log{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return transit.Log{}, err
	}

	return entry, nil
}
