package commands

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateTransitAssignmentCommandIsNotConstructed = errors.New(
		"CreateTransitAssignmentCommand must be created via NewCreateTransitAssignmentCommand constructor",
	)
	ErrChangeTransitStatusCommandIsNotConstructed = errors.New(
		"ChangeTransitStatusCommand must be created via NewChangeTransitStatusCommand constructor",
	)
	ErrAppendTransitLogCommandIsNotConstructed = errors.New(
		"AppendTransitLogCommand must be created via NewAppendTransitLogCommand constructor",
	)
	ErrAssignmentIDIsRequired = errs.NewValueIsRequiredError("assignment id")
	ErrTransitActionIsInvalid = errs.NewValueIsInvalidError("transit action")
	ErrNoteIsRequired         = errs.NewValueIsRequiredError("note")
)

// CreateTransitAssignmentCommand schedules a vehicle run carrying a set of
// parcels from one location to another.
type CreateTransitAssignmentCommand struct { //nolint:recvcheck //using for validation
	actorID            kernel.UUID
	vehicleID          kernel.UUID
	driverID           kernel.UUID
	originID           kernel.UUID
	destinationID      kernel.UUID
	parcelIDs          []kernel.UUID
	scheduledDeparture *time.Time

	guard guard.ConstructorGuard
}

// NewCreateTransitAssignmentCommand checks only presence; route and parcel
// set rules belong to the assignment.
func NewCreateTransitAssignmentCommand(
	actorID, vehicleID, driverID, originID, destinationID kernel.UUID,
	parcelIDs []kernel.UUID,
	scheduledDeparture *time.Time,
) (CreateTransitAssignmentCommand, error) {
	if err := errors.Join(
		validateActor(actorID),
		vehicleID.Validate(),
		driverID.Validate(),
		originID.Validate(),
		destinationID.Validate(),
	); err != nil {
		return CreateTransitAssignmentCommand{}, err
	}

	return CreateTransitAssignmentCommand{
		actorID:            actorID,
		vehicleID:          vehicleID,
		driverID:           driverID,
		originID:           originID,
		destinationID:      destinationID,
		parcelIDs:          append([]kernel.UUID(nil), parcelIDs...),
		scheduledDeparture: scheduledDeparture,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateTransitAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateTransitAssignmentCommandIsNotConstructed)
}

func (c CreateTransitAssignmentCommand) ActorID() kernel.UUID { return c.actorID }
func (c CreateTransitAssignmentCommand) VehicleID() kernel.UUID { return c.vehicleID }
func (c CreateTransitAssignmentCommand) DriverID() kernel.UUID { return c.driverID }
func (c CreateTransitAssignmentCommand) OriginID() kernel.UUID { return c.originID }
func (c CreateTransitAssignmentCommand) DestinationID() kernel.UUID { return c.destinationID }
func (c CreateTransitAssignmentCommand) ScheduledDeparture() *time.Time { return c.scheduledDeparture }

func (c CreateTransitAssignmentCommand) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), c.parcelIDs...)
}

// TransitAction is a requested transit status change.
type TransitAction string

const (
	DepartTransit   TransitAction = "depart"
	CompleteTransit TransitAction = "complete"
	CancelTransit   TransitAction = "cancel"
)

func ParseTransitAction(s string) (TransitAction, error) {
	a := TransitAction(strings.ToLower(strings.TrimSpace(s)))
	switch a {
	case DepartTransit, CompleteTransit, CancelTransit:
		return a, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrTransitActionIsInvalid, s)
	}
}

// ChangeTransitStatusCommand departs, completes or cancels a transit assignment.
type ChangeTransitStatusCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	assignmentID kernel.UUID
	action       TransitAction

	guard guard.ConstructorGuard
}

func NewChangeTransitStatusCommand(actorID, assignmentID kernel.UUID, action string) (ChangeTransitStatusCommand, error) {
	var idErr error
	if assignmentID.Validate() != nil {
		idErr = ErrAssignmentIDIsRequired
	}
	a, actionErr := ParseTransitAction(action)
	if err := errors.Join(validateActor(actorID), idErr, actionErr); err != nil {
		return ChangeTransitStatusCommand{}, err
	}

	return ChangeTransitStatusCommand{
		actorID:      actorID,
		assignmentID: assignmentID,
		action:       a,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c ChangeTransitStatusCommand) Validate() error {
	return c.guard.Validate(ErrChangeTransitStatusCommandIsNotConstructed)
}

func (c ChangeTransitStatusCommand) ActorID() kernel.UUID { return c.actorID }
func (c ChangeTransitStatusCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c ChangeTransitStatusCommand) Action() TransitAction { return c.action }

// AppendTransitLogCommand adds an informational entry to a transit assignment.
type AppendTransitLogCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	assignmentID kernel.UUID
	locationID   *kernel.UUID
	note         string

	guard guard.ConstructorGuard
}

func NewAppendTransitLogCommand(
	actorID, assignmentID kernel.UUID,
	locationID *kernel.UUID,
	note string,
) (AppendTransitLogCommand, error) {
	var idErr, noteErr error
	if assignmentID.Validate() != nil {
		idErr = ErrAssignmentIDIsRequired
	}
	note = strings.TrimSpace(note)
	if note == "" {
		noteErr = ErrNoteIsRequired
	}
	if err := errors.Join(validateActor(actorID), idErr, noteErr); err != nil {
		return AppendTransitLogCommand{}, err
	}

	return AppendTransitLogCommand{
		actorID:      actorID,
		assignmentID: assignmentID,
		locationID:   locationID,
		note:         note,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AppendTransitLogCommand) Validate() error {
	return c.guard.Validate(ErrAppendTransitLogCommandIsNotConstructed)
}

func (c AppendTransitLogCommand) ActorID() kernel.UUID { return c.actorID }
func (c AppendTransitLogCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c AppendTransitLogCommand) LocationID() *kernel.UUID { return c.locationID }
func (c AppendTransitLogCommand) Note() string { return c.note }
