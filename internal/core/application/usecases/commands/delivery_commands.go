package commands

import (
	"errors"
	"strings"

	"logistics/internal/core/domain/model/delivery"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/pkg/guard"
)

var (
	ErrCreateDeliveryAssignmentCommandIsNotConstructed = errors.New(
		"CreateDeliveryAssignmentCommand must be created via NewCreateDeliveryAssignmentCommand constructor",
	)
	ErrAppendDeliveryLogCommandIsNotConstructed = errors.New(
		"AppendDeliveryLogCommand must be created via NewAppendDeliveryLogCommand constructor",
	)
)

// CreateDeliveryAssignmentCommand assigns a courier the last mile of one
// parcel. An empty destination address falls back to the parcel's delivery
// address, and a nil requiresSignature to the parcel's flag.
type CreateDeliveryAssignmentCommand struct { //nolint:recvcheck //using for validation
	actorID            kernel.UUID
	parcelID           kernel.UUID
	courierID          kernel.UUID
	vehicleID          *kernel.UUID
	originID           *kernel.UUID
	destinationAddress string
	destinationCity    string
	requiresSignature  *bool

	guard guard.ConstructorGuard
}

func NewCreateDeliveryAssignmentCommand(
	actorID, parcelID, courierID kernel.UUID,
	vehicleID, originID *kernel.UUID,
	destinationAddress, destinationCity string,
	requiresSignature *bool,
) (CreateDeliveryAssignmentCommand, error) {
	var parcelErr error
	if parcelID.Validate() != nil {
		parcelErr = ErrParcelIDIsRequired
	}
	if err := errors.Join(validateActor(actorID), parcelErr, courierID.Validate()); err != nil {
		return CreateDeliveryAssignmentCommand{}, err
	}

	return CreateDeliveryAssignmentCommand{
		actorID:            actorID,
		parcelID:           parcelID,
		courierID:          courierID,
		vehicleID:          vehicleID,
		originID:           originID,
		destinationAddress: strings.TrimSpace(destinationAddress),
		destinationCity:    strings.TrimSpace(destinationCity),
		requiresSignature:  requiresSignature,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (c CreateDeliveryAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrCreateDeliveryAssignmentCommandIsNotConstructed)
}

func (c CreateDeliveryAssignmentCommand) ActorID() kernel.UUID { return c.actorID }
func (c CreateDeliveryAssignmentCommand) ParcelID() kernel.UUID { return c.parcelID }
func (c CreateDeliveryAssignmentCommand) CourierID() kernel.UUID { return c.courierID }
func (c CreateDeliveryAssignmentCommand) VehicleID() *kernel.UUID { return c.vehicleID }
func (c CreateDeliveryAssignmentCommand) OriginID() *kernel.UUID { return c.originID }
func (c CreateDeliveryAssignmentCommand) DestinationAddress() string { return c.destinationAddress }
func (c CreateDeliveryAssignmentCommand) DestinationCity() string { return c.destinationCity }
func (c CreateDeliveryAssignmentCommand) RequiresSignature() *bool { return c.requiresSignature }

// AppendDeliveryLogCommand adds a courier log entry. Recognised status texts
// such as "Delivered" drive the assignment and the parcel.
type AppendDeliveryLogCommand struct { //nolint:recvcheck //using for validation
	actorID      kernel.UUID
	assignmentID kernel.UUID
	status       string
	locationID   *kernel.UUID
	note         string

	guard guard.ConstructorGuard
}

func NewAppendDeliveryLogCommand(
	actorID, assignmentID kernel.UUID,
	status string,
	locationID *kernel.UUID,
	note string,
) (AppendDeliveryLogCommand, error) {
	var idErr, statusErr error
	if assignmentID.Validate() != nil {
		idErr = ErrAssignmentIDIsRequired
	}
	status = strings.TrimSpace(status)
	if status == "" {
		statusErr = delivery.ErrLogStatusIsRequired
	}
	if err := errors.Join(validateActor(actorID), idErr, statusErr); err != nil {
		return AppendDeliveryLogCommand{}, err
	}

	return AppendDeliveryLogCommand{
		actorID:      actorID,
		assignmentID: assignmentID,
		status:       status,
		locationID:   locationID,
		note:         strings.TrimSpace(note),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c AppendDeliveryLogCommand) Validate() error {
	return c.guard.Validate(ErrAppendDeliveryLogCommandIsNotConstructed)
}

func (c AppendDeliveryLogCommand) ActorID() kernel.UUID { return c.actorID }
func (c AppendDeliveryLogCommand) AssignmentID() kernel.UUID { return c.assignmentID }
func (c AppendDeliveryLogCommand) Status() string { return c.status }
func (c AppendDeliveryLogCommand) LocationID() *kernel.UUID { return c.locationID }
func (c AppendDeliveryLogCommand) Note() string { return c.note }
