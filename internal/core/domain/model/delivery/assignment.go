package delivery

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
	ErrDestinationIsRequired      = errs.NewValueIsRequiredError("destination address")
	ErrLogStatusIsRequired        = errs.NewValueIsRequiredError("log status")
	ErrTransitionIsNotAllowed     = errs.NewStateIsInvalidError("delivery transition")
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
)

// Assignment takes a single parcel to its final address with one courier.
// The status is driven by log entries through the declared transition table.
type Assignment struct {
	id                 kernel.UUID
	parcelID           kernel.UUID
	courierID          kernel.UUID
	vehicleID          *kernel.UUID
	originID           *kernel.UUID
	destinationAddress string
	destinationCity    string
	status             Status
	departureTime      *time.Time
	arrivalTime        *time.Time
	requiresSignature  bool
	signedOff          bool
	createdAt          time.Time

	pendingLog []Log
	guard      guard.ConstructorGuard
}

func NewAssignment(
	id, parcelID, courierID kernel.UUID,
	vehicleID, originID *kernel.UUID,
	destinationAddress, destinationCity string,
	requiresSignature bool,
	now time.Time,
) (*Assignment, error) {
	destinationAddress = strings.TrimSpace(destinationAddress)

	var destErr error
	if destinationAddress == "" {
		destErr = ErrDestinationIsRequired
	}
	if err := errors.Join(id.Validate(), parcelID.Validate(), courierID.Validate(), destErr); err != nil {
		return nil, err
	}

	return &Assignment{
		id:                 id,
		parcelID:           parcelID,
		courierID:          courierID,
		vehicleID:          vehicleID,
		originID:           originID,
		destinationAddress: destinationAddress,
		destinationCity:    strings.TrimSpace(destinationCity),
		status:             Assigned,
		requiresSignature:  requiresSignature,
		createdAt:          now,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

// State is the persisted form of an Assignment.
type State struct {
	ID                 kernel.UUID
	ParcelID           kernel.UUID
	CourierID          kernel.UUID
	VehicleID          *kernel.UUID
	OriginID           *kernel.UUID
	DestinationAddress string
	DestinationCity    string
	Status             Status
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	RequiresSignature  bool
	SignedOff          bool
	CreatedAt          time.Time
}

func RestoreAssignment(s State) (*Assignment, error) {
	if err := errors.Join(s.ID.Validate(), s.ParcelID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Assignment{
		id:                 s.ID,
		parcelID:           s.ParcelID,
		courierID:          s.CourierID,
		vehicleID:          s.VehicleID,
		originID:           s.OriginID,
		destinationAddress: s.DestinationAddress,
		destinationCity:    s.DestinationCity,
		status:             s.Status,
		departureTime:      s.DepartureTime,
		arrivalTime:        s.ArrivalTime,
		requiresSignature:  s.RequiresSignature,
		signedOff:          s.SignedOff,
		createdAt:          s.CreatedAt,
		guard:              guard.NewConstructorGuard(),
	}, nil
}

func (a *Assignment) Validate() error {
	if a == nil {
		return ErrAssignmentIsNotConstructed
	}
	return a.guard.Validate(ErrAssignmentIsNotConstructed)
}

func (a *Assignment) ID() kernel.UUID { return a.id }
func (a *Assignment) ParcelID() kernel.UUID { return a.parcelID }
func (a *Assignment) CourierID() kernel.UUID { return a.courierID }
func (a *Assignment) VehicleID() *kernel.UUID { return a.vehicleID }
func (a *Assignment) OriginID() *kernel.UUID { return a.originID }
func (a *Assignment) DestinationAddress() string { return a.destinationAddress }
func (a *Assignment) DestinationCity() string { return a.destinationCity }
func (a *Assignment) Status() Status { return a.status }
func (a *Assignment) DepartureTime() *time.Time { return a.departureTime }
func (a *Assignment) ArrivalTime() *time.Time { return a.arrivalTime }
func (a *Assignment) RequiresSignature() bool { return a.requiresSignature }
func (a *Assignment) SignedOff() bool { return a.signedOff }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }

// AppendLog records a log entry and applies the transition its status text
// declares, if any. The returned Transition is nil for informational entries.
//
// An outcome status on an assignment that cannot take it (for example a
// second "Delivered") fails with ErrTransitionIsNotAllowed and records nothing.
func (a *Assignment) AppendLog(
	status string,
	locationID, staffID *kernel.UUID,
	note string,
	now time.Time,
) (Log, *Transition, error) {
	status = strings.TrimSpace(status)
	if status == "" {
		return Log{}, nil, ErrLogStatusIsRequired
	}

	t, ok := TransitionFor(status)
	if ok {
		if !t.allowedFrom(a.status) {
			return Log{}, nil, fmt.Errorf("%w: %q on a %s assignment", ErrTransitionIsNotAllowed, status, a.status)
		}
		a.apply(t, now)
	}

	entry := Log{
		id:           kernel.NewUUID(),
		assignmentID: a.id,
		status:       status,
		locationID:   locationID,
		staffID:      staffID,
		note:         strings.TrimSpace(note),
		timestamp:    now,
	}
	a.pendingLog = append(a.pendingLog, entry)

	if !ok {
		return entry, nil, nil
	}
	return entry, &t, nil
}

func (a *Assignment) apply(t Transition, now time.Time) {
	a.status = t.To
	if t.SetsDeparture {
		a.departureTime = &now
	}
	if t.SetsArrival {
		a.arrivalTime = &now
	}
	if t.SignsOff {
		a.signedOff = a.requiresSignature
	}
}

func (a *Assignment) PendingLog() []Log {
	return append([]Log(nil), a.pendingLog...)
}

func (a *Assignment) ClearPendingLog() { a.pendingLog = nil }

// Log is one entry of a delivery assignment's log stream. Status is the free
// text supplied by the courier.
type Log struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	status       string
	locationID   *kernel.UUID
	staffID      *kernel.UUID
	note         string
	timestamp    time.Time
}

func RestoreLog(
	id, assignmentID kernel.UUID,
	status string,
	locationID, staffID *kernel.UUID,
	note string,
	timestamp time.Time,
) Log {
	return Log{
		id:           id,
		assignmentID: assignmentID,
		status:       status,
		locationID:   locationID,
		staffID:      staffID,
		note:         note,
		timestamp:    timestamp,
	}
}

func (l Log) ID() kernel.UUID { return l.id }
func (l Log) AssignmentID() kernel.UUID { return l.assignmentID }
func (l Log) Status() string { return l.status }
func (l Log) LocationID() *kernel.UUID { return l.locationID }
func (l Log) StaffID() *kernel.UUID { return l.staffID }
func (l Log) Note() string { return l.note }
func (l Log) Timestamp() time.Time { return l.timestamp }
