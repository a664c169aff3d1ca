package transit

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
	ErrParcelsAreRequired         = errs.NewValueIsRequiredError("parcels")
	ErrDuplicateParcel            = errs.NewValueIsInvalidError("parcel listed twice")
	ErrSameOriginAndDestination   = errs.NewValueIsInvalidError("origin and destination must differ")
	ErrAssignmentIsNotConstructed = errors.New("Assignment must be created via NewAssignment constructor")
)

// Assignment moves a batch of parcels on one vehicle with one driver between
// two locations. Log entries are informational; only Depart, Complete and
// Cancel change the state.
type Assignment struct {
	id                 kernel.UUID
	vehicleID          kernel.UUID
	driverID           kernel.UUID
	originID           kernel.UUID
	destinationID      kernel.UUID
	parcelIDs          []kernel.UUID
	status             Status
	scheduledDeparture *time.Time
	departureTime      *time.Time
	arrivalTime        *time.Time
	createdAt          time.Time

	pendingLog []Log
	guard      guard.ConstructorGuard
}

func NewAssignment(
	id, vehicleID, driverID, originID, destinationID kernel.UUID,
	parcelIDs []kernel.UUID,
	scheduledDeparture *time.Time,
	now time.Time,
) (*Assignment, error) {
	a := &Assignment{
		status:             Scheduled,
		scheduledDeparture: scheduledDeparture,
		createdAt:          now,
		guard:              guard.NewConstructorGuard(),
	}

	var routeErr error
	if originID.IsEqual(destinationID) {
		routeErr = ErrSameOriginAndDestination
	}

	if err := errors.Join(
		id.Validate(),
		vehicleID.Validate(),
		driverID.Validate(),
		originID.Validate(),
		destinationID.Validate(),
		routeErr,
		a.setParcels(parcelIDs),
	); err != nil {
		return nil, err
	}

	a.id, a.vehicleID, a.driverID = id, vehicleID, driverID
	a.originID, a.destinationID = originID, destinationID
	return a, nil
}

// State is the persisted form of an Assignment.
type State struct {
	ID                 kernel.UUID
	VehicleID          kernel.UUID
	DriverID           kernel.UUID
	OriginID           kernel.UUID
	DestinationID      kernel.UUID
	ParcelIDs          []kernel.UUID
	Status             Status
	ScheduledDeparture *time.Time
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	CreatedAt          time.Time
}

func RestoreAssignment(s State) (*Assignment, error) {
	if err := errors.Join(s.ID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &Assignment{
		id:                 s.ID,
		vehicleID:          s.VehicleID,
		driverID:           s.DriverID,
		originID:           s.OriginID,
		destinationID:      s.DestinationID,
		parcelIDs:          s.ParcelIDs,
		status:             s.Status,
		scheduledDeparture: s.ScheduledDeparture,
		departureTime:      s.DepartureTime,
		arrivalTime:        s.ArrivalTime,
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
func (a *Assignment) VehicleID() kernel.UUID { return a.vehicleID }
func (a *Assignment) DriverID() kernel.UUID { return a.driverID }
func (a *Assignment) OriginID() kernel.UUID { return a.originID }
func (a *Assignment) DestinationID() kernel.UUID { return a.destinationID }
func (a *Assignment) Status() Status { return a.status }
func (a *Assignment) ScheduledDeparture() *time.Time { return a.scheduledDeparture }
func (a *Assignment) DepartureTime() *time.Time { return a.departureTime }
func (a *Assignment) ArrivalTime() *time.Time { return a.arrivalTime }
func (a *Assignment) CreatedAt() time.Time { return a.createdAt }

func (a *Assignment) ParcelIDs() []kernel.UUID {
	return append([]kernel.UUID(nil), a.parcelIDs...)
}

// Depart starts the trip and stamps the departure time.
func (a *Assignment) Depart(now time.Time) error {
	next, err := a.status.Depart()
	if err != nil {
		return err
	}
	a.status = next
	a.departureTime = &now
	return nil
}

// Complete ends the trip and stamps the arrival time.
func (a *Assignment) Complete(now time.Time) error {
	next, err := a.status.Complete()
	if err != nil {
		return err
	}
	a.status = next
	a.arrivalTime = &now
	return nil
}

func (a *Assignment) Cancel() error {
	next, err := a.status.Cancel()
	if err != nil {
		return err
	}
	a.status = next
	return nil
}

// AppendLog adds an informational entry; the assignment state is not touched.
func (a *Assignment) AppendLog(locationID, staffID *kernel.UUID, note string, now time.Time) Log {
	entry := Log{
		id:           kernel.NewUUID(),
		assignmentID: a.id,
		locationID:   locationID,
		staffID:      staffID,
		note:         strings.TrimSpace(note),
		timestamp:    now,
	}
	a.pendingLog = append(a.pendingLog, entry)
	return entry
}

func (a *Assignment) PendingLog() []Log {
	return append([]Log(nil), a.pendingLog...)
}

func (a *Assignment) ClearPendingLog() { a.pendingLog = nil }

func (a *Assignment) setParcels(ids []kernel.UUID) error {
	if len(ids) == 0 {
		return ErrParcelsAreRequired
	}
	seen := make(map[kernel.UUID]struct{}, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return err
		}
		if _, dup := seen[id]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateParcel, id)
		}
		seen[id] = struct{}{}
	}
	a.parcelIDs = append([]kernel.UUID(nil), ids...)
	return nil
}

// Log is one informational entry of a transit assignment.
type Log struct {
	id           kernel.UUID
	assignmentID kernel.UUID
	locationID   *kernel.UUID
	staffID      *kernel.UUID
	note         string
	timestamp    time.Time
}

func RestoreLog(id, assignmentID kernel.UUID, locationID, staffID *kernel.UUID, note string, timestamp time.Time) Log {
	return Log{
		id:           id,
		assignmentID: assignmentID,
		locationID:   locationID,
		staffID:      staffID,
		note:         note,
		timestamp:    timestamp,
	}
}

func (l Log) ID() kernel.UUID { return l.id }
func (l Log) AssignmentID() kernel.UUID { return l.assignmentID }
func (l Log) LocationID() *kernel.UUID { return l.locationID }
func (l Log) StaffID() *kernel.UUID { return l.staffID }
func (l Log) Note() string { return l.note }
func (l Log) Timestamp() time.Time { return l.timestamp }
