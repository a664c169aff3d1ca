package parcel

import (
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/pkg/errs"
	"logistics/internal/pkg/guard"
)

var (
	ErrParcelIsNotConstructed  = errors.New("Parcel must be created via NewParcel constructor")
	ErrWeightIsInvalid         = errs.NewValueIsInvalidError("weight")
	ErrParcelIsClosed          = errs.NewStateIsInvalidError("parcel is delivered or cancelled")
	ErrParcelIsAlreadyReturned = errs.NewStateIsInvalidError("parcel is already returned")
	ErrReturnIsRequired        = errs.NewStateIsInvalidError("returned statuses are set by completing a return")
)

// Parcel is the aggregate root of the logistics core. Every status change
// goes through the parcel, which appends a LogEntry and records a domain
// event; repositories persist both in the same transaction as the parcel.
//
// Invariants:
//   - the tracking number never changes once assigned
//   - weight is positive
//   - status is one of the defined values
//   - a terminal status is left only through CompleteReturn or Redirect
type Parcel struct {
	kernel.EventRecorder

	id                 kernel.UUID
	trackingNumber     kernel.TrackingNumber
	weightKg           float64
	attrs              Attributes
	items              []Item
	status             Status
	currentLocation    string
	pickupCode         *kernel.PickupCode
	currentStationID   *kernel.UUID
	stationArrivalTime *time.Time
	createdAt          time.Time
	updatedAt          time.Time

	pendingLog []LogEntry
	guard      guard.ConstructorGuard
}

// State is the persisted form of a Parcel, used by RestoreParcel.
type State struct {
	ID                 kernel.UUID
	TrackingNumber     kernel.TrackingNumber
	WeightKg           float64
	Attributes         Attributes
	Items              []Item
	Status             Status
	CurrentLocation    string
	PickupCode         *kernel.PickupCode
	CurrentStationID   *kernel.UUID
	StationArrivalTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// NewParcel creates a packed parcel and logs the initial status.
//
// Example:
//
//	p, err := NewParcel(kernel.NewUUID(), tn, 2.5, Attributes{OriginID: &w1}, nil, &staffID, time.Now())
func NewParcel(
	id kernel.UUID,
	trackingNumber kernel.TrackingNumber,
	weightKg float64,
	attrs Attributes,
	items []Item,
	createdBy *kernel.UUID,
	now time.Time,
) (*Parcel, error) {
	p := &Parcel{
		items:     append([]Item(nil), items...),
		createdAt: now,
		updatedAt: now,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(id),
		p.setTrackingNumber(trackingNumber),
		p.setWeight(weightKg),
		p.setAttributes(attrs),
	); err != nil {
		return nil, err
	}

	p.transition(Packed, createdBy, attrs.OriginID, "parcel created", now)
	return p, nil
}

// RestoreParcel rebuilds a parcel from storage. No log entry or event is produced.
func RestoreParcel(s State) (*Parcel, error) {
	p := &Parcel{
		items:              s.Items,
		status:             s.Status,
		currentLocation:    s.CurrentLocation,
		pickupCode:         s.PickupCode,
		currentStationID:   s.CurrentStationID,
		stationArrivalTime: s.StationArrivalTime,
		createdAt:          s.CreatedAt,
		updatedAt:          s.UpdatedAt,
		guard:              guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		p.setID(s.ID),
		p.setTrackingNumber(s.TrackingNumber),
		p.setWeight(s.WeightKg),
		p.setAttributes(s.Attributes),
		s.Status.Validate(),
	); err != nil {
		return nil, err
	}

	return p, nil
}

func (p *Parcel) Validate() error {
	if p == nil {
		return ErrParcelIsNotConstructed
	}
	return p.guard.Validate(ErrParcelIsNotConstructed)
}

func (p *Parcel) IsEqual(other *Parcel) bool {
	return other != nil && p.id.IsEqual(other.id)
}

func (p *Parcel) ID() kernel.UUID { return p.id }
func (p *Parcel) TrackingNumber() kernel.TrackingNumber { return p.trackingNumber }
func (p *Parcel) WeightKg() float64 { return p.weightKg }
func (p *Parcel) Attributes() Attributes { return p.attrs }
func (p *Parcel) Status() Status { return p.status }
func (p *Parcel) CurrentLocation() string { return p.currentLocation }
func (p *Parcel) PickupCode() *kernel.PickupCode { return p.pickupCode }
func (p *Parcel) StationArrivalTime() *time.Time { return p.stationArrivalTime }

// CurrentStationID is the pickup station the parcel is stored at. It is nil
// unless the parcel arrived at_station through ArriveAtStation.
func (p *Parcel) CurrentStationID() *kernel.UUID { return p.currentStationID }
func (p *Parcel) CreatedAt() time.Time { return p.createdAt }
func (p *Parcel) UpdatedAt() time.Time { return p.updatedAt }

func (p *Parcel) Items() []Item {
	return append([]Item(nil), p.items...)
}

// RecipientID returns nil when no recipient is set or the customer was deleted.
func (p *Parcel) RecipientID() *kernel.UUID { return p.attrs.RecipientID }

func (p *Parcel) DestinationID() *kernel.UUID { return p.attrs.DestinationID }

func (p *Parcel) RequiresSignature() bool { return p.attrs.RequiresSignature }

// IsRecipient reports whether customerID is the parcel's designated recipient.
func (p *Parcel) IsRecipient(customerID kernel.UUID) bool {
	return p.attrs.RecipientID != nil && p.attrs.RecipientID.IsEqual(customerID)
}

// PickupCodeMatches compares in constant time. A parcel without a code matches nothing.
func (p *Parcel) PickupCodeMatches(code string) bool {
	if p.pickupCode == nil {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(p.pickupCode.String()), []byte(code)) == 1
}

// UpdateStatus moves the parcel to status and appends a log entry.
//
// Returns ErrStatusIsInvalid for unknown values, ErrReturnIsRequired for the
// returned statuses, which only CompleteReturn sets, and ErrStatusIsTerminal
// when the parcel already reached its final disposition.
func (p *Parcel) UpdateStatus(status Status, staffID, locationID *kernel.UUID, note string, now time.Time) error {
	if err := status.Validate(); err != nil {
		return err
	}
	if status.IsReturned() {
		return fmt.Errorf("%w: %s", ErrReturnIsRequired, status)
	}
	if p.status.IsTerminal() {
		return fmt.Errorf("%w: %s", ErrStatusIsTerminal, p.status)
	}

	p.transition(status, staffID, locationID, note, now)
	return nil
}

// ArriveAtStation places the parcel at a pickup station and notifies the
// recipient that the storage window started. An empty note is logged as the
// arrival itself.
func (p *Parcel) ArriveAtStation(station *location.Location, staffID *kernel.UUID, note string, now time.Time) error {
	if err := station.Validate(); err != nil {
		return err
	}
	if note == "" {
		note = "arrived at " + station.Label()
	}
	stationID := station.ID()
	if err := p.UpdateStatus(AtStation, staffID, &stationID, note, now); err != nil {
		return err
	}

	p.currentStationID = &stationID
	p.currentLocation = station.Label()
	p.Record(ArrivedAtStation{
		BaseEvent:      kernel.NewBaseEvent(p.id, now),
		TrackingNumber: p.trackingNumber,
		StationID:      stationID,
		RecipientID:    p.attrs.RecipientID,
		StorageUntil:   now.AddDate(0, 0, station.MaxStorageDays()),
	})
	return nil
}

// MoveTo updates the human-readable current location without a status change.
func (p *Parcel) MoveTo(label string, now time.Time) {
	p.currentLocation = label
	p.updatedAt = now
}

// StorageExpired reports whether the parcel has waited at a station longer
// than maxDays.
func (p *Parcel) StorageExpired(maxDays int, now time.Time) bool {
	if p.status != AtStation || p.stationArrivalTime == nil || maxDays <= 0 {
		return false
	}
	return now.After(p.stationArrivalTime.AddDate(0, 0, maxDays))
}

// CompleteReturn moves the parcel into a returned status. It is allowed from
// any state except cancelled and the returned states themselves, so a
// delivered parcel can still be sent back.
func (p *Parcel) CompleteReturn(to Status, returnTo *location.Location, staffID *kernel.UUID, now time.Time) error {
	if !to.IsReturned() {
		return fmt.Errorf("%w: %q is not a return status", ErrStatusIsInvalid, string(to))
	}
	if err := returnTo.Validate(); err != nil {
		return err
	}
	if p.status == Cancelled {
		return fmt.Errorf("%w: %s", ErrStatusIsTerminal, p.status)
	}
	if p.status.IsReturned() {
		return ErrParcelIsAlreadyReturned
	}

	locationID := returnTo.ID()
	p.transition(to, staffID, &locationID, "returned to "+returnTo.Label(), now)
	p.currentLocation = returnTo.Label()
	return nil
}

// Redirect switches the live recipient and destination. A nil argument keeps
// the current value. A returned parcel is reopened to packed so it can travel
// again; delivered and cancelled parcels cannot be redirected.
func (p *Parcel) Redirect(toRecipient, toDestination, staffID *kernel.UUID, note string, now time.Time) error {
	if p.status == Delivered || p.status == Cancelled {
		return fmt.Errorf("%w: %s", ErrParcelIsClosed, p.status)
	}

	if toRecipient != nil {
		p.attrs.RecipientID = toRecipient
	}
	if toDestination != nil {
		p.attrs.DestinationID = toDestination
	}
	p.updatedAt = now

	if p.status.IsReturned() {
		p.transition(Packed, staffID, nil, note, now)
	}
	return nil
}

// IssuePickupCode assigns a new code, replacing any previous one, and
// notifies the recipient.
func (p *Parcel) IssuePickupCode(code kernel.PickupCode, now time.Time) error {
	if _, err := kernel.NewPickupCode(code.String()); err != nil {
		return err
	}
	if p.status == Delivered || p.status == Cancelled {
		return fmt.Errorf("%w: %s", ErrParcelIsClosed, p.status)
	}

	p.pickupCode = &code
	p.updatedAt = now
	p.Record(PickupCodeIssued{
		BaseEvent:      kernel.NewBaseEvent(p.id, now),
		TrackingNumber: p.trackingNumber,
		RecipientID:    p.attrs.RecipientID,
		PickupCode:     code,
	})
	return nil
}

// PendingLog returns the entries appended since the parcel was loaded.
func (p *Parcel) PendingLog() []LogEntry {
	return append([]LogEntry(nil), p.pendingLog...)
}

func (p *Parcel) ClearPendingLog() {
	p.pendingLog = nil
}

func (p *Parcel) transition(to Status, staffID, locationID *kernel.UUID, note string, now time.Time) {
	from := p.status
	p.status = to
	p.updatedAt = now
	p.currentStationID = nil
	if to == AtStation {
		at := now
		p.stationArrivalTime = &at
	}

	entry := newLogEntry(p.id, to, locationID, staffID, note, now)
	p.pendingLog = append(p.pendingLog, entry)
	p.Record(StatusChanged{
		BaseEvent:      kernel.NewBaseEvent(p.id, now),
		TrackingNumber: p.trackingNumber,
		From:           from,
		To:             to,
		StaffID:        staffID,
		Note:           entry.Note(),
	})
}

func (p *Parcel) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	p.id = id
	return nil
}

func (p *Parcel) setTrackingNumber(tn kernel.TrackingNumber) error {
	if _, err := kernel.NewTrackingNumber(tn.String()); err != nil {
		return err
	}
	p.trackingNumber = tn
	return nil
}

func (p *Parcel) setWeight(weightKg float64) error {
	if weightKg <= 0 {
		return fmt.Errorf("%w: %.3f is not greater than 0", ErrWeightIsInvalid, weightKg)
	}
	p.weightKg = weightKg
	return nil
}

func (p *Parcel) setAttributes(attrs Attributes) error {
	if err := attrs.normalize(); err != nil {
		return err
	}
	p.attrs = attrs
	return nil
}
