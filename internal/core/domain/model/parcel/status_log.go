package parcel

import (
	"strings"
	"time"

	"logistics/internal/core/domain/model/kernel"
)

// LogEntry is one row of a parcel's append-only status history. Entries are
// created by the parcel whenever its status changes and are never edited.
type LogEntry struct {
	id         kernel.UUID
	parcelID   kernel.UUID
	status     Status
	locationID *kernel.UUID
	staffID    *kernel.UUID
	note       string
	timestamp  time.Time
}

func newLogEntry(parcelID kernel.UUID, status Status, locationID, staffID *kernel.UUID, note string, at time.Time) LogEntry {
	return LogEntry{
		id:         kernel.NewUUID(),
		parcelID:   parcelID,
		status:     status,
		locationID: locationID,
		staffID:    staffID,
		note:       strings.TrimSpace(note),
		timestamp:  at,
	}
}

// RestoreLogEntry rebuilds a stored entry for timeline reads.
func RestoreLogEntry(
	id, parcelID kernel.UUID,
	status Status,
	locationID, staffID *kernel.UUID,
	note string,
	timestamp time.Time,
) LogEntry {
	return LogEntry{
		id:         id,
		parcelID:   parcelID,
		status:     status,
		locationID: locationID,
		staffID:    staffID,
		note:       note,
		timestamp:  timestamp,
	}
}

func (e LogEntry) ID() kernel.UUID { return e.id }
func (e LogEntry) ParcelID() kernel.UUID { return e.parcelID }
func (e LogEntry) Status() Status { return e.status }
func (e LogEntry) LocationID() *kernel.UUID { return e.locationID }
func (e LogEntry) StaffID() *kernel.UUID { return e.staffID }
func (e LogEntry) Note() string { return e.note }
func (e LogEntry) Timestamp() time.Time { return e.timestamp }
