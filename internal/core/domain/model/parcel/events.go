package parcel

import (
	"time"

	"logistics/internal/core/domain/model/kernel"
)

const (
	EventStatusChanged    = "parcel.status_changed"
	EventPickupCodeIssued = "parcel.pickup_code_issued"
	EventArrivedAtStation = "parcel.arrived_at_station"
)

type StatusChanged struct {
	kernel.BaseEvent
	TrackingNumber kernel.TrackingNumber `json:"tracking_number"`
	From           Status                `json:"from"`
	To             Status                `json:"to"`
	StaffID        *kernel.UUID          `json:"staff_id,omitempty"`
	Note           string                `json:"note,omitempty"`
}

func (StatusChanged) EventType() string { return EventStatusChanged }

// PickupCodeIssued is sent to the recipient so they can collect the parcel.
type PickupCodeIssued struct {
	kernel.BaseEvent
	TrackingNumber kernel.TrackingNumber `json:"tracking_number"`
	RecipientID    *kernel.UUID          `json:"recipient_id,omitempty"`
	PickupCode     kernel.PickupCode     `json:"pickup_code"`
}

func (PickupCodeIssued) EventType() string { return EventPickupCodeIssued }

type ArrivedAtStation struct {
	kernel.BaseEvent
	TrackingNumber kernel.TrackingNumber `json:"tracking_number"`
	StationID      kernel.UUID           `json:"station_id"`
	RecipientID    *kernel.UUID          `json:"recipient_id,omitempty"`
	StorageUntil   time.Time             `json:"storage_until"`
}

func (ArrivedAtStation) EventType() string { return EventArrivedAtStation }
