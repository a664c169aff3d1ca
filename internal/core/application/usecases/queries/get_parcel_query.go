package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetParcelQueryIsNotConstructed = errors.New(
		"GetParcelQuery must be created via NewGetParcelQuery constructor",
	)
)

// GetParcelQuery looks a parcel up by the tracking number printed on its
// label. It is the read used by counter staff and the public tracking page.
//
// Example:
//
//	query, err := NewGetParcelQuery("PRC-20240601-1A2B3C")
//	if err != nil {
//	    return err
//	}
//	view, err := NewGetParcelQueryHandler(db).Handle(ctx, query)
type GetParcelQuery struct {
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

func NewGetParcelQuery(trackingNumber string) (GetParcelQuery, error) {
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	if err != nil {
		return GetParcelQuery{}, err
	}
	return GetParcelQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelQueryIsNotConstructed)
}

func (q GetParcelQuery) TrackingNumber() kernel.TrackingNumber { return q.trackingNumber }

// GetParcelQueryResponse is the current view of one parcel. OpenReturn is set
// while a return request is pending; Pickup once the parcel was collected.
type GetParcelQueryResponse struct {
	ID                 kernel.UUID
	TrackingNumber     kernel.TrackingNumber
	Status             parcel.Status
	WeightKg           float64
	CurrentLocation    string
	RecipientID        *kernel.UUID
	DestinationID      *kernel.UUID
	StationArrivalTime *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
	OpenReturn         *ReturnSummary
	Pickup             *PickupSummary
}

type ReturnSummary struct {
	ID          kernel.UUID
	Reason      returns.Reason
	ReturnTo    *kernel.UUID
	InitiatedAt time.Time
}

type PickupSummary struct {
	PickedUpAt time.Time
	Guest      bool
	SignedOff  bool
}
