package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetParcelTimelineQueryIsNotConstructed = errors.New(
		"GetParcelTimelineQuery must be created via NewGetParcelTimelineQuery constructor",
	)
)

// GetParcelTimelineQuery returns the status history of a parcel, oldest
// entry first.
type GetParcelTimelineQuery struct {
	trackingNumber kernel.TrackingNumber

	guard guard.ConstructorGuard
}

func NewGetParcelTimelineQuery(trackingNumber string) (GetParcelTimelineQuery, error) {
	tn, err := kernel.NewTrackingNumber(trackingNumber)
	if err != nil {
		return GetParcelTimelineQuery{}, err
	}
	return GetParcelTimelineQuery{trackingNumber: tn, guard: guard.NewConstructorGuard()}, nil
}

func (q GetParcelTimelineQuery) Validate() error {
	return q.guard.Validate(ErrGetParcelTimelineQueryIsNotConstructed)
}

func (q GetParcelTimelineQuery) TrackingNumber() kernel.TrackingNumber { return q.trackingNumber }

type GetParcelTimelineQueryResponse struct {
	Status     parcel.Status
	LocationID *kernel.UUID
	StaffID    *kernel.UUID
	Note       string
	Timestamp  time.Time
}
