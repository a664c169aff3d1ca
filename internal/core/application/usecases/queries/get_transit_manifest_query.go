package queries

import (
	"errors"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/guard"
)

var (
	ErrGetTransitManifestQueryIsNotConstructed = errors.New(
		"GetTransitManifestQuery must be created via NewGetTransitManifestQuery constructor",
	)
)

// GetTransitManifestQuery lists what a transit assignment carries: the
// vehicle, the route and every parcel on board with its current status.
//
// Example:
//
//	query, err := NewGetTransitManifestQuery(assignmentID)
//	if err != nil {
//	    return err
//	}
//	manifest, err := NewGetTransitManifestQueryHandler(db).Handle(ctx, query)
//	fmt.Printf("%s carries %d parcels, %.1f kg\n",
//	    manifest.PlateNumber, len(manifest.Parcels), manifest.TotalWeightKg)
type GetTransitManifestQuery struct {
	assignmentID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetTransitManifestQuery(assignmentID kernel.UUID) (GetTransitManifestQuery, error) {
	if err := assignmentID.Validate(); err != nil {
		return GetTransitManifestQuery{}, err
	}
	return GetTransitManifestQuery{assignmentID: assignmentID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetTransitManifestQuery) Validate() error {
	return q.guard.Validate(ErrGetTransitManifestQueryIsNotConstructed)
}

func (q GetTransitManifestQuery) AssignmentID() kernel.UUID { return q.assignmentID }

type GetTransitManifestQueryResponse struct {
	ID                 kernel.UUID
	Status             transit.Status
	VehicleID          kernel.UUID
	PlateNumber        string
	DriverID           kernel.UUID
	OriginID           kernel.UUID
	DestinationID      kernel.UUID
	ScheduledDeparture *time.Time
	DepartureTime      *time.Time
	ArrivalTime        *time.Time
	Parcels            []ManifestParcel
	TotalWeightKg      float64
}

type ManifestParcel struct {
	ID             kernel.UUID
	TrackingNumber kernel.TrackingNumber
	Status         parcel.Status
	WeightKg       float64
}
