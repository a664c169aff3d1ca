package queries

import (
	"context"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/transit"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

type GetTransitManifestQueryHandler struct {
	db *gorm.DB
}

func NewGetTransitManifestQueryHandler(db *gorm.DB) GetTransitManifestQueryHandler {
	return GetTransitManifestQueryHandler{db: db}
}

// Handle loads the assignment header and then its parcels, ordered by
// tracking number. A vehicle missing from the fleet leaves PlateNumber empty.
func (h GetTransitManifestQueryHandler) Handle(
	ctx context.Context,
	query GetTransitManifestQuery,
) (*GetTransitManifestQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	manifest, parcelIDs, err := h.header(ctx, query.AssignmentID())
	if err != nil {
		return nil, err
	}

	manifest.Parcels, err = h.parcels(ctx, parcelIDs)
	if err != nil {
		return nil, err
	}
	for _, p := range manifest.Parcels {
		manifest.TotalWeightKg += p.WeightKg
	}

	return manifest, nil
}

func (h GetTransitManifestQueryHandler) header(
	ctx context.Context,
	assignmentID kernel.UUID,
) (*GetTransitManifestQueryResponse, pq.StringArray, error) {
	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			a.id,
			a.status,
			a.vehicle_id,
			COALESCE(v.plate_number, ''),
			a.driver_id,
			a.origin_id,
			a.destination_id,
			a.scheduled_departure,
			a.departure_time,
			a.arrival_time,
			a.parcel_ids
		FROM transit_assignments a
		LEFT JOIN vehicles v ON v.id = a.vehicle_id
		WHERE a.id = ?
	`, assignmentID.Bytes()).Rows()
	if err != nil {
		return nil, nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, nil, err
		}
		return nil, nil, errs.NewObjectNotFoundError("transit assignment", assignmentID.String())
	}

	var (
		resp                    GetTransitManifestQueryResponse
		id, vehicleID, driverID uuid.UUID
		originID, destinationID uuid.UUID
		status                  string
		parcelIDs               pq.StringArray
	)
	err = rows.Scan(
		&id,
		&status,
		&vehicleID,
		&resp.PlateNumber,
		&driverID,
		&originID,
		&destinationID,
		&resp.ScheduledDeparture,
		&resp.DepartureTime,
		&resp.ArrivalTime,
		&parcelIDs,
	)
	if err != nil {
		return nil, nil, err
	}

	if resp.Status, err = transit.ParseStatus(status); err != nil {
		return nil, nil, err
	}

	ids := make([]kernel.UUID, 5)
	for i, raw := range []uuid.UUID{id, vehicleID, driverID, originID, destinationID} {
		if ids[i], err = kernel.UUIDFromBytes(raw[:]); err != nil {
			return nil, nil, err
		}
	}
	resp.ID, resp.VehicleID, resp.DriverID, resp.OriginID, resp.DestinationID = ids[0], ids[1], ids[2], ids[3], ids[4]

	if err = rows.Err(); err != nil {
		return nil, nil, err
	}

	return &resp, parcelIDs, nil
}

func (h GetTransitManifestQueryHandler) parcels(ctx context.Context, ids pq.StringArray) ([]ManifestParcel, error) {
	parcels := make([]ManifestParcel, 0, len(ids))
	if len(ids) == 0 {
		return parcels, nil
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			tracking_number,
			status,
			weight_kg
		FROM parcels
		WHERE id = ANY(CAST(? AS uuid[]))
		ORDER BY tracking_number
	`, pq.Array([]string(ids))).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			item           ManifestParcel
			id             uuid.UUID
			trackingNumber string
			status         string
		)
		if err = rows.Scan(&id, &trackingNumber, &status, &item.WeightKg); err != nil {
			return nil, err
		}

		if item.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
			return nil, err
		}
		item.TrackingNumber = kernel.TrackingNumber(trackingNumber)
		if item.Status, err = parcel.ParseStatus(status); err != nil {
			return nil, err
		}
		parcels = append(parcels, item)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return parcels, nil
}
