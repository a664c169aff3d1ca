package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GetParcelQueryHandler reads the parcel view straight from the tables,
// bypassing the aggregate and its row lock.
type GetParcelQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelQueryHandler(db *gorm.DB) GetParcelQueryHandler {
	return GetParcelQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound when no parcel carries the tracking
// number. A completed return is not reported as open.
func (h GetParcelQueryHandler) Handle(ctx context.Context, query GetParcelQuery) (*GetParcelQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			p.id,
			p.tracking_number,
			p.status,
			p.weight_kg,
			p.current_location,
			p.recipient_id,
			p.destination_id,
			p.station_arrival_time,
			p.created_at,
			p.updated_at,
			r.id,
			r.reason,
			r.return_to,
			r.initiated_at,
			pk.id,
			pk.customer_id,
			pk.signed_off,
			pk.picked_up_at
		FROM parcels p
		LEFT JOIN return_requests r ON r.parcel_id = p.id AND r.completed_at IS NULL
		LEFT JOIN parcel_pickups pk ON pk.parcel_id = p.id
		WHERE p.tracking_number = ?
	`, query.TrackingNumber().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	if !rows.Next() {
		if err = rows.Err(); err != nil {
			return nil, err
		}
		return nil, errs.NewObjectNotFoundError("parcel", query.TrackingNumber().String())
	}

	var (
		resp                     GetParcelQueryResponse
		id                       uuid.UUID
		trackingNumber, status   string
		recipientID, destination *uuid.UUID
		returnID, returnTo       *uuid.UUID
		returnReason             *string
		returnInitiatedAt        *time.Time
		pickupID, pickupCustomer *uuid.UUID
		pickupSignedOff          *bool
		pickupAt                 *time.Time
	)
	err = rows.Scan(
		&id,
		&trackingNumber,
		&status,
		&resp.WeightKg,
		&resp.CurrentLocation,
		&recipientID,
		&destination,
		&resp.StationArrivalTime,
		&resp.CreatedAt,
		&resp.UpdatedAt,
		&returnID,
		&returnReason,
		&returnTo,
		&returnInitiatedAt,
		&pickupID,
		&pickupCustomer,
		&pickupSignedOff,
		&pickupAt,
	)
	if err != nil {
		return nil, err
	}

	if resp.ID, err = kernel.UUIDFromBytes(id[:]); err != nil {
		return nil, err
	}
	resp.TrackingNumber = kernel.TrackingNumber(trackingNumber)
	if resp.Status, err = parcel.ParseStatus(status); err != nil {
		return nil, err
	}
	if resp.RecipientID, err = kernel.OptionalUUIDFromBytes(recipientID); err != nil {
		return nil, err
	}
	if resp.DestinationID, err = kernel.OptionalUUIDFromBytes(destination); err != nil {
		return nil, err
	}

	if returnID != nil && returnReason != nil && returnInitiatedAt != nil {
		summary := &ReturnSummary{Reason: returns.Reason(*returnReason), InitiatedAt: *returnInitiatedAt}
		if summary.ID, err = kernel.UUIDFromBytes(returnID[:]); err != nil {
			return nil, err
		}
		if summary.ReturnTo, err = kernel.OptionalUUIDFromBytes(returnTo); err != nil {
			return nil, err
		}
		resp.OpenReturn = summary
	}

	if pickupID != nil && pickupAt != nil {
		resp.Pickup = &PickupSummary{
			PickedUpAt: *pickupAt,
			Guest:      pickupCustomer == nil,
			SignedOff:  pickupSignedOff != nil && *pickupSignedOff,
		}
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return &resp, nil
}
