package queries

import (
	"context"
	"time"

	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type GetParcelTimelineQueryHandler struct {
	db *gorm.DB
}

func NewGetParcelTimelineQueryHandler(db *gorm.DB) GetParcelTimelineQueryHandler {
	return GetParcelTimelineQueryHandler{db: db}
}

// Handle returns errs.ErrObjectNotFound for an unknown tracking number.
// Entries with the same timestamp keep their insertion order.
func (h GetParcelTimelineQueryHandler) Handle(
	ctx context.Context,
	query GetParcelTimelineQuery,
) ([]GetParcelTimelineQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			l.status,
			l.location_id,
			l.staff_id,
			l.note,
			l.timestamp
		FROM parcels p
		LEFT JOIN parcel_status_logs l ON l.parcel_id = p.id
		WHERE p.tracking_number = ?
		ORDER BY l.timestamp, l.ctid
	`, query.TrackingNumber().String()).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	found := false
	entries := make([]GetParcelTimelineQueryResponse, 0)
	for rows.Next() {
		found = true

		var (
			status              *string
			locationID, staffID *uuid.UUID
			note                *string
			timestamp           *time.Time
		)
		if err = rows.Scan(&status, &locationID, &staffID, &note, &timestamp); err != nil {
			return nil, err
		}
		if status == nil || timestamp == nil {
			continue
		}

		var entry GetParcelTimelineQueryResponse
		if entry.Status, err = parcel.ParseStatus(*status); err != nil {
			return nil, err
		}
		if entry.LocationID, err = kernel.OptionalUUIDFromBytes(locationID); err != nil {
			return nil, err
		}
		if entry.StaffID, err = kernel.OptionalUUIDFromBytes(staffID); err != nil {
			return nil, err
		}
		if note != nil {
			entry.Note = *note
		}
		entry.Timestamp = *timestamp
		entries = append(entries, entry)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}
	if !found {
		return nil, errs.NewObjectNotFoundError("parcel", query.TrackingNumber().String())
	}

	return entries, nil
}
