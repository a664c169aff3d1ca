package parcelrepo

import (
	"context"
	"errors"
	"time"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/location"
	"logistics/internal/core/domain/model/parcel"
	"logistics/internal/pkg/errs"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormParcelRepository implements ports.ParcelRepository using GORM.
type GormParcelRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormParcelRepository(db *gorm.DB, tracker aggregateTracker) *GormParcelRepository {
	return &GormParcelRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add inserts the parcel with its items and its initial log entry.
func (r *GormParcelRepository) Add(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "parcel", aggregate.TrackingNumber().String())
	}

	if err := r.appendLog(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update writes every column so cleared values such as the current station
// are persisted. Items are immutable after creation and associations are
// never written through the parcel.
func (r *GormParcelRepository) Update(ctx context.Context, aggregate *parcel.Parcel) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ParcelDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit(clause.Associations, "CreatedAt").
		Updates(&dto)
	if result.Error != nil {
		return pgerr.Translate(result.Error, "parcel", aggregate.TrackingNumber().String())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("parcel", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	if err := r.appendLog(ctx, aggregate); err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormParcelRepository) appendLog(ctx context.Context, aggregate *parcel.Parcel) error {
	pending := aggregate.PendingLog()
	if len(pending) == 0 {
		return nil
	}

	rows := make([]StatusLogDTO, 0, len(pending))
	for _, entry := range pending {
		rows = append(rows, logFromDomain(entry))
	}
	if err := r.db.WithContext(ctx).Create(&rows).Error; err != nil {
		return err
	}

	aggregate.ClearPendingLog()
	return nil
}

// Get loads the parcel and holds a row lock until the transaction ends.
func (r *GormParcelRepository) Get(ctx context.Context, id kernel.UUID) (*parcel.Parcel, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", orderedItems).
		First(&dto, "id = ?", id.Bytes()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

func (r *GormParcelRepository) GetByTrackingNumber(ctx context.Context, tn kernel.TrackingNumber) (*parcel.Parcel, error) {
	var dto ParcelDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		First(&dto, "tracking_number = ?", tn.String()).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("parcel", tn.String())
		}
		return nil, err
	}

	return toDomain(dto)
}

// GetMany locks the rows in id order so two transit assignments sharing
// parcels cannot deadlock each other.
func (r *GormParcelRepository) GetMany(ctx context.Context, ids []kernel.UUID) ([]*parcel.Parcel, error) {
	if len(ids) == 0 {
		return []*parcel.Parcel{}, nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		if err := id.Validate(); err != nil {
			return nil, err
		}
		raw = append(raw, id.Bytes())
	}

	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Preload("Items", orderedItems).
		Where("id IN ?", raw).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]ParcelDTO, len(dtos))
	for _, dto := range dtos {
		byID[dto.ID] = dto
	}

	parcels := make([]*parcel.Parcel, 0, len(ids))
	for _, id := range ids {
		dto, ok := byID[id.Bytes()]
		if !ok {
			return nil, errs.NewObjectNotFoundError("parcel", id.String())
		}
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

// ListStorageExpired compares each parcel's arrival time with the storage
// window of the station it sits at. Stations without a stored window use
// location.DefaultMaxStorageDays.
func (r *GormParcelRepository) ListStorageExpired(ctx context.Context, at time.Time, limit int) ([]*parcel.Parcel, error) {
	var dtos []ParcelDTO
	err := r.db.WithContext(ctx).
		Preload("Items", orderedItems).
		Joins("JOIN locations ON locations.id = parcels.current_station_id").
		Where("parcels.status = ?", string(parcel.AtStation)).
		Where("locations.kind = ?", string(location.PickupStation)).
		Where("parcels.station_arrival_time + make_interval(days => COALESCE((locations.details->>'max_storage_days')::int, ?)) < ?",
			location.DefaultMaxStorageDays, at).
		Where("NOT EXISTS (SELECT 1 FROM return_requests r WHERE r.parcel_id = parcels.id)").
		Order("parcels.station_arrival_time").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	parcels := make([]*parcel.Parcel, 0, len(dtos))
	for _, dto := range dtos {
		p, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		parcels = append(parcels, p)
	}

	return parcels, nil
}

func orderedItems(db *gorm.DB) *gorm.DB {
	return db.Order("id")
}
