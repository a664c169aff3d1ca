package protocolrepo

import (
	"context"
	"errors"
	"fmt"

	"logistics/internal/adapters/out/postgres/pgerr"
	"logistics/internal/core/domain/model/exchange"
	"logistics/internal/core/domain/model/handover"
	"logistics/internal/core/domain/model/kernel"
	"logistics/internal/core/domain/model/pickup"
	"logistics/internal/core/domain/model/returns"
	"logistics/internal/pkg/errs"

	"gorm.io/gorm"
)

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

// GormHandoverRepository implements ports.HandoverRepository using GORM.
type GormHandoverRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormHandoverRepository(db *gorm.DB, tracker aggregateTracker) *GormHandoverRepository {
	return &GormHandoverRepository{db: db, tracker: tracker}
}

func (r *GormHandoverRepository) Add(ctx context.Context, aggregate *handover.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := handoverFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "handover", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

// Update only stores acknowledgements; the rest of a handover is immutable.
func (r *GormHandoverRepository) Update(ctx context.Context, aggregate *handover.Handover) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	result := r.db.WithContext(ctx).
		Model(&HandoverDTO{}).
		Where("id = ?", aggregate.ID().Bytes()).
		Updates(map[string]any{"from_ack": aggregate.FromAck(), "to_ack": aggregate.ToAck()})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("handover", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormHandoverRepository) Get(ctx context.Context, id kernel.UUID) (*handover.Handover, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto HandoverDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("handover", id.String())
		}
		return nil, err
	}

	return handoverToDomain(dto)
}

// ListByParcel returns the custody chain in the order it was recorded.
func (r *GormHandoverRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*handover.Handover, error) {
	var dtos []HandoverDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("created_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*handover.Handover, 0, len(dtos))
	for _, dto := range dtos {
		h, err := handoverToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, nil
}

// GormReturnRepository implements ports.ReturnRepository using GORM.
type GormReturnRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormReturnRepository(db *gorm.DB, tracker aggregateTracker) *GormReturnRepository {
	return &GormReturnRepository{db: db, tracker: tracker}
}

func (r *GormReturnRepository) Add(ctx context.Context, aggregate *returns.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := returnFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return fmt.Errorf("%w: %w", returns.ErrReturnAlreadyExists, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormReturnRepository) Update(ctx context.Context, aggregate *returns.Request) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := returnFromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&ReturnDTO{}).
		Where("id = ?", dto.ID).
		Select("completed_at", "description").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundErrorWithCause("return request", aggregate.ID().String(), gorm.ErrRecordNotFound)
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormReturnRepository) Get(ctx context.Context, id kernel.UUID) (*returns.Request, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}

	var dto ReturnDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id.Bytes()).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("return request", id.String())
		}
		return nil, err
	}

	return returnToDomain(dto)
}

func (r *GormReturnRepository) FindByParcel(ctx context.Context, parcelID kernel.UUID) (*returns.Request, error) {
	var dtos []ReturnDTO
	if err := r.db.WithContext(ctx).Limit(1).Find(&dtos, "parcel_id = ?", parcelID.Bytes()).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil //nolint:nilnil // parcel has no return
	}

	return returnToDomain(dtos[0])
}

// GormExchangeRepository implements ports.ExchangeRepository. Exchanges are
// append-only.
type GormExchangeRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormExchangeRepository(db *gorm.DB, tracker aggregateTracker) *GormExchangeRepository {
	return &GormExchangeRepository{db: db, tracker: tracker}
}

func (r *GormExchangeRepository) Add(ctx context.Context, aggregate *exchange.Exchange) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := exchangeFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return pgerr.Translate(err, "exchange", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormExchangeRepository) ListByParcel(ctx context.Context, parcelID kernel.UUID) ([]*exchange.Exchange, error) {
	var dtos []ExchangeDTO
	err := r.db.WithContext(ctx).
		Where("parcel_id = ?", parcelID.Bytes()).
		Order("switched_at").
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	out := make([]*exchange.Exchange, 0, len(dtos))
	for _, dto := range dtos {
		e, err := exchangeToDomain(dto)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, nil
}

// GormPickupRepository implements ports.PickupRepository using GORM.
type GormPickupRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

func NewGormPickupRepository(db *gorm.DB, tracker aggregateTracker) *GormPickupRepository {
	return &GormPickupRepository{db: db, tracker: tracker}
}

func (r *GormPickupRepository) Add(ctx context.Context, aggregate *pickup.Pickup) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := pickupFromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		if _, ok := pgerr.UniqueViolation(err); ok {
			return fmt.Errorf("%w: %w", pickup.ErrPickupAlreadyRecorded, err)
		}
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormPickupRepository) FindByParcel(ctx context.Context, parcelID kernel.UUID) (*pickup.Pickup, error) {
	var dtos []PickupDTO
	if err := r.db.WithContext(ctx).Limit(1).Find(&dtos, "parcel_id = ?", parcelID.Bytes()).Error; err != nil {
		return nil, err
	}
	if len(dtos) == 0 {
		return nil, nil //nolint:nilnil // not picked up yet
	}

	return pickupToDomain(dtos[0])
}
