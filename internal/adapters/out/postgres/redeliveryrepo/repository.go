package redeliveryrepo

import (
	"context"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/redelivery"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormRedeliveryRepository implements RedeliveryRepository using GORM.
type GormRedeliveryRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose events are written on commit.
type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormRedeliveryRepository(db *gorm.DB, tracker aggregateTracker) *GormRedeliveryRepository {
	return &GormRedeliveryRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormRedeliveryRepository) Exists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&RedeliveryDTO{}).Where("number = ?", number).Count(&count).Error
	return count > 0, err
}

// Get loads a redelivery with its details and units in declaration order.
func (r *GormRedeliveryRepository) Get(ctx context.Context, number string) (*redelivery.Redelivery, error) {
	var dto RedeliveryDTO
	err := r.db.WithContext(ctx).
		Preload("Details", orderByPosition).
		Preload("Details.Units", orderByPosition).
		First(&dto, "number = ?", number).Error
	if err != nil {
		return nil, shared.TranslateGetError("redelivery", number, err)
	}

	return toDomain(dto)
}

// Add saves a new redelivery with its details and units.
func (r *GormRedeliveryRepository) Add(ctx context.Context, aggregate *redelivery.Redelivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateCreateError("redelivery", aggregate.Number(), err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update rewrites the header and replaces every detail and unit.
func (r *GormRedeliveryRepository) Update(ctx context.Context, aggregate *redelivery.Redelivery) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&RedeliveryDTO{}).
		Where("number = ?", dto.Number).
		Select("*").Omit("Number", "Details").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("redelivery", dto.Number)
	}

	if err := db.Where("redelivery_number = ?", dto.Number).Delete(&UnitDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("redelivery_number = ?", dto.Number).Delete(&DetailDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Details) > 0 {
		if err := db.Create(&dto.Details).Error; err != nil {
			return shared.TranslateCreateError("redelivery unit", dto.Number, err)
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
