package releaserepo

import (
	"context"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/release"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormReleaseRepository implements ReleaseRepository using GORM.
type GormReleaseRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose events are written on commit.
type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormReleaseRepository(db *gorm.DB, tracker aggregateTracker) *GormReleaseRepository {
	return &GormReleaseRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormReleaseRepository) Exists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&ReleaseDTO{}).Where("number = ?", number).Count(&count).Error
	return count > 0, err
}

// Get loads a release with its details and units in declaration order.
func (r *GormReleaseRepository) Get(ctx context.Context, number string) (*release.Release, error) {
	var dto ReleaseDTO
	err := r.db.WithContext(ctx).
		Preload("Details", orderByPosition).
		Preload("Details.Units", orderByPosition).
		First(&dto, "number = ?", number).Error
	if err != nil {
		return nil, shared.TranslateGetError("release", number, err)
	}

	return toDomain(dto)
}

// Add saves a new release with its details and units.
func (r *GormReleaseRepository) Add(ctx context.Context, aggregate *release.Release) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateCreateError("release", aggregate.Number(), err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update rewrites the header and replaces every detail and unit.
func (r *GormReleaseRepository) Update(ctx context.Context, aggregate *release.Release) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&ReleaseDTO{}).
		Where("number = ?", dto.Number).
		Select("*").Omit("Number", "Details").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("release", dto.Number)
	}

	if err := db.Where("release_number = ?", dto.Number).Delete(&UnitDTO{}).Error; err != nil {
		return err
	}
	if err := db.Where("release_number = ?", dto.Number).Delete(&DetailDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Details) > 0 {
		if err := db.Create(&dto.Details).Error; err != nil {
			return shared.TranslateCreateError("release unit", dto.Number, err)
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

func orderByPosition(db *gorm.DB) *gorm.DB {
	return db.Order("position")
}
