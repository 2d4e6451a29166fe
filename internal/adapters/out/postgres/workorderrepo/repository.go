package workorderrepo

import (
	"context"

	"depot/internal/adapters/out/postgres/shared"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/domain/model/workorder"
	"depot/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormWorkOrderRepository implements WorkOrderRepository using GORM.
type GormWorkOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(aggregate kernel.EventSource)
}

func NewGormWorkOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormWorkOrderRepository {
	return &GormWorkOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormWorkOrderRepository) Exists(ctx context.Context, number string) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&WorkOrderDTO{}).Where("number = ?", number).Count(&count).Error
	return count > 0, err
}

func (r *GormWorkOrderRepository) Get(ctx context.Context, number string) (*workorder.WorkOrder, error) {
	var dto WorkOrderDTO
	err := r.db.WithContext(ctx).
		Preload("Units", func(db *gorm.DB) *gorm.DB { return db.Order("position") }).
		First(&dto, "number = ?", number).Error
	if err != nil {
		return nil, shared.TranslateGetError("work order", number, err)
	}

	return toDomain(dto)
}

func (r *GormWorkOrderRepository) Add(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return shared.TranslateCreateError("work order", aggregate.Number(), err)
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update rewrites the work order and replaces its units.
func (r *GormWorkOrderRepository) Update(ctx context.Context, aggregate *workorder.WorkOrder) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&WorkOrderDTO{}).
		Where("number = ?", dto.Number).
		Select("*").Omit("Number", "Units").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("work order", dto.Number)
	}

	if err := db.Where("work_order_number = ?", dto.Number).Delete(&UnitDTO{}).Error; err != nil {
		return err
	}
	if len(dto.Units) > 0 {
		if err := db.Create(&dto.Units).Error; err != nil {
			return err
		}
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}
