package outboxrepo

import (
	"context"
	"time"

	"depot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GormOutboxRepository implements OutboxRepository using GORM.
type GormOutboxRepository struct {
	db *gorm.DB
}

func NewGormOutboxRepository(db *gorm.DB) *GormOutboxRepository {
	return &GormOutboxRepository{db: db}
}

func (r *GormOutboxRepository) Append(ctx context.Context, events []kernel.DomainEvent) error {
	if len(events) == 0 {
		return nil
	}

	dtos := make([]EventDTO, 0, len(events))
	for _, e := range events {
		dtos = append(dtos, fromDomain(e))
	}
	return r.db.WithContext(ctx).Create(&dtos).Error
}

// ListPending returns unpublished events in the order they were appended.
func (r *GormOutboxRepository) ListPending(ctx context.Context, limit int) ([]kernel.DomainEvent, error) {
	var dtos []EventDTO
	err := r.db.WithContext(ctx).
		Where("published_at IS NULL").
		Order("seq").
		Limit(limit).
		Find(&dtos).Error
	if err != nil {
		return nil, err
	}

	events := make([]kernel.DomainEvent, 0, len(dtos))
	for _, dto := range dtos {
		e, convErr := toDomain(dto)
		if convErr != nil {
			return nil, convErr
		}
		events = append(events, e)
	}
	return events, nil
}

func (r *GormOutboxRepository) MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error {
	if len(ids) == 0 {
		return nil
	}

	raw := make([]uuid.UUID, 0, len(ids))
	for _, id := range ids {
		raw = append(raw, id.Bytes())
	}
	return r.db.WithContext(ctx).Model(&EventDTO{}).
		Where("id IN ?", raw).
		Update("published_at", at).Error
}
