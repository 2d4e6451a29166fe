// Package outboxrepo stores domain events until the relay publishes them.
package outboxrepo

import (
	"time"

	"depot/internal/core/domain/model/kernel"

	"github.com/google/uuid"
)

// EventDTO is one outbox row. Seq is the insertion sequence and orders the relay.
// PublishedAt stays nil until the event is relayed.
type EventDTO struct {
	ID           uuid.UUID         `gorm:"type:uuid;primaryKey"`
	Seq          int64             `gorm:"autoIncrement;uniqueIndex"`
	Name         string            `gorm:"size:64"`
	AggregateKey string            `gorm:"size:128"`
	OccurredAt   time.Time         `gorm:"index"`
	Attributes   map[string]string `gorm:"serializer:json"`
	PublishedAt  *time.Time        `gorm:"index"`
}

func (EventDTO) TableName() string {
	return "outbox"
}

func fromDomain(e kernel.DomainEvent) EventDTO {
	return EventDTO{
		ID:           e.ID().Bytes(),
		Name:         e.Name(),
		AggregateKey: e.AggregateKey(),
		OccurredAt:   e.OccurredAt(),
		Attributes:   e.Attributes(),
	}
}

func toDomain(dto EventDTO) (kernel.DomainEvent, error) {
	id, err := kernel.UUIDFromBytes(dto.ID[:])
	if err != nil {
		return kernel.DomainEvent{}, err
	}
	return kernel.RestoreDomainEvent(id, dto.Name, dto.AggregateKey, dto.OccurredAt, dto.Attributes), nil
}
