package ports

import (
	"context"
	"time"

	"depot/internal/core/domain/model/kernel"
)

// OutboxRepository holds domain events written in the same transaction as the
// aggregates that recorded them, until they are relayed.
type OutboxRepository interface {
	Append(ctx context.Context, events []kernel.DomainEvent) error

	// ListPending returns at most limit unpublished events in append order.
	ListPending(ctx context.Context, limit int) ([]kernel.DomainEvent, error)

	MarkPublished(ctx context.Context, ids []kernel.UUID, at time.Time) error
}

// EventPublisher delivers domain events to other depots.
type EventPublisher interface {
	Publish(ctx context.Context, events []kernel.DomainEvent) error
}
