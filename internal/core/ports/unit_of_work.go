package ports

import (
	"context"
)

// UnitOfWorkFactory creates new UnitOfWork instances for each request/command.
// This ensures proper isolation between concurrent operations.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork represents a business transaction boundary.
// Events of every aggregate saved through its repositories are appended to
// the outbox on Commit. Client code must explicitly manage transaction lifecycle.
type UnitOfWork interface {
	// Begin starts a new database transaction.
	Begin(ctx context.Context) error

	// Commit writes pending domain events and commits the current transaction.
	// Returns error if no active transaction or commit fails.
	Commit(ctx context.Context) error

	// Rollback rolls back the current transaction and drops pending events.
	// Returns error if no active transaction or rollback fails.
	Rollback(ctx context.Context) error

	PartyRepository() PartyRepository
	RedeliveryRepository() RedeliveryRepository
	ReleaseRepository() ReleaseRepository
	GateRepository() GateRepository
	EstimateRepository() EstimateRepository
	WorkOrderRepository() WorkOrderRepository
	OutboxRepository() OutboxRepository
}
