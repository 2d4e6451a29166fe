// Package commands contains business operations that modify system state.
// Implements the Command pattern for write operations in the CQRS architecture.
// All commands follow a consistent pattern: validation, per-key locking,
// transaction management, and persistence.
package commands

import (
	"context"

	"depot/internal/core/ports"
)

// Unit of Work interfaces provide transaction management for command handlers.
// Every handler asks only for the repositories it touches.
type (
	// TxManager handles database transaction lifecycle.
	// Ensures atomic operations across multiple repository calls.
	TxManager interface {
		Begin(ctx context.Context) error
		Commit(ctx context.Context) error
		Rollback(ctx context.Context) error
	}

	// PartyRepoFactory provides access to the party repository within a transaction.
	PartyRepoFactory interface {
		PartyRepository() ports.PartyRepository
	}

	RedeliveryRepoFactory interface {
		RedeliveryRepository() ports.RedeliveryRepository
	}

	ReleaseRepoFactory interface {
		ReleaseRepository() ports.ReleaseRepository
	}

	GateRepoFactory interface {
		GateRepository() ports.GateRepository
	}

	EstimateRepoFactory interface {
		EstimateRepository() ports.EstimateRepository
	}

	WorkOrderRepoFactory interface {
		WorkOrderRepository() ports.WorkOrderRepository
	}

	OutboxRepoFactory interface {
		OutboxRepository() ports.OutboxRepository
	}

	// PartyUoW manages transactions for party registration.
	PartyUoW interface {
		TxManager
		PartyRepoFactory
	}

	PartyUoWFactory interface {
		Create() PartyUoW
	}

	// RedeliveryUoW resolves parties and stores redeliveries in one transaction.
	RedeliveryUoW interface {
		TxManager
		PartyRepoFactory
		RedeliveryRepoFactory
	}

	RedeliveryUoWFactory interface {
		Create() RedeliveryUoW
	}

	// ReleaseUoW resolves parties and stores releases in one transaction.
	ReleaseUoW interface {
		TxManager
		PartyRepoFactory
		ReleaseRepoFactory
	}

	ReleaseUoWFactory interface {
		Create() ReleaseUoW
	}

	// GateUoW records gate movements and applies them to the matching advice.
	//
	// Example:
	//   uow := factory.Create()
	//   err := uow.Begin(ctx)
	//   defer uow.Rollback(ctx)
	//
	//   gates := uow.GateRepository()
	//   redeliveries := uow.RedeliveryRepository()
	//   // ... perform operations
	//
	//   err = uow.Commit(ctx)
	GateUoW interface {
		TxManager
		PartyRepoFactory
		GateRepoFactory
		RedeliveryRepoFactory
		ReleaseRepoFactory
	}

	GateUoWFactory interface {
		Create() GateUoW
	}

	// EstimateUoW manages transactions for estimate revisions.
	EstimateUoW interface {
		TxManager
		PartyRepoFactory
		EstimateRepoFactory
	}

	EstimateUoWFactory interface {
		Create() EstimateUoW
	}

	// WorkOrderUoW manages transactions for work orders.
	WorkOrderUoW interface {
		TxManager
		PartyRepoFactory
		EstimateRepoFactory
		WorkOrderRepoFactory
	}

	WorkOrderUoWFactory interface {
		Create() WorkOrderUoW
	}

	// OutboxUoW reads pending events and marks them relayed.
	OutboxUoW interface {
		TxManager
		OutboxRepoFactory
	}

	OutboxUoWFactory interface {
		Create() OutboxUoW
	}
)

// KeyLocker serializes handlers working on the same business key within the
// process. Unique constraints in storage cover concurrent processes.
type KeyLocker interface {
	Lock(key any)
	Unlock(key any)
}

func lockKey(kind, key string) string {
	return kind + ":" + key
}
