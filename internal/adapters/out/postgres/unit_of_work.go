// Package postgres provides the GORM-based Unit of Work of the depot service.
// The Unit of Work spans one business transaction: every repository it hands
// out shares the same database transaction, and every aggregate saved through
// those repositories is tracked so its domain events reach the outbox in the
// same transaction.
//
// Key Features:
//   - Transaction management across party, advice, gate, estimate and work order repositories
//   - Transactional outbox: events of tracked aggregates are appended on Commit
//   - Isolation between concurrent operations, one instance per command
//
// Usage Patterns:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.RedeliveryRepository().Add(ctx, r); err != nil {
//	    return err
//	}
//
//	return uow.Commit(ctx)
//
// Rollback after a successful Commit returns gorm.ErrInvalidTransaction, which
// the deferred call above ignores.
//
// Concurrency Considerations:
//   - Each UnitOfWork instance holds its own transaction; never share one between goroutines
//   - Business key races between processes are settled by unique constraints
package postgres

import (
	"context"
	"slices"

	"depot/internal/adapters/out/postgres/estimaterepo"
	"depot/internal/adapters/out/postgres/gaterepo"
	"depot/internal/adapters/out/postgres/outboxrepo"
	"depot/internal/adapters/out/postgres/partyrepo"
	"depot/internal/adapters/out/postgres/redeliveryrepo"
	"depot/internal/adapters/out/postgres/releaserepo"
	"depot/internal/adapters/out/postgres/workorderrepo"
	"depot/internal/core/domain/model/kernel"
	"depot/internal/core/ports"

	"gorm.io/gorm"
)

// GormUnitOfWorkFactory creates UnitOfWork instances sharing one connection pool.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a fresh unit of work with no transaction and nothing tracked.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return f.CreateGorm()
}

// CreateGorm is Create returning the concrete type, for adapters that narrow
// the unit of work to a smaller interface.
func (f *GormUnitOfWorkFactory) CreateGorm() *GormUnitOfWork {
	return &GormUnitOfWork{db: f.db}
}

// GormUnitOfWork coordinates one database transaction and collects the
// aggregates saved within it.
type GormUnitOfWork struct {
	db      *gorm.DB
	tx      *gorm.DB
	tracked []kernel.EventSource
}

// Begin starts the transaction. Calling it twice keeps the first transaction.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return err
	}

	return nil
}

// Commit appends the pending events of tracked aggregates to the outbox and
// commits. Events are cleared from the aggregates only once the commit
// succeeded. When the outbox write fails the transaction stays open for the
// caller to roll back.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	if events := uow.pendingEvents(); len(events) > 0 {
		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Append(ctx, events); err != nil {
			return err
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		uow.tracked = nil
		return err
	}

	for _, aggregate := range uow.tracked {
		aggregate.ClearDomainEvents()
	}
	uow.tracked = nil
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.tracked = nil
	return err
}

func (uow *GormUnitOfWork) PartyRepository() ports.PartyRepository {
	return partyrepo.NewGormPartyRepository(uow.conn())
}

func (uow *GormUnitOfWork) RedeliveryRepository() ports.RedeliveryRepository {
	return redeliveryrepo.NewGormRedeliveryRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) ReleaseRepository() ports.ReleaseRepository {
	return releaserepo.NewGormReleaseRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) GateRepository() ports.GateRepository {
	return gaterepo.NewGormGateRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) EstimateRepository() ports.EstimateRepository {
	return estimaterepo.NewGormEstimateRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) WorkOrderRepository() ports.WorkOrderRepository {
	return workorderrepo.NewGormWorkOrderRepository(uow.conn(), uow)
}

func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate saved within this unit of work.
// Saving the same aggregate twice tracks it once.
func (uow *GormUnitOfWork) TrackAggregate(aggregate kernel.EventSource) {
	if aggregate == nil || slices.Contains(uow.tracked, aggregate) {
		return
	}
	uow.tracked = append(uow.tracked, aggregate)
}

func (uow *GormUnitOfWork) pendingEvents() []kernel.DomainEvent {
	var events []kernel.DomainEvent
	for _, aggregate := range uow.tracked {
		events = append(events, aggregate.DomainEvents()...)
	}
	return events
}

// conn is the open transaction, or the pool when none was begun.
func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}
