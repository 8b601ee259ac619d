// Package postgres provides the GORM implementation of the Unit of Work pattern.
//
// A GormUnitOfWork wraps one database transaction. Repositories obtained from it
// run inside that transaction and register every aggregate they write. On Commit the
// domain events recorded by those aggregates are stored in the outbox within the same
// transaction, so state changes and their events are persisted atomically.
//
// Usage:
//
//	factory := NewGormUnitOfWorkFactory(db)
//	uow := factory.Create()
//	if err := uow.Begin(ctx); err != nil {
//	    return err
//	}
//	defer func() {
//	    _ = uow.Rollback(ctx)
//	}()
//
//	if err := uow.CourierRepository().Update(ctx, courier); err != nil {
//	    return err
//	}
//	return uow.Commit(ctx)
//
// Repositories obtained before Begin use the plain connection and are suitable for reads.
// Each UnitOfWork instance must be used by a single goroutine.
package postgres

import (
	"context"
	"slices"

	"candydelivery/internal/adapters/out/postgres/courierrepo"
	"candydelivery/internal/adapters/out/postgres/orderrepo"
	"candydelivery/internal/adapters/out/postgres/outboxrepo"
	"candydelivery/internal/core/domain/model/events"
	"candydelivery/internal/core/ports"

	"github.com/pkg/errors"
	"gorm.io/gorm"
)

// eventSource is implemented by aggregates that record domain events.
type eventSource interface {
	DomainEvents() []events.DomainEvent
	ClearDomainEvents()
}

// GormUnitOfWorkFactory creates UnitOfWork instances using GORM database connections.
type GormUnitOfWorkFactory struct {
	db *gorm.DB
}

// NewGormUnitOfWorkFactory creates a factory for GORM-based unit of work instances.
func NewGormUnitOfWorkFactory(db *gorm.DB) *GormUnitOfWorkFactory {
	return &GormUnitOfWorkFactory{db: db}
}

// Create produces a new UnitOfWork with its own transaction state and tracking.
func (f *GormUnitOfWorkFactory) Create() ports.UnitOfWork {
	return &GormUnitOfWork{
		db:                f.db,
		trackedAggregates: make([]any, 0),
	}
}

// GormUnitOfWork coordinates one database transaction and the aggregates written in it.
type GormUnitOfWork struct {
	db                *gorm.DB
	tx                *gorm.DB
	trackedAggregates []any
}

// Begin starts the transaction. Calling it again while a transaction is open is a no-op.
func (uow *GormUnitOfWork) Begin(ctx context.Context) error {
	if uow.tx != nil {
		return nil
	}

	uow.tx = uow.db.WithContext(ctx).Begin()
	if uow.tx.Error != nil {
		err := uow.tx.Error
		uow.tx = nil
		return errors.Wrap(err, "begin transaction")
	}

	return nil
}

// Commit stores pending domain events in the outbox and commits the transaction.
// Events are cleared from the aggregates only after a successful commit.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open.
func (uow *GormUnitOfWork) Commit(ctx context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	pending := uow.pendingEvents()
	if len(pending) > 0 {
		if err := outboxrepo.NewGormOutboxRepository(uow.tx).Add(ctx, pending...); err != nil {
			return err
		}
	}

	err := uow.tx.Commit().Error
	uow.tx = nil
	if err != nil {
		return errors.Wrap(err, "commit transaction")
	}

	for _, aggregate := range uow.trackedAggregates {
		if source, ok := aggregate.(eventSource); ok {
			source.ClearDomainEvents()
		}
	}
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return nil
}

// Rollback discards the transaction and forgets tracked aggregates.
//
// Returns gorm.ErrInvalidTransaction if no transaction is open, which is the
// case after a successful Commit.
func (uow *GormUnitOfWork) Rollback(_ context.Context) error {
	if uow.tx == nil {
		return gorm.ErrInvalidTransaction
	}

	err := uow.tx.Rollback().Error
	uow.tx = nil
	uow.trackedAggregates = uow.trackedAggregates[:0]
	return err
}

// CourierRepository returns a courier repository bound to the current transaction, or to
// the plain connection when no transaction is open.
func (uow *GormUnitOfWork) CourierRepository() ports.CourierRepository {
	return courierrepo.NewGormCourierRepository(uow.conn(), uow)
}

// OrderRepository returns an order repository bound to the current transaction, or to
// the plain connection when no transaction is open.
func (uow *GormUnitOfWork) OrderRepository() ports.OrderRepository {
	return orderrepo.NewGormOrderRepository(uow.conn(), uow)
}

// OutboxRepository returns an outbox repository bound to the current transaction.
func (uow *GormUnitOfWork) OutboxRepository() ports.OutboxRepository {
	return outboxrepo.NewGormOutboxRepository(uow.conn())
}

// TrackAggregate registers an aggregate written in this unit of work.
// Registering the same aggregate twice has no effect.
func (uow *GormUnitOfWork) TrackAggregate(aggregate any) {
	if slices.Contains(uow.trackedAggregates, aggregate) {
		return
	}
	uow.trackedAggregates = append(uow.trackedAggregates, aggregate)
}

func (uow *GormUnitOfWork) conn() *gorm.DB {
	if uow.tx != nil {
		return uow.tx
	}
	return uow.db
}

// pendingEvents lists the events of tracked aggregates in the order the aggregates were
// first written. Handlers write orders before their courier, so order events precede
// the courier's round events.
func (uow *GormUnitOfWork) pendingEvents() []events.DomainEvent {
	var pending []events.DomainEvent
	for _, aggregate := range uow.trackedAggregates {
		if source, ok := aggregate.(eventSource); ok {
			pending = append(pending, source.DomainEvents()...)
		}
	}
	return pending
}
