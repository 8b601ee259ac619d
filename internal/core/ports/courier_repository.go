// Package ports defines the contracts between the application core and its adapters:
// repositories, the unit of work, the cache and the event publisher.
package ports

import (
	"context"

	"candydelivery/internal/core/domain/model/courier"
)

// CourierRepository defines the persistence contract for courier aggregates.
type CourierRepository interface {
	// Add persists a new courier aggregate.
	Add(ctx context.Context, courier *courier.Courier) error

	// Update persists changes to an existing courier aggregate.
	Update(ctx context.Context, courier *courier.Courier) error

	// Get retrieves a courier by id without locking.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id int64) (*courier.Courier, error)

	// GetForUpdate retrieves a courier and locks its row until the transaction ends.
	// Every command that mutates a courier's round loads it this way, which
	// serialises assignment, profile updates and completions for that courier.
	GetForUpdate(ctx context.Context, id int64) (*courier.Courier, error)

	// FindExistingIDs returns the subset of ids already stored.
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
