package ports

import (
	"context"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order aggregate.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes to an existing order aggregate.
	Update(ctx context.Context, aggregate *order.Order) error

	// Claim persists an order that moved New -> InProcess. The write only succeeds if the
	// stored row is still New; otherwise errs.PreconditionFailedError is returned and the
	// caller must abandon the transaction.
	Claim(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by id.
	// Returns errs.ObjectNotFoundError when the id is unknown.
	Get(ctx context.Context, id int64) (*order.Order, error)

	// FindEligible returns New orders in one of the regions with weight <= maxWeight,
	// lightest first, ties by ascending id. Rows locked by concurrent transactions are skipped.
	FindEligible(ctx context.Context, regions []kernel.Region, maxWeight decimal.Decimal) ([]*order.Order, error)

	// FindByCourier returns the courier's orders in the given status, ordered by id.
	FindByCourier(ctx context.Context, courierID int64, status order.Status) ([]*order.Order, error)


	// FindExistingIDs returns the subset of ids already stored.
	FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error)
}
