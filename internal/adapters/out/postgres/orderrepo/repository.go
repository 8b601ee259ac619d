package orderrepo

import (
	"context"
	"fmt"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/pkg/errs"

	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormOrderRepository implements OrderRepository using GORM.
type GormOrderRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

// aggregateTracker collects aggregates whose domain events must be flushed on commit.
type aggregateTracker interface {
	TrackAggregate(aggregate any)
}

// NewGormOrderRepository creates a new GORM order repository.
func NewGormOrderRepository(db *gorm.DB, tracker aggregateTracker) *GormOrderRepository {
	return &GormOrderRepository{
		db:      db,
		tracker: tracker,
	}
}

// Add saves a new order to the database.
func (r *GormOrderRepository) Add(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return errors.Wrapf(err, "insert order %d", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Update overwrites every column of an existing order.
func (r *GormOrderRepository) Update(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id = ?", dto.ID).Select("*").Updates(&dto)
	if result.Error != nil {
		return errors.Wrapf(result.Error, "update order %d", aggregate.ID())
	}

	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("order", aggregate.ID())
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Claim writes the assignment of an order only while the stored row is still New.
func (r *GormOrderRepository) Claim(ctx context.Context, aggregate *order.Order) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}
	if aggregate.Status() != order.InProcess {
		return errs.NewPreconditionFailedError(fmt.Sprintf("order %d is not in process", aggregate.ID()))
	}

	result := r.db.WithContext(ctx).
		Model(&OrderDTO{}).
		Where("id = ? AND status = ?", aggregate.ID(), int(order.New)).
		Updates(map[string]any{
			"status":      int(aggregate.Status()),
			"courier_id":  *aggregate.Courier(),
			"assign_time": *aggregate.AssignTime(),
		})
	if result.Error != nil {
		return errors.Wrapf(result.Error, "claim order %d", aggregate.ID())
	}

	if result.RowsAffected == 0 {
		return errs.NewPreconditionFailedError(fmt.Sprintf("order %d is no longer new", aggregate.ID()))
	}

	r.tracker.TrackAggregate(aggregate)
	return nil
}

// Get retrieves an order by ID.
func (r *GormOrderRepository) Get(ctx context.Context, id int64) (*order.Order, error) {
	var dto OrderDTO
	if err := r.db.WithContext(ctx).First(&dto, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("order", id)
		}
		return nil, errors.Wrapf(err, "select order %d", id)
	}

	return toDomain(dto)
}

// FindEligible returns New orders in the given regions that weigh at most maxWeight,
// lightest first. Rows locked by another transaction are skipped.
func (r *GormOrderRepository) FindEligible(
	ctx context.Context,
	regions []kernel.Region,
	maxWeight decimal.Decimal,
) ([]*order.Order, error) {
	if len(regions) == 0 {
		return []*order.Order{}, nil
	}

	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Clauses(clause.Locking{Strength: "UPDATE", Options: "SKIP LOCKED"}).
		Where("status = ? AND region = ANY(?) AND weight <= ?",
			int(order.New), pq.Array(kernel.RegionsToInt64(regions)), maxWeight).
		Order("weight, id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrap(err, "select eligible orders")
	}

	return toDomainList(dtos)
}

// FindByCourier returns the courier's orders in the given status, ordered by id.
func (r *GormOrderRepository) FindByCourier(ctx context.Context, courierID int64, status order.Status) ([]*order.Order, error) {
	var dtos []OrderDTO
	err := r.db.WithContext(ctx).
		Where("courier_id = ? AND status = ?", courierID, int(status)).
		Order("id").
		Find(&dtos).Error
	if err != nil {
		return nil, errors.Wrapf(err, "select orders of courier %d", courierID)
	}

	return toDomainList(dtos)
}

// FindExistingIDs returns the subset of ids that are already stored.
func (r *GormOrderRepository) FindExistingIDs(ctx context.Context, ids []int64) ([]int64, error) {
	existing := make([]int64, 0)
	if len(ids) == 0 {
		return existing, nil
	}

	if err := r.db.WithContext(ctx).Model(&OrderDTO{}).Where("id IN ?", ids).Order("id").Pluck("id", &existing).Error; err != nil {
		return nil, errors.Wrap(err, "find existing orders")
	}

	return existing, nil
}
