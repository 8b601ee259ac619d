package services

import (
	"cmp"
	"slices"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

// DispatchResult describes one assignment pass.
// AssignTime is nil when nothing was assigned.
type DispatchResult struct {
	AssignTime *time.Time
	OrderIDs   []int64
	Assigned   []*order.Order
}

// OrderDispatcher is a domain service that fills a free courier with New orders.
//
// Key responsibilities:
//   - Ordering candidates lightest first (ties by ascending id)
//   - Greedy capacity-bounded selection
//   - Mutating the selected orders and opening the courier's round only after selection
//
// Business rules:
//   - The scan stops at the first candidate that no longer fits the capacity;
//     later candidates are at least as heavy
//   - A candidate outside the courier's regions or working hours is skipped and the scan continues
//   - If nothing fits, neither the courier nor any order changes
//
// The selection is a greedy bin fill that maximises the number of orders, not the
// carried weight.
//
// Example usage:
//
//	dispatcher := services.NewOrderDispatcher()
//	result, err := dispatcher.Dispatch(c, candidates, time.Now())
//	if err != nil {
//	    // courier was busy or invalid
//	}
//	// persist result.Assigned and c
type OrderDispatcher struct{}

// NewOrderDispatcher creates a new OrderDispatcher instance.
func NewOrderDispatcher() OrderDispatcher {
	return OrderDispatcher{}
}

// Dispatch selects and assigns candidates to a free courier.
//
// Parameters:
//   - c: a Free courier
//   - candidates: New orders, typically pre-filtered by region and raw capacity
//   - now: the assignment instant
//
// Returns:
//   - DispatchResult: assigned orders and their ids in ascending order
//   - error: courier.ErrCourierIsBusy for a busy courier, validation errors for invalid inputs
func (d OrderDispatcher) Dispatch(c *courier.Courier, candidates []*order.Order, now time.Time) (DispatchResult, error) {
	if err := c.Validate(); err != nil {
		return DispatchResult{}, err
	}
	if c.IsBusy() {
		return DispatchResult{}, courier.ErrCourierIsBusy
	}

	selected, total, err := d.selectOrders(c, candidates)
	if err != nil {
		return DispatchResult{}, err
	}
	if len(selected) == 0 {
		return DispatchResult{OrderIDs: []int64{}}, nil
	}

	ids := make([]int64, 0, len(selected))
	for _, o := range selected {
		if err := o.Assign(c.ID(), now); err != nil {
			return DispatchResult{}, err
		}
		ids = append(ids, o.ID())
	}
	slices.Sort(ids)

	if err := c.StartRound(now, ids, total); err != nil {
		return DispatchResult{}, err
	}

	return DispatchResult{
		AssignTime: &now,
		OrderIDs:   ids,
		Assigned:   selected,
	}, nil
}

// selectOrders runs the greedy walk without mutating anything.
func (d OrderDispatcher) selectOrders(
	c *courier.Courier,
	candidates []*order.Order,
) ([]*order.Order, decimal.Decimal, error) {
	sorted := slices.Clone(candidates)
	slices.SortStableFunc(sorted, func(a, b *order.Order) int {
		if byWeight := a.Weight().Cmp(b.Weight()); byWeight != 0 {
			return byWeight
		}
		return cmp.Compare(a.ID(), b.ID())
	})

	capacity := c.Capacity()
	total := decimal.Zero
	var selected []*order.Order

	for _, o := range sorted {
		if err := o.Validate(); err != nil {
			return nil, decimal.Zero, err
		}
		if o.Status() != order.New {
			continue
		}
		if total.Add(o.Weight()).GreaterThan(capacity) {
			break
		}
		if !c.ServesRegion(o.Region()) || !c.IsAvailableFor(o.DeliveryHours()) {
			continue
		}
		selected = append(selected, o)
		total = total.Add(o.Weight())
	}

	return selected, total, nil
}
