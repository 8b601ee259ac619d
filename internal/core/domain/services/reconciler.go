package services

import (
	"cmp"
	"slices"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/order"
)

// Eviction reasons recorded on OrderEvicted events.
const (
	EvictReasonType    = "courier type changed"
	EvictReasonHours   = "working hours changed"
	EvictReasonRegions = "regions changed"
)

// ReconcileResult describes the effect of a profile change on an open round.
type ReconcileResult struct {
	Evicted []*order.Order
	// Settled is true when the round was closed because no in-process order remained.
	Settled bool
	// Counted is true when settlement incremented a per-type counter.
	Counted bool
}

// EvictedIDs returns the evicted order ids in eviction order.
func (r ReconcileResult) EvictedIDs() []int64 {
	ids := make([]int64, len(r.Evicted))
	for i, o := range r.Evicted {
		ids[i] = o.ID()
	}
	return ids
}

// ProfileReconciler re-evaluates a busy courier's in-process orders after a profile change.
//
// Sub-cases run independently for each changed field, in this order:
//   - type: while current weight exceeds the new capacity, evict the heaviest order
//     (ties by ascending id); the order that brings the weight within capacity is the last one evicted
//   - working hours: evict every order whose delivery windows miss all new working hours
//   - regions: evict every order whose region left the courier's regions
//
// If no in-process order remains afterwards, the round is settled.
type ProfileReconciler struct{}

// NewProfileReconciler creates a new ProfileReconciler instance.
func NewProfileReconciler() ProfileReconciler {
	return ProfileReconciler{}
}

// Reconcile applies evictions to inProcess (the courier's in-process orders) and
// settles the round when it empties. A free courier is left untouched.
func (r ProfileReconciler) Reconcile(
	c *courier.Courier,
	diff courier.ProfileDiff,
	inProcess []*order.Order,
	now time.Time,
) (ReconcileResult, error) {
	if err := c.Validate(); err != nil {
		return ReconcileResult{}, err
	}
	if !c.IsBusy() {
		return ReconcileResult{}, nil
	}

	remaining := make([]*order.Order, 0, len(inProcess))
	for _, o := range inProcess {
		if o.Status() == order.InProcess && o.IsAssignedTo(c.ID()) {
			remaining = append(remaining, o)
		}
	}

	var result ReconcileResult
	evict := func(o *order.Order, reason string) error {
		if err := o.Evict(reason, now); err != nil {
			return err
		}
		if err := c.ReleaseWeight(o.Weight()); err != nil {
			return err
		}
		result.Evicted = append(result.Evicted, o)
		return nil
	}

	if diff.TypeChanged {
		slices.SortStableFunc(remaining, func(a, b *order.Order) int {
			if byWeight := b.Weight().Cmp(a.Weight()); byWeight != 0 {
				return byWeight
			}
			return cmp.Compare(a.ID(), b.ID())
		})
		for len(remaining) > 0 && c.CurrentWeight().GreaterThan(c.Capacity()) {
			if err := evict(remaining[0], EvictReasonType); err != nil {
				return ReconcileResult{}, err
			}
			remaining = remaining[1:]
		}
	}

	if diff.HoursChanged {
		hours := c.WorkingHours()
		var err error
		remaining, err = evictWhere(remaining, func(o *order.Order) bool { return !o.FitsHours(hours) },
			func(o *order.Order) error { return evict(o, EvictReasonHours) })
		if err != nil {
			return ReconcileResult{}, err
		}
	}

	if diff.RegionsChanged {
		var err error
		remaining, err = evictWhere(remaining, func(o *order.Order) bool { return !c.ServesRegion(o.Region()) },
			func(o *order.Order) error { return evict(o, EvictReasonRegions) })
		if err != nil {
			return ReconcileResult{}, err
		}
	}

	if len(remaining) == 0 {
		counted, err := c.SettleRound(now)
		if err != nil {
			return ReconcileResult{}, err
		}
		result.Settled = true
		result.Counted = counted
	}

	return result, nil
}

// evictWhere evicts every order matching the predicate and returns the rest.
func evictWhere(
	orders []*order.Order,
	match func(*order.Order) bool,
	evict func(*order.Order) error,
) ([]*order.Order, error) {
	kept := make([]*order.Order, 0, len(orders))
	for _, o := range orders {
		if !match(o) {
			kept = append(kept, o)
			continue
		}
		if err := evict(o); err != nil {
			return nil, err
		}
	}
	return kept, nil
}
