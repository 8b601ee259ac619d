package order

import (
	"errors"
	"fmt"
	"time"

	"candydelivery/internal/core/domain/model/events"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

	// MinWeight is the lightest accepted order.
	MinWeight = decimal.RequireFromString("0.01")

	// MaxWeight is the heaviest accepted order.
	MaxWeight = decimal.NewFromInt(50)
)

// weightPlaces is the number of fractional digits an order weight may carry.
const weightPlaces = 2

// Order represents a delivery order. It is the aggregate root for the order lifecycle
// from intake through assignment to completion.
//
// Order follows these invariants:
//   - id is positive and immutable
//   - weight is within [MinWeight, MaxWeight] with at most two fractional digits
//   - delivery hours are non-empty
//   - an order is InProcess iff it holds a courier reference and an assign time
//   - delivery time is set only at completion
type Order struct {
	id            int64
	weight        decimal.Decimal
	region        kernel.Region
	deliveryHours []kernel.TimeInterval
	status        Status

	// courierID is the assigned courier (nil while New)
	courierID *int64

	assignTime   *time.Time
	completeTime *time.Time

	// deliveryTime is measured in seconds
	deliveryTime *int64

	recorder events.Recorder
	guard    guard.ConstructorGuard
}

// NewOrder creates a New order with no courier assigned.
//
// Parameters:
//   - id: positive order identifier
//   - weight: order weight in kilograms
//   - region: delivery region
//   - deliveryHours: non-empty delivery windows
//
// Returns:
//   - *Order: the created order if all validations pass
//   - error: joined validation errors otherwise
//
// Example:
//
//	hours, _ := kernel.ParseTimeIntervals([]string{"09:00-18:00"})
//	o, err := order.NewOrder(3, decimal.RequireFromString("0.23"), 12, hours)
func NewOrder(id int64, weight decimal.Decimal, region kernel.Region, deliveryHours []kernel.TimeInterval) (*Order, error) {
	o := &Order{
		status: New,
		guard:  guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		o.setID(id),
		o.setWeight(weight),
		o.setRegion(region),
		o.setDeliveryHours(deliveryHours),
	); err != nil {
		return nil, err
	}

	return o, nil
}

// State carries the persisted attributes of an order for RestoreOrder.
type State struct {
	ID            int64
	Weight        decimal.Decimal
	Region        kernel.Region
	DeliveryHours []kernel.TimeInterval
	Status        Status
	CourierID     *int64
	AssignTime    *time.Time
	CompleteTime  *time.Time
	DeliveryTime  *int64
}

// RestoreOrder rebuilds an order from storage and checks that the stored state is consistent.
func RestoreOrder(state State) (*Order, error) {
	o, err := NewOrder(state.ID, state.Weight, state.Region, state.DeliveryHours)
	if err != nil {
		return nil, err
	}

	if err := state.Status.Validate(); err != nil {
		return nil, err
	}
	if err := state.Status.ValidateCanHaveCourier(state.CourierID != nil); err != nil {
		return nil, err
	}
	if state.Status != New && state.AssignTime == nil {
		return nil, errs.NewValueIsRequiredError("assign time")
	}
	if state.Status == Complete && (state.CompleteTime == nil || state.DeliveryTime == nil) {
		return nil, errs.NewValueIsRequiredError("complete time")
	}

	o.status = state.Status
	o.courierID = state.CourierID
	o.assignTime = state.AssignTime
	o.completeTime = state.CompleteTime
	o.deliveryTime = state.DeliveryTime

	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil {
		return ErrOrderIsNotConstructed
	}
	return o.guard.Validate(ErrOrderIsNotConstructed)
}

// IsEqual compares two orders by identifier.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id == other.id
}

// ID returns the order's identifier.
func (o *Order) ID() int64 {
	return o.id
}

// Weight returns the order weight.
func (o *Order) Weight() decimal.Decimal {
	return o.weight
}

// Region returns the delivery region.
func (o *Order) Region() kernel.Region {
	return o.region
}

// DeliveryHours returns a copy of the delivery windows.
func (o *Order) DeliveryHours() []kernel.TimeInterval {
	out := make([]kernel.TimeInterval, len(o.deliveryHours))
	copy(out, o.deliveryHours)
	return out
}

// Status returns the current lifecycle status.
func (o *Order) Status() Status {
	return o.status
}

// Courier returns the assigned courier's ID, or nil while the order is New.
func (o *Order) Courier() *int64 {
	return o.courierID
}

// AssignTime returns when the order was claimed, or nil while the order is New.
func (o *Order) AssignTime() *time.Time {
	return o.assignTime
}

// CompleteTime returns when the order was delivered, or nil.
func (o *Order) CompleteTime() *time.Time {
	return o.completeTime
}

// DeliveryTime returns the delivery time in seconds, or nil before completion.
func (o *Order) DeliveryTime() *int64 {
	return o.deliveryTime
}

// IsAssignedTo reports whether the order references the given courier.
func (o *Order) IsAssignedTo(courierID int64) bool {
	return o.courierID != nil && *o.courierID == courierID
}

// FitsHours reports whether any delivery window overlaps any of the given working hours.
func (o *Order) FitsHours(workingHours []kernel.TimeInterval) bool {
	return kernel.IntervalSetOverlaps(workingHours, o.deliveryHours)
}

// Assign claims a New order for a courier.
//
// Returns:
//   - nil on success, with status InProcess and courier/assign time set
//   - PreconditionFailedError if the order is not New
func (o *Order) Assign(courierID int64, at time.Time) error {
	if courierID <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}

	newStatus, err := o.status.Assign()
	if err != nil {
		return err
	}

	o.status = newStatus
	o.courierID = &courierID
	o.assignTime = &at
	return nil
}

// Evict returns an InProcess order to New, clearing its courier and assign time.
// The reason is recorded on the OrderEvicted event.
func (o *Order) Evict(reason string, at time.Time) error {
	newStatus, err := o.status.Release()
	if err != nil {
		return err
	}

	courierID := *o.courierID
	o.status = newStatus
	o.courierID = nil
	o.assignTime = nil
	o.recorder.Record(events.NewOrderEvicted(o.id, courierID, reason, at))
	return nil
}

// Complete marks an InProcess order delivered.
//
// Parameters:
//   - at: completion instant, must not precede the assign time
//   - deliverySeconds: elapsed seconds since the courier's previous settlement point
//
// Returns:
//   - PreconditionFailedError if the order is not InProcess or at precedes the assign time
func (o *Order) Complete(at time.Time, deliverySeconds int64) error {
	newStatus, err := o.status.Complete()
	if err != nil {
		return err
	}

	if at.Before(*o.assignTime) {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("complete time %s is before assign time %s",
				at.Format(time.RFC3339), o.assignTime.Format(time.RFC3339)),
		)
	}

	o.status = newStatus
	o.completeTime = &at
	o.deliveryTime = &deliverySeconds
	o.recorder.Record(events.NewOrderCompleted(o.id, *o.courierID, at, deliverySeconds))
	return nil
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (o *Order) DomainEvents() []events.DomainEvent {
	return o.recorder.Events()
}

// ClearDomainEvents drops recorded events once they are stored.
func (o *Order) ClearDomainEvents() {
	o.recorder.Clear()
}

func (o *Order) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("order id", id, 1, "unbounded")
	}
	o.id = id
	return nil
}

// setWeight enforces the weight bounds and precision.
func (o *Order) setWeight(weight decimal.Decimal) error {
	if weight.LessThan(MinWeight) || weight.GreaterThan(MaxWeight) {
		return errs.NewValueIsOutOfRangeError("weight", weight, MinWeight, MaxWeight)
	}
	if !weight.Equal(weight.Truncate(weightPlaces)) {
		return errs.NewValueIsInvalidErrorWithCause(
			"weight",
			fmt.Errorf("%s has more than %d decimal places", weight, weightPlaces),
		)
	}
	o.weight = weight
	return nil
}

func (o *Order) setRegion(region kernel.Region) error {
	if region <= 0 {
		return errs.NewValueIsOutOfRangeError("region", region, 1, "unbounded")
	}
	o.region = region
	return nil
}

func (o *Order) setDeliveryHours(hours []kernel.TimeInterval) error {
	if len(hours) == 0 {
		return errs.NewValueIsRequiredError("delivery hours")
	}
	for _, h := range hours {
		if err := h.Validate(); err != nil {
			return err
		}
	}
	o.deliveryHours = make([]kernel.TimeInterval, len(hours))
	copy(o.deliveryHours, hours)
	return nil
}
