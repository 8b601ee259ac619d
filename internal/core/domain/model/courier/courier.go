package courier

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"candydelivery/internal/core/domain/model/events"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

// Domain errors for courier operations.
var (
	// ErrCourierIsNotConstructed is returned when using an improperly initialized Courier.
	ErrCourierIsNotConstructed = errors.New("Courier must be created via NewCourier constructor")
	// ErrCourierIsBusy is returned when a round is started for a courier that already has one.
	ErrCourierIsBusy = errs.NewPreconditionFailedError("courier is busy")
	// ErrCourierIsFree is returned by round operations that require an open round.
	ErrCourierIsFree = errs.NewPreconditionFailedError("courier has no open delivery round")
)

// Courier represents a delivery courier. It is the aggregate root that owns the courier's
// profile, its current delivery round and its lifetime completion counters.
//
// Key responsibilities:
//   - Eligibility predicates used by order assignment (region, remaining capacity, hours)
//   - Opening a delivery round and freezing the courier type for earnings attribution
//   - Tracking in-round weight and completions
//   - Settling the round and incrementing exactly one per-type counter when anything was delivered
//
// Business rules:
//   - Regions and working hours are never empty
//   - Current weight never exceeds the lifting capacity of the current type once reconciled
//   - Per-type counters are mutated only by SettleRound
//
// Example usage:
//
//	hours, _ := kernel.ParseTimeIntervals([]string{"09:00-11:00", "11:35-14:05"})
//	c, err := courier.NewCourier(1, courier.Bike, []kernel.Region{1, 12, 22}, hours)
//	if err != nil {
//	    // Handle construction error
//	}
type Courier struct {
	id           int64
	courierType  Type
	regions      []kernel.Region
	workingHours []kernel.TimeInterval
	status       Status

	// currentWeight is the sum of weights of in-process orders
	currentWeight decimal.Decimal

	// assignTime is set when a round starts and cleared on settlement
	assignTime *time.Time
	// lastCompleteTime is the baseline for the next delivery-time computation
	lastCompleteTime *time.Time
	// typeInDelivery is the type frozen at round start
	typeInDelivery *Type
	// completedInRound counts deliveries in the open round
	completedInRound int

	completed CompletedCounts

	recorder events.Recorder
	guard    guard.ConstructorGuard
}

// NewCourier creates a Free courier with no history.
//
// Parameters:
//   - id: positive courier identifier
//   - courierType: foot, bike or car
//   - regions: non-empty list of served regions
//   - workingHours: non-empty list of working intervals
//
// Returns:
//   - *Courier: a fully initialized courier
//   - error: joined validation errors if any parameter is invalid
func NewCourier(id int64, courierType Type, regions []kernel.Region, workingHours []kernel.TimeInterval) (*Courier, error) {
	courier := &Courier{
		status:        Free,
		currentWeight: decimal.Zero,
		guard:         guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		courier.setID(id),
		courier.setType(courierType),
		courier.setRegions(regions),
		courier.setWorkingHours(workingHours),
	); err != nil {
		return nil, err
	}

	return courier, nil
}

// State carries the persisted attributes of a courier for RestoreCourier.
type State struct {
	ID               int64
	Type             Type
	Regions          []kernel.Region
	WorkingHours     []kernel.TimeInterval
	Status           Status
	CurrentWeight    decimal.Decimal
	AssignTime       *time.Time
	LastCompleteTime *time.Time
	TypeInDelivery   *Type
	CompletedInRound int
	Completed        CompletedCounts
}

// RestoreCourier reconstructs a Courier aggregate from persistent storage and
// verifies that round fields agree with the status.
func RestoreCourier(state State) (*Courier, error) {
	courier, err := NewCourier(state.ID, state.Type, state.Regions, state.WorkingHours)
	if err != nil {
		return nil, err
	}

	if err := state.Status.Validate(); err != nil {
		return nil, err
	}
	if state.CurrentWeight.IsNegative() {
		return nil, errs.NewValueIsOutOfRangeError("current weight", state.CurrentWeight, 0, state.Type.Capacity())
	}
	if state.CompletedInRound < 0 || state.Completed.Foot < 0 || state.Completed.Bike < 0 || state.Completed.Car < 0 {
		return nil, errs.NewValueIsInvalidError("completed counters")
	}

	if state.Status == Busy {
		if state.AssignTime == nil || state.LastCompleteTime == nil {
			return nil, errs.NewValueIsRequiredError("assign time")
		}
		if state.TypeInDelivery == nil {
			return nil, errs.NewValueIsRequiredError("type in delivery")
		}
		if err := state.TypeInDelivery.Validate(); err != nil {
			return nil, err
		}
	}

	courier.status = state.Status
	courier.currentWeight = state.CurrentWeight
	courier.assignTime = state.AssignTime
	courier.lastCompleteTime = state.LastCompleteTime
	courier.typeInDelivery = state.TypeInDelivery
	courier.completedInRound = state.CompletedInRound
	courier.completed = state.Completed

	return courier, nil
}

// IsEqual compares two couriers by identifier.
func (c *Courier) IsEqual(other *Courier) bool {
	return other != nil && c.id == other.id
}

// Validate ensures the courier was created through a constructor.
func (c *Courier) Validate() error {
	if c == nil {
		return ErrCourierIsNotConstructed
	}
	return c.guard.Validate(ErrCourierIsNotConstructed)
}

// ID returns the courier identifier.
func (c *Courier) ID() int64 {
	return c.id
}

// Type returns the current courier type.
func (c *Courier) Type() Type {
	return c.courierType
}

// Regions returns a copy of the served regions.
func (c *Courier) Regions() []kernel.Region {
	return slices.Clone(c.regions)
}

// WorkingHours returns a copy of the working intervals.
func (c *Courier) WorkingHours() []kernel.TimeInterval {
	return slices.Clone(c.workingHours)
}

// Status returns the courier's availability.
func (c *Courier) Status() Status {
	return c.status
}

// IsBusy reports whether a delivery round is open.
func (c *Courier) IsBusy() bool {
	return c.status == Busy
}

// Capacity returns the lifting capacity of the current type.
func (c *Courier) Capacity() decimal.Decimal {
	return c.courierType.Capacity()
}

// CurrentWeight returns the weight of in-process orders.
func (c *Courier) CurrentWeight() decimal.Decimal {
	return c.currentWeight
}

// RemainingCapacity returns capacity minus current weight, never below zero.
func (c *Courier) RemainingCapacity() decimal.Decimal {
	remaining := c.Capacity().Sub(c.currentWeight)
	if remaining.IsNegative() {
		return decimal.Zero
	}
	return remaining
}

// AssignTime returns the start of the open round, or nil.
func (c *Courier) AssignTime() *time.Time {
	return c.assignTime
}

// LastCompleteTime returns the baseline for the next delivery-time computation, or nil.
func (c *Courier) LastCompleteTime() *time.Time {
	return c.lastCompleteTime
}

// TypeInDelivery returns the type frozen at round start, or nil.
func (c *Courier) TypeInDelivery() *Type {
	return c.typeInDelivery
}

// CompletedInRound returns the number of deliveries in the open round.
func (c *Courier) CompletedInRound() int {
	return c.completedInRound
}

// Completed returns the lifetime per-type counters.
func (c *Courier) Completed() CompletedCounts {
	return c.completed
}

// ServesRegion reports whether the region is one of the courier's regions.
func (c *Courier) ServesRegion(region kernel.Region) bool {
	return slices.Contains(c.regions, region)
}

// HasCapacityFor reports whether weight fits into the remaining headroom.
func (c *Courier) HasCapacityFor(weight decimal.Decimal) bool {
	return weight.LessThanOrEqual(c.Capacity().Sub(c.currentWeight))
}

// IsAvailableFor reports whether any working interval overlaps any of the delivery windows.
func (c *Courier) IsAvailableFor(deliveryHours []kernel.TimeInterval) bool {
	return kernel.IntervalSetOverlaps(c.workingHours, deliveryHours)
}

// StartRound opens a delivery round for the given already-claimed orders.
//
// Parameters:
//   - at: assignment instant, becomes both assign time and the delivery-time baseline
//   - orderIDs: identifiers of the claimed orders, at least one
//   - weight: their total weight, must fit into the capacity
//
// Returns:
//   - ErrCourierIsBusy if a round is already open
//   - ValueIsOutOfRangeError if the weight exceeds the capacity
func (c *Courier) StartRound(at time.Time, orderIDs []int64, weight decimal.Decimal) error {
	if c.status != Free {
		return ErrCourierIsBusy
	}
	if len(orderIDs) == 0 {
		return errs.NewValueIsRequiredError("order ids")
	}
	if !weight.IsPositive() || weight.GreaterThan(c.Capacity()) {
		return errs.NewValueIsOutOfRangeError("round weight", weight, 0, c.Capacity())
	}

	frozen := c.courierType
	c.status = Busy
	c.assignTime = &at
	c.lastCompleteTime = &at
	c.currentWeight = weight
	c.typeInDelivery = &frozen
	c.completedInRound = 0
	c.recorder.Record(events.NewOrdersAssigned(c.id, slices.Clone(orderIDs), at))
	return nil
}

// ReleaseWeight subtracts an evicted order's weight from the round.
func (c *Courier) ReleaseWeight(weight decimal.Decimal) error {
	if c.status != Busy {
		return ErrCourierIsFree
	}
	if weight.GreaterThan(c.currentWeight) {
		return errs.NewValueIsOutOfRangeError("released weight", weight, 0, c.currentWeight)
	}
	c.currentWeight = c.currentWeight.Sub(weight)
	return nil
}

// RecordCompletion books one delivered order into the open round.
//
// The delivery time is the number of whole seconds between the previous settlement
// point (round start or previous completion) and at; it is clamped at zero when
// completions are reported out of order. The baseline then moves to at.
//
// Returns:
//   - deliverySeconds: the delivery time to store on the order
//   - error: ErrCourierIsFree when no round is open
func (c *Courier) RecordCompletion(at time.Time, weight decimal.Decimal) (int64, error) {
	if c.status != Busy {
		return 0, ErrCourierIsFree
	}
	if weight.GreaterThan(c.currentWeight) {
		return 0, errs.NewValueIsOutOfRangeError("completed weight", weight, 0, c.currentWeight)
	}

	deliverySeconds := int64(at.Sub(*c.lastCompleteTime) / time.Second)
	if deliverySeconds < 0 {
		deliverySeconds = 0
	}

	c.lastCompleteTime = &at
	c.completedInRound++
	c.currentWeight = c.currentWeight.Sub(weight)
	return deliverySeconds, nil
}

// SettleRound closes the open round.
//
// The courier becomes Free with round fields cleared. If at least one order was
// delivered in the round, the counter of the type frozen at round start grows by one.
//
// Returns:
//   - counted: whether a per-type counter was incremented
//   - error: ErrCourierIsFree when no round is open
func (c *Courier) SettleRound(at time.Time) (bool, error) {
	if c.status != Busy {
		return false, ErrCourierIsFree
	}

	var frozen Type
	if c.typeInDelivery != nil {
		frozen = *c.typeInDelivery
	}

	completed := c.completedInRound
	counted := completed > 0
	if counted {
		c.completed.increment(frozen)
	}

	c.status = Free
	c.assignTime = nil
	c.lastCompleteTime = nil
	c.currentWeight = decimal.Zero
	c.completedInRound = 0
	c.typeInDelivery = nil
	c.recorder.Record(events.NewRoundSettled(c.id, frozen.String(), completed, at))
	return counted, nil
}

// DomainEvents returns events recorded since the last ClearDomainEvents.
func (c *Courier) DomainEvents() []events.DomainEvent {
	return c.recorder.Events()
}

// ClearDomainEvents drops recorded events once they are stored.
func (c *Courier) ClearDomainEvents() {
	c.recorder.Clear()
}

func (c *Courier) setID(id int64) error {
	if id <= 0 {
		return errs.NewValueIsOutOfRangeError("courier id", id, 1, "unbounded")
	}
	c.id = id
	return nil
}

func (c *Courier) setType(t Type) error {
	if err := t.Validate(); err != nil {
		return err
	}
	c.courierType = t
	return nil
}

func (c *Courier) setRegions(regions []kernel.Region) error {
	if len(regions) == 0 {
		return errs.NewValueIsRequiredError("regions")
	}
	for _, r := range regions {
		if r <= 0 {
			return errs.NewValueIsOutOfRangeError("region", r, 1, "unbounded")
		}
	}
	c.regions = slices.Clone(regions)
	return nil
}

func (c *Courier) setWorkingHours(hours []kernel.TimeInterval) error {
	if len(hours) == 0 {
		return errs.NewValueIsRequiredError("working hours")
	}
	for i, h := range hours {
		if err := h.Validate(); err != nil {
			return errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("working hours[%d]", i), err)
		}
	}
	c.workingHours = slices.Clone(hours)
	return nil
}
