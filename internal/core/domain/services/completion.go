package services

import (
	"fmt"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/pkg/errs"
)

// CompletionResult describes the effect of completing one order.
type CompletionResult struct {
	OrderID int64
	// AlreadyComplete is true for a repeated completion; nothing was mutated.
	AlreadyComplete bool
	Settled         bool
	Counted         bool
}

// OrderCompleter finalises a single delivered order and settles the round when it empties.
//
// Preconditions, checked before any mutation:
//   - the order references a courier
//   - that courier is c
//   - the completion instant is not before the order's assign time
//
// A second completion of the same order returns the original order id without mutation.
type OrderCompleter struct{}

// NewOrderCompleter creates a new OrderCompleter instance.
func NewOrderCompleter() OrderCompleter {
	return OrderCompleter{}
}

// Complete marks o delivered by c at the given instant.
//
// Parameters:
//   - c: the courier reporting the delivery
//   - o: the delivered order
//   - inProcess: the courier's in-process orders, used to decide settlement
//   - at: completion instant
//
// Returns:
//   - CompletionResult: order id, idempotency flag and settlement outcome
//   - error: PreconditionFailedError when a precondition does not hold
func (s OrderCompleter) Complete(
	c *courier.Courier,
	o *order.Order,
	inProcess []*order.Order,
	at time.Time,
) (CompletionResult, error) {
	if err := c.Validate(); err != nil {
		return CompletionResult{}, err
	}
	if err := o.Validate(); err != nil {
		return CompletionResult{}, err
	}

	if o.Courier() == nil {
		return CompletionResult{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("order %d is not assigned", o.ID()))
	}
	if !o.IsAssignedTo(c.ID()) {
		return CompletionResult{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("order %d is assigned to another courier", o.ID()))
	}
	if o.Status() == order.Complete {
		return CompletionResult{OrderID: o.ID(), AlreadyComplete: true}, nil
	}
	if at.Before(*o.AssignTime()) {
		return CompletionResult{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("complete time is before assign time of order %d", o.ID()))
	}

	deliverySeconds, err := c.RecordCompletion(at, o.Weight())
	if err != nil {
		return CompletionResult{}, err
	}
	if err := o.Complete(at, deliverySeconds); err != nil {
		return CompletionResult{}, err
	}

	result := CompletionResult{OrderID: o.ID()}
	if remainingInProcess(inProcess, o) > 0 {
		return result, nil
	}

	counted, err := c.SettleRound(at)
	if err != nil {
		return CompletionResult{}, err
	}
	result.Settled = true
	result.Counted = counted
	return result, nil
}

func remainingInProcess(orders []*order.Order, completed *order.Order) int {
	n := 0
	for _, o := range orders {
		if o.ID() != completed.ID() && o.Status() == order.InProcess {
			n++
		}
	}
	return n
}
