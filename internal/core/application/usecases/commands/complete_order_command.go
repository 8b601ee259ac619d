package commands

import (
	"errors"
	"time"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

var ErrCompleteOrderCommandIsNotConstructed = errors.New(
	"CompleteOrderCommand must be created via NewCompleteOrderCommand constructor",
)

// CompleteOrderCommand reports that a courier delivered an order.
type CompleteOrderCommand struct {
	orderID      int64
	courierID    int64
	completeTime time.Time
	guard        guard.ConstructorGuard
}

// NewCompleteOrderCommand creates the command.
func NewCompleteOrderCommand(orderID, courierID int64, completeTime time.Time) (CompleteOrderCommand, error) {
	var orderErr, courierErr, timeErr error
	if orderID <= 0 {
		orderErr = errs.NewValueIsOutOfRangeError("order id", orderID, 1, "unbounded")
	}
	if courierID <= 0 {
		courierErr = errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	if completeTime.IsZero() {
		timeErr = errs.NewValueIsRequiredError("complete time")
	}
	if err := errors.Join(orderErr, courierErr, timeErr); err != nil {
		return CompleteOrderCommand{}, err
	}

	return CompleteOrderCommand{
		orderID:      orderID,
		courierID:    courierID,
		completeTime: completeTime,
		guard:        guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CompleteOrderCommand) Validate() error {
	return c.guard.Validate(ErrCompleteOrderCommandIsNotConstructed)
}

// OrderID returns the delivered order.
func (c CompleteOrderCommand) OrderID() int64 {
	return c.orderID
}

// CourierID returns the reporting courier.
func (c CompleteOrderCommand) CourierID() int64 {
	return c.courierID
}

// CompleteTime returns the delivery instant.
func (c CompleteOrderCommand) CompleteTime() time.Time {
	return c.completeTime
}
