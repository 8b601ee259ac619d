package commands

import (
	"errors"
	"time"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

var ErrAssignOrdersCommandIsNotConstructed = errors.New(
	"AssignOrdersCommand must be created via NewAssignOrdersCommand constructor",
)

// AssignOrdersCommand asks to fill a courier with New orders.
//
// Example:
//
//	cmd, err := NewAssignOrdersCommand(courierID, time.Now().UTC())
//	result, err := handler.Handle(ctx, cmd)
//	// result.OrderIDs lists the courier's in-process orders
type AssignOrdersCommand struct {
	courierID int64
	at        time.Time
	guard     guard.ConstructorGuard
}

// NewAssignOrdersCommand creates the command. at is used as the assign time of a new round.
func NewAssignOrdersCommand(courierID int64, at time.Time) (AssignOrdersCommand, error) {
	if courierID <= 0 {
		return AssignOrdersCommand{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	if at.IsZero() {
		return AssignOrdersCommand{}, errs.NewValueIsRequiredError("assign time")
	}

	return AssignOrdersCommand{
		courierID: courierID,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c AssignOrdersCommand) Validate() error {
	return c.guard.Validate(ErrAssignOrdersCommandIsNotConstructed)
}

// CourierID returns the courier to fill.
func (c AssignOrdersCommand) CourierID() int64 {
	return c.courierID
}

// At returns the assignment instant.
func (c AssignOrdersCommand) At() time.Time {
	return c.at
}
