package commands

import (
	"errors"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrCreateOrdersCommandIsNotConstructed = errors.New(
	"CreateOrdersCommand must be created via NewCreateOrdersCommand constructor",
)

// OrderItem is one raw order of an intake batch.
type OrderItem struct {
	ID            int64
	Weight        decimal.Decimal
	Region        int64
	DeliveryHours []string
}

// CreateOrdersCommand registers a batch of orders.
type CreateOrdersCommand struct {
	items []OrderItem
	guard guard.ConstructorGuard
}

// NewCreateOrdersCommand creates the command. The batch must not be empty.
func NewCreateOrdersCommand(items []OrderItem) (CreateOrdersCommand, error) {
	if len(items) == 0 {
		return CreateOrdersCommand{}, errs.NewValueIsRequiredError("orders")
	}

	return CreateOrdersCommand{
		items: items,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateOrdersCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrdersCommandIsNotConstructed)
}

// Items returns the raw batch.
func (c CreateOrdersCommand) Items() []OrderItem {
	return c.items
}
