package commands

import (
	"errors"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

var ErrCreateCouriersCommandIsNotConstructed = errors.New(
	"CreateCouriersCommand must be created via NewCreateCouriersCommand constructor",
)

// CourierItem is one raw courier of an intake batch. Items are validated
// individually by the handler so one bad item does not reject the batch.
type CourierItem struct {
	ID           int64
	Type         string
	Regions      []int64
	WorkingHours []string
}

// CreateCouriersCommand registers a batch of couriers.
//
// Example:
//
//	cmd, err := NewCreateCouriersCommand([]CourierItem{
//	    {ID: 1, Type: "foot", Regions: []int64{1, 12}, WorkingHours: []string{"11:35-14:05"}},
//	})
//	result, err := handler.Handle(ctx, cmd)
//	// result.Created == []int64{1}
type CreateCouriersCommand struct {
	items []CourierItem
	guard guard.ConstructorGuard
}

// NewCreateCouriersCommand creates the command. The batch must not be empty.
func NewCreateCouriersCommand(items []CourierItem) (CreateCouriersCommand, error) {
	if len(items) == 0 {
		return CreateCouriersCommand{}, errs.NewValueIsRequiredError("couriers")
	}

	return CreateCouriersCommand{
		items: items,
		guard: guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c CreateCouriersCommand) Validate() error {
	return c.guard.Validate(ErrCreateCouriersCommandIsNotConstructed)
}

// Items returns the raw batch.
func (c CreateCouriersCommand) Items() []CourierItem {
	return c.items
}
