package commands

import (
	"context"
	"slices"
	"time"

	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/core/domain/services"
)

// AssignOrdersResult lists the courier's in-process orders.
// AssignTime is nil when the courier stayed free.
type AssignOrdersResult struct {
	AssignTime *time.Time
	OrderIDs   []int64
	// Repeated is true when the courier was already busy and nothing changed.
	Repeated bool
}

// AssignOrdersCommandHandler orchestrates order assignment for one courier.
//
// The courier row is locked for the whole transaction. A busy courier gets its
// current round back unchanged, which makes repeated calls side-effect free.
// A free courier is filled by OrderDispatcher and every selected order is claimed
// with a conditional write; if another transaction claimed one of them first, the
// whole assignment is rolled back.
//
// Example:
//
//	handler := NewAssignOrdersCommandHandler(uowFactory)
//	cmd, _ := NewAssignOrdersCommand(1, time.Now().UTC())
//	result, err := handler.Handle(ctx, cmd)
//	switch {
//	case errors.Is(err, errs.ErrObjectNotFound):
//	    // unknown courier
//	case err != nil:
//	    // infrastructure failure or lost claim race
//	}
type AssignOrdersCommandHandler struct {
	uowFactory UoWFactory
}

// NewAssignOrdersCommandHandler creates a handler for order assignment.
func NewAssignOrdersCommandHandler(uowFactory UoWFactory) AssignOrdersCommandHandler {
	return AssignOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the assignment command.
func (h AssignOrdersCommandHandler) Handle(ctx context.Context, cmd AssignOrdersCommand) (AssignOrdersResult, error) {
	if err := cmd.Validate(); err != nil {
		return AssignOrdersResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return AssignOrdersResult{}, err
	}

	if c.IsBusy() {
		current, findErr := orderRepo.FindByCourier(ctx, c.ID(), order.InProcess)
		if findErr != nil {
			return AssignOrdersResult{}, findErr
		}
		return AssignOrdersResult{
			AssignTime: c.AssignTime(),
			OrderIDs:   sortedIDs(current),
			Repeated:   true,
		}, nil
	}

	candidates, err := orderRepo.FindEligible(ctx, c.Regions(), c.Capacity())
	if err != nil {
		return AssignOrdersResult{}, err
	}

	dispatched, err := services.NewOrderDispatcher().Dispatch(c, candidates, cmd.At())
	if err != nil {
		return AssignOrdersResult{}, err
	}
	if len(dispatched.Assigned) == 0 {
		return AssignOrdersResult{OrderIDs: []int64{}}, nil
	}

	for _, o := range dispatched.Assigned {
		if err = orderRepo.Claim(ctx, o); err != nil {
			return AssignOrdersResult{}, err
		}
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return AssignOrdersResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AssignOrdersResult{}, err
	}

	return AssignOrdersResult{
		AssignTime: dispatched.AssignTime,
		OrderIDs:   dispatched.OrderIDs,
	}, nil
}

func sortedIDs(orders []*order.Order) []int64 {
	ids := make([]int64, len(orders))
	for i, o := range orders {
		ids[i] = o.ID()
	}
	slices.Sort(ids)
	return ids
}
