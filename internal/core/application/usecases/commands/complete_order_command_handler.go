package commands

import (
	"context"

	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/core/domain/services"
	"candydelivery/internal/core/ports"
)

// CompleteOrderResult identifies the completed order and the round outcome.
type CompleteOrderResult struct {
	OrderID         int64
	AlreadyComplete bool
	Settled         bool
}

// CompleteOrderCommandHandler finalises an order delivery.
//
// The courier row is locked before the order is read, so completion is serialised
// with assignment and profile updates of the same courier. A repeated completion
// returns the same order id and writes nothing.
type CompleteOrderCommandHandler struct {
	uowFactory UoWFactory
	cache      CacheInvalidator
}

// NewCompleteOrderCommandHandler creates a handler for order completion.
func NewCompleteOrderCommandHandler(uowFactory UoWFactory, cache CacheInvalidator) CompleteOrderCommandHandler {
	return CompleteOrderCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the completion command.
//
// Returns errs.ObjectNotFoundError for an unknown courier or order and
// errs.PreconditionFailedError when the order is not assigned to the courier or
// the completion precedes the assignment.
func (h CompleteOrderCommandHandler) Handle(ctx context.Context, cmd CompleteOrderCommand) (CompleteOrderResult, error) {
	if err := cmd.Validate(); err != nil {
		return CompleteOrderResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return CompleteOrderResult{}, err
	}

	var inProcess []*order.Order
	if o.Status() == order.InProcess && o.IsAssignedTo(c.ID()) {
		inProcess, err = orderRepo.FindByCourier(ctx, c.ID(), order.InProcess)
		if err != nil {
			return CompleteOrderResult{}, err
		}
	}

	completed, err := services.NewOrderCompleter().Complete(c, o, inProcess, cmd.CompleteTime())
	if err != nil {
		return CompleteOrderResult{}, err
	}
	if completed.AlreadyComplete {
		return CompleteOrderResult{OrderID: completed.OrderID, AlreadyComplete: true}, nil
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return CompleteOrderResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return CompleteOrderResult{}, err
	}

	// best effort, entries also expire by TTL
	_ = h.cache.Delete(ctx, ports.CourierInfoKey(c.ID()))

	return CompleteOrderResult{
		OrderID: completed.OrderID,
		Settled: completed.Settled,
	}, nil
}
