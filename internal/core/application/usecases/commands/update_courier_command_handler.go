package commands

import (
	"context"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/core/domain/services"
	"candydelivery/internal/core/ports"
)

// UpdateCourierResult is the courier snapshot after the update plus the reconciliation outcome.
type UpdateCourierResult struct {
	Courier *courier.Courier
	Evicted []int64
	Settled bool
}

// UpdateCourierCommandHandler applies a profile change and reconciles the courier's open round.
//
// The courier row is locked, the change is applied, in-process orders that no
// longer fit are evicted by ProfileReconciler, and every touched aggregate is
// saved in the same transaction. The cached courier info is dropped after commit.
type UpdateCourierCommandHandler struct {
	uowFactory UoWFactory
	cache      CacheInvalidator
}

// NewUpdateCourierCommandHandler creates a handler for courier profile updates.
func NewUpdateCourierCommandHandler(uowFactory UoWFactory, cache CacheInvalidator) UpdateCourierCommandHandler {
	return UpdateCourierCommandHandler{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

// Handle processes the update command.
func (h UpdateCourierCommandHandler) Handle(ctx context.Context, cmd UpdateCourierCommand) (UpdateCourierResult, error) {
	if err := cmd.Validate(); err != nil {
		return UpdateCourierResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return UpdateCourierResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	courierRepo := uow.CourierRepository()
	orderRepo := uow.OrderRepository()

	c, err := courierRepo.GetForUpdate(ctx, cmd.CourierID())
	if err != nil {
		return UpdateCourierResult{}, err
	}

	diff, err := c.ApplyProfile(cmd.Changes())
	if err != nil {
		return UpdateCourierResult{}, err
	}

	var inProcess []*order.Order
	if c.IsBusy() {
		inProcess, err = orderRepo.FindByCourier(ctx, c.ID(), order.InProcess)
		if err != nil {
			return UpdateCourierResult{}, err
		}
	}

	reconciled, err := services.NewProfileReconciler().Reconcile(c, diff, inProcess, cmd.At())
	if err != nil {
		return UpdateCourierResult{}, err
	}

	for _, o := range reconciled.Evicted {
		if err = orderRepo.Update(ctx, o); err != nil {
			return UpdateCourierResult{}, err
		}
	}

	if err = courierRepo.Update(ctx, c); err != nil {
		return UpdateCourierResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return UpdateCourierResult{}, err
	}

	// best effort, entries also expire by TTL
	_ = h.cache.Delete(ctx, ports.CourierInfoKey(c.ID()))

	return UpdateCourierResult{
		Courier: c,
		Evicted: reconciled.EvictedIDs(),
		Settled: reconciled.Settled,
	}, nil
}
