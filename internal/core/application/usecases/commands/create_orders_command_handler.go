package commands

import (
	"context"
	"errors"
	"fmt"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/pkg/errs"
)

// CreateOrdersCommandHandler validates each order of a batch and persists the
// valid ones as New orders in a single transaction.
type CreateOrdersCommandHandler struct {
	uowFactory OrderUoWFactory
}

// NewCreateOrdersCommandHandler creates a handler for order intake.
func NewCreateOrdersCommandHandler(uowFactory OrderUoWFactory) CreateOrdersCommandHandler {
	return CreateOrdersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch. Infrastructure errors abort the whole batch.
func (h *CreateOrdersCommandHandler) Handle(ctx context.Context, cmd CreateOrdersCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	candidates := make([]*order.Order, 0, len(cmd.Items()))
	seen := make(map[int64]struct{}, len(cmd.Items()))

	for _, item := range cmd.Items() {
		if _, dup := seen[item.ID]; dup {
			result.Failed = append(result.Failed, FailedItem{
				ID:     item.ID,
				Reason: errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d repeats in batch", item.ID)),
			})
			continue
		}
		seen[item.ID] = struct{}{}

		o, err := buildOrder(item)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: item.ID, Reason: err})
			continue
		}
		candidates = append(candidates, o)
	}

	if len(candidates) == 0 {
		return result, nil
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return BatchResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()

	ids := make([]int64, len(candidates))
	for i, o := range candidates {
		ids[i] = o.ID()
	}

	existing, err := orderRepo.FindExistingIDs(ctx, ids)
	if err != nil {
		return BatchResult{}, err
	}
	taken := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	for _, o := range candidates {
		if _, ok := taken[o.ID()]; ok {
			result.Failed = append(result.Failed, FailedItem{
				ID:     o.ID(),
				Reason: errs.NewValueIsInvalidErrorWithCause("order id", fmt.Errorf("%d already exists", o.ID())),
			})
			continue
		}
		if err = orderRepo.Add(ctx, o); err != nil {
			return BatchResult{}, err
		}
		result.Created = append(result.Created, o.ID())
	}

	if len(result.Created) == 0 {
		return result, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return BatchResult{}, err
	}

	return result, nil
}

func buildOrder(item OrderItem) (*order.Order, error) {
	region, regionErr := kernel.NewRegion(item.Region)
	hours, hoursErr := kernel.ParseTimeIntervals(item.DeliveryHours)
	if regionErr != nil || hoursErr != nil {
		return nil, errors.Join(regionErr, hoursErr)
	}

	return order.NewOrder(item.ID, item.Weight, region, hours)
}
