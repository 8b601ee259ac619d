package commands

import (
	"context"
	"errors"
	"fmt"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
)

// CreateCouriersCommandHandler validates each courier of a batch and persists the
// valid ones in a single transaction.
//
// An item is rejected when its fields are invalid, when its id repeats an earlier
// item of the batch, or when the id already exists in storage.
//
// Example:
//
//	handler := NewCreateCouriersCommandHandler(uowFactory)
//	result, err := handler.Handle(ctx, cmd)
//	if err != nil {
//	    return err
//	}
//	if result.HasFailures() {
//	    // report result.FailedIDs()
//	}
type CreateCouriersCommandHandler struct {
	uowFactory CourierUoWFactory
}

// NewCreateCouriersCommandHandler creates a handler for courier intake.
func NewCreateCouriersCommandHandler(uowFactory CourierUoWFactory) CreateCouriersCommandHandler {
	return CreateCouriersCommandHandler{
		uowFactory: uowFactory,
	}
}

// Handle processes the batch. Infrastructure errors abort the whole batch.
func (h *CreateCouriersCommandHandler) Handle(ctx context.Context, cmd CreateCouriersCommand) (BatchResult, error) {
	if err := cmd.Validate(); err != nil {
		return BatchResult{}, err
	}

	var result BatchResult
	candidates := make([]*courier.Courier, 0, len(cmd.Items()))
	seen := make(map[int64]struct{}, len(cmd.Items()))

	for _, item := range cmd.Items() {
		if _, dup := seen[item.ID]; dup {
			result.Failed = append(result.Failed, FailedItem{
				ID:     item.ID,
				Reason: errs.NewValueIsInvalidErrorWithCause("courier id", fmt.Errorf("%d repeats in batch", item.ID)),
			})
			continue
		}
		seen[item.ID] = struct{}{}

		c, err := buildCourier(item)
		if err != nil {
			result.Failed = append(result.Failed, FailedItem{ID: item.ID, Reason: err})
			continue
		}
		candidates = append(candidates, c)
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

	courierRepo := uow.CourierRepository()

	ids := make([]int64, len(candidates))
	for i, c := range candidates {
		ids[i] = c.ID()
	}

	existing, err := courierRepo.FindExistingIDs(ctx, ids)
	if err != nil {
		return BatchResult{}, err
	}
	taken := make(map[int64]struct{}, len(existing))
	for _, id := range existing {
		taken[id] = struct{}{}
	}

	for _, c := range candidates {
		if _, ok := taken[c.ID()]; ok {
			result.Failed = append(result.Failed, FailedItem{
				ID:     c.ID(),
				Reason: errs.NewValueIsInvalidErrorWithCause("courier id", fmt.Errorf("%d already exists", c.ID())),
			})
			continue
		}
		if err = courierRepo.Add(ctx, c); err != nil {
			return BatchResult{}, err
		}
		result.Created = append(result.Created, c.ID())
	}

	if len(result.Created) == 0 {
		return result, nil
	}

	if err = uow.Commit(ctx); err != nil {
		return BatchResult{}, err
	}

	return result, nil
}

func buildCourier(item CourierItem) (*courier.Courier, error) {
	courierType, typeErr := courier.ParseType(item.Type)
	regions, regionsErr := kernel.NewRegions(item.Regions)
	hours, hoursErr := kernel.ParseTimeIntervals(item.WorkingHours)
	if typeErr != nil || regionsErr != nil || hoursErr != nil {
		return nil, errors.Join(typeErr, regionsErr, hoursErr)
	}

	return courier.NewCourier(item.ID, courierType, regions, hours)
}
