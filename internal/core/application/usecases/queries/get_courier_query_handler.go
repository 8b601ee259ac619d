package queries

import (
	"context"
	"encoding/json"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/core/domain/services"
	"candydelivery/internal/core/ports"
)

// CourierReader loads a courier without locking.
type CourierReader interface {
	Get(ctx context.Context, id int64) (*courier.Courier, error)
}

// CourierOrdersReader lists a courier's orders in a given status.
type CourierOrdersReader interface {
	FindByCourier(ctx context.Context, courierID int64, status order.Status) ([]*order.Order, error)
}

// GetCourierQueryHandler builds the courier info read model.
//
// Results are cached under ports.CourierInfoKey for ttl. Commands that change a
// courier's profile or counters drop the entry after commit. A result computed from
// rows read before such a drop is not stored. Cache failures fall back to reading
// the database.
type GetCourierQueryHandler struct {
	couriers CourierReader
	orders   CourierOrdersReader
	cache    ports.Cache
	ttl      time.Duration
	rating   services.RatingCalculator
}

// NewGetCourierQueryHandler creates a handler for courier info queries.
func NewGetCourierQueryHandler(
	couriers CourierReader,
	orders CourierOrdersReader,
	cache ports.Cache,
	ttl time.Duration,
) GetCourierQueryHandler {
	return GetCourierQueryHandler{
		couriers: couriers,
		orders:   orders,
		cache:    cache,
		ttl:      ttl,
		rating:   services.NewRatingCalculator(),
	}
}

// Handle returns the courier info or errs.ObjectNotFoundError for an unknown id.
func (h GetCourierQueryHandler) Handle(ctx context.Context, query GetCourierQuery) (GetCourierQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCourierQueryResponse{}, err
	}

	key := ports.CourierInfoKey(query.CourierID())
	if cached, ok := h.fromCache(ctx, key); ok {
		return cached, nil
	}

	generation, generationErr := h.cache.Generation(ctx, key)

	c, err := h.couriers.Get(ctx, query.CourierID())
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	completed, err := h.orders.FindByCourier(ctx, c.ID(), order.Complete)
	if err != nil {
		return GetCourierQueryResponse{}, err
	}

	response := GetCourierQueryResponse{
		CourierID:    c.ID(),
		CourierType:  c.Type().String(),
		Regions:      kernel.RegionsToInt64(c.Regions()),
		WorkingHours: kernel.FormatTimeIntervals(c.WorkingHours()),
		Earnings:     h.rating.Earnings(c),
		Rating:       h.rating.Rating(c, completed),
	}

	if generationErr == nil {
		if payload, marshalErr := json.Marshal(response); marshalErr == nil {
			_, _ = h.cache.SetIfGeneration(ctx, key, payload, h.ttl, generation)
		}
	}

	return response, nil
}

func (h GetCourierQueryHandler) fromCache(ctx context.Context, key string) (GetCourierQueryResponse, bool) {
	payload, ok, err := h.cache.Get(ctx, key)
	if err != nil || !ok {
		return GetCourierQueryResponse{}, false
	}

	var response GetCourierQueryResponse
	if err = json.Unmarshal(payload, &response); err != nil {
		return GetCourierQueryResponse{}, false
	}
	return response, true
}
