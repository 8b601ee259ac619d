// Package queries contains read operations for retrieving system state.
// Implements the Query pattern for read operations in the CQRS architecture.
// Queries return read models shaped for a specific use case.
package queries

import (
	"errors"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCourierQueryIsNotConstructed = errors.New(
	"GetCourierQuery must be created via NewGetCourierQuery constructor",
)

// GetCourierQuery retrieves a courier profile together with its earnings and rating.
//
// Example:
//
//	query, err := NewGetCourierQuery(1)
//	info, err := handler.Handle(ctx, query)
//	if info.Rating != nil {
//	    fmt.Println(info.Rating.StringFixed(2))
//	}
type GetCourierQuery struct {
	courierID int64
	guard     guard.ConstructorGuard
}

// NewGetCourierQuery creates the query for a positive courier id.
func NewGetCourierQuery(courierID int64) (GetCourierQuery, error) {
	if courierID <= 0 {
		return GetCourierQuery{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	return GetCourierQuery{
		courierID: courierID,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the query was created through the constructor.
func (q GetCourierQuery) Validate() error {
	return q.guard.Validate(ErrGetCourierQueryIsNotConstructed)
}

// CourierID returns the requested courier.
func (q GetCourierQuery) CourierID() int64 {
	return q.courierID
}

// GetCourierQueryResponse is the courier info read model. It is also the cached form.
// Rating is nil until the courier has settled a round with deliveries.
type GetCourierQueryResponse struct {
	CourierID    int64            `json:"courier_id"`
	CourierType  string           `json:"courier_type"`
	Regions      []int64          `json:"regions"`
	WorkingHours []string         `json:"working_hours"`
	Earnings     int64            `json:"earnings"`
	Rating       *decimal.Decimal `json:"rating,omitempty"`
}
