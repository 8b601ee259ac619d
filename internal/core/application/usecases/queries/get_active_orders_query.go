package queries

import (
	"errors"
	"time"

	"candydelivery/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetActiveOrdersQueryIsNotConstructed = errors.New(
	"GetActiveOrdersQuery must be created via NewGetActiveOrdersQuery constructor",
)

// GetActiveOrdersQuery retrieves every order that is not yet delivered.
//
// Example:
//
//	orders, err := handler.Handle(ctx, NewGetActiveOrdersQuery())
//	for _, o := range orders {
//	    fmt.Printf("order %d is %s\n", o.OrderID, o.Status)
//	}
type GetActiveOrdersQuery struct {
	guard guard.ConstructorGuard
}

// NewGetActiveOrdersQuery creates the parameterless query.
func NewGetActiveOrdersQuery() GetActiveOrdersQuery {
	return GetActiveOrdersQuery{guard: guard.NewConstructorGuard()}
}

// Validate ensures the query was created through the constructor.
func (q GetActiveOrdersQuery) Validate() error {
	return q.guard.Validate(ErrGetActiveOrdersQueryIsNotConstructed)
}

// GetActiveOrdersQueryResponse is one New or InProcess order.
type GetActiveOrdersQueryResponse struct {
	OrderID       int64
	Weight        decimal.Decimal
	Region        int64
	DeliveryHours []string
	Status        string
	CourierID     *int64
	AssignTime    *time.Time
}
