package http

import (
	"time"

	"github.com/shopspring/decimal"
)

type courierItemRequest struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type createCouriersRequest struct {
	Data []courierItemRequest `json:"data"`
}

type orderItemRequest struct {
	OrderID       int64           `json:"order_id"`
	Weight        decimal.Decimal `json:"weight"`
	Region        int64           `json:"region"`
	DeliveryHours []string        `json:"delivery_hours"`
}

type createOrdersRequest struct {
	Data []orderItemRequest `json:"data"`
}

// updateCourierRequest has no courier_id field, so a body that tries to change
// the id is rejected by strict decoding.
type updateCourierRequest struct {
	CourierType  *string  `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type assignOrdersRequest struct {
	CourierID int64 `json:"courier_id"`
}

type completeOrderRequest struct {
	CourierID    int64     `json:"courier_id"`
	OrderID      int64     `json:"order_id"`
	CompleteTime time.Time `json:"complete_time"`
}

type idResponse struct {
	ID int64 `json:"id"`
}

type createdCouriersResponse struct {
	Couriers []idResponse `json:"couriers"`
}

type createdOrdersResponse struct {
	Orders []idResponse `json:"orders"`
}

type validationErrorResponse struct {
	ValidationError map[string][]idResponse `json:"validation_error"`
}

type assignOrdersResponse struct {
	Orders     []idResponse `json:"orders"`
	AssignTime *time.Time   `json:"assign_time,omitempty"`
}

type completeOrderResponse struct {
	OrderID int64 `json:"order_id"`
}

type courierResponse struct {
	CourierID    int64    `json:"courier_id"`
	CourierType  string   `json:"courier_type"`
	Regions      []int64  `json:"regions"`
	WorkingHours []string `json:"working_hours"`
}

type courierInfoResponse struct {
	courierResponse
	Rating   *float64 `json:"rating,omitempty"`
	Earnings int64    `json:"earnings"`
}

type activeOrderResponse struct {
	OrderID       int64      `json:"order_id"`
	Weight        float64    `json:"weight"`
	Region        int64      `json:"region"`
	DeliveryHours []string   `json:"delivery_hours"`
	Status        string     `json:"status"`
	CourierID     *int64     `json:"courier_id,omitempty"`
	AssignTime    *time.Time `json:"assign_time,omitempty"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func toIDs(ids []int64) []idResponse {
	out := make([]idResponse, len(ids))
	for i, id := range ids {
		out[i] = idResponse{ID: id}
	}
	return out
}
