package queries

import (
	"context"
	"time"

	"candydelivery/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetActiveOrdersQueryHandler reads active orders straight from the orders table.
type GetActiveOrdersQueryHandler struct {
	db *gorm.DB
}

// NewGetActiveOrdersQueryHandler creates a handler for active order queries.
func NewGetActiveOrdersQueryHandler(db *gorm.DB) GetActiveOrdersQueryHandler {
	return GetActiveOrdersQueryHandler{db: db}
}

// Handle returns orders that are not Complete, sorted by id.
func (h GetActiveOrdersQueryHandler) Handle(
	ctx context.Context,
	query GetActiveOrdersQuery,
) ([]GetActiveOrdersQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return nil, err
	}

	orders := make([]GetActiveOrdersQueryResponse, 0)

	rows, err := h.db.WithContext(ctx).Raw(`
		SELECT
			id,
			weight,
			region,
			delivery_hours,
			status,
			courier_id,
			assign_time
		FROM orders
		WHERE status <> ?
		ORDER BY id
	`, int(order.Complete)).Rows()
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	for rows.Next() {
		var (
			resp       GetActiveOrdersQueryResponse
			weight     decimal.Decimal
			hours      pq.StringArray
			status     int
			assignTime *time.Time
		)

		err = rows.Scan(
			&resp.OrderID,
			&weight,
			&resp.Region,
			&hours,
			&status,
			&resp.CourierID,
			&assignTime,
		)
		if err != nil {
			return nil, err
		}

		resp.Weight = weight
		resp.DeliveryHours = []string(hours)
		resp.Status = order.Status(status).String()
		if assignTime != nil {
			utc := assignTime.UTC()
			resp.AssignTime = &utc
		}
		orders = append(orders, resp)
	}

	if err = rows.Err(); err != nil {
		return nil, err
	}

	return orders, nil
}
