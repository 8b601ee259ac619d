// Package orderrepo provides data transfer objects and mapping functions for order persistence.
package orderrepo

import (
	"time"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// OrderDTO represents the database structure for persisting order aggregates.
// Status, region and courier are indexed for the candidate scan and the per-courier lookups.
type OrderDTO struct {
	ID            int64           `gorm:"primaryKey;autoIncrement:false"`
	Weight        decimal.Decimal `gorm:"type:numeric(4,2);not null"`
	Region        int64           `gorm:"not null;index"`
	DeliveryHours pq.StringArray  `gorm:"type:text[];not null"`
	Status        int             `gorm:"type:smallint;not null;index"`
	CourierID     *int64          `gorm:"index"`
	AssignTime    *time.Time
	CompleteTime  *time.Time
	DeliveryTime  *int64
}

// TableName specifies the database table name for order entities.
func (OrderDTO) TableName() string {
	return "orders"
}

func fromDomain(o *order.Order) OrderDTO {
	return OrderDTO{
		ID:            o.ID(),
		Weight:        o.Weight(),
		Region:        int64(o.Region()),
		DeliveryHours: kernel.FormatTimeIntervals(o.DeliveryHours()),
		Status:        int(o.Status()),
		CourierID:     o.Courier(),
		AssignTime:    o.AssignTime(),
		CompleteTime:  o.CompleteTime(),
		DeliveryTime:  o.DeliveryTime(),
	}
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	region, err := kernel.NewRegion(dto.Region)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeIntervals(dto.DeliveryHours)
	if err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.State{
		ID:            dto.ID,
		Weight:        dto.Weight,
		Region:        region,
		DeliveryHours: hours,
		Status:        order.Status(dto.Status),
		CourierID:     dto.CourierID,
		AssignTime:    utc(dto.AssignTime),
		CompleteTime:  utc(dto.CompleteTime),
		DeliveryTime:  dto.DeliveryTime,
	})
}

func toDomainList(dtos []OrderDTO) ([]*order.Order, error) {
	orders := make([]*order.Order, 0, len(dtos))
	for _, dto := range dtos {
		o, err := toDomain(dto)
		if err != nil {
			return nil, err
		}
		orders = append(orders, o)
	}
	return orders, nil
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
