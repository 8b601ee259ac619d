// Package courierrepo persists courier aggregates in PostgreSQL through GORM and
// maps rows back into domain entities.
package courierrepo

import (
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
)

// CourierDTO represents the database structure for persisting courier aggregates.
// Regions and working hours are stored as PostgreSQL arrays.
type CourierDTO struct {
	ID               int64           `gorm:"primaryKey;autoIncrement:false"`
	Type             string          `gorm:"type:varchar(8);not null"`
	Regions          pq.Int64Array   `gorm:"type:bigint[];not null"`
	WorkingHours     pq.StringArray  `gorm:"type:text[];not null"`
	Status           int             `gorm:"type:smallint;not null;index"`
	CurrentWeight    decimal.Decimal `gorm:"type:numeric(6,2);not null"`
	AssignTime       *time.Time
	LastCompleteTime *time.Time
	TypeInDelivery   *string `gorm:"type:varchar(8)"`
	CompletedInRound int     `gorm:"not null"`
	CompletedFoot    int     `gorm:"not null"`
	CompletedBike    int     `gorm:"not null"`
	CompletedCar     int     `gorm:"not null"`
}

// TableName overrides GORM's default naming to use "couriers".
func (CourierDTO) TableName() string {
	return "couriers"
}

func fromDomain(c *courier.Courier) CourierDTO {
	var typeInDelivery *string
	if t := c.TypeInDelivery(); t != nil {
		s := t.String()
		typeInDelivery = &s
	}

	completed := c.Completed()
	return CourierDTO{
		ID:               c.ID(),
		Type:             c.Type().String(),
		Regions:          kernel.RegionsToInt64(c.Regions()),
		WorkingHours:     kernel.FormatTimeIntervals(c.WorkingHours()),
		Status:           int(c.Status()),
		CurrentWeight:    c.CurrentWeight(),
		AssignTime:       c.AssignTime(),
		LastCompleteTime: c.LastCompleteTime(),
		TypeInDelivery:   typeInDelivery,
		CompletedInRound: c.CompletedInRound(),
		CompletedFoot:    completed.Foot,
		CompletedBike:    completed.Bike,
		CompletedCar:     completed.Car,
	}
}

func toDomain(dto CourierDTO) (*courier.Courier, error) {
	courierType, err := courier.ParseType(dto.Type)
	if err != nil {
		return nil, err
	}

	regions, err := kernel.NewRegions(dto.Regions)
	if err != nil {
		return nil, err
	}

	hours, err := kernel.ParseTimeIntervals(dto.WorkingHours)
	if err != nil {
		return nil, err
	}

	var typeInDelivery *courier.Type
	if dto.TypeInDelivery != nil {
		t, parseErr := courier.ParseType(*dto.TypeInDelivery)
		if parseErr != nil {
			return nil, parseErr
		}
		typeInDelivery = &t
	}

	return courier.RestoreCourier(courier.State{
		ID:               dto.ID,
		Type:             courierType,
		Regions:          regions,
		WorkingHours:     hours,
		Status:           courier.Status(dto.Status),
		CurrentWeight:    dto.CurrentWeight,
		AssignTime:       utc(dto.AssignTime),
		LastCompleteTime: utc(dto.LastCompleteTime),
		TypeInDelivery:   typeInDelivery,
		CompletedInRound: dto.CompletedInRound,
		Completed: courier.CompletedCounts{
			Foot: dto.CompletedFoot,
			Bike: dto.CompletedBike,
			Car:  dto.CompletedCar,
		},
	})
}

func utc(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := t.UTC()
	return &v
}
