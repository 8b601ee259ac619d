package services_test

import (
	"testing"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2026, 3, 1, 10, 0, 0, 0, time.UTC)

func hours(t *testing.T, values ...string) []kernel.TimeInterval {
	t.Helper()
	intervals, err := kernel.ParseTimeIntervals(values)
	require.NoError(t, err)
	return intervals
}

// newC1 builds the bike courier with regions {1, 12, 22} and hours 09:00-11:00, 11:35-14:05.
func newC1(t *testing.T) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(1, courier.Bike, []kernel.Region{1, 12, 22}, hours(t, "09:00-11:00", "11:35-14:05"))
	require.NoError(t, err)
	return c
}

func newCourier(t *testing.T, id int64, courierType courier.Type, regions []kernel.Region, working ...string) *courier.Courier {
	t.Helper()
	c, err := courier.NewCourier(id, courierType, regions, hours(t, working...))
	require.NoError(t, err)
	return c
}

func newOrder(t *testing.T, id int64, weight string, region kernel.Region, delivery ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, decimal.RequireFromString(weight), region, hours(t, delivery...))
	require.NoError(t, err)
	return o
}

// scenarioOrders returns O1..O4 where only O3 and O5 fit C1.
func scenarioOrders(t *testing.T) []*order.Order {
	t.Helper()
	return []*order.Order{
		newOrder(t, 1, "0.01", 2, "09:00-18:00"),  // region not served
		newOrder(t, 2, "0.05", 22, "16:00-21:00"), // hours do not overlap
		newOrder(t, 3, "0.23", 12, "09:00-18:00"),
		newOrder(t, 5, "0.01", 1, "09:00-12:00"),
	}
}

func weightOf(orders []*order.Order) decimal.Decimal {
	total := decimal.Zero
	for _, o := range orders {
		if o.Status() == order.InProcess {
			total = total.Add(o.Weight())
		}
	}
	return total
}

func decimalFromString(t *testing.T, s string) decimal.Decimal {
	t.Helper()
	d, err := decimal.NewFromString(s)
	require.NoError(t, err)
	return d
}
