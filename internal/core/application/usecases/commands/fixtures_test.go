package commands_test

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

func newOrder(t *testing.T, id int64, weight string, region kernel.Region, delivery ...string) *order.Order {
	t.Helper()
	o, err := order.NewOrder(id, decimal.RequireFromString(weight), region, hours(t, delivery...))
	require.NoError(t, err)
	return o
}

// assignedOrder returns a copy of an order as it would be read back after assignment.
func assignedOrder(t *testing.T, id int64, weight string, region kernel.Region, courierID int64) *order.Order {
	t.Helper()
	o := newOrder(t, id, weight, region, "09:00-18:00")
	require.NoError(t, o.Assign(courierID, now))
	o.ClearDomainEvents()
	return o
}

// busyC1 returns C1 in a round with orders 3 (0.23 kg, region 12) and 5 (0.01 kg, region 1).
func busyC1(t *testing.T) (*courier.Courier, *order.Order, *order.Order) {
	t.Helper()
	c := newC1(t)
	o3 := assignedOrder(t, 3, "0.23", 12, c.ID())
	o5 := assignedOrder(t, 5, "0.01", 1, c.ID())
	require.NoError(t, c.StartRound(now, []int64{3, 5}, decimal.RequireFromString("0.24")))
	c.ClearDomainEvents()
	return c, o3, o5
}
