package services_test

import (
	"fmt"
	"testing"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"
	"candydelivery/internal/core/domain/services"
	"candydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOrderDispatcher_Dispatch(t *testing.T) {
	t.Run("assigns the fitting orders of the reference scenario", func(t *testing.T) {
		c := newC1(t)
		candidates := scenarioOrders(t)

		result, err := services.NewOrderDispatcher().Dispatch(c, candidates, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{3, 5}, result.OrderIDs)
		require.NotNil(t, result.AssignTime)
		assert.Equal(t, now, *result.AssignTime)

		assert.Equal(t, order.New, candidates[0].Status())
		assert.Equal(t, order.New, candidates[1].Status())
		assert.Equal(t, order.InProcess, candidates[2].Status())
		assert.Equal(t, order.InProcess, candidates[3].Status())
		assert.True(t, candidates[2].IsAssignedTo(1))

		assert.Equal(t, courier.Busy, c.Status())
		assert.True(t, c.CurrentWeight().Equal(decimalFromString(t, "0.24")))
		assert.Equal(t, now, *c.AssignTime())
		assert.Equal(t, now, *c.LastCompleteTime())
		assert.Equal(t, courier.Bike, *c.TypeInDelivery())
	})

	t.Run("stops at the first order over capacity", func(t *testing.T) {
		c := newCourier(t, 2, courier.Foot, []kernel.Region{1}, "08:00-20:00")
		candidates := []*order.Order{
			newOrder(t, 10, "6", 1, "09:00-10:00"),
			newOrder(t, 11, "3", 1, "09:00-10:00"),
			newOrder(t, 12, "2", 1, "09:00-10:00"),
			newOrder(t, 13, "0.5", 1, "21:00-22:00"), // lightest, but off hours
		}

		result, err := services.NewOrderDispatcher().Dispatch(c, candidates, now)

		require.NoError(t, err)
		// 2 + 3 = 5; adding 6 would exceed 10, so the scan stops
		assert.Equal(t, []int64{11, 12}, result.OrderIDs)
		assert.Equal(t, order.New, candidates[0].Status())
		assert.True(t, c.CurrentWeight().Equal(decimalFromString(t, "5")))
	})

	t.Run("ties are broken by ascending id", func(t *testing.T) {
		c := newCourier(t, 2, courier.Foot, []kernel.Region{1}, "08:00-20:00")
		candidates := []*order.Order{
			newOrder(t, 22, "5", 1, "09:00-10:00"),
			newOrder(t, 21, "5", 1, "09:00-10:00"),
			newOrder(t, 20, "5", 1, "09:00-10:00"),
		}

		result, err := services.NewOrderDispatcher().Dispatch(c, candidates, now)

		require.NoError(t, err)
		assert.Equal(t, []int64{20, 21}, result.OrderIDs)
		assert.Equal(t, order.New, candidates[0].Status())
	})

	t.Run("nothing fits leaves everything untouched", func(t *testing.T) {
		c := newC1(t)
		candidates := []*order.Order{newOrder(t, 1, "0.01", 2, "09:00-18:00")}

		result, err := services.NewOrderDispatcher().Dispatch(c, candidates, now)

		require.NoError(t, err)
		assert.Empty(t, result.OrderIDs)
		assert.NotNil(t, result.OrderIDs)
		assert.Nil(t, result.AssignTime)
		assert.Equal(t, courier.Free, c.Status())
		assert.Empty(t, c.DomainEvents())
	})

	t.Run("non-new candidates are skipped", func(t *testing.T) {
		c := newC1(t)
		taken := newOrder(t, 3, "0.23", 12, "09:00-18:00")
		require.NoError(t, taken.Assign(99, now))

		result, err := services.NewOrderDispatcher().Dispatch(c, []*order.Order{taken}, now)

		require.NoError(t, err)
		assert.Empty(t, result.OrderIDs)
		assert.True(t, taken.IsAssignedTo(99))
	})

	t.Run("busy courier is rejected", func(t *testing.T) {
		c := newC1(t)
		_, err := services.NewOrderDispatcher().Dispatch(c, scenarioOrders(t), now)
		require.NoError(t, err)

		_, err = services.NewOrderDispatcher().Dispatch(c, scenarioOrders(t), now)
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("capacity invariant holds for a large pool", func(t *testing.T) {
		c := newCourier(t, 3, courier.Bike, []kernel.Region{1, 2}, "00:00-23:59")
		var candidates []*order.Order
		for i := int64(1); i <= 40; i++ {
			weight := fmt.Sprintf("%d.%02d", i%5, (i*7)%100)
			candidates = append(candidates, newOrder(t, i, weight, kernel.Region(1+i%2), "10:00-11:00"))
		}

		_, err := services.NewOrderDispatcher().Dispatch(c, candidates, now)

		require.NoError(t, err)
		assert.True(t, weightOf(candidates).LessThanOrEqual(c.Capacity()))
		assert.True(t, weightOf(candidates).Equal(c.CurrentWeight()))
	})
}
