package courier_test

import (
	"testing"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCourier_ApplyProfile(t *testing.T) {
	t.Run("empty update", func(t *testing.T) {
		c := createValidCourier(t, courier.Foot)
		_, err := c.ApplyProfile(courier.ProfileChanges{})
		require.ErrorIs(t, err, errs.ErrPreconditionFailed)
	})

	t.Run("partial update touches only supplied fields", func(t *testing.T) {
		c := createValidCourier(t, courier.Foot)

		diff, err := c.ApplyProfile(courier.ProfileChanges{Regions: []kernel.Region{5}})

		require.NoError(t, err)
		assert.Equal(t, courier.ProfileDiff{RegionsChanged: true}, diff)
		assert.Equal(t, []kernel.Region{5}, c.Regions())
		assert.Equal(t, courier.Foot, c.Type())
		assert.Equal(t, []string{"09:00-11:00", "11:35-14:05"}, kernel.FormatTimeIntervals(c.WorkingHours()))
	})

	t.Run("type change updates capacity", func(t *testing.T) {
		c := createValidCourier(t, courier.Foot)
		car := courier.Car

		diff, err := c.ApplyProfile(courier.ProfileChanges{Type: &car, WorkingHours: hours(t, "08:00-09:00")})

		require.NoError(t, err)
		assert.True(t, diff.TypeChanged)
		assert.True(t, diff.HoursChanged)
		assert.False(t, diff.RegionsChanged)
		assert.Equal(t, "50", c.Capacity().String())
	})

	t.Run("invalid update is not applied at all", func(t *testing.T) {
		c := createValidCourier(t, courier.Foot)
		car := courier.Car

		_, err := c.ApplyProfile(courier.ProfileChanges{Type: &car, Regions: []kernel.Region{}})

		require.ErrorIs(t, err, errs.ErrValueIsRequired)
		assert.Equal(t, courier.Foot, c.Type())
		assert.Equal(t, []kernel.Region{1, 12, 22}, c.Regions())
	})

	t.Run("unknown type", func(t *testing.T) {
		c := createValidCourier(t, courier.Foot)
		plane := courier.Type("plane")

		_, err := c.ApplyProfile(courier.ProfileChanges{Type: &plane})

		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})
}
