package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
)

func TestNewRegion(t *testing.T) {
	region, err := kernel.NewRegion(12)
	require.NoError(t, err)
	assert.Equal(t, kernel.Region(12), region)

	_, err = kernel.NewRegion(0)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

	_, err = kernel.NewRegion(-3)
	require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
}

func TestNewRegions(t *testing.T) {
	t.Run("deduplicates keeping order", func(t *testing.T) {
		regions, err := kernel.NewRegions([]int64{3, 1, 3, 2, 1})
		require.NoError(t, err)
		assert.Equal(t, []kernel.Region{3, 1, 2}, regions)
		assert.Equal(t, []int64{3, 1, 2}, kernel.RegionsToInt64(regions))
	})

	t.Run("empty list", func(t *testing.T) {
		_, err := kernel.NewRegions([]int64{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("invalid member", func(t *testing.T) {
		_, err := kernel.NewRegions([]int64{1, 0})
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})
}
