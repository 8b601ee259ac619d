package guard_test

import (
	"errors"
	"sync"
	"testing"

	"candydelivery/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errParcelNotConstructed = errors.New("parcel must be created via newParcel")

type parcel struct {
	region int
	guard  guard.ConstructorGuard
}

func newParcel(region int) (parcel, error) {
	if region <= 0 {
		return parcel{}, errors.New("region must be positive")
	}
	return parcel{region: region, guard: guard.NewConstructorGuard()}, nil
}

func (p parcel) Validate() error {
	return p.guard.Validate(errParcelNotConstructed)
}

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_returns_nil", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_guard_returns_custom_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("entity not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_guard_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
		assert.Equal(t, "object must be created via its constructor", err.Error())
	})
}

func TestConstructorGuard_EmbeddedInValueObject(t *testing.T) {
	t.Run("constructor_marks_value_as_valid", func(t *testing.T) {
		p, err := newParcel(12)

		require.NoError(t, err)
		require.NoError(t, p.Validate())
	})

	t.Run("zero_value_fails_validation", func(t *testing.T) {
		var p parcel

		require.ErrorIs(t, p.Validate(), errParcelNotConstructed)
	})

	t.Run("constructor_business_rule_still_applies", func(t *testing.T) {
		p, err := newParcel(0)

		require.Error(t, err)
		require.ErrorIs(t, p.Validate(), errParcelNotConstructed)
	})
}

func TestConstructorGuard_Concurrency(t *testing.T) {
	g := guard.NewConstructorGuard()
	validationError := errors.New("never returned")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, g.Validate(validationError))
		}()
	}
	wg.Wait()
}
