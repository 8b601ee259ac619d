package kernel_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
)

func mustInterval(t *testing.T, s string) kernel.TimeInterval {
	t.Helper()
	interval, err := kernel.ParseTimeInterval(s)
	require.NoError(t, err)
	return interval
}

func TestParseTimeInterval(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantStart int
		wantStop  int
		wantErr   error
	}{
		{name: "regular interval", input: "11:35-14:05", wantStart: 695, wantStop: 845},
		{name: "start of day", input: "00:00-00:01", wantStart: 0, wantStop: 1},
		{name: "until end of day", input: "22:00-23:59", wantStart: 1320, wantStop: 1439},
		{name: "missing separator", input: "11:35", wantErr: errs.ErrValueIsInvalid},
		{name: "too many parts", input: "10:00-11:00-12:00", wantErr: errs.ErrValueIsInvalid},
		{name: "bad clock", input: "25:00-26:00", wantErr: errs.ErrValueIsInvalid},
		{name: "start equals stop", input: "10:00-10:00", wantErr: errs.ErrValueIsInvalid},
		{name: "wraps past midnight", input: "23:00-01:00", wantErr: errs.ErrValueIsInvalid},
		{name: "empty string", input: "", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			interval, err := kernel.ParseTimeInterval(tt.input)
			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				assert.Equal(t, kernel.TimeInterval{}, interval)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.wantStart, interval.Start())
			assert.Equal(t, tt.wantStop, interval.Stop())
			assert.Equal(t, tt.input, interval.String())
			require.NoError(t, interval.Validate())
		})
	}
}

func TestNewTimeInterval(t *testing.T) {
	t.Run("whole day", func(t *testing.T) {
		interval, err := kernel.NewTimeInterval(0, kernel.MinutesPerDay)
		require.NoError(t, err)
		assert.Equal(t, "00:00-24:00", interval.String())
	})

	t.Run("bounds out of range", func(t *testing.T) {
		_, err := kernel.NewTimeInterval(-1, 10)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)

		_, err = kernel.NewTimeInterval(10, kernel.MinutesPerDay+1)
		require.ErrorIs(t, err, errs.ErrValueIsOutOfRange)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		var interval kernel.TimeInterval
		require.ErrorIs(t, interval.Validate(), errs.ErrValueIsRequired)
	})
}

func TestTimeIntervalOverlaps(t *testing.T) {
	tests := []struct {
		name string
		a    string
		b    string
		want bool
	}{
		{name: "touching endpoints", a: "09:00-11:00", b: "11:00-12:00", want: false},
		{name: "one minute shared", a: "09:00-11:01", b: "11:00-12:00", want: true},
		{name: "containment", a: "08:00-20:00", b: "12:00-13:00", want: true},
		{name: "identical", a: "10:00-11:00", b: "10:00-11:00", want: true},
		{name: "disjoint", a: "06:00-07:00", b: "18:00-19:00", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := mustInterval(t, tt.a)
			b := mustInterval(t, tt.b)
			assert.Equal(t, tt.want, a.Overlaps(b))
			assert.Equal(t, tt.want, b.Overlaps(a))
		})
	}
}

func TestIntervalSetOverlaps(t *testing.T) {
	hours, err := kernel.ParseTimeIntervals([]string{"06:00-08:00", "20:00-22:00"})
	require.NoError(t, err)

	morning, err := kernel.ParseTimeIntervals([]string{"07:30-09:00"})
	require.NoError(t, err)
	noon, err := kernel.ParseTimeIntervals([]string{"08:00-20:00"})
	require.NoError(t, err)

	assert.True(t, kernel.IntervalSetOverlaps(hours, morning))
	assert.False(t, kernel.IntervalSetOverlaps(hours, noon))
	assert.False(t, kernel.IntervalSetOverlaps(hours, nil))
	assert.False(t, kernel.IntervalSetOverlaps(nil, morning))
}

func TestParseTimeIntervals(t *testing.T) {
	t.Run("empty list", func(t *testing.T) {
		_, err := kernel.ParseTimeIntervals(nil)
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("one malformed value fails the list", func(t *testing.T) {
		_, err := kernel.ParseTimeIntervals([]string{"10:00-11:00", "bad"})
		require.ErrorIs(t, err, errs.ErrValueIsInvalid)
	})

	t.Run("duplicates are kept", func(t *testing.T) {
		intervals, err := kernel.ParseTimeIntervals([]string{"10:00-11:00", "10:00-11:00"})
		require.NoError(t, err)
		assert.Equal(t, []string{"10:00-11:00", "10:00-11:00"}, kernel.FormatTimeIntervals(intervals))
	})
}
