package kernel

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

const (
	// MinutesPerDay is the exclusive upper bound of a minute-of-day clock value.
	MinutesPerDay = 24 * 60

	clockLayout       = "15:04"
	intervalSeparator = "-"
)

// ErrTimeIntervalIsNotConstructed is returned when a zero-value TimeInterval is used.
var ErrTimeIntervalIsNotConstructed = errs.NewValueIsRequiredError(
	"time interval must be created via NewTimeInterval or ParseTimeInterval")

// TimeInterval is a half-open time-of-day range [start, stop) measured in minutes since midnight.
// It is used both for courier working hours and for order delivery windows.
//
// Invariants:
//   - 0 <= start < stop <= MinutesPerDay
//   - intervals never wrap past midnight
//
// TimeInterval is an immutable, comparable value object. No merging or normalisation is
// performed on sets of intervals; duplicates and redundant intervals are tolerated.
//
// Example:
//
//	morning, _ := kernel.ParseTimeInterval("09:00-11:00")
//	lunch, _ := kernel.ParseTimeInterval("11:00-12:00")
//	morning.Overlaps(lunch) // false, touching endpoints do not overlap
type TimeInterval struct { //nolint:recvcheck //using for validation
	start int
	stop  int
	guard guard.ConstructorGuard
}

// NewTimeInterval creates an interval from minute-of-day bounds.
//
// Returns:
//   - TimeInterval: a valid interval
//   - error: ValueIsOutOfRangeError when a bound leaves the day,
//     ValueIsInvalidError when start is not strictly before stop
func NewTimeInterval(start, stop int) (TimeInterval, error) {
	interval := TimeInterval{
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		interval.setStart(start),
		interval.setStop(stop),
	); err != nil {
		return TimeInterval{}, err
	}

	if interval.start >= interval.stop {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause(
			"time interval",
			fmt.Errorf("start %s is not before stop %s", formatClock(start), formatClock(stop)),
		)
	}

	return interval, nil
}

// ParseTimeInterval parses the "HH:MM-HH:MM" wire form.
//
// Example:
//
//	interval, err := kernel.ParseTimeInterval("11:35-14:05")
//	// interval.Start() == 695, interval.Stop() == 845
func ParseTimeInterval(s string) (TimeInterval, error) {
	parts := strings.Split(s, intervalSeparator)
	if len(parts) != 2 {
		return TimeInterval{}, errs.NewValueIsInvalidErrorWithCause(
			"time interval",
			fmt.Errorf("%q is not in HH:MM-HH:MM format", s),
		)
	}

	start, err := parseClock(parts[0])
	if err != nil {
		return TimeInterval{}, err
	}

	stop, err := parseClock(parts[1])
	if err != nil {
		return TimeInterval{}, err
	}

	return NewTimeInterval(start, stop)
}

// ParseTimeIntervals parses a non-empty list of "HH:MM-HH:MM" values.
// The first malformed value aborts parsing.
func ParseTimeIntervals(values []string) ([]TimeInterval, error) {
	if len(values) == 0 {
		return nil, errs.NewValueIsRequiredError("time intervals")
	}

	intervals := make([]TimeInterval, 0, len(values))
	for _, v := range values {
		interval, err := ParseTimeInterval(v)
		if err != nil {
			return nil, err
		}
		intervals = append(intervals, interval)
	}

	return intervals, nil
}

// FormatTimeIntervals renders intervals back to their "HH:MM-HH:MM" wire form.
func FormatTimeIntervals(intervals []TimeInterval) []string {
	out := make([]string, len(intervals))
	for i, interval := range intervals {
		out[i] = interval.String()
	}
	return out
}

// Validate checks that the interval was built by a constructor.
func (t TimeInterval) Validate() error {
	return t.guard.Validate(ErrTimeIntervalIsNotConstructed)
}

// Start returns the inclusive start in minutes since midnight.
func (t TimeInterval) Start() int {
	return t.start
}

// Stop returns the exclusive end in minutes since midnight.
func (t TimeInterval) Stop() int {
	return t.stop
}

// Overlaps reports whether two intervals share at least one minute.
// Touching endpoints do not count: 09:00-11:00 and 11:00-12:00 do not overlap.
func (t TimeInterval) Overlaps(other TimeInterval) bool {
	return t.start < other.stop && other.start < t.stop
}

// String returns the "HH:MM-HH:MM" form.
func (t TimeInterval) String() string {
	return formatClock(t.start) + intervalSeparator + formatClock(t.stop)
}

// IntervalSetOverlaps reports whether any interval of a overlaps any interval of b.
// It is the only test used to match courier working hours against order delivery windows.
func IntervalSetOverlaps(a, b []TimeInterval) bool {
	for _, x := range a {
		for _, y := range b {
			if x.Overlaps(y) {
				return true
			}
		}
	}
	return false
}

func (t *TimeInterval) setStart(start int) error {
	if start < 0 || start >= MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("interval start", start, 0, MinutesPerDay-1)
	}
	t.start = start
	return nil
}

func (t *TimeInterval) setStop(stop int) error {
	if stop <= 0 || stop > MinutesPerDay {
		return errs.NewValueIsOutOfRangeError("interval stop", stop, 1, MinutesPerDay)
	}
	t.stop = stop
	return nil
}

func parseClock(s string) (int, error) {
	clock, err := time.Parse(clockLayout, strings.TrimSpace(s))
	if err != nil {
		return 0, errs.NewValueIsInvalidErrorWithCause("time of day", err)
	}
	return clock.Hour()*60 + clock.Minute(), nil
}

func formatClock(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
