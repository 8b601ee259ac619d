package commands

import (
	"errors"
	"time"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
	"candydelivery/internal/pkg/guard"
)

var ErrUpdateCourierCommandIsNotConstructed = errors.New(
	"UpdateCourierCommand must be created via NewUpdateCourierCommand constructor",
)

// UpdateCourierCommand changes part of a courier profile.
//
// A nil argument leaves the field unchanged; a non-nil empty slice is a validation error.
//
// Example:
//
//	regions := []int64{1, 5}
//	cmd, err := NewUpdateCourierCommand(2, nil, regions, nil, time.Now().UTC())
type UpdateCourierCommand struct {
	courierID int64
	changes   courier.ProfileChanges
	at        time.Time
	guard     guard.ConstructorGuard
}

// NewUpdateCourierCommand parses the raw profile fields.
//
// Returns:
//   - courier.ErrEmptyProfileChanges when no field is supplied
//   - validation errors for an unknown type or malformed regions/hours
func NewUpdateCourierCommand(
	courierID int64,
	courierType *string,
	regions []int64,
	workingHours []string,
	at time.Time,
) (UpdateCourierCommand, error) {
	if courierID <= 0 {
		return UpdateCourierCommand{}, errs.NewValueIsOutOfRangeError("courier id", courierID, 1, "unbounded")
	}
	if courierType == nil && regions == nil && workingHours == nil {
		return UpdateCourierCommand{}, courier.ErrEmptyProfileChanges
	}

	var (
		changes                      courier.ProfileChanges
		typeErr, regionsErr, hoursErr error
	)
	if courierType != nil {
		var t courier.Type
		t, typeErr = courier.ParseType(*courierType)
		changes.Type = &t
	}
	if regions != nil {
		changes.Regions, regionsErr = kernel.NewRegions(regions)
	}
	if workingHours != nil {
		changes.WorkingHours, hoursErr = kernel.ParseTimeIntervals(workingHours)
	}
	if err := errors.Join(typeErr, regionsErr, hoursErr); err != nil {
		return UpdateCourierCommand{}, err
	}

	return UpdateCourierCommand{
		courierID: courierID,
		changes:   changes,
		at:        at,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

// Validate ensures the command was created through the constructor.
func (c UpdateCourierCommand) Validate() error {
	return c.guard.Validate(ErrUpdateCourierCommandIsNotConstructed)
}

// CourierID returns the courier to update.
func (c UpdateCourierCommand) CourierID() int64 {
	return c.courierID
}

// Changes returns the parsed profile changes.
func (c UpdateCourierCommand) Changes() courier.ProfileChanges {
	return c.changes
}

// At returns the instant used for evictions and settlement.
func (c UpdateCourierCommand) At() time.Time {
	return c.at
}
