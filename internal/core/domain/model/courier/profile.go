package courier

import (
	"errors"

	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/pkg/errs"
)

// ErrEmptyProfileChanges is returned when a profile update carries no fields.
var ErrEmptyProfileChanges = errs.NewPreconditionFailedError("profile update has no fields")

// ProfileChanges describes a partial courier profile update.
// A nil field is left unchanged. A supplied field counts as changed even when
// it equals the current value, so the matching reconciliation always runs.
type ProfileChanges struct {
	Type         *Type
	Regions      []kernel.Region
	WorkingHours []kernel.TimeInterval
}

// IsEmpty reports whether no field was supplied.
func (p ProfileChanges) IsEmpty() bool {
	return p.Type == nil && p.Regions == nil && p.WorkingHours == nil
}

// ProfileDiff lists which profile fields an update touched.
type ProfileDiff struct {
	TypeChanged    bool
	RegionsChanged bool
	HoursChanged   bool
}

// ApplyProfile validates and applies a partial update. Either all supplied
// fields are applied or none is.
//
// Returns:
//   - ProfileDiff: which fields were applied
//   - error: ErrEmptyProfileChanges for an empty update, validation errors for
//     an unknown type or supplied-but-empty regions/hours
func (c *Courier) ApplyProfile(changes ProfileChanges) (ProfileDiff, error) {
	if changes.IsEmpty() {
		return ProfileDiff{}, ErrEmptyProfileChanges
	}

	next := *c
	var typeErr, regionsErr, hoursErr error
	if changes.Type != nil {
		typeErr = next.setType(*changes.Type)
	}
	if changes.Regions != nil {
		regionsErr = next.setRegions(changes.Regions)
	}
	if changes.WorkingHours != nil {
		hoursErr = next.setWorkingHours(changes.WorkingHours)
	}
	if err := errors.Join(typeErr, regionsErr, hoursErr); err != nil {
		return ProfileDiff{}, err
	}

	c.courierType = next.courierType
	c.regions = next.regions
	c.workingHours = next.workingHours

	return ProfileDiff{
		TypeChanged:    changes.Type != nil,
		RegionsChanged: changes.Regions != nil,
		HoursChanged:   changes.WorkingHours != nil,
	}, nil
}
