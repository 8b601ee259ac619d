package kernel

import (
	"slices"

	"candydelivery/internal/pkg/errs"
)

// Region identifies a delivery district. Valid regions are positive.
type Region int64

// NewRegion validates a raw region number.
func NewRegion(value int64) (Region, error) {
	if value <= 0 {
		return 0, errs.NewValueIsOutOfRangeError("region", value, 1, "unbounded")
	}
	return Region(value), nil
}

// NewRegions validates a non-empty region list and drops duplicates, keeping first occurrences.
func NewRegions(values []int64) ([]Region, error) {
	if len(values) == 0 {
		return nil, errs.NewValueIsRequiredError("regions")
	}

	regions := make([]Region, 0, len(values))
	for _, v := range values {
		region, err := NewRegion(v)
		if err != nil {
			return nil, err
		}
		if !slices.Contains(regions, region) {
			regions = append(regions, region)
		}
	}

	return regions, nil
}

// RegionsToInt64 converts regions to their raw form for persistence and transport.
func RegionsToInt64(regions []Region) []int64 {
	out := make([]int64, len(regions))
	for i, r := range regions {
		out[i] = int64(r)
	}
	return out
}
