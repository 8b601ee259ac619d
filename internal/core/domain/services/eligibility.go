package services

import (
	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/order"
)

// IsEligible reports whether the courier may take the order right now.
//
// The checks run in order and short-circuit:
//  1. the order region is one of the courier's regions
//  2. the order weight fits into the remaining headroom (capacity minus current weight)
//  3. some working interval overlaps some delivery window
//
// Order status is not considered here; callers pass New orders only.
func IsEligible(c *courier.Courier, o *order.Order) bool {
	return c.ServesRegion(o.Region()) &&
		c.HasCapacityFor(o.Weight()) &&
		c.IsAvailableFor(o.DeliveryHours())
}
