package services

import (
	"slices"

	"candydelivery/internal/core/domain/model/courier"
	"candydelivery/internal/core/domain/model/kernel"
	"candydelivery/internal/core/domain/model/order"

	"github.com/shopspring/decimal"
)

var (
	// ratingBaseline is the average delivery time in seconds at which the rating reaches zero.
	ratingBaseline = decimal.NewFromInt(3600)
	ratingScale    = decimal.NewFromInt(5)
)

const ratingPlaces = 2

// RatingCalculator derives a courier's earnings and rating from its history.
type RatingCalculator struct{}

// NewRatingCalculator creates a new RatingCalculator instance.
func NewRatingCalculator() RatingCalculator {
	return RatingCalculator{}
}

// Earnings returns Σ completed[type] × 500 × coefficient[type].
func (r RatingCalculator) Earnings(c *courier.Courier) int64 {
	counts := c.Completed()
	var total int64
	for _, t := range courier.Types() {
		total += int64(counts.Of(t)) * t.EarningsPerOrder()
	}
	return total
}

// Rating returns (3600 − min(m, 3600)) / 3600 × 5 rounded half-to-even to two places,
// where m is the lowest per-region average delivery time over the courier's completed orders.
//
// Returns nil when the courier has no settled round with deliveries or no completed orders.
func (r RatingCalculator) Rating(c *courier.Courier, completed []*order.Order) *decimal.Decimal {
	if c.Completed().Total() == 0 {
		return nil
	}

	averages := RegionalAverages(c.ID(), completed)
	if len(averages) == 0 {
		return nil
	}

	fastest := slices.MinFunc(averages, func(a, b decimal.Decimal) int { return a.Cmp(b) })
	capped := decimal.Min(fastest, ratingBaseline)
	rating := ratingBaseline.Sub(capped).Div(ratingBaseline).Mul(ratingScale).RoundBank(ratingPlaces)
	return &rating
}

// RegionalAverages returns the average delivery time of every region that has at
// least one completed order of the courier. Order of the result is unspecified.
func RegionalAverages(courierID int64, completed []*order.Order) []decimal.Decimal {
	type acc struct {
		sum   int64
		count int64
	}
	byRegion := make(map[kernel.Region]*acc)

	for _, o := range completed {
		if o.Status() != order.Complete || !o.IsAssignedTo(courierID) || o.DeliveryTime() == nil {
			continue
		}
		a, ok := byRegion[o.Region()]
		if !ok {
			a = &acc{}
			byRegion[o.Region()] = a
		}
		a.sum += *o.DeliveryTime()
		a.count++
	}

	averages := make([]decimal.Decimal, 0, len(byRegion))
	for _, a := range byRegion {
		averages = append(averages, decimal.NewFromInt(a.sum).Div(decimal.NewFromInt(a.count)))
	}
	return averages
}
