package courier

import (
	"fmt"

	"candydelivery/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// Type is the closed set of courier transport kinds.
type Type string

const (
	Foot Type = "foot"
	Bike Type = "bike"
	Car  Type = "car"
)

// earningsBase is the per-order payout before the type coefficient is applied.
const earningsBase = 500

type typeTraits struct {
	capacity    decimal.Decimal
	coefficient int64
}

var traits = map[Type]typeTraits{
	Foot: {capacity: decimal.NewFromInt(10), coefficient: 2},
	Bike: {capacity: decimal.NewFromInt(15), coefficient: 5},
	Car:  {capacity: decimal.NewFromInt(50), coefficient: 9},
}

// Types lists every valid courier type in a stable order.
func Types() []Type {
	return []Type{Foot, Bike, Car}
}

// ParseType converts a wire value into a Type, rejecting anything outside the closed set.
func ParseType(s string) (Type, error) {
	t := Type(s)
	if err := t.Validate(); err != nil {
		return "", err
	}
	return t, nil
}

// Validate checks that the type is foot, bike or car.
func (t Type) Validate() error {
	if _, ok := traits[t]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"courier type",
			fmt.Errorf("%q is not one of foot, bike, car", string(t)),
		)
	}
	return nil
}

// Capacity returns the lifting capacity in kilograms. Unknown types carry zero.
func (t Type) Capacity() decimal.Decimal {
	return traits[t].capacity
}

// Coefficient returns the earnings multiplier. Unknown types carry zero.
func (t Type) Coefficient() int64 {
	return traits[t].coefficient
}

// EarningsPerOrder returns the payout for one completed order delivered with this type.
func (t Type) EarningsPerOrder() int64 {
	return earningsBase * t.Coefficient()
}

func (t Type) String() string {
	return string(t)
}
