package courier

import (
	"fmt"

	"candydelivery/internal/pkg/errs"
)

// Status is the courier's availability.
//
//	Free ──StartRound──> Busy ──SettleRound──> Free
type Status int

const (
	// Unknown represents an uninitialized status and is never valid.
	Unknown Status = iota
	// Free couriers have no in-process orders and may start a round.
	Free
	// Busy couriers hold at least one in-process order.
	Busy
)

// Validate checks if the Status value is Free or Busy.
func (s Status) Validate() error {
	if s != Free && s != Busy {
		return errs.NewValueIsInvalidErrorWithCause("courier status", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	switch s {
	case Free:
		return "FREE"
	case Busy:
		return "BUSY"
	default:
		return "UNKNOWN"
	}
}
