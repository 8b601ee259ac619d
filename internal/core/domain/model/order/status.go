package order

import (
	"fmt"

	"candydelivery/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	New ──> InProcess ──> Complete
//	 ^          │
//	 └──────────┘
//	   (eviction)
//
// Complete is terminal.
type Status int

const (
	// Unknown represents an invalid or undefined status.
	// This value (0) helps catch uninitialized Status values.
	Unknown Status = iota

	// New is the initial status. Orders in this status are visible to candidate scans.
	New

	// InProcess indicates the order is claimed by a courier as part of a delivery round.
	InProcess

	// Complete indicates the order has been delivered.
	Complete
)

var statusStrings = map[Status]string{
	Unknown:   "UNKNOWN",
	New:       "NEW",
	InProcess: "IN_PROCESS",
	Complete:  "COMPLETE",
}

// Validate checks if the Status value is one of New, InProcess or Complete.
func (s Status) Validate() error {
	if s != New && s != InProcess && s != Complete {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name of the status.
//
// Example:
//
//	fmt.Println(order.Status()) // Output: "IN_PROCESS"
func (s Status) String() string {
	if str, ok := statusStrings[s]; ok {
		return str
	}
	return statusStrings[Unknown]
}

// ValidateCanHaveCourier validates the consistency between order status and courier assignment.
//
// Business Rules:
//   - New orders must not have a courier assigned
//   - InProcess and Complete orders must have a courier assigned
func (s Status) ValidateCanHaveCourier(courier bool) error {
	if courier && s == New {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have a courier", s),
		)
	}

	if !courier && (s == InProcess || s == Complete) {
		return errs.NewValueIsInvalidErrorWithCause(
			"status is invalid",
			fmt.Errorf("%s is not a valid status to have no courier", s),
		)
	}

	return nil
}

// Assign transitions New -> InProcess.
func (s Status) Assign() (Status, error) {
	if s != New {
		return Unknown, errs.NewPreconditionFailedError(fmt.Sprintf("%s order cannot be assigned", s))
	}
	return InProcess, nil
}

// Release transitions InProcess -> New.
func (s Status) Release() (Status, error) {
	if s != InProcess {
		return Unknown, errs.NewPreconditionFailedError(fmt.Sprintf("%s order cannot be released", s))
	}
	return New, nil
}

// Complete transitions InProcess -> Complete.
func (s Status) Complete() (Status, error) {
	if s != InProcess {
		return Unknown, errs.NewPreconditionFailedError(fmt.Sprintf("%s order cannot be completed", s))
	}
	return Complete, nil
}
