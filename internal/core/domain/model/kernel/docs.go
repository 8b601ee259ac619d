// Package kernel provides core domain primitives shared by the courier and order aggregates.
//
// The package includes:
//   - TimeInterval: a half-open time-of-day range with the overlap predicate used to match
//     courier working hours against order delivery windows
//   - Region: a validated delivery district number
//
// Values are immutable and safe for concurrent use.
package kernel
