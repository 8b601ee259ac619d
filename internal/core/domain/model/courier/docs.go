// Package courier provides the Courier aggregate root: the courier profile, the
// delivery round state machine and the lifetime completion counters.
//
// The package includes:
//   - Courier: identity, profile, round state and eligibility predicates
//   - Type: the closed set foot/bike/car with capacity and earnings coefficient lookups
//   - Status: Free or Busy
//   - ProfileChanges: partial profile updates applied atomically
//   - CompletedCounts: per-type counters incremented on settlement
//
// Key business rules:
//   - Capacity is derived from the type (foot 10, bike 15, car 50)
//   - A round freezes the courier type so earnings are attributed to the type used at round start
//   - A round that ends without deliveries never increments a counter
//
// The package follows Domain-Driven Design principles, providing rich domain
// behavior, encapsulation, and validation to ensure business rules are enforced.
package courier
