// Package order provides the Order aggregate and its status state machine.
//
// The package includes:
//   - Order: identity, weight, region, delivery windows and the assignment/completion lifecycle
//   - Status: New -> InProcess -> Complete, with InProcess -> New on eviction
//
// Key business rules:
//   - Weight is between 0.01 and 50 with at most two decimal places
//   - Only New orders can be claimed by a courier
//   - Complete is terminal and completion never precedes assignment
//
// Orders record domain events (eviction, completion) that the unit of work
// stores in the outbox when the transaction commits.
package order
