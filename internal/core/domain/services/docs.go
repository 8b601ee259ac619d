// Package services provides domain services that coordinate the courier and order
// aggregates.
//
// The package includes:
//   - IsEligible: the region, remaining-capacity and hours-overlap check for a (courier, order) pair
//   - OrderDispatcher: greedy assignment of New orders to a free courier
//   - ProfileReconciler: eviction of in-process orders after a courier profile change
//   - OrderCompleter: single-order completion with round settlement
//   - RatingCalculator: earnings and rating from completion history
//
// Services mutate aggregates in memory only. Callers persist every touched
// aggregate in one unit of work, so a failure never leaves a partial result.
package services
