package pomdp

import "errors"

// ErrMemoryBudgetExhausted is returned when every observation has reached
// the WithMaxMemory cap without the unfolded family becoming synthesizable.
var ErrMemoryBudgetExhausted = errors.New("pomdp: memory budget exhausted before a solution was found")

// ErrNoObservations is returned when an Unfolder reports zero observations;
// there is nothing to unfold.
var ErrNoObservations = errors.New("pomdp: unfolder reports no observations")
