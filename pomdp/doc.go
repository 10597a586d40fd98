// SPDX-License-Identifier: MIT

// Package pomdp implements the POMDP memory-unfolding driver: an
// outer loop around package ar that grows each observation's
// amount of injected memory until the unfolded family becomes synthesizable
// or a memory budget is exhausted.
//
// Turning a memory scheme into holes is sketch-specific (only the sketch
// knows how a memory hole's extra options map onto the underlying model),
// so this package never constructs holes itself; it drives an Unfolder
// supplied by the caller, the same way package quotient drives a Backend
// without knowing how it is implemented.
//
// Only two memory-injection strategies ship. IncrementAll grows every
// observation uniformly. IncrementWorst analyzes the quotient scheduler's
// per-hole option selection each round: consistently-chosen action-holes
// are pinned to their selection, permutation symmetry among an
// observation's multiple action-holes is broken by removing the
// scheduler-chosen options, and only the observations whose holes remain
// inconsistent receive more memory. A third, more aggressive strategy
// exists in the system this was distilled from but is marked experimental
// there and is not reproduced here.
package pomdp
