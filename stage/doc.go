// SPDX-License-Identifier: MIT

// Package stage implements the hybrid synthesizer's stage controller:
// a discrete state machine that decides, at each step of
// the hybrid loop (package hybrid), whether to run abstraction-refinement
// or CEGIS next.
//
// AR never runs for more than one step in a row: the moment it reports
// back, control passes to CEGIS. CEGIS then keeps running, burst after
// burst, until the wall-clock time spent in the current burst reaches an
// allocation derived from AR's last step (that elapsed time scaled by the
// controller's allocation factor). Only then does control return to AR,
// and only at that point is the factor recomputed, from each stage's
// cumulative (never-reset) throughput: a 10x-more-productive AR leaves
// CEGIS with a 10x smaller allocation on the next round, and vice versa.
package stage
