// SPDX-License-Identifier: MIT

// Package quotient declares the external contract for the
// probabilistic model-checking kernel. The quotient MDP/DTMC builder and
// the checker are treated as external collaborators with an
// interface-only contract; this package is that contract.
//
// A concrete, deterministic reference implementation exercising this
// interface against tiny synthetic transition systems lives in
// quotient/reference; it stands in for a real probabilistic model checker
// (building one is out of scope for this module) so the
// AR/CEGIS/Hybrid/POMDP packages are unit-testable end to end.
package quotient
