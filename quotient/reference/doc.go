// SPDX-License-Identifier: MIT

// Package reference is a deterministic, in-memory reference implementation
// of quotient.Backend. It is not a probabilistic model checker: building the
// quotient MDP from a sketch and numerically solving Markov models are both
// explicitly out of scope for this module. Instead it models each family
// member as a small, acyclic, hole-colored transition system and decides
// feasibility and optimality via graph reachability and shortest-path
// search: enough structure to exercise AR, CEGIS, Hybrid, and the POMDP
// driver end to end in tests, without depending on an external
// probabilistic kernel.
//
// The index-addressed transition table (Template.Transitions, one edge list
// per state) follows a precompute-then-search idiom: build a random-access
// table once, then run deterministic graph search (reachability is a
// memoized depth-first traversal that visits every state once; optimum cost
// is a memoized bottom-up shortest-path relaxation over the acyclic graph's
// non-negative edge costs) directly against it, the same
// separation of "prefetch" from "search" used by classic exact-search code
// such as branch-and-bound over a precomputed distance matrix.
package reference
