// SPDX-License-Identifier: MIT

// Package ar implements abstraction-refinement synthesis: a
// depth-first search over design-space families, pruning a family outright
// whenever a quotient.Backend can decide its feasibility or optimality
// bound without enumerating its members, and splitting it into two smaller
// families only when the bound is inconclusive.
//
// The traversal itself mirrors a classic branch-and-bound search
// (cf. tsp.bbEngine.Solve): a LIFO stack of candidate subproblems, an
// admissible bound consulted before any expensive work, and a running best
// solution updated in place as better candidates are found.
package ar
