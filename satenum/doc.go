// SPDX-License-Identifier: MIT

// Package satenum implements the blocking-clause SAT oracle
// that backs CEGIS-style assignment enumeration: one process-wide solver
// instance, one boolean one-hot encoding per hole, and a permanent,
// monotone blocking-clause store.
//
// gini (github.com/irifrance/gini) is a boolean CDCL solver, not an integer
// SMT solver; each hole of size n is realized as n boolean literals with an
// exactly-one constraint added once, at NewEncoder time, over the hole's
// original (unrefined) option set: one integer variable per hole,
// constrained 0 <= vi < sizei at initialization.
// Per-family encodings are rebuilt on every PickAssignment call: the
// disjunction-of-options clause for each hole's current option set is added
// to the solver guarded by a fresh activation literal, and that literal is
// passed to gini as an assumption for the one solve. The guarded clauses
// stay in the solver but constrain nothing once their literal is no longer
// assumed.
package satenum
