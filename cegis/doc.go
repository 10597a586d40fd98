// SPDX-License-Identifier: MIT

// Package cegis implements counterexample-guided inductive synthesis:
// repeatedly ask a shared satenum.Encoder for one candidate
// assignment, check it against a quotient.Backend's DTMC checker, and block
// it (or, for a genuine property violation, a whole conflict-generalized
// class of assignments sharing the blamed holes) before asking again.
//
// The loop itself is the same generate-check-exclude shape satenum's own
// blocking-clause tests already exercise; this package adds the DTMC
// model-checking call and the optimal-synthesis bookkeeping around it.
package cegis
