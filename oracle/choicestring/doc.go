// SPDX-License-Identifier: MIT

// Package choicestring parses the one textual format this module accepts
// from an external belief-exploration oracle: a cutoff scheduler's choice
// at a state, rendered as a brace-wrapped distribution of
// probability:action pairs, e.g. "{0.5:2, 0.5:3}".
//
// Keeping this parser in its own package, rather than inlining a one-off
// strings.Split in package oracle, gives wire formats a dedicated,
// unit-tested parser instead of parsing scattered through the core.
package choicestring
