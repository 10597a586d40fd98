// SPDX-License-Identifier: MIT

// Package hybrid implements the hybrid synthesizer: AR and
// CEGIS share one stack of candidate families, alternating under a
// stage.Controller that decides, after every step, which method runs next.
//
// Each step does exactly one unit of work for its chosen method (one AR
// pop-build-decide-or-split, or one CEGIS pick-check-exclude) and reports
// its elapsed time and work done back to the controller, so the balance
// between the two methods adapts to which one is actually making progress
// on this particular family.
package hybrid
