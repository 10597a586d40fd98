// SPDX-License-Identifier: MIT

// Package oracle implements external belief-exploration oracle fusion:
// walking the induced sub-Markov-chain an external
// belief-exploration oracle hands back and turning it into four data
// products:
//
//   - an action dictionary, obs -> allowed action indices, built by reading
//     the (observation, action) labels off fully explored states and by
//     harvesting every choice of each cutoff scheduler a "sched_<k>" choice
//     label references;
//   - MainRestriction, the dictionary projected through the
//     observation-to-action-hole mapping onto a design space's holes;
//   - Restrictions, the same narrowing itemized per hole so GetSubfamilies
//     can expand it into a covering set of subfamilies via the prefix-flip
//     construction; and
//   - Bound and IsStormBetter, so a caller can decide whether to trust the
//     oracle's proved value over its own best-known one.
//
// Fusion never interprets probabilities or the induced chain's structure
// itself; building and exploring it is the external oracle's job. The one
// textual format it has to parse, a cutoff scheduler's "{p:a, p:a, ...}"
// choice rendering, lives in the choicestring subpackage.
package oracle
