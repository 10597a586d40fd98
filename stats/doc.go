// SPDX-License-Identifier: MIT

// Package stats implements a small, synthesizer-agnostic
// report of one synthesis run, printed the way a CLI user expects a final
// summary to read (elapsed time, iteration counts, best value found).
package stats
