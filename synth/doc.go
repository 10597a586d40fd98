// SPDX-License-Identifier: MIT

// Package synth implements the single front door that takes
// a raw sketch, an optional external oracle restriction, and a method
// selection, and drives the right solver (ar, cegis, hybrid, or pomdp),
// reporting a stats.Run for the attempt even when synthesis fails.
package synth
