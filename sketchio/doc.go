// SPDX-License-Identifier: MIT

// Package sketchio loads a design space from the single
// JSON sketch format this module accepts: a list of holes (name plus
// ordered option labels), a list of qualitative properties, and an optional
// optimality property.
//
// Formula strings ("reach", "cost") are resolved against the vocabulary
// package quotient/reference understands, since that reference backend is
// the only quotient.Backend this module ships; a sketch naming any other
// formula fails to load rather than silently producing an assignment no
// backend can check.
package sketchio
