// SPDX-License-Identifier: MIT

// Package holes defines the central Hole, DesignSpace, and CombinationColoring
// types that underlie family-based probabilistic program synthesis.
//
// A Hole is a finite, ordered choice point: an integer option-id per position,
// resolved against an immutable, shared label table. A DesignSpace is a
// positionally-ordered sequence of holes, together with the properties still
// to be decided and an optional optimality property. Every refinement
// operation (AssumeSuboptions, AssumeAllSuboptions, PickAny) returns a fresh
// DesignSpace; the source is never mutated.
//
// Holes across copies share the same option_labels slice (read-only shared
// ownership); only the per-hole Options slice is copied. DesignSpace.Copy
// copies the properties slice but preserves the (possibly shared)
// OptimalityProperty pointer, so that optimum updates on one family are
// visible to every other live copy descended from the same root family.
//
// CombinationColoring assigns dense positive integer colors to partial
// hole-tuples; color 0 is reserved for hole-free model elements. It is the
// primitive by which a quotient backend (see package quotient) attributes
// model elements (states, choices, edges) to holes, and by which callers
// restrict a quotient model to a subspace.
package holes
