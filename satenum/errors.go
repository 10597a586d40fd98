package satenum

import "errors"

// Sentinel errors for the SAT enumerator.
var (
	// ErrSolverUnknown is returned when gini reports neither sat nor unsat
	// (e.g. a bounded solve timed out). Callers should treat this
	// identically to "no more assignments", with a logged warning, because
	// the permanent blocking clauses already added leave no recoverable
	// state.
	ErrSolverUnknown = errors.New("satenum: SAT solver returned unknown")

	// ErrHoleIndexOutOfRange indicates a conflict or witness referenced a
	// hole index outside the encoder's fixed hole count.
	ErrHoleIndexOutOfRange = errors.New("satenum: hole index out of range")
)
