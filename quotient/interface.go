// SPDX-License-Identifier: MIT

package quotient

import "github.com/paynt-synth/corego/holes"

// Backend is the external contract of the probabilistic model-checking
// kernel. AR (package ar), CEGIS (package cegis), Hybrid (package hybrid)
// and the POMDP driver (package pomdp) depend only on this interface,
// never on a concrete model checker.
type Backend interface {
	// Build produces an MDP whose behaviors equal the union of behaviors of
	// every member of family.
	Build(family *holes.DesignSpace) (Model, error)

	// BuildDTMC produces the DTMC induced by a single (singleton) assignment.
	BuildDTMC(assignment *holes.Assignment) (DTMCModel, error)

	// CheckProperties model-checks every property of family.Properties
	// against model, returning the family-wide three-valued feasibility and,
	// for properties that remain undecided, enough data to drive a split.
	CheckProperties(model Model, properties []holes.Property) (CheckPropertiesResult, error)

	// CheckOptimality evaluates the optimality property against model,
	// reporting whether any member improves on the current optimum and
	// whether the bound leaves room for further improvement.
	CheckOptimality(model Model, opt *holes.OptimalityProperty) (CheckOptimalityResult, error)

	// CheckPropertiesDTMC and CheckOptimalityDTMC are the single-assignment
	// analogues used by CEGIS: sat/unsat per property, and an optimum value.
	CheckPropertiesDTMC(model DTMCModel, properties []holes.Property) (sat bool, unsatProperties []holes.Property, err error)
	CheckOptimalityDTMC(model DTMCModel, opt *holes.OptimalityProperty) (value float64, improves bool, err error)

	// SchedulerSelection extracts, per hole, the set of option-ids used by
	// scheduler on model: the basis of the POMDP driver's
	// consistency/symmetry-breaking analysis.
	SchedulerSelection(model Model, scheduler Scheduler) ([][]int, error)

	// PrepareSplit splits family along the hole most responsible for
	// undecided's uncertainty (any deterministic heuristic qualifies). The
	// left subfamily must be returned first so that, once both are pushed
	// onto a LIFO stack, the right subfamily is explored first.
	PrepareSplit(model Model, undecided UndecidedResult, properties []holes.Property) (left, right *holes.DesignSpace, err error)

	// ConflictGenerator produces, for a DTMC that violates one or more
	// properties, a minimal set of hole indices sufficient to explain each
	// violation. Implementations may default to "all holes" when real
	// conflict minimization isn't available.
	ConflictGenerator(model DTMCModel, assignment *holes.Assignment, violated []holes.Property) ([][]int, error)
}
