// SPDX-License-Identifier: MIT

package quotient

import "github.com/paynt-synth/corego/holes"

// Feasibility is the three-valued verdict a quotient model checker returns
// for a sub-family: every member satisfies the properties (TRUE), every
// member violates at least one (FALSE), or the bound is inconclusive
// (UNKNOWN) and the family must be split.
type Feasibility int

const (
	// Unknown means the MDP bound did not decide feasibility for this family.
	Unknown Feasibility = iota
	// Feasible means every member of the family satisfies every property.
	Feasible
	// Infeasible means no member of the family satisfies every property.
	Infeasible
)

// Model is an opaque handle to a quotient MDP built by Backend.Build. It
// carries no interpreted fields here; concrete backends type-assert it to
// their own representation.
type Model interface {
	// States reports the number of states in this model, used only for
	// reporting.
	States() int
}

// DTMCModel is an opaque handle to a DTMC built by Backend.BuildDTMC for a
// single assignment.
type DTMCModel interface {
	States() int
}

// Scheduler resolves MDP nondeterminism; its only use in this core is as an
// opaque token threaded back into Backend.SchedulerSelection.
type Scheduler interface{}

// UndecidedResult carries enough information about one undecided property's
// model-checking bound for Backend.PrepareSplit to choose a splitter hole.
// Backends populate Data with whatever internal state their splitter
// heuristic needs; the core never interprets it.
type UndecidedResult struct {
	Property  holes.Property
	Scheduler Scheduler
	Data      interface{}
}

// CheckPropertiesResult is the return value of Backend.CheckProperties.
type CheckPropertiesResult struct {
	Feasibility Feasibility
	Undecided   []holes.Property
	Results     []UndecidedResult
}

// CheckOptimalityResult is the return value of Backend.CheckOptimality.
type CheckOptimalityResult struct {
	// Result describes the optimality check in the same form as a
	// qualitative undecided result; when CanImprove is true, ar hands it to
	// Backend.PrepareSplit to choose the next splitter hole.
	Result              UndecidedResult
	Optimum             *float64
	ImprovingAssignment *holes.Assignment
	CanImprove          bool
}
