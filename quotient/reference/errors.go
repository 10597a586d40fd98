package reference

import "errors"

var (
	// ErrUnknownState is returned when a Transition or Target references a
	// state index outside [0, NumStates).
	ErrUnknownState = errors.New("reference: unknown state index")

	// ErrNotDeterministic is returned by BuildDTMC when the template, once
	// restricted to a singleton assignment's enabled colors, leaves more than
	// one enabled transition at some reachable non-target state. A DTMC has
	// exactly one successor per state; the template must be constructed so
	// every assignment resolves all nondeterminism.
	ErrNotDeterministic = errors.New("reference: assignment leaves more than one enabled transition at a state")

	// ErrCyclic is returned when reachability or shortest-path search detects
	// a cycle. The reference backend only supports acyclic templates: real
	// probabilistic model checking (out of scope) would be required to
	// handle recurrent behavior soundly.
	ErrCyclic = errors.New("reference: template contains a cycle")

	// ErrUnsupportedFormula is returned when a holes.Property.Formula is not
	// one of this package's marker types (Reach, MinCost).
	ErrUnsupportedFormula = errors.New("reference: unsupported property formula")

	// ErrUnsupportedScheduler is returned when SchedulerSelection receives a
	// quotient.Scheduler this package did not produce.
	ErrUnsupportedScheduler = errors.New("reference: scheduler not produced by this backend")

	// ErrNoSplittableHole is returned by PrepareSplit when every hole in the
	// family is already a singleton, so CheckProperties should not have
	// reported Unknown in the first place.
	ErrNoSplittableHole = errors.New("reference: no hole with more than one option to split")
)
