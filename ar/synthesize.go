package ar

import (
	"context"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
)

// Stats summarizes one Run: how many subfamilies the DFS visited and
// whether a satisfying (or, for optimal synthesis, an improving) assignment
// was ever found.
type Stats struct {
	FamiliesExplored int
	StatesSeen       int
	Pruned           uint64
	Feasible         bool
}

// StepResult is the outcome of processing exactly one family with Step.
type StepResult struct {
	// Solved is non-nil when family turned out Feasible and has no
	// optimality property: the caller should stop and report this
	// assignment, no further families need exploring.
	Solved *holes.Assignment

	// Improved is non-nil when this step tightened family.Optimality's
	// optimum: the caller should remember it as the new best-known witness.
	Improved *holes.Assignment

	// Children are the subfamilies (0, 1, or 2) the caller should push back
	// onto its stack.
	Children []*holes.DesignSpace

	// States is the size of the quotient model built for this family, for
	// reporting.
	States int

	// Pruned counts the family members this step conclusively resolved
	// without splitting: the whole family when it is discarded as
	// infeasible or incapable of improving the optimum, one when a
	// singleton's optimum was recorded.
	Pruned uint64
}

// Step performs one DFS decision for family: build its quotient model,
// decide qualitative feasibility first, and only consult optimality once
// feasibility is settled true, mirroring cegis.Step's ordering (check
// properties, then optimality) rather than the other way around, since an
// optimum computed before feasibility is known is not yet trustworthy: the
// family could still turn out Infeasible, and a "better" witness found
// along the way would otherwise tighten family.Optimality's shared
// threshold on the strength of an assignment that may not even be valid.
// It either resolves family outright (Solved, or Improved with no
// children, i.e. prune) or splits it (Children). It never pops or pushes
// any stack itself, so both Run and package hybrid can drive it against
// their own stacks.
func Step(backend quotient.Backend, family *holes.DesignSpace) (StepResult, error) {
	model, err := backend.Build(family)
	if err != nil {
		return StepResult{}, err
	}

	result := StepResult{States: model.States()}

	if len(family.Properties) > 0 {
		propResult, err := backend.CheckProperties(model, family.Properties)
		if err != nil {
			return StepResult{}, err
		}
		switch propResult.Feasibility {
		case quotient.Infeasible:
			result.Pruned = family.Size()
			return result, nil
		case quotient.Unknown:
			if len(propResult.Results) == 0 {
				return StepResult{}, ErrNoUndecidedResult
			}
			// Split on the last undecided result, the freshest bound.
			left, right, err := backend.PrepareSplit(model, propResult.Results[len(propResult.Results)-1], family.Properties)
			if err != nil {
				return StepResult{}, err
			}
			result.Children = []*holes.DesignSpace{left, right}
			return result, nil
		}
		// quotient.Feasible: properties are settled, fall through to
		// optimality (or to reporting Solved, below).
	}

	if !family.HasOptimality() {
		if len(family.Properties) > 0 {
			result.Solved = family.PickAny()
		}
		return result, nil
	}

	optResult, err := backend.CheckOptimality(model, family.Optimality)
	if err != nil {
		return StepResult{}, err
	}
	if !optResult.CanImprove {
		result.Pruned = family.Size()
		return result, nil
	}
	if optResult.ImprovingAssignment != nil && optResult.Optimum != nil {
		if family.Optimality.UpdateOptimum(*optResult.Optimum) {
			result.Improved = optResult.ImprovingAssignment
		}
	}
	if family.IsAssignment() {
		result.Pruned = 1
		return result, nil
	}
	left, right, err := backend.PrepareSplit(model, optResult.Result, nil)
	if err != nil {
		return StepResult{}, err
	}
	result.Children = []*holes.DesignSpace{left, right}
	return result, nil
}

// Run performs abstraction-refinement synthesis over family using backend.
// It returns the best assignment found (the first satisfying one for a pure
// decision problem, or the best-known optimum's witness for an optimality
// problem), or (nil, stats, nil) if the whole family is infeasible.
//
// The search is a LIFO stack of subfamilies, mirroring a classic
// branch-and-bound traversal: pop a family, ask the backend for a decision
// or a bound, and only pay for PrepareSplit's cost when that bound is
// inconclusive.
func Run(ctx context.Context, backend quotient.Backend, family *holes.DesignSpace) (*holes.Assignment, Stats, error) {
	stats := Stats{}
	var best *holes.Assignment

	stack := []*holes.DesignSpace{family}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return best, stats, err
		}

		current := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		stats.FamiliesExplored++

		res, err := Step(backend, current)
		if err != nil {
			return best, stats, err
		}
		stats.StatesSeen += res.States
		stats.Pruned += res.Pruned
		if res.Improved != nil {
			best = res.Improved
			stats.Feasible = true
		}
		if res.Solved != nil {
			stats.Feasible = true
			return res.Solved, stats, nil
		}
		stack = append(stack, res.Children...)
	}

	return best, stats, nil
}
