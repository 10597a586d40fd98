package cegis

import (
	"context"
	"errors"
	"log"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
	"github.com/paynt-synth/corego/satenum"
)

// Stats summarizes one Run: how many candidate assignments the SAT oracle
// produced and whether any satisfying one was found.
type Stats struct {
	Iterations int
	StatesSeen int
	Pruned     int
	Feasible   bool
}

// StepResult is the outcome of trying exactly one candidate assignment of
// family with Step.
type StepResult struct {
	// Solved is non-nil when the candidate satisfied every property and
	// family has no optimality property: the caller should stop.
	Solved *holes.Assignment

	// Improved is non-nil when the candidate tightened family.Optimality's
	// optimum.
	Improved *holes.Assignment

	// Exhausted is true when the encoder reports no candidates remain for
	// family: every assignment has been excluded, so family as a whole is
	// proven infeasible (or, for optimal synthesis, fully explored) and the
	// caller should drop it.
	Exhausted bool

	// States is the size of the DTMC built for this candidate, for
	// reporting.
	States int

	// Pruned counts the assignments this step permanently excluded (at
	// least the candidate itself; conflict generalization may block more,
	// but only the witness is counted here).
	Pruned int
}

// Step tries one candidate assignment of family: pick it from encoder,
// check it against backend's DTMC checker, and block it (or a
// backend-generalized class of assignments sharing its blamed holes) before
// returning. It never loops itself, so both Run and package hybrid can
// drive it against their own control flow.
func Step(backend quotient.Backend, encoder *satenum.Encoder, family *holes.DesignSpace) (StepResult, error) {
	assignment, ok, err := encoder.PickAssignment(family)
	if err != nil {
		return StepResult{}, err
	}
	if !ok {
		return StepResult{Exhausted: true}, nil
	}

	dtmc, err := backend.BuildDTMC(assignment)
	if err != nil {
		return StepResult{}, err
	}
	states := dtmc.States()

	sat, unsatProperties, err := backend.CheckPropertiesDTMC(dtmc, family.Properties)
	if err != nil {
		return StepResult{}, err
	}
	if !sat {
		conflicts, err := backend.ConflictGenerator(dtmc, assignment, unsatProperties)
		if err != nil {
			return StepResult{}, err
		}
		if len(conflicts) == 0 {
			conflicts = [][]int{allHoleIndices(family.NumHoles())}
		}
		for _, conflict := range conflicts {
			if err := encoder.ExcludeAssignment(assignment, conflict, family); err != nil {
				return StepResult{}, err
			}
		}
		return StepResult{States: states, Pruned: 1}, nil
	}

	result := StepResult{States: states}
	if !family.HasOptimality() {
		result.Solved = assignment
		return result, nil
	}

	value, improves, err := backend.CheckOptimalityDTMC(dtmc, family.Optimality)
	if err != nil {
		return StepResult{}, err
	}
	if improves && family.Optimality.UpdateOptimum(value) {
		result.Improved = assignment
	}

	// A satisfying-but-not-necessarily-better assignment must still be
	// excluded, or the encoder would keep handing it back forever.
	if err := encoder.ExcludeAssignment(assignment, allHoleIndices(family.NumHoles()), family); err != nil {
		return StepResult{}, err
	}
	result.Pruned = 1
	return result, nil
}

// Run repeatedly steps through family until the encoder is exhausted or a
// decision problem is solved, returning the best assignment found.
func Run(ctx context.Context, backend quotient.Backend, encoder *satenum.Encoder, family *holes.DesignSpace) (*holes.Assignment, Stats, error) {
	stats := Stats{}
	var best *holes.Assignment

	for {
		if err := ctx.Err(); err != nil {
			return best, stats, err
		}

		res, err := Step(backend, encoder, family)
		if err != nil {
			if errors.Is(err, satenum.ErrSolverUnknown) {
				// An indeterminate solver answer leaves no recoverable
				// state behind the permanent blocking clauses; treat it
				// like an exhausted family.
				log.Printf("cegis: %v; treating family as exhausted", err)
				break
			}
			return best, stats, err
		}
		if res.Exhausted {
			break
		}
		stats.Iterations++
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
	}

	return best, stats, nil
}

func allHoleIndices(numHoles int) []int {
	indices := make([]int, numHoles)
	for i := range indices {
		indices[i] = i
	}
	return indices
}
