package pomdp

import (
	"context"
	"sort"

	"github.com/paynt-synth/corego/ar"
	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
)

// MemoryScheme maps an observation id to the number of memory states
// currently injected for it. A fresh scheme starts every observation at 1
// (no memory beyond the observation itself).
type MemoryScheme map[int]int

// HoleLayout reports which holes of an unfolded design space each
// observation owns: the action-holes choosing what to do under that
// observation (one per injected memory state) and the memory-holes choosing
// which memory state to move to. Both maps are keyed by observation id and
// hold hole indices valid for the design space built from the same scheme.
type HoleLayout struct {
	ActionHoles map[int][]int
	MemoryHoles map[int][]int
}

// Unfolder turns a MemoryScheme into a synthesizable design space. Build is
// necessarily sketch-specific: only the sketch knows how a memory hole's
// extra options map onto the underlying model. Layout exposes the
// observation-to-hole bookkeeping the driver's consistency analysis and
// symmetry breaking run on.
type Unfolder interface {
	// Observations lists every observation id the POMDP has.
	Observations() []int

	// Build constructs the design space for scheme.
	Build(scheme MemoryScheme) (*holes.DesignSpace, error)

	// Layout reports which holes of Build(scheme)'s design space each
	// observation owns.
	Layout(scheme MemoryScheme) HoleLayout
}

// Strategy selects how memory grows after a round without a solution.
type Strategy int

const (
	// IncrementAll grows every observation's memory by one each round and
	// performs no scheduler analysis.
	IncrementAll Strategy = iota
	// IncrementWorst restricts each round's family by the quotient
	// scheduler's consistent choices (with symmetry breaking for
	// observations owning several action-holes) and grows only the
	// observations whose holes that scheduler still leaves inconsistent.
	IncrementWorst
)

// Option configures Run.
type Option func(*config)

type config struct {
	strategy  Strategy
	maxMemory int
}

// WithStrategy selects the memory-injection strategy. The default is IncrementAll.
func WithStrategy(s Strategy) Option {
	return func(c *config) { c.strategy = s }
}

// WithMaxMemory caps how many memory states any one observation may reach
// before Run gives up. The default is 8.
func WithMaxMemory(max int) Option {
	return func(c *config) { c.maxMemory = max }
}

// Stats summarizes one Run.
type Stats struct {
	Rounds     int
	StatesSeen int
	Feasible   bool
	Scheme     MemoryScheme
}

// Run repeatedly unfolds unfolder at growing memory sizes, synthesizing
// each unfolded family with abstraction refinement, until a solution is
// found or the memory budget (WithMaxMemory) is exhausted for every
// observation.
//
// Under IncrementWorst each round first extracts the quotient scheduler's
// per-hole option selection, restricts consistently-chosen action-holes to
// their selected option, breaks permutation symmetry among an observation's
// multiple action-holes, runs AR on the restricted family, and then injects
// one additional memory cell into every observation still owning an
// inconsistent action- or memory-hole. For a pure decision problem Run
// stops at the first satisfying assignment; under an optimality property it
// keeps deepening memory until the scheduler turns fully consistent or the
// budget runs out, returning the best assignment found.
func Run(ctx context.Context, backend quotient.Backend, unfolder Unfolder, opts ...Option) (*holes.Assignment, Stats, error) {
	cfg := config{strategy: IncrementAll, maxMemory: 8}
	for _, opt := range opts {
		opt(&cfg)
	}

	observations := unfolder.Observations()
	if len(observations) == 0 {
		return nil, Stats{}, ErrNoObservations
	}

	scheme := make(MemoryScheme, len(observations))
	for _, obs := range observations {
		scheme[obs] = 1
	}

	stats := Stats{}
	var best *holes.Assignment
	for {
		if err := ctx.Err(); err != nil {
			return best, stats, err
		}
		stats.Rounds++

		family, err := unfolder.Build(scheme)
		if err != nil {
			return best, stats, err
		}
		layout := unfolder.Layout(scheme)

		search := family
		var selection [][]int
		if cfg.strategy == IncrementWorst {
			selection, err = schedulerSelection(backend, family)
			if err != nil {
				return best, stats, err
			}
			if selection != nil {
				search = RestrictFamily(family, selection, layout.ActionHoles)
			}
		}

		assignment, arStats, err := ar.Run(ctx, backend, search)
		stats.StatesSeen += arStats.StatesSeen
		if err != nil {
			return best, stats, err
		}
		if assignment != nil {
			best = assignment
			stats.Feasible = true
			if !family.HasOptimality() {
				stats.Scheme = cloneScheme(scheme)
				return best, stats, nil
			}
		}

		targets := observations
		if cfg.strategy == IncrementWorst && selection != nil {
			inconsistent := InconsistentObservations(selection, layout)
			if len(inconsistent) == 0 && best != nil {
				// The scheduler agrees on every hole: more memory cannot
				// change its choices, so the best found is final.
				stats.Scheme = cloneScheme(scheme)
				return best, stats, nil
			}
			if len(inconsistent) > 0 {
				targets = inconsistent
			}
		}

		if !grow(scheme, targets, cfg.maxMemory) && !grow(scheme, observations, cfg.maxMemory) {
			stats.Scheme = cloneScheme(scheme)
			if best != nil {
				return best, stats, nil
			}
			return nil, stats, ErrMemoryBudgetExhausted
		}
	}
}

// grow injects one memory cell into every target observation still below
// the cap, reporting whether anything grew.
func grow(scheme MemoryScheme, targets []int, maxMemory int) bool {
	grew := false
	for _, obs := range targets {
		if scheme[obs] < maxMemory {
			scheme[obs]++
			grew = true
		}
	}
	return grew
}

// schedulerSelection builds family's quotient model, model-checks it to
// obtain a scheduler (via the optimality property when present, the
// qualitative properties otherwise), and extracts that scheduler's per-hole
// option selection. It returns (nil, nil) when model checking decides the
// family outright and hands back no scheduler to analyze.
func schedulerSelection(backend quotient.Backend, family *holes.DesignSpace) ([][]int, error) {
	model, err := backend.Build(family)
	if err != nil {
		return nil, err
	}

	var scheduler quotient.Scheduler
	if family.HasOptimality() {
		optResult, err := backend.CheckOptimality(model, family.Optimality)
		if err != nil {
			return nil, err
		}
		scheduler = optResult.Result.Scheduler
	}
	if scheduler == nil && len(family.Properties) > 0 {
		propResult, err := backend.CheckProperties(model, family.Properties)
		if err != nil {
			return nil, err
		}
		if len(propResult.Results) > 0 {
			scheduler = propResult.Results[0].Scheduler
		}
	}
	if scheduler == nil {
		return nil, nil
	}

	return backend.SchedulerSelection(model, scheduler)
}

// RestrictFamily applies the scheduler's consistent choices to family: an
// observation owning a single action-hole whose selection is a singleton
// has that hole pinned to the selected option; an observation owning
// several action-holes (from prior memory injections) instead has each
// hole's scheduler-chosen option removed, so later refinements explore
// assignments that are not permutations of the one the scheduler already
// tried. A removal that would empty a hole is skipped.
func RestrictFamily(family *holes.DesignSpace, selection [][]int, actionHoles map[int][]int) *holes.DesignSpace {
	result := family
	for _, obs := range sortedKeys(actionHoles) {
		holeIdxs := actionHoles[obs]
		if len(holeIdxs) == 1 {
			h := holeIdxs[0]
			if h < 0 || h >= len(selection) || len(selection[h]) != 1 {
				continue
			}
			result = result.AssumeSuboptions(h, selection[h])
			continue
		}
		for _, h := range holeIdxs {
			if h < 0 || h >= len(selection) || len(selection[h]) == 0 {
				continue
			}
			remaining := removeOption(result.Holes[h].Options, selection[h][0])
			if len(remaining) == 0 {
				continue
			}
			result = result.AssumeSuboptions(h, remaining)
		}
	}
	return result
}

// InconsistentObservations reports, in ascending order, every observation
// one of whose action- or memory-holes the selection (a
// Backend.SchedulerSelection result, indexed by hole) did not restrict to
// a single option. An observation all of whose holes are singleton-selected
// is consistent: the scheduler already agrees on that memory's meaning, and
// injecting more does not help it.
func InconsistentObservations(selection [][]int, layout HoleLayout) []int {
	flagged := make(map[int]struct{})
	for _, obsHoles := range []map[int][]int{layout.ActionHoles, layout.MemoryHoles} {
		for obs, holeIdxs := range obsHoles {
			for _, h := range holeIdxs {
				if h < 0 || h >= len(selection) {
					continue
				}
				if len(selection[h]) > 1 {
					flagged[obs] = struct{}{}
					break
				}
			}
		}
	}

	inconsistent := make([]int, 0, len(flagged))
	for obs := range flagged {
		inconsistent = append(inconsistent, obs)
	}
	sort.Ints(inconsistent)
	return inconsistent
}

func sortedKeys(m map[int][]int) []int {
	keys := make([]int, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Ints(keys)
	return keys
}

func removeOption(options []int, option int) []int {
	out := make([]int, 0, len(options))
	for _, o := range options {
		if o != option {
			out = append(out, o)
		}
	}
	return out
}

func cloneScheme(scheme MemoryScheme) MemoryScheme {
	out := make(MemoryScheme, len(scheme))
	for k, v := range scheme {
		out[k] = v
	}
	return out
}
