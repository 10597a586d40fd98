package reference

import (
	"math"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
)

// Reach is the only holes.Property.Formula this backend understands for
// CheckProperties/CheckPropertiesDTMC: "the template's fixed target set is
// reached". A richer backend would carry an actual formula language; this
// one keeps a single canonical property so tests can focus on the
// AR/CEGIS/POMDP control flow instead of a formula grammar.
type Reach struct{}

// MinCost is the only holes.OptimalityProperty.Formula this backend
// understands: minimize or maximize (per Direction) the cost of reaching
// the template's fixed target set.
type MinCost struct{}

// CheckProperties implements quotient.Backend.
func (b *Backend) CheckProperties(model quotient.Model, properties []holes.Property) (quotient.CheckPropertiesResult, error) {
	m, ok := model.(*mdpModel)
	if !ok {
		return quotient.CheckPropertiesResult{}, ErrUnknownState
	}
	for _, p := range properties {
		if _, ok := p.Formula.(Reach); !ok {
			return quotient.CheckPropertiesResult{}, ErrUnsupportedFormula
		}
	}

	all, err := allPathsReach(m.template, m.template.Start, m.colors, freshColoring(m.template.NumStates), map[int]bool{})
	if err != nil {
		return quotient.CheckPropertiesResult{}, err
	}
	if all {
		return quotient.CheckPropertiesResult{Feasibility: quotient.Feasible}, nil
	}

	exists, err := existsPathReach(m.template, m.template.Start, m.colors, freshColoring(m.template.NumStates), map[int]bool{})
	if err != nil {
		return quotient.CheckPropertiesResult{}, err
	}
	if !exists {
		return quotient.CheckPropertiesResult{Feasibility: quotient.Infeasible}, nil
	}

	scheduler := canonicalScheduler(m.template, m.colors)
	results := make([]quotient.UndecidedResult, len(properties))
	for i, p := range properties {
		results[i] = quotient.UndecidedResult{Property: p, Scheduler: scheduler, Data: m.colors}
	}
	return quotient.CheckPropertiesResult{
		Feasibility: quotient.Unknown,
		Undecided:   properties,
		Results:     results,
	}, nil
}

// CheckOptimality implements quotient.Backend. It reports an admissible
// bound (the best cost reachable under any enabled choice) rather than a
// concrete value, except when family is already a singleton assignment, in
// which case nondeterminism is fully resolved and the bound is exact.
func (b *Backend) CheckOptimality(model quotient.Model, opt *holes.OptimalityProperty) (quotient.CheckOptimalityResult, error) {
	m, ok := model.(*mdpModel)
	if !ok {
		return quotient.CheckOptimalityResult{}, ErrUnknownState
	}
	if _, ok := opt.Formula.(MinCost); !ok {
		return quotient.CheckOptimalityResult{}, ErrUnsupportedFormula
	}

	bound, err := optimisticBound(m.template, m.colors, opt.Direction)
	if err != nil {
		return quotient.CheckOptimalityResult{}, err
	}

	result := quotient.UndecidedResult{Property: opt.Property, Scheduler: canonicalScheduler(m.template, m.colors), Data: m.colors}
	if math.IsInf(bound, 0) {
		return quotient.CheckOptimalityResult{Result: result, CanImprove: false}, nil
	}

	current, hasCurrent := opt.Optimum()
	canImprove := !hasCurrent || improves(bound, current, opt.Direction)

	out := quotient.CheckOptimalityResult{Result: result, CanImprove: canImprove}
	if m.family.IsAssignment() && canImprove {
		value := bound
		out.Optimum = &value
		out.ImprovingAssignment = m.family.PickAny()
	}
	return out, nil
}

// CheckPropertiesDTMC implements quotient.Backend.
func (b *Backend) CheckPropertiesDTMC(model quotient.DTMCModel, properties []holes.Property) (bool, []holes.Property, error) {
	d, ok := model.(*dtmcModel)
	if !ok {
		return false, nil, ErrUnknownState
	}
	for _, p := range properties {
		if _, ok := p.Formula.(Reach); !ok {
			return false, nil, ErrUnsupportedFormula
		}
	}

	reached, err := existsPathReach(d.template, d.template.Start, d.colors, freshColoring(d.template.NumStates), map[int]bool{})
	if err != nil {
		return false, nil, err
	}
	if reached {
		return true, nil, nil
	}

	var unsat []holes.Property
	unsat = append(unsat, properties...)
	return false, unsat, nil
}

// CheckOptimalityDTMC implements quotient.Backend.
func (b *Backend) CheckOptimalityDTMC(model quotient.DTMCModel, opt *holes.OptimalityProperty) (float64, bool, error) {
	d, ok := model.(*dtmcModel)
	if !ok {
		return 0, false, ErrUnknownState
	}
	if _, ok := opt.Formula.(MinCost); !ok {
		return 0, false, ErrUnsupportedFormula
	}

	value, err := minCostToTarget(d.template, d.template.Start, d.colors, freshColoring(d.template.NumStates), map[int]float64{})
	if err != nil {
		return 0, false, err
	}
	if opt.Direction == holes.Maximize {
		value, err = negatedMaxCostToTarget(d.template, d.colors)
		if err != nil {
			return 0, false, err
		}
	}
	if math.IsInf(value, 0) {
		return 0, false, nil
	}

	current, hasCurrent := opt.Optimum()
	return value, !hasCurrent || improves(value, current, opt.Direction), nil
}

// ConflictGenerator implements quotient.Backend with the trivial "all
// holes" default: every violated property is explained, conservatively, by
// the whole hole tuple. Real conflict minimization is the job of an
// external generator a caller can plug into quotient.Backend instead.
func (b *Backend) ConflictGenerator(model quotient.DTMCModel, assignment *holes.Assignment, violated []holes.Property) ([][]int, error) {
	allHoles := make([]int, assignment.NumHoles())
	for i := range allHoles {
		allHoles[i] = i
	}
	conflicts := make([][]int, len(violated))
	for i := range violated {
		conflicts[i] = allHoles
	}
	return conflicts, nil
}

func improves(candidate, current float64, dir holes.Direction) bool {
	if dir == holes.Maximize {
		return candidate > current
	}
	return candidate < current
}

func optimisticBound(t *Template, colors map[int]struct{}, dir holes.Direction) (float64, error) {
	if dir == holes.Maximize {
		return negatedMaxCostToTarget(t, colors)
	}
	return minCostToTarget(t, t.Start, colors, freshColoring(t.NumStates), map[int]float64{})
}

// negatedMaxCostToTarget returns the greatest cost of any enabled path to a
// target, computed by negating edge costs and reusing minCostToTarget's
// bottom-up relaxation (max(x) == -min(-x)).
func negatedMaxCostToTarget(t *Template, colors map[int]struct{}) (float64, error) {
	negated := make([][]Transition, len(t.Transitions))
	for s, outgoing := range t.Transitions {
		negated[s] = make([]Transition, len(outgoing))
		for i, tr := range outgoing {
			negated[s][i] = Transition{To: tr.To, Cost: -tr.Cost, Color: tr.Color}
		}
	}
	flipped := &Template{NumStates: t.NumStates, Start: t.Start, Targets: t.Targets, Transitions: negated, Coloring: t.Coloring}
	value, err := minCostToTarget(flipped, flipped.Start, colors, freshColoring(flipped.NumStates), map[int]float64{})
	if err != nil {
		return 0, err
	}
	if math.IsInf(value, 0) {
		return value, nil
	}
	return -value, nil
}
