package reference

import "github.com/paynt-synth/corego/holes"

// Transition is one outgoing edge of Template, dense-indexed by its source
// state in Template.Transitions. Color 0 (the coloring's reserved hole-free
// color; see package holes) marks an edge that is always enabled, regardless of family
// or assignment; it carries no hole choice. Any other color is only
// enabled when it is a member of the family's (or assignment's) current
// Subcolors set.
type Transition struct {
	To    int
	Cost  float64
	Color int
}

// Template is a small, acyclic, hole-colored transition system: the
// synthetic stand-in this package uses in place of an externally supplied
// probabilistic model. States are dense integers in [0, NumStates); for
// each state, Transitions[state] lists every outgoing edge that could be
// enabled by some member of the family the template was built for.
//
// Transitions is addressed like a classic dense search buffer: a
// precomputed table of per-state edge lists walked by index during search,
// never mutated after
// NewTemplate returns.
type Template struct {
	NumStates   int
	Start       int
	Targets     map[int]struct{}
	Transitions [][]Transition
	Coloring    *holes.CombinationColoring
}

// NewTemplate validates and wraps a hand-built transition table. transitions
// must have exactly numStates entries; every Transition.To and every target
// must be a valid state index.
func NewTemplate(numStates, start int, targets []int, transitions [][]Transition, coloring *holes.CombinationColoring) (*Template, error) {
	if len(transitions) != numStates {
		return nil, ErrUnknownState
	}
	targetSet := make(map[int]struct{}, len(targets))
	for _, s := range targets {
		if s < 0 || s >= numStates {
			return nil, ErrUnknownState
		}
		targetSet[s] = struct{}{}
	}
	if start < 0 || start >= numStates {
		return nil, ErrUnknownState
	}
	for _, outgoing := range transitions {
		for _, tr := range outgoing {
			if tr.To < 0 || tr.To >= numStates {
				return nil, ErrUnknownState
			}
		}
	}

	return &Template{
		NumStates:   numStates,
		Start:       start,
		Targets:     targetSet,
		Transitions: transitions,
		Coloring:    coloring,
	}, nil
}

func (t *Template) isTarget(s int) bool {
	_, ok := t.Targets[s]
	return ok
}

// enabled reports the transitions out of s whose color is either 0 (always
// enabled) or present in colors.
func (t *Template) enabled(s int, colors map[int]struct{}) []Transition {
	out := t.Transitions[s]
	var result []Transition
	for _, tr := range out {
		if tr.Color == 0 {
			result = append(result, tr)
			continue
		}
		if _, ok := colors[tr.Color]; ok {
			result = append(result, tr)
		}
	}
	return result
}
