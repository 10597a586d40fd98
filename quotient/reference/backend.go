package reference

import (
	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
)

// Backend is a quotient.Backend backed by a single, fixed Template. Tests
// construct one Template describing a toy system and share one Backend
// across every Build/BuildDTMC call the synthesizer under test makes.
type Backend struct {
	template *Template
}

// NewBackend wraps template as a quotient.Backend.
func NewBackend(template *Template) *Backend {
	return &Backend{template: template}
}

type mdpModel struct {
	template *Template
	family   *holes.DesignSpace
	colors   map[int]struct{}
}

func (m *mdpModel) States() int { return m.template.NumStates }

type dtmcModel struct {
	template   *Template
	assignment *holes.Assignment
	colors     map[int]struct{}
}

func (m *dtmcModel) States() int { return m.template.NumStates }

// Build implements quotient.Backend.
func (b *Backend) Build(family *holes.DesignSpace) (quotient.Model, error) {
	colors := b.template.Coloring.Subcolors(family)
	return &mdpModel{template: b.template, family: family, colors: colors}, nil
}

// BuildDTMC implements quotient.Backend. It fails with ErrNotDeterministic
// if, after restricting to assignment's singleton colors, some reachable
// non-target state still has more than one enabled transition.
func (b *Backend) BuildDTMC(assignment *holes.Assignment) (quotient.DTMCModel, error) {
	colors := b.template.Coloring.Subcolors(assignment)
	if err := checkDeterministic(b.template, colors); err != nil {
		return nil, err
	}
	return &dtmcModel{template: b.template, assignment: assignment, colors: colors}, nil
}

func checkDeterministic(t *Template, colors map[int]struct{}) error {
	visited := make([]bool, t.NumStates)
	queue := []int{t.Start}
	visited[t.Start] = true
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if t.isTarget(s) {
			continue
		}
		enabled := t.enabled(s, colors)
		if len(enabled) > 1 {
			return ErrNotDeterministic
		}
		for _, tr := range enabled {
			if !visited[tr.To] {
				visited[tr.To] = true
				queue = append(queue, tr.To)
			}
		}
	}
	return nil
}
