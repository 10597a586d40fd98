package reference

import (
	"sort"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
)

// Scheduler resolves an mdpModel's nondeterminism by recording, for every
// state it visited, the color of the transition it took. Color 0 (hole-free)
// entries carry no hole information and are skipped by SchedulerSelection.
type Scheduler struct {
	Choices map[int]int
}

// canonicalScheduler picks, at every state reachable under colors, the
// first enabled transition from which a target is still reachable, falling
// back to the first enabled transition outright when no successor reaches a
// target (or the enabled subgraph is cyclic). The tie-break is fixed and
// deterministic; target-seeking makes the resulting per-hole selection a
// meaningful consistency signal for the POMDP driver rather than an
// arbitrary one.
func canonicalScheduler(t *Template, colors map[int]struct{}) *Scheduler {
	choices := make(map[int]int)
	memo := make(map[int]bool)
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
		if len(enabled) == 0 {
			continue
		}
		chosen := enabled[0]
		for _, tr := range enabled {
			reaches, err := existsPathReach(t, tr.To, colors, freshColoring(t.NumStates), memo)
			if err == nil && reaches {
				chosen = tr
				break
			}
		}
		choices[s] = chosen.Color
		if !visited[chosen.To] {
			visited[chosen.To] = true
			queue = append(queue, chosen.To)
		}
	}
	return &Scheduler{Choices: choices}
}

// SchedulerSelection implements quotient.Backend.
func (b *Backend) SchedulerSelection(model quotient.Model, scheduler quotient.Scheduler) ([][]int, error) {
	m, ok := model.(*mdpModel)
	if !ok {
		return nil, ErrUnknownState
	}
	s, ok := scheduler.(*Scheduler)
	if !ok {
		return nil, ErrUnsupportedScheduler
	}

	numHoles := m.family.NumHoles()
	seen := make([]map[int]struct{}, numHoles)
	for i := range seen {
		seen[i] = make(map[int]struct{})
	}
	for _, color := range s.Choices {
		if color == 0 {
			continue
		}
		comb, ok := m.template.Coloring.ReverseLookup(color)
		if !ok {
			continue
		}
		for holeIndex, option := range comb {
			if option == holes.NoHole() || holeIndex >= numHoles {
				continue
			}
			seen[holeIndex][option] = struct{}{}
		}
	}

	result := make([][]int, numHoles)
	for i, set := range seen {
		opts := make([]int, 0, len(set))
		for o := range set {
			opts = append(opts, o)
		}
		sort.Ints(opts)
		result[i] = opts
	}
	return result, nil
}

// PrepareSplit implements quotient.Backend, splitting the largest
// still-undecided hole in half. Ties break toward the lowest hole index;
// any deterministic heuristic satisfies the contract. When the undecided
// result carries a scheduler, the half containing that scheduler's choice
// for the split hole is returned as the right subfamily, so a LIFO caller
// pushing left-then-right explores the promising side first.
func (b *Backend) PrepareSplit(model quotient.Model, undecided quotient.UndecidedResult, properties []holes.Property) (*holes.DesignSpace, *holes.DesignSpace, error) {
	m, ok := model.(*mdpModel)
	if !ok {
		return nil, nil, ErrUnknownState
	}

	splitIdx := -1
	best := 1
	for i, h := range m.family.Holes {
		if h.Size() > best {
			best = h.Size()
			splitIdx = i
		}
	}
	if splitIdx == -1 {
		return nil, nil, ErrNoSplittableHole
	}

	options := m.family.Holes[splitIdx].Options
	mid := len(options) / 2
	lo, hi := options[:mid], options[mid:]
	if s, ok := undecided.Scheduler.(*Scheduler); ok {
		if preferred, found := preferredOption(m.template, s, splitIdx); found && optionIn(lo, preferred) {
			lo, hi = hi, lo
		}
	}
	left := m.family.AssumeSuboptions(splitIdx, lo)
	right := m.family.AssumeSuboptions(splitIdx, hi)
	return left, right, nil
}

// preferredOption reads the option scheduler chose for holeIndex, if any of
// its choices bind that hole. States are walked in ascending order so the
// answer is deterministic.
func preferredOption(t *Template, s *Scheduler, holeIndex int) (int, bool) {
	states := make([]int, 0, len(s.Choices))
	for state := range s.Choices {
		states = append(states, state)
	}
	sort.Ints(states)
	for _, state := range states {
		color := s.Choices[state]
		if color == 0 {
			continue
		}
		comb, ok := t.Coloring.ReverseLookup(color)
		if !ok || holeIndex >= len(comb) {
			continue
		}
		if option := comb[holeIndex]; option != holes.NoHole() {
			return option, true
		}
	}
	return 0, false
}

func optionIn(options []int, option int) bool {
	for _, o := range options {
		if o == option {
			return true
		}
	}
	return false
}
