package ar_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paynt-synth/corego/ar"
	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient/reference"
)

// diamond is the same two-hole toy system used by the reference backend's
// own tests: h0 picks between a cheap-but-risky path and an expensive-but-
// safe one, h1 only matters once the risky path is taken.
func diamond(t *testing.T) (*reference.Template, []holes.Hole) {
	t.Helper()
	h0, err := holes.NewHole("h0", []int{0, 1}, []string{"left", "right"})
	require.NoError(t, err)
	h1, err := holes.NewHole("h1", []int{0, 1}, []string{"good", "bad"})
	require.NoError(t, err)

	coloring := holes.NewCombinationColoring(2)
	colorH0Left := coloring.GetOrMakeColor(holes.Combination{0, holes.NoHole()})
	colorH0Right := coloring.GetOrMakeColor(holes.Combination{1, holes.NoHole()})
	colorH1Good := coloring.GetOrMakeColor(holes.Combination{holes.NoHole(), 0})
	colorH1Bad := coloring.GetOrMakeColor(holes.Combination{holes.NoHole(), 1})

	transitions := [][]reference.Transition{
		0: {{To: 1, Cost: 0, Color: colorH0Left}, {To: 2, Cost: 0, Color: colorH0Right}},
		1: {{To: 3, Cost: 1, Color: colorH1Good}, {To: 4, Cost: 1, Color: colorH1Bad}},
		2: {{To: 3, Cost: 5, Color: 0}},
		3: {},
		4: {},
	}
	tmpl, err := reference.NewTemplate(5, 0, []int{3}, transitions, coloring)
	require.NoError(t, err)

	return tmpl, []holes.Hole{h0, h1}
}

func TestRunFindsFeasibleAssignment(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	assignment, stats, err := ar.Run(context.Background(), backend, family)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.True(t, stats.Feasible)
	assert.True(t, assignment.IsAssignment())
}

func TestRunInfeasibleFamilyReturnsNilAssignment(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)
	bad := family.AssumeAllSuboptions(map[int][]int{0: {0}, 1: {1}})

	assignment, stats, err := ar.Run(context.Background(), backend, bad)
	require.NoError(t, err)
	assert.Nil(t, assignment)
	assert.False(t, stats.Feasible)
}

func TestRunOptimalSynthesisFindsMinimumCost(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	opt := holes.NewOptimalityProperty("cost", reference.MinCost{}, holes.Minimize)
	family, err := holes.New(hs, nil, opt)
	require.NoError(t, err)

	assignment, stats, err := ar.Run(context.Background(), backend, family)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.True(t, stats.Feasible)

	h0Opt, err := assignment.Option(0)
	require.NoError(t, err)
	h1Opt, err := assignment.Option(1)
	require.NoError(t, err)
	assert.Equal(t, 0, h0Opt, "the cheapest path picks the left branch")
	assert.Equal(t, 0, h1Opt, "and then the good h1 continuation")

	optimum, ok := opt.Optimum()
	require.True(t, ok)
	assert.InDelta(t, 1.0, optimum, 1e-9)
}

// TestRunCombinedPropertiesAndOptimalityFindsOptimalFeasibleAssignment covers
// the branch where a family carries both a reach property and an optimality
// property at once: the left/bad sub-path is cheaper to reach but never
// satisfies reach, so a synthesizer that let optimality override feasibility
// could be tempted to prefer it. Step must settle properties first and only
// ever report the left/good assignment (cost 1) as the optimum.
func TestRunCombinedPropertiesAndOptimalityFindsOptimalFeasibleAssignment(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	opt := holes.NewOptimalityProperty("cost", reference.MinCost{}, holes.Minimize)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, opt)
	require.NoError(t, err)

	assignment, stats, err := ar.Run(context.Background(), backend, family)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.True(t, stats.Feasible)

	h0Opt, err := assignment.Option(0)
	require.NoError(t, err)
	h1Opt, err := assignment.Option(1)
	require.NoError(t, err)
	assert.Equal(t, 0, h0Opt, "the optimum must still satisfy reach, ruling out the cheaper infeasible branch")
	assert.Equal(t, 0, h1Opt)

	optimum, ok := opt.Optimum()
	require.True(t, ok)
	assert.InDelta(t, 1.0, optimum, 1e-9)
}

// TestStepNeverTouchesOptimalityOnInfeasibleSingleton locks in the ordering
// fix directly at the Step level: an assignment that fails its reach
// property must short-circuit before CheckOptimality ever runs, so a shared
// Optimality threshold is left completely untouched by an infeasible witness.
func TestStepNeverTouchesOptimalityOnInfeasibleSingleton(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	opt := holes.NewOptimalityProperty("cost", reference.MinCost{}, holes.Minimize)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, opt)
	require.NoError(t, err)
	deadEnd := family.AssumeAllSuboptions(map[int][]int{0: {0}, 1: {1}})
	require.True(t, deadEnd.IsAssignment())

	result, err := ar.Step(backend, deadEnd)
	require.NoError(t, err)
	assert.Nil(t, result.Solved)
	assert.Nil(t, result.Improved)
	assert.Empty(t, result.Children)

	_, ok := opt.Optimum()
	assert.False(t, ok, "an infeasible singleton must never seed the shared optimum")
}

// oneHoleSwitch is a single hole of size 2 where only option 0 reaches the
// target.
func oneHoleSwitch(t *testing.T) (*reference.Template, []holes.Hole) {
	t.Helper()
	h0, err := holes.NewHole("h0", []int{0, 1}, []string{"on", "off"})
	require.NoError(t, err)

	coloring := holes.NewCombinationColoring(1)
	on := coloring.GetOrMakeColor(holes.Combination{0})
	off := coloring.GetOrMakeColor(holes.Combination{1})

	transitions := [][]reference.Transition{
		0: {{To: 1, Cost: 1, Color: on}, {To: 2, Cost: 1, Color: off}},
		1: {},
		2: {},
	}
	tmpl, err := reference.NewTemplate(3, 0, []int{1}, transitions, coloring)
	require.NoError(t, err)

	return tmpl, []holes.Hole{h0}
}

// TestRunTrivialSatWithinBuildBudget: the scheduler-guided split explores
// the satisfying half first, so the whole search costs two model builds.
func TestRunTrivialSatWithinBuildBudget(t *testing.T) {
	tmpl, hs := oneHoleSwitch(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	assignment, stats, err := ar.Run(context.Background(), backend, family)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	option, err := assignment.Option(0)
	require.NoError(t, err)
	assert.Equal(t, 0, option)
	assert.LessOrEqual(t, stats.FamiliesExplored, 2, "one build for the full family, one for the satisfying half")
}

// allUnsat is a two-hole family (size 4) in which no assignment reaches the
// target.
func allUnsat(t *testing.T) (*reference.Template, []holes.Hole) {
	t.Helper()
	h0, err := holes.NewHole("h0", []int{0, 1}, []string{"a", "b"})
	require.NoError(t, err)
	h1, err := holes.NewHole("h1", []int{0, 1}, []string{"x", "y"})
	require.NoError(t, err)

	coloring := holes.NewCombinationColoring(2)
	c0 := coloring.GetOrMakeColor(holes.Combination{0, holes.NoHole()})
	c1 := coloring.GetOrMakeColor(holes.Combination{1, holes.NoHole()})

	// Every choice leads to the dead end; the target state 2 is unreachable.
	transitions := [][]reference.Transition{
		0: {{To: 1, Cost: 1, Color: c0}, {To: 1, Cost: 1, Color: c1}},
		1: {},
		2: {},
	}
	tmpl, err := reference.NewTemplate(3, 0, []int{2}, transitions, coloring)
	require.NoError(t, err)

	return tmpl, []holes.Hole{h0, h1}
}

// TestRunAllUnsatPrunesWholeFamilyAtOnce: a family-wide infeasibility proof
// prunes all four members with a single model build.
func TestRunAllUnsatPrunesWholeFamilyAtOnce(t *testing.T) {
	tmpl, hs := allUnsat(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)
	require.Equal(t, uint64(4), family.Size())

	assignment, stats, err := ar.Run(context.Background(), backend, family)
	require.NoError(t, err)
	assert.Nil(t, assignment)
	assert.False(t, stats.Feasible)
	assert.Equal(t, uint64(4), stats.Pruned)
	assert.Equal(t, 1, stats.FamiliesExplored)
}

func TestRunContextCancellationStopsEarly(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, _, err = ar.Run(ctx, backend, family)
	assert.ErrorIs(t, err, context.Canceled)
}
