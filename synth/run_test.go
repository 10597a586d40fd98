package synth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/oracle"
	"github.com/paynt-synth/corego/quotient/reference"
	"github.com/paynt-synth/corego/synth"
)

// diamond mirrors the toy two-hole system used throughout ar/cegis/hybrid's
// own tests: h0 picks a cheap-but-risky path versus an expensive-but-safe
// one, h1 only matters once the risky path is taken.
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

func TestRunDefaultsToHybridAndFindsFeasibleAssignment(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	assignment, run, err := synth.Run(context.Background(), family, backend)
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.True(t, assignment.IsAssignment())
	assert.Greater(t, run.IterationsAR, 0)
}

func TestRunMethodARFindsOptimum(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	opt := holes.NewOptimalityProperty("cost", reference.MinCost{}, holes.Minimize)
	family, err := holes.New(hs, nil, opt)
	require.NoError(t, err)

	assignment, run, err := synth.Run(context.Background(), family, backend, synth.WithMethod(synth.MethodAR))
	require.NoError(t, err)
	require.NotNil(t, assignment)
	require.NotNil(t, run.BestValue)
	assert.InDelta(t, 1.0, *run.BestValue, 1e-9)
}

func TestRunMethodCEGISFindsFeasibleAssignment(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	assignment, run, err := synth.Run(context.Background(), family, backend, synth.WithMethod(synth.MethodCEGIS))
	require.NoError(t, err)
	require.NotNil(t, assignment)
	assert.Greater(t, run.IterationsCEGIS, 0)
}

// rewardChain is a three-stage chain where each of three holes picks one of
// three reward levels; the assignment {2,2,2} strictly dominates every
// other under maximization.
func rewardChain(t *testing.T) (*reference.Template, []holes.Hole) {
	t.Helper()
	labels := []string{"low", "mid", "high"}
	hs := make([]holes.Hole, 3)
	coloring := holes.NewCombinationColoring(3)
	transitions := make([][]reference.Transition, 4)
	for i, name := range []string{"h0", "h1", "h2"} {
		h, err := holes.NewHole(name, []int{0, 1, 2}, labels)
		require.NoError(t, err)
		hs[i] = h
		for o := 0; o < 3; o++ {
			comb := holes.Combination{holes.NoHole(), holes.NoHole(), holes.NoHole()}
			comb[i] = o
			color := coloring.GetOrMakeColor(comb)
			transitions[i] = append(transitions[i], reference.Transition{To: i + 1, Cost: float64(o), Color: color})
		}
	}
	tmpl, err := reference.NewTemplate(4, 0, []int{3}, transitions, coloring)
	require.NoError(t, err)

	return tmpl, hs
}

// TestRunMaximizationARAndCEGISAgreeOnOptimum runs the same 27-assignment
// maximization sketch through both methods and checks they settle on the
// same dominating assignment and value.
func TestRunMaximizationARAndCEGISAgreeOnOptimum(t *testing.T) {
	for _, method := range []synth.Method{synth.MethodAR, synth.MethodCEGIS} {
		t.Run(method.String(), func(t *testing.T) {
			tmpl, hs := rewardChain(t)
			backend := reference.NewBackend(tmpl)
			opt := holes.NewOptimalityProperty("reward", reference.MinCost{}, holes.Maximize)
			family, err := holes.New(hs, nil, opt)
			require.NoError(t, err)
			require.Equal(t, uint64(27), family.Size())

			assignment, run, err := synth.Run(context.Background(), family, backend, synth.WithMethod(method))
			require.NoError(t, err)
			require.NotNil(t, assignment)

			for i := 0; i < 3; i++ {
				option, err := assignment.Option(i)
				require.NoError(t, err)
				assert.Equal(t, 2, option)
			}
			require.NotNil(t, run.BestValue)
			assert.InDelta(t, 6.0, *run.BestValue, 1e-9)
		})
	}
}

func TestRunPOMDPWithoutUnfolderReportsUnsupportedMode(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	_, run, err := synth.Run(context.Background(), family, backend, synth.WithMethod(synth.MethodPOMDP))
	require.Error(t, err)
	var synthErr *synth.Error
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, synth.UnsupportedMode, synthErr.Kind)
	assert.ErrorIs(t, err, synth.ErrNoUnfolder)
	require.NotNil(t, run)
}

func TestRunCEGISOnPomdpSketchReportsUnsupportedMode(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	_, run, err := synth.Run(context.Background(), family, backend, synth.WithMethod(synth.MethodCEGIS), synth.WithPomdpSketch(true))
	require.Error(t, err)
	var synthErr *synth.Error
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, synth.UnsupportedMode, synthErr.Kind)
	assert.ErrorIs(t, err, synth.ErrCEGISOnPOMDPSketch)
	require.NotNil(t, run)
}

type malformedScheduler struct{}

func (malformedScheduler) GetChoice(int) string { return "not-a-valid-choice" }

// diamondOracleInfo treats the diamond's h0 as the action-hole of a single
// observation "o0" with actions labeled a0/a1.
func diamondOracleInfo() oracle.QuotientInfo {
	return oracle.QuotientInfo{
		ObservationLabels: []string{"o0"},
		ActionLabels:      [][][]string{{{"a0"}, {"a1"}}},
		StateObservation:  []int{0},
		ActionHoles:       map[int][]int{0: {0}},
	}
}

func TestRunOracleResultWithMalformedSchedulerReportsOracleContract(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	belief := oracle.BeliefResult{
		InducedMC:        []oracle.InducedState{{Labels: []string{"cutoff"}, ChoiceLabels: []string{"sched_0"}}},
		CutoffSchedulers: []oracle.CutoffScheduler{malformedScheduler{}},
	}
	_, run, err := synth.Run(context.Background(), family, backend, synth.WithOracleResult(diamondOracleInfo(), belief))
	require.Error(t, err)
	var synthErr *synth.Error
	require.ErrorAs(t, err, &synthErr)
	assert.Equal(t, synth.OracleContract, synthErr.Kind)
	require.NotNil(t, run)
}

func TestRunOracleResultRestrictsTheSearch(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	// The oracle vouches for taking a1 (the safe branch) at observation o0.
	belief := oracle.BeliefResult{
		InducedMC: []oracle.InducedState{{Labels: []string{"[o0]"}, ChoiceLabels: []string{"a1"}}},
	}
	assignment, _, err := synth.Run(context.Background(), family, backend, synth.WithOracleResult(diamondOracleInfo(), belief))
	require.NoError(t, err)
	require.NotNil(t, assignment)

	option, err := assignment.Option(0)
	require.NoError(t, err)
	assert.Equal(t, 1, option, "the fused restriction pins h0 to the oracle's recommendation")
}

func TestRunOracleChannelAdviceIsPolledNonBlocking(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	ch := make(chan oracle.BeliefResult, 1)
	ch <- oracle.BeliefResult{
		InducedMC: []oracle.InducedState{{Labels: []string{"[o0]"}, ChoiceLabels: []string{"a1"}}},
	}

	assignment, _, err := synth.Run(context.Background(), family, backend, synth.WithOracleChannel(diamondOracleInfo(), ch))
	require.NoError(t, err)
	require.NotNil(t, assignment)

	option, err := assignment.Option(0)
	require.NoError(t, err)
	assert.Equal(t, 1, option, "advice waiting on the channel restricts every family the hybrid loop touches")
}

func TestRunEmptyOracleChannelDoesNotBlock(t *testing.T) {
	tmpl, hs := diamond(t)
	backend := reference.NewBackend(tmpl)
	family, err := holes.New(hs, []holes.Property{{Name: "reach", Formula: reference.Reach{}}}, nil)
	require.NoError(t, err)

	ch := make(chan oracle.BeliefResult, 1)
	assignment, _, err := synth.Run(context.Background(), family, backend, synth.WithOracleChannel(diamondOracleInfo(), ch))
	require.NoError(t, err)
	require.NotNil(t, assignment, "an oracle that never delivers leaves the search unrestricted")
}
