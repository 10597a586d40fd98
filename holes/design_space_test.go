package holes_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paynt-synth/corego/holes"
)

func twoHoleSpace(t *testing.T) *holes.DesignSpace {
	t.Helper()
	h0, err := holes.NewHole("h0", []int{0, 1, 2}, []string{"a", "b", "c"})
	require.NoError(t, err)
	h1, err := holes.NewHole("h1", []int{0, 1}, []string{"x", "y"})
	require.NoError(t, err)
	ds, err := holes.New([]holes.Hole{h0, h1}, nil, nil)
	require.NoError(t, err)

	return ds
}

// TestRefinementMonotonicity checks that refining a design space never
// increases its size while preserving membership of retained assignments.
func TestRefinementMonotonicity(t *testing.T) {
	ds := twoHoleSpace(t)
	refined := ds.AssumeSuboptions(0, []int{1, 2})

	assert.LessOrEqual(t, refined.Size(), ds.Size())
	assert.True(t, ds.Includes(map[int]int{0: 1, 1: 0}))
	assert.True(t, refined.Includes(map[int]int{0: 1, 1: 0}))
}

// TestCopyIsolation is testable property 2.
func TestCopyIsolation(t *testing.T) {
	ds := twoHoleSpace(t)
	cp := ds.Copy()
	cp.Holes[0].Options[0] = 2
	cp.Properties = append(cp.Properties, holes.Property{Name: "extra"})

	assert.Equal(t, 0, ds.Holes[0].Options[0])
	assert.Empty(t, ds.Properties)
	assert.Equal(t, uint64(6), ds.Size())
}

// TestRefinementIsolationAcrossCopies checks that refining one copy of a design
// space never mutates a sibling copy's size or membership.
func TestRefinementIsolationAcrossCopies(t *testing.T) {
	ds := twoHoleSpace(t)
	refined := ds.AssumeSuboptions(0, []int{1, 2})

	assert.Equal(t, uint64(6), ds.Size())
	assert.Equal(t, uint64(4), refined.Size())

	any0 := ds.PickAny()
	o0, err := any0.Option(0)
	require.NoError(t, err)
	o1, err := any0.Option(1)
	require.NoError(t, err)
	assert.Equal(t, 0, o0)
	assert.Equal(t, 0, o1)

	any1 := refined.PickAny()
	o0, err = any1.Option(0)
	require.NoError(t, err)
	o1, err = any1.Option(1)
	require.NoError(t, err)
	assert.Equal(t, 1, o0)
	assert.Equal(t, 0, o1)
}

func TestIntersectSuboptions(t *testing.T) {
	ds := twoHoleSpace(t)
	restricted := ds.IntersectSuboptions(map[int][]int{
		0: {1, 2, 7},
		1: {5},
		9: {0},
	})

	assert.Equal(t, []int{1, 2}, restricted.Holes[0].Options, "only shared options survive")
	assert.Equal(t, []int{0, 1}, restricted.Holes[1].Options, "an empty intersection leaves the hole untouched")
	assert.Equal(t, uint64(6), ds.Size(), "the source is not mutated")
}

func TestDuplicateHoleNameRejected(t *testing.T) {
	h0, err := holes.NewHole("dup", []int{0}, []string{"a"})
	require.NoError(t, err)
	h1, err := holes.NewHole("dup", []int{0}, []string{"a"})
	require.NoError(t, err)

	_, err = holes.New([]holes.Hole{h0, h1}, nil, nil)
	assert.ErrorIs(t, err, holes.ErrDuplicateHoleName)
}

func TestNewHoleValidation(t *testing.T) {
	_, err := holes.NewHole("empty", nil, []string{"a"})
	assert.ErrorIs(t, err, holes.ErrEmptyHole)

	_, err = holes.NewHole("oor", []int{5}, []string{"a"})
	assert.ErrorIs(t, err, holes.ErrOptionOutOfRange)
}

func TestOptimumMonotonicity(t *testing.T) {
	opt := holes.NewOptimalityProperty("opt", nil, holes.Maximize)
	_, ok := opt.Optimum()
	assert.False(t, ok)

	assert.True(t, opt.UpdateOptimum(1.0))
	assert.True(t, opt.UpdateOptimum(2.0))
	assert.False(t, opt.UpdateOptimum(2.0))
	assert.False(t, opt.UpdateOptimum(1.5))

	v, ok := opt.Optimum()
	assert.True(t, ok)
	assert.Equal(t, 2.0, v)
}

func TestOptimalityPropertySharedAcrossCopies(t *testing.T) {
	opt := holes.NewOptimalityProperty("opt", nil, holes.Minimize)
	h0, _ := holes.NewHole("h0", []int{0, 1}, []string{"a", "b"})
	ds, err := holes.New([]holes.Hole{h0}, nil, opt)
	require.NoError(t, err)

	cp := ds.Copy()
	cp.Optimality.UpdateOptimum(3.0)

	v, ok := ds.Optimality.Optimum()
	require.True(t, ok)
	assert.Equal(t, 3.0, v)
}

func TestHoleStringRendering(t *testing.T) {
	h, _ := holes.NewHole("h0", []int{0, 1}, []string{"a", "b"})
	assert.Equal(t, "h0:{a,b}", h.String())

	restricted := h
	restricted.Options = []int{1}
	assert.Equal(t, "h0=b", restricted.String())
}
