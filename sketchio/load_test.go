package sketchio_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient/reference"
	"github.com/paynt-synth/corego/sketchio"
)

const validSketch = `{
	"holes": [
		{"name": "h0", "options": ["left", "right"]},
		{"name": "h1", "options": ["good", "bad"]}
	],
	"properties": [
		{"name": "reach", "formula": "reach"}
	],
	"optimality": {"name": "cost", "formula": "cost", "direction": "minimize"}
}`

func TestLoadValidSketch(t *testing.T) {
	sketch, err := sketchio.Load([]byte(validSketch))
	require.NoError(t, err)
	assert.False(t, sketch.IsPomdp)
	family := sketch.DesignSpace
	require.Equal(t, 2, family.NumHoles())
	assert.Equal(t, "h0", family.Holes[0].Name)
	assert.Equal(t, []int{0, 1}, family.Holes[0].Options)
	assert.Equal(t, "left", family.Holes[0].Label(0))

	require.Len(t, family.Properties, 1)
	assert.IsType(t, reference.Reach{}, family.Properties[0].Formula)

	require.True(t, family.HasOptimality())
	assert.IsType(t, reference.MinCost{}, family.Optimality.Formula)
	assert.Equal(t, holes.Minimize, family.Optimality.Direction)
}

func TestLoadReportsIsPomdp(t *testing.T) {
	sketch := `{"holes":[{"name":"h0","options":["a","b"]}],"is_pomdp":true}`
	parsed, err := sketchio.Load([]byte(sketch))
	require.NoError(t, err)
	assert.True(t, parsed.IsPomdp)
}

func TestLoadRejectsEmptySketch(t *testing.T) {
	_, err := sketchio.Load([]byte(`{"holes": []}`))
	assert.ErrorIs(t, err, sketchio.ErrInvalidSketch)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := sketchio.Load([]byte(`not json`))
	assert.ErrorIs(t, err, sketchio.ErrInvalidSketch)
}

func TestLoadRejectsUnknownFormula(t *testing.T) {
	sketch := `{"holes":[{"name":"h0","options":["a","b"]}],"properties":[{"name":"p","formula":"bogus"}]}`
	_, err := sketchio.Load([]byte(sketch))
	assert.ErrorIs(t, err, sketchio.ErrUnknownFormula)
}

func TestLoadRejectsUnknownDirection(t *testing.T) {
	sketch := `{"holes":[{"name":"h0","options":["a","b"]}],"optimality":{"name":"c","formula":"cost","direction":"sideways"}}`
	_, err := sketchio.Load([]byte(sketch))
	assert.ErrorIs(t, err, sketchio.ErrUnknownDirection)
}

func TestLoadRejectsDuplicateHoleNames(t *testing.T) {
	sketch := `{"holes":[{"name":"h0","options":["a"]},{"name":"h0","options":["b"]}]}`
	_, err := sketchio.Load([]byte(sketch))
	assert.ErrorIs(t, err, holes.ErrDuplicateHoleName)
}
