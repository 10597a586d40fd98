package holes

import (
	"sort"
	"strconv"
)

// noHole is the sentinel for "hole irrelevant" in a partial tuple.
const noHole = -1

// Combination is a partial hole-tuple: one entry per hole, either an
// option-id or NoHole() meaning "irrelevant to this color".
type Combination []int

// NoHole returns the sentinel marking a hole as irrelevant in a Combination.
func NoHole() int { return noHole }

// key renders the combination as a comparable map key (Go slices cannot be
// map keys directly).
func (c Combination) key() string {
	b := make([]byte, 0, len(c)*4)
	for i, v := range c {
		if i > 0 {
			b = append(b, ',')
		}
		b = strconv.AppendInt(b, int64(v), 10)
	}

	return string(b)
}

// CombinationColoring is a bidirectional map from partial hole-tuples to
// dense positive integer colors. Color 0 is reserved for hole-free model
// elements and is never produced by GetOrMakeColor.
//
// Used at quotient-build time to attribute model elements (MDP/DTMC states,
// choices, or edges) to the holes responsible for them.
type CombinationColoring struct {
	numHoles int

	coloring map[string]int
	reverse  map[int]Combination
	next     int
}

// NewCombinationColoring creates an empty coloring over a design space with
// numHoles positions.
func NewCombinationColoring(numHoles int) *CombinationColoring {
	return &CombinationColoring{
		numHoles: numHoles,
		coloring: make(map[string]int),
		reverse:  make(map[int]Combination),
		next:     1,
	}
}

// Colors returns the number of distinct colors assigned so far.
func (c *CombinationColoring) Colors() int { return len(c.coloring) }

// GetOrMakeColor returns the color associated with combination, assigning a
// fresh dense color (c.Colors()+1 conceptually; tracked via an internal
// counter so colors stay dense even across repeated lookups) the first time
// this exact combination is seen. Idempotent.
func (c *CombinationColoring) GetOrMakeColor(combination Combination) int {
	key := combination.key()
	if color, ok := c.coloring[key]; ok {
		return color
	}
	color := c.next
	c.next++
	owned := make(Combination, len(combination))
	copy(owned, combination)
	c.coloring[key] = color
	c.reverse[color] = owned

	return color
}

// ReverseLookup returns the combination associated with color, or nil, false
// if color is unknown (or is the reserved hole-free color 0).
func (c *CombinationColoring) ReverseLookup(color int) (Combination, bool) {
	comb, ok := c.reverse[color]

	return comb, ok
}

// Subcolors returns every color whose every non-⊥ coordinate lies within the
// corresponding hole's current option set in subspace. This is the
// primitive by which AR/CEGIS restrict a quotient model to a subfamily.
func (c *CombinationColoring) Subcolors(subspace *DesignSpace) map[int]struct{} {
	result := make(map[int]struct{})
	for color, comb := range c.reverse {
		contained := true
		for holeIndex, hole := range subspace.Holes {
			if holeIndex >= len(comb) || comb[holeIndex] == noHole {
				continue
			}
			if !containsInt(hole.Options, comb[holeIndex]) {
				contained = false

				break
			}
		}
		if contained {
			result[color] = struct{}{}
		}
	}

	return result
}

// SubcolorsProper returns every color whose coordinate at holeIndex lies in
// options (colors irrelevant to holeIndex, i.e. comb[holeIndex] == ⊥, are
// excluded; this is the "proper" variant used when restricting a single
// hole's suboptions rather than an entire subspace).
func (c *CombinationColoring) SubcolorsProper(holeIndex int, options []int) map[int]struct{} {
	result := make(map[int]struct{})
	for _, color := range c.coloring {
		comb := c.reverse[color]
		if holeIndex >= len(comb) {
			continue
		}
		if containsInt(options, comb[holeIndex]) {
			result[color] = struct{}{}
		}
	}

	return result
}

// HoleAssignments collects, per hole, the set of options referenced by the
// given colors (color 0 and combinations with ⊥ at that position are
// skipped), mirroring CombinationColoring.get_hole_assignments.
func (c *CombinationColoring) HoleAssignments(colors map[int]struct{}) [][]int {
	result := make([][]int, c.numHoles)
	seen := make([]map[int]struct{}, c.numHoles)
	for i := range seen {
		seen[i] = make(map[int]struct{})
	}
	for color := range colors {
		if color == 0 {
			continue
		}
		comb, ok := c.reverse[color]
		if !ok {
			continue
		}
		for holeIndex, option := range comb {
			if option == noHole || holeIndex >= c.numHoles {
				continue
			}
			seen[holeIndex][option] = struct{}{}
		}
	}
	for i, set := range seen {
		opts := make([]int, 0, len(set))
		for o := range set {
			opts = append(opts, o)
		}
		sort.Ints(opts)
		result[i] = opts
	}

	return result
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}

	return false
}
