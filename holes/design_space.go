package holes

import "strings"

// DesignSpace is a positionally-indexed, ordered sequence of holes: the
// Cartesian product of its holes' option sets. Positional order is
// permanent and defines hole identity across copies and refinements.
//
// A DesignSpace also carries the properties still to be decided and an
// optional optimality property with a mutable, possibly-shared threshold.
type DesignSpace struct {
	Holes      []Hole
	Properties []Property
	Optimality *OptimalityProperty
}

// New constructs a DesignSpace over holes, validating name uniqueness.
func New(holes []Hole, properties []Property, optimality *OptimalityProperty) (*DesignSpace, error) {
	seen := make(map[string]struct{}, len(holes))
	for _, h := range holes {
		if _, dup := seen[h.Name]; dup {
			return nil, ErrDuplicateHoleName
		}
		seen[h.Name] = struct{}{}
	}
	hs := make([]Hole, len(holes))
	copy(hs, holes)
	props := make([]Property, len(properties))
	copy(props, properties)

	return &DesignSpace{Holes: hs, Properties: props, Optimality: optimality}, nil
}

// NumHoles returns the number of holes in this design space.
func (d *DesignSpace) NumHoles() int { return len(d.Holes) }

// Size returns the family size: the product of every hole's size. A family
// with zero holes has size 1, the empty product.
func (d *DesignSpace) Size() uint64 {
	size := uint64(1)
	for _, h := range d.Holes {
		size *= uint64(h.Size())
	}

	return size
}

// HasOptimality reports whether this family carries an optimality property.
func (d *DesignSpace) HasOptimality() bool { return d.Optimality != nil }

// String renders every hole, comma-separated, in positional order.
func (d *DesignSpace) String() string {
	parts := make([]string, len(d.Holes))
	for i, h := range d.Holes {
		parts[i] = h.String()
	}

	return strings.Join(parts, ", ")
}

// Copy returns a fresh DesignSpace: holes and the properties slice are deep
// copies, but the (possibly shared) OptimalityProperty pointer is preserved
// so optimum updates made via either copy are visible through both.
func (d *DesignSpace) Copy() *DesignSpace {
	hs := make([]Hole, len(d.Holes))
	for i, h := range d.Holes {
		hs[i] = h.copy()
	}
	props := make([]Property, len(d.Properties))
	copy(props, d.Properties)

	return &DesignSpace{Holes: hs, Properties: props, Optimality: d.Optimality}
}

// AssumeSuboptions returns a fresh DesignSpace with hole holeIndex's option
// set replaced by suboptions (suboptions must be ⊆ the hole's current
// options; this is not re-validated here, mirroring the source's trust in
// callers that only ever narrow via quotient-derived subsets).
func (d *DesignSpace) AssumeSuboptions(holeIndex int, suboptions []int) *DesignSpace {
	result := d.Copy()
	result.Holes[holeIndex] = result.Holes[holeIndex].assumeSuboptions(suboptions)

	return result
}

// AssumeAllSuboptions applies AssumeSuboptions per hole, keyed by hole index.
// Holes absent from perHole keep their current options.
func (d *DesignSpace) AssumeAllSuboptions(perHole map[int][]int) *DesignSpace {
	result := d.Copy()
	for idx, suboptions := range perHole {
		result.Holes[idx] = result.Holes[idx].assumeSuboptions(suboptions)
	}

	return result
}

// IntersectSuboptions returns a fresh DesignSpace in which every hole named
// by perHole keeps only the options both sides agree on. A hole whose
// intersection would come up empty keeps its current options instead:
// external advice never empties a family. Hole indices outside the design
// space are ignored.
func (d *DesignSpace) IntersectSuboptions(perHole map[int][]int) *DesignSpace {
	result := d.Copy()
	for idx, suboptions := range perHole {
		if idx < 0 || idx >= len(result.Holes) {
			continue
		}
		current := result.Holes[idx].Options
		kept := make([]int, 0, len(current))
		for _, o := range current {
			if containsInt(suboptions, o) {
				kept = append(kept, o)
			}
		}
		if len(kept) == 0 {
			continue
		}
		result.Holes[idx] = result.Holes[idx].assumeSuboptions(kept)
	}

	return result
}

// PickAny returns the singleton family obtained by taking each hole's first
// option (Options[0] under its current, possibly-refined order).
func (d *DesignSpace) PickAny() *DesignSpace {
	result := d.Copy()
	for i, h := range result.Holes {
		result.Holes[i] = h.assumeSuboptions([]int{h.Options[0]})
	}

	return result
}

// Includes reports whether this family contains every (holeIndex -> option)
// pair of partial, i.e. whether each referenced hole's current option set
// contains the given option.
func (d *DesignSpace) Includes(partial map[int]int) bool {
	for idx, option := range partial {
		if idx < 0 || idx >= len(d.Holes) {
			return false
		}
		found := false
		for _, o := range d.Holes[idx].Options {
			if o == option {
				found = true

				break
			}
		}
		if !found {
			return false
		}
	}

	return true
}

// Assignment is a DesignSpace in which every hole is a singleton.
type Assignment = DesignSpace

// IsAssignment reports whether every hole of d currently has exactly one option.
func (d *DesignSpace) IsAssignment() bool {
	for _, h := range d.Holes {
		if !h.Singleton() {
			return false
		}
	}

	return true
}

// Option returns the single chosen option for holeIndex, requiring that the
// hole be a singleton (typically: d is an Assignment).
func (d *DesignSpace) Option(holeIndex int) (int, error) {
	if holeIndex < 0 || holeIndex >= len(d.Holes) {
		return 0, ErrUnknownHole
	}
	h := d.Holes[holeIndex]
	if !h.Singleton() {
		return 0, ErrNotSingleton
	}

	return h.Options[0], nil
}
