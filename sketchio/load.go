package sketchio

import (
	"encoding/json"
	"fmt"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient/reference"
)

type sketchJSON struct {
	Holes      []holeJSON      `json:"holes"`
	Properties []propertyJSON  `json:"properties"`
	Optimality *optimalityJSON `json:"optimality,omitempty"`
	IsPomdp    bool            `json:"is_pomdp,omitempty"`
}

// Sketch is the parsed form of a sketch document: the design space plus the
// one flag the design space itself cannot carry: whether the holes
// describe a POMDP (memory must be unfolded via pomdp.Run) or a fully
// observable model (ar.Run, cegis.Run, and hybrid.Run all apply directly).
type Sketch struct {
	*holes.DesignSpace
	IsPomdp bool
}

type holeJSON struct {
	Name    string   `json:"name"`
	Options []string `json:"options"`
}

type propertyJSON struct {
	Name    string `json:"name"`
	Formula string `json:"formula"`
}

type optimalityJSON struct {
	Name      string `json:"name"`
	Formula   string `json:"formula"`
	Direction string `json:"direction,omitempty"`
}

// Load parses data as a JSON sketch and returns the Sketch it describes:
// the design space, ready to hand to ar.Run, cegis.Run, hybrid.Run, or
// pomdp.Run, plus the is_pomdp flag a caller needs to reject an unsupported
// method/sketch combination (one-by-one CEGIS enumeration invoked directly
// on a POMDP sketch, which first needs pomdp.Run's memory unfolding).
func Load(data []byte) (*Sketch, error) {
	var doc sketchJSON
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidSketch, err)
	}
	if len(doc.Holes) == 0 {
		return nil, fmt.Errorf("%w: no holes", ErrInvalidSketch)
	}

	hs := make([]holes.Hole, len(doc.Holes))
	for i, hj := range doc.Holes {
		options := make([]int, len(hj.Options))
		for o := range options {
			options[o] = o
		}
		h, err := holes.NewHole(hj.Name, options, hj.Options)
		if err != nil {
			return nil, fmt.Errorf("sketchio: hole %q: %w", hj.Name, err)
		}
		hs[i] = h
	}

	props := make([]holes.Property, len(doc.Properties))
	for i, pj := range doc.Properties {
		formula, err := resolveFormula(pj.Formula)
		if err != nil {
			return nil, fmt.Errorf("sketchio: property %q: %w", pj.Name, err)
		}
		props[i] = holes.Property{Name: pj.Name, Formula: formula}
	}

	var optimality *holes.OptimalityProperty
	if doc.Optimality != nil {
		formula, err := resolveFormula(doc.Optimality.Formula)
		if err != nil {
			return nil, fmt.Errorf("sketchio: optimality %q: %w", doc.Optimality.Name, err)
		}
		direction, err := resolveDirection(doc.Optimality.Direction)
		if err != nil {
			return nil, fmt.Errorf("sketchio: optimality %q: %w", doc.Optimality.Name, err)
		}
		optimality = holes.NewOptimalityProperty(doc.Optimality.Name, formula, direction)
	}

	family, err := holes.New(hs, props, optimality)
	if err != nil {
		return nil, err
	}
	return &Sketch{DesignSpace: family, IsPomdp: doc.IsPomdp}, nil
}

func resolveFormula(name string) (interface{}, error) {
	switch name {
	case "reach":
		return reference.Reach{}, nil
	case "cost":
		return reference.MinCost{}, nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormula, name)
	}
}

func resolveDirection(name string) (holes.Direction, error) {
	switch name {
	case "", "minimize":
		return holes.Minimize, nil
	case "maximize":
		return holes.Maximize, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownDirection, name)
	}
}
