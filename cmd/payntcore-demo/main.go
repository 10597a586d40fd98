// Command payntcore-demo loads a JSON sketch and runs it through the
// synthesis core against a small built-in example transition system,
// printing the resulting assignment and run statistics. It is a usage
// demo, not a PRISM/JANI front-end; building a quotient MDP from a model
// description is out of scope for this module.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient/reference"
	"github.com/paynt-synth/corego/sketchio"
	"github.com/paynt-synth/corego/synth"
)

func main() {
	sketchPath := flag.String("sketch", "", "path to a JSON sketch file (required)")
	method := flag.String("method", "hybrid", "synthesis method: ar, cegis, hybrid")
	timeout := flag.Duration("timeout", 10*time.Second, "overall synthesis timeout")
	flag.Parse()

	if *sketchPath == "" {
		fmt.Fprintln(os.Stderr, "usage: payntcore-demo -sketch path/to/sketch.json [-method hybrid] [-timeout 10s]")
		os.Exit(2)
	}

	data, err := os.ReadFile(*sketchPath)
	if err != nil {
		log.Fatalf("reading sketch: %v", err)
	}

	family, err := sketchio.Load(data)
	if err != nil {
		log.Fatalf("loading sketch: %v", err)
	}

	m, err := parseMethod(*method)
	if err != nil {
		log.Fatalf("parsing -method: %v", err)
	}

	backend, err := exampleBackend(family.DesignSpace)
	if err != nil {
		log.Fatalf("building example backend: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), *timeout)
	defer cancel()

	assignment, run, err := synth.Run(ctx, family.DesignSpace, backend, synth.WithMethod(m), synth.WithPomdpSketch(family.IsPomdp))
	log.Printf("synthesis finished: %s", run)
	if err != nil {
		log.Fatalf("synthesis failed: %v", err)
	}
	if assignment == nil {
		fmt.Println("infeasible: no assignment satisfies the sketch")
		return
	}
	fmt.Println("solution:")
	for i, h := range family.Holes {
		option, err := assignment.Option(i)
		if err != nil {
			log.Fatalf("reading solved option for hole %q: %v", h.Name, err)
		}
		fmt.Printf("  %s = %s\n", h.Name, h.Label(option))
	}
}

func parseMethod(name string) (synth.Method, error) {
	switch name {
	case "ar":
		return synth.MethodAR, nil
	case "cegis":
		return synth.MethodCEGIS, nil
	case "hybrid":
		return synth.MethodHybrid, nil
	default:
		return 0, fmt.Errorf("unknown method %q (want ar, cegis, or hybrid)", name)
	}
}

// exampleBackend builds a tiny two-branch transition system keyed on
// family's first hole: option 0 takes a cheap branch (total cost 1) and
// option 1 an expensive one (total cost 5); both branches reach the target,
// and no other hole colors any edge. It exists purely so this demo has
// something to synthesize against without a real model-description parser.
func exampleBackend(family *holes.DesignSpace) (*reference.Backend, error) {
	if family.NumHoles() == 0 {
		return nil, fmt.Errorf("example backend requires at least one hole")
	}

	coloring := holes.NewCombinationColoring(family.NumHoles())
	combo := func(n int) holes.Combination {
		c := make(holes.Combination, family.NumHoles())
		for i := range c {
			c[i] = holes.NoHole()
		}
		if n >= 0 {
			c[0] = n
		}
		return c
	}
	left := coloring.GetOrMakeColor(combo(0))
	right := coloring.GetOrMakeColor(combo(1))

	transitions := [][]reference.Transition{
		0: {{To: 1, Cost: 0, Color: left}, {To: 2, Cost: 0, Color: right}},
		1: {{To: 3, Cost: 1, Color: 0}},
		2: {{To: 3, Cost: 5, Color: 0}},
		3: {},
	}
	tmpl, err := reference.NewTemplate(4, 0, []int{3}, transitions, coloring)
	if err != nil {
		return nil, err
	}
	return reference.NewBackend(tmpl), nil
}
