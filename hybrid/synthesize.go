package hybrid

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/paynt-synth/corego/ar"
	"github.com/paynt-synth/corego/cegis"
	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/quotient"
	"github.com/paynt-synth/corego/satenum"
	"github.com/paynt-synth/corego/stage"
)

// Stats summarizes one Run across both methods.
type Stats struct {
	ARSteps    int
	CEGISSteps int
	StatesSeen int
	Pruned     uint64
	Feasible   bool
	FinalAR    float64 // final stage.Controller allocation factor, for reporting
}

// Option configures Run.
type Option func(*config)

type config struct {
	poll func() map[int][]int
}

// WithRestrictionPoll registers a non-blocking source of per-hole option
// restrictions, typically the fused advice of an external oracle running
// in a caller-owned goroutine, delivered through a single-producer channel
// the poll closure drains with a default-case select. Run polls once per
// iteration, between stage steps; the latest non-nil result is intersected
// into every family subsequently processed. The poll closure is called only
// from Run's goroutine, so it needs no locking of its own.
func WithRestrictionPoll(poll func() map[int][]int) Option {
	return func(c *config) { c.poll = poll }
}

// Run alternates AR and CEGIS over a single shared stack of families, under
// stage.Controller's self-adjusting allocation. Both methods see the same
// stack: an AR step may push subfamilies that a later CEGIS step then
// enumerates assignments of, and vice versa: whichever method the
// controller picks next simply works on whatever family currently sits on
// top.
//
// For a pure decision problem Run returns as soon as either method reports
// Solved. For optimal synthesis there is no single stopping witness: Run
// keeps draining the stack, remembering the best Improved assignment either
// method reports, and returns it once the stack is empty.
func Run(ctx context.Context, backend quotient.Backend, family *holes.DesignSpace, opts ...Option) (*holes.Assignment, Stats, error) {
	cfg := config{}
	for _, opt := range opts {
		opt(&cfg)
	}

	encoder := satenum.NewEncoder(family.Holes)
	controller := stage.NewController()
	stats := Stats{}
	var best *holes.Assignment
	var advice map[int][]int

	stack := []*holes.DesignSpace{family}
	for len(stack) > 0 {
		if err := ctx.Err(); err != nil {
			return best, stats, err
		}
		if cfg.poll != nil {
			if r := cfg.poll(); r != nil {
				advice = r
			}
		}

		switch controller.Next() {
		case stage.AR:
			current := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if advice != nil {
				current = current.IntersectSuboptions(advice)
			}

			start := time.Now()
			res, err := ar.Step(backend, current)
			elapsed := time.Since(start)
			if err != nil {
				return best, stats, err
			}
			stats.ARSteps++
			stats.StatesSeen += res.States
			stats.Pruned += res.Pruned
			controller.Record(stage.AR, elapsed, int(res.Pruned))

			if res.Improved != nil {
				best = res.Improved
				stats.Feasible = true
			}
			if res.Solved != nil {
				stats.Feasible = true
				stats.FinalAR = controller.Factor()
				return res.Solved, stats, nil
			}
			stack = append(stack, res.Children...)

		case stage.CEGIS:
			current := stack[len(stack)-1]
			if advice != nil {
				current = current.IntersectSuboptions(advice)
			}

			start := time.Now()
			res, err := cegis.Step(backend, encoder, current)
			elapsed := time.Since(start)
			if err != nil {
				if errors.Is(err, satenum.ErrSolverUnknown) {
					log.Printf("hybrid: %v; treating family as exhausted", err)
					stack = stack[:len(stack)-1]
					continue
				}
				return best, stats, err
			}
			stats.CEGISSteps++
			stats.StatesSeen += res.States
			stats.Pruned += uint64(res.Pruned)
			controller.Record(stage.CEGIS, elapsed, res.Pruned)

			if res.Exhausted {
				stack = stack[:len(stack)-1]
				continue
			}
			if res.Improved != nil {
				best = res.Improved
				stats.Feasible = true
			}
			if res.Solved != nil {
				stats.Feasible = true
				stats.FinalAR = controller.Factor()
				return res.Solved, stats, nil
			}
		}
	}

	stats.FinalAR = controller.Factor()
	return best, stats, nil
}
