package synth

import (
	"context"
	"fmt"
	"time"

	"github.com/paynt-synth/corego/ar"
	"github.com/paynt-synth/corego/cegis"
	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/hybrid"
	"github.com/paynt-synth/corego/oracle"
	"github.com/paynt-synth/corego/pomdp"
	"github.com/paynt-synth/corego/quotient"
	"github.com/paynt-synth/corego/satenum"
	"github.com/paynt-synth/corego/stats"
)

// Run is the single front door: it takes a design space already produced by
// sketchio.Load, optional external-oracle advice, a backend, and a method
// selection, and drives the right solver.
//
// On success it returns the solving assignment and the accumulated run
// statistics. On failure it still returns the best assignment and stats
// snapshot found before the failure (no partial result is ever silently
// dropped), paired with a *Error describing what went wrong.
func Run(ctx context.Context, family *holes.DesignSpace, backend quotient.Backend, opts ...Option) (*holes.Assignment, *stats.Run, error) {
	cfg := newConfig(opts)
	run := &stats.Run{}
	start := time.Now()

	cfg.logger.Printf("synth: starting %s synthesis over %d holes", cfg.method, family.NumHoles())

	if cfg.isPomdp && cfg.method == MethodCEGIS {
		run.Elapsed = time.Since(start)
		return nil, run, &Error{Kind: UnsupportedMode, Err: ErrCEGISOnPOMDPSketch, BestStats: run}
	}

	if cfg.beliefResult != nil {
		restricted, err := fuseAndApply(cfg, family, *cfg.beliefResult)
		if err != nil {
			run.Elapsed = time.Since(start)
			return nil, run, &Error{Kind: OracleContract, Err: err, BestStats: run}
		}
		family = restricted
	}

	var hybridOpts []hybrid.Option
	if cfg.beliefChannel != nil {
		if cfg.method == MethodHybrid {
			hybridOpts = append(hybridOpts, hybrid.WithRestrictionPoll(oraclePoll(cfg, family)))
		} else if restricted, ok := pollOnce(cfg, family); ok {
			family = restricted
		}
	}

	var best *holes.Assignment
	var solveErr error

	switch cfg.method {
	case MethodAR:
		var s ar.Stats
		best, s, solveErr = ar.Run(ctx, backend, family)
		run.MergeAR(s)
	case MethodCEGIS:
		encoder := satenum.NewEncoder(family.Holes)
		var s cegis.Stats
		best, s, solveErr = cegis.Run(ctx, backend, encoder, family)
		run.MergeCEGIS(s)
	case MethodHybrid:
		var s hybrid.Stats
		best, s, solveErr = hybrid.Run(ctx, backend, family, hybridOpts...)
		run.MergeHybrid(s)
	case MethodPOMDP:
		if cfg.unfolder == nil {
			run.Elapsed = time.Since(start)
			return nil, run, &Error{Kind: UnsupportedMode, Err: ErrNoUnfolder, BestStats: run}
		}
		var s pomdp.Stats
		best, s, solveErr = pomdp.Run(ctx, backend, cfg.unfolder, cfg.pomdpOpts...)
		run.MergePOMDP(s)
	default:
		run.Elapsed = time.Since(start)
		return nil, run, &Error{Kind: UnsupportedMode, Err: fmt.Errorf("%w: %v", ErrUnknownMethod, cfg.method), BestStats: run}
	}

	run.Elapsed = time.Since(start)
	if family.HasOptimality() {
		if value, ok := family.Optimality.Optimum(); ok {
			run.SetBest(value)
		}
	}

	if solveErr != nil {
		cfg.logger.Printf("synth: %s synthesis failed after %s: %v", cfg.method, run.Elapsed, solveErr)
		return best, run, &Error{Kind: SolverError, Err: solveErr, Best: best, BestStats: run}
	}
	cfg.logger.Printf("synth: %s synthesis finished: %s", cfg.method, run)
	return best, run, nil
}

// fuseAndApply runs oracle fusion against family and applies the main
// restriction, logging the bound comparison when there is one.
func fuseAndApply(cfg config, family *holes.DesignSpace, result oracle.BeliefResult) (*holes.DesignSpace, error) {
	fused, err := oracle.Fuse(cfg.oracleInfo, family.Optimality, result)
	if err != nil {
		cfg.logger.Printf("synth: oracle fusion failed: %v", err)
		return nil, err
	}
	if family.HasOptimality() {
		cfg.logger.Printf("synth: oracle bound %.6g (storm better: %t)", fused.Bound, fused.IsStormBetter)
	}
	return oracle.Apply(family, fused.MainRestriction), nil
}

// oraclePoll adapts the belief channel to hybrid's restriction-poll hook:
// a non-blocking read per call, fusing on delivery. Fusion failures on
// asynchronous advice are logged and swallowed; the hybrid search simply
// continues unadvised.
func oraclePoll(cfg config, family *holes.DesignSpace) func() map[int][]int {
	return func() map[int][]int {
		select {
		case result := <-cfg.beliefChannel:
			fused, err := oracle.Fuse(cfg.oracleInfo, family.Optimality, result)
			if err != nil {
				cfg.logger.Printf("synth: dropping oracle advice: %v", err)
				return nil
			}
			if family.HasOptimality() {
				cfg.logger.Printf("synth: oracle bound %.6g (storm better: %t)", fused.Bound, fused.IsStormBetter)
			}
			return map[int][]int(fused.MainRestriction)
		default:
			return nil
		}
	}
}

// pollOnce performs the single pre-dispatch channel read the non-hybrid
// methods get, returning the restricted family if advice was waiting.
func pollOnce(cfg config, family *holes.DesignSpace) (*holes.DesignSpace, bool) {
	select {
	case result := <-cfg.beliefChannel:
		restricted, err := fuseAndApply(cfg, family, result)
		if err != nil {
			return nil, false
		}
		return restricted, true
	default:
		return nil, false
	}
}
