package synth

import (
	"log"

	"github.com/paynt-synth/corego/oracle"
	"github.com/paynt-synth/corego/pomdp"
)

type config struct {
	method        Method
	oracleInfo    oracle.QuotientInfo
	beliefResult  *oracle.BeliefResult
	beliefChannel <-chan oracle.BeliefResult
	unfolder      pomdp.Unfolder
	pomdpOpts     []pomdp.Option
	logger        *log.Logger
	isPomdp       bool
}

// Option configures a Run call.
type Option func(*config)

// WithMethod selects which algorithm Run dispatches to. Default is
// MethodHybrid.
func WithMethod(m Method) Option {
	return func(c *config) { c.method = m }
}

// WithOracleResult narrows the design space by fusing an external
// belief-exploration result into it before dispatching to the chosen
// method. info is the quotient-side label/hole context the fusion walk
// interprets the result against.
func WithOracleResult(info oracle.QuotientInfo, result oracle.BeliefResult) Option {
	return func(c *config) {
		c.oracleInfo = info
		c.beliefResult = &result
	}
}

// WithOracleChannel registers a channel an external belief-exploration
// oracle, running in a caller-owned goroutine, will deliver its result on.
// Run never blocks on the channel: under MethodHybrid it is polled between
// stage steps and the fused restriction applied to every family processed
// from then on; under the other methods one non-blocking read happens
// before dispatch. A fusion failure on advice received mid-run is logged
// and the advice dropped, never aborting a search that was making progress
// without it.
func WithOracleChannel(info oracle.QuotientInfo, ch <-chan oracle.BeliefResult) Option {
	return func(c *config) {
		c.oracleInfo = info
		c.beliefChannel = ch
	}
}

// WithPomdpSketch marks the design space as describing a POMDP (the
// sketchio.Sketch.IsPomdp flag), so Run can reject MethodCEGIS (one-by-one
// assignment enumeration with no memory unfolding) against it instead of
// silently synthesizing over the wrong family.
func WithPomdpSketch(isPomdp bool) Option {
	return func(c *config) { c.isPomdp = isPomdp }
}

// WithUnfolder supplies the memory-unfolding driver MethodPOMDP needs.
// Required when Method is MethodPOMDP.
func WithUnfolder(u pomdp.Unfolder) Option {
	return func(c *config) { c.unfolder = u }
}

// WithPOMDPOptions forwards options to pomdp.Run when Method is
// MethodPOMDP.
func WithPOMDPOptions(opts ...pomdp.Option) Option {
	return func(c *config) { c.pomdpOpts = append(c.pomdpOpts, opts...) }
}

func newConfig(opts []Option) config {
	c := config{method: MethodHybrid, logger: log.Default()}
	for _, opt := range opts {
		opt(&c)
	}
	return c
}
