package stats

import (
	"fmt"
	"time"

	"github.com/paynt-synth/corego/ar"
	"github.com/paynt-synth/corego/cegis"
	"github.com/paynt-synth/corego/hybrid"
	"github.com/paynt-synth/corego/pomdp"
)

// Run accumulates the counters a synthesis attempt reports regardless of
// which method produced them and regardless of whether the attempt
// ultimately succeeded.
type Run struct {
	IterationsAR    int
	IterationsCEGIS int
	ModelsBuilt     int
	ModelsPruned    int
	StatesSeen      int
	BestValue       *float64
	Elapsed         time.Duration
}

// String renders the counters the way a CLI user expects a final summary
// to read.
func (r *Run) String() string {
	summary := fmt.Sprintf(
		"iterations: ar=%d cegis=%d, models: built=%d pruned=%d, states seen: %d, elapsed: %s",
		r.IterationsAR, r.IterationsCEGIS, r.ModelsBuilt, r.ModelsPruned, r.StatesSeen, r.Elapsed,
	)
	if r.BestValue != nil {
		summary += fmt.Sprintf(", best=%g", *r.BestValue)
	} else {
		summary += ", best=none"
	}
	return summary
}

// SetBest records value as the best optimum found so far, overwriting any
// earlier value unconditionally; callers only call this when they already
// know value is an improvement.
func (r *Run) SetBest(value float64) {
	r.BestValue = &value
}

// MergeAR folds an ar.Stats sample into r.
func (r *Run) MergeAR(s ar.Stats) {
	r.IterationsAR += s.FamiliesExplored
	r.ModelsBuilt += s.FamiliesExplored
	r.ModelsPruned += int(s.Pruned)
	r.StatesSeen += s.StatesSeen
}

// MergeCEGIS folds a cegis.Stats sample into r.
func (r *Run) MergeCEGIS(s cegis.Stats) {
	r.IterationsCEGIS += s.Iterations
	r.ModelsBuilt += s.Iterations
	r.ModelsPruned += s.Pruned
	r.StatesSeen += s.StatesSeen
}

// MergeHybrid folds a hybrid.Stats sample into r.
func (r *Run) MergeHybrid(s hybrid.Stats) {
	r.IterationsAR += s.ARSteps
	r.IterationsCEGIS += s.CEGISSteps
	r.ModelsBuilt += s.ARSteps + s.CEGISSteps
	r.ModelsPruned += int(s.Pruned)
	r.StatesSeen += s.StatesSeen
}

// MergePOMDP folds a pomdp.Stats sample into r: each outer round re-drives a
// full abstraction-refinement search, so its cost is reported as additional
// AR iterations, one per round, matching the outer-loop nature of the
// memory-growth driver.
func (r *Run) MergePOMDP(s pomdp.Stats) {
	r.IterationsAR += s.Rounds
	r.StatesSeen += s.StatesSeen
}
