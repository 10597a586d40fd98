package stage

import "time"

// Stage names which synthesis method the hybrid loop should run next.
type Stage int

const (
	// AR selects abstraction-refinement.
	AR Stage = iota
	// CEGIS selects counterexample-guided inductive synthesis.
	CEGIS
)

func (s Stage) String() string {
	if s == AR {
		return "ar"
	}
	return "cegis"
}

// Controller is the hybrid synthesizer's discrete stage state machine: AR
// always runs exactly one step before yielding to CEGIS; CEGIS then keeps
// running, burst after burst, until the wall-clock time it has spent this
// round catches up with an AR-derived allocation, at which point control
// returns to AR and the allocation factor is recomputed from each method's
// cumulative throughput so far.
type Controller struct {
	stage Stage

	// factor is the multiplicative cegis_allocated_time_factor: =1 is fair,
	// <1 favors AR (CEGIS gets a smaller slice next round), >1 favors CEGIS.
	factor float64

	// burstElapsed accumulates the wall-clock time spent in the stage
	// currently running, reset to 0 every time Record triggers a switch.
	burstElapsed time.Duration

	// cegisAllocated is how long the current (or next) CEGIS burst is
	// allowed to run before Record forces a switch back to AR.
	cegisAllocated time.Duration

	// arTime, cegisTime, arWork, cegisWork are cumulative totals across the
	// entire run, never reset: the success-rate computation at the end of
	// every CEGIS burst divides work actually done by time actually spent,
	// summed over every round so far, not just the round just finished.
	arTime, cegisTime time.Duration
	arWork, cegisWork int
}

// NewController returns a Controller that starts in the AR stage with a
// neutral (fair) allocation factor.
func NewController() *Controller {
	return &Controller{stage: AR, factor: 1}
}

// Next reports which stage the hybrid loop should run next.
func (c *Controller) Next() Stage { return c.stage }

// Record folds one stage step's elapsed wall-clock time and work (the
// number of models the step pruned: family members an AR decision resolved,
// assignments a CEGIS step excluded) into the controller's history, and
// reports whether this step caused a switch to the other stage.
//
// AR never stays on its own initiative: one Record(AR, ...) call always
// ends the AR stage and hands control to CEGIS, mirroring the reference
// algorithm's "stage is over the moment it has been sampled once". CEGIS,
// by contrast, keeps running (Record(CEGIS, ...) returns false and leaves
// the stage unchanged) until its accumulated burst time reaches the
// allocation AR's last step computed; only then does it switch back to AR
// and recompute factor.
func (c *Controller) Record(s Stage, elapsed time.Duration, work int) bool {
	switch s {
	case AR:
		c.arTime += elapsed
		c.arWork += work
	case CEGIS:
		c.cegisTime += elapsed
		c.cegisWork += work
	}
	c.burstElapsed += elapsed

	if s == CEGIS && c.burstElapsed < c.cegisAllocated {
		return false
	}

	if s == AR {
		c.cegisAllocated = time.Duration(float64(c.burstElapsed) * c.factor)
		c.stage = CEGIS
		c.burstElapsed = 0
		return true
	}

	c.rebalance()
	c.stage = AR
	c.burstElapsed = 0
	return true
}

// Factor returns the current cegis_allocated_time_factor, for reporting.
func (c *Controller) Factor() float64 { return c.factor }

// rebalance recomputes factor from each stage's cumulative throughput: a
// 10x-more-productive AR should leave CEGIS with a 10x smaller allocation
// next round, and vice versa. Either side having done zero work (nothing to
// compare a rate against) leaves dominance, and so factor, neutral at 1.
func (c *Controller) rebalance() {
	if c.arWork == 0 || c.cegisWork == 0 {
		c.factor = 1
		return
	}

	arRate := throughput(c.arWork, c.arTime)
	cegisRate := throughput(c.cegisWork, c.cegisTime)
	if cegisRate == 0 {
		c.factor = 1
		return
	}

	arDominance := arRate / cegisRate
	c.factor = 1 / arDominance
}

func throughput(work int, elapsed time.Duration) float64 {
	if elapsed <= 0 {
		return 0
	}
	return float64(work) / elapsed.Seconds()
}
