package oracle

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/oracle/choicestring"
)

// InducedState is one state of the induced Markov chain an external
// belief-exploration oracle hands back: the labels attached to the state
// itself and the labels of the (single) choice the inducing scheduler made
// there. Observation labels are rendered inside brackets ("[obs]"); the
// labels "cutoff" and "clipping" mark states where exploration stopped
// early; a cutoff state's choice label "sched_<k>" refers to
// BeliefResult.CutoffSchedulers[k].
type InducedState struct {
	Labels       []string
	ChoiceLabels []string
}

// CutoffScheduler resolves the belief beyond a cutoff state. Its choice at
// a state renders as a "{p:a, p:a, ...}" distribution string (see package
// choicestring); the fusion walk harvests every action it may take.
type CutoffScheduler interface {
	GetChoice(state int) string
}

// BeliefResult is what this module receives back from an external
// belief-exploration oracle: the induced sub-Markov-chain with its state
// and choice labels, the ordered list of cutoff schedulers those labels
// refer to, and the bounds it proved on the induced chain's value.
type BeliefResult struct {
	InducedMC        []InducedState
	CutoffSchedulers []CutoffScheduler

	LowerBound float64
	UpperBound float64
}

// QuotientInfo is the sketch-side context the fusion walk needs to turn
// labels back into observations, actions, and holes. It is read-only here;
// the quotient layer that unfolded the POMDP owns it.
type QuotientInfo struct {
	// ObservationLabels maps an observation id to its simplified label (the
	// text inside the brackets of a state label).
	ObservationLabels []string

	// ActionLabels[obs][action] lists the labels naming that action at that
	// observation; a non-cutoff state's choice label is matched against
	// these to recover the action index.
	ActionLabels [][][]string

	// StateObservation maps every POMDP state to its observation id: the
	// index space CutoffScheduler.GetChoice is walked over.
	StateObservation []int

	// ActionHoles maps an observation id to the indices of the action-holes
	// it owns in the current design space; the action dictionary is
	// projected through it onto hole restrictions.
	ActionHoles map[int][]int
}

// Restriction is a per-hole option narrowing derived from a BeliefResult,
// in the same positional, hole-index-keyed shape AssumeAllSuboptions takes.
type Restriction map[int][]int

// ActionRestriction is one record of the ordered list GetSubfamilies
// expands: the hole the oracle narrowed, and the options it recommends.
type ActionRestriction struct {
	Hole    int
	Options []int
}

// FusionResult is everything Fuse derives from one BeliefResult.
type FusionResult struct {
	// ActionDictionary maps an observation id to the action indices the
	// oracle ever chose there, across non-cutoff states and cutoff
	// schedulers alike. Observations the oracle never restricted are
	// absent.
	ActionDictionary map[int][]int

	// MainRestriction projects ActionDictionary onto action-holes: hole
	// index to allowed options. Holes for observations absent from the
	// dictionary are absent here too and keep their full option set when
	// the restriction is applied.
	MainRestriction Restriction

	// Restrictions is MainRestriction again, itemized per hole in
	// ascending hole order, so GetSubfamilies can run its prefix-flip
	// construction over it.
	Restrictions []ActionRestriction

	// Bound is the oracle's proved bound in the optimality direction's
	// favor: the lower bound when maximizing, the upper bound when
	// minimizing. Zero (and meaningless) when Fuse was called without an
	// optimality property.
	Bound float64

	// IsStormBetter reports whether Bound improves on the best value found
	// internally so far, per the optimality property's Direction. False
	// when Fuse was called without an optimality property (nothing to
	// compare against).
	IsStormBetter bool
}

// Fuse walks result's induced Markov chain and derives the fusion products:
// non-cutoff states contribute the (observation, action) pair their labels
// encode, and each cutoff state whose choice label names a scheduler
// contributes every action that scheduler chooses anywhere in the POMDP.
// Each cutoff scheduler is harvested at most once, no matter how many
// states reference it.
//
// opt may be nil (a pure feasibility sketch, no optimality property); when
// non-nil, Fuse also reads Bound and IsStormBetter off it.
func Fuse(info QuotientInfo, opt *holes.OptimalityProperty, result BeliefResult) (*FusionResult, error) {
	dictionary := make(map[int][]int)
	unharvested := make(map[int]struct{}, len(result.CutoffSchedulers))
	for k := range result.CutoffSchedulers {
		unharvested[k] = struct{}{}
	}

	for _, state := range result.InducedMC {
		if len(state.ChoiceLabels) == 0 {
			continue
		}
		choiceLabel := state.ChoiceLabels[0]

		if !isCutoff(state.Labels) {
			addInducedChoice(dictionary, info, state.Labels, choiceLabel)
			continue
		}

		index, ok := schedulerIndex(choiceLabel)
		if !ok {
			continue
		}
		if index < 0 || index >= len(result.CutoffSchedulers) {
			return nil, fmt.Errorf("oracle: choice label %q: %w", choiceLabel, ErrUnknownScheduler)
		}
		if _, pending := unharvested[index]; !pending {
			continue
		}
		delete(unharvested, index)
		if err := harvestScheduler(dictionary, info, result.CutoffSchedulers[index]); err != nil {
			return nil, fmt.Errorf("oracle: cutoff scheduler %d: %w", index, err)
		}
	}

	out := &FusionResult{ActionDictionary: dictionary}
	out.MainRestriction, out.Restrictions = project(dictionary, info.ActionHoles)

	if opt != nil {
		out.Bound = bound(opt.Direction, result)
		if current, ok := opt.Optimum(); ok {
			out.IsStormBetter = stormImproves(out.Bound, current, opt.Direction)
		} else {
			out.IsStormBetter = true
		}
	}

	return out, nil
}

// isCutoff reports whether labels mark a state where belief exploration
// stopped early.
func isCutoff(labels []string) bool {
	for _, l := range labels {
		if l == "cutoff" || l == "clipping" {
			return true
		}
	}

	return false
}

// schedulerIndex parses a "sched_<k>" choice label.
func schedulerIndex(label string) (int, bool) {
	rest, ok := strings.CutPrefix(label, "sched_")
	if !ok {
		return 0, false
	}
	index, err := strconv.Atoi(rest)
	if err != nil {
		return 0, false
	}

	return index, true
}

// addInducedChoice resolves a non-cutoff state's bracketed observation
// label and its choice label to an (observation, action) pair and folds it
// into dictionary. States whose labels this quotient does not recognize are
// skipped, as the oracle may label states the unfolded sketch never
// mentions.
func addInducedChoice(dictionary map[int][]int, info QuotientInfo, labels []string, choiceLabel string) {
	for _, label := range labels {
		if !strings.Contains(label, "[") {
			continue
		}
		obs, ok := observationIndex(info.ObservationLabels, simplifyLabel(label))
		if !ok {
			continue
		}
		action := actionIndex(info.ActionLabels, obs, choiceLabel)
		if action < 0 {
			continue
		}
		appendUnique(dictionary, obs, action)
	}
}

// harvestScheduler walks every POMDP state, parses the scheduler's choice
// string there, and credits the resulting actions to the state's
// observation.
func harvestScheduler(dictionary map[int][]int, info QuotientInfo, scheduler CutoffScheduler) error {
	for state, obs := range info.StateObservation {
		actions, err := choicestring.Parse(scheduler.GetChoice(state))
		if err != nil {
			return err
		}
		for _, action := range actions {
			appendUnique(dictionary, obs, action)
		}
	}

	return nil
}

// simplifyLabel extracts the observation name from a bracketed state label:
// "[obs]" (possibly embedded in a larger label) simplifies to "obs".
func simplifyLabel(label string) string {
	open := strings.Index(label, "[")
	if open < 0 {
		return label
	}
	end := strings.Index(label[open:], "]")
	if end < 0 {
		return label[open+1:]
	}

	return label[open+1 : open+end]
}

func observationIndex(observationLabels []string, simplified string) (int, bool) {
	for i, l := range observationLabels {
		if l == simplified {
			return i, true
		}
	}

	return 0, false
}

// actionIndex finds the action at obs one of whose labels matches
// choiceLabel, or -1.
func actionIndex(actionLabels [][][]string, obs int, choiceLabel string) int {
	if obs < 0 || obs >= len(actionLabels) {
		return -1
	}
	for action, labels := range actionLabels[obs] {
		for _, l := range labels {
			if l == choiceLabel {
				return action
			}
		}
	}

	return -1
}

func appendUnique(dictionary map[int][]int, obs, action int) {
	if containsInt(dictionary[obs], action) {
		return
	}
	dictionary[obs] = append(dictionary[obs], action)
}

// project turns the action dictionary into per-hole restrictions via the
// observation-to-action-hole mapping, sorted for determinism.
func project(dictionary map[int][]int, actionHoles map[int][]int) (Restriction, []ActionRestriction) {
	restriction := make(Restriction)
	for obs, actions := range dictionary {
		if len(actions) == 0 {
			continue
		}
		for _, hole := range actionHoles[obs] {
			options := make([]int, len(actions))
			copy(options, actions)
			sort.Ints(options)
			restriction[hole] = options
		}
	}

	ordered := make([]int, 0, len(restriction))
	for hole := range restriction {
		ordered = append(ordered, hole)
	}
	sort.Ints(ordered)
	restrictions := make([]ActionRestriction, 0, len(ordered))
	for _, hole := range ordered {
		restrictions = append(restrictions, ActionRestriction{Hole: hole, Options: restriction[hole]})
	}

	return restriction, restrictions
}

func containsInt(xs []int, v int) bool {
	for _, x := range xs {
		if x == v {
			return true
		}
	}

	return false
}

// bound picks the oracle's proved bound in the direction's favor: the lower
// bound when maximizing, the upper bound when minimizing.
func bound(dir holes.Direction, result BeliefResult) float64 {
	if dir == holes.Maximize {
		return result.LowerBound
	}

	return result.UpperBound
}

// stormImproves mirrors quotient/reference's improves: the oracle's bound
// only counts as better than a known internal value if it is strictly
// better in the optimality direction.
func stormImproves(oracleBound, internal float64, dir holes.Direction) bool {
	if dir == holes.Maximize {
		return oracleBound > internal
	}

	return oracleBound < internal
}

// Apply narrows family per restriction, intersecting each restricted
// hole's current options with the oracle's recommendation. Holes the
// restriction never mentions, and holes whose intersection would come up
// empty (the oracle recommended options a refinement already removed), keep
// their current option set.
func Apply(family *holes.DesignSpace, restriction Restriction) *holes.DesignSpace {
	return family.IntersectSuboptions(map[int][]int(restriction))
}

// GetSubfamilies expands restrictions into a covering collection of
// mutually-exclusive subfamilies via the usual prefix-flip construction:
// subfamily i pins every record before i to the oracle's recommendation and
// flips record i to its complement (family's current options for that hole,
// minus the oracle's recommendation), so every assignment the oracle
// didn't vouch for is covered by exactly one subfamily, and none of them
// overlaps with MainRestriction.
func GetSubfamilies(family *holes.DesignSpace, restrictions []ActionRestriction) []*holes.DesignSpace {
	subfamilies := make([]*holes.DesignSpace, 0, len(restrictions))
	for i, flip := range restrictions {
		current := family
		for j := 0; j < i; j++ {
			pin := restrictions[j]
			current = current.AssumeSuboptions(pin.Hole, pin.Options)
		}
		full := family.Holes[flip.Hole].Options
		complement := complementInts(full, flip.Options)
		if len(complement) == 0 {
			continue
		}
		current = current.AssumeSuboptions(flip.Hole, complement)
		subfamilies = append(subfamilies, current)
	}

	return subfamilies
}

func complementInts(full, exclude []int) []int {
	out := make([]int, 0, len(full))
	for _, v := range full {
		if !containsInt(exclude, v) {
			out = append(out, v)
		}
	}

	return out
}
