package satenum

import (
	"fmt"

	"github.com/irifrance/gini"
	"github.com/irifrance/gini/z"

	"github.com/paynt-synth/corego/holes"
)

// Encoder is the process-wide SAT enumerator: one gini
// solver instance plus one boolean literal per (hole, option) pair, created
// once over the original (unrefined) design space and never rebuilt.
//
// Only one synthesizer may drive an Encoder at a time; this type carries
// no internal locking and relies on the caller's single-threaded
// cooperative scheduling.
type Encoder struct {
	solver *gini.Gini

	// lits[holeIndex][optionID] is the boolean literal asserting
	// "hole holeIndex is assigned optionID". Indexed by optionID (not
	// position), exactly as Hole.OptionLabels is.
	lits [][]z.Lit

	numHoles int
}

// NewEncoder builds the one-hot encoding for the given (unrefined) holes:
// for each hole, one literal per option plus an exactly-one constraint,
// asserted once at construction time.
func NewEncoder(hs []holes.Hole) *Encoder {
	s := gini.New()
	lits := make([][]z.Lit, len(hs))
	for i, h := range hs {
		lits[i] = make([]z.Lit, len(h.OptionLabels))
		clause := make([]z.Lit, 0, len(h.Options))
		for _, o := range h.Options {
			lit := s.Lit()
			lits[i][o] = lit
			clause = append(clause, lit)
		}
		// At-least-one.
		addClause(s, clause...)
		// At-most-one (pairwise), keeping the encoding a plain one-hot.
		for a := 0; a < len(clause); a++ {
			for b := a + 1; b < len(clause); b++ {
				addClause(s, clause[a].Not(), clause[b].Not())
			}
		}
	}

	return &Encoder{solver: s, lits: lits, numHoles: len(hs)}
}

// addClause feeds one clause to gini literal by literal; gini's Add takes a
// single literal at a time and ends the clause at the null literal.
func addClause(s *gini.Gini, lits ...z.Lit) {
	for _, l := range lits {
		s.Add(l)
	}
	s.Add(z.LitNull)
}

// literal returns the literal for (holeIndex, option), or an error if either
// is out of range of the encoder's fixed hole/option universe.
func (e *Encoder) literal(holeIndex, option int) (z.Lit, error) {
	if holeIndex < 0 || holeIndex >= e.numHoles {
		return 0, ErrHoleIndexOutOfRange
	}
	if option < 0 || option >= len(e.lits[holeIndex]) || e.lits[holeIndex][option] == z.LitNull {
		return 0, fmt.Errorf("satenum: hole %d has no literal for option %d", holeIndex, option)
	}

	return e.lits[holeIndex][option], nil
}

// familyActivation builds a fresh activation literal act such that
// asserting act forces every hole's variable to take a value within
// family's current option set, without permanently narrowing the encoder's
// universe; recomputed on demand and never persisted beyond this one
// activation literal and its defining clauses.
func (e *Encoder) familyActivation(family *holes.DesignSpace) (z.Lit, error) {
	act := e.solver.Lit()
	for i, h := range family.Holes {
		disjunct := make([]z.Lit, 0, len(h.Options)+1)
		disjunct = append(disjunct, act.Not())
		for _, o := range h.Options {
			lit, err := e.literal(i, o)
			if err != nil {
				return 0, err
			}
			disjunct = append(disjunct, lit)
		}
		addClause(e.solver, disjunct...)
	}

	return act, nil
}

// PickAssignment calls gini's incremental solver with the family's encoding
// as an assumption. On SAT it reads the model and returns a singleton
// DesignSpace pinned to the chosen option-ids; on UNSAT it returns
// (nil, false, nil); ErrSolverUnknown is returned for a genuinely
// indeterminate result, treated like "no more assignments" by callers.
func (e *Encoder) PickAssignment(family *holes.DesignSpace) (*holes.Assignment, bool, error) {
	act, err := e.familyActivation(family)
	if err != nil {
		return nil, false, err
	}
	e.solver.Assume(act)

	switch e.solver.Solve() {
	case 1: // sat
		picked := make([]holes.Hole, len(family.Holes))
		for i, h := range family.Holes {
			chosen := -1
			for _, o := range h.Options {
				lit, lerr := e.literal(i, o)
				if lerr != nil {
					return nil, false, lerr
				}
				if e.solver.Value(lit) {
					chosen = o

					break
				}
			}
			if chosen < 0 {
				return nil, false, fmt.Errorf("satenum: hole %d: %w", i, ErrSolverUnknown)
			}
			picked[i] = holes.Hole{Name: h.Name, Options: []int{chosen}, OptionLabels: h.OptionLabels}
		}
		assignment, nerr := holes.New(picked, family.Properties, family.Optimality)
		if nerr != nil {
			return nil, false, nerr
		}

		return assignment, true, nil
	case -1: // unsat
		return nil, false, nil
	default: // unknown
		return nil, false, ErrSolverUnknown
	}
}

// ExcludeAssignment adds a permanent clause blocking witness and every
// extension that agrees with it on the conflict holes, within family's
// current option ranges for the remaining holes. Added clauses are
// monotone: they are never retracted for the lifetime of this Encoder.
func (e *Encoder) ExcludeAssignment(witness *holes.Assignment, conflict []int, family *holes.DesignSpace) error {
	inConflict := make(map[int]struct{}, len(conflict))
	for _, idx := range conflict {
		if idx < 0 || idx >= e.numHoles {
			return ErrHoleIndexOutOfRange
		}
		inConflict[idx] = struct{}{}
	}

	clause := make([]z.Lit, 0, e.numHoles)
	for i := 0; i < e.numHoles; i++ {
		if _, ok := inConflict[i]; ok {
			option, err := witness.Option(i)
			if err != nil {
				return err
			}
			lit, err := e.literal(i, option)
			if err != nil {
				return err
			}
			clause = append(clause, lit.Not())

			continue
		}

		// Non-conflict hole: contribute an escape literal that is true iff
		// this hole's value lies outside family's current options, via a
		// Tseitin auxiliary. For the default "all holes" trivial conflict
		// this branch never runs.
		allBad := e.solver.Lit()
		for _, o := range family.Holes[i].Options {
			lit, err := e.literal(i, o)
			if err != nil {
				return err
			}
			addClause(e.solver, allBad.Not(), lit.Not())
		}
		clause = append(clause, allBad)
	}
	addClause(e.solver, clause...)

	return nil
}
