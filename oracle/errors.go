package oracle

import "errors"

// ErrUnknownScheduler is returned when a cutoff state's choice label names
// a scheduler index outside BeliefResult.CutoffSchedulers: an oracle
// contract violation, not something fusion can recover from.
var ErrUnknownScheduler = errors.New("oracle: choice label references an unknown cutoff scheduler")
