package ar

import "errors"

// ErrNoUndecidedResult is returned when a backend reports Feasibility ==
// quotient.Unknown but supplies no UndecidedResult to drive PrepareSplit.
var ErrNoUndecidedResult = errors.New("ar: backend reported unknown feasibility with no undecided result")
