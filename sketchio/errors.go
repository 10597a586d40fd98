package sketchio

import "errors"

// ErrInvalidSketch is returned when a sketch is structurally invalid: no
// holes, or malformed JSON.
var ErrInvalidSketch = errors.New("sketchio: invalid sketch")

// ErrUnknownFormula is returned when a property or optimality formula
// string names a formula this module's backend vocabulary doesn't know.
var ErrUnknownFormula = errors.New("sketchio: unknown formula")

// ErrUnknownDirection is returned when an optimality property's direction
// is neither "minimize" nor "maximize".
var ErrUnknownDirection = errors.New("sketchio: unknown optimality direction")
