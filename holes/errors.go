package holes

import "errors"

// Sentinel errors for hole and design-space construction/refinement.
var (
	// ErrEmptyHole indicates a hole was constructed with no options.
	ErrEmptyHole = errors.New("holes: hole has no options")

	// ErrDuplicateHoleName indicates two holes in the same DesignSpace share a name.
	ErrDuplicateHoleName = errors.New("holes: duplicate hole name")

	// ErrOptionOutOfRange indicates an option-id lies outside [0, len(option_labels)).
	ErrOptionOutOfRange = errors.New("holes: option id out of range of option labels")

	// ErrUnknownHole indicates a hole index or name was not found in the DesignSpace.
	ErrUnknownHole = errors.New("holes: unknown hole")

	// ErrNotSingleton indicates an operation that requires a singleton family
	// (e.g. reading an Assignment's chosen option) was applied to a non-singleton hole.
	ErrNotSingleton = errors.New("holes: hole is not a singleton")
)
