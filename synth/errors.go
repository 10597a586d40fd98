package synth

import (
	"errors"

	"github.com/paynt-synth/corego/holes"
	"github.com/paynt-synth/corego/stats"
)

// ErrNoUnfolder is returned when Method is MethodPOMDP but no Unfolder was
// configured via WithUnfolder.
var ErrNoUnfolder = errors.New("synth: pomdp method requires an unfolder")

// ErrUnknownMethod is returned when opts selects a Method value this
// package does not recognize.
var ErrUnknownMethod = errors.New("synth: unknown method")

// ErrCEGISOnPOMDPSketch is returned when MethodCEGIS (one-by-one assignment
// enumeration) is requested against a sketch marked is_pomdp: a POMDP's
// memory must be unfolded by pomdp.Run first, so plain CEGIS over its raw
// holes would enumerate the wrong family.
var ErrCEGISOnPOMDPSketch = errors.New("synth: cegis method does not support a pomdp sketch; use MethodPOMDP")

// ErrorKind classifies a failed synthesis attempt the way the owning
// sketch/oracle/solver layer saw it fail.
type ErrorKind int

const (
	// InvalidSketch means the design space itself (its holes, properties,
	// or optimality direction) was malformed before any solving began.
	InvalidSketch ErrorKind = iota
	// OracleContract means fusing an external belief-exploration result
	// into the design space failed: a malformed cutoff scheduler, for
	// instance.
	OracleContract
	// SolverError means the chosen method (ar, cegis, hybrid, pomdp) itself
	// returned an error, typically context cancellation or a backend
	// failure.
	SolverError
	// UnsupportedMode means opts asked for a Method/configuration
	// combination this package cannot run, such as MethodPOMDP without an
	// Unfolder.
	UnsupportedMode
)

func (k ErrorKind) String() string {
	switch k {
	case InvalidSketch:
		return "invalid_sketch"
	case OracleContract:
		return "oracle_contract"
	case SolverError:
		return "solver_error"
	case UnsupportedMode:
		return "unsupported_mode"
	default:
		return "unknown"
	}
}

// Error wraps a synthesis failure with the best assignment and stats
// snapshot found before the failure, per the contract that no partial
// result is ever silently dropped.
type Error struct {
	Kind      ErrorKind
	Err       error
	Best      *holes.Assignment
	BestStats *stats.Run
}

// Error implements the error interface.
func (e *Error) Error() string {
	return "synth: " + e.Kind.String() + ": " + e.Err.Error()
}

// Unwrap exposes the underlying sentinel so errors.Is keeps working against
// package-level sentinels like ErrNoUnfolder.
func (e *Error) Unwrap() error {
	return e.Err
}
