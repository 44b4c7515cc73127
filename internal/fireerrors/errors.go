// Package fireerrors defines the sentinel errors and wrapping type shared by
// every engine package, plus a ValidationCollector for config and input
// validation that needs to report more than one problem at once.
package fireerrors

import (
	"errors"
	"fmt"
)

// Kind classifies a FireError so callers can branch on failure category
// without string-matching Error().
type Kind int

const (
	// KindValidation covers malformed input: bad config, out-of-range
	// parameters, missing required fields.
	KindValidation Kind = iota
	// KindState covers operations attempted in the wrong scenario state,
	// e.g. mutating a scenario while a simulation step is in flight.
	KindState
	// KindGeometry covers degenerate or inconsistent fire-front geometry:
	// fronts with fewer than three points, self-intersections that could
	// not be resolved, zero-area rings where area is required.
	KindGeometry
	// KindPropagation covers failures raised by the propagation step
	// itself: a collaborator (grid, fuel model, ellipse) returning an
	// error mid-step.
	KindPropagation
	// KindStorage covers the host-side checkpoint/replay store.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindState:
		return "state"
	case KindGeometry:
		return "geometry"
	case KindPropagation:
		return "propagation"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// FireError wraps an underlying error with a Kind and an optional
// Component identifying which engine package raised it.
type FireError struct {
	Kind      Kind
	Component string
	Err       error
}

func (e *FireError) Error() string {
	if e.Component != "" {
		return fmt.Sprintf("%s: %s: %v", e.Component, e.Kind, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Kind, e.Err)
}

func (e *FireError) Unwrap() error {
	return e.Err
}

// New builds a FireError from a component name, kind, and message.
func New(component string, kind Kind, format string, args ...any) *FireError {
	return &FireError{Kind: kind, Component: component, Err: fmt.Errorf(format, args...)}
}

// Wrap attaches a component and kind to an existing error without losing it
// from the Unwrap() chain.
func Wrap(component string, kind Kind, err error) *FireError {
	if err == nil {
		return nil
	}
	return &FireError{Kind: kind, Component: component, Err: err}
}

// Sentinel errors returned by specific, well-known failure conditions. Wrap
// these with Wrap() when a component-specific FireError is useful, or return
// them bare when the caller only needs errors.Is.
var (
	// ErrSimulationRunning is returned by any scenario mutation attempted
	// while the scenario lock is held in the shared-simulation regime.
	ErrSimulationRunning = errors.New("scenario_simulation_running")

	// ErrScenarioLocked is returned when an exclusive-write request cannot
	// be granted because another writer or a simulation already holds the
	// lock.
	ErrScenarioLocked = errors.New("scenario_locked")

	// ErrFrontTooShort is returned when a fire front operation requires at
	// least three points and fewer are present.
	ErrFrontTooShort = errors.New("fire_front_too_short")

	// ErrNoActiveFires is returned when a scenario time step is advanced
	// with no active fires left to propagate.
	ErrNoActiveFires = errors.New("no_active_fires")

	// ErrPointStopped is returned when an operation that requires an
	// active, moving point is applied to a stopped one.
	ErrPointStopped = errors.New("fire_point_stopped")

	// ErrOutOfBounds is returned when a grid sample falls outside the
	// configured grid extent.
	ErrOutOfBounds = errors.New("sample_out_of_bounds")

	// ErrAssetNotFound is returned when an asset lookup by ID misses.
	ErrAssetNotFound = errors.New("asset_not_found")

	// ErrCriticalPathUnreachable is returned when BuildCriticalPath cannot
	// trace a path back to any ignition point.
	ErrCriticalPathUnreachable = errors.New("critical_path_unreachable")
)

// Is reports whether err wraps target per errors.Is, convenience for callers
// that don't want to import errors directly alongside fireerrors.
func Is(err, target error) bool { return errors.Is(err, target) }

// As finds the first error in err's chain matching target's type, per
// errors.As.
func As(err error, target any) bool { return errors.As(err, target) }
