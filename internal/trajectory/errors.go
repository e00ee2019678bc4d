package trajectory

import "errors"

// Domain errors reported by Update and by config parsing. The hot Evaluate
// path has no error returns; contract violations there panic.
var (
	// ErrInvalidDuration indicates a non-positive session duration.
	ErrInvalidDuration = errors.New("trajectory: duration must be positive")

	// ErrTooManyAxes indicates the goal has more joints than the
	// interpolator has polynomial slots.
	ErrTooManyAxes = errors.New("trajectory: too many axes")

	// ErrUnknownMode indicates an unrecognized control mode name.
	ErrUnknownMode = errors.New("trajectory: unknown mode")

	// ErrUnknownOperation indicates an unrecognized operation name.
	ErrUnknownOperation = errors.New("trajectory: unknown operation")

	// ErrUnknownSpline indicates an unrecognized spline method name.
	ErrUnknownSpline = errors.New("trajectory: unknown spline method")
)
