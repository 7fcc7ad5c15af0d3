package engine

import "errors"

// Domain errors for engine configuration and queries.
var (
	// ErrInvalidGeometry indicates a crank radius that is not shorter than the
	// connecting rod, which leaves the slider-crank square root undefined.
	ErrInvalidGeometry = errors.New("engine: invalid geometry")

	// ErrInvalidConfiguration indicates a non-positive or out-of-range parameter.
	ErrInvalidConfiguration = errors.New("engine: invalid configuration")

	// ErrInvalidStep indicates a non-positive or non-finite sampling step.
	ErrInvalidStep = errors.New("engine: invalid angular step")

	// ErrUnknownModel indicates a pressure model ID that is not recognized.
	ErrUnknownModel = errors.New("engine: unknown pressure model")
)
