package model

import "errors"

// Validation errors returned by the simulation entry points. Callers match
// them with errors.Is; the wrapped message names the offending value.
var (
	// ErrInvalidConfiguration indicates a plate stack or sweep that cannot exist.
	ErrInvalidConfiguration = errors.New("wirecut: invalid configuration")

	// ErrInvalidTolerance indicates a tolerance window with min above max.
	ErrInvalidTolerance = errors.New("wirecut: invalid tolerance window")

	// ErrDomain indicates wire parameters outside the geometry's domain.
	ErrDomain = errors.New("wirecut: wire parameters outside geometric domain")
)
