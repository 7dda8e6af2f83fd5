package eid

import "errors"

var (
	// ErrInvalidMode indicates a model was asked for a mode it cannot produce.
	ErrInvalidMode = errors.New("eid: mode not supported by this model")

	// ErrInvalidRate indicates a rate outside [0, 1].
	ErrInvalidRate = errors.New("eid: invalid rate (must be 0-1)")

	// ErrInvalidGamma indicates a correlation factor outside [0, 1].
	ErrInvalidGamma = errors.New("eid: invalid gamma (must be 0-1)")

	// ErrInvalidIndex indicates a burst severity index outside 1..BurstSteps.
	ErrInvalidIndex = errors.New("eid: invalid burst index (must be 1-60)")

	// ErrInvalidState indicates an exported state that cannot be restored.
	ErrInvalidState = errors.New("eid: invalid state")
)
