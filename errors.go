// errors.go defines the error taxonomy of the eidpatt package.

package eidpatt

import (
	"errors"
	"fmt"
)

// Validation errors are returned before any symbol is generated.
var (
	// ErrInvalidLength indicates a pattern length below 1.
	ErrInvalidLength = errors.New("eidpatt: invalid pattern length (must be >= 1)")

	// ErrInvalidStart indicates a start position outside 1..length.
	ErrInvalidStart = errors.New("eidpatt: invalid start position (must be 1 to length)")

	// ErrInvalidMode indicates an unknown mode, or a source whose mode
	// differs from the request.
	ErrInvalidMode = errors.New("eidpatt: invalid mode")

	// ErrInvalidFormat indicates an unknown output format.
	ErrInvalidFormat = errors.New("eidpatt: invalid output format")

	// ErrInvalidRate indicates a BER/FER rate outside [0, 0.5].
	ErrInvalidRate = errors.New("eidpatt: invalid rate (must be 0-0.5)")

	// ErrInvalidBurstRate indicates a BFER rate that does not map to one of
	// the 60 burst model steps (0.005 to 0.30).
	ErrInvalidBurstRate = errors.New("eidpatt: invalid burst erasure rate (must be 0.005-0.30)")

	// ErrInvalidGamma indicates a correlation factor outside [0, 1].
	ErrInvalidGamma = errors.New("eidpatt: invalid gamma (must be 0-1)")

	// ErrInvalidMaxIterations indicates an iteration cap below 1.
	ErrInvalidMaxIterations = errors.New("eidpatt: invalid max iterations (must be >= 1)")

	// ErrInvalidTolerance indicates a tolerance that is not a number.
	ErrInvalidTolerance = errors.New("eidpatt: invalid tolerance (not a number)")

	// ErrUnattainableTolerance indicates a tolerance tighter than the
	// precision an integer number of disturbed symbols allows.
	ErrUnattainableTolerance = errors.New("eidpatt: tolerance below minimum achievable precision")

	// ErrNoToleranceSpan indicates a tolerance was requested for a pattern
	// whose start equals its length, where the precision bound is undefined.
	ErrNoToleranceSpan = errors.New("eidpatt: no span to evaluate tolerance (start equals length)")
)

// Statistics errors.
var (
	// ErrEmptyRun indicates a rate was requested for a run that generated nothing.
	ErrEmptyRun = errors.New("eidpatt: no symbols generated")

	// ErrEmptyTail indicates a tail rate was requested for a run whose
	// active region is empty.
	ErrEmptyTail = errors.New("eidpatt: no symbols processed after start")
)

// I/O errors abort the run and the convergence loop.
var (
	// ErrWrite indicates the sink rejected pattern data.
	ErrWrite = errors.New("eidpatt: error saving pattern data")

	// ErrRewind indicates the sink could not be rewound for a new iteration.
	ErrRewind = errors.New("eidpatt: error rewinding pattern output")
)

// Kind classifies fatal errors.
type Kind uint8

const (
	KindValidation Kind = iota + 1 // rejected before generation
	KindIO                         // sink failure during generation
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindIO:
		return "io"
	default:
		return "unknown"
	}
}

// Error is the structured form of every fatal error returned by this package.
type Error struct {
	Kind Kind
	Err  error
}

func (e *Error) Error() string { return e.Err.Error() }

func (e *Error) Unwrap() error { return e.Err }

func invalid(err error) error {
	return &Error{Kind: KindValidation, Err: err}
}

func invalidf(sentinel error, format string, args ...any) error {
	return &Error{Kind: KindValidation, Err: fmt.Errorf("%w: "+format, append([]any{sentinel}, args...)...)}
}

func ioFailure(sentinel, cause error) error {
	return &Error{Kind: KindIO, Err: fmt.Errorf("%w: %w", sentinel, cause)}
}

// Process exit codes used by the command line tools.
const (
	ExitOK         = 0
	ExitFailure    = 1
	ExitUsage      = 2
	ExitValidation = 5
	ExitIO         = 8
	ExitTolerance  = 20
)

// ExitCode maps an error returned by this package to a process exit code.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if errors.Is(err, ErrUnattainableTolerance) || errors.Is(err, ErrNoToleranceSpan) {
		return ExitTolerance
	}
	var e *Error
	if errors.As(err, &e) {
		switch e.Kind {
		case KindValidation:
			return ExitValidation
		case KindIO:
			return ExitIO
		}
	}
	return ExitFailure
}
