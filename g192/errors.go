package g192

import "errors"

var (
	// ErrInvalidFormat indicates an unknown pattern layout.
	ErrInvalidFormat = errors.New("g192: invalid pattern format")

	// ErrInvalidCode indicates a word or byte that is not one of the codes
	// defined for the selected mode.
	ErrInvalidCode = errors.New("g192: invalid indicator code")

	// ErrTruncated indicates the input is shorter than the requested symbol count.
	ErrTruncated = errors.New("g192: truncated pattern data")
)
