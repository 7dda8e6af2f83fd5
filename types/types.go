// Package types defines shared types used across eidpatt packages.
// This package exists to break import cycles between packages.
package types

import (
	"fmt"
	"strings"
)

// Mode selects which impairment a pattern describes.
type Mode uint8

const (
	ModeBitError          Mode = iota // random bit errors (BER), Gilbert model
	ModeFrameErasure                  // random frame erasures (FER), Gilbert model
	ModeBurstFrameErasure             // burst frame erasures (BFER), Bellcore model
)

// String returns the short mode name used in reports and state files.
func (m Mode) String() string {
	switch m {
	case ModeBitError:
		return "BER"
	case ModeFrameErasure:
		return "FER"
	case ModeBurstFrameErasure:
		return "BFER"
	default:
		return fmt.Sprintf("Mode(%d)", uint8(m))
	}
}

// IsFrame reports whether symbols are frame flags rather than payload bits.
func (m Mode) IsFrame() bool {
	return m == ModeFrameErasure || m == ModeBurstFrameErasure
}

// Valid reports whether m is one of the defined modes.
func (m Mode) Valid() bool {
	return m <= ModeBurstFrameErasure
}

// ParseMode resolves a mode name. Both the single-letter command line form
// (R, F, B) and the long names (ber, fer, bfer) are accepted, in any case.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "r", "ber":
		return ModeBitError, nil
	case "f", "fer":
		return ModeFrameErasure, nil
	case "b", "bfer":
		return ModeBurstFrameErasure, nil
	default:
		return 0, fmt.Errorf("types: unknown mode %q (want R, F or B)", s)
	}
}

// Symbol is one logical indicator: a bit or frame is either left alone or disturbed.
type Symbol uint8

const (
	SymbolOK        Symbol = iota // bit not flipped / frame kept
	SymbolDisturbed               // bit in error / frame erased
)

// String returns "ok" or "disturbed".
func (s Symbol) String() string {
	if s == SymbolDisturbed {
		return "disturbed"
	}
	return "ok"
}
