package g192

import (
	"fmt"
	"strings"

	"github.com/thesyncim/eidpatt/types"
)

// Softbit and frame flag words, right-aligned in 16 bits.
const (
	SoftZero    uint16 = 0x007F // bit received without error
	SoftOne     uint16 = 0x0081 // bit in error
	FrameGood   uint16 = 0x6B21 // good frame (G.192 SYNC word)
	FrameErased uint16 = 0x6B20 // erased frame (G.192 FER word)
)

// Format selects the on-disk layout of a pattern.
type Format uint8

const (
	FormatWide16  Format = iota // 16-bit G.192 words
	FormatByte                  // byte-oriented softbits (default)
	FormatCompact               // 1 bit per symbol, LSB first
)

// String returns the command line name of the format.
func (f Format) String() string {
	switch f {
	case FormatWide16:
		return "g192"
	case FormatByte:
		return "byte"
	case FormatCompact:
		return "compact"
	default:
		return fmt.Sprintf("Format(%d)", uint8(f))
	}
}

// Describe returns the human readable format description used in reports.
func (f Format) Describe() string {
	switch f {
	case FormatWide16:
		return "G.192 16-bit softbits"
	case FormatByte:
		return "byte-oriented G.192 softbits"
	case FormatCompact:
		return "compact binary (1 bit/symbol)"
	default:
		return f.String()
	}
}

// Valid reports whether f is a defined format.
func (f Format) Valid() bool {
	return f <= FormatCompact
}

// ParseFormat resolves a format name: g192, byte, bit or compact.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "g192", "wide16":
		return FormatWide16, nil
	case "byte":
		return FormatByte, nil
	case "bit", "compact":
		return FormatCompact, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrInvalidFormat, s)
	}
}

// BytesPerSymbol returns the storage cost of one symbol: 2, 1 or 1/8.
func BytesPerSymbol(f Format) float64 {
	switch f {
	case FormatWide16:
		return 2
	case FormatByte:
		return 1
	case FormatCompact:
		return 0.125
	default:
		return 0
	}
}

// EncodedLen returns the exact number of bytes n symbols occupy in format f,
// including the padded trailing byte of a Compact pattern.
func EncodedLen(f Format, n int64) int64 {
	switch f {
	case FormatWide16:
		return 2 * n
	case FormatByte:
		return n
	case FormatCompact:
		return (n + 7) / 8
	default:
		return 0
	}
}

// Word returns the 16-bit code for sym in mode.
func Word(mode types.Mode, sym types.Symbol) uint16 {
	if mode.IsFrame() {
		if sym == types.SymbolDisturbed {
			return FrameErased
		}
		return FrameGood
	}
	if sym == types.SymbolDisturbed {
		return SoftOne
	}
	return SoftZero
}
