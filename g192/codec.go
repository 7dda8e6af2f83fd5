package g192

import (
	"encoding/binary"
	"fmt"

	"github.com/thesyncim/eidpatt/types"
)

// Append encodes symbols in format f and appends them to dst.
// A Compact tail that does not fill a byte is padded with zero bits.
func Append(dst []byte, f Format, mode types.Mode, symbols []types.Symbol) []byte {
	switch f {
	case FormatWide16:
		for _, s := range symbols {
			dst = binary.LittleEndian.AppendUint16(dst, Word(mode, s))
		}
	case FormatByte:
		for _, s := range symbols {
			dst = append(dst, byte(Word(mode, s)))
		}
	case FormatCompact:
		var acc byte
		var nbits uint
		for _, s := range symbols {
			if s == types.SymbolDisturbed {
				acc |= 1 << nbits
			}
			nbits++
			if nbits == 8 {
				dst = append(dst, acc)
				acc, nbits = 0, 0
			}
		}
		if nbits > 0 {
			dst = append(dst, acc)
		}
	}
	return dst
}

// Decode reads n symbols of format f from data.
// Codes that do not belong to mode are rejected with ErrInvalidCode.
func Decode(data []byte, f Format, mode types.Mode, n int) ([]types.Symbol, error) {
	if !f.Valid() {
		return nil, ErrInvalidFormat
	}
	if int64(len(data)) < EncodedLen(f, int64(n)) {
		return nil, fmt.Errorf("%w: need %d bytes for %d symbols, have %d",
			ErrTruncated, EncodedLen(f, int64(n)), n, len(data))
	}

	out := make([]types.Symbol, n)
	ok, bad := Word(mode, types.SymbolOK), Word(mode, types.SymbolDisturbed)
	for i := 0; i < n; i++ {
		switch f {
		case FormatWide16:
			w := binary.LittleEndian.Uint16(data[2*i:])
			switch w {
			case ok:
			case bad:
				out[i] = types.SymbolDisturbed
			default:
				return nil, fmt.Errorf("%w: word 0x%04X at symbol %d", ErrInvalidCode, w, i)
			}
		case FormatByte:
			switch data[i] {
			case byte(ok):
			case byte(bad):
				out[i] = types.SymbolDisturbed
			default:
				return nil, fmt.Errorf("%w: byte 0x%02X at symbol %d", ErrInvalidCode, data[i], i)
			}
		case FormatCompact:
			if data[i>>3]>>(uint(i)&7)&1 == 1 {
				out[i] = types.SymbolDisturbed
			}
		}
	}
	return out, nil
}

// SymbolCount returns how many whole symbols a pattern of size bytes holds.
// For Compact data it is an upper bound, since padding bits are not marked.
func SymbolCount(f Format, size int64) int64 {
	switch f {
	case FormatWide16:
		return size / 2
	case FormatByte:
		return size
	case FormatCompact:
		return size * 8
	default:
		return 0
	}
}
