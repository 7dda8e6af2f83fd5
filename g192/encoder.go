package g192

import (
	"io"

	"github.com/thesyncim/eidpatt/types"
)

// Encoder writes consecutive windows of symbols to an io.Writer.
//
// Each call to Encode issues exactly one Write holding the whole window, so
// a window either lands completely or the call fails. Compact packing is
// continuous: bits that do not fill a byte are held until the next window
// or Flush, so window boundaries never introduce padding.
type Encoder struct {
	w       io.Writer
	format  Format
	mode    types.Mode
	scratch []byte
	pending byte
	npend   uint
	written int64
}

// NewEncoder returns an Encoder for format f and mode.
func NewEncoder(w io.Writer, f Format, mode types.Mode) (*Encoder, error) {
	if !f.Valid() {
		return nil, ErrInvalidFormat
	}
	return &Encoder{w: w, format: f, mode: mode}, nil
}

// Encode encodes and writes one window.
func (e *Encoder) Encode(symbols []types.Symbol) error {
	buf := e.scratch[:0]
	if e.format != FormatCompact {
		buf = Append(buf, e.format, e.mode, symbols)
	} else {
		for _, s := range symbols {
			if s == types.SymbolDisturbed {
				e.pending |= 1 << e.npend
			}
			e.npend++
			if e.npend == 8 {
				buf = append(buf, e.pending)
				e.pending, e.npend = 0, 0
			}
		}
	}
	e.scratch = buf
	if len(buf) == 0 {
		return nil
	}
	n, err := e.w.Write(buf)
	e.written += int64(n)
	if err == nil && n < len(buf) {
		err = io.ErrShortWrite
	}
	return err
}

// Flush writes a pending partial Compact byte, zero-padded in its high bits.
// It is a no-op for the other formats.
func (e *Encoder) Flush() error {
	if e.npend == 0 {
		return nil
	}
	b := [1]byte{e.pending}
	e.pending, e.npend = 0, 0
	n, err := e.w.Write(b[:])
	e.written += int64(n)
	if err == nil && n < 1 {
		err = io.ErrShortWrite
	}
	return err
}

// Written returns the number of bytes written so far.
func (e *Encoder) Written() int64 { return e.written }
