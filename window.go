package eidpatt

import (
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/types"
)

// DefaultWindowSize is the number of symbols staged per write.
const DefaultWindowSize = 256

// Window is a reusable batch of symbols between the source and the encoder.
// Its capacity only affects how often the sink is written, never the
// pattern itself.
type Window struct {
	syms []types.Symbol
}

// NewWindow allocates a window of the given capacity. A non-positive size
// selects DefaultWindowSize.
func NewWindow(size int) *Window {
	if size <= 0 {
		size = DefaultWindowSize
	}
	return &Window{syms: make([]types.Symbol, size)}
}

// Cap returns the window capacity.
func (w *Window) Cap() int { return len(w.syms) }

// Fill stages n copies of sym. n must not exceed Cap.
func (w *Window) Fill(sym types.Symbol, n int) []types.Symbol {
	out := w.syms[:n]
	for i := range out {
		out[i] = sym
	}
	return out
}

// Draw stages n symbols from src, in order, and returns them together with
// the number that are disturbed. n must not exceed Cap.
func (w *Window) Draw(src eid.Source, n int) ([]types.Symbol, int64) {
	out := w.syms[:n]
	var disturbed int64
	for i := range out {
		s := src.Next()
		if s == types.SymbolDisturbed {
			disturbed++
		}
		out[i] = s
	}
	return out, disturbed
}
