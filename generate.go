package eidpatt

import (
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/sink"
	"github.com/thesyncim/eidpatt/types"
)

// Generator writes complete patterns for one normalised Request.
type Generator struct {
	req Request
	win *Window
}

// NewGenerator validates req and prepares a Generator with a window of
// windowSize symbols (DefaultWindowSize when non-positive).
func NewGenerator(req Request, windowSize int) (*Generator, error) {
	norm, _, err := req.Normalize()
	if err != nil {
		return nil, err
	}
	return &Generator{req: norm, win: NewWindow(windowSize)}, nil
}

// Request returns the normalised request.
func (g *Generator) Request() Request { return g.req }

// Run rewinds s and writes one full pattern.
//
// Positions 1..Start-1 are written as undisturbed symbols without touching
// src. Positions Start..Length draw one symbol each from src. Exactly
// Length symbols are written. The first write error aborts the run.
func (g *Generator) Run(src eid.Source, s sink.Sink) (Run, error) {
	var run Run
	if src == nil || src.Mode() != g.req.Mode {
		return run, invalidf(ErrInvalidMode, "source does not generate %v", g.req.Mode)
	}
	if err := s.Rewind(); err != nil {
		return run, ioFailure(ErrRewind, err)
	}
	if p, ok := s.(sink.Preallocator); ok {
		if err := p.Preallocate(g192.EncodedLen(g.req.Format, g.req.Length)); err != nil {
			return run, ioFailure(ErrWrite, err)
		}
	}
	enc, err := g192.NewEncoder(s, g.req.Format, g.req.Mode)
	if err != nil {
		return run, invalid(err)
	}

	size := int64(g.win.Cap())
	skip := g.req.SkipLength()
	for run.Generated < skip {
		k := min(size, skip-run.Generated)
		if err := enc.Encode(g.win.Fill(types.SymbolOK, int(k))); err != nil {
			return run, ioFailure(ErrWrite, err)
		}
		run.Generated += k
	}

	for run.Generated < g.req.Length {
		k := min(size, g.req.Length-run.Generated)
		syms, disturbed := g.win.Draw(src, int(k))
		if err := enc.Encode(syms); err != nil {
			return run, ioFailure(ErrWrite, err)
		}
		run.Generated += k
		run.Processed += k
		run.Disturbed += disturbed
	}

	if err := enc.Flush(); err != nil {
		return run, ioFailure(ErrWrite, err)
	}
	return run, nil
}
