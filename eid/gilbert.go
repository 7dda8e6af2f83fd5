package eid

import (
	"fmt"

	"github.com/thesyncim/eidpatt/types"
)

// Gilbert is a two-state Markov error model.
//
// The probability that the next symbol is disturbed is
//
//	P = (1-gamma)*rate + gamma*prev
//
// where prev is 1 when the previous symbol was disturbed. The stationary
// disturbance rate is rate for any gamma < 1; gamma = 0 gives independent
// errors and larger gamma lengthens the bursts.
type Gilbert struct {
	mode  types.Mode
	rate  float64
	gamma float64
	seed  uint64
	rng   rng
	prev  bool
	drawn int64
}

// NewGilbert creates a Gilbert model for ModeBitError or ModeFrameErasure.
func NewGilbert(mode types.Mode, rate, gamma float64, seed uint64) (*Gilbert, error) {
	if mode != types.ModeBitError && mode != types.ModeFrameErasure {
		return nil, fmt.Errorf("%w: gilbert model cannot produce %v", ErrInvalidMode, mode)
	}
	if !(rate >= 0 && rate <= 1) {
		return nil, ErrInvalidRate
	}
	if !(gamma >= 0 && gamma <= 1) {
		return nil, ErrInvalidGamma
	}
	return &Gilbert{
		mode:  mode,
		rate:  rate,
		gamma: gamma,
		seed:  seed,
		rng:   newRNG(seed),
	}, nil
}

// Next draws one symbol.
func (g *Gilbert) Next() types.Symbol {
	p := (1 - g.gamma) * g.rate
	if g.prev {
		p += g.gamma
	}
	g.prev = g.rng.float() < p
	g.drawn++
	if g.prev {
		return types.SymbolDisturbed
	}
	return types.SymbolOK
}

// Reset puts the chain back in the undisturbed state.
func (g *Gilbert) Reset() {
	g.prev = false
	g.drawn = 0
}

// Mode returns the configured mode.
func (g *Gilbert) Mode() types.Mode { return g.mode }

// Rate returns the long-run disturbance rate.
func (g *Gilbert) Rate() float64 { return g.rate }

// Gamma returns the correlation factor.
func (g *Gilbert) Gamma() float64 { return g.gamma }

// Drawn returns the number of symbols drawn since the last reset.
func (g *Gilbert) Drawn() int64 { return g.drawn }

// Export captures the model state.
func (g *Gilbert) Export() State {
	return State{
		Mode:     g.mode,
		Rate:     g.rate,
		Gamma:    g.gamma,
		Seed:     g.seed,
		RNG:      g.rng.snapshot(),
		Previous: g.prev,
		Drawn:    g.drawn,
	}
}
