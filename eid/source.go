package eid

import (
	"fmt"

	"github.com/thesyncim/eidpatt/types"
)

// DefaultSeed seeds a Source when the caller does not choose one.
const DefaultSeed uint64 = 0x45494431_39393701

// Source produces one indicator symbol per call.
//
// Implementations are stateful and strictly sequential: each symbol may
// depend on the previous ones, so a Source must not be shared between
// goroutines.
type Source interface {
	// Next draws the next symbol and advances the model.
	Next() types.Symbol

	// Reset returns the model to its initial chain state and clears its
	// counters. The random generator keeps advancing, so a reset Source
	// does not replay the stream it produced before.
	Reset()

	// Mode reports which impairment the Source generates.
	Mode() types.Mode

	// Export captures the complete state, suitable for Restore.
	Export() State
}

// Config selects and parameterises a model.
type Config struct {
	Mode       types.Mode
	Rate       float64 // Gilbert modes
	Gamma      float64 // Gilbert modes
	BurstIndex int     // ModeBurstFrameErasure, 1..BurstSteps
	Seed       uint64  // 0 selects DefaultSeed
}

// New builds the model matching cfg.Mode.
func New(cfg Config) (Source, error) {
	seed := cfg.Seed
	if seed == 0 {
		seed = DefaultSeed
	}
	switch cfg.Mode {
	case types.ModeBitError, types.ModeFrameErasure:
		return NewGilbert(cfg.Mode, cfg.Rate, cfg.Gamma, seed)
	case types.ModeBurstFrameErasure:
		return NewBurst(cfg.BurstIndex, seed)
	default:
		return nil, fmt.Errorf("%w: %v", ErrInvalidMode, cfg.Mode)
	}
}

// State is the exported form of a Source.
type State struct {
	Mode     types.Mode
	Rate     float64 // Gilbert rate, or BurstIndex/200 for the burst model
	Gamma    float64
	Index    int
	Seed     uint64
	RNG      []byte  // binary PCG state
	Previous bool    // Gilbert: last symbol was disturbed
	Run      int     // Burst: erasures in a row so far
	Counters []int64 // Burst: see Burst.Counters
	Drawn    int64   // symbols drawn since the last reset
}

// Restore rebuilds a Source from an exported State.
func Restore(st State) (Source, error) {
	switch st.Mode {
	case types.ModeBitError, types.ModeFrameErasure:
		g, err := NewGilbert(st.Mode, st.Rate, st.Gamma, st.Seed)
		if err != nil {
			return nil, err
		}
		if err := g.rng.restore(st.RNG); err != nil {
			return nil, err
		}
		g.prev = st.Previous
		g.drawn = st.Drawn
		return g, nil
	case types.ModeBurstFrameErasure:
		b, err := NewBurst(st.Index, st.Seed)
		if err != nil {
			return nil, err
		}
		if err := b.rng.restore(st.RNG); err != nil {
			return nil, err
		}
		if st.Run < 0 || st.Run >= BurstModelSize {
			return nil, fmt.Errorf("%w: burst run %d", ErrInvalidState, st.Run)
		}
		if len(st.Counters) != 0 && len(st.Counters) != BurstModelSize {
			return nil, fmt.Errorf("%w: %d burst counters, want %d", ErrInvalidState, len(st.Counters), BurstModelSize)
		}
		b.run = st.Run
		copy(b.counters[:], st.Counters)
		b.drawn = st.Drawn
		return b, nil
	default:
		return nil, fmt.Errorf("%w: mode %v", ErrInvalidState, st.Mode)
	}
}
