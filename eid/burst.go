package eid

import (
	"fmt"
	"math"

	"github.com/thesyncim/eidpatt/types"
)

const (
	// BurstSteps is the number of severities in the burst table.
	BurstSteps = 60

	// BurstStepRate is the erasure rate between consecutive severities.
	BurstStepRate = 0.005

	// BurstModelSize bounds the run-length state. A burst never grows
	// beyond BurstModelSize-1 frames.
	BurstModelSize = 16
)

// burstTable holds, per severity, the probability that the next frame is
// erased given the number of frames already erased in a row.
var burstTable = buildBurstTable()

func buildBurstTable() [BurstSteps][BurstModelSize]float64 {
	var t [BurstSteps][BurstModelSize]float64
	for i := range t {
		t[i] = burstProfile(i + 1)
	}
	return t
}

// burstProfile derives the conditional erasure probabilities for index.
// Continuation probabilities grow with the run length and the severity;
// the onset probability is then solved so the long-run rate is index/200:
//
//	rate = E[B] / (E[B] + 1/p0)  =>  p0 = rate / (E[B] * (1 - rate))
func burstProfile(index int) [BurstModelSize]float64 {
	var p [BurstModelSize]float64
	rate := float64(index) * BurstStepRate
	base := 0.25 + rate
	for k := 1; k < BurstModelSize-1; k++ {
		p[k] = math.Min(0.9, base+0.05*float64(k))
	}

	mean, survive := 0.0, 1.0
	for k := 1; k < BurstModelSize; k++ {
		mean += survive
		survive *= p[k]
	}
	p[0] = rate / (mean * (1 - rate))
	return p
}

// BurstRate returns the nominal erasure rate of a severity index.
func BurstRate(index int) float64 {
	return float64(index) / 200
}

// Burst is a table-driven burst frame erasure model.
type Burst struct {
	index    int
	seed     uint64
	profile  *[BurstModelSize]float64
	rng      rng
	run      int
	counters [BurstModelSize]int64
	drawn    int64
}

// NewBurst creates a burst model for severity index 1..BurstSteps.
func NewBurst(index int, seed uint64) (*Burst, error) {
	if index < 1 || index > BurstSteps {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIndex, index)
	}
	return &Burst{
		index:   index,
		seed:    seed,
		profile: &burstTable[index-1],
		rng:     newRNG(seed),
	}, nil
}

// Next draws one frame flag.
func (b *Burst) Next() types.Symbol {
	b.drawn++
	if b.rng.float() >= b.profile[b.run] {
		b.run = 0
		b.counters[0]++
		return types.SymbolOK
	}
	if b.run > 0 {
		b.counters[b.run]--
	}
	b.run++
	b.counters[b.run]++
	return types.SymbolDisturbed
}

// Reset clears the run state and counters.
func (b *Burst) Reset() {
	b.run = 0
	b.counters = [BurstModelSize]int64{}
	b.drawn = 0
}

// Mode returns ModeBurstFrameErasure.
func (b *Burst) Mode() types.Mode { return types.ModeBurstFrameErasure }

// Index returns the severity index.
func (b *Burst) Index() int { return b.index }

// Counters returns the internal counters: element 0 counts good frames,
// element k counts erasure bursts of exactly k frames (the burst in
// progress is counted at its current length).
func (b *Burst) Counters() []int64 {
	out := make([]int64, BurstModelSize)
	copy(out, b.counters[:])
	return out
}

// Drawn returns the number of frames drawn since the last reset.
func (b *Burst) Drawn() int64 { return b.drawn }

// Export captures the model state.
func (b *Burst) Export() State {
	return State{
		Mode:     types.ModeBurstFrameErasure,
		Rate:     BurstRate(b.index),
		Index:    b.index,
		Seed:     b.seed,
		RNG:      b.rng.snapshot(),
		Run:      b.run,
		Counters: b.Counters(),
		Drawn:    b.drawn,
	}
}
