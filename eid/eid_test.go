package eid

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/eidpatt/types"
)

func draw(src Source, n int) []types.Symbol {
	out := make([]types.Symbol, n)
	for i := range out {
		out[i] = src.Next()
	}
	return out
}

func countDisturbed(syms []types.Symbol) int {
	n := 0
	for _, s := range syms {
		if s == types.SymbolDisturbed {
			n++
		}
	}
	return n
}

func TestGilbertRandomRate(t *testing.T) {
	g, err := NewGilbert(types.ModeBitError, 0.05, 0, 1234)
	require.NoError(t, err)

	const n = 100000
	rate := float64(countDisturbed(draw(g, n))) / n
	assert.InDelta(t, 0.05, rate, 0.01)
	assert.EqualValues(t, n, g.Drawn())
}

func TestGilbertCorrelatedRate(t *testing.T) {
	g, err := NewGilbert(types.ModeFrameErasure, 0.10, 0.5, 99)
	require.NoError(t, err)

	const n = 200000
	rate := float64(countDisturbed(draw(g, n))) / n
	assert.InDelta(t, 0.10, rate, 0.02)
}

func TestGilbertZeroRate(t *testing.T) {
	g, err := NewGilbert(types.ModeBitError, 0, 0.7, 5)
	require.NoError(t, err)
	assert.Zero(t, countDisturbed(draw(g, 5000)))
}

func TestGilbertDeterministic(t *testing.T) {
	a, err := NewGilbert(types.ModeBitError, 0.2, 0.3, 42)
	require.NoError(t, err)
	b, err := NewGilbert(types.ModeBitError, 0.2, 0.3, 42)
	require.NoError(t, err)
	assert.Equal(t, draw(a, 2000), draw(b, 2000))

	c, err := NewGilbert(types.ModeBitError, 0.2, 0.3, 43)
	require.NoError(t, err)
	assert.NotEqual(t, draw(a, 2000), draw(c, 2000))
}

func TestGilbertValidation(t *testing.T) {
	_, err := NewGilbert(types.ModeBurstFrameErasure, 0.1, 0, 1)
	assert.True(t, errors.Is(err, ErrInvalidMode))
	_, err = NewGilbert(types.ModeBitError, 1.5, 0, 1)
	assert.True(t, errors.Is(err, ErrInvalidRate))
	_, err = NewGilbert(types.ModeBitError, 0.1, -0.1, 1)
	assert.True(t, errors.Is(err, ErrInvalidGamma))
	_, err = NewGilbert(types.ModeBitError, math.NaN(), 0, 1)
	assert.True(t, errors.Is(err, ErrInvalidRate))
}

func TestExportRestoreContinuesStream(t *testing.T) {
	for _, cfg := range []Config{
		{Mode: types.ModeBitError, Rate: 0.1, Gamma: 0.4, Seed: 7},
		{Mode: types.ModeFrameErasure, Rate: 0.3, Seed: 8},
		{Mode: types.ModeBurstFrameErasure, BurstIndex: 12, Seed: 9},
	} {
		src, err := New(cfg)
		require.NoError(t, err)
		draw(src, 777)

		st := src.Export()
		restored, err := Restore(st)
		require.NoError(t, err)
		assert.Equal(t, draw(src, 3000), draw(restored, 3000), "mode %v", cfg.Mode)
	}
}

func TestResetKeepsRandomStream(t *testing.T) {
	b, err := NewBurst(20, 11)
	require.NoError(t, err)
	first := draw(b, 500)
	b.Reset()
	assert.Zero(t, b.Drawn())
	assert.Zero(t, CounterTotal(b.Counters()))
	second := draw(b, 500)
	assert.NotEqual(t, first, second)
}

func TestBurstCountersChecksum(t *testing.T) {
	b, err := NewBurst(40, 2024)
	require.NoError(t, err)
	syms := draw(b, 50000)

	counters := b.Counters()
	require.Len(t, counters, BurstModelSize)
	assert.Equal(t, b.Drawn(), CounterTotal(counters))
	assert.EqualValues(t, len(syms)-countDisturbed(syms), counters[0])
}

func TestBurstRates(t *testing.T) {
	for _, index := range []int{2, 10, 30, 60} {
		b, err := NewBurst(index, uint64(index))
		require.NoError(t, err)
		const n = 400000
		rate := float64(countDisturbed(draw(b, n))) / n
		assert.InDelta(t, BurstRate(index), rate, 0.2*BurstRate(index)+0.002, "index %d", index)
	}
}

func TestBurstTableShape(t *testing.T) {
	for i, p := range burstTable {
		assert.Greater(t, p[0], 0.0, "index %d", i+1)
		assert.Less(t, p[0], 1.0, "index %d", i+1)
		assert.Zero(t, p[BurstModelSize-1], "bursts are bounded")
	}
}

func TestNewBurstRejectsIndex(t *testing.T) {
	for _, index := range []int{0, 61, -3} {
		_, err := NewBurst(index, 1)
		assert.True(t, errors.Is(err, ErrInvalidIndex), "index %d", index)
	}
}

func TestRunLengths(t *testing.T) {
	syms := []types.Symbol{0, 1, 1, 0, 0, 1, 0, 1, 1, 1}
	c := RunLengths(syms, 4)
	assert.Equal(t, []int64{4, 1, 1, 1}, c)
	assert.EqualValues(t, len(syms), CounterTotal(c))
}

func TestRestoreRejectsBadState(t *testing.T) {
	_, err := Restore(State{Mode: types.ModeBurstFrameErasure, Index: 3, Run: BurstModelSize})
	assert.True(t, errors.Is(err, ErrInvalidState))
	_, err = Restore(State{Mode: types.ModeBurstFrameErasure, Index: 3, Counters: []int64{1, 2}})
	assert.True(t, errors.Is(err, ErrInvalidState))
	_, err = Restore(State{Mode: types.ModeBitError, Rate: 0.1, RNG: []byte{1, 2, 3}})
	assert.True(t, errors.Is(err, ErrInvalidState))
}
