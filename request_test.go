package eidpatt

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/types"
)

func baseRequest() Request {
	return Request{
		Mode:          types.ModeBitError,
		Length:        1000,
		Start:         1,
		Rate:          0.01,
		Tolerance:     ToleranceDisabled,
		MaxIterations: DefaultMaxIterations,
		Format:        g192.FormatByte,
	}
}

func TestNormalizeValidation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Request)
		want   error
	}{
		{"zero length", func(r *Request) { r.Length = 0 }, ErrInvalidLength},
		{"start zero", func(r *Request) { r.Start = 0 }, ErrInvalidStart},
		{"start past end", func(r *Request) { r.Start = 1001 }, ErrInvalidStart},
		{"rate high", func(r *Request) { r.Rate = 0.51 }, ErrInvalidRate},
		{"rate negative", func(r *Request) { r.Rate = -0.1 }, ErrInvalidRate},
		{"rate nan", func(r *Request) { r.Rate = math.NaN() }, ErrInvalidRate},
		{"gamma high", func(r *Request) { r.Gamma = 1.2 }, ErrInvalidGamma},
		{"no iterations", func(r *Request) { r.MaxIterations = 0 }, ErrInvalidMaxIterations},
		{"nan tolerance", func(r *Request) { r.Tolerance = math.NaN() }, ErrInvalidTolerance},
		{"bad format", func(r *Request) { r.Format = g192.Format(9) }, ErrInvalidFormat},
		{"bad mode", func(r *Request) { r.Mode = types.Mode(9) }, ErrInvalidMode},
		{"burst too high", func(r *Request) { r.Mode = types.ModeBurstFrameErasure; r.Rate = 0.35 }, ErrInvalidBurstRate},
		{"burst too low", func(r *Request) { r.Mode = types.ModeBurstFrameErasure; r.Rate = 0.002 }, ErrInvalidBurstRate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := baseRequest()
			tt.mutate(&req)
			_, _, err := req.Normalize()
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.want), "got %v", err)
			assert.Equal(t, ExitValidation, ExitCode(err))
		})
	}
}

func TestNormalizeAcceptsEdges(t *testing.T) {
	req := baseRequest()
	req.Start = req.Length
	req.Rate = MaxRate
	req.Gamma = 1
	_, notice, err := req.Normalize()
	require.NoError(t, err)
	assert.Nil(t, notice)
}

func TestQuantizeBurstRate(t *testing.T) {
	index, q, err := QuantizeBurstRate(0.017)
	require.NoError(t, err)
	assert.Equal(t, 3, index)
	assert.Equal(t, 0.015, q)

	index, q, err = QuantizeBurstRate(0.30)
	require.NoError(t, err)
	assert.Equal(t, 60, index)
	assert.Equal(t, 0.30, q)

	index, q, err = QuantizeBurstRate(0.005)
	require.NoError(t, err)
	assert.Equal(t, 1, index)
	assert.Equal(t, 0.005, q)

	// Rates that would round onto the grid are still outside the model range.
	for _, rate := range []float64{0.35, 0.3024, 0.0025, 0, -0.01, math.NaN()} {
		_, _, err = QuantizeBurstRate(rate)
		assert.True(t, errors.Is(err, ErrInvalidBurstRate), "rate %v", rate)
		assert.Equal(t, ExitValidation, ExitCode(err), "rate %v", rate)
	}
}

func TestNormalizeBurstNotice(t *testing.T) {
	req := baseRequest()
	req.Mode = types.ModeBurstFrameErasure
	req.Rate = 0.017
	req.Gamma = 0.4

	norm, notice, err := req.Normalize()
	require.NoError(t, err)
	require.NotNil(t, notice)
	assert.Equal(t, 0.017, notice.From)
	assert.Equal(t, 0.015, notice.To)
	assert.Equal(t, 3, norm.BurstIndex)
	assert.Equal(t, 0.015, norm.Rate)
	assert.Zero(t, norm.Gamma)

	req.Rate = 0.05
	norm, notice, err = req.Normalize()
	require.NoError(t, err)
	assert.Nil(t, notice)
	assert.Equal(t, 10, norm.BurstIndex)
}

func TestMinTolerance(t *testing.T) {
	got, err := MinTolerance(100, 1, 0.10)
	require.NoError(t, err)
	want := math.Abs(10.0/99.0 - 0.10)
	assert.InDelta(t, want, got, 1e-15)
	assert.InDelta(t, 0.0010101, got, 1e-7)

	got, err = MinTolerance(1000, 1, 0.5)
	require.NoError(t, err)
	assert.InDelta(t, math.Abs(500.0/999-0.5), got, 1e-15)

	_, err = MinTolerance(10, 10, 0.1)
	assert.True(t, errors.Is(err, ErrNoToleranceSpan))
}

func TestEffectiveTolerance(t *testing.T) {
	req := baseRequest()
	req.Length, req.Start, req.Rate = 100, 1, 0.10

	req.Tolerance = 0.0005
	_, _, err := effectiveTolerance(req)
	require.True(t, errors.Is(err, ErrUnattainableTolerance))
	assert.Equal(t, ExitTolerance, ExitCode(err))

	req.Tolerance = ToleranceAuto
	tol, minTol, err := effectiveTolerance(req)
	require.NoError(t, err)
	assert.Equal(t, minTol, tol)

	req.Tolerance = 0.01
	tol, _, err = effectiveTolerance(req)
	require.NoError(t, err)
	assert.Equal(t, 0.01, tol)

	req.Tolerance = ToleranceDisabled
	tol, _, err = effectiveTolerance(req)
	require.NoError(t, err)
	assert.Less(t, tol, 0.0)
}

func TestExitCode(t *testing.T) {
	assert.Equal(t, ExitOK, ExitCode(nil))
	assert.Equal(t, ExitFailure, ExitCode(errors.New("other")))
	assert.Equal(t, ExitIO, ExitCode(ioFailure(ErrWrite, errors.New("disk full"))))
	assert.Equal(t, ExitValidation, ExitCode(invalid(ErrInvalidStart)))
}

func TestBurstRatesOnGridAreAccepted(t *testing.T) {
	for index := 1; index <= eid.BurstSteps; index++ {
		got, q, err := QuantizeBurstRate(eid.BurstRate(index))
		require.NoError(t, err, "index %d", index)
		assert.Equal(t, index, got)
		assert.Equal(t, eid.BurstRate(index), q)
	}
}
