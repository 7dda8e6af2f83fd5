package eidpatt

import (
	"math"

	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/types"
	"github.com/thesyncim/eidpatt/util"
)

const (
	// ToleranceDisabled (or any negative tolerance) runs exactly one iteration.
	ToleranceDisabled = -1.0

	// ToleranceAuto selects the minimum achievable tolerance.
	ToleranceAuto = 0.0

	// DefaultMaxIterations is the iteration cap used by the command line.
	DefaultMaxIterations = 100

	// MaxRate bounds BER and FER rates.
	MaxRate = 0.5

	// MinBurstRate and MaxBurstRate bound BFER rates before quantisation.
	MinBurstRate = 0.005
	MaxBurstRate = 0.30
)

// Request configures one pattern generation.
type Request struct {
	Mode           types.Mode
	Length         int64   // total symbols, preamble included
	Start          int64   // first symbol that may be disturbed, 1-based
	Rate           float64 // target disturbance rate
	Gamma          float64 // correlation, BER and FER only
	Tolerance      float64 // see ToleranceDisabled and ToleranceAuto
	MaxIterations  int
	Reset          bool // reset the source before every iteration
	TailStatistics bool // judge the rate on [Start, Length] only
	Format         g192.Format

	// BurstIndex is the burst model step (1..60) for BFER requests.
	// Normalize derives it from Rate.
	BurstIndex int
}

// ToleranceEnabled reports whether the convergence loop is active.
func (r Request) ToleranceEnabled() bool { return r.Tolerance >= 0 }

// SkipLength returns the number of preamble symbols.
func (r Request) SkipLength() int64 { return r.Start - 1 }

// ActiveLength returns the number of symbols drawn from the source.
func (r Request) ActiveLength() int64 { return r.Length - r.Start + 1 }

// QuantizeNotice records a burst rate that was moved onto the model grid.
type QuantizeNotice struct {
	From  float64
	To    float64
	Index int
}

// QuantizeBurstRate maps rate, which must lie in [MinBurstRate, MaxBurstRate],
// onto the burst model grid: index = floor(rate*200 + 0.5), quantised rate
// index/200.
func QuantizeBurstRate(rate float64) (int, float64, error) {
	if !(rate >= MinBurstRate && rate <= MaxBurstRate) {
		return 0, 0, invalidf(ErrInvalidBurstRate, "%v", rate)
	}
	index := int(util.RoundHalfUp(rate * 200))
	if index < 1 || index > eid.BurstSteps {
		return 0, 0, invalidf(ErrInvalidBurstRate, "%v maps to step %d", rate, index)
	}
	return index, float64(index) / 200, nil
}

// Normalize validates r and returns the request that will actually run.
// For BFER requests the rate is re-quantised onto the burst grid; when that
// changes the rate a QuantizeNotice is returned alongside.
func (r Request) Normalize() (Request, *QuantizeNotice, error) {
	if r.Length < 1 {
		return r, nil, invalidf(ErrInvalidLength, "%d", r.Length)
	}
	if r.Start < 1 || r.Start > r.Length {
		return r, nil, invalidf(ErrInvalidStart, "start %d, length %d", r.Start, r.Length)
	}
	if !r.Mode.Valid() {
		return r, nil, invalidf(ErrInvalidMode, "%v", r.Mode)
	}
	if !r.Format.Valid() {
		return r, nil, invalidf(ErrInvalidFormat, "%v", r.Format)
	}
	if r.MaxIterations < 1 {
		return r, nil, invalidf(ErrInvalidMaxIterations, "%d", r.MaxIterations)
	}
	if math.IsNaN(r.Tolerance) {
		return r, nil, invalid(ErrInvalidTolerance)
	}

	if r.Mode == types.ModeBurstFrameErasure {
		index, q, err := QuantizeBurstRate(r.Rate)
		if err != nil {
			return r, nil, err
		}
		var notice *QuantizeNotice
		if q != r.Rate {
			notice = &QuantizeNotice{From: r.Rate, To: q, Index: index}
		}
		r.Rate = q
		r.BurstIndex = index
		r.Gamma = 0
		return r, notice, nil
	}

	if !(r.Rate >= 0 && r.Rate <= MaxRate) {
		return r, nil, invalidf(ErrInvalidRate, "%v", r.Rate)
	}
	if !(r.Gamma >= 0 && r.Gamma <= 1) {
		return r, nil, invalidf(ErrInvalidGamma, "%v", r.Gamma)
	}
	r.BurstIndex = 0
	return r, nil, nil
}

// MinTolerance returns the smallest deviation from rate that an integer
// count of disturbed symbols can guarantee:
//
//	|floor(n*rate + 0.5)/n - rate|,  n = length - start
func MinTolerance(length, start int64, rate float64) (float64, error) {
	n := length - start
	if n <= 0 {
		return 0, invalid(ErrNoToleranceSpan)
	}
	best := util.RoundHalfUp(float64(n)*rate) / float64(n)
	return util.Abs(best - rate), nil
}

// effectiveTolerance resolves the tolerance Converge will enforce.
// It returns a negative value when convergence is disabled.
func effectiveTolerance(r Request) (tol, minTol float64, err error) {
	if !r.ToleranceEnabled() {
		return ToleranceDisabled, 0, nil
	}
	minTol, err = MinTolerance(r.Length, r.Start, r.Rate)
	if err != nil {
		return 0, 0, err
	}
	if r.Tolerance == ToleranceAuto {
		return minTol, minTol, nil
	}
	if r.Tolerance < minTol {
		return 0, minTol, invalidf(ErrUnattainableTolerance,
			"cannot get tolerances smaller than %.2e for rate %v over %d symbols", minTol, r.Rate, r.Length-r.Start)
	}
	return r.Tolerance, minTol, nil
}
