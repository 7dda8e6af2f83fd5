package report

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/types"
)

func sampleReport(mode types.Mode) *eidpatt.Report {
	return &eidpatt.Report{
		Request: eidpatt.Request{
			Mode:   mode,
			Length: 200,
			Start:  101,
			Rate:   0.1,
			Gamma:  0.25,
			Format: g192.FormatByte,
		},
		Tolerance: eidpatt.ToleranceDisabled,
		Converged: true,
		Iterations: []eidpatt.Iteration{{
			Run:     eidpatt.Run{Iteration: 1, Generated: 200, Processed: 100, Disturbed: 10},
			Whole:   0.05,
			Tail:    0.1,
			HasTail: true,
		}},
	}
}

func TestRenderGilbert(t *testing.T) {
	out := Render(Summary{Pattern: "ber.pat", Report: sampleReport(types.ModeBitError)})
	assert.Contains(t, out, "ber.pat")
	assert.Contains(t, out, "Gilbert model")
	assert.Contains(t, out, "Generated bits")
	assert.Contains(t, out, "Disturbed bits")
	assert.Contains(t, out, "5.000000 %")
	assert.Contains(t, out, "10.000000 %")
	assert.Contains(t, out, "0.2500")
	assert.NotContains(t, out, "Bellcore")
	assert.NotContains(t, out, "tolerance not met")
}

func TestRenderBurstCounters(t *testing.T) {
	rep := sampleReport(types.ModeBurstFrameErasure)
	rep.Converged = false
	counters := make([]int64, 16)
	counters[0], counters[1], counters[3] = 190, 4, 2

	out := Render(Summary{Pattern: "b.pat", Report: rep, Counters: counters})
	assert.Contains(t, out, "Generated frames")
	assert.Contains(t, out, "Bellcore state counters (all iterations)")
	assert.Contains(t, out, "190 4 0 2")
	assert.Contains(t, out, "200")
	assert.Contains(t, out, "tolerance not met")
	assert.NotContains(t, out, "Gamma")

	rep.Request.Reset = true
	out = Render(Summary{Pattern: "b.pat", Report: rep, Counters: counters})
	assert.Contains(t, out, "since last reset")
}

func TestRenderStats(t *testing.T) {
	out := RenderStats(Stats{
		Pattern:   "x.pat",
		Format:    g192.FormatCompact,
		Mode:      types.ModeFrameErasure,
		Start:     11,
		Run:       eidpatt.Run{Generated: 110, Processed: 100, Disturbed: 20},
		Histogram: []int64{90, 4, 3, 0, 2},
	})
	assert.Contains(t, out, "compact binary")
	assert.Contains(t, out, "Total frames")
	assert.Contains(t, out, "20.000000 %")
	assert.Contains(t, out, "Bursts of 2")
	assert.Contains(t, out, "Bursts of 4+")
	assert.NotContains(t, out, "Bursts of 3")
}
