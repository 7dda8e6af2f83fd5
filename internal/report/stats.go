package report

import (
	"fmt"
	"strings"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/g192"
	"github.com/thesyncim/eidpatt/types"
)

// Stats describes an existing pattern file as decoded by patt-stat.
type Stats struct {
	Pattern string
	Format  g192.Format
	Mode    types.Mode
	Start   int64
	Run     eidpatt.Run

	// Histogram is in the eid.RunLengths layout.
	Histogram []int64
}

// RenderStats formats s as a boxed block.
func RenderStats(s Stats) string {
	u := unit(s.Mode)

	var b strings.Builder
	b.WriteString(titleStyle.Render("Pattern statistics"))
	b.WriteByte('\n')
	row(&b, "Pattern file", s.Pattern)
	row(&b, "Pattern format", s.Format.Describe())
	row(&b, "Operating mode", s.Mode.String())
	row(&b, "Total "+u, fmt.Sprint(s.Run.Generated))
	row(&b, "Counted from", fmt.Sprint(s.Start))
	row(&b, "Disturbed "+u, fmt.Sprint(s.Run.Disturbed))
	if whole, err := s.Run.WholeRate(); err == nil {
		row(&b, "Rate (whole file)", fmt.Sprintf("%f %%", 100*whole))
	}
	if s.Start > 1 {
		if tail, err := s.Run.TailRate(); err == nil {
			row(&b, "Rate (tail only)", fmt.Sprintf("%f %%", 100*tail))
		}
	}

	if len(s.Histogram) > 0 {
		b.WriteByte('\n')
		b.WriteString(titleStyle.Render("Run lengths"))
		b.WriteByte('\n')
		row(&b, "Good "+u, fmt.Sprint(s.Histogram[0]))
		last := len(s.Histogram) - 1
		for k := 1; k <= last; k++ {
			if s.Histogram[k] == 0 {
				continue
			}
			label := fmt.Sprintf("Bursts of %d", k)
			if k == last {
				label = fmt.Sprintf("Bursts of %d+", k)
			}
			row(&b, label, fmt.Sprint(s.Histogram[k]))
		}
		if total := eid.CounterTotal(s.Histogram); total == s.Run.Generated {
			row(&b, "Total "+u, fmt.Sprint(total))
		}
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
