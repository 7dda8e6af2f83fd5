// Package report renders the end-of-run summary printed by gen-patt.
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/thesyncim/eidpatt"
	"github.com/thesyncim/eidpatt/eid"
	"github.com/thesyncim/eidpatt/types"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true)
	labelStyle = lipgloss.NewStyle().Width(22)
	warnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("214"))
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
)

// Summary is everything the final report shows.
type Summary struct {
	Pattern   string
	StateFile string
	Report    *eidpatt.Report

	// Counters is the burst model histogram; nil for other modes.
	Counters []int64
}

func modeTitle(m types.Mode) string {
	switch m {
	case types.ModeBitError:
		return "Random bit errors, Gilbert model"
	case types.ModeFrameErasure:
		return "Random frame erasures, Gilbert model"
	case types.ModeBurstFrameErasure:
		return "Burst frame erasures, Bellcore model"
	}
	return m.String()
}

func unit(m types.Mode) string {
	if m.IsFrame() {
		return "frames"
	}
	return "bits"
}

func row(b *strings.Builder, label, value string) {
	b.WriteString(labelStyle.Render(label))
	b.WriteString(value)
	b.WriteByte('\n')
}

// Render formats s as a boxed block.
func Render(s Summary) string {
	req := s.Report.Request
	final := s.Report.Final()
	u := unit(req.Mode)

	var b strings.Builder
	b.WriteString(titleStyle.Render(modeTitle(req.Mode)))
	b.WriteByte('\n')
	row(&b, "Pattern file", s.Pattern)
	row(&b, "Pattern format", req.Format.Describe())
	row(&b, "Operating mode", req.Mode.String())
	row(&b, "Desired "+req.Mode.String(), fmt.Sprintf("%5.2f %%", 100*req.Rate))
	if req.Mode != types.ModeBurstFrameErasure {
		row(&b, "Gamma", fmt.Sprintf("%5.4f", req.Gamma))
	}
	if s.StateFile != "" {
		row(&b, "State file", s.StateFile)
	}
	if s.Report.Tolerance >= 0 {
		row(&b, "Tolerance", fmt.Sprintf("%.2e", s.Report.Tolerance))
	}
	row(&b, "Iterations", fmt.Sprint(len(s.Report.Iterations)))

	b.WriteByte('\n')
	b.WriteString(titleStyle.Render("Results"))
	b.WriteByte('\n')
	row(&b, "Generated "+u, fmt.Sprint(final.Generated))
	row(&b, "Processed "+u, fmt.Sprint(final.Processed))
	row(&b, "Disturbed "+u, fmt.Sprint(final.Disturbed))
	row(&b, "Rate (whole file)", fmt.Sprintf("%f %%", 100*final.Whole))
	if final.HasTail {
		row(&b, "Rate (tail only)", fmt.Sprintf("%f %%", 100*final.Tail))
	}

	if s.Counters != nil {
		scope := "all iterations"
		if req.Reset {
			scope = "since last reset"
		}
		b.WriteByte('\n')
		b.WriteString(titleStyle.Render("Bellcore state counters (" + scope + ")"))
		b.WriteByte('\n')
		parts := make([]string, len(s.Counters))
		for i, c := range s.Counters {
			parts[i] = fmt.Sprint(c)
		}
		b.WriteString(strings.Join(parts, " "))
		b.WriteByte('\n')
		row(&b, "Total frames", fmt.Sprint(eid.CounterTotal(s.Counters)))
	}

	if !s.Report.Converged {
		b.WriteString(warnStyle.Render("tolerance not met"))
		b.WriteByte('\n')
	}
	return boxStyle.Render(strings.TrimRight(b.String(), "\n"))
}
