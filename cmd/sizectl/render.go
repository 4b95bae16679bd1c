package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"fitable-backend/internal/sizing"
)

type resultStyles struct {
	header lipgloss.Style
	size   lipgloss.Style
	bar    lipgloss.Style
	warn   lipgloss.Style
	fail   lipgloss.Style
	dim    lipgloss.Style
}

func newResultStyles() resultStyles {
	return resultStyles{
		header: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12")),
		size:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("10")),
		bar:    lipgloss.NewStyle().Foreground(lipgloss.Color("10")),
		warn:   lipgloss.NewStyle().Foreground(lipgloss.Color("3")),
		fail:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9")),
		dim:    lipgloss.NewStyle().Foreground(lipgloss.Color("8")),
	}
}

const shareBarWidth = 20

// renderText writes a terminal report of res.
func renderText(w io.Writer, res sizing.Result) {
	st := newResultStyles()
	if res.Failure != nil {
		fmt.Fprintf(w, "%s %s\n", st.fail.Render(string(res.Failure.Kind)), res.Failure.Message)
		return
	}

	fmt.Fprintf(w, "%s %s  %s\n",
		st.header.Render("Recommended size:"),
		st.size.Render(res.RecommendedSize),
		st.dim.Render(fmt.Sprintf("(%d%% confidence)", res.Confidence)))
	meta := []string{string(res.Category), string(res.FitType) + " fit"}
	if res.PantSubtype != "" {
		meta = append(meta, string(res.PantSubtype))
	}
	if res.IsFallback {
		meta = append(meta, "universal chart")
	}
	fmt.Fprintln(w, st.dim.Render(strings.Join(meta, " · ")))
	fmt.Fprintln(w)

	for _, share := range res.SizePercentages {
		filled := share.Percent * shareBarWidth / 100
		if share.Percent > 0 && filled == 0 {
			filled = 1
		}
		bar := st.bar.Render(strings.Repeat("█", filled)) + st.dim.Render(strings.Repeat("░", shareBarWidth-filled))
		fmt.Fprintf(w, "  %-6s %s %3d%%\n", share.Label, bar, share.Percent)
	}

	if res.Warning != "" {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.warn.Render(res.Warning))
	}
	if len(res.DetailedReport) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, st.header.Render("Report"))
		for _, line := range res.DetailedReport {
			fmt.Fprintf(w, "  %s\n", line)
		}
	}
}
