package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"scopevoice/internal/pipeline"
	"scopevoice/internal/schema"
)

var (
	labelStyle    = lipgloss.NewStyle().Bold(true).Width(12)
	acceptedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Bold(true)
	rejectedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Bold(true)
	stopStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("11")).Bold(true)
	dimStyle      = lipgloss.NewStyle().Faint(true)
)

// renderResult prints one pipeline decision in the fixed layout the repl and
// one-shot commands share.
func renderResult(w io.Writer, res pipeline.Result) {
	cmd := res.Command

	action := string(cmd.Action)
	if cmd.IsStop() {
		action = stopStyle.Render(action)
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Action:"), action)

	if cmd.Magnitude != schema.MagnitudeNone {
		fmt.Fprintf(w, "  %s %s (%.1fmm)\n", labelStyle.Render("Magnitude:"), cmd.Magnitude, cmd.ValueMM)
	}
	fmt.Fprintf(w, "  %s %.2f\n", labelStyle.Render("Confidence:"), cmd.Confidence)
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Source:"), res.Source)

	verdict := acceptedStyle.Render("accepted")
	if !res.Accepted {
		verdict = rejectedStyle.Render("withheld") + dimStyle.Render(" ("+res.Reason+")")
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Decision:"), verdict)

	latency := fmt.Sprintf("parse=%.1fms", res.ParseLatency.Seconds()*1000)
	if res.STTLatency > 0 {
		latency = fmt.Sprintf("stt=%.1fms %s", res.STTLatency.Seconds()*1000, latency)
	}
	fmt.Fprintf(w, "  %s %s\n", labelStyle.Render("Latency:"), dimStyle.Render(latency))
}
