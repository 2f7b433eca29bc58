// Package viz renders runs in the terminal: static trajectory charts for
// finished runs and a live view that steps the loop interactively.
package viz

import (
	"fmt"
	"sort"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/guptarohit/asciigraph"

	"github.com/matheuswhite/aule/internal/loop"
)

const (
	plotWidth  = 80
	plotHeight = 15
)

var (
	captionStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86")).Bold(true)
	indexStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
)

// Plot renders the setpoint and output trajectories of a finished run as
// one chart.
func Plot(result *loop.Result) string {
	var s strings.Builder

	chart := asciigraph.PlotMany(
		[][]float64{result.Setpoints, result.Outputs},
		asciigraph.Height(plotHeight),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("setpoint / output"),
		asciigraph.SeriesColors(asciigraph.Gray, asciigraph.Green),
	)
	s.WriteString(captionStyle.Render("RESPONSE") + "\n")
	s.WriteString(chart + "\n")

	return s.String()
}

// PlotControl renders the control effort of a finished run.
func PlotControl(result *loop.Result) string {
	var s strings.Builder

	chart := asciigraph.Plot(result.Controls,
		asciigraph.Height(10),
		asciigraph.Width(plotWidth),
		asciigraph.Caption("control effort"),
	)
	s.WriteString(captionStyle.Render("CONTROL") + "\n")
	s.WriteString(chart + "\n")

	return s.String()
}

// Indices renders the performance indices of a run, one per line.
func Indices(result *loop.Result) string {
	if len(result.Indices) == 0 {
		return ""
	}
	var s strings.Builder
	s.WriteString(captionStyle.Render("INDICES") + "\n")
	for _, name := range sortedKeys(result.Indices) {
		s.WriteString(indexStyle.Render(fmt.Sprintf("  %-6s %.6f", name, result.Indices[name])) + "\n")
	}
	return s.String()
}

func sortedKeys(m map[string]float64) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
