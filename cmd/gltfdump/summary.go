package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/term"
)

var (
	headerStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#87CEEB"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("#98FB98")).Width(12)
	warnStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF6B6B"))
)

// printSummary writes s to w, styled when w is a terminal.
func printSummary(w io.Writer, s summary) {
	styled := false
	if f, ok := w.(*os.File); ok {
		styled = term.IsTerminal(int(f.Fd()))
	}
	fmt.Fprint(w, formatSummary(s, styled))
}

func formatSummary(s summary, styled bool) string {
	header := func(v string) string { return v }
	label := func(v string) string { return fmt.Sprintf("%-12s", v) }
	warn := func(v string) string { return v }
	if styled {
		header = func(v string) string { return headerStyle.Render(v) }
		label = func(v string) string { return labelStyle.Render(v) }
		warn = func(v string) string { return warnStyle.Render(v) }
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", header(fmt.Sprintf("%s (%s)", s.Path, s.Container)))
	fmt.Fprintf(&b, "%s%d (%s)\n", label("indices"), s.Indices, s.IndexType)
	fmt.Fprintf(&b, "%s%d (%s)\n", label("positions"), s.Positions, s.PositionType)
	fmt.Fprintf(&b, "%s%d\n", label("vertices"), s.Vertices)
	if s.HasIndices {
		fmt.Fprintf(&b, "%s%g\n", label("max index"), s.MaxIndex)
	}
	if s.HasVertices {
		fmt.Fprintf(&b, "%s%v .. %v\n", label("bounds"), s.Min, s.Max)
	}

	names := make([]string, 0, len(s.Bindings))
	for _, binding := range s.Bindings {
		names = append(names, fmt.Sprintf("%s=%d", binding.Name, binding.Value))
	}
	if len(names) > 0 {
		fmt.Fprintf(&b, "%s%s\n", label("bindings"), strings.Join(names, " "))
	}
	for _, sk := range s.Skipped {
		fmt.Fprintf(&b, "%s\n", warn(fmt.Sprintf("skipped %s (accessor %d, component type %d)", sk.Name, sk.Value, sk.ComponentType)))
	}
	return b.String()
}
