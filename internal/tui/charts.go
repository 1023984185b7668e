package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jobtracker-engine/internal/views"
)

// barChart draws one horizontal bar per count, scaled to width cells.
func barChart(counts []views.Count, width int) string {
	if len(counts) == 0 {
		return mutedStyle.Render("no data")
	}
	if width < 10 {
		width = 10
	}
	labelW, top := 0, 0
	for _, c := range counts {
		labelW = max(labelW, lipgloss.Width(c.Label))
		top = max(top, c.Count)
	}

	var b strings.Builder
	for _, c := range counts {
		n := 0
		if top > 0 {
			n = c.Count * width / top
		}
		if c.Count > 0 && n == 0 {
			n = 1
		}
		fmt.Fprintf(&b, "%-*s %s %d\n", labelW, c.Label, barStyle.Render(strings.Repeat("█", n)), c.Count)
	}
	return strings.TrimRight(b.String(), "\n")
}

// heatmap renders the crosstab as a shaded grid.
func heatmap(c views.Crosstab) string {
	if len(c.Counts) == 0 {
		return mutedStyle.Render("no data")
	}
	const cellW = 7
	rowW := 0
	for _, p := range c.Priorities {
		rowW = max(rowW, len(p))
	}

	var b strings.Builder
	b.WriteString(strings.Repeat(" ", rowW+1))
	for _, s := range c.Statuses {
		b.WriteString(fmt.Sprintf("%-*s", cellW, abbrev(s, cellW-1)))
	}
	b.WriteString("\n")

	top := c.Max()
	for i, p := range c.Priorities {
		b.WriteString(fmt.Sprintf("%-*s ", rowW, p))
		for _, n := range c.Counts[i] {
			cell := fmt.Sprintf("%*d ", cellW-2, n)
			b.WriteString(heatStyles[heatLevel(n, top)].Render(cell))
			b.WriteString(" ")
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func heatLevel(n, top int) int {
	if n <= 0 || top <= 0 {
		return 0
	}
	lvl := 1 + (n*(len(heatStyles)-1)-1)/top
	return min(lvl, len(heatStyles)-1)
}

// timeline lists applications by date with a marker sized by priority.
func timeline(points []views.TimelinePoint, limit int) string {
	if len(points) == 0 {
		return mutedStyle.Render("no data")
	}
	markers := []string{" ", "·", "•", "●"}
	if limit > 0 && len(points) > limit {
		points = points[len(points)-limit:]
	}
	var b strings.Builder
	for _, p := range points {
		w := min(max(p.Weight, 0), len(markers)-1)
		fmt.Fprintf(&b, "%s %s %s - %s (%s)\n", p.DateApplied, markers[w], p.Company, p.JobTitle, p.Status)
	}
	return strings.TrimRight(b.String(), "\n")
}

func abbrev(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n])
}
