package tui

import "github.com/charmbracelet/lipgloss"

var (
	primary = lipgloss.Color("#7C3AED")
	muted   = lipgloss.Color("#6B7280")
	warn    = lipgloss.Color("#F59E0B")
	bad     = lipgloss.Color("#EF4444")
	good    = lipgloss.Color("#10B981")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(primary)

	tabStyle       = lipgloss.NewStyle().Padding(0, 2).Foreground(muted)
	activeTabStyle = lipgloss.NewStyle().Padding(0, 2).Bold(true).
			Foreground(lipgloss.Color("#FFFFFF")).Background(primary)

	sectionStyle = lipgloss.NewStyle().Bold(true).Underline(true).MarginTop(1)
	mutedStyle   = lipgloss.NewStyle().Foreground(muted)
	warnStyle    = lipgloss.NewStyle().Foreground(warn)
	errorStyle   = lipgloss.NewStyle().Foreground(bad)
	okStyle      = lipgloss.NewStyle().Foreground(good)
	cursorStyle  = lipgloss.NewStyle().Bold(true).Foreground(primary)
	barStyle     = lipgloss.NewStyle().Foreground(primary)

	statusBarStyle = lipgloss.NewStyle().MarginTop(1).Foreground(muted)

	// heat levels from empty to hottest
	heatStyles = []lipgloss.Style{
		lipgloss.NewStyle().Foreground(muted),
		lipgloss.NewStyle().Background(lipgloss.Color("#FEE2E2")).Foreground(lipgloss.Color("#000000")),
		lipgloss.NewStyle().Background(lipgloss.Color("#FCA5A5")).Foreground(lipgloss.Color("#000000")),
		lipgloss.NewStyle().Background(lipgloss.Color("#EF4444")).Foreground(lipgloss.Color("#FFFFFF")),
		lipgloss.NewStyle().Background(lipgloss.Color("#991B1B")).Foreground(lipgloss.Color("#FFFFFF")),
	}
)
