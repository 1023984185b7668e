package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/store"
	"jobtracker-engine/internal/views"
)

const sidebarWidth = 26

func (m Model) View() string {
	var body string
	switch m.tab {
	case tabDashboard:
		body = m.viewDashboard()
	case tabAdd:
		body = m.viewAdd()
	case tabTracker:
		body = m.viewTracker()
	case tabInsights:
		body = m.viewInsights()
	case tabCalendar:
		body = m.viewCalendar()
	}

	main := lipgloss.JoinHorizontal(lipgloss.Top, m.viewSidebar(), "  ", body)
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("Job Application Tracker"),
		m.viewTabs(),
		main,
		m.viewStatus(),
	)
}

func (m Model) viewTabs() string {
	parts := make([]string, len(tabNames))
	for i, name := range tabNames {
		label := fmt.Sprintf("%d %s", i+1, name)
		if tab(i) == m.tab {
			parts[i] = activeTabStyle.Render(label)
		} else {
			parts[i] = tabStyle.Render(label)
		}
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m Model) viewSidebar() string {
	s := m.dash.Sidebar
	lines := []string{
		sectionStyle.Render("Stats"),
		fmt.Sprintf("Total:   %d", s.Total),
		fmt.Sprintf("Active:  %d", s.Active),
		fmt.Sprintf("Success: %.1f%%", s.SuccessRate),
	}
	switch m.load.Source {
	case store.SourceRemote:
		lines = append(lines, okStyle.Render("remote store"))
	case store.SourceLocal:
		lines = append(lines, warnStyle.Render("local files"))
	default:
		lines = append(lines, mutedStyle.Render("no data yet"))
	}
	return lipgloss.NewStyle().Width(sidebarWidth).Render(strings.Join(lines, "\n"))
}

func (m Model) viewStatus() string {
	var parts []string
	if m.load.Warning != "" {
		parts = append(parts, warnStyle.Render("local file unreadable: "+m.load.Warning))
	}
	if m.status != "" {
		if m.isError {
			parts = append(parts, errorStyle.Render(m.status))
		} else {
			parts = append(parts, okStyle.Render(m.status))
		}
	}
	parts = append(parts, statusBarStyle.Render(m.help()))
	return strings.Join(parts, "\n")
}

func (m Model) help() string {
	switch {
	case m.editing:
		return "tab/↓ next • shift+tab/↑ prev • ctrl+s save • esc done"
	case m.searching:
		return "enter apply • esc clear"
	case m.tab == tabAdd:
		return "enter edit form • 1-5 tabs • q quit"
	case m.tab == tabTracker:
		return "j/k move • / search • f status • p priority • n channel • c clear • E edit • D duplicate • x delete • e export • q quit"
	default:
		return "tab/1-5 switch • r refresh • S seed sample data • q quit"
	}
}

func alertLines(title string, alerts []views.Alert, days int) string {
	var b strings.Builder
	b.WriteString(sectionStyle.Render(title))
	b.WriteString("\n")
	if len(alerts) == 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("nothing in the next %d days", days)))
		return b.String()
	}
	for _, a := range alerts {
		line := fmt.Sprintf("%s  %s - %s (%s)", a.Date, a.Company, a.JobTitle, views.RelativeDay(a.DaysLeft))
		if a.DaysLeft <= 1 {
			line = warnStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewDashboard() string {
	d := m.dash
	if d.Sidebar.Total == 0 {
		return mutedStyle.Render("No applications yet. Press S to load sample data or 2 to add one.")
	}
	w := m.windows
	st := d.Stats
	stats := fmt.Sprintf("Interviews this week: %d   Follow-ups this week: %d   Active: %d   Offers: %d",
		st.InterviewsThisWeek, st.FollowUpsThisWeek, st.Active, st.Offers)

	parts := []string{
		alertLines("Deadlines", d.Deadlines, w.DeadlineDays),
		alertLines("Follow-ups", d.FollowUps, w.FollowUpDays),
		alertLines("Interviews", d.Interviews, w.InterviewDays),
		sectionStyle.Render("This week"),
		stats,
	}
	parts = append(parts, sectionWarnings(d.Warnings)...)
	return strings.Join(parts, "\n")
}

func sectionWarnings(ws []views.SectionWarning) []string {
	out := make([]string, 0, len(ws))
	for _, w := range ws {
		out = append(out, errorStyle.Render(fmt.Sprintf("%s unavailable: %s", w.Section, w.Message)))
	}
	return out
}

func (m Model) viewAdd() string {
	head := sectionStyle.Render("New application")
	if m.form.recordID != "" {
		head = sectionStyle.Render("Edit application") + "  " + mutedStyle.Render("esc cancels")
	}
	if !m.editing {
		head += "\n" + mutedStyle.Render("press enter to start editing")
	}
	return head + "\n" + m.form.view(m.editing)
}

func (m Model) viewTracker() string {
	t := m.tracker
	var b strings.Builder

	filter := fmt.Sprintf("status: %s  priority: %s  channel: %s",
		pickedLabel(domain.Statuses, m.statusSel),
		pickedLabel(domain.Priorities, m.prioritySel),
		pickedLabel(domain.Channels, m.channelSel))
	if m.searching {
		filter += "  " + m.search.View()
	} else if q := m.search.Value(); q != "" {
		filter += fmt.Sprintf("  search: %q", q)
	}
	b.WriteString(mutedStyle.Render(filter))
	b.WriteString("\n")

	switch {
	case t.NoData:
		b.WriteString(mutedStyle.Render("No applications yet."))
		return b.String()
	case t.NoMatch:
		b.WriteString(mutedStyle.Render("No applications match the current filters."))
		return b.String()
	}

	fmt.Fprintf(&b, "%d of %d applications\n", len(t.Rows), t.Total)
	header := fmt.Sprintf("  %-20s %-24s %-14s %-7s %-10s", "Company", "Job Title", "Status", "Prio", "Applied")
	b.WriteString(mutedStyle.Render(header))
	b.WriteString("\n")
	for i, a := range t.Rows {
		line := fmt.Sprintf("%-20s %-24s %-14s %-7s %-10s",
			abbrev(a.Company, 20), abbrev(a.JobTitle, 24), a.Status, a.Priority, a.DateApplied)
		if i == m.cursor {
			b.WriteString(cursorStyle.Render("> " + line))
		} else {
			b.WriteString("  " + line)
		}
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m Model) viewInsights() string {
	in := m.insights
	if in.Total == 0 {
		return mutedStyle.Render("Add applications to see insights.")
	}
	width := max(m.width-sidebarWidth-30, 20)

	salaries := mutedStyle.Render("no salary ranges recorded")
	if in.WithSalary > 0 {
		salaries = barChart(in.Salaries, width/2)
	}
	parts := []string{
		fmt.Sprintf("Total: %d   Offers: %d   Interviewing: %d   Rejection rate: %.1f%%",
			in.Total, in.Offers, in.Interviewing, in.RejectionRate),
		sectionStyle.Render("By status"),
		barChart(in.StatusDist, width),
		sectionStyle.Render("By channel"),
		barChart(in.ChannelDist, width),
		sectionStyle.Render("Priority x status"),
		heatmap(in.Crosstab),
		sectionStyle.Render("Timeline"),
		timeline(in.Timeline, 15),
		sectionStyle.Render(fmt.Sprintf("Salary ranges (%d of %d)", in.WithSalary, in.Total)),
		salaries,
	}
	parts = append(parts, sectionWarnings(in.Warnings)...)
	return strings.Join(parts, "\n")
}

func (m Model) viewCalendar() string {
	c := m.calendar
	switch {
	case c.NoEvents:
		return mutedStyle.Render("No dated events. Add follow-ups, deadlines or interviews.")
	case c.NoUpcoming:
		return mutedStyle.Render("No upcoming events.")
	}
	var b strings.Builder
	b.WriteString(sectionStyle.Render("Upcoming"))
	b.WriteString("\n")
	for _, e := range c.Events {
		line := fmt.Sprintf("%s  %-10s %-11s %s", e.Date, e.When, e.Type, e.Label)
		if e.DaysUntil <= 1 {
			line = warnStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	return strings.TrimRight(b.String(), "\n")
}
