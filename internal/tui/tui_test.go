package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
	"jobtracker-engine/internal/views"
)

var fixedNow = time.Date(2025, time.June, 2, 9, 30, 0, 0, time.UTC)

func newTestModel(t *testing.T) (Model, string) {
	t.Helper()
	dir := t.TempDir()
	local := store.NewLocalFiles(filepath.Join(dir, "job_applications.csv"), filepath.Join(dir, "job_applications_backup.json"))
	repo := store.NewRepository(nil, local, nil, time.Second, nil)

	n := 0
	svc := service.New(repo, service.Options{
		Now: func() time.Time { return fixedNow },
		NewID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	})
	m := New(context.Background(), svc, Options{ExportDir: dir})
	return drain(t, m, m.Init()), dir
}

// drain runs cmd and feeds every resulting message back into the model
// until no command is left.
func drain(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	for i := 0; cmd != nil; i++ {
		require.Less(t, i, 20, "command loop did not settle")
		msg := cmd()
		if msg == nil {
			return m
		}
		if _, ok := msg.(tea.QuitMsg); ok {
			return m
		}
		var next tea.Model
		next, cmd = m.Update(msg)
		m = next.(Model)
	}
	return m
}

func key(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case "ctrl+s":
		return tea.KeyMsg{Type: tea.KeyCtrlS}
	case "ctrl+c":
		return tea.KeyMsg{Type: tea.KeyCtrlC}
	}
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		next, cmd := m.Update(key(k))
		m = drain(t, next.(Model), cmd)
	}
	return m
}

func typeText(t *testing.T, m Model, s string) Model {
	t.Helper()
	for _, r := range s {
		m = press(t, m, string(r))
	}
	return m
}

func TestEmptyStoreThenSeed(t *testing.T) {
	m, _ := newTestModel(t)
	assert.Equal(t, store.SourceEmpty, m.load.Source)
	assert.Contains(t, m.View(), "No applications yet")

	m = press(t, m, "S")
	assert.False(t, m.isError, m.status)
	assert.Equal(t, "Seed: saved locally (remote unavailable)", m.status)
	assert.Equal(t, 4, m.dash.Sidebar.Total)
	assert.Equal(t, store.SourceLocal, m.load.Source)

	// a second seed is refused before reaching the backend
	m = press(t, m, "S")
	assert.True(t, m.isError)
	assert.Equal(t, 4, m.dash.Sidebar.Total)
}

func TestDashboardShowsAlerts(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S")

	out := m.View()
	assert.Contains(t, out, "Deadlines")
	// the sample interview is two days out
	assert.Contains(t, out, "Data Inc - Data Analyst (in 2 days)")
	assert.Contains(t, out, "Total:   4")
}

func TestAddThroughForm(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "enter")
	require.True(t, m.editing)

	m = typeText(t, m, "Backend Dev")
	m = press(t, m, "tab")
	m = typeText(t, m, "Acme")
	m = press(t, m, "ctrl+s")

	assert.False(t, m.isError, m.status)
	assert.Equal(t, "Add: saved locally (remote unavailable)", m.status)
	assert.False(t, m.editing)
	require.Len(t, m.tracker.Rows, 1)
	got := m.tracker.Rows[0]
	assert.Equal(t, "Acme", got.Company)
	assert.Equal(t, "Backend Dev", got.JobTitle)
	assert.Equal(t, domain.DateOf(fixedNow), got.DateApplied)
	assert.Equal(t, domain.StatusApplied, got.Status)

	// the form is reset for the next entry
	assert.Empty(t, m.form.fields[0].input.Value())
}

func TestAddMissingRequired(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "2", "enter", "ctrl+s")

	assert.True(t, m.isError)
	assert.Contains(t, m.status, "Add failed")
	assert.True(t, m.editing)
	assert.Equal(t, 0, m.dash.Sidebar.Total)
}

func TestTrackerFilterDeleteDuplicate(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S", "3")
	require.Len(t, m.tracker.Rows, 4)

	m = press(t, m, "f")
	assert.Equal(t, []string{"Applied"}, m.tracker.Filter.Statuses)
	require.Len(t, m.tracker.Rows, 1)
	assert.Equal(t, "Tech Corp", m.tracker.Rows[0].Company)

	m = press(t, m, "D")
	assert.Equal(t, "Duplicate: saved locally (remote unavailable)", m.status)
	assert.Len(t, m.tracker.Rows, 2)

	m = press(t, m, "x", "x")
	assert.True(t, m.tracker.NoMatch)
	assert.Contains(t, m.View(), "No applications match")

	m = press(t, m, "c")
	assert.Len(t, m.tracker.Rows, 3)
}

func TestTrackerPriorityAndChannelFilters(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S", "3", "p")
	assert.Equal(t, []string{"High"}, m.tracker.Filter.Priorities)
	require.Len(t, m.tracker.Rows, 2)
	assert.Contains(t, m.View(), "priority: High")

	m = press(t, m, "n")
	assert.Equal(t, []string{"LinkedIn"}, m.tracker.Filter.Channels)
	assert.Len(t, m.tracker.Rows, 2)

	m = press(t, m, "n")
	assert.True(t, m.tracker.NoMatch)

	m = press(t, m, "c")
	assert.Len(t, m.tracker.Rows, 4)
	assert.Contains(t, m.View(), "status: all  priority: all  channel: all")
}

func TestEditFromTracker(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S", "3")
	require.NotEmpty(t, m.tracker.Rows)
	target := m.tracker.Rows[0]

	m = press(t, m, "E")
	require.True(t, m.editing)
	assert.Equal(t, tabAdd, m.tab)
	assert.Equal(t, target.RecordID, m.form.recordID)
	assert.Equal(t, target.Company, m.form.fields[1].input.Value())
	assert.Contains(t, m.View(), "Edit application")

	m.form.fields[3].input.SetValue("Urgent")
	m = press(t, m, "ctrl+s")
	assert.True(t, m.isError)
	assert.Contains(t, m.status, "Update failed")
	assert.Contains(t, m.status, "priority")
	assert.True(t, m.editing)

	m.form.fields[3].input.SetValue("low")
	m = press(t, m, "ctrl+s")
	assert.False(t, m.isError, m.status)
	assert.Equal(t, "Update: saved locally (remote unavailable)", m.status)
	assert.False(t, m.editing)
	assert.Equal(t, tabTracker, m.tab)
	assert.Empty(t, m.form.recordID)

	require.Len(t, m.tracker.Rows, 4)
	got := m.tracker.Rows[0]
	assert.Equal(t, target.RecordID, got.RecordID)
	assert.Equal(t, domain.PriorityLow, got.Priority)
	assert.Equal(t, target.Company, got.Company)
	assert.Equal(t, target.Deadline, got.Deadline)
}

func TestEditCancelKeepsRecord(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S", "3", "E")
	m.form.fields[1].input.SetValue("Renamed")
	m = press(t, m, "esc")

	assert.False(t, m.editing)
	assert.Equal(t, tabTracker, m.tab)
	assert.Empty(t, m.form.recordID)
	assert.Equal(t, "Tech Corp", m.tracker.Rows[0].Company)
}

func TestTrackerSearchAndExport(t *testing.T) {
	m, dir := newTestModel(t)
	m = press(t, m, "S", "3", "/")
	require.True(t, m.searching)

	m = typeText(t, m, "data")
	m = press(t, m, "enter")
	require.Len(t, m.tracker.Rows, 1)
	assert.Equal(t, "Data Inc", m.tracker.Rows[0].Company)

	m = press(t, m, "e")
	assert.False(t, m.isError, m.status)
	path := filepath.Join(dir, views.ExportFilename(fixedNow))
	assert.Equal(t, fmt.Sprintf("Exported 1 rows to %s", path), m.status)

	b, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(b), "Data Analyst")
	assert.NotContains(t, string(b), "Tech Corp")

	m = press(t, m, "/", "esc")
	assert.Len(t, m.tracker.Rows, 4)
}

func TestTabsAndQuit(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "tab")
	assert.Equal(t, tabAdd, m.tab)
	m = press(t, m, "5")
	assert.Equal(t, tabCalendar, m.tab)
	m = press(t, m, "tab")
	assert.Equal(t, tabDashboard, m.tab)

	_, cmd := m.Update(key("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
}

func TestInsightsAndCalendarViews(t *testing.T) {
	m, _ := newTestModel(t)
	m = press(t, m, "S", "4")
	out := m.View()
	assert.Contains(t, out, "By status")
	assert.Contains(t, out, "Rejection rate: 0.0%")

	m = press(t, m, "5")
	out = m.View()
	assert.Contains(t, out, "Upcoming")
	assert.Contains(t, out, "Interview")
}

func TestHeatLevel(t *testing.T) {
	assert.Equal(t, 0, heatLevel(0, 5))
	assert.Equal(t, 1, heatLevel(1, 8))
	assert.Equal(t, len(heatStyles)-1, heatLevel(8, 8))
	assert.Equal(t, 0, heatLevel(3, 0))
}

func TestBarChartKeepsSmallCountsVisible(t *testing.T) {
	out := barChart([]views.Count{{Label: "A", Count: 100}, {Label: "B", Count: 1}}, 10)
	assert.Contains(t, out, "█ 1")
	assert.Equal(t, "no data", stripANSI(barChart(nil, 10)))
}

func stripANSI(s string) string {
	out := make([]rune, 0, len(s))
	skip := false
	for _, r := range s {
		switch {
		case r == '\x1b':
			skip = true
		case skip && r == 'm':
			skip = false
		case !skip:
			out = append(out, r)
		}
	}
	return string(out)
}
