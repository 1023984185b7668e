// Package tui is the terminal front end: five tabs over the same service the
// HTTP API uses.
package tui

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jobtracker-engine/internal/apperr"
	"jobtracker-engine/internal/domain"
	"jobtracker-engine/internal/service"
	"jobtracker-engine/internal/store"
	"jobtracker-engine/internal/views"
)

type tab int

const (
	tabDashboard tab = iota
	tabAdd
	tabTracker
	tabInsights
	tabCalendar
)

var tabNames = []string{"Dashboard", "Add Application", "Tracker", "Insights", "Calendar"}

type Options struct {
	// ExportDir receives CSV exports from the tracker tab.
	ExportDir string
	// Windows only labels the dashboard sections; the backend applies them.
	Windows views.Windows
}

type Model struct {
	backend   Backend
	ctx       context.Context
	exportDir string
	windows   views.Windows

	tab           tab
	width, height int

	status  string
	isError bool
	load    service.LoadInfo

	dash     views.Dashboard
	tracker  views.TrackerView
	insights views.Insights
	calendar views.Calendar

	// tracker state
	// selectors: 0 = all, else index+1 into domain.Statuses and friends
	cursor      int
	statusSel   int
	prioritySel int
	channelSel  int
	search      textinput.Model
	searching   bool

	form    form
	editing bool
}

func New(ctx context.Context, b Backend, opts Options) Model {
	search := textinput.New()
	search.Placeholder = "company or job title"
	search.Prompt = "/ "
	search.Cursor.SetMode(cursor.CursorStatic)

	if opts.Windows == (views.Windows{}) {
		opts.Windows = views.DefaultWindows()
	}
	if opts.ExportDir == "" {
		opts.ExportDir = "."
	}
	return Model{
		backend:   b,
		windows:   opts.Windows,
		ctx:       ctx,
		exportDir: opts.ExportDir,
		search:    search,
		form:      newForm(b.Today()),
	}
}

// Run starts the program on the current terminal.
func Run(ctx context.Context, b Backend, opts Options) error {
	p := tea.NewProgram(New(ctx, b, opts), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}

type refreshedMsg struct {
	dash     views.Dashboard
	tracker  views.TrackerView
	insights views.Insights
	calendar views.Calendar
	load     service.LoadInfo
}

type mutatedMsg struct {
	verb string
	m    service.Mutation
	err  error
}

type exportedMsg struct {
	path string
	rows int
	err  error
}

func (m Model) Init() tea.Cmd {
	return m.refresh()
}

// filter returns nil when nothing is narrowed, which selects every value
// present in the table.
func (m Model) filter() *views.Filter {
	q := m.search.Value()
	if m.statusSel == 0 && m.prioritySel == 0 && m.channelSel == 0 && q == "" {
		return nil
	}
	return &views.Filter{
		Statuses:   picked(domain.Statuses, m.statusSel),
		Priorities: picked(domain.Priorities, m.prioritySel),
		Channels:   picked(domain.Channels, m.channelSel),
		Search:     q,
	}
}

func picked[T ~string](vs []T, sel int) []string {
	if sel <= 0 || sel > len(vs) {
		return nil
	}
	return []string{string(vs[sel-1])}
}

func pickedLabel[T ~string](vs []T, sel int) string {
	if p := picked(vs, sel); p != nil {
		return p[0]
	}
	return "all"
}

func (m Model) refresh() tea.Cmd {
	ctx, b, f := m.ctx, m.backend, m.filter()
	return func() tea.Msg {
		var r refreshedMsg
		r.dash, r.load = b.Dashboard(ctx)
		r.tracker, _ = b.Tracker(ctx, f)
		r.insights, _ = b.Insights(ctx)
		r.calendar, _ = b.Calendar(ctx)
		return r
	}
}

func (m Model) mutate(verb string, fn func(ctx context.Context) (service.Mutation, error)) tea.Cmd {
	ctx := m.ctx
	return func() tea.Msg {
		mu, err := fn(ctx)
		return mutatedMsg{verb: verb, m: mu, err: err}
	}
}

func (m Model) export() tea.Cmd {
	ctx, b, f, dir := m.ctx, m.backend, m.filter(), m.exportDir
	return func() tea.Msg {
		tmp, err := os.CreateTemp(dir, "export-*.csv")
		if err != nil {
			return exportedMsg{err: err}
		}
		name, n, err := b.Export(ctx, f, tmp)
		if cerr := tmp.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			_ = os.Remove(tmp.Name())
			return exportedMsg{err: err}
		}
		path := filepath.Join(dir, name)
		if err := os.Rename(tmp.Name(), path); err != nil {
			return exportedMsg{err: err}
		}
		return exportedMsg{path: path, rows: n}
	}
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case refreshedMsg:
		m.dash, m.tracker, m.insights, m.calendar = msg.dash, msg.tracker, msg.insights, msg.calendar
		m.load = msg.load
		m.cursor = min(m.cursor, max(len(m.tracker.Rows)-1, 0))
		return m, nil

	case mutatedMsg:
		if msg.err != nil {
			m.setError(fmt.Sprintf("%s failed: %s", msg.verb, apperr.MessageOf(msg.err)))
			if msg.m.Save.Status == "" {
				return m, nil
			}
			return m, m.refresh()
		}
		m.setStatus(fmt.Sprintf("%s: %s", msg.verb, describeSave(msg.m.Save)))
		switch msg.verb {
		case "Add":
			m.form = newForm(m.backend.Today())
			m.editing = false
		case "Update":
			m.closeEdit()
		}
		return m, m.refresh()

	case exportedMsg:
		if msg.err != nil {
			m.setError("Export failed: " + msg.err.Error())
		} else {
			m.setStatus(fmt.Sprintf("Exported %d rows to %s", msg.rows, msg.path))
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) setStatus(s string) { m.status, m.isError = s, false }
func (m *Model) setError(s string)  { m.status, m.isError = s, true }

func describeSave(s service.SaveInfo) string {
	switch s.Status {
	case store.RemoteOK.String():
		return "saved"
	case store.RemoteFailedLocalOK.String():
		return "saved locally (remote unavailable)"
	default:
		return "not saved"
	}
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, tea.Quit
	}
	if m.editing {
		return m.handleFormKey(msg)
	}
	if m.searching {
		return m.handleSearchKey(msg)
	}

	switch msg.String() {
	case "q":
		return m, tea.Quit
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % tab(len(tabNames))
		return m, nil
	case "shift+tab", "left", "h":
		m.tab = (m.tab + tab(len(tabNames)) - 1) % tab(len(tabNames))
		return m, nil
	case "1", "2", "3", "4", "5":
		m.tab = tab(msg.Runes[0] - '1')
		return m, nil
	case "r":
		return m, m.refresh()
	case "S":
		if m.dash.Sidebar.Total > 0 {
			m.setError("Seed only works on an empty store")
			return m, nil
		}
		return m, m.mutate("Seed", m.backend.Seed)
	}

	switch m.tab {
	case tabAdd:
		if msg.String() == "enter" || msg.String() == "i" {
			m.editing = true
			m.form.focusOn(m.form.focus)
		}
	case tabTracker:
		return m.handleTrackerKey(msg)
	}
	return m, nil
}

// closeEdit leaves an edit of an existing record and returns to the tracker.
func (m *Model) closeEdit() {
	m.form = newForm(m.backend.Today())
	m.editing = false
	m.tab = tabTracker
}

func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		if m.form.recordID != "" {
			m.closeEdit()
			return m, nil
		}
		m.editing = false
		m.form.blur()
		return m, nil
	case "down", "tab", "enter":
		m.form.focusOn(m.form.focus + 1)
		return m, nil
	case "up", "shift+tab":
		m.form.focusOn(m.form.focus - 1)
		return m, nil
	case "ctrl+s":
		f, id := m.form.value(), m.form.recordID
		if id != "" {
			return m, m.mutate("Update", func(ctx context.Context) (service.Mutation, error) {
				return m.backend.Update(ctx, id, f)
			})
		}
		return m, m.mutate("Add", func(ctx context.Context) (service.Mutation, error) {
			return m.backend.Add(ctx, f)
		})
	}
	return m, m.form.update(msg)
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.SetValue("")
		m.search.Blur()
		return m, m.refresh()
	case "enter":
		m.searching = false
		m.search.Blur()
		return m, m.refresh()
	}
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	return m, cmd
}

func (m Model) handleTrackerKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	rows := m.tracker.Rows
	switch msg.String() {
	case "j", "down":
		if m.cursor < len(rows)-1 {
			m.cursor++
		}
	case "k", "up":
		if m.cursor > 0 {
			m.cursor--
		}
	case "/":
		m.searching = true
		m.search.Focus()
	case "f":
		m.statusSel = (m.statusSel + 1) % (len(domain.Statuses) + 1)
		m.cursor = 0
		return m, m.refresh()
	case "p":
		m.prioritySel = (m.prioritySel + 1) % (len(domain.Priorities) + 1)
		m.cursor = 0
		return m, m.refresh()
	case "n":
		m.channelSel = (m.channelSel + 1) % (len(domain.Channels) + 1)
		m.cursor = 0
		return m, m.refresh()
	case "c":
		m.statusSel, m.prioritySel, m.channelSel = 0, 0, 0
		m.search.SetValue("")
		m.cursor = 0
		return m, m.refresh()
	case "e":
		return m, m.export()
	case "E":
		if m.cursor >= 0 && m.cursor < len(rows) {
			m.form = editForm(rows[m.cursor])
			m.tab = tabAdd
			m.editing = true
			m.form.focusOn(0)
		}
	case "D":
		if id, ok := m.selectedID(); ok {
			return m, m.mutate("Duplicate", func(ctx context.Context) (service.Mutation, error) {
				return m.backend.Duplicate(ctx, id)
			})
		}
	case "x":
		if id, ok := m.selectedID(); ok {
			return m, m.mutate("Delete", func(ctx context.Context) (service.Mutation, error) {
				return m.backend.Delete(ctx, id)
			})
		}
	}
	return m, nil
}

func (m Model) selectedID() (string, bool) {
	if m.cursor < 0 || m.cursor >= len(m.tracker.Rows) {
		return "", false
	}
	return m.tracker.Rows[m.cursor].RecordID, true
}
