package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/cursor"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"jobtracker-engine/internal/domain"
)

type formField struct {
	label    string
	required bool
	ref      func(f *domain.Form) *string
	input    textinput.Model
}

type form struct {
	fields []formField
	focus  int
	// recordID is set when the form edits an existing application.
	recordID string
}

func options[T ~string](vs []T) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = string(v)
	}
	return strings.Join(parts, " | ")
}

func newForm(today domain.Date) form {
	field := func(label string, required bool, placeholder string, ref func(*domain.Form) *string) formField {
		ti := textinput.New()
		ti.Placeholder = placeholder
		ti.CharLimit = 200
		ti.Width = 48
		ti.Cursor.SetMode(cursor.CursorStatic)
		return formField{label: label, required: required, ref: ref, input: ti}
	}

	f := form{fields: []formField{
		field("Job Title", true, "", func(f *domain.Form) *string { return &f.JobTitle }),
		field("Company", true, "", func(f *domain.Form) *string { return &f.Company }),
		field("Status", false, options(domain.Statuses), func(f *domain.Form) *string { return &f.Status }),
		field("Priority", false, options(domain.Priorities), func(f *domain.Form) *string { return &f.Priority }),
		field("Channel", false, options(domain.Channels), func(f *domain.Form) *string { return &f.Channel }),
		field("Salary Range", false, "e.g. $80k-$100k", func(f *domain.Form) *string { return &f.SalaryRange }),
		field("Location", false, "", func(f *domain.Form) *string { return &f.Location }),
		field("Date Applied", true, domain.DateLayout, func(f *domain.Form) *string { return &f.DateApplied }),
		field("Follow-up Date", false, domain.DateLayout, func(f *domain.Form) *string { return &f.FollowUpDate }),
		field("Deadline", false, domain.DateLayout, func(f *domain.Form) *string { return &f.Deadline }),
		field("Interview Date", false, domain.DateLayout, func(f *domain.Form) *string { return &f.InterviewDate }),
		field("Notes", false, "", func(f *domain.Form) *string { return &f.Notes }),
		field("Referral", false, options(domain.Referrals), func(f *domain.Form) *string { return &f.Referral }),
		field("Application ID", false, "", func(f *domain.Form) *string { return &f.ApplicationID }),
		field("Contact Person", false, "", func(f *domain.Form) *string { return &f.ContactPerson }),
		field("Contact Email", false, "", func(f *domain.Form) *string { return &f.ContactEmail }),
	}}
	f.fields[7].input.SetValue(today.String())
	return f
}

// editForm opens the form on an existing application.
func editForm(a domain.Application) form {
	f := newForm(a.DateApplied)
	f.recordID = a.RecordID
	src := domain.FormOf(a)
	for i := range f.fields {
		f.fields[i].input.SetValue(*f.fields[i].ref(&src))
	}
	return f
}

func (f *form) value() domain.Form {
	var out domain.Form
	for _, fl := range f.fields {
		*fl.ref(&out) = fl.input.Value()
	}
	return out
}

func (f *form) focusOn(i int) {
	n := len(f.fields)
	i = ((i % n) + n) % n
	f.fields[f.focus].input.Blur()
	f.focus = i
	f.fields[f.focus].input.Focus()
}

func (f *form) blur() {
	f.fields[f.focus].input.Blur()
}

func (f *form) update(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	f.fields[f.focus].input, cmd = f.fields[f.focus].input.Update(msg)
	return cmd
}

func (f *form) view(editing bool) string {
	var b strings.Builder
	for i, fl := range f.fields {
		label := fl.label
		if fl.required {
			label += " *"
		}
		marker := "  "
		if editing && i == f.focus {
			marker = cursorStyle.Render("> ")
		}
		fmt.Fprintf(&b, "%s%-17s %s\n", marker, label, fl.input.View())
	}
	return b.String()
}
