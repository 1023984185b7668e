package views

import (
	"bytes"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"jobtracker-engine/internal/domain"
)

var today = domain.NewDate(2025, time.June, 2)

func daysOut(days int) *domain.Date {
	d := today.AddDays(days)
	return &d
}

func app(company, title string, s domain.Status, p domain.Priority, c domain.Channel) domain.Application {
	return domain.Application{
		RecordID: company + "/" + title,
		Company:  company, JobTitle: title,
		Status: s, Priority: p, Channel: c,
		DateApplied: today.AddDays(-10),
		Referral:    domain.ReferralNo,
	}
}

func mixedTable() domain.Table {
	return domain.Table{
		app("Google Inc", "Backend Engineer", domain.StatusApplied, domain.PriorityHigh, domain.ChannelLinkedIn),
		app("Microsoft", "SRE", domain.StatusInterviewing, domain.PriorityMedium, domain.ChannelReferral),
		app("Acme", "Data Analyst", domain.StatusApplied, domain.PriorityLow, domain.ChannelIndeed),
		app("Globex", "Google Ads Specialist", domain.StatusRejected, domain.PriorityHigh, domain.ChannelOther),
		app("Initech", "PM", domain.StatusOffered, domain.PriorityMedium, domain.ChannelLinkedIn),
	}
}

func TestFilterSingleStatus(t *testing.T) {
	table := mixedTable()
	f := DefaultFilter(table)
	f.Statuses = []string{string(domain.StatusApplied)}

	got := Apply(table, f)
	require.Len(t, got, 2)
	for _, a := range got {
		assert.Equal(t, domain.StatusApplied, a.Status)
	}
}

func TestFilterIsConjunctive(t *testing.T) {
	f := Filter{
		Statuses: []string{"Applied"},
		Channels: []string{"LinkedIn"},
	}
	got := Apply(mixedTable(), f)
	require.Len(t, got, 1)
	assert.Equal(t, "Google Inc", got[0].Company)
}

func TestSearchIsCaseInsensitive(t *testing.T) {
	table := domain.Table{
		app("Google Inc", "Engineer", domain.StatusApplied, domain.PriorityHigh, domain.ChannelLinkedIn),
		app("Microsoft", "Engineer", domain.StatusApplied, domain.PriorityHigh, domain.ChannelLinkedIn),
	}
	got := Apply(table, Filter{Search: "google"})
	require.Len(t, got, 1)
	assert.Equal(t, "Google Inc", got[0].Company)

	// job title is searched too
	got = Apply(mixedTable(), Filter{Search: "  GOOGLE "})
	assert.Len(t, got, 2)

	assert.Len(t, Apply(table, Filter{}), 2)
}

func TestDefaultFilterSelectsPresentValues(t *testing.T) {
	f := DefaultFilter(mixedTable())
	assert.Equal(t, []string{"Applied", "Interviewing", "Rejected", "Offered"}, f.Statuses)
	assert.Equal(t, []string{"High", "Medium", "Low"}, f.Priorities)
	assert.Equal(t, []string{"LinkedIn", "Referral", "Indeed", "Other"}, f.Channels)
	assert.Len(t, Apply(mixedTable(), f), 5)
}

func TestTrackDistinguishesEmptyCases(t *testing.T) {
	v := Track(domain.Table{}, Filter{})
	assert.True(t, v.NoData)
	assert.False(t, v.NoMatch)
	assert.Empty(t, v.Rows)

	v = Track(mixedTable(), Filter{Search: "nobody"})
	assert.False(t, v.NoData)
	assert.True(t, v.NoMatch)
	assert.Equal(t, 5, v.Total)

	v = Track(mixedTable(), Filter{Search: "acme"})
	assert.False(t, v.NoMatch)
	assert.Len(t, v.Rows, 1)
}

func TestExport(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, mixedTable()[:2]))
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "job_title,company,status"))
	assert.Contains(t, lines[1], "Google Inc")

	ts := time.Date(2025, time.June, 2, 14, 5, 9, 0, time.UTC)
	assert.Equal(t, "job_applications_20250602_140509.csv", ExportFilename(ts))
}

func TestDeadlineWindowBoundary(t *testing.T) {
	table := domain.Table{
		{Company: "Seven", Deadline: daysOut(7)},
		{Company: "Eight", Deadline: daysOut(8)},
		{Company: "Past", Deadline: daysOut(-1)},
		{Company: "Today", Deadline: daysOut(0)},
		{Company: "None"},
	}
	d := BuildDashboard(table, today, DefaultWindows())
	require.Len(t, d.Deadlines, 2)
	assert.Equal(t, "Seven", d.Deadlines[0].Company)
	assert.Equal(t, 7, d.Deadlines[0].DaysLeft)
	assert.Equal(t, "Today", d.Deadlines[1].Company)
	assert.Equal(t, 0, d.Deadlines[1].DaysLeft)
	assert.Empty(t, d.Warnings)
}

func TestFollowUpAndInterviewWindows(t *testing.T) {
	table := domain.Table{
		{Company: "A", FollowUpDate: daysOut(3), InterviewDate: daysOut(2), Status: domain.StatusInterviewing},
		{Company: "B", FollowUpDate: daysOut(4), InterviewDate: daysOut(3), Status: domain.StatusPending},
		{Company: "C", FollowUpDate: daysOut(8), InterviewDate: daysOut(7), Status: domain.StatusOffered},
	}
	d := BuildDashboard(table, today, DefaultWindows())
	require.Len(t, d.FollowUps, 1)
	assert.Equal(t, "A", d.FollowUps[0].Company)
	require.Len(t, d.Interviews, 1)
	assert.Equal(t, "A", d.Interviews[0].Company)

	assert.Equal(t, 3, d.Stats.InterviewsThisWeek)
	assert.Equal(t, 2, d.Stats.FollowUpsThisWeek)
	assert.Equal(t, 2, d.Stats.Active)
	assert.Equal(t, 1, d.Stats.Offers)
	assert.Equal(t, 33.3, d.Sidebar.SuccessRate)
}

func TestGuardIsolatesPanics(t *testing.T) {
	var warnings []SectionWarning
	ran := false
	guard("broken", &warnings, func() { panic("boom") })
	guard("fine", &warnings, func() { ran = true })

	assert.True(t, ran)
	require.Len(t, warnings, 1)
	assert.Equal(t, "broken", warnings[0].Section)
	assert.Equal(t, "boom", warnings[0].Message)
}

func TestEmptyTableAggregates(t *testing.T) {
	assert.NotPanics(t, func() {
		ins := BuildInsights(domain.Table{})
		assert.Zero(t, ins.Total)
		assert.Zero(t, ins.RejectionRate)
		assert.Empty(t, ins.StatusDist)
		assert.Empty(t, ins.ChannelDist)
		assert.Empty(t, ins.Timeline)
		assert.Empty(t, ins.Crosstab.Counts)
		assert.Zero(t, ins.Crosstab.Max())
		assert.Empty(t, ins.Salaries)
		assert.Empty(t, ins.Warnings)

		d := BuildDashboard(nil, today, DefaultWindows())
		assert.Zero(t, d.Sidebar.SuccessRate)
		assert.Empty(t, d.Deadlines)

		c := BuildCalendar(nil, today, 10)
		assert.True(t, c.NoEvents)
	})
}

func TestInsights(t *testing.T) {
	table := mixedTable()
	table[0].SalaryRange = "$100k"
	table[1].SalaryRange = "$120k"
	table[2].SalaryRange = "$100k"
	table[0].DateApplied = today
	table[3].DateApplied = today.AddDays(-20)

	ins := BuildInsights(table)
	assert.Equal(t, 5, ins.Total)
	assert.Equal(t, 1, ins.Offers)
	assert.Equal(t, 1, ins.Interviewing)
	assert.Equal(t, 20.0, ins.RejectionRate)

	assert.Equal(t, []Count{
		{"Applied", 2}, {"Interviewing", 1}, {"Rejected", 1}, {"Offered", 1},
	}, ins.StatusDist)
	assert.Equal(t, Count{"LinkedIn", 2}, ins.ChannelDist[0])

	require.Len(t, ins.Timeline, 5)
	assert.Equal(t, "Globex", ins.Timeline[0].Company)
	assert.Equal(t, "Google Inc", ins.Timeline[4].Company)
	assert.Equal(t, "Microsoft", ins.Timeline[1].Company, "equal dates keep table order")
	assert.Equal(t, 3, ins.Timeline[0].Weight)

	assert.Equal(t, []string{"High", "Medium", "Low"}, ins.Crosstab.Priorities)
	assert.Equal(t, []string{"Applied", "Interviewing", "Offered", "Rejected"}, ins.Crosstab.Statuses)
	assert.Equal(t, [][]int{
		{1, 0, 0, 1},
		{0, 1, 1, 0},
		{1, 0, 0, 0},
	}, ins.Crosstab.Counts)
	assert.Equal(t, 1, ins.Crosstab.Max())

	assert.Equal(t, []Count{{"$100k", 2}, {"$120k", 1}}, ins.Salaries)
	assert.Equal(t, 3, ins.WithSalary)
}

func TestCrosstabUnknownValuesSortLast(t *testing.T) {
	table := domain.Table{
		{Priority: "Urgent", Status: "Ghosted"},
		{Priority: domain.PriorityLow, Status: "Archived"},
		{Priority: domain.PriorityLow, Status: domain.StatusApplied},
	}
	c := BuildCrosstab(table)
	assert.Equal(t, []string{"Low", "Urgent"}, c.Priorities)
	assert.Equal(t, []string{"Applied", "Archived", "Ghosted"}, c.Statuses)
}

func TestCalendarCapAndLabels(t *testing.T) {
	var table domain.Table
	for i := 14; i >= 0; i-- {
		table = append(table, domain.Application{
			RecordID:    fmt.Sprintf("r%d", i),
			Company:     fmt.Sprintf("C%d", i),
			JobTitle:    "Dev",
			DateApplied: *daysOut(i),
		})
	}
	c := BuildCalendar(table, today, 10)
	require.Len(t, c.Events, 10)
	assert.False(t, c.NoEvents)
	assert.False(t, c.NoUpcoming)
	for i, e := range c.Events {
		assert.Equal(t, i, e.DaysUntil)
		assert.Equal(t, today.AddDays(i), e.Date)
	}
	assert.Equal(t, "TODAY", c.Events[0].When)
	assert.Equal(t, "TOMORROW", c.Events[1].When)
	assert.Equal(t, "in 2 days", c.Events[2].When)
	assert.Equal(t, "in 9 days", c.Events[9].When)
	assert.Equal(t, "Applied: C0 - Dev", c.Events[0].Label)
}

func TestEventsLabelsAndOmissions(t *testing.T) {
	a := domain.Application{
		RecordID: "x", Company: "Acme", JobTitle: "Dev",
		DateApplied:   today.AddDays(-1),
		FollowUpDate:  daysOut(1),
		InterviewDate: daysOut(1),
	}
	ev := Events(domain.Table{a})
	require.Len(t, ev, 3)
	assert.Equal(t, EventApplication, ev[0].Type)
	assert.Equal(t, "Follow-up: Acme", ev[1].Label)
	assert.Equal(t, "Interview: Acme - Dev", ev[2].Label)

	c := BuildCalendar(domain.Table{{Company: "Old", DateApplied: today.AddDays(-3)}}, today, 10)
	assert.False(t, c.NoEvents)
	assert.True(t, c.NoUpcoming)
	assert.Empty(t, c.Events)
}
