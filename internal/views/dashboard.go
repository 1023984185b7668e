package views

import (
	"math"

	"jobtracker-engine/internal/domain"
)

// Windows are the forward alert windows in days, inclusive of both ends.
type Windows struct {
	DeadlineDays  int
	FollowUpDays  int
	InterviewDays int
	// WeekDays bounds the quick-stat counters.
	WeekDays int
}

func DefaultWindows() Windows {
	return Windows{DeadlineDays: 7, FollowUpDays: 3, InterviewDays: 2, WeekDays: 7}
}

type Alert struct {
	RecordID string      `json:"record_id"`
	Company  string      `json:"company"`
	JobTitle string      `json:"job_title"`
	Date     domain.Date `json:"date"`
	DaysLeft int         `json:"days_left"`
}

type QuickStats struct {
	InterviewsThisWeek int `json:"interviews_this_week"`
	FollowUpsThisWeek  int `json:"follow_ups_this_week"`
	Active             int `json:"active"`
	Offers             int `json:"offers"`
}

type SidebarStats struct {
	Total       int     `json:"total"`
	Active      int     `json:"active"`
	SuccessRate float64 `json:"success_rate"`
}

type Dashboard struct {
	Today      domain.Date      `json:"today"`
	Deadlines  []Alert          `json:"deadlines"`
	FollowUps  []Alert          `json:"follow_ups"`
	Interviews []Alert          `json:"interviews"`
	Stats      QuickStats       `json:"stats"`
	Sidebar    SidebarStats     `json:"sidebar"`
	Warnings   []SectionWarning `json:"warnings"`
}

type dateField func(a domain.Application) *domain.Date

func deadlineOf(a domain.Application) *domain.Date  { return a.Deadline }
func followUpOf(a domain.Application) *domain.Date  { return a.FollowUpDate }
func interviewOf(a domain.Application) *domain.Date { return a.InterviewDate }

// Upcoming lists rows whose field falls in [today, today+days], in table
// order. Rows without the date are skipped.
func Upcoming(t domain.Table, field dateField, today domain.Date, days int) []Alert {
	end := today.AddDays(days)
	out := []Alert{}
	for _, a := range t {
		d := field(a)
		if d == nil || !d.Within(today, end) {
			continue
		}
		out = append(out, Alert{
			RecordID: a.RecordID,
			Company:  a.Company,
			JobTitle: a.JobTitle,
			Date:     *d,
			DaysLeft: d.DaysSince(today),
		})
	}
	return out
}

// BuildDashboard computes each section independently; a failing section
// leaves its zero value and adds a warning.
func BuildDashboard(t domain.Table, today domain.Date, w Windows) Dashboard {
	d := Dashboard{
		Today:      today,
		Deadlines:  []Alert{},
		FollowUps:  []Alert{},
		Interviews: []Alert{},
		Warnings:   []SectionWarning{},
	}

	guard("deadlines", &d.Warnings, func() {
		d.Deadlines = Upcoming(t, deadlineOf, today, w.DeadlineDays)
	})
	guard("follow_ups", &d.Warnings, func() {
		d.FollowUps = Upcoming(t, followUpOf, today, w.FollowUpDays)
	})
	guard("interviews", &d.Warnings, func() {
		d.Interviews = Upcoming(t, interviewOf, today, w.InterviewDays)
	})
	guard("interviews_this_week", &d.Warnings, func() {
		d.Stats.InterviewsThisWeek = len(Upcoming(t, interviewOf, today, w.WeekDays))
	})
	guard("follow_ups_this_week", &d.Warnings, func() {
		d.Stats.FollowUpsThisWeek = len(Upcoming(t, followUpOf, today, w.WeekDays))
	})
	guard("status_counts", &d.Warnings, func() {
		d.Stats.Active = countActive(t)
		d.Stats.Offers = countStatus(t, domain.StatusOffered)
	})
	guard("sidebar", &d.Warnings, func() {
		d.Sidebar = Sidebar(t)
	})
	return d
}

// Sidebar is the always-visible summary.
func Sidebar(t domain.Table) SidebarStats {
	return SidebarStats{
		Total:       len(t),
		Active:      countActive(t),
		SuccessRate: percent(countStatus(t, domain.StatusOffered), len(t)),
	}
}

func countActive(t domain.Table) int {
	n := 0
	for _, a := range t {
		if a.Status.IsActive() {
			n++
		}
	}
	return n
}

func countStatus(t domain.Table, s domain.Status) int {
	n := 0
	for _, a := range t {
		if a.Status == s {
			n++
		}
	}
	return n
}

// percent is part/total*100 rounded to one decimal, 0 for an empty total.
func percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return math.Round(float64(part)/float64(total)*1000) / 10
}
