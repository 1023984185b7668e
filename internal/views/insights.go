package views

import (
	"sort"
	"strings"

	"jobtracker-engine/internal/domain"
)

type Count struct {
	Label string `json:"label"`
	Count int    `json:"count"`
}

type TimelinePoint struct {
	RecordID    string          `json:"record_id"`
	Company     string          `json:"company"`
	JobTitle    string          `json:"job_title"`
	Location    string          `json:"location"`
	SalaryRange string          `json:"salary_range"`
	DateApplied domain.Date     `json:"date_applied"`
	Status      domain.Status   `json:"status"`
	Priority    domain.Priority `json:"priority"`
	Weight      int             `json:"weight"`
}

// Crosstab counts records per priority (rows) and status (columns).
type Crosstab struct {
	Priorities []string `json:"priorities"`
	Statuses   []string `json:"statuses"`
	Counts     [][]int  `json:"counts"`
}

// Max is the largest cell, used to scale heatmap shading.
func (c Crosstab) Max() int {
	m := 0
	for _, row := range c.Counts {
		for _, n := range row {
			m = max(m, n)
		}
	}
	return m
}

type Insights struct {
	Total         int              `json:"total"`
	Offers        int              `json:"offers"`
	Interviewing  int              `json:"interviewing"`
	Rejected      int              `json:"rejected"`
	RejectionRate float64          `json:"rejection_rate"`
	StatusDist    []Count          `json:"status_distribution"`
	ChannelDist   []Count          `json:"channel_distribution"`
	Timeline      []TimelinePoint  `json:"timeline"`
	Crosstab      Crosstab         `json:"crosstab"`
	Salaries      []Count          `json:"salaries"`
	WithSalary    int              `json:"with_salary"`
	Warnings      []SectionWarning `json:"warnings"`
}

func BuildInsights(t domain.Table) Insights {
	in := Insights{
		Total:       len(t),
		StatusDist:  []Count{},
		ChannelDist: []Count{},
		Timeline:    []TimelinePoint{},
		Crosstab:    Crosstab{Priorities: []string{}, Statuses: []string{}, Counts: [][]int{}},
		Salaries:    []Count{},
		Warnings:    []SectionWarning{},
	}

	guard("counts", &in.Warnings, func() {
		in.Offers = countStatus(t, domain.StatusOffered)
		in.Interviewing = countStatus(t, domain.StatusInterviewing)
		in.Rejected = countStatus(t, domain.StatusRejected)
		in.RejectionRate = percent(in.Rejected, len(t))
	})
	guard("status_distribution", &in.Warnings, func() {
		in.StatusDist = Distribution(t, func(a domain.Application) string { return string(a.Status) })
	})
	guard("channel_distribution", &in.Warnings, func() {
		in.ChannelDist = Distribution(t, func(a domain.Application) string { return string(a.Channel) })
	})
	guard("timeline", &in.Warnings, func() {
		in.Timeline = Timeline(t)
	})
	guard("crosstab", &in.Warnings, func() {
		in.Crosstab = BuildCrosstab(t)
	})
	guard("salaries", &in.Warnings, func() {
		in.Salaries, in.WithSalary = SalarySummary(t)
	})
	return in
}

// Distribution counts values of key, most frequent first. Ties keep the
// order in which values first appear.
func Distribution(t domain.Table, key func(domain.Application) string) []Count {
	out := tally(t, key, false)
	sort.SliceStable(out, func(i, j int) bool { return out[i].Count > out[j].Count })
	return out
}

func tally(t domain.Table, key func(domain.Application) string, skipBlank bool) []Count {
	idx := map[string]int{}
	out := []Count{}
	for _, a := range t {
		k := key(a)
		if skipBlank && strings.TrimSpace(k) == "" {
			continue
		}
		i, ok := idx[k]
		if !ok {
			i = len(out)
			idx[k] = i
			out = append(out, Count{Label: k})
		}
		out[i].Count++
	}
	return out
}

// Timeline orders rows by application date; equal dates keep table order.
func Timeline(t domain.Table) []TimelinePoint {
	out := make([]TimelinePoint, 0, len(t))
	for _, a := range t {
		out = append(out, TimelinePoint{
			RecordID:    a.RecordID,
			Company:     a.Company,
			JobTitle:    a.JobTitle,
			Location:    a.Location,
			SalaryRange: a.SalaryRange,
			DateApplied: a.DateApplied,
			Status:      a.Status,
			Priority:    a.Priority,
			Weight:      a.Priority.Weight(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].DateApplied.Before(out[j].DateApplied)
	})
	return out
}

func BuildCrosstab(t domain.Table) Crosstab {
	var ps, ss []string
	for _, a := range t {
		ps = append(ps, string(a.Priority))
		ss = append(ss, string(a.Status))
	}
	c := Crosstab{
		Priorities: orderValues(ps, stringsOf(domain.Priorities)),
		Statuses:   orderValues(ss, stringsOf(domain.Statuses)),
	}

	pi := indexOf(c.Priorities)
	si := indexOf(c.Statuses)
	c.Counts = make([][]int, len(c.Priorities))
	for i := range c.Counts {
		c.Counts[i] = make([]int, len(c.Statuses))
	}
	for _, a := range t {
		c.Counts[pi[string(a.Priority)]][si[string(a.Status)]]++
	}
	return c
}

// SalarySummary counts each literal salary label in first-appearance order,
// and how many rows carry one at all.
func SalarySummary(t domain.Table) ([]Count, int) {
	out := tally(t, func(a domain.Application) string { return a.SalaryRange }, true)
	n := 0
	for _, c := range out {
		n += c.Count
	}
	return out, n
}

// orderValues returns the distinct present values: known ones in canonical
// order, then unknown ones alphabetically.
func orderValues(present, canonical []string) []string {
	has := map[string]bool{}
	for _, v := range present {
		has[v] = true
	}
	out := []string{}
	for _, v := range canonical {
		if has[v] {
			out = append(out, v)
			delete(has, v)
		}
	}
	var rest []string
	for v := range has {
		rest = append(rest, v)
	}
	sort.Strings(rest)
	return append(out, rest...)
}

func stringsOf[T ~string](vs []T) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = string(v)
	}
	return out
}

func indexOf(vs []string) map[string]int {
	m := make(map[string]int, len(vs))
	for i, v := range vs {
		m[v] = i
	}
	return m
}
