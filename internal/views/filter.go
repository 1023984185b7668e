// Package views computes the read-only projections of the application
// table: tracker filtering and export, dashboard alerts, insights and the
// calendar. Everything here is a pure function of a table and a date.
package views

import (
	"strings"

	"jobtracker-engine/internal/domain"
)

// Filter selects tracker rows. An empty selection leaves that field
// unconstrained.
type Filter struct {
	Statuses   []string `json:"statuses"`
	Priorities []string `json:"priorities"`
	Channels   []string `json:"channels"`
	Search     string   `json:"search"`
}

// DefaultFilter selects every value present in t, in first-appearance order.
func DefaultFilter(t domain.Table) Filter {
	var f Filter
	seen := map[string]bool{}
	add := func(dst *[]string, field, v string) {
		k := field + "\x00" + v
		if seen[k] {
			return
		}
		seen[k] = true
		*dst = append(*dst, v)
	}
	for _, a := range t {
		add(&f.Statuses, "status", string(a.Status))
		add(&f.Priorities, "priority", string(a.Priority))
		add(&f.Channels, "channel", string(a.Channel))
	}
	return f
}

func (f Filter) Match(a domain.Application) bool {
	if !in(f.Statuses, string(a.Status)) ||
		!in(f.Priorities, string(a.Priority)) ||
		!in(f.Channels, string(a.Channel)) {
		return false
	}
	q := strings.ToLower(strings.TrimSpace(f.Search))
	if q == "" {
		return true
	}
	return strings.Contains(strings.ToLower(a.Company), q) ||
		strings.Contains(strings.ToLower(a.JobTitle), q)
}

func in(set []string, v string) bool {
	if len(set) == 0 {
		return true
	}
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}

// Apply returns the matching rows in table order.
func Apply(t domain.Table, f Filter) domain.Table {
	out := domain.Table{}
	for _, a := range t {
		if f.Match(a) {
			out = append(out, a)
		}
	}
	return out
}

type TrackerView struct {
	Rows  domain.Table `json:"rows"`
	Total int          `json:"total"`
	// NoData means the table itself is empty; NoMatch means rows exist but
	// the filter excluded all of them.
	NoData  bool   `json:"no_data"`
	NoMatch bool   `json:"no_match"`
	Filter  Filter `json:"filter"`
}

func Track(t domain.Table, f Filter) TrackerView {
	v := TrackerView{Total: len(t), Filter: f, Rows: domain.Table{}}
	if len(t) == 0 {
		v.NoData = true
		return v
	}
	v.Rows = Apply(t, f)
	v.NoMatch = len(v.Rows) == 0
	return v
}
