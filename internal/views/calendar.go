package views

import (
	"fmt"
	"sort"

	"jobtracker-engine/internal/domain"
)

type EventType string

const (
	EventApplication EventType = "application"
	EventFollowUp    EventType = "follow_up"
	EventInterview   EventType = "interview"
	EventDeadline    EventType = "deadline"
)

type Event struct {
	Date     domain.Date `json:"date"`
	Label    string      `json:"label"`
	Type     EventType   `json:"type"`
	RecordID string      `json:"record_id"`
}

type UpcomingEvent struct {
	Event
	DaysUntil int    `json:"days_until"`
	When      string `json:"when"`
}

type Calendar struct {
	Events []UpcomingEvent `json:"events"`
	// NoEvents means the table yields no events at all; NoUpcoming means
	// every event is in the past.
	NoEvents   bool `json:"no_events"`
	NoUpcoming bool `json:"no_upcoming"`
}

// DefaultCalendarLimit caps the upcoming list.
const DefaultCalendarLimit = 10

// Events flattens applications, follow-ups, interviews and deadlines into one
// list sorted by date. Same-day events keep that source order.
func Events(t domain.Table) []Event {
	out := []Event{}
	for _, a := range t {
		out = append(out, Event{
			Date:     a.DateApplied,
			Label:    fmt.Sprintf("Applied: %s - %s", a.Company, a.JobTitle),
			Type:     EventApplication,
			RecordID: a.RecordID,
		})
	}
	for _, a := range t {
		if a.FollowUpDate != nil {
			out = append(out, Event{
				Date:     *a.FollowUpDate,
				Label:    fmt.Sprintf("Follow-up: %s", a.Company),
				Type:     EventFollowUp,
				RecordID: a.RecordID,
			})
		}
	}
	for _, a := range t {
		if a.InterviewDate != nil {
			out = append(out, Event{
				Date:     *a.InterviewDate,
				Label:    fmt.Sprintf("Interview: %s - %s", a.Company, a.JobTitle),
				Type:     EventInterview,
				RecordID: a.RecordID,
			})
		}
	}
	for _, a := range t {
		if a.Deadline != nil {
			out = append(out, Event{
				Date:     *a.Deadline,
				Label:    fmt.Sprintf("Deadline: %s - %s", a.Company, a.JobTitle),
				Type:     EventDeadline,
				RecordID: a.RecordID,
			})
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

// BuildCalendar keeps events on or after today, at most limit of them.
func BuildCalendar(t domain.Table, today domain.Date, limit int) Calendar {
	if limit <= 0 {
		limit = DefaultCalendarLimit
	}
	all := Events(t)
	c := Calendar{Events: []UpcomingEvent{}}
	if len(all) == 0 {
		c.NoEvents = true
		return c
	}
	for _, e := range all {
		if e.Date.Before(today) {
			continue
		}
		if len(c.Events) == limit {
			break
		}
		n := e.Date.DaysSince(today)
		c.Events = append(c.Events, UpcomingEvent{Event: e, DaysUntil: n, When: RelativeDay(n)})
	}
	c.NoUpcoming = len(c.Events) == 0
	return c
}

func RelativeDay(n int) string {
	switch n {
	case 0:
		return "TODAY"
	case 1:
		return "TOMORROW"
	default:
		return fmt.Sprintf("in %d days", n)
	}
}
