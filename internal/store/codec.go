package store

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"jobtracker-engine/internal/domain"
)

// Columns is the persisted column order for CSV files and exports.
var Columns = []string{
	"job_title", "company", "status", "priority", "channel",
	"salary_range", "location", "date_applied", "follow_up_date",
	"deadline", "interview_date", "notes", "referral",
	"application_id", "contact_person", "contact_email", "record_id",
}

// Row is the wire and backup shape of one record. Dates are strings, nil
// dates are null.
type Row struct {
	JobTitle      string  `json:"job_title"`
	Company       string  `json:"company"`
	Status        string  `json:"status"`
	Priority      string  `json:"priority"`
	Channel       string  `json:"channel"`
	SalaryRange   string  `json:"salary_range"`
	Location      string  `json:"location"`
	DateApplied   string  `json:"date_applied"`
	FollowUpDate  *string `json:"follow_up_date"`
	Deadline      *string `json:"deadline"`
	InterviewDate *string `json:"interview_date"`
	Notes         string  `json:"notes"`
	Referral      string  `json:"referral"`
	ApplicationID string  `json:"application_id"`
	ContactPerson string  `json:"contact_person"`
	ContactEmail  string  `json:"contact_email"`
	RecordID      string  `json:"record_id"`
}

// RawRow is a loosely-typed row as decoded from JSON or CSV.
type RawRow = map[string]any

var recordNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("jobtracker-engine/record"))

func RowOf(a domain.Application) Row {
	opt := func(d *domain.Date) *string {
		if d == nil {
			return nil
		}
		s := d.String()
		return &s
	}
	return Row{
		JobTitle:      a.JobTitle,
		Company:       a.Company,
		Status:        string(a.Status),
		Priority:      string(a.Priority),
		Channel:       string(a.Channel),
		SalaryRange:   a.SalaryRange,
		Location:      a.Location,
		DateApplied:   a.DateApplied.String(),
		FollowUpDate:  opt(a.FollowUpDate),
		Deadline:      opt(a.Deadline),
		InterviewDate: opt(a.InterviewDate),
		Notes:         a.Notes,
		Referral:      a.Referral,
		ApplicationID: a.ApplicationID,
		ContactPerson: a.ContactPerson,
		ContactEmail:  a.ContactEmail,
		RecordID:      a.RecordID,
	}
}

func RowsOf(t domain.Table) []Row {
	out := make([]Row, 0, len(t))
	for _, a := range t {
		out = append(out, RowOf(a))
	}
	return out
}

// Record renders r as CSV cells in Columns order.
func (r Row) Record() []string {
	deref := func(s *string) string {
		if s == nil {
			return ""
		}
		return *s
	}
	return []string{
		r.JobTitle, r.Company, r.Status, r.Priority, r.Channel,
		r.SalaryRange, r.Location, r.DateApplied, deref(r.FollowUpDate),
		deref(r.Deadline), deref(r.InterviewDate), r.Notes, r.Referral,
		r.ApplicationID, r.ContactPerson, r.ContactEmail, r.RecordID,
	}
}

// DecodeRows converts raw rows to a typed table. Any invalid row fails the
// whole decode; pos is used to derive stable ids for rows saved without one.
func DecodeRows(raws []RawRow) (domain.Table, error) {
	out := make(domain.Table, 0, len(raws))
	for i, raw := range raws {
		a, err := decodeRow(i, raw)
		if err != nil {
			return nil, fmt.Errorf("row %d: %w", i+1, err)
		}
		out = append(out, a)
	}
	return out, nil
}

func decodeRow(pos int, raw RawRow) (domain.Application, error) {
	text := func(key string) string { return cellString(raw[key]) }

	a := domain.Application{
		RecordID:      strings.TrimSpace(text("record_id")),
		JobTitle:      text("job_title"),
		Company:       text("company"),
		Status:        domain.Status(text("status")),
		Priority:      domain.Priority(text("priority")),
		Channel:       domain.Channel(text("channel")),
		SalaryRange:   text("salary_range"),
		Location:      text("location"),
		Notes:         text("notes"),
		Referral:      text("referral"),
		ApplicationID: text("application_id"),
		ContactPerson: text("contact_person"),
		ContactEmail:  text("contact_email"),
	}

	applied, ok, err := domain.ParseDate(text("date_applied"))
	if err != nil {
		return a, fmt.Errorf("date_applied: %w", err)
	}
	if strings.TrimSpace(a.JobTitle) == "" || strings.TrimSpace(a.Company) == "" || !ok {
		return a, domain.ErrMissingRequired
	}
	a.DateApplied = applied

	for _, f := range []struct {
		key string
		dst **domain.Date
	}{
		{"follow_up_date", &a.FollowUpDate},
		{"deadline", &a.Deadline},
		{"interview_date", &a.InterviewDate},
	} {
		d, err := domain.ParseDatePtr(text(f.key))
		if err != nil {
			return a, fmt.Errorf("%s: %w", f.key, err)
		}
		*f.dst = d
	}

	if a.RecordID == "" {
		a.RecordID = legacyRecordID(pos, a)
	}
	return a, nil
}

// legacyRecordID derives a deterministic id for rows written before record
// ids existed, so the id is stable across loads until the next save.
func legacyRecordID(pos int, a domain.Application) string {
	key := fmt.Sprintf("%d|%s|%s|%s", pos, a.Company, a.JobTitle, a.DateApplied)
	return uuid.NewSHA1(recordNamespace, []byte(key)).String()
}

func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	case bool:
		if x {
			return domain.ReferralYes
		}
		return domain.ReferralNo
	default:
		return fmt.Sprint(x)
	}
}
