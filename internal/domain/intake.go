package domain

import (
	"fmt"
	"strings"
)

// Form carries raw user input for the add and edit forms.
type Form struct {
	JobTitle      string `json:"job_title"`
	Company       string `json:"company"`
	Status        string `json:"status"`
	Priority      string `json:"priority"`
	Channel       string `json:"channel"`
	SalaryRange   string `json:"salary_range"`
	Location      string `json:"location"`
	DateApplied   string `json:"date_applied"`
	FollowUpDate  string `json:"follow_up_date"`
	Deadline      string `json:"deadline"`
	InterviewDate string `json:"interview_date"`
	Notes         string `json:"notes"`
	Referral      string `json:"referral"`
	ApplicationID string `json:"application_id"`
	ContactPerson string `json:"contact_person"`
	ContactEmail  string `json:"contact_email"`
}

// NewApplication validates f and builds a record with the id from newID.
// Missing required fields yield a single ErrMissingRequired.
func NewApplication(f Form, newID func() string) (Application, error) {
	title := strings.TrimSpace(f.JobTitle)
	company := strings.TrimSpace(f.Company)
	applied, ok, err := ParseDate(f.DateApplied)
	if title == "" || company == "" || !ok || err != nil {
		return Application{}, ErrMissingRequired
	}

	status, err := choose("status", f.Status, StatusApplied, Statuses)
	if err != nil {
		return Application{}, err
	}
	priority, err := choose("priority", f.Priority, PriorityHigh, Priorities)
	if err != nil {
		return Application{}, err
	}
	channel, err := choose("channel", f.Channel, ChannelLinkedIn, Channels)
	if err != nil {
		return Application{}, err
	}
	referral, err := choose("referral", f.Referral, ReferralNo, Referrals)
	if err != nil {
		return Application{}, err
	}

	var dates [3]*Date
	for i, raw := range []string{f.FollowUpDate, f.Deadline, f.InterviewDate} {
		d, err := ParseDatePtr(raw)
		if err != nil {
			return Application{}, err
		}
		dates[i] = d
	}

	return Application{
		RecordID:      newID(),
		JobTitle:      title,
		Company:       company,
		Status:        status,
		Priority:      priority,
		Channel:       channel,
		SalaryRange:   f.SalaryRange,
		Location:      f.Location,
		DateApplied:   applied,
		FollowUpDate:  dates[0],
		Deadline:      dates[1],
		InterviewDate: dates[2],
		Notes:         f.Notes,
		Referral:      referral,
		ApplicationID: f.ApplicationID,
		ContactPerson: f.ContactPerson,
		ContactEmail:  f.ContactEmail,
	}, nil
}

// FormOf is the inverse of NewApplication, used to prefill the edit form.
func FormOf(a Application) Form {
	return Form{
		JobTitle:      a.JobTitle,
		Company:       a.Company,
		Status:        string(a.Status),
		Priority:      string(a.Priority),
		Channel:       string(a.Channel),
		SalaryRange:   a.SalaryRange,
		Location:      a.Location,
		DateApplied:   a.DateApplied.String(),
		FollowUpDate:  FormatDate(a.FollowUpDate),
		Deadline:      FormatDate(a.Deadline),
		InterviewDate: FormatDate(a.InterviewDate),
		Notes:         a.Notes,
		Referral:      a.Referral,
		ApplicationID: a.ApplicationID,
		ContactPerson: a.ContactPerson,
		ContactEmail:  a.ContactEmail,
	}
}

// Duplicate derives a fresh application from a, reset to Applied today.
func Duplicate(a Application, today Date, newID func() string) Application {
	dup := a
	dup.RecordID = newID()
	dup.Company = fmt.Sprintf("%s (Copy)", a.Company)
	dup.Status = StatusApplied
	dup.DateApplied = today
	dup.FollowUpDate = nil
	dup.InterviewDate = nil
	dup.Notes = fmt.Sprintf("Duplicated from %s - %s", a.Company, a.Notes)
	if a.ApplicationID != "" {
		dup.ApplicationID = a.ApplicationID + "_COPY"
	} else {
		dup.ApplicationID = "COPY"
	}
	return dup
}

// choose maps raw onto one of options ignoring case. Blank input takes def.
func choose[T ~string](field, raw string, def T, options []T) (T, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return def, nil
	}
	for _, o := range options {
		if strings.EqualFold(raw, string(o)) {
			return o, nil
		}
	}
	names := make([]string, len(options))
	for i, o := range options {
		names[i] = string(o)
	}
	return "", fmt.Errorf("%w: %s %q is not one of %s", ErrInvalidChoice, field, raw, strings.Join(names, ", "))
}
