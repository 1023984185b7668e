package domain

import "errors"

type Status string

const (
	StatusApplied      Status = "Applied"
	StatusInterviewing Status = "Interviewing"
	StatusPending      Status = "Pending"
	StatusOffered      Status = "Offered"
	StatusRejected     Status = "Rejected"
	StatusWithdrawn    Status = "Withdrawn"
)

// Statuses lists every status in form order.
var Statuses = []Status{
	StatusApplied, StatusInterviewing, StatusPending,
	StatusOffered, StatusRejected, StatusWithdrawn,
}

// IsActive reports whether the application is still in flight.
func (s Status) IsActive() bool {
	return s == StatusApplied || s == StatusInterviewing || s == StatusPending
}

type Priority string

const (
	PriorityHigh   Priority = "High"
	PriorityMedium Priority = "Medium"
	PriorityLow    Priority = "Low"
)

var Priorities = []Priority{PriorityHigh, PriorityMedium, PriorityLow}

// Weight is the size encoding used by the timeline chart.
func (p Priority) Weight() int {
	switch p {
	case PriorityHigh:
		return 3
	case PriorityMedium:
		return 2
	case PriorityLow:
		return 1
	default:
		return 0
	}
}

type Channel string

const (
	ChannelLinkedIn    Channel = "LinkedIn"
	ChannelCompanySite Channel = "Company Website"
	ChannelReferral    Channel = "Referral"
	ChannelIndeed      Channel = "Indeed"
	ChannelGlassdoor   Channel = "Glassdoor"
	ChannelOther       Channel = "Other"
)

var Channels = []Channel{
	ChannelLinkedIn, ChannelCompanySite, ChannelReferral,
	ChannelIndeed, ChannelGlassdoor, ChannelOther,
}

const (
	ReferralNo  = "No"
	ReferralYes = "Yes"
)

var Referrals = []string{ReferralNo, ReferralYes}

var (
	ErrMissingRequired = errors.New("please fill in all required fields (job title, company, date applied)")
	ErrInvalidDate     = errors.New("invalid date")
	ErrInvalidChoice   = errors.New("invalid choice")
	ErrNotFound        = errors.New("application not found")
)

// Application is one tracked job application. JSON tags double as the
// persisted column names.
type Application struct {
	RecordID      string   `json:"record_id"`
	JobTitle      string   `json:"job_title"`
	Company       string   `json:"company"`
	Status        Status   `json:"status"`
	Priority      Priority `json:"priority"`
	Channel       Channel  `json:"channel"`
	SalaryRange   string   `json:"salary_range"`
	Location      string   `json:"location"`
	DateApplied   Date     `json:"date_applied"`
	FollowUpDate  *Date    `json:"follow_up_date"`
	Deadline      *Date    `json:"deadline"`
	InterviewDate *Date    `json:"interview_date"`
	Notes         string   `json:"notes"`
	Referral      string   `json:"referral"`
	ApplicationID string   `json:"application_id"`
	ContactPerson string   `json:"contact_person"`
	ContactEmail  string   `json:"contact_email"`
}

// Table is the full ordered record collection. Row order is identity for
// rows persisted before record ids existed.
type Table []Application

// Clone returns a copy that can be mutated without touching t.
func (t Table) Clone() Table {
	if t == nil {
		return nil
	}
	out := make(Table, len(t))
	copy(out, t)
	return out
}

// IndexOf returns the position of the record with the given id, or -1.
func (t Table) IndexOf(recordID string) int {
	for i := range t {
		if t[i].RecordID == recordID {
			return i
		}
	}
	return -1
}
