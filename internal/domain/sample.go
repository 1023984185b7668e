package domain

// SampleTable is the starter data offered when the store is empty.
func SampleTable(today Date, newID func() string) Table {
	in := func(days int) *Date {
		d := today.AddDays(days)
		return &d
	}
	return Table{
		{
			RecordID: newID(), JobTitle: "Software Engineer", Company: "Tech Corp",
			Status: StatusApplied, Priority: PriorityHigh, Channel: ChannelLinkedIn,
			SalaryRange: "$80k-$100k", Location: "Remote",
			DateApplied: today.AddDays(-5), FollowUpDate: in(7), Deadline: in(14),
			Notes: "Great opportunity", Referral: ReferralNo, ApplicationID: "APP001",
			ContactPerson: "John Doe", ContactEmail: "john@techcorp.com",
		},
		{
			RecordID: newID(), JobTitle: "Data Analyst", Company: "Data Inc",
			Status: StatusInterviewing, Priority: PriorityMedium, Channel: ChannelCompanySite,
			SalaryRange: "$60k-$80k", Location: "New York",
			DateApplied: today.AddDays(-3), InterviewDate: in(2),
			Notes: "Good company culture", Referral: ReferralYes, ApplicationID: "APP002",
			ContactPerson: "Jane Smith", ContactEmail: "jane@datainc.com",
		},
		{
			RecordID: newID(), JobTitle: "Product Manager", Company: "Product Co",
			Status: StatusPending, Priority: PriorityLow, Channel: ChannelReferral,
			SalaryRange: "$100k-$120k", Location: "San Francisco",
			DateApplied: today.AddDays(-1),
			Notes: "Interesting role", Referral: ReferralNo, ApplicationID: "APP003",
			ContactPerson: "Bob Johnson", ContactEmail: "bob@productco.com",
		},
		{
			RecordID: newID(), JobTitle: "Strategy Consulting Intern", Company: "JLL",
			Status: StatusPending, Priority: PriorityHigh, Channel: ChannelLinkedIn,
			SalaryRange: "4,000", Location: "Dubai",
			DateApplied: today,
			Notes: "Strategy consulting role", Referral: ReferralNo, ApplicationID: "APP004",
			ContactPerson: "Sarah Wilson", ContactEmail: "sarah@jll.com",
		},
	}
}
