package domain

// RecurrenceType is the cadence of a recurrence rule.
type RecurrenceType string

const (
	RecurDaily    RecurrenceType = "daily"
	RecurWeekly   RecurrenceType = "weekly"
	RecurMonthly  RecurrenceType = "monthly"
	RecurAnnually RecurrenceType = "annually"
)

// RecurrenceRule describes how a completed task spawns its successor.
// Interval defaults to 1. DayOfMonth only applies to monthly rules and is
// clamped to the last valid day of the target month when it overflows.
type RecurrenceRule struct {
	Type       RecurrenceType `json:"type"`
	Interval   int            `json:"interval,omitempty"`
	DayOfMonth int            `json:"dayOfMonth,omitempty"`
}

// Every returns the interval, treating zero or negative as 1.
func (r RecurrenceRule) Every() int {
	if r.Interval < 1 {
		return 1
	}
	return r.Interval
}
