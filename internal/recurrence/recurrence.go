// Package recurrence derives follow-up tasks from completed recurring ones.
package recurrence

import (
	"time"

	"slate/internal/domain"
)

// NextDue computes the successor's due date from a base date. Monthly rules
// with a configured day-of-month clamp to the last valid day of the target
// month, so day 31 against February yields the 28th (or 29th).
func NextDue(rule domain.RecurrenceRule, base time.Time) time.Time {
	n := rule.Every()
	switch rule.Type {
	case domain.RecurDaily:
		return base.AddDate(0, 0, n)
	case domain.RecurWeekly:
		return base.AddDate(0, 0, n*7)
	case domain.RecurMonthly:
		return addMonths(base, n, rule.DayOfMonth)
	case domain.RecurAnnually:
		return base.AddDate(n, 0, 0)
	}
	return base
}

// addMonths advances by whole months without AddDate's overflow
// normalization (31 Jan + 1 month must be 28 Feb, not 3 Mar).
func addMonths(base time.Time, months, dayOfMonth int) time.Time {
	year, month, day := base.Date()
	month += time.Month(months)

	target := day
	if dayOfMonth >= 1 {
		target = dayOfMonth
	}
	// Normalize the month first with day 1, then clamp the day.
	first := time.Date(year, month, 1, 0, 0, 0, 0, base.Location())
	last := first.AddDate(0, 1, -1).Day()
	if target > last {
		target = last
	}
	h, m, s := base.Clock()
	return time.Date(first.Year(), first.Month(), target, h, m, s, base.Nanosecond(), base.Location())
}

// Derive builds the successor task for a recurring task that just landed in
// targetColumn. It returns nil unless targetColumn is a completed column
// and the task carries a recurrence rule. The successor keeps the rule and
// the descriptive fields, gets a fresh creation timestamp and the computed
// due date, and starts with empty subtasks, relations, and comments.
//
// Creating the successor is an independent store call: a failure of the
// triggering move is never rolled into this.
func Derive(t domain.Task, ix domain.Index, targetColumn string, now time.Time) *domain.Task {
	if !ix.IsCompleted(targetColumn) {
		return nil
	}
	rule := t.Metadata.Recurrence
	if rule == nil {
		return nil
	}

	base := now
	if t.Metadata.Due != nil {
		base = *t.Metadata.Due
	}
	due := NextDue(*rule, base)

	created := now
	ruleCopy := *rule
	next := domain.Task{
		Name:        t.Name,
		Description: t.Description,
		Column:      Placement(ix),
		Metadata: domain.Metadata{
			Created:     &created,
			Due:         &due,
			Priority:    t.Metadata.Priority,
			Assignee:    t.Metadata.Assignee,
			Tags:        append([]string(nil), t.Metadata.Tags...),
			Attachments: append([]string(nil), t.Metadata.Attachments...),
			Recurrence:  &ruleCopy,
		},
	}
	return &next
}

// Placement picks the column for a derived task: the first column, in board
// order, that is neither hidden nor completed; failing that, the board's
// first column.
func Placement(ix domain.Index) string {
	for _, c := range ix.Columns {
		if !ix.IsHidden(c.Name) && !ix.IsCompleted(c.Name) {
			return c.Name
		}
	}
	if len(ix.Columns) > 0 {
		return ix.Columns[0].Name
	}
	return ""
}
