package domain

import (
	"sort"
	"strings"
	"time"
)

// SortField names a task attribute a column can be sorted by.
type SortField string

const (
	SortByName      SortField = "name"
	SortByCreated   SortField = "created"
	SortByUpdated   SortField = "updated"
	SortByStarted   SortField = "started"
	SortByDue       SortField = "due"
	SortByCompleted SortField = "completed"
	SortByPriority  SortField = "priority"
	SortByProgress  SortField = "progress"
	SortByAssignee  SortField = "assignee"
)

// SortOrder is a sort direction.
type SortOrder string

const (
	SortAscending  SortOrder = "ascending"
	SortDescending SortOrder = "descending"
)

// SortRule is one field/direction pair. Columns sort by a list of rules;
// later rules break ties left by earlier ones.
type SortRule struct {
	Field SortField `json:"field"`
	Order SortOrder `json:"order"`
}

// ApplySort returns a stably sorted copy of tasks. The input slice is never
// modified. An empty rule list returns the tasks in their given order.
func ApplySort(tasks []Task, rules []SortRule) []Task {
	result := make([]Task, len(tasks))
	copy(result, tasks)
	if len(rules) == 0 {
		return result
	}

	sort.SliceStable(result, func(i, j int) bool {
		for _, r := range rules {
			c := compareField(result[i], result[j], r.Field)
			if c == 0 {
				continue
			}
			if r.Order == SortDescending {
				return c > 0
			}
			return c < 0
		}
		return false
	})
	return result
}

func compareField(a, b Task, field SortField) int {
	switch field {
	case SortByName:
		return strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	case SortByAssignee:
		return strings.Compare(strings.ToLower(a.Metadata.Assignee), strings.ToLower(b.Metadata.Assignee))
	case SortByPriority:
		return a.Metadata.Priority - b.Metadata.Priority
	case SortByProgress:
		switch {
		case a.Metadata.Progress < b.Metadata.Progress:
			return -1
		case a.Metadata.Progress > b.Metadata.Progress:
			return 1
		}
		return 0
	case SortByCreated:
		return compareTime(a.Metadata.Created, b.Metadata.Created)
	case SortByUpdated:
		return compareTime(a.Metadata.Updated, b.Metadata.Updated)
	case SortByStarted:
		return compareTime(a.Metadata.Started, b.Metadata.Started)
	case SortByDue:
		return compareTime(a.Metadata.Due, b.Metadata.Due)
	case SortByCompleted:
		return compareTime(a.Metadata.Completed, b.Metadata.Completed)
	}
	return 0
}

// compareTime orders present timestamps before absent ones so undated tasks
// sink to the bottom in ascending order.
func compareTime(a, b *time.Time) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return 1
	case b == nil:
		return -1
	case a.Before(*b):
		return -1
	case a.After(*b):
		return 1
	}
	return 0
}
