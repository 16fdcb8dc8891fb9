// Package query implements the board's filter language: a whitespace-split
// list of terms ANDed together, each either a bare token or a key:value
// pair. Filtering never reorders tasks.
package query

import (
	"strings"
	"time"

	"slate/internal/domain"
)

// Matches reports whether the task matches every term of the filter string.
// An empty filter matches everything. The current instant is passed in so
// results are reproducible.
func Matches(t domain.Task, filter string, schema domain.CustomFieldSchema, now time.Time) bool {
	for _, term := range strings.Fields(filter) {
		if !matchTerm(t, strings.ToLower(term), schema, now) {
			return false
		}
	}
	return true
}

// Apply filters tasks in place order, keeping only matches.
func Apply(tasks []domain.Task, filter string, schema domain.CustomFieldSchema, now time.Time) []domain.Task {
	if strings.TrimSpace(filter) == "" {
		return tasks
	}
	result := make([]domain.Task, 0, len(tasks))
	for _, t := range tasks {
		if Matches(t, filter, schema, now) {
			result = append(result, t)
		}
	}
	return result
}

func matchTerm(t domain.Task, term string, schema domain.CustomFieldSchema, now time.Time) bool {
	if key, value, ok := strings.Cut(term, ":"); ok {
		return matchPair(t, key, value, schema)
	}
	return matchToken(t, term, schema, now)
}

func matchToken(t domain.Task, token string, schema domain.CustomFieldSchema, now time.Time) bool {
	if token == "overdue" {
		return t.Metadata.Due != nil && t.Metadata.Due.Before(now)
	}

	// A bare token naming a boolean custom field queries by presence: the
	// field must exist on the task with no stored value. Historical
	// convention, preserved exactly.
	if def, ok := schema.Field(token); ok && def.Type == domain.FieldBoolean {
		v, present := t.Metadata.CustomField(token)
		return present && v.Bool == nil
	}

	return strings.Contains(strings.ToLower(t.ID), token) ||
		strings.Contains(strings.ToLower(t.Name), token)
}

func matchPair(t domain.Task, key, value string, schema domain.CustomFieldSchema) bool {
	var haystack string

	switch key {
	case "description":
		parts := []string{t.Description}
		for _, s := range t.Subtasks {
			parts = append(parts, s.Text)
		}
		haystack = strings.Join(parts, " ")
	case "assigned":
		haystack = t.Metadata.Assignee
	case "tag":
		haystack = strings.Join(t.Metadata.Tags, " ")
	case "relation":
		parts := make([]string, len(t.Relations))
		for i, r := range t.Relations {
			parts[i] = r.Type + " " + r.Task
		}
		haystack = strings.Join(parts, " ")
	case "subtask":
		parts := make([]string, len(t.Subtasks))
		for i, s := range t.Subtasks {
			parts[i] = s.Text
		}
		haystack = strings.Join(parts, " ")
	case "comment":
		parts := make([]string, len(t.Comments))
		for i, c := range t.Comments {
			parts[i] = c.Author + " " + c.Text
		}
		haystack = strings.Join(parts, " ")
	default:
		if def, ok := schema.Field(key); ok && def.Type != domain.FieldBoolean {
			v, present := t.Metadata.CustomField(key)
			if !present {
				return false
			}
			haystack = v.StringValue()
			break
		}
		// Unknown key or malformed term: vacuously true, never an error.
		return true
	}

	return strings.Contains(strings.ToLower(haystack), value)
}
