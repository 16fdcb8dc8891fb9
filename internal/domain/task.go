// Package domain contains the core data contracts for the slate board.
package domain

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Task is a single card on the board. The ID is derived from the name at
// creation time and is never recomputed; renaming a task keeps its ID.
type Task struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description,omitempty"`
	Column      string     `json:"column"`
	Subtasks    []Subtask  `json:"subtasks,omitempty"`
	Relations   []Relation `json:"relations,omitempty"`
	Comments    []Comment  `json:"comments,omitempty"`
	Metadata    Metadata   `json:"metadata"`
}

// Subtask is one checklist entry on a task.
type Subtask struct {
	Text      string `json:"text"`
	Completed bool   `json:"completed"`
}

// Relation links a task to another task by ID. The target is not validated
// here and may reference a task that no longer exists.
type Relation struct {
	Type string `json:"type"`
	Task string `json:"task"`
}

// Comment is a timestamped note on a task.
type Comment struct {
	Author string    `json:"author"`
	Date   time.Time `json:"date"`
	Text   string    `json:"text"`
}

// Metadata holds the optional fields of a task plus its custom-field values.
type Metadata struct {
	Created     *time.Time      `json:"created,omitempty"`
	Updated     *time.Time      `json:"updated,omitempty"`
	Started     *time.Time      `json:"started,omitempty"`
	Due         *time.Time      `json:"due,omitempty"`
	Completed   *time.Time      `json:"completed,omitempty"`
	Priority    int             `json:"priority,omitempty"`
	Progress    float64         `json:"progress,omitempty"`
	Assignee    string          `json:"assignee,omitempty"`
	Tags        []string        `json:"tags,omitempty"`
	Attachments []string        `json:"attachments,omitempty"`
	Recurrence  *RecurrenceRule `json:"recurrence,omitempty"`
	Custom      []CustomValue   `json:"custom,omitempty"`
}

// CustomValue is one typed custom-field value, keyed by field name. At most
// one of the value pointers is set; all nil means the field is present with
// no value, which is meaningful for boolean fields.
type CustomValue struct {
	Name   string     `json:"name"`
	Bool   *bool      `json:"bool,omitempty"`
	Date   *time.Time `json:"date,omitempty"`
	Number *float64   `json:"number,omitempty"`
	String *string    `json:"string,omitempty"`
}

// StringValue renders the value for substring matching and display.
func (v CustomValue) StringValue() string {
	switch {
	case v.Bool != nil:
		return strconv.FormatBool(*v.Bool)
	case v.Date != nil:
		return v.Date.Format("2006-01-02")
	case v.Number != nil:
		return strconv.FormatFloat(*v.Number, 'f', -1, 64)
	case v.String != nil:
		return *v.String
	default:
		return ""
	}
}

// CustomField finds a custom value by field name, case-insensitively.
func (m Metadata) CustomField(name string) (CustomValue, bool) {
	for _, v := range m.Custom {
		if strings.EqualFold(v.Name, name) {
			return v, true
		}
	}
	return CustomValue{}, false
}

// HasTag reports whether the task carries the given tag.
func (m Metadata) HasTag(tag string) bool {
	for _, t := range m.Tags {
		if t == tag {
			return true
		}
	}
	return false
}

var slugStrip = regexp.MustCompile(`[^a-z0-9-]`)
var slugDashes = regexp.MustCompile(`-+`)

// SlugID derives a task ID from its name: lower-cased, spaces collapsed to
// dashes, everything else dropped. Deterministic so the same name always
// yields the same ID.
func SlugID(name string) string {
	s := strings.ToLower(strings.TrimSpace(name))
	s = strings.ReplaceAll(s, " ", "-")
	s = slugStrip.ReplaceAllString(s, "")
	s = slugDashes.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}

// Clone returns a deep copy of the task. Slices and nested values are
// copied so mutating the clone never aliases the original.
func (t Task) Clone() Task {
	c := t
	c.Subtasks = append([]Subtask(nil), t.Subtasks...)
	c.Relations = append([]Relation(nil), t.Relations...)
	c.Comments = append([]Comment(nil), t.Comments...)
	c.Metadata = t.Metadata.Clone()
	return c
}

// Clone returns a deep copy of the metadata.
func (m Metadata) Clone() Metadata {
	c := m
	c.Created = cloneTime(m.Created)
	c.Updated = cloneTime(m.Updated)
	c.Started = cloneTime(m.Started)
	c.Due = cloneTime(m.Due)
	c.Completed = cloneTime(m.Completed)
	c.Tags = append([]string(nil), m.Tags...)
	c.Attachments = append([]string(nil), m.Attachments...)
	if m.Recurrence != nil {
		r := *m.Recurrence
		c.Recurrence = &r
	}
	c.Custom = append([]CustomValue(nil), m.Custom...)
	return c
}

func cloneTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	v := *t
	return &v
}
