package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// DisplayTimeLayout is the default layout for timestamps and due dates.
const DisplayTimeLayout = "2006-01-02 15:04:05"

// Task represents a single todo item.
// This is a pure domain model without storage-specific concerns.
type Task struct {
	ID          uuid.UUID
	Title       string
	Description string
	DueDate     *time.Time
	Tags        []string
	Status      Status
	Timestamp   time.Time
}

// TaskInput carries the user-editable fields of a task. ID and Timestamp are
// owned by the store and never come from input.
type TaskInput struct {
	Title       string
	Description string
	DueDate     *time.Time
	Tags        []string
	Status      Status
}

// NewTask builds an unsaved Task from input, applying the default status and
// removing duplicate tags.
func NewTask(input TaskInput) Task {
	task := Task{}
	task.Apply(input)
	return task
}

// Apply replaces every user-editable field with the values from input.
func (t *Task) Apply(input TaskInput) {
	t.Title = strings.TrimSpace(input.Title)
	t.Description = strings.TrimSpace(input.Description)
	t.DueDate = copyTime(input.DueDate)
	t.Tags = DedupeTags(input.Tags)
	t.Status = input.Status
	if t.Status == "" {
		t.Status = DefaultStatus
	}
}

// Input returns the user-editable fields of the task.
func (t Task) Input() TaskInput {
	return TaskInput{
		Title:       t.Title,
		Description: t.Description,
		DueDate:     copyTime(t.DueDate),
		Tags:        append([]string{}, t.Tags...),
		Status:      t.Status,
	}
}

// Clone returns a deep copy so callers cannot mutate stored state.
func (t Task) Clone() Task {
	clone := t
	clone.DueDate = copyTime(t.DueDate)
	clone.Tags = append([]string{}, t.Tags...)
	return clone
}

// IsValid checks if the task has valid data.
func (t Task) IsValid() bool {
	return t.Title != "" && t.Description != "" && t.Status.IsValid()
}

// String returns the task title for display purposes.
func (t Task) String() string {
	return t.Title
}

// ShortID returns the first eight characters of the ID.
func (t Task) ShortID() string {
	return t.ID.String()[:8]
}

// IsPastDue reports whether the due date is before now and the task is not done.
func (t Task) IsPastDue(now time.Time) bool {
	return t.DueDate != nil && t.DueDate.Before(now) && t.Status != StatusDone
}

// SearchText returns the text representation of every searchable field:
// title, description, due date, tags, status and timestamp. Dates are
// rendered with layout.
func (t Task) SearchText(layout string) []string {
	due := ""
	if t.DueDate != nil {
		due = t.DueDate.Format(layout)
	}
	return []string{
		t.Title,
		t.Description,
		due,
		strings.Join(t.Tags, ","),
		string(t.Status),
		t.Timestamp.Format(layout),
	}
}

// Matches reports whether any searchable field contains query, ignoring case.
func (t Task) Matches(query, layout string) bool {
	needle := strings.ToLower(query)
	for _, field := range t.SearchText(layout) {
		if strings.Contains(strings.ToLower(field), needle) {
			return true
		}
	}
	return false
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	c := *t
	return &c
}
