package api

import (
	"encoding/hex"
	"strings"
	"time"

	"task-list/internal/domain"
	"task-list/internal/validation"
)

// TaskForm is the raw user input for a new task
type TaskForm struct {
	Title       string
	Description string
	DueDate     string // empty for none
	Tags        string // comma-separated
	Status      string // empty for OPEN
}

// EditForm carries the fields to change. Nil fields keep their current value;
// an empty DueDate clears it.
type EditForm struct {
	Title       *string
	Description *string
	DueDate     *string
	Tags        *string
	Status      *string
}

// IsEmpty reports whether the form changes nothing
func (f EditForm) IsEmpty() bool {
	return f.Title == nil && f.Description == nil && f.DueDate == nil && f.Tags == nil && f.Status == nil
}

// TaskRef identifies a task by ID, ID prefix or, when ByTitle is set, title
type TaskRef struct {
	Value   string
	ByTitle bool
}

// clean trims the value. Titles are stored trimmed and IDs never hold spaces.
func (r TaskRef) clean() TaskRef {
	r.Value = strings.TrimSpace(r.Value)
	return r
}

// ListRequest holds the raw view options of list and search
type ListRequest struct {
	Status     string
	Sort       string
	Descending bool
}

// MinIDPrefix is the shortest ID prefix accepted as a task reference
const MinIDPrefix = 4

// dueDateLayouts returns the accepted due date layouts, display layout first
func dueDateLayouts(display string) []string {
	layouts := []string{display, "2006-01-02 15:04", "2006-01-02", time.RFC3339}
	if display == "" {
		layouts = layouts[1:]
	}
	return layouts
}

// parseDueDate parses s in loc. An empty string means no due date.
func parseDueDate(s string, display string, loc *time.Location) (*time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil, true
	}
	for _, layout := range dueDateLayouts(display) {
		if t, err := time.ParseInLocation(layout, s, loc); err == nil {
			return &t, true
		}
	}
	return nil, false
}

// formParser turns raw strings into domain input, collecting every problem
type formParser struct {
	displayLayout string
	loc           *time.Location
	errs          *validation.ValidationError
}

func newFormParser(displayLayout string, loc *time.Location) *formParser {
	return &formParser{
		displayLayout: displayLayout,
		loc:           loc,
		errs:          validation.NewValidationError(),
	}
}

func (p *formParser) dueDate(s string) *time.Time {
	due, ok := parseDueDate(s, p.displayLayout, p.loc)
	if !ok {
		p.errs.AddInvalidFormatError("due_date", s, strings.Join(dueDateLayouts(p.displayLayout), " | "))
	}
	return due
}

func (p *formParser) status(s string) domain.Status {
	status, ok := domain.ParseStatus(s)
	if !ok {
		p.errs.AddInvalidValueError("status", s, "must be one of OPEN, WORKING, DONE, OVERDUE")
	}
	return status
}

func (p *formParser) err() error {
	if p.errs.HasErrors() {
		return p.errs.ToAppError()
	}
	return nil
}

// Input converts a TaskForm into domain input
func (p *formParser) Input(form TaskForm) (domain.TaskInput, error) {
	input := domain.TaskInput{
		Title:       form.Title,
		Description: form.Description,
		DueDate:     p.dueDate(form.DueDate),
		Tags:        domain.SplitTags(form.Tags),
		Status:      p.status(form.Status),
	}
	return input, p.err()
}

// Merge applies an EditForm over current values
func (p *formParser) Merge(current domain.TaskInput, form EditForm) (domain.TaskInput, error) {
	merged := current
	if form.Title != nil {
		merged.Title = *form.Title
	}
	if form.Description != nil {
		merged.Description = *form.Description
	}
	if form.DueDate != nil {
		merged.DueDate = p.dueDate(*form.DueDate)
	}
	if form.Tags != nil {
		merged.Tags = domain.SplitTags(*form.Tags)
	}
	if form.Status != nil {
		merged.Status = p.status(*form.Status)
	}
	return merged, p.err()
}

// isIDPrefix reports whether s could be the start of a task ID
func isIDPrefix(s string) bool {
	compact := strings.ReplaceAll(s, "-", "")
	if len(compact) < MinIDPrefix {
		return false
	}
	if len(compact)%2 == 1 {
		compact += "0"
	}
	_, err := hex.DecodeString(compact)
	return err == nil
}
