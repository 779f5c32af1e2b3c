package domain

import "strings"

// SortField names a sortable task column.
type SortField string

const (
	SortByTimestamp SortField = "timestamp"
	SortByTitle     SortField = "title"
	SortByDueDate   SortField = "due_date"
)

// ParseSortField accepts the column names plus a few spellings users type.
func ParseSortField(s string) (SortField, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "timestamp", "created":
		return SortByTimestamp, true
	case "title", "name":
		return SortByTitle, true
	case "due_date", "due-date", "duedate", "due":
		return SortByDueDate, true
	}
	return "", false
}

// ListOptions describes a derived, non-mutating view of the task collection.
type ListOptions struct {
	Status     string
	Query      string
	SortBy     SortField
	Descending bool
}
