package domain

import "strings"

// Status is the workflow state of a task. Any status may change to any other.
type Status string

const (
	StatusOpen    Status = "OPEN"
	StatusWorking Status = "WORKING"
	StatusDone    Status = "DONE"
	StatusOverdue Status = "OVERDUE"
)

// DefaultStatus is applied when a task is created without a status.
const DefaultStatus = StatusOpen

// AllStatuses returns the statuses in display order.
func AllStatuses() []Status {
	return []Status{StatusOpen, StatusWorking, StatusDone, StatusOverdue}
}

// ParseStatus converts user input to a Status, ignoring case and surrounding
// whitespace. An empty string yields DefaultStatus.
func ParseStatus(s string) (Status, bool) {
	trimmed := strings.ToUpper(strings.TrimSpace(s))
	if trimmed == "" {
		return DefaultStatus, true
	}
	status := Status(trimmed)
	if !status.IsValid() {
		return "", false
	}
	return status, true
}

// IsValid reports whether s is one of the known statuses.
func (s Status) IsValid() bool {
	switch s {
	case StatusOpen, StatusWorking, StatusDone, StatusOverdue:
		return true
	}
	return false
}

// MatchesFilter reports whether the status begins with value. An empty
// value matches every status.
func (s Status) MatchesFilter(value string) bool {
	return strings.HasPrefix(string(s), value)
}

func (s Status) String() string {
	return string(s)
}
