package domain

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewTask(t *testing.T) {
	tests := []struct {
		name     string
		input    TaskInput
		expected Task
	}{
		{
			name:     "defaults status to OPEN",
			input:    TaskInput{Title: "A", Description: "d"},
			expected: Task{Title: "A", Description: "d", Tags: []string{}, Status: StatusOpen},
		},
		{
			name:     "removes duplicate tags keeping order",
			input:    TaskInput{Title: "A", Description: "d", Tags: []string{"x", "x", "y"}},
			expected: Task{Title: "A", Description: "d", Tags: []string{"x", "y"}, Status: StatusOpen},
		},
		{
			name:     "trims title and description",
			input:    TaskInput{Title: "  A ", Description: " d ", Status: StatusDone},
			expected: Task{Title: "A", Description: "d", Tags: []string{}, Status: StatusDone},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, NewTask(tt.input))
		})
	}
}

func TestTask_Clone(t *testing.T) {
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	original := Task{ID: uuid.New(), Title: "A", Tags: []string{"x"}, DueDate: &due}

	clone := original.Clone()
	clone.Tags[0] = "changed"
	*clone.DueDate = due.Add(time.Hour)

	assert.Equal(t, "x", original.Tags[0])
	assert.Equal(t, due, *original.DueDate)
}

func TestTask_Matches(t *testing.T) {
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	task := Task{
		Title:       "Buy milk",
		Description: "Semi-skimmed, two litres",
		DueDate:     &due,
		Tags:        []string{"errands", "home"},
		Status:      StatusWorking,
		Timestamp:   time.Date(2024, 4, 30, 18, 15, 0, 0, time.UTC),
	}

	tests := []struct {
		query    string
		expected bool
	}{
		{"milk", true},
		{"MILK", true},
		{"skimmed", true},
		{"2024-05-01", true},
		{"errands,home", true},
		{"work", true},
		{"18:15", true},
		{"bread", false},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			assert.Equal(t, tt.expected, task.Matches(tt.query, DisplayTimeLayout))
		})
	}
}

func TestTask_IsPastDue(t *testing.T) {
	now := time.Date(2024, 5, 2, 0, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	assert.True(t, Task{DueDate: &past, Status: StatusOpen}.IsPastDue(now))
	assert.False(t, Task{DueDate: &past, Status: StatusDone}.IsPastDue(now))
	assert.False(t, Task{DueDate: &future, Status: StatusOpen}.IsPastDue(now))
	assert.False(t, Task{Status: StatusOpen}.IsPastDue(now))
}

func TestTask_InputRoundTrip(t *testing.T) {
	due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)
	task := NewTask(TaskInput{Title: "A", Description: "d", DueDate: &due, Tags: []string{"x"}, Status: StatusDone})

	input := task.Input()
	require.NotNil(t, input.DueDate)
	assert.Equal(t, due, *input.DueDate)
	assert.Equal(t, task, NewTask(input))
}

func TestParseStatus(t *testing.T) {
	tests := []struct {
		input    string
		expected Status
		ok       bool
	}{
		{"", StatusOpen, true},
		{"open", StatusOpen, true},
		{" Working ", StatusWorking, true},
		{"DONE", StatusDone, true},
		{"overdue", StatusOverdue, true},
		{"later", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			status, ok := ParseStatus(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, status)
		})
	}
}

func TestStatus_MatchesFilter(t *testing.T) {
	assert.True(t, StatusDone.MatchesFilter("DONE"))
	assert.True(t, StatusDone.MatchesFilter("DO"))
	assert.True(t, StatusDone.MatchesFilter(""))
	assert.False(t, StatusOpen.MatchesFilter("DONE"))
	assert.False(t, StatusOverdue.MatchesFilter("DUE"))
}

func TestDedupeTags(t *testing.T) {
	assert.Equal(t, []string{"x", "y"}, DedupeTags([]string{"x", "x", "y"}))
	assert.Equal(t, []string{"b", "a"}, DedupeTags([]string{"b", " a", "", "b", "a "}))
	assert.Equal(t, []string{}, DedupeTags(nil))
}

func TestSplitTags(t *testing.T) {
	assert.Equal(t, []string{"home", "errands"}, SplitTags("home, errands,home"))
	assert.Equal(t, []string{}, SplitTags("  "))
}

func TestRemoveTags(t *testing.T) {
	assert.Equal(t, []string{"a", "c"}, RemoveTags([]string{"a", "b", "c"}, "b", "z"))
}

func TestParseSortField(t *testing.T) {
	tests := []struct {
		input    string
		expected SortField
		ok       bool
	}{
		{"", SortByTimestamp, true},
		{"title", SortByTitle, true},
		{"Due", SortByDueDate, true},
		{"due_date", SortByDueDate, true},
		{"priority", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			field, ok := ParseSortField(tt.input)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, field)
		})
	}
}
