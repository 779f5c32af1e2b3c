package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
)

func setupViewService(t *testing.T, locale string) (ViewService, TaskService) {
	t.Helper()
	repo := setupRepo(t)
	return NewViewService(repo, ViewOptions{Locale: locale}, nil), NewTaskService(repo, nil, nil)
}

func TestViewService_Search(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	ctx := context.Background()
	seed(t, tasks,
		input("Groceries", "buy oat milk"),
		input("Bills", "electricity"),
		domain.TaskInput{Title: "Gym", Description: "legs", Tags: []string{"health"}, Status: domain.StatusDone},
	)

	tests := []struct {
		name  string
		query string
		want  []string
	}{
		{"description substring", "oat", []string{"Groceries"}},
		{"case insensitive", "ELECTRIC", []string{"Bills"}},
		{"tag", "health", []string{"Gym"}},
		{"status", "done", []string{"Gym"}},
		{"timestamp", "2024-06-01", []string{"Groceries", "Bills", "Gym"}},
		{"empty returns all", "", []string{"Groceries", "Bills", "Gym"}},
		{"no match", "zzz", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := view.Search(ctx, tt.query)
			require.NoError(t, err)
			assert.Equal(t, tt.want, titlesOf(result))
		})
	}

	// Search never mutates the store
	all, err := tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)
}

func TestViewService_Search_DueDate(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	seed(t, tasks,
		domain.TaskInput{Title: "Taxes", Description: "file", DueDate: datePtr(2024, 4, 15)},
		input("Other", "thing"),
	)

	result, err := view.Search(context.Background(), "2024-04-15")
	require.NoError(t, err)
	assert.Equal(t, []string{"Taxes"}, titlesOf(result))
}

func TestViewService_Narrow(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	ctx := context.Background()
	seed(t, tasks, input("alpha", "first"), input("beta", "second"), input("alphabet", "third"))

	kept, err := view.Narrow(ctx, "alpha")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "alphabet"}, titlesOf(kept))

	remaining, err := tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "alphabet"}, titlesOf(remaining))

	kept, err = view.Narrow(ctx, "nothing matches this")
	require.NoError(t, err)
	assert.Empty(t, kept)

	remaining, err = tasks.ListTasks(ctx)
	require.NoError(t, err)
	assert.Empty(t, remaining)
}

func TestViewService_Narrow_CancelledContext(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	seed(t, tasks, input("a", "b"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := view.Narrow(ctx, "a")
	assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
}

func TestViewService_FilterByStatus(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	created := seed(t, tasks,
		domain.TaskInput{Title: "a", Description: "d", Status: domain.StatusOpen},
		domain.TaskInput{Title: "b", Description: "d", Status: domain.StatusDone},
		domain.TaskInput{Title: "c", Description: "d", Status: domain.StatusOverdue},
		domain.TaskInput{Title: "d", Description: "d", Status: domain.StatusDone},
	)

	tests := []struct {
		value string
		want  []string
	}{
		{"DONE", []string{"b", "d"}},
		{"O", []string{"a", "c"}},
		{"", []string{"a", "b", "c", "d"}},
		{"done", []string{}},
		{"WORKING", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			assert.Equal(t, tt.want, titlesOf(view.FilterByStatus(created, tt.value)))
		})
	}
}

func TestViewService_SortTasks_Title(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	created := seed(t, tasks, input("banana", "d"), input("Apple", "d"), input("cherry", "d"))

	asc := view.SortTasks(created, domain.SortByTitle, false)
	assert.Equal(t, []string{"Apple", "banana", "cherry"}, titlesOf(asc))

	desc := view.SortTasks(created, domain.SortByTitle, true)
	assert.Equal(t, []string{"cherry", "banana", "Apple"}, titlesOf(desc))

	// Input slice is untouched
	assert.Equal(t, []string{"banana", "Apple", "cherry"}, titlesOf(created))
}

func TestViewService_SortTasks_TitleLocale(t *testing.T) {
	created := []*domain.Task{{Title: "ö"}, {Title: "z"}, {Title: "a"}}

	en, _ := setupViewService(t, "en")
	assert.Equal(t, []string{"a", "ö", "z"}, titlesOf(en.SortTasks(created, domain.SortByTitle, false)))

	sv, _ := setupViewService(t, "sv")
	assert.Equal(t, []string{"a", "z", "ö"}, titlesOf(sv.SortTasks(created, domain.SortByTitle, false)))
}

func TestViewService_SortTasks_Timestamp(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	created := seed(t, tasks, input("first", "d"), input("second", "d"), input("third", "d"))
	shuffled := []*domain.Task{created[2], created[0], created[1]}

	assert.Equal(t, []string{"first", "second", "third"}, titlesOf(view.SortTasks(shuffled, domain.SortByTimestamp, false)))
	assert.Equal(t, []string{"third", "second", "first"}, titlesOf(view.SortTasks(shuffled, domain.SortByTimestamp, true)))
}

func TestViewService_SortTasks_DueDate(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	created := seed(t, tasks,
		domain.TaskInput{Title: "undated-1", Description: "d"},
		domain.TaskInput{Title: "late", Description: "d", DueDate: datePtr(2024, 12, 1)},
		domain.TaskInput{Title: "undated-2", Description: "d"},
		domain.TaskInput{Title: "early", Description: "d", DueDate: datePtr(2024, 1, 1)},
	)

	asc := view.SortTasks(created, domain.SortByDueDate, false)
	assert.Equal(t, []string{"early", "late", "undated-1", "undated-2"}, titlesOf(asc))

	desc := view.SortTasks(created, domain.SortByDueDate, true)
	assert.Equal(t, []string{"undated-1", "undated-2", "late", "early"}, titlesOf(desc))
}

func TestViewService_View(t *testing.T) {
	view, tasks := setupViewService(t, "en")
	seed(t, tasks,
		domain.TaskInput{Title: "b report", Description: "work", Status: domain.StatusDone},
		domain.TaskInput{Title: "a report", Description: "work", Status: domain.StatusDone},
		domain.TaskInput{Title: "c report", Description: "home", Status: domain.StatusDone},
		domain.TaskInput{Title: "d report", Description: "work", Status: domain.StatusOpen},
	)

	result, err := view.View(context.Background(), domain.ListOptions{
		Status: "DONE",
		Query:  "work",
		SortBy: domain.SortByTitle,
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"a report", "b report"}, titlesOf(result))
}
