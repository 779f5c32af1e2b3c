package cli

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/api"
	"task-list/internal/domain"
	apperrors "task-list/internal/errors"
)

func getTask(t *testing.T, app *App, task *domain.Task) *domain.Task {
	t.Helper()
	got, err := app.api.GetTask(context.Background(), api.TaskRef{Value: task.ID.String()})
	require.NoError(t, err)
	return got
}

func TestEditCommand_ChangesOnlyGivenFields(t *testing.T) {
	app, out := setupTestApp(t)
	task := addTask(t, app, "Buy milk", "Two litres", "shop", "")

	require.NoError(t, run(t, app, "edit", task.ID.String()[:8], "--status", "done"))

	got := getTask(t, app, task)
	assert.Equal(t, domain.StatusDone, got.Status)
	assert.Equal(t, "Buy milk", got.Title)
	assert.Equal(t, "Two litres", got.Description)
	assert.Equal(t, []string{"shop"}, got.Tags)
	assert.Equal(t, task.Timestamp, got.Timestamp)
	assert.Contains(t, out.String(), "Updated task "+task.ShortID()+": Buy milk")
}

func TestEditCommand_ReplacesTagsAndClearsDueDate(t *testing.T) {
	app, _ := setupTestApp(t)
	created, err := app.api.CreateTask(context.Background(), api.TaskForm{
		Title:       "Report",
		Description: "Quarterly numbers",
		DueDate:     "2024-06-01",
		Tags:        "work",
	})
	require.NoError(t, err)

	require.NoError(t, run(t, app, "edit", created.ID.String(), "--tags", "a,b,a", "--due", ""))

	got := getTask(t, app, created)
	assert.Equal(t, []string{"a", "b"}, got.Tags)
	assert.Nil(t, got.DueDate)
}

func TestEditCommand_ByTitleChangesFirstMatchOnly(t *testing.T) {
	app, _ := setupTestApp(t)
	first := addTask(t, app, "Dup", "first", "", "")
	second := addTask(t, app, "Dup", "second", "", "")

	require.NoError(t, run(t, app, "edit", "--by-title", "Dup", "--title", "Renamed"))

	assert.Equal(t, "Renamed", getTask(t, app, first).Title)
	assert.Equal(t, "Dup", getTask(t, app, second).Title)
	assert.Equal(t, []string{"Renamed", "Dup"}, listTitles(t, app))
}

func TestEditCommand_ByTitleNoMatchIsSilent(t *testing.T) {
	app, out := setupTestApp(t)
	addTask(t, app, "Keep", "unchanged", "", "")

	require.NoError(t, run(t, app, "edit", "--by-title", "Missing", "--status", "DONE"))

	assert.Contains(t, out.String(), `No task titled "Missing", nothing changed`)
	assert.Equal(t, []string{"Keep"}, listTitles(t, app))
}

func TestEditCommand_Errors(t *testing.T) {
	app, _ := setupTestApp(t)
	task := addTask(t, app, "Buy milk", "Two litres", "", "")

	t.Run("nothing to change", func(t *testing.T) {
		err := run(t, app, "edit", task.ID.String())
		require.Error(t, err)
		assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
	})

	t.Run("empty title", func(t *testing.T) {
		err := run(t, app, "edit", task.ID.String(), "--title", "  ")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "title is required")
		assert.Equal(t, "Buy milk", getTask(t, app, task).Title)
	})

	t.Run("unknown id", func(t *testing.T) {
		err := run(t, app, "edit", "00000000-0000-0000-0000-000000000000", "--status", "DONE")
		require.Error(t, err)
		assert.True(t, NewErrorHandler().IsNotFoundError(err))
	})

	t.Run("title without flag", func(t *testing.T) {
		err := run(t, app, "edit", "Buy milk", "--status", "DONE")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "--by-title")
	})
}

func TestTagCommand_AddsAndRemovesTags(t *testing.T) {
	app, out := setupTestApp(t)
	task := addTask(t, app, "Buy milk", "Two litres", "shop", "")
	ref := task.ID.String()[:8]

	require.NoError(t, run(t, app, "tag", ref, "home", "shop", "urgent,later"))
	assert.Equal(t, []string{"shop", "home", "urgent", "later"}, getTask(t, app, task).Tags)
	assert.Contains(t, out.String(), "SHOP, HOME, URGENT, LATER")

	require.NoError(t, run(t, app, "untag", ref, "shop", "later"))
	assert.Equal(t, []string{"home", "urgent"}, getTask(t, app, task).Tags)
}

func TestTagCommand_ByTitle(t *testing.T) {
	app, out := setupTestApp(t)
	task := addTask(t, app, "Buy milk", "Two litres", "", "")

	require.NoError(t, run(t, app, "tag", "--by-title", "Buy milk", "shop"))
	assert.Equal(t, []string{"shop"}, getTask(t, app, task).Tags)

	out.Reset()
	require.NoError(t, run(t, app, "tag", "--by-title", "Sell milk", "shop"))
	assert.Contains(t, out.String(), "nothing changed")
}
