package cli

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/api"
	"task-list/internal/domain"
	apperrors "task-list/internal/errors"
)

func TestAddCommand_CreatesTaskWithDefaults(t *testing.T) {
	app, out := setupTestApp(t)

	require.NoError(t, run(t, app, "add", "A", "-d", "d"))

	tasks, err := app.api.ListTasks(context.Background(), api.ListRequest{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "A", tasks[0].Title)
	assert.Equal(t, "d", tasks[0].Description)
	assert.Equal(t, domain.StatusOpen, tasks[0].Status)
	assert.False(t, tasks[0].Timestamp.IsZero())
	assert.Nil(t, tasks[0].DueDate)
	assert.Equal(t, "Added task "+tasks[0].ShortID()+": A\n", out.String())
}

func TestAddCommand_AllFields(t *testing.T) {
	app, _ := setupTestApp(t)

	err := run(t, app, "add", "Buy", "milk",
		"--description", "Two litres",
		"--due", "2024-06-01",
		"--tags", "shop,home,shop",
		"--status", "working")
	require.NoError(t, err)

	tasks, err := app.api.ListTasks(context.Background(), api.ListRequest{})
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	task := tasks[0]
	assert.Equal(t, "Buy milk", task.Title)
	assert.Equal(t, []string{"shop", "home"}, task.Tags)
	assert.Equal(t, domain.StatusWorking, task.Status)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, "2024-06-01", task.DueDate.Format("2006-01-02"))
}

func TestAddCommand_ValidationErrors(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		message string
	}{
		{
			name:    "missing description",
			args:    []string{"Title only"},
			message: "description is required",
		},
		{
			name:    "unknown status",
			args:    []string{"T", "-d", "d", "--status", "PAUSED"},
			message: "status has invalid value",
		},
		{
			name:    "bad due date",
			args:    []string{"T", "-d", "d", "--due", "next tuesday"},
			message: "due",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app, _ := setupTestApp(t)

			err := run(t, app, "add", tt.args...)
			require.Error(t, err)
			assert.Contains(t, err.Error(), "failed to add task:")
			assert.Contains(t, err.Error(), tt.message)
			assert.True(t, NewErrorHandler().IsValidationError(err))
			assert.Empty(t, listTitles(t, app))
		})
	}
}

func TestAddCommand_RequiresTitle(t *testing.T) {
	app, _ := setupTestApp(t)

	err := NewAddCommand(app).Execute(context.Background(), nil)

	require.Error(t, err)
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypeInvalidInput))
}

func TestAddCommand_APIErrorIsHandled(t *testing.T) {
	mock := &mockBusinessAPI{
		createTask: func(ctx context.Context, form api.TaskForm) (*domain.Task, error) {
			return nil, apperrors.NewDatabaseError("insert", errors.New("database is locked"))
		},
	}
	app := NewAppWithConfig(mock, testConfig())

	err := NewAddCommand(app).Execute(context.Background(), []string{"T"})

	require.Error(t, err)
	assert.Equal(t, "failed to add task: The task store could not complete the request. Please try again.", err.Error())
}
