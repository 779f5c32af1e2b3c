package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-list/internal/api"
	"task-list/internal/config"
	"task-list/internal/domain"
	"task-list/internal/logging"
	"task-list/internal/repository"
	"task-list/internal/repository/memory"
)

var testStart = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

// steppingClock advances one minute per call so insertion order and
// timestamp order agree
func steppingClock() repository.Clock {
	next := testStart
	return func() time.Time {
		now := next
		next = next.Add(time.Minute)
		return now
	}
}

func testConfig() *config.Config {
	cfg := config.NewConfig()
	cfg.Display.Color = false
	return cfg
}

// setupTestApp returns an app over an in-memory store and its output buffer
func setupTestApp(t *testing.T) (*App, *bytes.Buffer) {
	t.Helper()
	return setupTestAppWithInput(t, "")
}

func setupTestAppWithInput(t *testing.T, input string) (*App, *bytes.Buffer) {
	t.Helper()
	cfg := testConfig()
	repo := memory.New(memory.WithClock(steppingClock()))
	app := NewAppWithConfig(api.New(repo, cfg, logging.NopLogger()), cfg)

	out := &bytes.Buffer{}
	app.SetIO(strings.NewReader(input), out)
	return app, out
}

// addTask creates a task through the API and fails the test on error
func addTask(t *testing.T, app *App, title, description, tags, status string) *domain.Task {
	t.Helper()
	task, err := app.api.CreateTask(context.Background(), api.TaskForm{
		Title:       title,
		Description: description,
		Tags:        tags,
		Status:      status,
	})
	require.NoError(t, err)
	return task
}

func listTitles(t *testing.T, app *App) []string {
	t.Helper()
	tasks, err := app.api.ListTasks(context.Background(), api.ListRequest{})
	require.NoError(t, err)
	titles := make([]string, 0, len(tasks))
	for _, task := range tasks {
		titles = append(titles, task.Title)
	}
	return titles
}

// run executes one registered command the way the shell does
func run(t *testing.T, app *App, name string, args ...string) error {
	t.Helper()
	return app.registry.Execute(context.Background(), name, args)
}
