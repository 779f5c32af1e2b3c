package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/repository/memory"
	"task-list/internal/repository/repositorytest"
)

var testStart = time.Date(2024, 6, 1, 9, 0, 0, 0, time.UTC)

func setupRepo(t *testing.T) *memory.Store {
	t.Helper()
	repo := memory.New(memory.WithClock(repositorytest.FixedClock(testStart)))
	t.Cleanup(func() { repo.Close() })
	return repo
}

func setupTaskService(t *testing.T) (TaskService, *memory.Store) {
	t.Helper()
	repo := setupRepo(t)
	return NewTaskService(repo, nil, nil), repo
}

func input(title, description string) domain.TaskInput {
	return domain.TaskInput{Title: title, Description: description}
}

func seed(t *testing.T, service TaskService, inputs ...domain.TaskInput) []*domain.Task {
	t.Helper()
	created := make([]*domain.Task, 0, len(inputs))
	for _, in := range inputs {
		task, err := service.CreateTask(context.Background(), in)
		require.NoError(t, err)
		created = append(created, task)
	}
	return created
}

func titlesOf(tasks []*domain.Task) []string {
	titles := make([]string, len(tasks))
	for i, task := range tasks {
		titles[i] = task.Title
	}
	return titles
}

func datePtr(year int, month time.Month, day int) *time.Time {
	d := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
	return &d
}
