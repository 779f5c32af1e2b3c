// Package repositorytest holds behaviour tests every Repository backend must pass.
package repositorytest

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository"
)

// Factory builds an empty repository whose clock is now.
type Factory func(t *testing.T, now repository.Clock) repository.Repository

// FixedClock returns a clock that advances one second per call, starting at start.
func FixedClock(start time.Time) repository.Clock {
	next := start
	return func() time.Time {
		current := next
		next = next.Add(time.Second)
		return current
	}
}

// Run executes the shared behaviour tests against the backend built by newRepo.
func Run(t *testing.T, newRepo Factory) {
	start := time.Date(2024, 1, 15, 10, 30, 0, 0, time.UTC)

	setup := func(t *testing.T) repository.Repository {
		repo := newRepo(t, FixedClock(start))
		t.Cleanup(func() { repo.Close() })
		return repo
	}

	create := func(t *testing.T, repo repository.Repository, title, description string, tags ...string) *domain.Task {
		task := domain.NewTask(domain.TaskInput{Title: title, Description: description, Tags: tags})
		require.NoError(t, repo.Create(context.Background(), &task))
		return &task
	}

	t.Run("create assigns id and timestamp", func(t *testing.T) {
		repo := setup(t)
		task := create(t, repo, "A", "d")

		assert.NotEqual(t, uuid.Nil, task.ID)
		assert.True(t, task.Timestamp.Equal(start))

		stored, err := repo.Get(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", stored.Title)
		assert.Equal(t, domain.StatusOpen, stored.Status)
		assert.Nil(t, stored.DueDate)
		assert.Empty(t, stored.Tags)
		assert.True(t, stored.Timestamp.Equal(start))
	})

	t.Run("create keeps all fields", func(t *testing.T) {
		repo := setup(t)
		due := time.Date(2024, 2, 1, 17, 0, 0, 0, time.UTC)
		task := domain.NewTask(domain.TaskInput{
			Title:       "Report",
			Description: "Quarterly numbers",
			DueDate:     &due,
			Tags:        []string{"work", "finance"},
			Status:      domain.StatusWorking,
		})
		require.NoError(t, repo.Create(context.Background(), &task))

		stored, err := repo.Get(context.Background(), task.ID)
		require.NoError(t, err)
		require.NotNil(t, stored.DueDate)
		assert.True(t, stored.DueDate.Equal(due))
		assert.Equal(t, []string{"work", "finance"}, stored.Tags)
		assert.Equal(t, domain.StatusWorking, stored.Status)
	})

	t.Run("times come back in the local zone", func(t *testing.T) {
		saved := time.Local
		time.Local = time.FixedZone("JST", 9*3600)
		t.Cleanup(func() { time.Local = saved })

		const layout = "2006-01-02 15:04:05"
		created := time.Date(2024, 5, 1, 8, 0, 0, 0, time.Local)
		repo := newRepo(t, FixedClock(created))
		t.Cleanup(func() { repo.Close() })

		due := time.Date(2024, 5, 1, 9, 0, 0, 0, time.Local)
		task := domain.NewTask(domain.TaskInput{Title: "Call", Description: "Tokyo office", DueDate: &due})
		require.NoError(t, repo.Create(context.Background(), &task))

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 1)
		require.NotNil(t, tasks[0].DueDate)
		assert.Equal(t, "2024-05-01 09:00:00", tasks[0].DueDate.Format(layout))
		assert.Equal(t, "2024-05-01 08:00:00", tasks[0].Timestamp.Format(layout))
		assert.True(t, tasks[0].Matches("2024-05-01 09:00", layout))
	})

	t.Run("duplicate titles are accepted", func(t *testing.T) {
		repo := setup(t)
		first := create(t, repo, "Same", "one")
		second := create(t, repo, "Same", "two")

		assert.NotEqual(t, first.ID, second.ID)
		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Len(t, tasks, 2)
	})

	t.Run("list keeps insertion order", func(t *testing.T) {
		repo := setup(t)
		create(t, repo, "c", "d")
		create(t, repo, "a", "d")
		create(t, repo, "b", "d")

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		require.Len(t, tasks, 3)
		assert.Equal(t, []string{"c", "a", "b"}, titles(tasks))
	})

	t.Run("get unknown id is not found", func(t *testing.T) {
		repo := setup(t)
		_, err := repo.Get(context.Background(), uuid.New())
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("returned tasks are copies", func(t *testing.T) {
		repo := setup(t)
		task := create(t, repo, "A", "d", "x")

		stored, err := repo.Get(context.Background(), task.ID)
		require.NoError(t, err)
		stored.Tags[0] = "mutated"
		stored.Title = "mutated"

		again, err := repo.Get(context.Background(), task.ID)
		require.NoError(t, err)
		assert.Equal(t, "A", again.Title)
		assert.Equal(t, []string{"x"}, again.Tags)
	})

	t.Run("update replaces fields but keeps timestamp and position", func(t *testing.T) {
		repo := setup(t)
		first := create(t, repo, "first", "d")
		create(t, repo, "second", "d")

		edited := domain.NewTask(domain.TaskInput{Title: "renamed", Description: "new", Status: domain.StatusDone})
		edited.ID = first.ID
		edited.Timestamp = start.Add(time.Hour)
		require.NoError(t, repo.Update(context.Background(), &edited))

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"renamed", "second"}, titles(tasks))
		assert.Equal(t, domain.StatusDone, tasks[0].Status)
		assert.True(t, tasks[0].Timestamp.Equal(first.Timestamp))
	})

	t.Run("update unknown id is not found", func(t *testing.T) {
		repo := setup(t)
		task := domain.NewTask(domain.TaskInput{Title: "ghost", Description: "d"})
		task.ID = uuid.New()
		err := repo.Update(context.Background(), &task)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("update by title replaces only the first match", func(t *testing.T) {
		repo := setup(t)
		first := create(t, repo, "dup", "one")
		second := create(t, repo, "dup", "two")
		other := create(t, repo, "other", "three")

		edited := domain.NewTask(domain.TaskInput{Title: "dup", Description: "edited"})
		updated, err := repo.UpdateByTitle(context.Background(), "dup", &edited)
		require.NoError(t, err)
		assert.True(t, updated)
		assert.Equal(t, first.ID, edited.ID)

		got, err := repo.Get(context.Background(), first.ID)
		require.NoError(t, err)
		assert.Equal(t, "edited", got.Description)
		assert.True(t, got.Timestamp.Equal(first.Timestamp))

		untouched, err := repo.Get(context.Background(), second.ID)
		require.NoError(t, err)
		assert.Equal(t, "two", untouched.Description)

		untouched, err = repo.Get(context.Background(), other.ID)
		require.NoError(t, err)
		assert.Equal(t, "three", untouched.Description)
	})

	t.Run("update by title without match is a no-op", func(t *testing.T) {
		repo := setup(t)
		create(t, repo, "A", "d")

		edited := domain.NewTask(domain.TaskInput{Title: "B", Description: "x"})
		updated, err := repo.UpdateByTitle(context.Background(), "missing", &edited)
		require.NoError(t, err)
		assert.False(t, updated)

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"A"}, titles(tasks))
	})

	t.Run("delete removes one task", func(t *testing.T) {
		repo := setup(t)
		a := create(t, repo, "A", "d")
		create(t, repo, "B", "d")

		require.NoError(t, repo.Delete(context.Background(), a.ID))
		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"B"}, titles(tasks))

		err = repo.Delete(context.Background(), a.ID)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeNotFound))
	})

	t.Run("delete by title removes every match", func(t *testing.T) {
		repo := setup(t)
		create(t, repo, "dup", "1")
		create(t, repo, "keep", "2")
		create(t, repo, "dup", "3")

		removed, err := repo.DeleteByTitle(context.Background(), "dup")
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"keep"}, titles(tasks))

		removed, err = repo.DeleteByTitle(context.Background(), "dup")
		require.NoError(t, err)
		assert.Zero(t, removed)
	})

	t.Run("retain keeps listed ids in order", func(t *testing.T) {
		repo := setup(t)
		a := create(t, repo, "a", "d")
		create(t, repo, "b", "d")
		c := create(t, repo, "c", "d")

		removed, err := repo.Retain(context.Background(), []uuid.UUID{c.ID, a.ID})
		require.NoError(t, err)
		assert.Equal(t, 1, removed)

		tasks, err := repo.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, []string{"a", "c"}, titles(tasks))

		removed, err = repo.Retain(context.Background(), nil)
		require.NoError(t, err)
		assert.Equal(t, 2, removed)

		tasks, err = repo.List(context.Background())
		require.NoError(t, err)
		assert.Empty(t, tasks)
	})

	t.Run("cancelled context is a timeout", func(t *testing.T) {
		repo := setup(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := repo.List(ctx)
		assert.True(t, errors.IsErrorType(err, errors.ErrorTypeTimeout))
	})
}

func titles(tasks []*domain.Task) []string {
	result := make([]string, len(tasks))
	for i, task := range tasks {
		result[i] = task.Title
	}
	return result
}
