// Package sqlite implements the Task Store on top of modernc.org/sqlite.
// The default DSN ":memory:" keeps the store process-local.
package sqlite

import (
	"context"
	"database/sql"
	stderrors "errors"
	"strings"
	"time"

	"github.com/google/uuid"

	"task-list/internal/domain"
	"task-list/internal/errors"
	"task-list/internal/repository"
	"task-list/internal/repository/sqlite/migrations"

	_ "modernc.org/sqlite"
)

// MemoryDSN opens a private in-memory database.
const MemoryDSN = ":memory:"

// SQLiteRepository implements repository.Repository
type SQLiteRepository struct {
	db           *sql.DB
	now          repository.Clock
	queryTimeout time.Duration
	writeTimeout time.Duration
}

var _ repository.Repository = (*SQLiteRepository)(nil)

// Option configures a SQLiteRepository
type Option func(*SQLiteRepository)

// WithClock replaces time.Now when stamping new tasks.
func WithClock(clock repository.Clock) Option {
	return func(r *SQLiteRepository) {
		if clock != nil {
			r.now = clock
		}
	}
}

// WithQueryTimeout bounds each read. Zero disables the bound.
func WithQueryTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) { r.queryTimeout = d }
}

// WithWriteTimeout bounds each write. Zero disables the bound.
func WithWriteTimeout(d time.Duration) Option {
	return func(r *SQLiteRepository) { r.writeTimeout = d }
}

// New creates a new SQLite repository instance
func New(dsn string, opts ...Option) (*SQLiteRepository, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, errors.NewDatabaseError("open database", err)
	}
	// Every connection to ":memory:" is a separate database.
	db.SetMaxOpenConns(1)

	r := &SQLiteRepository{db: db, now: time.Now}
	for _, opt := range opts {
		opt(r)
	}

	// Run migrations
	if err := migrations.RunMigrations(context.Background(), db); err != nil {
		db.Close()
		return nil, errors.NewDatabaseError("run migrations", err)
	}

	return r, nil
}

// Close closes the database connection
func (r *SQLiteRepository) Close() error {
	return r.db.Close()
}

func (r *SQLiteRepository) readContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.queryTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.queryTimeout)
}

func (r *SQLiteRepository) writeContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if r.writeTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, r.writeTimeout)
}

// Create inserts the task at the end of the collection
func (r *SQLiteRepository) Create(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("create task", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if task.ID == uuid.Nil {
		task.ID = uuid.New()
	}
	task.Timestamp = r.now()

	row, err := toRow(task)
	if err != nil {
		return errors.NewDatabaseError("create task", err)
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	var exists int
	if err := tx.QueryRowContext(ctx, `SELECT COUNT(*) FROM tasks WHERE id = ?`, row.ID).Scan(&exists); err != nil {
		return HandleDatabaseError("check task id", err)
	}
	if exists > 0 {
		return errors.NewInvalidInputError("id", row.ID, "task id already exists")
	}

	query := `
	INSERT INTO tasks (id, position, title, description, due_date, tags, status, created_at)
	VALUES (?, (SELECT COALESCE(MAX(position), 0) + 1 FROM tasks), ?, ?, ?, ?, ?, ?)`

	if _, err := tx.ExecContext(ctx, query,
		row.ID, row.Title, row.Description, row.DueDate, row.Tags, row.Status, row.CreatedAt,
	); err != nil {
		return HandleDatabaseError("insert task", err)
	}

	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit task", err)
	}
	return nil
}

// Get retrieves a task by ID
func (r *SQLiteRepository) Get(ctx context.Context, id uuid.UUID) (*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("get task", err)
	}
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks WHERE id = ?`
	row, err := QuerySingle(ctx, r.db, query, ScanTask, "task", id.String(), id.String())
	if err != nil {
		return nil, err
	}

	task, err := fromRow(row)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "stored task could not be read")
	}
	return task, nil
}

// List retrieves all tasks in insertion order
func (r *SQLiteRepository) List(ctx context.Context) ([]*domain.Task, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.FromContextError("list tasks", err)
	}
	ctx, cancel := r.readContext(ctx)
	defer cancel()

	query := `SELECT ` + taskColumns + ` FROM tasks ORDER BY position ASC`
	rows, err := QueryMultiple(ctx, r.db, query, ScanTasks, "tasks")
	if err != nil {
		return nil, err
	}

	tasks, err := fromRows(rows)
	if err != nil {
		return nil, errors.WrapError(err, errors.ErrorTypeDatabase, "stored task could not be read")
	}
	return tasks, nil
}

// Update replaces an existing task, keeping its timestamp and position
func (r *SQLiteRepository) Update(ctx context.Context, task *domain.Task) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("update task", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	var createdAt string
	err = tx.QueryRowContext(ctx, `SELECT created_at FROM tasks WHERE id = ?`, task.ID.String()).Scan(&createdAt)
	if err != nil {
		return HandleLookupError("find task", err, "task", task.ID.String())
	}

	if err := r.replace(ctx, tx, task, createdAt); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return HandleDatabaseError("commit task", err)
	}
	return nil
}

// UpdateByTitle replaces the first task (by position) with the given title
func (r *SQLiteRepository) UpdateByTitle(ctx context.Context, title string, task *domain.Task) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, errors.FromContextError("update task", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return false, HandleDatabaseError("begin transaction", err)
	}
	defer tx.Rollback()

	var id, createdAt string
	query := `SELECT id, created_at FROM tasks WHERE title = ? ORDER BY position ASC LIMIT 1`
	if err := tx.QueryRowContext(ctx, query, title).Scan(&id, &createdAt); err != nil {
		if stderrors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, HandleDatabaseError("find task", err)
	}

	matched, err := uuid.Parse(id)
	if err != nil {
		return false, errors.NewDatabaseError("parse task id", err)
	}
	task.ID = matched

	if err := r.replace(ctx, tx, task, createdAt); err != nil {
		return false, err
	}
	if err := tx.Commit(); err != nil {
		return false, HandleDatabaseError("commit task", err)
	}
	return true, nil
}

func (r *SQLiteRepository) replace(ctx context.Context, tx *sql.Tx, task *domain.Task, createdAt string) error {
	ts, err := ParseTimeFromDB(createdAt)
	if err != nil {
		return errors.NewDatabaseError("parse created_at", err)
	}
	task.Timestamp = ts

	row, err := toRow(task)
	if err != nil {
		return errors.NewDatabaseError("update task", err)
	}

	query := `
	UPDATE tasks
	SET title = ?, description = ?, due_date = ?, tags = ?, status = ?
	WHERE id = ?`

	return ExecuteWithRowsAffected(ctx, tx, query, "task", row.ID,
		row.Title, row.Description, row.DueDate, row.Tags, row.Status, row.ID)
}

// Delete deletes a task by ID
func (r *SQLiteRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return errors.FromContextError("delete task", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	query := `DELETE FROM tasks WHERE id = ?`
	return ExecuteWithRowsAffected(ctx, r.db, query, "task", id.String(), id.String())
}

// DeleteByTitle deletes every task with the given title
func (r *SQLiteRepository) DeleteByTitle(ctx context.Context, title string) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.FromContextError("delete tasks", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	return ExecuteWithRowsCount(ctx, r.db, `DELETE FROM tasks WHERE title = ?`, title)
}

// Retain deletes every task whose ID is not listed
func (r *SQLiteRepository) Retain(ctx context.Context, ids []uuid.UUID) (int, error) {
	if err := ctx.Err(); err != nil {
		return 0, errors.FromContextError("retain tasks", err)
	}
	ctx, cancel := r.writeContext(ctx)
	defer cancel()

	if len(ids) == 0 {
		return ExecuteWithRowsCount(ctx, r.db, `DELETE FROM tasks`)
	}

	placeholders := make([]string, len(ids))
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		placeholders[i] = "?"
		args[i] = id.String()
	}

	query := `DELETE FROM tasks WHERE id NOT IN (` + strings.Join(placeholders, ", ") + `)`
	return ExecuteWithRowsCount(ctx, r.db, query, args...)
}
