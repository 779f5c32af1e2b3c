package sqlite

import (
	"database/sql"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-list/internal/domain"
)

type fakeScanner struct {
	values []interface{}
	err    error
}

func (f fakeScanner) Scan(dest ...interface{}) error {
	if f.err != nil {
		return f.err
	}
	for i, d := range dest {
		switch p := d.(type) {
		case *string:
			*p = f.values[i].(string)
		case *int64:
			*p = f.values[i].(int64)
		case *sql.NullString:
			if f.values[i] == nil {
				*p = sql.NullString{}
			} else {
				*p = sql.NullString{String: f.values[i].(string), Valid: true}
			}
		}
	}
	return nil
}

type fakeRows struct {
	rows []fakeScanner
	pos  int
}

func (f *fakeRows) Next() bool {
	f.pos++
	return f.pos <= len(f.rows)
}

func (f *fakeRows) Scan(dest ...interface{}) error { return f.rows[f.pos-1].Scan(dest...) }
func (f *fakeRows) Err() error                     { return nil }

func sampleRow(due interface{}) fakeScanner {
	return fakeScanner{values: []interface{}{
		"6f1c1f0e-8d9b-4a53-9a43-6c0f6f7a2a11",
		int64(1),
		"Pay bills",
		"electricity",
		due,
		`["home"]`,
		"WORKING",
		"2024-05-01T08:00:00Z",
	}}
}

func TestScanTask_MapsToDomain(t *testing.T) {
	row, err := ScanTask(sampleRow("2024-05-03T00:00:00Z"))
	require.NoError(t, err)

	task, err := fromRow(row)
	require.NoError(t, err)
	assert.Equal(t, "Pay bills", task.Title)
	assert.Equal(t, []string{"home"}, task.Tags)
	assert.Equal(t, domain.StatusWorking, task.Status)
	require.NotNil(t, task.DueDate)
	assert.Equal(t, 3, task.DueDate.Day())
}

func TestScanTask_NullDueDate(t *testing.T) {
	row, err := ScanTask(sampleRow(nil))
	require.NoError(t, err)

	task, err := fromRow(row)
	require.NoError(t, err)
	assert.Nil(t, task.DueDate)
}

func TestScanTask_Error(t *testing.T) {
	_, err := ScanTask(fakeScanner{err: sql.ErrNoRows})
	assert.True(t, stderrors.Is(err, sql.ErrNoRows))
}

func TestScanTasks(t *testing.T) {
	rows := &fakeRows{rows: []fakeScanner{sampleRow(nil), sampleRow(nil)}}
	result, err := ScanTasks(rows)
	require.NoError(t, err)
	assert.Len(t, result, 2)
}
