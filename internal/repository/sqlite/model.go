package sqlite

import "database/sql"

// taskRow mirrors a row of the tasks table
type taskRow struct {
	ID          string
	Position    int64
	Title       string
	Description string
	DueDate     sql.NullString
	Tags        string // JSON array
	Status      string
	CreatedAt   string
}
