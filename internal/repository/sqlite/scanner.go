package sqlite

// Scanner interface defines the common scanning behavior for both sql.Row and sql.Rows
type Scanner interface {
	Scan(dest ...interface{}) error
}

// Rows interface defines the common behavior for sql.Rows
type Rows interface {
	Next() bool
	Scan(dest ...interface{}) error
	Err() error
}

// taskColumns is the column list every task query selects, in scan order.
const taskColumns = "id, position, title, description, due_date, tags, status, created_at"

// ScanTask scans a single task row
func ScanTask(scanner Scanner) (*taskRow, error) {
	row := &taskRow{}
	err := scanner.Scan(
		&row.ID,
		&row.Position,
		&row.Title,
		&row.Description,
		&row.DueDate,
		&row.Tags,
		&row.Status,
		&row.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return row, nil
}

// ScanTasks scans multiple task rows
func ScanTasks(rows Rows) ([]*taskRow, error) {
	var result []*taskRow
	for rows.Next() {
		row, err := ScanTask(rows)
		if err != nil {
			return nil, err
		}
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, err
	}

	return result, nil
}
