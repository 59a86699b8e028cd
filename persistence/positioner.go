package persistence

// Move the cursor forward by rows_to_skip rows, one Next() at a time
// since cursors may be forward only. Running out of rows is not an
// error - the next read simply finds nothing. Skipped rows are never
// scanned.
func Advance(cursor *Cursor, rows_to_skip int) error {
	for i := 0; i < rows_to_skip; i++ {
		if !cursor.Next() {
			err := cursor.Err()
			if err != nil {
				return NewExecutionError("", err)
			}
			return nil
		}
	}
	return nil
}

// Position the cursor so the next Next() lands on start_row (1 based).
func ForwardBefore(cursor *Cursor, start_row int) error {
	return Advance(cursor, start_row-1)
}
