package persistence

import (
	"bytes"
	"fmt"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/sqlpager/meta"
)

// A fully read result held in memory. The native rows are closed
// before this is handed out, so no database resources are pinned while
// the caller pages over it.
type memoryRows struct {
	columns      []string
	meta_columns []*meta.Column
	data         [][]any

	// Index of the current row, -1 before the first Next().
	current int
	closed  bool
}

func (self *memoryRows) Next() bool {
	if self.closed || self.current+1 >= len(self.data) {
		self.current = len(self.data)
		return false
	}
	self.current++
	return true
}

// Only *any destinations are supported - that is all Cursor uses.
func (self *memoryRows) Scan(dest ...any) error {
	if self.closed {
		return errors.New("rows are closed")
	}

	if self.current < 0 || self.current >= len(self.data) {
		return errors.New("no current row")
	}

	row := self.data[self.current]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d",
			len(row), len(dest))
	}

	for idx, d := range dest {
		target, ok := d.(*any)
		if !ok {
			return fmt.Errorf("unsupported Scan destination %T", d)
		}

		// Hand out copies so callers can not change the stored row.
		value := row[idx]
		b, ok := value.([]byte)
		if ok {
			value = bytes.Clone(b)
		}
		*target = value
	}
	return nil
}

func (self *memoryRows) Columns() ([]string, error) {
	return self.columns, nil
}

func (self *memoryRows) MetaColumns() []*meta.Column {
	return self.meta_columns
}

func (self *memoryRows) Err() error {
	return nil
}

func (self *memoryRows) Close() error {
	self.closed = true
	self.data = nil
	return nil
}

// Drain rows into memory and close them. The native rows are always
// closed, even on failure.
func materializeRows(rows Rows) (result *memoryRows, err error) {
	defer func() {
		close_err := rows.Close()
		if close_err != nil && err == nil {
			result = nil
			err = &ReleaseError{Err: errors.WithStack(close_err)}
		}
	}()

	columns, err := rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	result = &memoryRows{columns: columns, current: -1}

	column_types, ok := rows.(columnTyper)
	if ok {
		types, err := column_types.ColumnTypes()
		if err == nil {
			result.meta_columns = meta.TableFromColumnTypes("", types).Columns
		}
	}

	if result.meta_columns == nil {
		for _, c := range columns {
			result.meta_columns = append(result.meta_columns,
				meta.NewColumn(c, meta.Other))
		}
	}

	for rows.Next() {
		values := make([]any, len(columns))
		pointers := make([]any, len(columns))
		for idx := range values {
			pointers[idx] = &values[idx]
		}

		err = rows.Scan(pointers...)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		result.data = append(result.data, values)
	}

	err = rows.Err()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	return result, nil
}
