package persistence

import (
	"database/sql"
	"strings"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/sqlpager/meta"
)

// The subset of *sql.Rows the pager relies on. Implementations are
// forward only: there is no seeking, only Next().
type Rows interface {
	Next() bool
	Scan(dest ...any) error
	Columns() ([]string, error)
	Err() error
	Close() error
}

var _ Rows = (*sql.Rows)(nil)

// Rows that can describe their columns (e.g. *sql.Rows).
type columnTyper interface {
	ColumnTypes() ([]*sql.ColumnType, error)
}

// Rows that already carry resolved column descriptors.
type metaColumner interface {
	MetaColumns() []*meta.Column
}

// A live, forward moving handle over a query result. The cursor is
// owned by a single operation and must be closed exactly once; Close
// is safe to call again but only the first call releases anything.
//
// Values of the current row are scanned lazily on first access, so
// rows skipped with Next() are never materialized.
type Cursor struct {
	rows Rows

	columns []string
	exact   map[string]int
	folded  map[string]int

	values   []any
	scanned  bool
	position int
	closed   bool
}

func NewCursor(rows Rows) *Cursor {
	metricOpenCursors.Inc()
	return &Cursor{rows: rows}
}

// Advance to the next row. Returns false when the result is exhausted,
// the cursor is closed or the driver failed (see Err()).
func (self *Cursor) Next() bool {
	if self.closed {
		return false
	}

	self.scanned = false
	if !self.rows.Next() {
		return false
	}
	self.position++
	return true
}

// The number of rows advanced over so far. The current row is at this
// position (1 based).
func (self *Cursor) Position() int {
	return self.position
}

func (self *Cursor) Err() error {
	return self.rows.Err()
}

func (self *Cursor) Closed() bool {
	return self.closed
}

func (self *Cursor) Columns() ([]string, error) {
	if self.columns != nil {
		return self.columns, nil
	}

	columns, err := self.rows.Columns()
	if err != nil {
		return nil, errors.WithStack(err)
	}

	self.exact = make(map[string]int, len(columns))
	self.folded = make(map[string]int, len(columns))
	for idx, name := range columns {
		// First one wins for duplicated names.
		_, pres := self.exact[name]
		if !pres {
			self.exact[name] = idx
		}

		lower := strings.ToLower(name)
		_, pres = self.folded[lower]
		if !pres {
			self.folded[lower] = idx
		}
	}
	self.columns = columns
	return columns, nil
}

// The raw driver values of the current row, in result column order.
// Repeated calls on the same row return the same values.
func (self *Cursor) Values() ([]any, error) {
	if self.closed {
		return nil, errors.New("cursor is closed")
	}

	if self.position == 0 {
		return nil, errors.New("cursor is not positioned on a row")
	}

	if self.scanned {
		return self.values, nil
	}

	columns, err := self.Columns()
	if err != nil {
		return nil, err
	}

	values := make([]any, len(columns))
	pointers := make([]any, len(columns))
	for idx := range values {
		pointers[idx] = &values[idx]
	}

	err = self.rows.Scan(pointers...)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	self.values = values
	self.scanned = true
	return values, nil
}

// Read the raw value of a column of the current row. Names are matched
// exactly first, then case insensitively.
func (self *Cursor) Value(name string) (any, error) {
	values, err := self.Values()
	if err != nil {
		return nil, err
	}

	idx, pres := self.exact[name]
	if !pres {
		idx, pres = self.folded[strings.ToLower(name)]
	}

	if !pres {
		return nil, errors.Errorf("no column named %q in result", name)
	}

	return values[idx], nil
}

// Describe the result columns as a table. Used when the caller has no
// table metadata of its own.
func (self *Cursor) Table(name string) (*meta.Table, error) {
	switch t := self.rows.(type) {
	case metaColumner:
		return meta.NewTable(name, t.MetaColumns()...), nil

	case columnTyper:
		column_types, err := t.ColumnTypes()
		if err == nil {
			return meta.TableFromColumnTypes(name, column_types), nil
		}
	}

	columns, err := self.Columns()
	if err != nil {
		return nil, err
	}

	result := meta.NewTable(name)
	for _, c := range columns {
		result.Columns = append(result.Columns, meta.NewColumn(c, meta.Other))
	}
	return result, nil
}

// Release the underlying result. Only the first call has any effect.
func (self *Cursor) Close() error {
	if self.closed {
		return nil
	}
	self.closed = true
	self.values = nil
	metricOpenCursors.Dec()

	err := self.rows.Close()
	if err != nil {
		return &ReleaseError{Err: errors.WithStack(err)}
	}
	return nil
}
