package vtesting

import (
	"errors"
	"fmt"
)

// An in memory forward only result for tests. Records how it is used
// so tests can check how many rows were scanned and whether it was
// released.
type FakeRows struct {
	ColumnNames []string
	Data        [][]any

	// Returned from Err() once the rows are exhausted.
	IterErr error

	// Returned from Close()
	CloseErr error

	// Returned from Columns()
	ColumnsErr error

	// Fail Scan() on this 1 based row.
	FailScanAt int

	current    int
	NextCalls  int
	ScanCalls  int
	CloseCalls int
}

func NewFakeRows(columns []string, data ...[]any) *FakeRows {
	return &FakeRows{ColumnNames: columns, Data: data}
}

func (self *FakeRows) Next() bool {
	self.NextCalls++
	if self.CloseCalls > 0 || self.current >= len(self.Data) {
		self.current = len(self.Data) + 1
		return false
	}
	self.current++
	return true
}

func (self *FakeRows) Scan(dest ...any) error {
	self.ScanCalls++
	if self.CloseCalls > 0 {
		return errors.New("rows are closed")
	}

	if self.current < 1 || self.current > len(self.Data) {
		return errors.New("no current row")
	}

	if self.FailScanAt == self.current {
		return fmt.Errorf("scan failed on row %d", self.current)
	}

	row := self.Data[self.current-1]
	if len(dest) != len(row) {
		return fmt.Errorf("expected %d destination arguments in Scan, not %d",
			len(row), len(dest))
	}

	for idx, d := range dest {
		target, ok := d.(*any)
		if !ok {
			return fmt.Errorf("unsupported Scan destination %T", d)
		}
		*target = row[idx]
	}
	return nil
}

func (self *FakeRows) Columns() ([]string, error) {
	if self.ColumnsErr != nil {
		return nil, self.ColumnsErr
	}
	return self.ColumnNames, nil
}

func (self *FakeRows) Err() error {
	if self.current > len(self.Data) {
		return self.IterErr
	}
	return nil
}

func (self *FakeRows) Close() error {
	self.CloseCalls++
	return self.CloseErr
}

// The 1 based row the fake is positioned on.
func (self *FakeRows) Current() int {
	return self.current
}
