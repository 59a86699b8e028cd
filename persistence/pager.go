package persistence

import (
	"fmt"

	"github.com/Velocidex/ordereddict"
	"www.velocidex.com/golang/sqlpager/meta"
)

// Count value meaning "read until the cursor is exhausted".
const Unbounded = -1

// The slice of a result to materialize. StartRow is 1 based.
type PagingWindow struct {
	StartRow int
	Count    int
}

func NewPagingWindow(start_row, count int) PagingWindow {
	return PagingWindow{StartRow: start_row, Count: count}.Normalized()
}

func AllRows() PagingWindow {
	return PagingWindow{StartRow: 1, Count: Unbounded}
}

// Clamp StartRow to 1 and fold every negative Count into Unbounded.
func (self PagingWindow) Normalized() PagingWindow {
	if self.StartRow < 1 {
		self.StartRow = 1
	}
	if self.Count < 0 {
		self.Count = Unbounded
	}
	return self
}

func (self PagingWindow) Bounded() bool {
	return self.Count >= 0
}

// The first row index past the window, if there is a bound.
func (self PagingWindow) EndRow() (int, bool) {
	if !self.Bounded() {
		return 0, false
	}
	return self.StartRow + self.Count, true
}

func (self PagingWindow) String() string {
	if !self.Bounded() {
		return fmt.Sprintf("rows %d-", self.StartRow)
	}
	if self.Count == 0 {
		return fmt.Sprintf("rows %d (empty)", self.StartRow)
	}
	return fmt.Sprintf("rows %d-%d", self.StartRow, self.StartRow+self.Count-1)
}

var defaultMapper = NewDefaultRowMapper()

// Map the rows of the window into records, in cursor order.
//
// Rows before StartRow are only skipped when the window is bounded; an
// unbounded window maps everything from the cursor's current position
// and only uses StartRow to number the rows.
//
// The result is all or nothing: on any error no records are returned.
// A nil mapper selects the DefaultRowMapper.
func MapToRows(cursor *Cursor, table *meta.Table,
	window PagingWindow, mapper RowMapper) ([]*ordereddict.Dict, error) {
	window = window.Normalized()
	if mapper == nil {
		mapper = defaultMapper
	}

	if window.Bounded() && window.StartRow > 1 {
		err := ForwardBefore(cursor, window.StartRow)
		if err != nil {
			return nil, err
		}
	}

	end_row, bounded := window.EndRow()

	result := []*ordereddict.Dict{}
	row_index := window.StartRow
	for cursor.Next() {
		if bounded && row_index >= end_row {
			break
		}

		row, err := mapRow(mapper, table, cursor, row_index)
		if err != nil {
			metricMappingFailures.Inc()
			return nil, err
		}

		result = append(result, row)
		row_index++
	}

	err := cursor.Err()
	if err != nil {
		return nil, NewExecutionError("", err)
	}

	metricRowsMapped.Add(float64(len(result)))
	return result, nil
}
