package persistence

import (
	"fmt"

	"github.com/pkg/errors"
)

var (
	// Sentinels for errors.Is(). Every typed error below unwraps to
	// both its sentinel and its cause.
	ErrExecution  = errors.New("execution failure")
	ErrMapping    = errors.New("mapping failure")
	ErrRelease    = errors.New("resource release failure")
	ErrConversion = errors.New("conversion failure")
)

// The data source failed to execute a query, count or update.
type ExecutionError struct {
	Statement string
	Err       error
}

func (self *ExecutionError) Error() string {
	return fmt.Sprintf("%v: %v", ErrExecution, self.Err)
}

func (self *ExecutionError) Unwrap() []error {
	return []error{ErrExecution, self.Err}
}

func (self *ExecutionError) Cause() error {
	return self.Err
}

func NewExecutionError(statement string, err error) *ExecutionError {
	return &ExecutionError{Statement: statement, Err: errors.WithStack(err)}
}

// A positioned row could not be turned into a record.
type MappingError struct {
	// 1 based row number within the result.
	RowIndex int

	// Empty when the failure is not tied to a column.
	Column string
	Err    error
}

func (self *MappingError) Error() string {
	if self.Column != "" {
		return fmt.Sprintf("%v: row %d column %q: %v",
			ErrMapping, self.RowIndex, self.Column, self.Err)
	}
	return fmt.Sprintf("%v: row %d: %v", ErrMapping, self.RowIndex, self.Err)
}

func (self *MappingError) Unwrap() []error {
	return []error{ErrMapping, self.Err}
}

func (self *MappingError) Cause() error {
	return self.Err
}

func NewMappingError(row_index int, column string, err error) *MappingError {
	return &MappingError{
		RowIndex: row_index,
		Column:   column,
		Err:      errors.WithStack(err),
	}
}

// Closing the cursor or its native resources failed.
type ReleaseError struct {
	Err error
}

func (self *ReleaseError) Error() string {
	return fmt.Sprintf("%v: %v", ErrRelease, self.Err)
}

func (self *ReleaseError) Unwrap() []error {
	return []error{ErrRelease, self.Err}
}

func (self *ReleaseError) Cause() error {
	return self.Err
}

func conversionError(raw interface{}, target string) error {
	return errors.Wrapf(ErrConversion, "can not convert %T to %v", raw, target)
}
