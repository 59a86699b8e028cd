package persistence

import (
	"fmt"
	"strings"

	"www.velocidex.com/golang/sqlpager/constants"
	"www.velocidex.com/golang/sqlpager/meta"
)

// How the result of a query is held while it is paged.
type ResultMode int

const (
	// Rows are pulled from the server as the cursor advances.
	ResultStreamed ResultMode = iota

	// All rows are read into memory and the native result released
	// before paging starts.
	ResultMaterialized
)

func (self ResultMode) String() string {
	switch self {
	case ResultMaterialized:
		return constants.RESULT_MODE_MATERIALIZED
	default:
		return constants.RESULT_MODE_STREAMED
	}
}

func ParseResultMode(name string) (ResultMode, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", constants.RESULT_MODE_STREAMED:
		return ResultStreamed, nil
	case constants.RESULT_MODE_MATERIALIZED:
		return ResultMaterialized, nil
	}
	return ResultStreamed, fmt.Errorf("unknown result mode %q", name)
}

// A bound parameter with its declared type. The value is coerced to
// the type's normalized representation before it is handed to the
// driver.
type SqlParamValue struct {
	Value any
	Type  meta.SemanticType
}

// An already built statement and its parameters.
type Sql struct {
	Statement string
	Params    []SqlParamValue
}

func NewSql(statement string, params ...SqlParamValue) *Sql {
	return &Sql{Statement: statement, Params: params}
}

func (self *Sql) Param(value any, param_type meta.SemanticType) *Sql {
	self.Params = append(self.Params, SqlParamValue{
		Value: value, Type: param_type})
	return self
}

func (self *Sql) String() string {
	return self.Statement
}

// The driver arguments for the parameters.
func (self *Sql) Args() ([]any, error) {
	result := make([]any, 0, len(self.Params))
	resolver := ColumnTypeResolver{}
	for idx, p := range self.Params {
		value, err := resolver.Normalize(p.Value, p.Type)
		if err != nil {
			return nil, fmt.Errorf("parameter %d: %w", idx+1, err)
		}
		result = append(result, value)
	}
	return result, nil
}
