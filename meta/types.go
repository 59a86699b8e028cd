// Table metadata used to drive generic row mapping.

package meta

import (
	"database/sql"
	"strings"
)

// The logical type of a column, independent of how a particular
// driver represents it.
type SemanticType int

const (
	Other SemanticType = iota
	Integer
	Float
	Decimal
	Text
	Boolean
	Binary
	Date
	Time
	Timestamp
)

var semantic_type_names = map[SemanticType]string{
	Other:     "other",
	Integer:   "integer",
	Float:     "float",
	Decimal:   "decimal",
	Text:      "text",
	Boolean:   "boolean",
	Binary:    "binary",
	Date:      "date",
	Time:      "time",
	Timestamp: "timestamp",
}

func (self SemanticType) String() string {
	name, pres := semantic_type_names[self]
	if !pres {
		return "other"
	}
	return name
}

func (self SemanticType) MarshalText() ([]byte, error) {
	return []byte(self.String()), nil
}

func ParseSemanticType(name string) (SemanticType, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for k, v := range semantic_type_names {
		if v == name {
			return k, true
		}
	}
	return Other, false
}

type Column struct {
	Name string       `json:"name"`
	Type SemanticType `json:"type"`

	// The type name as reported by the driver (e.g. VARCHAR, INT8).
	DatabaseTypeName string `json:"database_type,omitempty"`
	Nullable         bool   `json:"nullable"`
}

func NewColumn(name string, column_type SemanticType) *Column {
	return &Column{Name: name, Type: column_type, Nullable: true}
}

type Table struct {
	Name    string    `json:"name"`
	Columns []*Column `json:"columns"`
}

func NewTable(name string, columns ...*Column) *Table {
	return &Table{Name: name, Columns: columns}
}

func (self *Table) ColumnNames() []string {
	result := make([]string, 0, len(self.Columns))
	for _, c := range self.Columns {
		result = append(result, c.Name)
	}
	return result
}

func (self *Table) GetColumn(name string) (*Column, bool) {
	for _, c := range self.Columns {
		if c.Name == name {
			return c, true
		}
	}

	// Drivers disagree on identifier case.
	for _, c := range self.Columns {
		if strings.EqualFold(c.Name, name) {
			return c, true
		}
	}
	return nil, false
}

// Build a column descriptor from what the driver tells us about a
// result column.
func ColumnFromColumnType(column_type *sql.ColumnType) *Column {
	result := &Column{
		Name:             column_type.Name(),
		DatabaseTypeName: column_type.DatabaseTypeName(),
		Nullable:         true,
	}

	nullable, ok := column_type.Nullable()
	if ok {
		result.Nullable = nullable
	}

	result.Type = SemanticTypeFromDatabaseTypeName(result.DatabaseTypeName)
	if result.Type == Other {
		result.Type = semanticTypeFromScanType(column_type)
	}
	return result
}

func TableFromColumnTypes(name string, column_types []*sql.ColumnType) *Table {
	result := &Table{Name: name}
	for _, c := range column_types {
		result.Columns = append(result.Columns, ColumnFromColumnType(c))
	}
	return result
}
