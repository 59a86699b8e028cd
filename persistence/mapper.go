package persistence

import (
	"github.com/Velocidex/ordereddict"
	"github.com/pkg/errors"
	"www.velocidex.com/golang/sqlpager/meta"
)

// Maps the row the cursor is currently positioned on into a record.
// Implementations must not advance the cursor.
type RowMapper interface {
	MapRow(table *meta.Table, cursor *Cursor, row_index int) (*ordereddict.Dict, error)
}

type RowMapperFunc func(
	table *meta.Table, cursor *Cursor, row_index int) (*ordereddict.Dict, error)

func (self RowMapperFunc) MapRow(
	table *meta.Table, cursor *Cursor, row_index int) (*ordereddict.Dict, error) {
	return self(table, cursor, row_index)
}

// Reads every column of the table, in table order, and normalizes it
// according to its semantic type.
type DefaultRowMapper struct {
	Resolver ValueNormalizer
}

func NewDefaultRowMapper() *DefaultRowMapper {
	return &DefaultRowMapper{Resolver: ColumnTypeResolver{}}
}

func (self *DefaultRowMapper) MapRow(
	table *meta.Table, cursor *Cursor, row_index int) (*ordereddict.Dict, error) {
	if table == nil {
		return nil, NewMappingError(row_index, "",
			errors.New("no table metadata"))
	}

	resolver := self.Resolver
	if resolver == nil {
		resolver = ColumnTypeResolver{}
	}

	row := ordereddict.NewDict()
	for _, column := range table.Columns {
		raw, err := cursor.Value(column.Name)
		if err != nil {
			return nil, NewMappingError(row_index, column.Name, err)
		}

		value, err := resolver.Normalize(raw, column.Type)
		if err != nil {
			return nil, NewMappingError(row_index, column.Name, err)
		}

		row.Set(column.Name, value)
	}

	return row, nil
}

// Call the mapper and make sure whatever it returns is a well formed
// mapping result.
func mapRow(mapper RowMapper, table *meta.Table,
	cursor *Cursor, row_index int) (*ordereddict.Dict, error) {
	position := cursor.Position()

	row, err := mapper.MapRow(table, cursor, row_index)
	if err != nil {
		var mapping_err *MappingError
		if errors.As(err, &mapping_err) {
			return nil, err
		}
		return nil, NewMappingError(row_index, "", err)
	}

	if cursor.Position() != position {
		return nil, NewMappingError(row_index, "",
			errors.New("row mapper advanced the cursor"))
	}

	if row == nil {
		return nil, NewMappingError(row_index, "",
			errors.New("row mapper returned no record"))
	}

	return row, nil
}
