package meta

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/sqlpager/vtesting"
)

func TestSemanticTypeFromDatabaseTypeName(t *testing.T) {
	for name, expected := range map[string]SemanticType{
		"INTEGER":            Integer,
		"int unsigned":       Integer,
		"BIGINT UNSIGNED":    Integer,
		"UNSIGNED BIG INT":   Integer,
		"VARCHAR(20)":        Text,
		"varchar":            Text,
		"NATIVE CHARACTER":   Text,
		"DECIMAL(10,2)":      Decimal,
		"NUMERIC":            Decimal,
		"REAL":               Float,
		"DOUBLE PRECISION":   Float,
		"BOOLEAN":            Boolean,
		"BLOB":               Binary,
		"BYTEA":              Binary,
		"DATE":               Date,
		"TIME":               Time,
		"DATETIME":           Timestamp,
		"TIMESTAMP":          Timestamp,
		"TIMESTAMP WITHOUT":  Timestamp,
		"INTERVAL":           Other,
		"_INT4":              Other,
		"GEOMETRY":           Other,
		"":                   Other,
	} {
		assert.Equal(t, expected, SemanticTypeFromDatabaseTypeName(name), name)
	}
}

func TestSemanticTypeNames(t *testing.T) {
	for _, semantic_type := range []SemanticType{
		Other, Integer, Float, Decimal, Text, Boolean,
		Binary, Date, Time, Timestamp} {
		parsed, ok := ParseSemanticType(semantic_type.String())
		assert.True(t, ok)
		assert.Equal(t, semantic_type, parsed)
	}

	_, ok := ParseSemanticType("money")
	assert.False(t, ok)

	serialized, err := Decimal.MarshalText()
	require.NoError(t, err)
	assert.Equal(t, "decimal", string(serialized))
}

func TestTableGetColumn(t *testing.T) {
	table := NewTable("people",
		NewColumn("id", Integer),
		NewColumn("Name", Text))

	assert.Equal(t, []string{"id", "Name"}, table.ColumnNames())

	column, ok := table.GetColumn("name")
	require.True(t, ok)
	assert.Equal(t, "Name", column.Name)

	_, ok = table.GetColumn("missing")
	assert.False(t, ok)
}

func TestSortTables(t *testing.T) {
	tables := []*SimpleTable{
		{Name: "b"}, {Name: "Apple"}, {Name: "apple"}, {Name: "C"}}
	SortTables(tables, ByTableName)

	names := []string{}
	for _, t := range tables {
		names = append(names, t.Name)
	}
	assert.Equal(t, []string{"Apple", "apple", "b", "C"}, names)

	// Any ordering can be plugged in.
	SortTables(tables, func(a, b *SimpleTable) int {
		return -ByTableName(a, b)
	})
	assert.Equal(t, "C", tables[0].Name)
}

func TestFindTablesByKeyword(t *testing.T) {
	tables := []*SimpleTable{
		{Name: "people"}, {Name: "PEOPLE_archive"}, {Name: "orders"}}

	assert.Equal(t, 2, len(FindTablesByKeyword(tables, "peop")))
	assert.Equal(t, 1, len(FindTablesByKeyword(tables, " ORD ")))
	assert.Equal(t, 3, len(FindTablesByKeyword(tables, "")))
	assert.Equal(t, 0, len(FindTablesByKeyword(tables, "xyz")))
}

func TestResolverSqlite(t *testing.T) {
	db := vtesting.OpenTestDB(t, append(vtesting.PeopleFixture,
		vtesting.MeasurementsFixture...)...)
	_, err := db.Exec(`CREATE VIEW adults AS SELECT * FROM people`)
	require.NoError(t, err)

	resolver := NewResolver("sqlite3")
	ctx := context.Background()

	table, err := resolver.GetTable(ctx, db, "measurements")
	require.NoError(t, err)
	assert.Equal(t, "measurements", table.Name)

	types := []SemanticType{}
	for _, c := range table.Columns {
		types = append(types, c.Type)
	}
	assert.Equal(t, []SemanticType{Integer, Text, Decimal, Float,
		Boolean, Date, Timestamp, Binary}, types)

	_, err = resolver.GetTable(ctx, db, "no_such_table")
	assert.Error(t, err)

	_, err = resolver.GetTable(ctx, db, "")
	assert.Error(t, err)

	tables, err := resolver.ListTables(ctx, db)
	require.NoError(t, err)
	assert.Equal(t, []*SimpleTable{
		{Name: "adults", Type: TABLE_TYPE_VIEW},
		{Name: "measurements", Type: TABLE_TYPE_TABLE},
		{Name: "people", Type: TABLE_TYPE_TABLE},
	}, tables)

	_, err = NewResolver("oracle").ListTables(ctx, db)
	assert.Error(t, err)
}

func TestQuoteIdentifier(t *testing.T) {
	assert.Equal(t, "`a``b`", NewResolver("mysql").QuoteIdentifier("a`b"))
	assert.Equal(t, `"a""b"`, NewResolver("postgres").QuoteIdentifier(`a"b`))
	assert.Equal(t, `"people"`, NewResolver("sqlite3").QuoteIdentifier("people"))
}
