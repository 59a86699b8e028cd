package reporting

import (
	"bytes"
	"testing"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"www.velocidex.com/golang/sqlpager/meta"
)

func TestStringify(t *testing.T) {
	assert.Equal(t, "", Stringify(nil))
	assert.Equal(t, "abc", Stringify("abc"))
	assert.Equal(t, "0x6869", Stringify([]byte("hi")))
	assert.Equal(t, "1.5", Stringify(decimal.RequireFromString("1.50")))
	assert.Equal(t, "0.25", Stringify(0.25))
	assert.Equal(t, "42", Stringify(int64(42)))
	assert.Equal(t, "true", Stringify(true))
	assert.Equal(t, "2020-01-02T03:04:05Z",
		Stringify(time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)))
}

func TestOutputRowsToTable(t *testing.T) {
	rows := []*ordereddict.Dict{
		ordereddict.NewDict().Set("id", int64(1)).Set("name", "alice"),
		ordereddict.NewDict().Set("id", int64(2)).Set("name", nil),
	}

	buffer := &bytes.Buffer{}
	OutputRowsToTable(rows, nil, buffer).Render()

	output := buffer.String()
	assert.Contains(t, output, "id")
	assert.Contains(t, output, "name")
	assert.Contains(t, output, "alice")
	assert.Contains(t, output, "2")

	buffer.Reset()
	table := meta.NewTable("people",
		meta.NewColumn("id", meta.Integer),
		meta.NewColumn("name", meta.Text))
	OutputTableToTable(table, buffer).Render()
	assert.Contains(t, buffer.String(), "integer")
	assert.Contains(t, buffer.String(), "people")

	buffer.Reset()
	OutputSimpleTablesToTable([]*meta.SimpleTable{
		{Name: "people", Type: meta.TABLE_TYPE_TABLE}}, buffer).Render()
	assert.Contains(t, buffer.String(), "TABLE")
}
