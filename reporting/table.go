package reporting

import (
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/Velocidex/ordereddict"
	"github.com/olekukonko/tablewriter"
	"www.velocidex.com/golang/sqlpager/meta"
	"www.velocidex.com/golang/sqlpager/utils"
)

func newTable(out io.Writer) *tablewriter.Table {
	table := tablewriter.NewWriter(out)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	return table
}

// Render records as a text table. When columns is empty the keys of
// the first record are used.
func OutputRowsToTable(rows []*ordereddict.Dict,
	columns []string, out io.Writer) *tablewriter.Table {
	table := newTable(out)
	if len(columns) > 0 {
		table.SetHeader(columns)
	}

	for _, row := range rows {
		if len(columns) == 0 {
			columns = row.Keys()
			table.SetHeader(columns)
		}

		string_row := []string{}
		for _, key := range columns {
			cell := ""
			value, pres := row.Get(key)
			if pres {
				cell = Stringify(value)
			}
			string_row = append(string_row, cell)
		}

		table.Append(string_row)
	}

	return table
}

// Render the columns of a table.
func OutputTableToTable(table_meta *meta.Table, out io.Writer) *tablewriter.Table {
	table := newTable(out)
	table.SetHeader([]string{"Column", "Type", "Database Type", "Nullable"})
	table.SetCaption(true, table_meta.Name)

	for _, c := range table_meta.Columns {
		table.Append([]string{c.Name, c.Type.String(), c.DatabaseTypeName,
			strconv.FormatBool(c.Nullable)})
	}
	return table
}

func OutputSimpleTablesToTable(
	tables []*meta.SimpleTable, out io.Writer) *tablewriter.Table {
	table := newTable(out)
	table.SetHeader([]string{"Name", "Type"})
	for _, t := range tables {
		table.Append([]string{t.Name, t.Type})
	}
	return table
}

func Stringify(value any) string {
	if utils.IsNil(value) {
		return ""
	}

	switch t := value.(type) {
	case string:
		return t
	case []byte:
		return fmt.Sprintf("0x%x", t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprintf("%v", value)
}
