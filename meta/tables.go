package meta

import (
	"slices"
	"strings"
)

// A table name as listed from the database catalog, without its
// columns.
type SimpleTable struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

const (
	TABLE_TYPE_TABLE = "TABLE"
	TABLE_TYPE_VIEW  = "VIEW"
)

func normalizeTableType(table_type string) string {
	table_type = strings.ToUpper(strings.TrimSpace(table_type))
	switch table_type {
	case "BASE TABLE", "TABLE", "":
		return TABLE_TYPE_TABLE
	}
	return table_type
}

// Orders tables by name, case insensitive, then by exact name so the
// ordering is total.
func ByTableName(a, b *SimpleTable) int {
	res := strings.Compare(strings.ToLower(a.Name), strings.ToLower(b.Name))
	if res != 0 {
		return res
	}
	return strings.Compare(a.Name, b.Name)
}

func SortTables(tables []*SimpleTable, cmp func(a, b *SimpleTable) int) {
	slices.SortStableFunc(tables, cmp)
}

// Keep only the tables whose name contains the keyword (case
// insensitive). An empty keyword keeps everything.
func FindTablesByKeyword(tables []*SimpleTable, keyword string) []*SimpleTable {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	if keyword == "" {
		return tables
	}

	result := make([]*SimpleTable, 0, len(tables))
	for _, t := range tables {
		if strings.Contains(strings.ToLower(t.Name), keyword) {
			result = append(result, t)
		}
	}
	return result
}
