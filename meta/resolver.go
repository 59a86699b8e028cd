package meta

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"github.com/pkg/errors"
	"www.velocidex.com/golang/sqlpager/constants"
)

// Anything we can run a query on: *sql.DB, *sql.Conn or *sql.Tx.
type Queryer interface {
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
}

var (
	list_tables_queries = map[string]string{
		constants.DRIVER_SQLITE: `
SELECT name, type FROM sqlite_master
WHERE type IN ('table', 'view') AND name NOT LIKE 'sqlite_%'`,

		constants.DRIVER_MYSQL: `
SELECT table_name, table_type FROM information_schema.tables
WHERE table_schema = DATABASE()`,

		constants.DRIVER_POSTGRES: `
SELECT table_name, table_type FROM information_schema.tables
WHERE table_schema = current_schema()`,
	}
)

// Discovers table metadata from a live connection. The resolver
// relies only on what the driver reports about result columns so it
// works the same way for every supported driver.
type Resolver struct {
	driver string
}

func NewResolver(driver string) *Resolver {
	return &Resolver{driver: driver}
}

func (self *Resolver) Driver() string {
	return self.driver
}

func (self *Resolver) QuoteIdentifier(name string) string {
	switch self.driver {
	case constants.DRIVER_MYSQL:
		return "`" + strings.ReplaceAll(name, "`", "``") + "`"
	default:
		return `"` + strings.ReplaceAll(name, `"`, `""`) + `"`
	}
}

// Fetch the column layout of a table with an empty select.
func (self *Resolver) GetTable(
	ctx context.Context, cn Queryer, table_name string) (*Table, error) {
	if table_name == "" {
		return nil, errors.New("GetTable: table name required")
	}

	query := fmt.Sprintf("SELECT * FROM %s WHERE 1=0",
		self.QuoteIdentifier(table_name))

	rows, err := cn.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrapf(err, "GetTable %v", table_name)
	}
	defer rows.Close()

	column_types, err := rows.ColumnTypes()
	if err != nil {
		return nil, errors.Wrapf(err, "GetTable %v", table_name)
	}

	return TableFromColumnTypes(table_name, column_types), nil
}

func (self *Resolver) ListTables(
	ctx context.Context, cn Queryer) ([]*SimpleTable, error) {
	query, pres := list_tables_queries[self.driver]
	if !pres {
		return nil, fmt.Errorf("ListTables: unsupported driver %v", self.driver)
	}

	rows, err := cn.QueryContext(ctx, query)
	if err != nil {
		return nil, errors.Wrap(err, "ListTables")
	}
	defer rows.Close()

	result := []*SimpleTable{}
	for rows.Next() {
		var name, table_type sql.NullString
		err = rows.Scan(&name, &table_type)
		if err != nil {
			return nil, errors.Wrap(err, "ListTables")
		}

		result = append(result, &SimpleTable{
			Name: name.String,
			Type: normalizeTableType(table_type.String),
		})
	}

	err = rows.Err()
	if err != nil {
		return nil, errors.Wrap(err, "ListTables")
	}

	SortTables(result, ByTableName)
	return result, nil
}
