package vtesting

import (
	"database/sql"
	"fmt"
	"testing"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
)

// Three rows, ids 1 to 3.
var PeopleFixture = []string{
	`CREATE TABLE people (id INTEGER NOT NULL, name TEXT)`,
	`INSERT INTO people (id, name) VALUES (1, 'a'), (2, 'b'), (3, 'c')`,
}

// A table exercising each semantic type.
var MeasurementsFixture = []string{
	`CREATE TABLE measurements (
        id INTEGER NOT NULL,
        label VARCHAR(20),
        price DECIMAL(10,2),
        ratio REAL,
        active BOOLEAN,
        taken DATE,
        created TIMESTAMP,
        payload BLOB)`,
	`INSERT INTO measurements VALUES
        (1, 'first', '1.50', 0.25, 1, '2020-01-02', '2020-01-02 03:04:05', X'6869'),
        (2, NULL, NULL, NULL, NULL, NULL, NULL, NULL)`,
}

// Returns the url of a fresh, private in memory sqlite database. The
// database lives as long as at least one connection to it is open.
func SqliteMemoryUrl() string {
	return fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.New().String())
}

// Open an in memory sqlite database loaded with the given statements.
// The handle is closed when the test ends.
func OpenTestDB(t testing.TB, statements ...string) *sql.DB {
	db, err := sql.Open("sqlite3", SqliteMemoryUrl())
	require.NoError(t, err)

	// Keep one idle connection around so the database is not dropped
	// between queries.
	db.SetMaxIdleConns(2)

	t.Cleanup(func() { db.Close() })

	for _, statement := range statements {
		_, err := db.Exec(statement)
		require.NoError(t, err, statement)
	}
	return db
}
