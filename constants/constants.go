package constants

var (
	VERSION = "0.1.0"

	// Environment variable consulted for the config file.
	SQLPAGER_CONFIG = "SQLPAGER_CONFIG"
)

const (
	DRIVER_SQLITE   = "sqlite3"
	DRIVER_MYSQL    = "mysql"
	DRIVER_POSTGRES = "postgres"

	RESULT_MODE_STREAMED     = "streamed"
	RESULT_MODE_MATERIALIZED = "materialized"

	DEFAULT_PAGE_SIZE     = 50
	DEFAULT_CACHE_TTL     = 600
	DEFAULT_CACHE_SIZE    = 1000
	DEFAULT_QUERY_TIMEOUT = 30
	DEFAULT_MAX_OPEN      = 10
)

var SUPPORTED_DRIVERS = []string{
	DRIVER_SQLITE, DRIVER_MYSQL, DRIVER_POSTGRES,
}
