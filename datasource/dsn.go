package datasource

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/pkg/errors"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
)

// Build the driver connection string for a schema. Credentials held
// separately in the schema override any in the url.
func DataSourceName(schema *config_proto.SchemaConfig) (string, error) {
	switch schema.Driver {
	case constants.DRIVER_MYSQL:
		return mysqlDataSourceName(schema)

	case constants.DRIVER_POSTGRES:
		return postgresDataSourceName(schema)

	case constants.DRIVER_SQLITE:
		return schema.Url, nil
	}

	return "", fmt.Errorf("Unsupported driver %v", schema.Driver)
}

func mysqlDataSourceName(schema *config_proto.SchemaConfig) (string, error) {
	cfg, err := mysql.ParseDSN(schema.Url)
	if err != nil {
		return "", errors.Wrapf(err, "Schema %v", schema.Id)
	}

	if schema.User != "" {
		cfg.User = schema.User
		cfg.Passwd = schema.Password
	}

	// Return DATE and DATETIME as time.Time rather than []byte.
	cfg.ParseTime = true

	return cfg.FormatDSN(), nil
}

func postgresDataSourceName(schema *config_proto.SchemaConfig) (string, error) {
	if schema.User == "" {
		return schema.Url, nil
	}

	if strings.HasPrefix(schema.Url, "postgres://") ||
		strings.HasPrefix(schema.Url, "postgresql://") {
		parsed, err := url.Parse(schema.Url)
		if err != nil {
			return "", errors.Wrapf(err, "Schema %v", schema.Id)
		}
		parsed.User = url.UserPassword(schema.User, schema.Password)
		return parsed.String(), nil
	}

	// key=value connection string
	return fmt.Sprintf("%s user=%s password=%s", schema.Url,
		quoteValue(schema.User), quoteValue(schema.Password)), nil
}

func quoteValue(value string) string {
	value = strings.ReplaceAll(value, `\`, `\\`)
	value = strings.ReplaceAll(value, `'`, `\'`)
	return "'" + value + "'"
}

// The connection string with any password removed, for logging.
func redacted(schema *config_proto.SchemaConfig) string {
	switch schema.Driver {
	case constants.DRIVER_MYSQL:
		cfg, err := mysql.ParseDSN(schema.Url)
		if err == nil {
			cfg.Passwd = ""
			return cfg.FormatDSN()
		}

	case constants.DRIVER_POSTGRES:
		parsed, err := url.Parse(schema.Url)
		if err == nil && parsed.User != nil {
			parsed.User = url.User(parsed.User.Username())
			return parsed.String()
		}
	}
	return schema.Url
}
