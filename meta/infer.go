package meta

import (
	"database/sql"
	"reflect"
	"strings"
	"time"
)

var (
	database_type_names = map[string]SemanticType{
		"INT":       Integer,
		"INTEGER":   Integer,
		"TINYINT":   Integer,
		"SMALLINT":  Integer,
		"MEDIUMINT": Integer,
		"BIGINT":    Integer,
		"INT2":      Integer,
		"INT4":      Integer,
		"INT8":      Integer,
		"SERIAL":    Integer,
		"BIGSERIAL": Integer,
		"YEAR":      Integer,

		"REAL":             Float,
		"FLOAT":            Float,
		"FLOAT4":           Float,
		"FLOAT8":           Float,
		"DOUBLE":           Float,
		"DOUBLE PRECISION": Float,

		"DECIMAL": Decimal,
		"NUMERIC": Decimal,
		"NUMBER":  Decimal,
		"MONEY":   Decimal,

		"CHAR":              Text,
		"VARCHAR":           Text,
		"NCHAR":             Text,
		"NVARCHAR":          Text,
		"CHARACTER":         Text,
		"CHARACTER VARYING": Text,
		"BPCHAR":            Text,
		"TEXT":              Text,
		"TINYTEXT":          Text,
		"MEDIUMTEXT":        Text,
		"LONGTEXT":          Text,
		"CLOB":              Text,
		"NAME":              Text,
		"UUID":              Text,
		"JSON":              Text,
		"JSONB":             Text,
		"ENUM":              Text,
		"SET":               Text,

		"BOOL":    Boolean,
		"BOOLEAN": Boolean,
		"BIT":     Boolean,

		"BLOB":       Binary,
		"TINYBLOB":   Binary,
		"MEDIUMBLOB": Binary,
		"LONGBLOB":   Binary,
		"BINARY":     Binary,
		"VARBINARY":  Binary,
		"BYTEA":      Binary,

		"DATE": Date,

		"TIME":   Time,
		"TIMETZ": Time,

		"DATETIME":    Timestamp,
		"TIMESTAMP":   Timestamp,
		"TIMESTAMPTZ": Timestamp,

		// These would otherwise match the INT affinity rule below.
		"INTERVAL": Other,
		"POINT":    Other,
	}

	time_type  = reflect.TypeOf(time.Time{})
	bytes_type = reflect.TypeOf([]byte{})
	scan_types = map[reflect.Type]SemanticType{
		reflect.TypeOf(sql.NullInt64{}):   Integer,
		reflect.TypeOf(sql.NullInt32{}):   Integer,
		reflect.TypeOf(sql.NullInt16{}):   Integer,
		reflect.TypeOf(sql.NullByte{}):    Integer,
		reflect.TypeOf(sql.NullFloat64{}): Float,
		reflect.TypeOf(sql.NullString{}):  Text,
		reflect.TypeOf(sql.NullBool{}):    Boolean,
		reflect.TypeOf(sql.NullTime{}):    Timestamp,
		reflect.TypeOf(sql.RawBytes{}):    Binary,
	}
)

// Map a driver reported type name to a semantic type. Names are
// matched after stripping length/precision suffixes and the UNSIGNED
// modifier. Unknown names fall back to sqlite style affinity rules.
func SemanticTypeFromDatabaseTypeName(name string) SemanticType {
	name = strings.ToUpper(strings.TrimSpace(name))
	if name == "" {
		return Other
	}

	idx := strings.IndexByte(name, '(')
	if idx >= 0 {
		name = strings.TrimSpace(name[:idx])
	}
	name = strings.TrimSpace(strings.TrimSuffix(name, "UNSIGNED"))

	// Postgres reports arrays as _INT4 etc. - these are opaque to us.
	if strings.HasPrefix(name, "_") {
		return Other
	}

	result, pres := database_type_names[name]
	if pres {
		return result
	}

	switch {
	case strings.Contains(name, "INT"):
		return Integer

	case strings.Contains(name, "CHAR"),
		strings.Contains(name, "CLOB"),
		strings.Contains(name, "TEXT"):
		return Text

	case strings.Contains(name, "BLOB"):
		return Binary

	case strings.Contains(name, "REAL"),
		strings.Contains(name, "FLOA"),
		strings.Contains(name, "DOUB"):
		return Float

	case strings.HasPrefix(name, "TIMESTAMP"):
		return Timestamp
	}

	return Other
}

func semanticTypeFromScanType(column_type *sql.ColumnType) SemanticType {
	scan_type := column_type.ScanType()
	if scan_type == nil {
		return Other
	}

	result, pres := scan_types[scan_type]
	if pres {
		return result
	}

	if scan_type == time_type {
		return Timestamp
	}

	if scan_type == bytes_type {
		return Binary
	}

	switch scan_type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return Integer

	case reflect.Float32, reflect.Float64:
		return Float

	case reflect.String:
		return Text

	case reflect.Bool:
		return Boolean
	}

	return Other
}
