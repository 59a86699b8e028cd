package persistence

import (
	"bytes"
	"database/sql"
	"fmt"
	"math"
	"math/big"
	"reflect"
	"strconv"
	"strings"
	"time"

	"github.com/araddon/dateparse"
	"github.com/shopspring/decimal"
	"www.velocidex.com/golang/sqlpager/meta"
	"www.velocidex.com/golang/sqlpager/utils"
)

// Converts raw driver values into the normalized representation of a
// semantic type.
type ValueNormalizer interface {
	Normalize(raw any, column_type meta.SemanticType) (any, error)
}

// The conversion rules depend only on the semantic type, never on the
// driver, so equal logical values normalize to equal Go values:
//
//	Integer   -> int64
//	Float     -> float64
//	Decimal   -> decimal.Decimal (canonical exponent)
//	Text      -> string
//	Boolean   -> bool
//	Binary    -> []byte (always a fresh copy)
//	Date      -> time.Time at midnight UTC
//	Time      -> time.Time in UTC
//	Timestamp -> time.Time in UTC
//	Other     -> passed through ([]byte copied)
//
// NULL is nil for every type.
type ColumnTypeResolver struct{}

func (self ColumnTypeResolver) Normalize(
	raw any, column_type meta.SemanticType) (any, error) {
	raw = unwrapNull(raw)
	if raw == nil {
		return nil, nil
	}

	switch column_type {
	case meta.Integer:
		return toInt64(raw)

	case meta.Float:
		return toFloat64(raw)

	case meta.Decimal:
		return toDecimal(raw)

	case meta.Text:
		return toText(raw), nil

	case meta.Boolean:
		return toBool(raw)

	case meta.Binary:
		return toBinary(raw)

	case meta.Date:
		t, err := toTime(raw)
		if err != nil {
			return nil, err
		}
		// A date has no zone - keep the calendar day as given.
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil

	case meta.Time, meta.Timestamp:
		t, err := toTime(raw)
		if err != nil {
			return nil, err
		}
		return t.UTC(), nil

	default:
		b, ok := raw.([]byte)
		if ok {
			return bytes.Clone(b), nil
		}
		return raw, nil
	}
}

// Strip sql.Null* wrappers and pointers.
func unwrapNull(raw any) any {
	switch t := raw.(type) {
	case nil:
		return nil
	case sql.NullString:
		if !t.Valid {
			return nil
		}
		return t.String
	case sql.NullInt64:
		if !t.Valid {
			return nil
		}
		return t.Int64
	case sql.NullInt32:
		if !t.Valid {
			return nil
		}
		return t.Int32
	case sql.NullInt16:
		if !t.Valid {
			return nil
		}
		return t.Int16
	case sql.NullByte:
		if !t.Valid {
			return nil
		}
		return t.Byte
	case sql.NullFloat64:
		if !t.Valid {
			return nil
		}
		return t.Float64
	case sql.NullBool:
		if !t.Valid {
			return nil
		}
		return t.Bool
	case sql.NullTime:
		if !t.Valid {
			return nil
		}
		return t.Time
	case sql.RawBytes:
		return []byte(t)
	}

	if utils.IsNil(raw) {
		// Typed nil pointers, nil slices etc. A nil []byte is how
		// drivers report NULL blobs.
		return nil
	}

	value := reflect.ValueOf(raw)
	if value.Kind() == reflect.Ptr {
		return unwrapNull(value.Elem().Interface())
	}
	return raw
}

func toInt64(raw any) (any, error) {
	switch t := raw.(type) {
	case int64:
		return t, nil
	case int:
		return int64(t), nil
	case int32:
		return int64(t), nil
	case int16:
		return int64(t), nil
	case int8:
		return int64(t), nil
	case uint8:
		return int64(t), nil
	case uint16:
		return int64(t), nil
	case uint32:
		return int64(t), nil
	case uint64:
		if t > math.MaxInt64 {
			return nil, conversionError(raw, "integer (overflow)")
		}
		return int64(t), nil
	case uint:
		if uint64(t) > math.MaxInt64 {
			return nil, conversionError(raw, "integer (overflow)")
		}
		return int64(t), nil
	case float64:
		return floatToInt64(raw, t)
	case float32:
		return floatToInt64(raw, float64(t))
	case bool:
		if t {
			return int64(1), nil
		}
		return int64(0), nil
	case decimal.Decimal:
		return decimalToInt64(raw, t)
	case []byte:
		return parseInt64(raw, string(t))
	case string:
		return parseInt64(raw, t)
	}
	return nil, conversionError(raw, "integer")
}

// float64(math.MaxInt64) rounds up to 2^63 which does not fit.
func floatToInt64(raw any, f float64) (any, error) {
	if math.IsNaN(f) || f != math.Trunc(f) {
		return nil, conversionError(raw, "integer")
	}
	if f >= math.MaxInt64 || f < math.MinInt64 {
		return nil, conversionError(raw, "integer (overflow)")
	}
	return int64(f), nil
}

var (
	max_int64_decimal = decimal.NewFromInt(math.MaxInt64)
	min_int64_decimal = decimal.NewFromInt(math.MinInt64)
)

// IntPart() wraps silently so the range is checked first.
func decimalToInt64(raw any, d decimal.Decimal) (any, error) {
	if !d.IsInteger() {
		return nil, conversionError(raw, "integer")
	}
	if d.GreaterThan(max_int64_decimal) || d.LessThan(min_int64_decimal) {
		return nil, conversionError(raw, "integer (overflow)")
	}
	return d.IntPart(), nil
}

func parseInt64(raw any, s string) (any, error) {
	s = strings.TrimSpace(s)
	i, err := strconv.ParseInt(s, 10, 64)
	if err == nil {
		return i, nil
	}

	// Some drivers send NUMERIC(n,0) as "12.0" and BIGINT UNSIGNED
	// as text, so out of range values land here too.
	d, err := decimal.NewFromString(s)
	if err != nil {
		return nil, conversionError(raw, "integer")
	}
	return decimalToInt64(raw, d)
}

func toFloat64(raw any) (any, error) {
	switch t := raw.(type) {
	case float64:
		return t, nil
	case float32:
		// Go through the decimal text so 0.1f stays 0.1
		f, err := strconv.ParseFloat(strconv.FormatFloat(float64(t), 'g', -1, 32), 64)
		if err != nil {
			return nil, conversionError(raw, "float")
		}
		return f, nil
	case decimal.Decimal:
		return t.InexactFloat64(), nil
	case bool:
		if t {
			return float64(1), nil
		}
		return float64(0), nil
	case []byte:
		return parseFloat64(raw, string(t))
	case string:
		return parseFloat64(raw, t)
	}

	i, err := toInt64(raw)
	if err == nil {
		return float64(i.(int64)), nil
	}
	return nil, conversionError(raw, "float")
}

func parseFloat64(raw any, s string) (any, error) {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return nil, conversionError(raw, "float")
	}
	return f, nil
}

// Decimals are rebuilt from their string form so that 1.50, 1.5 and
// the float 1.5 all end up with the same coefficient and exponent.
func canonicalDecimal(d decimal.Decimal) decimal.Decimal {
	result, err := decimal.NewFromString(d.String())
	if err != nil {
		return d
	}
	return result
}

func toDecimal(raw any) (any, error) {
	switch t := raw.(type) {
	case decimal.Decimal:
		return canonicalDecimal(t), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return nil, conversionError(raw, "decimal")
		}
		return canonicalDecimal(decimal.NewFromFloat(t)), nil
	case float32:
		return canonicalDecimal(decimal.NewFromFloat32(t)), nil
	case uint64:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(t), 0), nil
	case uint:
		return decimal.NewFromBigInt(new(big.Int).SetUint64(uint64(t)), 0), nil
	case []byte:
		return parseDecimal(raw, string(t))
	case string:
		return parseDecimal(raw, t)
	case bool:
		return nil, conversionError(raw, "decimal")
	}

	i, err := toInt64(raw)
	if err == nil {
		return decimal.NewFromInt(i.(int64)), nil
	}
	return nil, conversionError(raw, "decimal")
}

func parseDecimal(raw any, s string) (any, error) {
	d, err := decimal.NewFromString(strings.TrimSpace(s))
	if err != nil {
		return nil, conversionError(raw, "decimal")
	}
	return canonicalDecimal(d), nil
}

func toText(raw any) string {
	switch t := raw.(type) {
	case string:
		return t
	case []byte:
		return string(t)
	case int64:
		return strconv.FormatInt(t, 10)
	case float64:
		return strconv.FormatFloat(t, 'f', -1, 64)
	case float32:
		return strconv.FormatFloat(float64(t), 'f', -1, 32)
	case bool:
		return strconv.FormatBool(t)
	case time.Time:
		return t.UTC().Format(time.RFC3339Nano)
	case fmt.Stringer:
		return t.String()
	}
	return fmt.Sprint(raw)
}

func toBool(raw any) (any, error) {
	switch t := raw.(type) {
	case bool:
		return t, nil
	case []byte:
		return parseBool(raw, string(t))
	case string:
		return parseBool(raw, t)
	case float64:
		return t != 0, nil
	case float32:
		return t != 0, nil
	case decimal.Decimal:
		return !t.IsZero(), nil
	}

	i, err := toInt64(raw)
	if err == nil {
		return i.(int64) != 0, nil
	}
	return nil, conversionError(raw, "boolean")
}

func parseBool(raw any, s string) (any, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "t", "true", "y", "yes", "on":
		return true, nil
	case "0", "f", "false", "n", "no", "off":
		return false, nil
	}
	return nil, conversionError(raw, "boolean")
}

func toBinary(raw any) (any, error) {
	switch t := raw.(type) {
	case []byte:
		return bytes.Clone(t), nil
	case string:
		return []byte(t), nil
	}
	return nil, conversionError(raw, "binary")
}

var time_of_day_layouts = []string{
	"15:04:05.999999999Z07:00",
	"15:04:05.999999999",
	"15:04:05",
	"15:04",
}

func toTime(raw any) (time.Time, error) {
	switch t := raw.(type) {
	case time.Time:
		return t, nil

	case []byte:
		return parseTime(raw, string(t))

	case string:
		return parseTime(raw, t)

	case float64:
		sec, frac := math.Modf(t)
		return time.Unix(int64(sec), int64(frac*1e9)).UTC(), nil
	}

	i, err := toInt64(raw)
	if err == nil {
		// Integer timestamps are Unix seconds.
		return time.Unix(i.(int64), 0).UTC(), nil
	}
	return time.Time{}, conversionError(raw, "time")
}

func parseTime(raw any, s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range time_of_day_layouts {
		t, err := time.Parse(layout, s)
		if err == nil {
			return t, nil
		}
	}

	t, err := dateparse.ParseIn(s, time.UTC)
	if err != nil {
		return time.Time{}, conversionError(raw, "time")
	}
	return t, nil
}
