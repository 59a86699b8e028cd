package persistence

import (
	"database/sql"
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/sqlpager/meta"
)

func TestNormalize(t *testing.T) {
	resolver := ColumnTypeResolver{}
	var nil_ptr *int64
	seven := int64(7)

	for _, testcase := range []struct {
		name        string
		raw         any
		column_type meta.SemanticType
		expected    any
	}{
		{"Integer from int64", int64(5), meta.Integer, int64(5)},
		{"Integer from int32", int32(5), meta.Integer, int64(5)},
		{"Integer from uint8", uint8(5), meta.Integer, int64(5)},
		{"Integer from bytes", []byte("42"), meta.Integer, int64(42)},
		{"Integer from decimal text", "12.0", meta.Integer, int64(12)},
		{"Integer from whole float", float64(3), meta.Integer, int64(3)},
		{"Integer from bool", true, meta.Integer, int64(1)},
		{"Integer from pointer", &seven, meta.Integer, int64(7)},
		{"Integer from NullInt64", sql.NullInt64{Int64: 9, Valid: true},
			meta.Integer, int64(9)},
		{"Integer max from text", "9223372036854775807", meta.Integer,
			int64(math.MaxInt64)},
		{"Integer min from bytes", []byte("-9223372036854775808"), meta.Integer,
			int64(math.MinInt64)},
		{"Integer max from decimal", decimal.NewFromInt(math.MaxInt64),
			meta.Integer, int64(math.MaxInt64)},
		{"Integer min from float", float64(math.MinInt64), meta.Integer,
			int64(math.MinInt64)},

		{"Float from float32", float32(0.1), meta.Float, float64(0.1)},
		{"Float from int", int64(2), meta.Float, float64(2)},
		{"Float from text", "2.5", meta.Float, float64(2.5)},

		{"Text from bytes", []byte("abc"), meta.Text, "abc"},
		{"Text from int", int64(12), meta.Text, "12"},
		{"Text from float", float64(1.5), meta.Text, "1.5"},
		{"Text from time", time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC),
			meta.Text, "2020-01-02T03:04:05Z"},

		{"Boolean from int", int64(0), meta.Boolean, false},
		{"Boolean from text", "yes", meta.Boolean, true},
		{"Boolean from bytes", []byte("f"), meta.Boolean, false},

		{"Binary from text", "hi", meta.Binary, []byte("hi")},
		{"Binary from bytes", []byte("hi"), meta.Binary, []byte("hi")},

		{"Date from text", "2020-01-02", meta.Date,
			time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Date keeps calendar day",
			time.Date(2020, 1, 2, 23, 30, 0, 0, time.FixedZone("X", -5*3600)),
			meta.Date, time.Date(2020, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Timestamp from text", "2020-01-02 03:04:05", meta.Timestamp,
			time.Date(2020, 1, 2, 3, 4, 5, 0, time.UTC)},
		{"Timestamp to UTC",
			time.Date(2020, 1, 2, 3, 4, 5, 0, time.FixedZone("X", 3600)),
			meta.Timestamp, time.Date(2020, 1, 2, 2, 4, 5, 0, time.UTC)},
		{"Timestamp from unix seconds", int64(86400), meta.Timestamp,
			time.Date(1970, 1, 2, 0, 0, 0, 0, time.UTC)},
		{"Time of day", "03:04:05", meta.Time,
			time.Date(0, 1, 1, 3, 4, 5, 0, time.UTC)},

		{"Other passes through", int64(5), meta.Other, int64(5)},
		{"Other copies bytes", []byte("x"), meta.Other, []byte("x")},

		{"NULL", nil, meta.Integer, nil},
		{"NULL pointer", nil_ptr, meta.Integer, nil},
		{"NULL bytes", []byte(nil), meta.Binary, nil},
		{"NULL NullString", sql.NullString{}, meta.Text, nil},
		{"NULL other", nil, meta.Other, nil},
	} {
		value, err := resolver.Normalize(testcase.raw, testcase.column_type)
		require.NoError(t, err, testcase.name)
		assert.Equal(t, testcase.expected, value, testcase.name)
	}
}

func TestNormalizeDecimal(t *testing.T) {
	resolver := ColumnTypeResolver{}

	// Equal logical values from different drivers normalize to the
	// same representation.
	for _, raw := range []any{
		"1.50", []byte("1.5"), float64(1.5), float32(1.5),
		decimal.RequireFromString("1.500"),
	} {
		value, err := resolver.Normalize(raw, meta.Decimal)
		require.NoError(t, err)
		assert.Equal(t, decimal.RequireFromString("1.5"), value, "%T %v", raw, raw)
	}

	value, err := resolver.Normalize(int64(3), meta.Decimal)
	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(3).Equal(value.(decimal.Decimal)))

	value, err = resolver.Normalize(uint64(math.MaxUint64), meta.Decimal)
	require.NoError(t, err)
	assert.Equal(t, "18446744073709551615", value.(decimal.Decimal).String())
}

func TestNormalizeFailures(t *testing.T) {
	resolver := ColumnTypeResolver{}

	for _, testcase := range []struct {
		name        string
		raw         any
		column_type meta.SemanticType
	}{
		{"Fractional integer", float64(1.5), meta.Integer},
		{"Integer overflow", uint64(math.MaxUint64), meta.Integer},
		{"Unsigned bigint as bytes", []byte("18446744073709551615"), meta.Integer},
		{"Integer overflow from text", "99999999999999999999", meta.Integer},
		{"Integer underflow from text", "-9223372036854775809", meta.Integer},
		{"Integer overflow from decimal",
			decimal.RequireFromString("99999999999999999999"), meta.Integer},
		{"Integer overflow from float", float64(1 << 63), meta.Integer},
		{"Integer overflow from large float", float64(1e19), meta.Integer},
		{"Integer from word", "abc", meta.Integer},
		{"Float from word", "abc", meta.Float},
		{"Decimal from word", "abc", meta.Decimal},
		{"Decimal from NaN", math.NaN(), meta.Decimal},
		{"Decimal from bool", true, meta.Decimal},
		{"Boolean from word", "maybe", meta.Boolean},
		{"Binary from int", int64(5), meta.Binary},
		{"Timestamp from word", "not a time", meta.Timestamp},
	} {
		value, err := resolver.Normalize(testcase.raw, testcase.column_type)
		assert.Nil(t, value, testcase.name)
		assert.ErrorIs(t, err, ErrConversion, testcase.name)
	}
}

// Binary values are always fresh copies of what the driver handed in.
func TestNormalizeBinaryIsCopied(t *testing.T) {
	raw := []byte("hello")
	value, err := ColumnTypeResolver{}.Normalize(raw, meta.Binary)
	require.NoError(t, err)

	raw[0] = 'X'
	assert.Equal(t, []byte("hello"), value)
}
