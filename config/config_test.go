package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/sqlpager/constants"
)

var test_config = `
Logging:
  level: debug
Pager:
  default_page_size: 20
  result_mode: materialized
Schemas:
  - id: local
    driver: sqlite3
    url: ":memory:"
`

func TestLiteralLoader(t *testing.T) {
	config_obj, err := new(Loader).WithLiteralLoader([]byte(test_config)).
		LoadAndValidate()
	require.NoError(t, err)

	assert.Equal(t, int64(20), config_obj.Pager.DefaultPageSize)
	assert.Equal(t, constants.RESULT_MODE_MATERIALIZED, config_obj.Pager.ResultMode)

	// Defaults are filled in.
	assert.Equal(t, uint64(constants.DEFAULT_QUERY_TIMEOUT), config_obj.Pager.QueryTimeout)
	assert.Equal(t, uint64(constants.DEFAULT_CACHE_TTL), config_obj.Cache.Ttl)

	schema, err := GetSchema(config_obj, "local")
	require.NoError(t, err)
	assert.Equal(t, "local", schema.Title)
	assert.Equal(t, int64(constants.DEFAULT_MAX_OPEN), schema.MaxOpenConns)

	_, err = GetSchema(config_obj, "missing")
	assert.Error(t, err)
}

func TestFileLoaderFallsBack(t *testing.T) {
	// Env var is not set so the null loader is used.
	os.Unsetenv("SQLPAGER_TEST_CONFIG")
	config_obj, err := new(Loader).
		WithEnvLoader("SQLPAGER_TEST_CONFIG").
		WithNullLoader().LoadAndValidate()
	require.NoError(t, err)
	assert.Equal(t, int64(constants.DEFAULT_PAGE_SIZE), config_obj.Pager.DefaultPageSize)
}

func TestFileLoaderHardError(t *testing.T) {
	// A missing file is a hard error - we do not fall through to
	// the null loader.
	_, err := new(Loader).
		WithFileLoader(filepath.Join(t.TempDir(), "missing.yaml")).
		WithNullLoader().LoadAndValidate()
	require.Error(t, err)

	_, ok := err.(HardError)
	assert.True(t, ok)
}

func TestRoundTripFile(t *testing.T) {
	config_obj, err := new(Loader).WithLiteralLoader([]byte(test_config)).
		LoadAndValidate()
	require.NoError(t, err)

	filename := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, WriteConfigToFile(filename, config_obj))

	loaded, err := new(Loader).WithFileLoader(filename).LoadAndValidate()
	require.NoError(t, err)
	assert.Equal(t, config_obj.Schemas, loaded.Schemas)
}

func TestValidation(t *testing.T) {
	for _, bad := range []string{
		// Unknown driver
		"Schemas:\n  - id: a\n    driver: oracle\n    url: x\n",
		// Duplicate ids
		"Schemas:\n  - id: a\n    driver: mysql\n    url: x\n  - id: a\n    driver: mysql\n    url: y\n",
		// Missing url
		"Schemas:\n  - id: a\n    driver: postgres\n",
		// Bad result mode
		"Pager:\n  result_mode: scrolling\n",
		// Not a known field
		"Papers: {}\n",
	} {
		_, err := new(Loader).WithLiteralLoader([]byte(bad)).LoadAndValidate()
		assert.Error(t, err, bad)
	}
}

func TestRequiredSchema(t *testing.T) {
	_, err := new(Loader).WithLiteralLoader([]byte(test_config)).
		WithRequiredSchema("remote").LoadAndValidate()
	assert.Error(t, err)
}
