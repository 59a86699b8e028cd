package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
)

func TestComponentLoggers(t *testing.T) {
	Reset()
	defer Reset()

	config_obj := &config_proto.Config{
		Logging: &config_proto.LoggingConfig{Level: "debug"},
	}
	require.NoError(t, InitLogging(config_obj))

	logger := GetLogger(config_obj, &PersistenceComponent)
	assert.Equal(t, logrus.DebugLevel, logger.GetLevel())

	// Same component gives the same logger.
	assert.Same(t, logger, GetLogger(config_obj, &PersistenceComponent))

	buf := &bytes.Buffer{}
	logger.SetOutput(buf)
	logger.WithFields(logrus.Fields{"rows": 3}).Info("mapped")
	assert.Contains(t, buf.String(), "component=Persistence")
	assert.Contains(t, buf.String(), "rows=3")

	buf.Reset()
	logger.Info("Loaded %v rows", 5)
	assert.Contains(t, buf.String(), "Loaded 5 rows")
}

func TestInvalidLevel(t *testing.T) {
	Reset()
	defer Reset()

	config_obj := &config_proto.Config{
		Logging: &config_proto.LoggingConfig{Level: "shouting"},
	}
	assert.Error(t, InitLogging(config_obj))
}

func TestFileOutput(t *testing.T) {
	Reset()
	defer Reset()

	dir := t.TempDir()
	config_obj := &config_proto.Config{
		Logging: &config_proto.LoggingConfig{OutputDirectory: dir},
	}
	require.NoError(t, InitLogging(config_obj))

	GetLogger(config_obj, &CacheComponent).Error("something broke")

	data, err := os.ReadFile(filepath.Join(dir, "metadatacache_error.log"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "something broke")
}
