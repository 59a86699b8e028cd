package vtesting

import (
	"testing"

	"github.com/stretchr/testify/require"
	"www.velocidex.com/golang/sqlpager/config"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/logging"
)

// A validated config with one in memory sqlite schema called "test".
func GetTestConfig(t testing.TB) *config_proto.Config {
	config_obj := config.GetDefaultConfig()
	config_obj.Logging.Level = "debug"
	config_obj.Schemas = []*config_proto.SchemaConfig{{
		Id:     "test",
		Driver: "sqlite3",
		Url:    SqliteMemoryUrl(),
	}}

	loader := config.Loader{}
	require.NoError(t, loader.Validate(config_obj))

	t.Cleanup(logging.Reset)
	return config_obj
}
