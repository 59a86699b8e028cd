package config

import (
	"fmt"
	"os"

	"github.com/Velocidex/yaml/v2"
	"github.com/go-errors/errors"
	config_proto "www.velocidex.com/golang/sqlpager/config/proto"
	"www.velocidex.com/golang/sqlpager/constants"
	"www.velocidex.com/golang/sqlpager/utils"
)

func GetDefaultConfig() *config_proto.Config {
	return &config_proto.Config{
		Logging: &config_proto.LoggingConfig{
			Level: "info",
		},
		Pager: &config_proto.PagerConfig{
			DefaultPageSize: constants.DEFAULT_PAGE_SIZE,
			ResultMode:      constants.RESULT_MODE_STREAMED,
			QueryTimeout:    constants.DEFAULT_QUERY_TIMEOUT,
		},
		Cache: &config_proto.CacheConfig{
			Ttl:       constants.DEFAULT_CACHE_TTL,
			MaxTables: constants.DEFAULT_CACHE_SIZE,
		},
	}
}

// Fill in anything the file left out.
func applyDefaults(config_obj *config_proto.Config) {
	defaults := GetDefaultConfig()

	if config_obj.Logging == nil {
		config_obj.Logging = defaults.Logging
	}
	if config_obj.Logging.Level == "" {
		config_obj.Logging.Level = defaults.Logging.Level
	}

	if config_obj.Pager == nil {
		config_obj.Pager = defaults.Pager
	}
	if config_obj.Pager.DefaultPageSize == 0 {
		config_obj.Pager.DefaultPageSize = defaults.Pager.DefaultPageSize
	}
	if config_obj.Pager.ResultMode == "" {
		config_obj.Pager.ResultMode = defaults.Pager.ResultMode
	}
	if config_obj.Pager.QueryTimeout == 0 {
		config_obj.Pager.QueryTimeout = defaults.Pager.QueryTimeout
	}

	if config_obj.Cache == nil {
		config_obj.Cache = defaults.Cache
	}
	if config_obj.Cache.Ttl == 0 {
		config_obj.Cache.Ttl = defaults.Cache.Ttl
	}
	if config_obj.Cache.MaxTables == 0 {
		config_obj.Cache.MaxTables = defaults.Cache.MaxTables
	}

	for _, schema := range config_obj.Schemas {
		if schema.MaxOpenConns == 0 {
			schema.MaxOpenConns = constants.DEFAULT_MAX_OPEN
		}
		if schema.Title == "" {
			schema.Title = schema.Id
		}
	}
}

func ValidateConfig(config_obj *config_proto.Config) error {
	pager := config_obj.GetPager()
	if pager.GetDefaultPageSize() < 0 {
		return fmt.Errorf("Pager.default_page_size must not be negative")
	}

	switch pager.GetResultMode() {
	case "", constants.RESULT_MODE_STREAMED, constants.RESULT_MODE_MATERIALIZED:
	default:
		return fmt.Errorf("Pager.result_mode %q is not one of %v or %v",
			pager.GetResultMode(), constants.RESULT_MODE_STREAMED,
			constants.RESULT_MODE_MATERIALIZED)
	}

	if config_obj.GetCache().GetMaxTables() < 0 {
		return fmt.Errorf("Cache.max_tables must not be negative")
	}

	return ValidateSchemas(config_obj)
}

func ValidateSchemas(config_obj *config_proto.Config) error {
	seen := make(map[string]bool)
	for idx, schema := range config_obj.GetSchemas() {
		if schema == nil || schema.Id == "" {
			return fmt.Errorf("Schema %d: id is required", idx)
		}

		if seen[schema.Id] {
			return fmt.Errorf("Schema %v: duplicate id", schema.Id)
		}
		seen[schema.Id] = true

		if !utils.InString(constants.SUPPORTED_DRIVERS, schema.Driver) {
			return fmt.Errorf("Schema %v: unsupported driver %q (supported %v)",
				schema.Id, schema.Driver, constants.SUPPORTED_DRIVERS)
		}

		if schema.Url == "" {
			return fmt.Errorf("Schema %v: url is required", schema.Id)
		}

		if schema.MaxOpenConns < 0 {
			return fmt.Errorf("Schema %v: max_open_conns must not be negative",
				schema.Id)
		}
	}
	return nil
}

func GetSchema(config_obj *config_proto.Config, id string) (
	*config_proto.SchemaConfig, error) {
	for _, schema := range config_obj.GetSchemas() {
		if schema.Id == id {
			return schema, nil
		}
	}
	return nil, fmt.Errorf("Schema %v not found in config: %w", id, utils.NotFoundError)
}

func Encode(config_obj *config_proto.Config) ([]byte, error) {
	return yaml.Marshal(config_obj)
}

func WriteConfigToFile(filename string, config_obj *config_proto.Config) error {
	serialized, err := Encode(config_obj)
	if err != nil {
		return errors.Wrap(err, 0)
	}

	// Configs carry database passwords.
	return os.WriteFile(filename, serialized, 0600)
}
