// Configuration types. These are plain structs loaded from YAML by
// the config package. Getters are nil safe so callers can walk
// optional sections without checking each level.

package proto

type Config struct {
	// Set by the loader, never read from the file.
	Verbose bool `yaml:"-"`

	Logging *LoggingConfig  `yaml:"Logging,omitempty"`
	Pager   *PagerConfig    `yaml:"Pager,omitempty"`
	Cache   *CacheConfig    `yaml:"Cache,omitempty"`
	Schemas []*SchemaConfig `yaml:"Schemas,omitempty"`
}

type LoggingConfig struct {
	Level string `yaml:"level,omitempty"`

	// When set, each component also logs to files in this
	// directory.
	OutputDirectory string `yaml:"output_directory,omitempty"`
}

type PagerConfig struct {
	DefaultPageSize int64  `yaml:"default_page_size,omitempty"`
	ResultMode      string `yaml:"result_mode,omitempty"`

	// Seconds.
	QueryTimeout uint64 `yaml:"query_timeout,omitempty"`
}

type CacheConfig struct {
	// Seconds.
	Ttl       uint64 `yaml:"ttl,omitempty"`
	MaxTables int64  `yaml:"max_tables,omitempty"`
}

type SchemaConfig struct {
	Id           string `yaml:"id,omitempty"`
	Title        string `yaml:"title,omitempty"`
	Driver       string `yaml:"driver,omitempty"`
	Url          string `yaml:"url,omitempty"`
	User         string `yaml:"user,omitempty"`
	Password     string `yaml:"password,omitempty"`
	MaxOpenConns int64  `yaml:"max_open_conns,omitempty"`
}

func (self *Config) GetLogging() *LoggingConfig {
	if self == nil {
		return nil
	}
	return self.Logging
}

func (self *Config) GetPager() *PagerConfig {
	if self == nil {
		return nil
	}
	return self.Pager
}

func (self *Config) GetCache() *CacheConfig {
	if self == nil {
		return nil
	}
	return self.Cache
}

func (self *Config) GetSchemas() []*SchemaConfig {
	if self == nil {
		return nil
	}
	return self.Schemas
}

func (self *LoggingConfig) GetLevel() string {
	if self == nil {
		return ""
	}
	return self.Level
}

func (self *LoggingConfig) GetOutputDirectory() string {
	if self == nil {
		return ""
	}
	return self.OutputDirectory
}

func (self *PagerConfig) GetDefaultPageSize() int64 {
	if self == nil {
		return 0
	}
	return self.DefaultPageSize
}

func (self *PagerConfig) GetResultMode() string {
	if self == nil {
		return ""
	}
	return self.ResultMode
}

func (self *PagerConfig) GetQueryTimeout() uint64 {
	if self == nil {
		return 0
	}
	return self.QueryTimeout
}

func (self *CacheConfig) GetTtl() uint64 {
	if self == nil {
		return 0
	}
	return self.Ttl
}

func (self *CacheConfig) GetMaxTables() int64 {
	if self == nil {
		return 0
	}
	return self.MaxTables
}

// Schemas are compared on connection identity: a change of driver,
// url or user means cached metadata is no longer valid.
func (self *SchemaConfig) SameIdentity(other *SchemaConfig) bool {
	if self == nil || other == nil {
		return self == other
	}
	return self.Driver == other.Driver &&
		self.Url == other.Url &&
		self.User == other.User
}
