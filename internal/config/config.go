// Package config handles configuration loading and validation for Lattice.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

const (
	// DefaultConfigFile is the default configuration file name (without extension).
	DefaultConfigFile = ".lattice"
	// DefaultConfigType is the default configuration file type.
	DefaultConfigType = "yaml"
)

// Config holds all configuration for Lattice.
type Config struct {
	// Project contains project metadata.
	Project ProjectConfig `mapstructure:"project" yaml:"project"`
	// Snapshot configures where the graph snapshot lives on disk.
	Snapshot SnapshotConfig `mapstructure:"snapshot" yaml:"snapshot"`
	// Archive configures the named-snapshot archive database.
	Archive ArchiveConfig `mapstructure:"archive" yaml:"archive"`
	// Query bounds the query engine's expensive operations.
	Query QueryConfig `mapstructure:"query" yaml:"query"`
	// Connector configures automatic cross-domain edge inference.
	Connector ConnectorConfig `mapstructure:"connector" yaml:"connector"`
	// Watch contains snapshot watching configuration.
	Watch WatchConfig `mapstructure:"watch" yaml:"watch"`
}

// ProjectConfig holds project metadata.
type ProjectConfig struct {
	// Name is the project name.
	Name string `mapstructure:"name" yaml:"name"`
}

// SnapshotConfig describes the working snapshot file.
type SnapshotConfig struct {
	// Path is the snapshot file location.
	Path string `mapstructure:"path" yaml:"path"`
	// Format is the snapshot codec (json, yaml, or toml).
	Format string `mapstructure:"format" yaml:"format"`
}

// ArchiveConfig holds the snapshot archive settings.
type ArchiveConfig struct {
	// Path is the archive database directory.
	Path string `mapstructure:"path" yaml:"path"`
}

// QueryConfig bounds path enumeration and result sizes.
type QueryConfig struct {
	// MaxDepth caps path search depth.
	MaxDepth int `mapstructure:"max_depth" yaml:"max_depth"`
	// MaxPaths caps the number of paths a single search may return.
	MaxPaths int `mapstructure:"max_paths" yaml:"max_paths"`
	// Limit is the default result page size.
	Limit int `mapstructure:"limit" yaml:"limit"`
}

// ConnectorConfig controls cross-domain edge inference.
type ConnectorConfig struct {
	// MinSharedTags is how many tags two nodes must share before a
	// relates_to edge is inferred.
	MinSharedTags int `mapstructure:"min_shared_tags" yaml:"min_shared_tags"`
}

// WatchConfig holds snapshot watching configuration.
type WatchConfig struct {
	// DebounceMS coalesces rapid snapshot rewrites into one reload.
	DebounceMS int `mapstructure:"debounce_ms" yaml:"debounce_ms"`
}

// Load loads configuration from file, environment variables, and defaults.
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	// A specific config file set via CLI flag lives in the global viper.
	globalViper := viper.GetViper()
	if configFile := globalViper.GetString("config_file"); configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName(DefaultConfigFile)
		v.SetConfigType(DefaultConfigType)
		v.AddConfigPath(".")
	}

	v.SetEnvPrefix("LATTICE")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// A missing config file is fine; defaults carry the day.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	return &cfg, nil
}

// Validate checks that the configuration is valid.
func (c *Config) Validate() error {
	switch c.Snapshot.Format {
	case "", "json", "yaml", "yml", "toml":
	default:
		return fmt.Errorf("snapshot format must be 'json', 'yaml', or 'toml', got %q", c.Snapshot.Format)
	}

	if c.Query.MaxDepth < 0 {
		return fmt.Errorf("query max_depth must not be negative, got %d", c.Query.MaxDepth)
	}
	if c.Query.MaxPaths < 0 {
		return fmt.Errorf("query max_paths must not be negative, got %d", c.Query.MaxPaths)
	}
	if c.Query.Limit < 0 {
		return fmt.Errorf("query limit must not be negative, got %d", c.Query.Limit)
	}

	if c.Connector.MinSharedTags < 1 {
		return fmt.Errorf("connector min_shared_tags must be at least 1, got %d", c.Connector.MinSharedTags)
	}

	if c.Watch.DebounceMS < 0 {
		return fmt.Errorf("watch debounce_ms must not be negative, got %d", c.Watch.DebounceMS)
	}

	return nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	v.SetDefault("project.name", "")

	v.SetDefault("snapshot.path", "lattice.json")
	v.SetDefault("snapshot.format", "json")

	v.SetDefault("archive.path", ".lattice-archive")

	v.SetDefault("query.max_depth", 10)
	v.SetDefault("query.max_paths", 100)
	v.SetDefault("query.limit", 50)

	v.SetDefault("connector.min_shared_tags", 2)

	v.SetDefault("watch.debounce_ms", 300)
}
