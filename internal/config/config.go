package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config holds the translator and Neo4j connection settings.
type Config struct {
	// Neo4j connection; only needed for introspection and the
	// database-backed MCP tools.
	URI      string `yaml:"uri"`
	Username string `yaml:"username"`
	Password string `yaml:"password"`
	Database string `yaml:"database"`

	// SchemaFile is a model YAML file or a directory of them. Empty means
	// the built-in genomic model.
	SchemaFile string `yaml:"schema_file"`

	// ExtraValueLabel and ExtraValueProperty locate the node a LOOKUP
	// extra value is matched against.
	ExtraValueLabel    string `yaml:"extra_value_label"`
	ExtraValueProperty string `yaml:"extra_value_property"`

	MaxRows  int    `yaml:"max_rows"`
	LogLevel string `yaml:"log_level"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Database: "neo4j",
		LogLevel: "info",
	}
}

// Load reads path (if non-empty) over the defaults and then applies
// environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	strs := map[string]*string{
		"NEO4J_URI":                      &c.URI,
		"NEO4J_USERNAME":                 &c.Username,
		"NEO4J_PASSWORD":                 &c.Password,
		"NEO4J_DATABASE":                 &c.Database,
		"PATHQUERY_SCHEMA_FILE":          &c.SchemaFile,
		"PATHQUERY_EXTRA_VALUE_LABEL":    &c.ExtraValueLabel,
		"PATHQUERY_EXTRA_VALUE_PROPERTY": &c.ExtraValueProperty,
		"PATHQUERY_LOG_LEVEL":            &c.LogLevel,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("PATHQUERY_MAX_ROWS"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid PATHQUERY_MAX_ROWS %q: %w", v, err)
		}
		c.MaxRows = n
	}
	return nil
}

// Validate checks the settings that do not depend on a connection.
func (c *Config) Validate() error {
	if _, err := ParseLogLevel(c.LogLevel); err != nil {
		return err
	}
	if c.MaxRows < 0 {
		return fmt.Errorf("max_rows must not be negative, got %d", c.MaxRows)
	}
	if (c.ExtraValueLabel == "") != (c.ExtraValueProperty == "") {
		return fmt.Errorf("extra_value_label and extra_value_property must be set together")
	}
	return nil
}

// HasDatabase reports whether a Neo4j connection is configured.
func (c *Config) HasDatabase() bool {
	return c.URI != ""
}

// ParseLogLevel maps debug, info, warn and error to slog levels.
func ParseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.TrimSpace(s))); err != nil {
		return 0, fmt.Errorf("invalid log level %q: %w", s, err)
	}
	return level, nil
}
