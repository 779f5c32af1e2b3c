package config

import (
	"os"
	"path/filepath"
	"time"
)

// Store backends
const (
	BackendMemory = "memory"
	BackendSQLite = "sqlite"
)

// Config holds all configuration options for the task list application
type Config struct {
	Store       StoreConfig       `mapstructure:"store"`
	Validation  ValidationConfig  `mapstructure:"validation"`
	Display     DisplayConfig     `mapstructure:"display"`
	Search      SearchConfig      `mapstructure:"search"`
	Application ApplicationConfig `mapstructure:"application"`
	Commands    CommandsConfig    `mapstructure:"commands"`
}

// StoreConfig selects and tunes the task store backend
type StoreConfig struct {
	Backend      string        `mapstructure:"backend"`
	DSN          string        `mapstructure:"dsn"`
	QueryTimeout time.Duration `mapstructure:"query_timeout"`
	WriteTimeout time.Duration `mapstructure:"write_timeout"`
}

// ValidationConfig holds the limits enforced at the form boundary
type ValidationConfig struct {
	TitleMaxLength       int `mapstructure:"title_max_length"`
	DescriptionMaxLength int `mapstructure:"description_max_length"`
	MaxTags              int `mapstructure:"max_tags"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	TimeFormat   string `mapstructure:"time_format"`
	RelativeTime bool   `mapstructure:"relative_time"`
	Color        bool   `mapstructure:"color"`
	Locale       string `mapstructure:"locale"`
}

// SearchConfig controls how the search command treats the collection
type SearchConfig struct {
	// Destructive makes search drop every non-matching task from the store.
	Destructive bool `mapstructure:"destructive"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout  time.Duration `mapstructure:"timeout"`
	Verbose  bool          `mapstructure:"verbose"`
	LogLevel string        `mapstructure:"log_level"`
	LogFile  string        `mapstructure:"log_file"`
}

// CommandsConfig holds command-specific defaults
type CommandsConfig struct {
	ExportDefaultFormat string `mapstructure:"export_default_format"`
	ListDefaultSort     string `mapstructure:"list_default_sort"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	return &Config{
		Store: StoreConfig{
			Backend:      BackendMemory,
			DSN:          ":memory:",
			QueryTimeout: 10 * time.Second,
			WriteTimeout: 5 * time.Second,
		},
		Validation: ValidationConfig{
			TitleMaxLength:       100,
			DescriptionMaxLength: 1000,
			MaxTags:              32,
		},
		Display: DisplayConfig{
			TimeFormat:   "2006-01-02 15:04:05",
			RelativeTime: false,
			Color:        true,
			Locale:       "en",
		},
		Search: SearchConfig{
			Destructive: false,
		},
		Application: ApplicationConfig{
			Timeout:  60 * time.Second,
			Verbose:  false,
			LogLevel: "INFO",
		},
		Commands: CommandsConfig{
			ExportDefaultFormat: "csv",
			ListDefaultSort:     "timestamp",
		},
	}
}

// GetQueryTimeout returns the store query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Store.QueryTimeout
}

// GetWriteTimeout returns the store write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Store.WriteTimeout
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	switch c.Store.Backend {
	case BackendMemory, BackendSQLite:
	default:
		return &ConfigError{Field: "store.backend", Message: "backend must be one of memory, sqlite"}
	}
	if c.Store.Backend == BackendSQLite && c.Store.DSN == "" {
		return &ConfigError{Field: "store.dsn", Message: "sqlite backend requires a dsn"}
	}
	if c.Store.QueryTimeout <= 0 {
		return &ConfigError{Field: "store.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Store.WriteTimeout <= 0 {
		return &ConfigError{Field: "store.write_timeout", Message: "write timeout must be positive"}
	}

	if c.Validation.TitleMaxLength < 1 {
		return &ConfigError{Field: "validation.title_max_length", Message: "title maximum length must be at least 1"}
	}
	if c.Validation.DescriptionMaxLength < 1 {
		return &ConfigError{Field: "validation.description_max_length", Message: "description maximum length must be at least 1"}
	}
	if c.Validation.MaxTags < 0 {
		return &ConfigError{Field: "validation.max_tags", Message: "max tags cannot be negative"}
	}

	if c.Display.TimeFormat == "" {
		return &ConfigError{Field: "display.time_format", Message: "time format cannot be empty"}
	}

	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	switch c.Commands.ExportDefaultFormat {
	case "csv", "json", "yaml", "pdf":
	default:
		return &ConfigError{Field: "commands.export_default_format", Message: "export format must be one of csv, json, yaml, pdf"}
	}

	return nil
}

// ConfigDir returns the directory searched for config.yaml
func ConfigDir() string {
	if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
		return filepath.Join(xdg, "todo")
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".todo"
	}
	return filepath.Join(home, ".config", "todo")
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
