package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable, e.g. TODO_STORE_BACKEND.
const EnvPrefix = "TODO"

// Loader handles loading configuration from multiple sources
type Loader struct {
	v          *viper.Viper
	configFile string
}

// NewLoader creates a new configuration loader
func NewLoader() *Loader {
	return &Loader{v: viper.New()}
}

// WithConfigFile makes Load read the given file. A missing explicit file is an error.
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the config file, if one exists
// 3. Override with TODO_* environment variables
// 4. Command line flags are applied afterwards by LoadWithOverrides or cobra
func (l *Loader) Load() (*Config, error) {
	setDefaults(l.v, NewConfig())

	l.v.SetEnvPrefix(EnvPrefix)
	l.v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	l.v.AutomaticEnv()

	if err := l.readConfigFile(); err != nil {
		return nil, err
	}

	cfg := &Config{}
	if err := l.v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	cfg, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		overrides.Apply(cfg)
	}

	// Re-validate after applying overrides
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ConfigFileUsed returns the path of the file that was read, if any.
func (l *Loader) ConfigFileUsed() string {
	return l.v.ConfigFileUsed()
}

func (l *Loader) readConfigFile() error {
	if l.configFile != "" {
		l.v.SetConfigFile(l.configFile)
		if err := l.v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file %s: %w", l.configFile, err)
		}
		return nil
	}

	l.v.SetConfigName("config")
	l.v.SetConfigType("yaml")
	l.v.AddConfigPath(ConfigDir())
	if err := l.v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}
	return nil
}

// setDefaults registers every key so AutomaticEnv can override it
func setDefaults(v *viper.Viper, defaults *Config) {
	v.SetDefault("store.backend", defaults.Store.Backend)
	v.SetDefault("store.dsn", defaults.Store.DSN)
	v.SetDefault("store.query_timeout", defaults.Store.QueryTimeout)
	v.SetDefault("store.write_timeout", defaults.Store.WriteTimeout)

	v.SetDefault("validation.title_max_length", defaults.Validation.TitleMaxLength)
	v.SetDefault("validation.description_max_length", defaults.Validation.DescriptionMaxLength)
	v.SetDefault("validation.max_tags", defaults.Validation.MaxTags)

	v.SetDefault("display.time_format", defaults.Display.TimeFormat)
	v.SetDefault("display.relative_time", defaults.Display.RelativeTime)
	v.SetDefault("display.color", defaults.Display.Color)
	v.SetDefault("display.locale", defaults.Display.Locale)

	v.SetDefault("search.destructive", defaults.Search.Destructive)

	v.SetDefault("application.timeout", defaults.Application.Timeout)
	v.SetDefault("application.verbose", defaults.Application.Verbose)
	v.SetDefault("application.log_level", defaults.Application.LogLevel)
	v.SetDefault("application.log_file", defaults.Application.LogFile)

	v.SetDefault("commands.export_default_format", defaults.Commands.ExportDefaultFormat)
	v.SetDefault("commands.list_default_sort", defaults.Commands.ListDefaultSort)
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Store overrides
	StoreBackend      *string
	StoreDSN          *string
	StoreQueryTimeout *time.Duration
	StoreWriteTimeout *time.Duration

	// Validation overrides
	TitleMaxLength       *int
	DescriptionMaxLength *int

	// Display overrides
	TimeFormat   *string
	RelativeTime *bool
	Color        *bool
	Locale       *string

	// Search overrides
	DestructiveSearch *bool

	// Application overrides
	Timeout  *time.Duration
	Verbose  *bool
	LogLevel *string
	LogFile  *string

	// Commands overrides
	ExportDefaultFormat *string
}

// Apply copies every non-nil override into cfg
func (o *ConfigOverrides) Apply(cfg *Config) {
	if o.StoreBackend != nil {
		cfg.Store.Backend = *o.StoreBackend
	}
	if o.StoreDSN != nil {
		cfg.Store.DSN = *o.StoreDSN
	}
	if o.StoreQueryTimeout != nil {
		cfg.Store.QueryTimeout = *o.StoreQueryTimeout
	}
	if o.StoreWriteTimeout != nil {
		cfg.Store.WriteTimeout = *o.StoreWriteTimeout
	}

	if o.TitleMaxLength != nil {
		cfg.Validation.TitleMaxLength = *o.TitleMaxLength
	}
	if o.DescriptionMaxLength != nil {
		cfg.Validation.DescriptionMaxLength = *o.DescriptionMaxLength
	}

	if o.TimeFormat != nil {
		cfg.Display.TimeFormat = *o.TimeFormat
	}
	if o.RelativeTime != nil {
		cfg.Display.RelativeTime = *o.RelativeTime
	}
	if o.Color != nil {
		cfg.Display.Color = *o.Color
	}
	if o.Locale != nil {
		cfg.Display.Locale = *o.Locale
	}

	if o.DestructiveSearch != nil {
		cfg.Search.Destructive = *o.DestructiveSearch
	}

	if o.Timeout != nil {
		cfg.Application.Timeout = *o.Timeout
	}
	if o.Verbose != nil {
		cfg.Application.Verbose = *o.Verbose
	}
	if o.LogLevel != nil {
		cfg.Application.LogLevel = *o.LogLevel
	}
	if o.LogFile != nil {
		cfg.Application.LogFile = *o.LogFile
	}

	if o.ExportDefaultFormat != nil {
		cfg.Commands.ExportDefaultFormat = *o.ExportDefaultFormat
	}
}
