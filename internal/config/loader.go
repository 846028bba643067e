package config

import (
	"strconv"
	"time"
)

// Loader handles loading configuration from multiple sources
type Loader struct {
	config     *Config
	configFile string
	envFile    string
}

// NewLoader creates a new configuration loader reading DefaultConfigFile and ./.env
func NewLoader() *Loader {
	return &Loader{
		config:     NewConfig(),
		configFile: DefaultConfigFile(),
		envFile:    ".env",
	}
}

// WithConfigFile sets the ini file to read; empty disables it
func (l *Loader) WithConfigFile(path string) *Loader {
	l.configFile = path
	return l
}

// WithEnvFile sets the .env file to read; empty disables it
func (l *Loader) WithEnvFile(path string) *Loader {
	l.envFile = path
	return l
}

// Load loads configuration using the cascading strategy:
// 1. Start with defaults
// 2. Override with the ini config file
// 3. Fill unset environment variables from .env
// 4. Override with environment variables
// 5. Override with command line flags (LoadWithOverrides)
func (l *Loader) Load() (*Config, error) {
	if err := l.config.LoadFromFile(l.configFile); err != nil {
		return nil, err
	}

	if err := LoadDotEnv(l.envFile); err != nil {
		return nil, err
	}

	if err := l.config.LoadFromEnvironment(); err != nil {
		return nil, err
	}

	if err := l.config.Validate(); err != nil {
		return nil, err
	}

	return l.config, nil
}

// LoadWithOverrides loads configuration and applies command line overrides
func (l *Loader) LoadWithOverrides(overrides *ConfigOverrides) (*Config, error) {
	config, err := l.Load()
	if err != nil {
		return nil, err
	}

	if overrides != nil {
		config.ApplyOverrides(overrides)
	}

	// Re-validate after applying overrides
	if err := config.Validate(); err != nil {
		return nil, err
	}

	return config, nil
}

// ConfigOverrides holds command line flag overrides
type ConfigOverrides struct {
	// Database overrides
	DBDriver         *string
	DBDir            *string
	DBFilename       *string
	DBQueryTimeout   *time.Duration
	DBWriteTimeout   *time.Duration
	DBDirPermissions *uint32

	// Conversion overrides
	DefaultRate *float64

	// Display overrides
	DateFormat *string
	ChartWidth *int

	// Application overrides
	Timeout *time.Duration
	Verbose *bool

	// Export overrides
	ExportFilename *string
}

// ApplyOverrides applies command line overrides to the configuration.
// Nil fields are left untouched.
func (c *Config) ApplyOverrides(overrides *ConfigOverrides) {
	// Database overrides
	if overrides.DBDriver != nil {
		c.Database.Driver = *overrides.DBDriver
	}
	if overrides.DBDir != nil {
		c.Database.Dir = *overrides.DBDir
	}
	if overrides.DBFilename != nil {
		c.Database.Filename = *overrides.DBFilename
	}
	if overrides.DBQueryTimeout != nil {
		c.Database.QueryTimeout = *overrides.DBQueryTimeout
	}
	if overrides.DBWriteTimeout != nil {
		c.Database.WriteTimeout = *overrides.DBWriteTimeout
	}
	if overrides.DBDirPermissions != nil {
		c.Database.DirPermissions = *overrides.DBDirPermissions
	}

	if overrides.DefaultRate != nil {
		c.Conversion.DefaultRate = *overrides.DefaultRate
	}

	// Display overrides
	if overrides.DateFormat != nil {
		c.Display.DateFormat = *overrides.DateFormat
	}
	if overrides.ChartWidth != nil {
		c.Display.ChartWidth = *overrides.ChartWidth
	}

	// Application overrides
	if overrides.Timeout != nil {
		c.Application.Timeout = *overrides.Timeout
	}
	if overrides.Verbose != nil {
		c.Application.Verbose = *overrides.Verbose
	}

	if overrides.ExportFilename != nil {
		c.Export.Filename = *overrides.ExportFilename
	}
}

// ParseDurationWithFallback parses a duration string with a fallback value
func ParseDurationWithFallback(s string, fallback time.Duration) time.Duration {
	if d, err := time.ParseDuration(s); err == nil {
		return d
	}
	return fallback
}

// ParseIntWithFallback parses an integer string with a fallback value
func ParseIntWithFallback(s string, fallback int) int {
	if i, err := strconv.Atoi(s); err == nil {
		return i
	}
	return fallback
}

// ParseBoolWithFallback parses a boolean string with a fallback value
func ParseBoolWithFallback(s string, fallback bool) bool {
	if b, err := strconv.ParseBool(s); err == nil {
		return b
	}
	return fallback
}

// ParseUint32WithFallback parses a uint32 string with a fallback value
func ParseUint32WithFallback(s string, base int, fallback uint32) uint32 {
	if u, err := strconv.ParseUint(s, base, 32); err == nil {
		return uint32(u)
	}
	return fallback
}
