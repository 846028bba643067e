package config

import (
	"os"
	"path/filepath"
	"strconv"
	"time"

	"overtime-tracker/internal/validation"
)

// Storage drivers
const (
	DriverSQLite = "sqlite"
	DriverBolt   = "bolt"
)

// Config holds all configuration options for the overtime tracker
type Config struct {
	Database    DatabaseConfig
	Conversion  ConversionConfig
	Display     DisplayConfig
	Application ApplicationConfig
	Export      ExportConfig
}

// DatabaseConfig holds database-related configuration
type DatabaseConfig struct {
	Driver         string        `env:"OT_DB_DRIVER"`
	Dir            string        `env:"OT_DB_DIR"`
	Filename       string        `env:"OT_DB_FILENAME"`
	QueryTimeout   time.Duration `env:"OT_DB_QUERY_TIMEOUT"`
	WriteTimeout   time.Duration `env:"OT_DB_WRITE_TIMEOUT"`
	DirPermissions uint32        `env:"OT_DB_DIR_PERMISSIONS"`
}

// ConversionConfig holds the rate used before one is saved
type ConversionConfig struct {
	DefaultRate float64 `env:"OT_DEFAULT_RATE"`
}

// DisplayConfig holds display formatting configuration
type DisplayConfig struct {
	DateFormat string `env:"OT_DISPLAY_DATE_FORMAT"`
	ChartWidth int    `env:"OT_DISPLAY_CHART_WIDTH"`
}

// ApplicationConfig holds application-level configuration
type ApplicationConfig struct {
	Timeout time.Duration `env:"OT_APP_TIMEOUT"`
	Verbose bool          `env:"OT_APP_VERBOSE"`
}

// ExportConfig holds CSV export defaults
type ExportConfig struct {
	Filename string `env:"OT_EXPORT_FILENAME"`
}

// NewConfig creates a new configuration with sensible defaults
func NewConfig() *Config {
	homeDir, _ := os.UserHomeDir()
	defaultDBDir := filepath.Join(homeDir, ".ot")

	return &Config{
		Database: DatabaseConfig{
			Driver:         DriverSQLite,
			Dir:            defaultDBDir,
			Filename:       "ot.db",
			QueryTimeout:   10 * time.Second,
			WriteTimeout:   5 * time.Second,
			DirPermissions: 0755,
		},
		Conversion: ConversionConfig{
			DefaultRate: 1.5,
		},
		Display: DisplayConfig{
			DateFormat: "Mon, Jan 2",
			ChartWidth: 40,
		},
		Application: ApplicationConfig{
			Timeout: 60 * time.Second,
			Verbose: false,
		},
		Export: ExportConfig{
			Filename: "overtime_history.csv",
		},
	}
}

// GetDatabasePath returns the full path to the database file
func (c *Config) GetDatabasePath() string {
	return filepath.Join(c.Database.Dir, c.Database.Filename)
}

// GetQueryTimeout returns the database query timeout
func (c *Config) GetQueryTimeout() time.Duration {
	return c.Database.QueryTimeout
}

// GetWriteTimeout returns the database write timeout
func (c *Config) GetWriteTimeout() time.Duration {
	return c.Database.WriteTimeout
}

// LoadFromEnvironment loads configuration from environment variables
func (c *Config) LoadFromEnvironment() error {
	// Database configuration
	if driver := os.Getenv("OT_DB_DRIVER"); driver != "" {
		c.Database.Driver = driver
	}
	if dir := os.Getenv("OT_DB_DIR"); dir != "" {
		c.Database.Dir = dir
	}
	if filename := os.Getenv("OT_DB_FILENAME"); filename != "" {
		c.Database.Filename = filename
	}
	if timeout := os.Getenv("OT_DB_QUERY_TIMEOUT"); timeout != "" {
		c.Database.QueryTimeout = ParseDurationWithFallback(timeout, c.Database.QueryTimeout)
	}
	if timeout := os.Getenv("OT_DB_WRITE_TIMEOUT"); timeout != "" {
		c.Database.WriteTimeout = ParseDurationWithFallback(timeout, c.Database.WriteTimeout)
	}
	if perms := os.Getenv("OT_DB_DIR_PERMISSIONS"); perms != "" {
		c.Database.DirPermissions = ParseUint32WithFallback(perms, 8, c.Database.DirPermissions)
	}

	// Conversion configuration
	if rate := os.Getenv("OT_DEFAULT_RATE"); rate != "" {
		if r, err := strconv.ParseFloat(rate, 64); err == nil {
			c.Conversion.DefaultRate = r
		}
	}

	// Display configuration
	if format := os.Getenv("OT_DISPLAY_DATE_FORMAT"); format != "" {
		c.Display.DateFormat = format
	}
	if width := os.Getenv("OT_DISPLAY_CHART_WIDTH"); width != "" {
		c.Display.ChartWidth = ParseIntWithFallback(width, c.Display.ChartWidth)
	}

	// Application configuration
	if timeout := os.Getenv("OT_APP_TIMEOUT"); timeout != "" {
		c.Application.Timeout = ParseDurationWithFallback(timeout, c.Application.Timeout)
	}
	if verbose := os.Getenv("OT_APP_VERBOSE"); verbose != "" {
		c.Application.Verbose = ParseBoolWithFallback(verbose, c.Application.Verbose)
	}

	// Export configuration
	if filename := os.Getenv("OT_EXPORT_FILENAME"); filename != "" {
		c.Export.Filename = filename
	}

	return nil
}

// Validate validates the configuration and returns any errors
func (c *Config) Validate() error {
	// Validate database configuration
	if c.Database.Driver != DriverSQLite && c.Database.Driver != DriverBolt {
		return &ConfigError{Field: "database.driver", Message: "driver must be sqlite or bolt"}
	}
	if c.Database.Dir == "" {
		return &ConfigError{Field: "database.dir", Message: "database directory cannot be empty"}
	}
	if c.Database.Filename == "" {
		return &ConfigError{Field: "database.filename", Message: "database filename cannot be empty"}
	}
	if c.Database.QueryTimeout <= 0 {
		return &ConfigError{Field: "database.query_timeout", Message: "query timeout must be positive"}
	}
	if c.Database.WriteTimeout <= 0 {
		return &ConfigError{Field: "database.write_timeout", Message: "write timeout must be positive"}
	}

	// Validate conversion configuration
	if err := validation.ValidateConversionRate(c.Conversion.DefaultRate); err != nil {
		return &ConfigError{Field: "conversion.default_rate", Message: "default rate must be a finite number of at least 1"}
	}

	// Validate display configuration
	if c.Display.DateFormat == "" {
		return &ConfigError{Field: "display.date_format", Message: "date format cannot be empty"}
	}
	if c.Display.ChartWidth < 10 {
		return &ConfigError{Field: "display.chart_width", Message: "chart width must be at least 10"}
	}

	// Validate application configuration
	if c.Application.Timeout <= 0 {
		return &ConfigError{Field: "application.timeout", Message: "application timeout must be positive"}
	}

	// Validate export configuration
	if c.Export.Filename == "" {
		return &ConfigError{Field: "export.filename", Message: "export filename cannot be empty"}
	}

	return nil
}

// ConfigError represents a configuration validation error
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return e.Field + ": " + e.Message
}
