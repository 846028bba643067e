package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"gopkg.in/ini.v1"
)

// DefaultConfigFile returns ~/.ot/config.ini, or OT_CONFIG_FILE when set
func DefaultConfigFile() string {
	if path := os.Getenv("OT_CONFIG_FILE"); path != "" {
		return path
	}
	homeDir, _ := os.UserHomeDir()
	return filepath.Join(homeDir, ".ot", "config.ini")
}

// LoadFromFile overlays values from an ini file. A missing file is not an error.
//
//	[database]
//	driver = bolt
//	dir = /var/lib/ot
//	query_timeout = 5s
//
//	[conversion]
//	default_rate = 2
func (c *Config) LoadFromFile(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}

	cfg, err := ini.Load(path)
	if err != nil {
		return &ConfigError{Field: "config_file", Message: err.Error()}
	}

	db := cfg.Section("database")
	if db.HasKey("driver") {
		c.Database.Driver = db.Key("driver").String()
	}
	if db.HasKey("dir") {
		c.Database.Dir = db.Key("dir").String()
	}
	if db.HasKey("filename") {
		c.Database.Filename = db.Key("filename").String()
	}
	if db.HasKey("query_timeout") {
		c.Database.QueryTimeout = db.Key("query_timeout").MustDuration(c.Database.QueryTimeout)
	}
	if db.HasKey("write_timeout") {
		c.Database.WriteTimeout = db.Key("write_timeout").MustDuration(c.Database.WriteTimeout)
	}
	if db.HasKey("dir_permissions") {
		c.Database.DirPermissions = ParseUint32WithFallback(db.Key("dir_permissions").String(), 8, c.Database.DirPermissions)
	}

	conversion := cfg.Section("conversion")
	if conversion.HasKey("default_rate") {
		c.Conversion.DefaultRate = conversion.Key("default_rate").MustFloat64(c.Conversion.DefaultRate)
	}

	display := cfg.Section("display")
	if display.HasKey("date_format") {
		c.Display.DateFormat = display.Key("date_format").String()
	}
	if display.HasKey("chart_width") {
		c.Display.ChartWidth = display.Key("chart_width").MustInt(c.Display.ChartWidth)
	}

	app := cfg.Section("application")
	if app.HasKey("timeout") {
		c.Application.Timeout = app.Key("timeout").MustDuration(c.Application.Timeout)
	}
	if app.HasKey("verbose") {
		c.Application.Verbose = app.Key("verbose").MustBool(c.Application.Verbose)
	}

	export := cfg.Section("export")
	if export.HasKey("filename") {
		c.Export.Filename = export.Key("filename").String()
	}

	return nil
}

// LoadDotEnv copies variables from a .env file into the process environment.
// Variables already set are left alone; a missing file is not an error.
func LoadDotEnv(path string) error {
	if path == "" {
		return nil
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	if err := godotenv.Load(path); err != nil {
		return &ConfigError{Field: "env_file", Message: err.Error()}
	}
	return nil
}
