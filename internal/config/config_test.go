package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLoader() *Loader {
	return NewLoader().WithConfigFile("").WithEnvFile("")
}

func TestNewConfig_Defaults(t *testing.T) {
	cfg := NewConfig()

	assert.Equal(t, DriverSQLite, cfg.Database.Driver)
	assert.Equal(t, "ot.db", cfg.Database.Filename)
	assert.Equal(t, 1.5, cfg.Conversion.DefaultRate)
	assert.Equal(t, "overtime_history.csv", cfg.Export.Filename)
	assert.Equal(t, uint32(0755), cfg.Database.DirPermissions)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("OT_DB_DRIVER", "bolt")
	t.Setenv("OT_DB_DIR", "/tmp/ot-env")
	t.Setenv("OT_DB_FILENAME", "env.bolt")
	t.Setenv("OT_DB_QUERY_TIMEOUT", "3s")
	t.Setenv("OT_DB_WRITE_TIMEOUT", "not-a-duration")
	t.Setenv("OT_DB_DIR_PERMISSIONS", "0700")
	t.Setenv("OT_DEFAULT_RATE", "2")
	t.Setenv("OT_DISPLAY_CHART_WIDTH", "60")
	t.Setenv("OT_APP_VERBOSE", "true")
	t.Setenv("OT_EXPORT_FILENAME", "out.csv")

	cfg, err := newTestLoader().Load()
	require.NoError(t, err)

	assert.Equal(t, DriverBolt, cfg.Database.Driver)
	assert.Equal(t, filepath.Join("/tmp/ot-env", "env.bolt"), cfg.GetDatabasePath())
	assert.Equal(t, 3*time.Second, cfg.GetQueryTimeout())
	assert.Equal(t, 5*time.Second, cfg.GetWriteTimeout())
	assert.Equal(t, uint32(0700), cfg.Database.DirPermissions)
	assert.Equal(t, 2.0, cfg.Conversion.DefaultRate)
	assert.Equal(t, 60, cfg.Display.ChartWidth)
	assert.True(t, cfg.Application.Verbose)
	assert.Equal(t, "out.csv", cfg.Export.Filename)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
		field  string
	}{
		{"unknown driver", func(c *Config) { c.Database.Driver = "mysql" }, "database.driver"},
		{"empty dir", func(c *Config) { c.Database.Dir = "" }, "database.dir"},
		{"zero query timeout", func(c *Config) { c.Database.QueryTimeout = 0 }, "database.query_timeout"},
		{"rate below one", func(c *Config) { c.Conversion.DefaultRate = 0.8 }, "conversion.default_rate"},
		{"narrow chart", func(c *Config) { c.Display.ChartWidth = 5 }, "display.chart_width"},
		{"empty export filename", func(c *Config) { c.Export.Filename = "" }, "export.filename"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.mutate(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			var configErr *ConfigError
			require.ErrorAs(t, err, &configErr)
			assert.Equal(t, tt.field, configErr.Field)
		})
	}
}

func TestLoadWithOverrides(t *testing.T) {
	t.Setenv("OT_DB_DIR", "/tmp/from-env")
	t.Setenv("OT_DEFAULT_RATE", "2")

	dir := "/tmp/from-flag"
	verbose := true
	cfg, err := newTestLoader().LoadWithOverrides(&ConfigOverrides{
		DBDir:   &dir,
		Verbose: &verbose,
	})
	require.NoError(t, err)

	assert.Equal(t, "/tmp/from-flag", cfg.Database.Dir)
	assert.Equal(t, 2.0, cfg.Conversion.DefaultRate)
	assert.True(t, cfg.Application.Verbose)

	badRate := 0.1
	_, err = newTestLoader().LoadWithOverrides(&ConfigOverrides{DefaultRate: &badRate})
	assert.Error(t, err)
}

func TestParseWithFallback(t *testing.T) {
	assert.Equal(t, time.Minute, ParseDurationWithFallback("1m", time.Second))
	assert.Equal(t, time.Second, ParseDurationWithFallback("soon", time.Second))
	assert.Equal(t, 7, ParseIntWithFallback("x", 7))
	assert.True(t, ParseBoolWithFallback("maybe", true))
	assert.Equal(t, uint32(0750), ParseUint32WithFallback("750", 8, 0))
	assert.Equal(t, uint32(1), ParseUint32WithFallback("9", 8, 1))
}

func TestGetEnvironment(t *testing.T) {
	t.Setenv("OT_ENV", "testing")
	assert.Equal(t, Testing, GetEnvironment())

	t.Setenv("OT_ENV", "development")
	assert.Equal(t, Development, GetEnvironment())

	os.Unsetenv("OT_ENV")
	assert.Equal(t, Production, GetEnvironment())
}
