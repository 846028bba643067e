package logging

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDebugEnabled(t *testing.T) {
	t.Setenv("OT_DEBUG", "")
	assert.False(t, DebugEnabled(), "empty OT_DEBUG should disable debug")

	t.Setenv("OT_DEBUG", "1")
	assert.True(t, DebugEnabled())
}

func TestDefaultConfig(t *testing.T) {
	t.Setenv("OT_DEBUG", "")
	assert.Equal(t, slog.LevelWarn, DefaultConfig("cli", false).Level)
	assert.Equal(t, slog.LevelDebug, DefaultConfig("cli", true).Level)

	t.Setenv("OT_DEBUG", "true")
	assert.Equal(t, slog.LevelDebug, DefaultConfig("cli", false).Level)
}

func TestLogger_WritesComponent(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelDebug, Component: "store", Writer: &buf})

	logger.Debug("entry inserted", "id", 7)

	out := buf.String()
	assert.Contains(t, out, "component=store")
	assert.Contains(t, out, "id=7")
	assert.Equal(t, "store", logger.Component())
}

func TestLogger_LevelFilter(t *testing.T) {
	var buf bytes.Buffer
	logger := New(Config{Level: slog.LevelWarn, Writer: &buf})

	logger.Debug("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("shown")
	assert.Contains(t, buf.String(), "shown")
	assert.Contains(t, buf.String(), "component=ot")
}

func TestWithComponent(t *testing.T) {
	var buf bytes.Buffer
	child := New(Config{Level: slog.LevelInfo, Component: "app", Writer: &buf}).WithComponent("report")

	child.Info("history built")

	assert.Equal(t, "report", child.Component())
	assert.Contains(t, buf.String(), "component=report")
}

func TestDiscard(t *testing.T) {
	assert.NotPanics(t, func() {
		Discard().Error("nothing to see")
		OrDiscard(nil).Info("still nothing")
	})
}
