package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwebster45206/sultan-admin/internal/config"
)

func TestSetup_ProductionWritesJSON(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := setup(&buf, &config.Config{Environment: "production", LogLevel: "info"})
	log.Debug("hidden")
	log.Info("Server starting", "port", "8080")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)
	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "Server starting", rec["msg"])
	assert.Equal(t, "sultan-admin", rec["service"])
	assert.Same(t, log, slog.Default())
}

func TestSetup_DevelopmentWritesText(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := setup(&buf, &config.Config{Environment: "development", LogLevel: "debug"})
	log.Debug("visible")

	assert.Contains(t, buf.String(), "msg=visible")
}
