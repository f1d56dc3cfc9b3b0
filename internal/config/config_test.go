package config

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "pathquery.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("NEO4J_URI", "")
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "neo4j", cfg.Database)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.False(t, cfg.HasDatabase())
}

func TestLoad_FileThenEnv(t *testing.T) {
	path := writeConfig(t, `
uri: bolt://localhost:7687
username: neo4j
extra_value_label: Organism
extra_value_property: shortName
max_rows: 50
log_level: debug
`)
	t.Setenv("NEO4J_URI", "neo4j://graph:7687")
	t.Setenv("PATHQUERY_MAX_ROWS", "10")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "neo4j://graph:7687", cfg.URI)
	assert.Equal(t, "neo4j", cfg.Username)
	assert.Equal(t, "Organism", cfg.ExtraValueLabel)
	assert.Equal(t, "shortName", cfg.ExtraValueProperty)
	assert.Equal(t, 10, cfg.MaxRows)
	assert.True(t, cfg.HasDatabase())
}

func TestLoad_Errors(t *testing.T) {
	tests := []struct {
		name string
		body string
		env  map[string]string
	}{
		{name: "malformed yaml", body: "uri: [oops"},
		{name: "bad log level", body: "log_level: chatty"},
		{name: "negative max rows", body: "max_rows: -1"},
		{name: "label without property", body: "extra_value_label: Organism"},
		{name: "bad max rows env", env: map[string]string{"PATHQUERY_MAX_ROWS": "many"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			path := ""
			if tt.body != "" {
				path = writeConfig(t, tt.body)
			}
			_, err := Load(path)
			assert.Error(t, err)
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestParseLogLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{"debug": slog.LevelDebug, "INFO": slog.LevelInfo, "warn": slog.LevelWarn, " error ": slog.LevelError} {
		got, err := ParseLogLevel(in)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
}
