package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func missingFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "missing.env")
}

func TestLoadFile_Defaults(t *testing.T) {
	cfg, err := LoadFile(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.Addr())
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, "medical-data-entry", cfg.AppName)
	assert.Equal(t, 10*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, PolicyStop, cfg.SubmitPolicy)
	assert.False(t, cfg.ContinueOnFailure())
	assert.Equal(t, "en", cfg.DefaultLang)
	assert.Equal(t, 30*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "medical_records", cfg.RecordsTable)
}

func TestLoadFile_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SUBMIT_POLICY", "Continue")
	t.Setenv("HTTP_CLIENT_TIMEOUT", "3s")
	t.Setenv("DEFAULT_LANG", "es")
	t.Setenv("SESSION_TTL", "5m")
	t.Setenv("RECORDS_TABLE", " clinic.visits ")

	cfg, err := LoadFile(missingFile(t))
	require.NoError(t, err)

	assert.Equal(t, 5*time.Minute, cfg.SessionTTL)
	assert.Equal(t, "clinic.visits", cfg.RecordsTable)

	assert.Equal(t, "9090", cfg.Port)
	assert.True(t, cfg.ContinueOnFailure())
	assert.Equal(t, 3*time.Second, cfg.HTTPClientTimeout)
	assert.Equal(t, "es", cfg.DefaultLang)
}

func TestLoadFile_DotEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(path, []byte("PORT=7070\nLOG_FORMAT=json\n"), 0o600))

	cfg, err := LoadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "7070", cfg.Port)
	assert.Equal(t, "json", cfg.LogFormat)
}

func TestLoadFile_RejectsUnknownPolicy(t *testing.T) {
	t.Setenv("SUBMIT_POLICY", "retry")

	_, err := LoadFile(missingFile(t))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "SUBMIT_POLICY")
}

func TestValidate_Timeouts(t *testing.T) {
	cfg := &Config{
		Port: "8080", SubmitPolicy: PolicyStop, HTTPClientTimeout: 0,
		ReadTimeout: time.Second, WriteTimeout: time.Second,
		SessionTTL: time.Minute, RecordsTable: "medical_records",
	}
	assert.Error(t, cfg.Validate())

	cfg.HTTPClientTimeout = time.Second
	assert.NoError(t, cfg.Validate())

	cfg.SessionTTL = 0
	assert.Error(t, cfg.Validate())
}
