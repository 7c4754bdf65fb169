package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validConfig = `{
	"whatsapp": {
		"api_base_url": "http://localhost:3001",
		"session_name": "default"
	},
	"database": {
		"path": "/var/lib/aqarscan/archive.db"
	},
	"store": {
		"snapshot_path": "/var/lib/aqarscan/offers.json"
	}
}`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	require.NoError(t, os.WriteFile(path, []byte(content), 0600))
	return path
}

func TestLoadValidConfig(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:3001", cfg.WhatsApp.APIBaseURL)
	assert.Equal(t, "default", cfg.WhatsApp.SessionName)
	assert.Equal(t, "/var/lib/aqarscan/archive.db", cfg.Database.Path)
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, 30, cfg.WhatsApp.TimeoutSec)
	assert.Equal(t, 300, cfg.Store.CheckpointIntervalSec)
	assert.Equal(t, 200, cfg.Scanner.MaxMessagesPerGroup)
	assert.Equal(t, 1000, cfg.Scanner.GroupDelayMs)
	assert.Equal(t, 30, cfg.Scanner.FetchTimeoutSec)
	assert.Equal(t, 3000, cfg.Server.Port)
	assert.Equal(t, "info", cfg.LogLevel)
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("AQARSCAN_WHATSAPP_API_URL", "http://waha:3001")
	t.Setenv("AQARSCAN_SNAPSHOT_PATH", "/data/offers.json")
	t.Setenv("AQARSCAN_PORT", "8080")
	t.Setenv("AQARSCAN_LOG_LEVEL", "debug")

	cfg, err := Load(writeConfig(t, validConfig))
	require.NoError(t, err)

	assert.Equal(t, "http://waha:3001", cfg.WhatsApp.APIBaseURL)
	assert.Equal(t, "/data/offers.json", cfg.Store.SnapshotPath)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadRejectsMissingRequiredFields(t *testing.T) {
	_, err := Load(writeConfig(t, `{"whatsapp": {"session_name": "default"}}`))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid config")
}

func TestLoadRejectsBadURL(t *testing.T) {
	_, err := Load(writeConfig(t, `{
		"whatsapp": {"api_base_url": "not-a-url", "session_name": "default"},
		"database": {"path": "/tmp/a.db"},
		"store": {"snapshot_path": "/tmp/offers.json"}
	}`))
	assert.Error(t, err)
}

func TestLoadRejectsBadPath(t *testing.T) {
	_, err := Load("")
	assert.Error(t, err)

	_, err = Load("../escape/config.json")
	assert.Error(t, err)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	_, err := Load(writeConfig(t, "{not json"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse config")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.json"))
	assert.Error(t, err)
}
