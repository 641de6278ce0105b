package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoadFile_MissingUsesDefaults(t *testing.T) {
	cfg, info, err := LoadFile(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
	assert.False(t, info.PortSpecified)
}

func TestLoadFile_TomlOverridesDefaults(t *testing.T) {
	path := writeConfig(t, `
[server]
port = 8088

[data]
backend = "file"

[export]
default_format = "xlsx"
`)
	cfg, info, err := LoadFile(path)
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 8088, cfg.Server.Port)
	assert.Equal(t, "file", cfg.Data.Backend)
	assert.Equal(t, "xlsx", cfg.Export.DefaultFormat)
	assert.Equal(t, "data", cfg.Data.DataDir)
	assert.Equal(t, 10, cfg.Export.DownloadTTLMinutes)
}

func TestLoadFile_EnvOverridesToml(t *testing.T) {
	t.Setenv("ROMANEIO_SERVER_PORT", "9000")
	t.Setenv("ROMANEIO_LOGGING_LEVEL", "debug")
	t.Setenv("ROMANEIO_DATA_BACKEND", "memory")

	cfg, info, err := LoadFile(writeConfig(t, "[data]\nbackend = \"file\"\n"))
	require.NoError(t, err)
	assert.True(t, info.PortSpecified)
	assert.Equal(t, 9000, cfg.Server.Port)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "memory", cfg.Data.Backend)
}

func TestLoadFile_Invalid(t *testing.T) {
	_, _, err := LoadFile(writeConfig(t, "[data]\nbackend = \"postgres\"\n"))
	assert.Error(t, err)

	_, _, err = LoadFile(writeConfig(t, "[server\nport ="))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	envPath := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(envPath, []byte("ROMANEIO_IMPORT_MAX_UPLOAD_MB=64\n"), 0644))
	t.Setenv("ROMANEIO_IMPORT_MAX_UPLOAD_MB", "")
	require.NoError(t, os.Unsetenv("ROMANEIO_IMPORT_MAX_UPLOAD_MB"))

	loadDotEnv(filepath.Join(dir, "missing.env"), envPath)
	cfg, _, err := LoadFile(filepath.Join(dir, "config.toml"))
	require.NoError(t, err)
	assert.Equal(t, 64, cfg.Import.MaxUploadMB)
}
