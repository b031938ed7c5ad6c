package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Helper function to create a temporary config file
func createTempConfigFile(t *testing.T, dir string, content string) string {
	t.Helper()
	tempFilePath := filepath.Join(dir, configFileName)
	err := os.WriteFile(tempFilePath, []byte(content), 0644)
	require.NoError(t, err)
	return tempFilePath
}

func TestLoadConfig_DefaultOnly(t *testing.T) {
	tempDir := t.TempDir()

	loaded, err := LoadConfig(tempDir)
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
}

func TestLoadConfig_EmptyPath(t *testing.T) {
	loaded, err := LoadConfig("")
	require.NoError(t, err)
	assert.Equal(t, GetDefaultConfig(), loaded)
}

func TestLoadConfig_FileOverridesDefaults(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, `
softlayer:
  username: alice
  apiKey: secret
  timeout: 10s
  retries: 2
reload:
  pollInterval: 2s
  maxWait: 1h
`)

	loaded, err := LoadConfig(tempDir)
	require.NoError(t, err)

	assert.Equal(t, "alice", loaded.SoftLayer.Username)
	assert.Equal(t, "secret", loaded.SoftLayer.APIKey)
	assert.Equal(t, DefaultEndpoint, loaded.SoftLayer.Endpoint, "unset keys keep their defaults")
	assert.Equal(t, 10*time.Second, loaded.SoftLayer.Timeout)
	assert.Equal(t, 2, loaded.SoftLayer.Retries)
	assert.Equal(t, 2*time.Second, loaded.Reload.PollInterval)
	assert.Equal(t, time.Hour, loaded.Reload.MaxWait)
}

func TestLoadConfig_Malformed(t *testing.T) {
	tempDir := t.TempDir()
	path := createTempConfigFile(t, tempDir, "softlayer: [not, a, map")

	_, err := LoadConfig(tempDir)
	require.Error(t, err)

	var cfgErr *ConfigurationError
	require.True(t, errors.As(err, &cfgErr))
	assert.Equal(t, "parse", cfgErr.ErrorType)
	assert.Equal(t, path, cfgErr.FilePath)
	assert.Contains(t, cfgErr.DetailedError(), "Suggestions:")
}

func TestApplyEnv(t *testing.T) {
	config := GetDefaultConfig()
	config.SoftLayer.Username = "from-file"

	env := map[string]string{
		EnvUsername: "from-env",
		EnvAPIKey:   "key-from-env",
	}
	ApplyEnv(&config, func(k string) string { return env[k] })

	assert.Equal(t, "from-env", config.SoftLayer.Username)
	assert.Equal(t, "key-from-env", config.SoftLayer.APIKey)
	assert.Equal(t, DefaultEndpoint, config.SoftLayer.Endpoint, "empty env values do not override")
}

func TestLoad_EnvWinsAndValidates(t *testing.T) {
	tempDir := t.TempDir()
	createTempConfigFile(t, tempDir, `
softlayer:
  username: file-user
  apiKey: file-key
`)
	t.Setenv(EnvUsername, "env-user")
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvEndpoint, "")

	loaded, err := Load(tempDir)
	require.NoError(t, err)
	assert.Equal(t, "env-user", loaded.SoftLayer.Username)
	assert.Equal(t, "file-key", loaded.SoftLayer.APIKey)
}

func TestLoad_MissingCredentials(t *testing.T) {
	t.Setenv(EnvUsername, "")
	t.Setenv(EnvAPIKey, "")
	t.Setenv(EnvEndpoint, "")

	_, err := Load(t.TempDir())
	require.Error(t, err)

	var verrs ValidationErrors
	require.True(t, errors.As(err, &verrs))
	assert.Len(t, verrs, 2)
	assert.Contains(t, err.Error(), "softlayer.username")
	assert.Contains(t, err.Error(), "softlayer.apiKey")
}

func TestGetDefaultConfigPath(t *testing.T) {
	original := osUserHomeDir
	defer func() { osUserHomeDir = original }()

	osUserHomeDir = func() (string, error) { return "/home/ops", nil }
	assert.Equal(t, filepath.Join("/home/ops", ".config", "slreload"), GetDefaultConfigPath())

	osUserHomeDir = func() (string, error) { return "", errors.New("no home") }
	assert.Equal(t, "", GetDefaultConfigPath())
}
