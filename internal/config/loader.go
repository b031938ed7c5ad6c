package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"slreload/pkg/logging"

	"gopkg.in/yaml.v3"
)

const (
	userConfigDir  = ".config/slreload"
	configFileName = "config.yaml"
)

// osUserHomeDir is swapped out in tests.
var osUserHomeDir = os.UserHomeDir

// GetDefaultConfigPath returns ~/.config/slreload, or an empty string when
// the home directory cannot be determined.
func GetDefaultConfigPath() string {
	homeDir, err := osUserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(homeDir, userConfigDir)
}

// LoadConfig loads config.yaml from the given directory on top of the
// defaults. A missing file is not an error.
func LoadConfig(configPath string) (SlreloadConfig, error) {
	config := GetDefaultConfig()
	if configPath == "" {
		logging.Debug("ConfigLoader", "No configuration directory, using defaults")
		return config, nil
	}

	configFilePath := filepath.Join(configPath, configFileName)
	data, err := os.ReadFile(configFilePath)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logging.Debug("ConfigLoader", "No config.yaml found at %s, using defaults", configFilePath)
			return config, nil
		}
		return SlreloadConfig{}, &ConfigurationError{
			FilePath:  configFilePath,
			ErrorType: "io",
			Message:   err.Error(),
		}
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return SlreloadConfig{}, &ConfigurationError{
			FilePath:  configFilePath,
			ErrorType: "parse",
			Message:   err.Error(),
			Suggestions: []string{
				"Durations are written like 5s, 2m or 1h30m",
				fmt.Sprintf("Remove %s to fall back to defaults", configFilePath),
			},
		}
	}
	logging.Debug("ConfigLoader", "Loaded configuration from %s", configFilePath)
	return config, nil
}

// ApplyEnv overrides credentials and endpoint from the environment.
// getenv is usually os.Getenv.
func ApplyEnv(config *SlreloadConfig, getenv func(string) string) {
	if v := getenv(EnvUsername); v != "" {
		config.SoftLayer.Username = v
	}
	if v := getenv(EnvAPIKey); v != "" {
		config.SoftLayer.APIKey = v
	}
	if v := getenv(EnvEndpoint); v != "" {
		config.SoftLayer.Endpoint = v
	}
}

// Load reads the configuration directory, applies environment overrides
// and validates the result.
func Load(configPath string) (SlreloadConfig, error) {
	config, err := LoadConfig(configPath)
	if err != nil {
		return SlreloadConfig{}, err
	}
	ApplyEnv(&config, os.Getenv)
	if err := Validate(config); err != nil {
		return SlreloadConfig{}, err
	}
	return config, nil
}
