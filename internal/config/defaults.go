package config

import "time"

const (
	// DefaultEndpoint is the public SoftLayer REST endpoint.
	DefaultEndpoint = "https://api.softlayer.com/rest/v3.1"

	// DefaultTimeout bounds a single API request.
	DefaultTimeout = 30 * time.Second

	// DefaultPollInterval is the wait between completion polls.
	DefaultPollInterval = 5 * time.Second
)

// Environment variables that override the configuration file. They match
// the names used by the SoftLayer command-line tooling.
const (
	EnvUsername = "SL_USERNAME"
	EnvAPIKey   = "SL_API_KEY"
	EnvEndpoint = "SL_API_ENDPOINT"
)

// GetDefaultConfig returns the configuration used when no file is present.
func GetDefaultConfig() SlreloadConfig {
	return SlreloadConfig{
		SoftLayer: SoftLayerConfig{
			Endpoint: DefaultEndpoint,
			Timeout:  DefaultTimeout,
		},
		Reload: ReloadConfig{
			PollInterval: DefaultPollInterval,
		},
	}
}
