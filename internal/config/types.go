package config

import "time"

// SlreloadConfig is the top-level configuration structure for slreload.
type SlreloadConfig struct {
	SoftLayer SoftLayerConfig `yaml:"softlayer"`
	Reload    ReloadConfig    `yaml:"reload"`
}

// SoftLayerConfig holds the credentials and transport settings for the
// SoftLayer REST API.
type SoftLayerConfig struct {
	Username string        `yaml:"username,omitempty"` // API user name (env: SL_USERNAME)
	APIKey   string        `yaml:"apiKey,omitempty"`   // API key (env: SL_API_KEY)
	Endpoint string        `yaml:"endpoint,omitempty"` // REST endpoint (env: SL_API_ENDPOINT)
	Timeout  time.Duration `yaml:"timeout,omitempty"`  // Per-request timeout
	Retries  int           `yaml:"retries,omitempty"`  // Retries for read-only calls; reloads are never retried
}

// ReloadConfig tunes the completion polling loop.
type ReloadConfig struct {
	PollInterval time.Duration `yaml:"pollInterval,omitempty"` // Wait between polls
	MaxWait      time.Duration `yaml:"maxWait,omitempty"`      // Give up after this long; 0 waits forever
}
