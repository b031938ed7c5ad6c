// Package config provides configuration management for slreload.
//
// Configuration is read from config.yaml in a single directory, by default
// ~/.config/slreload; the --config-path flag points elsewhere. A missing
// file is not an error: the built-in defaults apply.
//
// # File format
//
//	softlayer:
//	  username: alice
//	  apiKey: 0123abcd
//	  endpoint: https://api.softlayer.com/rest/v3.1
//	  timeout: 30s
//	  retries: 0
//	reload:
//	  pollInterval: 5s
//	  maxWait: 0s
//
// # Environment
//
// SL_USERNAME, SL_API_KEY and SL_API_ENDPOINT override the file, so the
// same variables that drive the SoftLayer tooling work here as well.
//
// # Validation
//
// Validate reports every problem at once as ValidationErrors; parse and IO
// failures come back as *ConfigurationError with suggestions.
package config
