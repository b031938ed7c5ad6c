package config

import (
	"fmt"
	"net/url"
	"strings"
)

// ValidationError represents a validation error with context
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

// Error implements the error interface
func (ve ValidationError) Error() string {
	if ve.Field == "" {
		return ve.Message
	}
	return fmt.Sprintf("field '%s': %s", ve.Field, ve.Message)
}

// ValidationErrors is a collection of validation errors
type ValidationErrors []ValidationError

// Error implements the error interface for multiple validation errors
func (ve ValidationErrors) Error() string {
	if len(ve) == 0 {
		return "no validation errors"
	}
	if len(ve) == 1 {
		return ve[0].Error()
	}

	var messages []string
	for _, err := range ve {
		messages = append(messages, err.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// HasErrors returns true if there are any validation errors
func (ve ValidationErrors) HasErrors() bool {
	return len(ve) > 0
}

// Add adds a new validation error
func (ve *ValidationErrors) Add(field, message string, value ...interface{}) {
	var val interface{}
	if len(value) > 0 {
		val = value[0]
	}
	*ve = append(*ve, ValidationError{
		Field:   field,
		Value:   val,
		Message: message,
	})
}

// ValidateRequired checks if a required string field is not empty
func ValidateRequired(field, value, hint string) error {
	if strings.TrimSpace(value) == "" {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: fmt.Sprintf("is required (%s)", hint),
		}
	}
	return nil
}

// ValidateEndpoint checks that value is an absolute http(s) URL.
func ValidateEndpoint(field, value string) error {
	u, err := url.Parse(value)
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		return ValidationError{
			Field:   field,
			Value:   value,
			Message: "must be an absolute http or https URL",
		}
	}
	return nil
}

// Validate checks a fully assembled configuration. All problems are
// reported together.
func Validate(config SlreloadConfig) error {
	var errs ValidationErrors

	if err := ValidateRequired("softlayer.username", config.SoftLayer.Username, "set it in config.yaml or "+EnvUsername); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if err := ValidateRequired("softlayer.apiKey", config.SoftLayer.APIKey, "set it in config.yaml or "+EnvAPIKey); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if err := ValidateEndpoint("softlayer.endpoint", config.SoftLayer.Endpoint); err != nil {
		errs = append(errs, err.(ValidationError))
	}
	if config.SoftLayer.Timeout < 0 {
		errs.Add("softlayer.timeout", "must not be negative", config.SoftLayer.Timeout)
	}
	if config.SoftLayer.Retries < 0 {
		errs.Add("softlayer.retries", "must not be negative", config.SoftLayer.Retries)
	}
	if config.Reload.PollInterval <= 0 {
		errs.Add("reload.pollInterval", "must be greater than zero", config.Reload.PollInterval)
	}
	if config.Reload.MaxWait < 0 {
		errs.Add("reload.maxWait", "must not be negative", config.Reload.MaxWait)
	}

	if errs.HasErrors() {
		return errs
	}
	return nil
}
