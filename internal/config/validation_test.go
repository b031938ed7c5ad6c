package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func validConfig() SlreloadConfig {
	c := GetDefaultConfig()
	c.SoftLayer.Username = "alice"
	c.SoftLayer.APIKey = "secret"
	return c
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*SlreloadConfig)
		wantField string
	}{
		{name: "valid", mutate: func(*SlreloadConfig) {}},
		{name: "missing username", mutate: func(c *SlreloadConfig) { c.SoftLayer.Username = " " }, wantField: "softlayer.username"},
		{name: "missing api key", mutate: func(c *SlreloadConfig) { c.SoftLayer.APIKey = "" }, wantField: "softlayer.apiKey"},
		{name: "relative endpoint", mutate: func(c *SlreloadConfig) { c.SoftLayer.Endpoint = "api.softlayer.com" }, wantField: "softlayer.endpoint"},
		{name: "ftp endpoint", mutate: func(c *SlreloadConfig) { c.SoftLayer.Endpoint = "ftp://api.softlayer.com" }, wantField: "softlayer.endpoint"},
		{name: "negative timeout", mutate: func(c *SlreloadConfig) { c.SoftLayer.Timeout = -time.Second }, wantField: "softlayer.timeout"},
		{name: "negative retries", mutate: func(c *SlreloadConfig) { c.SoftLayer.Retries = -1 }, wantField: "softlayer.retries"},
		{name: "zero poll interval", mutate: func(c *SlreloadConfig) { c.Reload.PollInterval = 0 }, wantField: "reload.pollInterval"},
		{name: "negative max wait", mutate: func(c *SlreloadConfig) { c.Reload.MaxWait = -time.Minute }, wantField: "reload.maxWait"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := validConfig()
			tt.mutate(&c)
			err := Validate(c)
			if tt.wantField == "" {
				assert.NoError(t, err)
				return
			}
			if assert.Error(t, err) {
				assert.Contains(t, err.Error(), tt.wantField)
			}
		})
	}
}

func TestValidationErrors_Error(t *testing.T) {
	var errs ValidationErrors
	assert.Equal(t, "no validation errors", errs.Error())

	errs.Add("a", "is bad")
	assert.Equal(t, "field 'a': is bad", errs.Error())

	errs.Add("b", "is worse", 3)
	assert.Equal(t, "validation failed: field 'a': is bad; field 'b': is worse", errs.Error())
	assert.Equal(t, 3, errs[1].Value)
}
