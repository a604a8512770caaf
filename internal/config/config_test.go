package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validConfig() *Config {
	return &Config{
		Server:  ServerConfig{Port: "8080"},
		MongoDB: MongoDBConfig{URI: "mongodb://localhost:27017", DBName: "dairybook"},
		Auth:    AuthConfig{JWTSecret: "secret", TokenTTL: time.Hour},
		Reporting: ReportingConfig{
			CronSchedule: "30 1 1 * *",
			Timezone:     "Asia/Kolkata",
		},
	}
}

func TestValidateAcceptsMinimalConfig(t *testing.T) {
	require.NoError(t, validConfig().Validate())
}

func TestValidateRejectsMissingFields(t *testing.T) {
	cases := []struct {
		name   string
		mutate func(*Config)
	}{
		{"missing port", func(c *Config) { c.Server.Port = "" }},
		{"missing mongo uri", func(c *Config) { c.MongoDB.URI = "" }},
		{"missing db name", func(c *Config) { c.MongoDB.DBName = "" }},
		{"missing jwt secret", func(c *Config) { c.Auth.JWTSecret = "" }},
		{"zero token ttl", func(c *Config) { c.Auth.TokenTTL = 0 }},
		{"missing cron schedule", func(c *Config) { c.Reporting.CronSchedule = "" }},
		{"missing timezone", func(c *Config) { c.Reporting.Timezone = "" }},
		{"half-configured sheets", func(c *Config) { c.Sheets.SpreadsheetID = "sheet-id" }},
		{"notify token without phone id", func(c *Config) { c.Notify.AccessToken = "tok" }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			cfg := validConfig()
			tc.mutate(cfg)
			assert.Error(t, cfg.Validate())
		})
	}
}

func TestFeatureToggles(t *testing.T) {
	cfg := validConfig()
	assert.False(t, cfg.SheetsEnabled())
	assert.False(t, cfg.NotifyEnabled())

	cfg.Sheets = SheetsConfig{CredentialsPath: "creds.json", SpreadsheetID: "sheet-id"}
	cfg.Notify = NotifyConfig{AccessToken: "tok", PhoneNumberID: "12345"}
	require.NoError(t, cfg.Validate())
	assert.True(t, cfg.SheetsEnabled())
	assert.True(t, cfg.NotifyEnabled())
}
