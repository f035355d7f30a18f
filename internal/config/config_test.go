package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const minimalConfig = `
[database]
host = "db"
user = "scheduler"
password = "from-file"
dbname = "scheduling"

[staff_service]
url = "http://staff:8080"

[policy]
rescheduling_enabled = false
max_advance_booking_days = 14
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_AppliesDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.HTTPPort)
	assert.Equal(t, "info", cfg.Logs.Level)
	assert.Equal(t, "smc.", cfg.Kafka.TopicPrefix)
	assert.Equal(t, 86400, cfg.Redis.TTL)
	assert.False(t, cfg.Kafka.Enabled)

	policy := cfg.DomainPolicy()
	assert.False(t, policy.ReschedulingEnabled)
	assert.True(t, policy.AssignmentEnabled)
	assert.Equal(t, 14, policy.MaxAdvanceBookingDays)
}

func TestLoad_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(EnvDBPassword, "from-env")
	t.Setenv(EnvRedisPassword, "redis-secret")

	cfg, err := Load(writeConfig(t, minimalConfig))
	require.NoError(t, err)

	assert.Equal(t, "from-env", cfg.Database.Password)
	assert.Equal(t, "redis-secret", cfg.Redis.Password)
	assert.Contains(t, cfg.Database.DSN(), "password=from-env")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, ErrReadConfig)

	_, err = Load(writeConfig(t, "[server\nhttp_port = 1"))
	assert.ErrorIs(t, err, ErrReadConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"bad port", func(c *Config) { c.Server.HTTPPort = 70000 }},
		{"no staff url", func(c *Config) { c.StaffService.URL = "" }},
		{"kafka without brokers", func(c *Config) { c.Kafka.Enabled = true }},
		{"redis without addr", func(c *Config) { c.Redis.Enabled = true }},
		{"negative horizon", func(c *Config) { c.Policy.MaxAdvanceBookingDays = -1 }},
		{"unknown log level", func(c *Config) { c.Logs.Level = "trace" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}

	assert.NoError(t, validConfig().Validate())
}

func validConfig() *Config {
	cfg := Default()
	cfg.Database.User = "scheduler"
	cfg.Database.DBName = "scheduling"
	cfg.StaffService.URL = "http://staff:8080"
	return cfg
}
