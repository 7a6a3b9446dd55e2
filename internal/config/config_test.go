package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func restrictedConfig(hosts ...string) *Config {
	cfg := &Config{}
	cfg.Tracking.RestrictedHosts = hosts
	return cfg
}

func TestIsRestrictedHost(t *testing.T) {
	cfg := restrictedConfig("localhost", "vercel.app")

	// Сравнение подстрокой: порт и поддомен не мешают
	assert.True(t, cfg.IsRestrictedHost("localhost"))
	assert.True(t, cfg.IsRestrictedHost("localhost:3000"))
	assert.True(t, cfg.IsRestrictedHost("ulp-git-main-team.vercel.app"))

	assert.False(t, cfg.IsRestrictedHost("ulp.example.com"))
	assert.False(t, cfg.IsRestrictedHost("127.0.0.1:4000"))
	assert.False(t, cfg.IsRestrictedHost(""))
}

func TestIsRestrictedHost_EmptyEntriesIgnored(t *testing.T) {
	cfg := restrictedConfig("", "localhost")

	assert.False(t, cfg.IsRestrictedHost("ulp.example.com"))
	assert.True(t, cfg.IsRestrictedHost("localhost:3000"))
}

func TestApplyDefaults(t *testing.T) {
	cfg := &Config{}
	applyDefaults(cfg)

	assert.Equal(t, 8*60, cfg.Auth.TokenTTLMin)
	assert.Equal(t, []string{"localhost", "vercel.app"}, cfg.Tracking.RestrictedHosts)
	assert.Equal(t, "https://ipapi.co", cfg.Tracking.GeoEndpoint)
	assert.Equal(t, 3, cfg.Tracking.GeoTimeoutSec)
	assert.Equal(t, 256, cfg.Tracking.QueueSize)
	assert.NotEmpty(t, cfg.Auth.JWTSecret)
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{}
	cfg.Auth.TokenTTLMin = 30
	cfg.Tracking.QueueSize = 16
	applyDefaults(cfg)

	assert.Equal(t, 30, cfg.Auth.TokenTTLMin)
	assert.Equal(t, 16, cfg.Tracking.QueueSize)
}
