package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, 24*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Session.CookieSecure)
	assert.Equal(t, AuthModeDirectory, cfg.Auth.Mode)
	assert.Equal(t, 5*time.Second, cfg.Auth.Timeout)
	assert.Equal(t, 4, cfg.AuditWorkers)
	assert.Equal(t, "dashboard", cfg.Mongo.Database)
	assert.True(t, cfg.IsDevelopment())
}

func TestLoad_Overrides(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":            "s3cret",
		"ENV":                   "production",
		"SESSION_TTL":           "8h",
		"SESSION_COOKIE_SECURE": "true",
		"AUTH_MODE":             "remote",
		"AUTH_API_URL":          "http://identity:5000",
		"POLICY_FILE":           "/etc/dashboard/policy.yaml",
		"REDIS_DB":              "2",
	}))
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, 8*time.Hour, cfg.Session.TTL)
	assert.True(t, cfg.Session.CookieSecure)
	assert.Equal(t, "http://identity:5000", cfg.Auth.APIURL)
	assert.Equal(t, "/etc/dashboard/policy.yaml", cfg.PolicyFile)
	assert.Equal(t, 2, cfg.Redis.DB)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_Invalid(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"AUTH_MODE": "remote",
	}))
	require.NoError(t, err)
	err = cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JWT_SECRET is required")
	assert.Contains(t, err.Error(), "AUTH_API_URL is required")

	cfg, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET": "s3cret",
		"AUTH_MODE":  "ldap",
	}))
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), `unknown AUTH_MODE "ldap"`)

	_, err = load(context.Background(), envconfig.MapLookuper(map[string]string{
		"JWT_SECRET":  "s3cret",
		"SESSION_TTL": "soon",
	}))
	assert.Error(t, err)
}

func TestConfig_PolicyPath(t *testing.T) {
	cfg, err := load(context.Background(), envconfig.MapLookuper(map[string]string{
		"POLICY_FILE": "/etc/dashboard/policy.yaml",
	}))
	require.NoError(t, err)

	assert.Equal(t, "/etc/dashboard/policy.yaml", cfg.PolicyPath(""))
	assert.Equal(t, "./local.yaml", cfg.PolicyPath("./local.yaml"))

	empty, err := load(context.Background(), envconfig.MapLookuper(nil))
	require.NoError(t, err)
	assert.Empty(t, empty.PolicyPath(""))
}
