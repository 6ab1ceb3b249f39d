package config

import (
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromEnvDefaults(t *testing.T) {
	for _, key := range []string{
		"WHOIS_ADDR", "LOG_LEVEL", "REDIS_URL", "WHOIS_CACHE_TTL", "WHOIS_STRATEGY",
		"WHOIS_MAX_FOLLOW", "WHOIS_SERVERS_FILE", "BATCH_CONCURRENCY",
	} {
		t.Setenv(key, "")
	}

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, slog.LevelInfo, cfg.Server.LogLevel)
	assert.Empty(t, cfg.Redis.URL)
	assert.Equal(t, 10, cfg.Redis.PoolSize)
	assert.Equal(t, time.Duration(0), cfg.Redis.CacheTTL)
	assert.Equal(t, "config/tld_servers.json", cfg.Lookup.ServersFile)
	assert.Equal(t, "whois", cfg.Lookup.Strategy)
	assert.Equal(t, 1, cfg.Lookup.MaxFollow)
	assert.Equal(t, 5, cfg.Lookup.BatchConcurrency)
	assert.Equal(t, 10*time.Second, cfg.Lookup.WhoisTimeout)
}

func TestFromEnvOverrides(t *testing.T) {
	t.Setenv("WHOIS_ADDR", ":9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_URL", "redis://localhost:6379/0")
	t.Setenv("WHOIS_CACHE_TTL", "24h")
	t.Setenv("WHOIS_STRATEGY", "rdap")
	t.Setenv("WHOIS_MAX_FOLLOW", "3")
	t.Setenv("RDAP_TIMEOUT", "2s")

	cfg, err := FromEnv()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Addr)
	assert.Equal(t, slog.LevelDebug, cfg.Server.LogLevel)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 24*time.Hour, cfg.Redis.CacheTTL)
	assert.Equal(t, "rdap", cfg.Lookup.Strategy)
	assert.Equal(t, 3, cfg.Lookup.MaxFollow)
	assert.Equal(t, 2*time.Second, cfg.Lookup.RDAPTimeout)
}

func TestFromEnvRejectsMalformedValues(t *testing.T) {
	tests := map[string]struct {
		key, value string
	}{
		"integer":          {"WHOIS_MAX_FOLLOW", "one"},
		"negative follow":  {"WHOIS_MAX_FOLLOW", "-1"},
		"duration":         {"WHOIS_TIMEOUT", "ten seconds"},
		"negative ttl":     {"WHOIS_CACHE_TTL", "-1m"},
		"level":            {"LOG_LEVEL", "chatty"},
		"zero concurrency": {"BATCH_CONCURRENCY", "0"},
	}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Setenv(tt.key, tt.value)
			_, err := FromEnv()
			assert.ErrorContains(t, err, tt.key)
		})
	}
}
