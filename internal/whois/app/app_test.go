package app

import (
	"bytes"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"domainlookup/internal/platform/config"
	"domainlookup/internal/platform/logger"
)

func testConfig(t *testing.T) config.Lookup {
	t.Helper()
	path := filepath.Join(t.TempDir(), "tld_servers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{".com": "whois.verisign-grs.com"}`), 0o600))
	return config.Lookup{
		ServersFile:      path,
		Strategy:         "whois",
		MaxFollow:        1,
		WhoisTimeout:     time.Second,
		RDAPTimeout:      time.Second,
		RDAPBootstrapURL: "http://127.0.0.1:1/dns.json",
	}
}

func TestNewLookupService(t *testing.T) {
	log := slog.New(slog.DiscardHandler)

	t.Run("builds both strategies", func(t *testing.T) {
		for _, strategy := range []string{"whois", "rdap"} {
			cfg := testConfig(t)
			cfg.Strategy = strategy
			svc, err := NewLookupService(cfg, log)
			require.NoError(t, err, strategy)
			assert.NotNil(t, svc)
		}
	})

	t.Run("missing tld file still builds", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.ServersFile = filepath.Join(t.TempDir(), "absent.json")
		_, err := NewLookupService(cfg, log)
		assert.NoError(t, err)
	})

	t.Run("malformed tld file fails", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(cfg.ServersFile, []byte(`{".com": [`), 0o600))
		_, err := NewLookupService(cfg, log)
		assert.Error(t, err)
	})

	t.Run("null tld file fails", func(t *testing.T) {
		cfg := testConfig(t)
		require.NoError(t, os.WriteFile(cfg.ServersFile, []byte(`null`), 0o600))
		_, err := NewLookupService(cfg, log)
		assert.Error(t, err)
	})

	t.Run("table load is logged once", func(t *testing.T) {
		var buf bytes.Buffer
		_, err := NewLookupService(testConfig(t), logger.NewWithWriter(&buf, slog.LevelInfo))
		require.NoError(t, err)
		assert.Equal(t, 1, bytes.Count(buf.Bytes(), []byte("tld servers")))
	})

	t.Run("unknown strategy fails", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.Strategy = "finger"
		_, err := NewLookupService(cfg, log)
		assert.ErrorContains(t, err, "finger")
	})

	t.Run("bad proxy fails", func(t *testing.T) {
		cfg := testConfig(t)
		cfg.WhoisProxy = "gopher://127.0.0.1:70"
		_, err := NewLookupService(cfg, log)
		assert.ErrorContains(t, err, "whois proxy")
	})
}
