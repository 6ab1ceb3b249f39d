package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTLDsCommand(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tld_servers.json")
	require.NoError(t, os.WriteFile(path, []byte(`{".org": "whois.pir.org", ".com": "whois.verisign-grs.com"}`), 0o600))
	t.Setenv("WHOIS_SERVERS_FILE", path)

	var out bytes.Buffer
	cmd := tldsEntry()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	require.NoError(t, cmd.Execute())
	assert.Equal(t, ".com\twhois.verisign-grs.com\n.org\twhois.pir.org\n", out.String())
}

func TestLookupCommandReportsConfigurationFailures(t *testing.T) {
	t.Setenv("WHOIS_SERVERS_FILE", filepath.Join(t.TempDir(), "absent.json"))
	t.Setenv("WHOIS_STRATEGY", "whois")

	var out bytes.Buffer
	cmd := lookupEntry()
	cmd.SetOut(&out)
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{"example.com"})

	err := cmd.Execute()
	assert.ErrorContains(t, err, "1 of 1 lookups failed")
	assert.Contains(t, out.String(), `"status":false`)
	assert.Contains(t, out.String(), "no whois server configured")
}

func TestLookupCommandRequiresDomain(t *testing.T) {
	cmd := lookupEntry()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetErr(&bytes.Buffer{})
	cmd.SetArgs([]string{})

	assert.Error(t, cmd.Execute())
}
