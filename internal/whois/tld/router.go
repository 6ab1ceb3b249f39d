// Package tld maps a domain's top-level label to the WHOIS server configured for it.
//
// The table is loaded once at startup through Load and is read-only afterwards.
package tld

import (
	"bytes"
	"cmp"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"net"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/miekg/dns"
	"golang.org/x/net/idna"
	"golang.org/x/net/publicsuffix"
	"gopkg.in/yaml.v3"
)

// Router resolves WHOIS servers from a static TLD table.
type Router struct {
	servers map[string]string
}

// ErrEmptyTable is returned when a TLD table file holds no document at all.
var ErrEmptyTable = errors.New("tld table is empty")

// NewRouter builds a router from a TLD→server map. Keys are normalised to
// lowercase with a leading dot; entries with an empty key or server are dropped.
// Tables read from disk go through Load, which rejects such entries instead.
func NewRouter(servers map[string]string) *Router {
	table := make(map[string]string, len(servers))
	for tld, server := range servers {
		key := normalizeKey(tld)
		server = strings.TrimSpace(server)
		if key == "" || server == "" {
			continue
		}
		table[key] = server
	}
	return &Router{servers: table}
}

// Load reads the TLD table from path. A missing file yields an empty router and
// a warning; a file that cannot be parsed is an error. Paths ending in .yaml or
// .yml are decoded as YAML, everything else as strict JSON.
func Load(path string, logger *slog.Logger) (*Router, error) {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		if logger != nil {
			logger.Warn("tld servers file not found, starting with empty table", "path", path)
		}
		return NewRouter(nil), nil
	}
	if err != nil {
		return nil, fmt.Errorf("read tld servers file %s: %w", path, err)
	}

	parse := Parse
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		parse = ParseYAML
	}
	servers, err := parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse tld servers file %s: %w", path, err)
	}

	router := NewRouter(servers)
	if logger != nil {
		if router.Len() == 0 {
			logger.Warn("tld servers file has no entries", "path", path)
		} else {
			logger.Info("loaded tld servers", "path", path, "count", router.Len())
		}
	}
	return router, nil
}

// Parse decodes a JSON object mapping TLD to WHOIS server. Every value must be
// a non-empty string, keys must be unique after normalisation and nothing may
// follow the object.
func Parse(data []byte) (map[string]string, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	tok, err := dec.Token()
	if errors.Is(err, io.EOF) {
		return nil, ErrEmptyTable
	}
	if err != nil {
		return nil, err
	}
	if tok != json.Delim('{') {
		return nil, fmt.Errorf("tld table must be a JSON object, got %v", tok)
	}

	servers := map[string]string{}
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, _ := tok.(string)

		tok, err = dec.Token()
		if err != nil {
			return nil, err
		}
		server, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("tld %q: server must be a string", key)
		}
		if _, dup := servers[key]; dup {
			return nil, fmt.Errorf("tld %q: duplicate entry", key)
		}
		servers[key] = server
	}
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return nil, errors.New("unexpected data after tld table")
	}
	return servers, validate(servers)
}

// ParseYAML decodes a YAML mapping of TLD to WHOIS server with the same entry
// rules as Parse.
func ParseYAML(data []byte) (map[string]string, error) {
	var servers map[string]string
	if err := yaml.Unmarshal(data, &servers); err != nil {
		return nil, err
	}
	if servers == nil {
		return nil, ErrEmptyTable
	}
	return servers, validate(servers)
}

func validate(servers map[string]string) error {
	seen := make(map[string]string, len(servers))
	for tld, server := range servers {
		key := normalizeKey(tld)
		if key == "" {
			return fmt.Errorf("tld %q: empty tld", tld)
		}
		if strings.TrimSpace(server) == "" {
			return fmt.Errorf("tld %q: empty server", tld)
		}
		if prev, dup := seen[key]; dup {
			return fmt.Errorf("tld %q: duplicates %q", tld, prev)
		}
		seen[key] = tld
	}
	return nil
}

// Resolve returns the server configured for domain's TLD. The TLD is returned
// even when no server matches so callers can report it.
func (r *Router) Resolve(domain string) (server, tld string, ok bool) {
	tld = Of(domain)
	if tld == "" {
		return "", "", false
	}
	server, ok = r.servers[tld]
	return server, tld, ok
}

// Len reports how many TLDs are configured.
func (r *Router) Len() int {
	return len(r.servers)
}

// Entry is one row of the TLD table.
type Entry struct {
	TLD    string
	Server string
}

// Entries returns the table sorted by TLD.
func (r *Router) Entries() []Entry {
	entries := make([]Entry, 0, len(r.servers))
	for tld, server := range r.servers {
		entries = append(entries, Entry{TLD: tld, Server: server})
	}
	slices.SortFunc(entries, func(a, b Entry) int {
		return cmp.Compare(a.TLD, b.TLD)
	})
	return entries
}

// Of returns the last label of domain prefixed with a dot, or "" when the
// domain has fewer than two labels.
func Of(domain string) string {
	labels := strings.Split(Normalize(domain), ".")
	if len(labels) < 2 {
		return ""
	}
	last := labels[len(labels)-1]
	if last == "" {
		return ""
	}
	return "." + last
}

// Normalize lowercases domain, strips surrounding whitespace and the root dot,
// and converts internationalised names to their A-label (punycode) form.
// Names that fail IDNA conversion are returned lowercased as-is.
func Normalize(domain string) string {
	return toASCII(strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), "."))
}

func toASCII(name string) string {
	if isASCII(name) {
		return name
	}
	if ascii, err := idna.Lookup.ToASCII(name); err == nil {
		return ascii
	}
	return name
}

func isASCII(s string) bool {
	for i := 0; i < len(s); i++ {
		if s[i] >= utf8.RuneSelf {
			return false
		}
	}
	return true
}

// IsRegistrable reports whether domain looks like a registrable name rather
// than an IP literal, a bare label or a malformed string.
func IsRegistrable(domain string) bool {
	domain = Normalize(domain)
	if domain == "" || net.ParseIP(domain) != nil {
		return false
	}
	if labels, ok := dns.IsDomainName(domain); !ok || labels < 2 {
		return false
	}
	_, err := publicsuffix.EffectiveTLDPlusOne(domain)
	return err == nil
}

func normalizeKey(tld string) string {
	key := strings.ToLower(strings.TrimSpace(tld))
	key = toASCII(strings.TrimPrefix(key, "."))
	if key == "" {
		return ""
	}
	return "." + key
}
