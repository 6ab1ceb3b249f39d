// Package rdapclient queries RDAP servers discovered through the IANA bootstrap registry.
package rdapclient

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultBootstrapURL is the IANA RDAP bootstrap file for domain names.
const DefaultBootstrapURL = "https://data.iana.org/rdap/dns.json"

const maxBodyBytes = 4 << 20

var (
	// ErrUnsupportedTLD means the bootstrap registry lists no RDAP server for the TLD.
	ErrUnsupportedTLD = errors.New("rdap: no server for tld")
	// ErrInvalidDomain means the input has no TLD to bootstrap from.
	ErrInvalidDomain = errors.New("rdap: invalid domain")
)

// StatusError reports a non-2xx response from an RDAP server.
type StatusError struct {
	StatusCode int
	URL        string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("rdap: %s returned HTTP %d", e.URL, e.StatusCode)
}

// Client looks up domains over RDAP. The bootstrap table is fetched on first
// use and kept for the lifetime of the client; a failed fetch is retried by the
// next lookup.
type Client struct {
	http         *http.Client
	bootstrapURL string
	logger       *slog.Logger

	fetch     singleflight.Group
	mu        sync.RWMutex
	bootstrap map[string][]string
}

type Option func(*Client)

func WithBootstrapURL(u string) Option {
	return func(c *Client) {
		if u != "" {
			c.bootstrapURL = u
		}
	}
}

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.http = hc
		}
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(c *Client) {
		c.logger = logger
	}
}

func New(timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		http:         &http.Client{Timeout: timeout},
		bootstrapURL: DefaultBootstrapURL,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Domain fetches the RDAP domain object for domain, trying each server the
// bootstrap registry lists for its TLD in order.
func (c *Client) Domain(ctx context.Context, domain string) (*Domain, error) {
	domain = strings.TrimSuffix(strings.ToLower(strings.TrimSpace(domain)), ".")
	servers, err := c.servers(ctx, domain)
	if err != nil {
		return nil, err
	}

	var lastErr error
	for _, base := range servers {
		d, err := c.fetchDomain(ctx, base, domain)
		if err == nil {
			return d, nil
		}
		lastErr = err
		if c.logger != nil {
			c.logger.DebugContext(ctx, "rdap server failed", "server", base, "domain", domain, "error", err)
		}
		if ctx.Err() != nil {
			break
		}
	}
	return nil, lastErr
}

func (c *Client) servers(ctx context.Context, domain string) ([]string, error) {
	labels := strings.Split(domain, ".")
	if len(labels) < 2 || labels[len(labels)-1] == "" {
		return nil, fmt.Errorf("%w: %q", ErrInvalidDomain, domain)
	}

	table, err := c.loadBootstrap(ctx)
	if err != nil {
		return nil, err
	}

	// prefer the longest listed suffix, e.g. co.uk before uk
	for i := 1; i < len(labels); i++ {
		if srvs, ok := table[strings.Join(labels[i:], ".")]; ok && len(srvs) > 0 {
			return srvs, nil
		}
	}
	return nil, fmt.Errorf("%w: .%s", ErrUnsupportedTLD, labels[len(labels)-1])
}

func (c *Client) loadBootstrap(ctx context.Context) (map[string][]string, error) {
	if table := c.cachedBootstrap(); table != nil {
		return table, nil
	}

	// one fetch serves every concurrent caller; it outlives a cancelled caller
	// and is bounded by the HTTP client timeout
	ch := c.fetch.DoChan("bootstrap", func() (any, error) {
		if table := c.cachedBootstrap(); table != nil {
			return table, nil
		}
		table, err := c.fetchBootstrap(context.WithoutCancel(ctx))
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		c.bootstrap = table
		c.mu.Unlock()
		return table, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("rdap bootstrap: %w", ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(map[string][]string), nil
	}
}

func (c *Client) cachedBootstrap() map[string][]string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.bootstrap
}

func (c *Client) fetchBootstrap(ctx context.Context) (map[string][]string, error) {
	body, err := c.get(ctx, c.bootstrapURL)
	if err != nil {
		return nil, fmt.Errorf("rdap bootstrap: %w", err)
	}

	// services is [[[tld, ...], [server, ...]], ...]
	var file struct {
		Services [][][]string `json:"services"`
	}
	if err := json.Unmarshal(body, &file); err != nil {
		return nil, fmt.Errorf("rdap bootstrap: decode: %w", err)
	}

	table := make(map[string][]string)
	for _, svc := range file.Services {
		if len(svc) < 2 {
			continue
		}
		for _, tld := range svc[0] {
			table[strings.ToLower(tld)] = svc[1]
		}
	}
	return table, nil
}

func (c *Client) fetchDomain(ctx context.Context, base, domain string) (*Domain, error) {
	u, err := url.JoinPath(base, "domain", domain)
	if err != nil {
		return nil, fmt.Errorf("rdap: build url: %w", err)
	}

	body, err := c.get(ctx, u)
	if err != nil {
		return nil, err
	}

	var d Domain
	if err := json.Unmarshal(body, &d); err != nil {
		return nil, fmt.Errorf("rdap: decode domain: %w", err)
	}
	if d.LDHName == "" && d.UnicodeName == "" {
		return nil, fmt.Errorf("rdap: response for %s has no domain name", domain)
	}
	return &d, nil
}

func (c *Client) get(ctx context.Context, u string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/rdap+json, application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{StatusCode: resp.StatusCode, URL: u}
	}
	return io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
}
