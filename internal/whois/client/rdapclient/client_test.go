package rdapclient

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const domainBody = `{
  "objectClassName": "domain",
  "handle": "2336799_DOMAIN_COM-VRSN",
  "ldhName": "EXAMPLE.COM",
  "status": ["client delete prohibited", "client transfer prohibited"],
  "events": [
    {"eventAction": "registration", "eventDate": "1995-08-14T04:00:00Z"},
    {"eventAction": "expiration", "eventDate": "2026-08-13T04:00:00Z"}
  ],
  "entities": [{
    "roles": ["registrar"],
    "vcardArray": ["vcard", [["version", {}, "text", "4.0"], ["fn", {}, "text", "RESERVED-Internet Assigned Numbers Authority"]]],
    "links": [{"rel": "about", "href": "http://res-dom.iana.org"}]
  }],
  "nameservers": [{"ldhName": "A.IANA-SERVERS.NET"}, {"ldhName": "B.IANA-SERVERS.NET"}],
  "secureDNS": {"delegationSigned": true}
}`

type rdapServer struct {
	*httptest.Server
	bootstrapHits atomic.Int32
}

func newRDAPServer(t *testing.T) *rdapServer {
	t.Helper()
	s := &rdapServer{}
	mux := http.NewServeMux()
	mux.HandleFunc("/dns.json", func(w http.ResponseWriter, r *http.Request) {
		s.bootstrapHits.Add(1)
		fmt.Fprintf(w, `{"services": [[["com", "net"], ["%s/rdap/"]], [["co.uk"], ["%s/uk/"]]]}`, s.URL, s.URL)
	})
	mux.HandleFunc("/rdap/domain/example.com", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rdap+json")
		_, _ = w.Write([]byte(domainBody))
	})
	mux.HandleFunc("/rdap/domain/broken.com", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{not json`))
	})
	s.Server = httptest.NewServer(mux)
	t.Cleanup(s.Close)
	return s
}

func newTestClient(s *rdapServer) *Client {
	return New(5*time.Second, WithBootstrapURL(s.URL+"/dns.json"))
}

func TestDomain(t *testing.T) {
	srv := newRDAPServer(t)
	client := newTestClient(srv)

	d, err := client.Domain(context.Background(), "Example.COM")
	require.NoError(t, err)
	assert.Equal(t, "EXAMPLE.COM", d.LDHName)
	assert.Equal(t, "2026-08-13T04:00:00Z", d.EventDate("expiration"))
	assert.Len(t, d.Nameservers, 2)
	require.NotNil(t, d.SecureDNS)
	require.NotNil(t, d.SecureDNS.DelegationSigned)
	assert.True(t, *d.SecureDNS.DelegationSigned)

	registrar := d.EntityWithRole("registrar")
	require.NotNil(t, registrar)
	assert.Equal(t, "RESERVED-Internet Assigned Numbers Authority", registrar.VCard("fn"))
	assert.Equal(t, "http://res-dom.iana.org", registrar.Link("about"))

	t.Run("bootstrap is fetched once", func(t *testing.T) {
		_, err := client.Domain(context.Background(), "example.com")
		require.NoError(t, err)
		assert.Equal(t, int32(1), srv.bootstrapHits.Load())
	})
}

func TestDomainFailures(t *testing.T) {
	srv := newRDAPServer(t)
	client := newTestClient(srv)
	ctx := context.Background()

	t.Run("unsupported tld", func(t *testing.T) {
		_, err := client.Domain(ctx, "example.io")
		assert.ErrorIs(t, err, ErrUnsupportedTLD)
	})

	t.Run("single label", func(t *testing.T) {
		_, err := client.Domain(ctx, "localhost")
		assert.ErrorIs(t, err, ErrInvalidDomain)
	})

	t.Run("not found is a status error", func(t *testing.T) {
		_, err := client.Domain(ctx, "missing.com")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Equal(t, http.StatusNotFound, statusErr.StatusCode)
	})

	t.Run("two-label suffix is preferred", func(t *testing.T) {
		_, err := client.Domain(ctx, "example.co.uk")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)
		assert.Contains(t, statusErr.URL, "/uk/domain/example.co.uk")
	})

	t.Run("malformed body", func(t *testing.T) {
		_, err := client.Domain(ctx, "broken.com")
		assert.Error(t, err)
	})

	t.Run("bootstrap unavailable", func(t *testing.T) {
		c := New(time.Second, WithBootstrapURL(srv.URL+"/missing.json"))
		_, err := c.Domain(ctx, "example.com")
		var statusErr *StatusError
		assert.ErrorAs(t, err, &statusErr)
	})
}

// newGatedBootstrap serves the bootstrap file only once release is closed.
// Requests are answered with 503 while failFirst is still positive.
func newGatedBootstrap(t *testing.T, release <-chan struct{}, failFirst int32) (*httptest.Server, *atomic.Int32) {
	t.Helper()
	var hits atomic.Int32
	var srv *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/dns.json", func(w http.ResponseWriter, r *http.Request) {
		n := hits.Add(1)
		<-release
		if n <= failFirst {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprintf(w, `{"services": [[["com"], ["%s/rdap/"]]]}`, srv.URL)
	})
	mux.HandleFunc("/rdap/domain/example.com", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(domainBody))
	})
	srv = httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv, &hits
}

func TestBootstrapConcurrency(t *testing.T) {
	t.Run("concurrent lookups share one fetch", func(t *testing.T) {
		release := make(chan struct{})
		srv, hits := newGatedBootstrap(t, release, 0)
		client := New(5*time.Second, WithBootstrapURL(srv.URL+"/dns.json"))

		var wg sync.WaitGroup
		errs := make([]error, 8)
		for i := range errs {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_, errs[i] = client.Domain(context.Background(), "example.com")
			}()
		}
		require.Eventually(t, func() bool { return hits.Load() == 1 }, time.Second, 5*time.Millisecond)
		close(release)
		wg.Wait()

		for _, err := range errs {
			assert.NoError(t, err)
		}
		assert.Equal(t, int32(1), hits.Load())
	})

	t.Run("cancelled caller stops waiting for a slow fetch", func(t *testing.T) {
		release := make(chan struct{})
		srv, _ := newGatedBootstrap(t, release, 0)
		defer close(release)
		client := New(5*time.Second, WithBootstrapURL(srv.URL+"/dns.json"))

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()
		start := time.Now()
		_, err := client.Domain(ctx, "example.com")

		assert.ErrorIs(t, err, context.DeadlineExceeded)
		assert.Less(t, time.Since(start), time.Second)
	})

	t.Run("failed fetch is retried by the next lookup", func(t *testing.T) {
		release := make(chan struct{})
		close(release)
		srv, hits := newGatedBootstrap(t, release, 1)
		client := New(5*time.Second, WithBootstrapURL(srv.URL+"/dns.json"))

		_, err := client.Domain(context.Background(), "example.com")
		var statusErr *StatusError
		require.ErrorAs(t, err, &statusErr)

		d, err := client.Domain(context.Background(), "example.com")
		require.NoError(t, err)
		assert.Equal(t, "EXAMPLE.COM", d.LDHName)
		assert.Equal(t, int32(2), hits.Load())
	})
}

func TestEntityVCard(t *testing.T) {
	e := Entity{VCardArray: []byte(`["vcard", [["org", {}, "text", "Example Org"], ["adr", {}, "text", ["", "", "1 Main St", "Town", "", "", "NL"]]]]`)}
	assert.Equal(t, "Example Org", e.VCard("org"))
	assert.Equal(t, "NL", e.VCard("adr"))
	assert.Empty(t, e.VCard("email"))
	assert.Empty(t, (&Entity{}).VCard("fn"))
}
