// Package app assembles the lookup service from configuration. It is shared
// by the HTTP server and the command line tool.
package app

import (
	"log/slog"

	"domainlookup/internal/platform/config"
	"domainlookup/internal/whois/client/rdapclient"
	"domainlookup/internal/whois/client/whoisclient"
	"domainlookup/internal/whois/parser"
	"domainlookup/internal/whois/service"
	"domainlookup/internal/whois/tld"
)

// NewLookupService loads the TLD table and builds the protocol clients and
// orchestrator described by cfg. extra options are applied last, so callers
// can attach a cache or metrics.
func NewLookupService(cfg config.Lookup, log *slog.Logger, extra ...service.Option) (*service.Service, error) {
	router, err := tld.Load(cfg.ServersFile, log)
	if err != nil {
		return nil, err
	}

	strategy, err := service.ParseStrategy(cfg.Strategy)
	if err != nil {
		return nil, err
	}

	whoisOpts := []whoisclient.Option{whoisclient.WithLogger(log)}
	if cfg.WhoisProxy != "" {
		dialer, err := whoisclient.DialerFromURL(cfg.WhoisProxy)
		if err != nil {
			return nil, err
		}
		whoisOpts = append(whoisOpts, whoisclient.WithDialer(dialer))
	}
	whois := whoisclient.New(cfg.WhoisTimeout, whoisOpts...)

	rdap := rdapclient.New(cfg.RDAPTimeout,
		rdapclient.WithBootstrapURL(cfg.RDAPBootstrapURL),
		rdapclient.WithLogger(log),
	)

	opts := []service.Option{
		service.WithRDAP(rdap),
		service.WithStrategy(strategy),
		service.WithMaxFollow(cfg.MaxFollow),
		service.WithLogger(log),
	}
	return service.New(router, whois, parser.New(), append(opts, extra...)...)
}
