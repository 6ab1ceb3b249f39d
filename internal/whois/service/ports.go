package service

//go:generate mockgen -source=ports.go -destination=mocks/mocks.go -package=mocks

import (
	"context"

	"domainlookup/internal/whois/client/rdapclient"
	"domainlookup/internal/whois/models"
)

// WhoisClient performs raw WHOIS queries. An empty server asks the client to
// resolve one itself; maxFollow bounds registrar referral hops.
type WhoisClient interface {
	Query(ctx context.Context, domain, server string, maxFollow int) (string, error)
}

// RDAPClient fetches RDAP domain objects.
type RDAPClient interface {
	Domain(ctx context.Context, domain string) (*rdapclient.Domain, error)
}

// Parser converts WHOIS text or RDAP objects into records.
type Parser interface {
	ParseWhois(raw string) (*models.Record, error)
	ParseRDAP(domain *rdapclient.Domain) (*models.Record, error)
}

// Cache is a key/value store for serialized lookup results. Get returns
// sentinel.ErrNotFound on a miss.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
}
