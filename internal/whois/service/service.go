// Package service orchestrates domain lookups: protocol selection, parsing,
// error normalization and the cache-aside wrapper.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"domainlookup/internal/whois/metrics"
	"domainlookup/internal/whois/models"
	"domainlookup/internal/whois/tld"
	"domainlookup/pkg/platform/sentinel"
)

const tracerName = "domainlookup/internal/whois/service"

// CacheKeyPrefix namespaces lookup results in the shared cache.
const CacheKeyPrefix = "whois:"

// CacheKey returns the cache key for domain.
func CacheKey(domain string) string {
	return CacheKeyPrefix + tld.Normalize(domain)
}

// CacheError reports a cache failure that did not affect the lookup result.
type CacheError struct {
	Op  string
	Key string
	Err error
}

func (e *CacheError) Error() string {
	return fmt.Sprintf("cache %s %s: %v", e.Op, e.Key, e.Err)
}

func (e *CacheError) Unwrap() error {
	return e.Err
}

type Service struct {
	router    *tld.Router
	whois     WhoisClient
	rdap      RDAPClient
	parser    Parser
	cache     Cache
	strategy  Strategy
	maxFollow int
	logger    *slog.Logger
	metrics   *metrics.Metrics
	tracer    trace.Tracer
}

type Option func(*Service)

// WithRDAP sets the RDAP client used by StrategyRDAPFirst.
func WithRDAP(client RDAPClient) Option {
	return func(s *Service) {
		s.rdap = client
	}
}

// WithCache enables LookupWithCache to read and write cache.
func WithCache(cache Cache) Option {
	return func(s *Service) {
		s.cache = cache
	}
}

func WithStrategy(strategy Strategy) Option {
	return func(s *Service) {
		s.strategy = strategy
	}
}

// WithMaxFollow bounds WHOIS referral hops when no server is pinned.
func WithMaxFollow(n int) Option {
	return func(s *Service) {
		s.maxFollow = n
	}
}

func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		if logger != nil {
			s.logger = logger
		}
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

func WithTracer(tracer trace.Tracer) Option {
	return func(s *Service) {
		if tracer != nil {
			s.tracer = tracer
		}
	}
}

func New(router *tld.Router, whois WhoisClient, parser Parser, opts ...Option) (*Service, error) {
	if router == nil {
		return nil, errors.New("tld router is required")
	}
	if whois == nil {
		return nil, errors.New("whois client is required")
	}
	if parser == nil {
		return nil, errors.New("parser is required")
	}

	svc := &Service{
		router:   router,
		whois:    whois,
		parser:   parser,
		strategy: StrategyWhois,
		logger:   slog.New(slog.DiscardHandler),
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(svc)
	}

	switch svc.strategy {
	case StrategyWhois:
	case StrategyRDAPFirst:
		if svc.rdap == nil {
			return nil, errors.New("rdap client is required for the rdap strategy")
		}
	default:
		return nil, fmt.Errorf("unknown lookup strategy %q", svc.strategy)
	}
	if svc.maxFollow < 0 {
		return nil, errors.New("max follow must not be negative")
	}

	return svc, nil
}

// Lookup performs a live lookup. It never fails: errors are reported in the
// result's Error field with Status=false. Time is the elapsed wall-clock
// seconds, also on failure.
func (s *Service) Lookup(ctx context.Context, domain string) models.LookupResult {
	domain = tld.Normalize(domain)
	start := time.Now()

	ctx, span := s.tracer.Start(ctx, "whois.Lookup", trace.WithAttributes(
		attribute.String("domain.name", domain),
		attribute.String("lookup.strategy", string(s.strategy)),
	))
	defer span.End()

	var (
		source models.Source
		record *models.Record
		err    error
	)
	switch s.strategy {
	case StrategyRDAPFirst:
		source, record, err = s.lookupRDAPFirst(ctx, domain)
	default:
		source, record, err = s.lookupWhois(ctx, domain)
	}

	elapsed := time.Since(start)
	result := models.LookupResult{
		Time:   elapsed.Seconds(),
		Source: source,
	}
	if err != nil {
		result.Error = Message(err)
		category := CategoryOf(err)
		s.logger.ErrorContext(ctx, "domain lookup failed",
			"domain", domain,
			"source", source,
			"category", category,
			"error", result.Error,
		)
		if s.metrics != nil {
			s.metrics.IncrementFailure(string(category))
		}
		span.SetStatus(codes.Error, result.Error)
	} else {
		result.Status = true
		result.Result = record
	}

	span.SetAttributes(
		attribute.String("lookup.source", string(source)),
		attribute.Bool("lookup.status", result.Status),
	)
	if s.metrics != nil {
		s.metrics.ObserveLookup(string(source), result.Status, false, elapsed)
	}
	return result
}

// LookupWithCache serves domain from cache when possible and caches
// successful live lookups. Cache failures are logged and otherwise ignored.
func (s *Service) LookupWithCache(ctx context.Context, domain string) models.LookupResult {
	result, err := s.LookupCached(ctx, domain)
	if err != nil {
		s.logger.WarnContext(ctx, "lookup cache degraded", "domain", tld.Normalize(domain), "error", err)
	}
	return result
}

// LookupCached is the cache-aside lookup. The returned result is always
// usable; the error only reports recoverable cache failures (one or more
// *CacheError). Failed lookups are never cached.
func (s *Service) LookupCached(ctx context.Context, domain string) (models.LookupResult, error) {
	domain = tld.Normalize(domain)
	if s.cache == nil {
		return s.Lookup(ctx, domain), nil
	}
	key := CacheKey(domain)

	var errs []error
	cached, err := s.readCache(ctx, key)
	switch {
	case err == nil:
		cached.Time = 0
		cached.Cached = true
		if s.metrics != nil {
			s.metrics.IncrementCacheHit()
			s.metrics.ObserveLookup(string(cached.Source), cached.Status, true, 0)
		}
		return *cached, nil
	case errors.Is(err, sentinel.ErrNotFound):
	default:
		errs = append(errs, err)
		if s.metrics != nil {
			s.metrics.IncrementCacheError("get")
		}
	}
	if s.metrics != nil {
		s.metrics.IncrementCacheMiss()
	}

	result := s.Lookup(ctx, domain)
	result.Cached = false
	if result.Status {
		if err := s.writeCache(ctx, key, result); err != nil {
			errs = append(errs, err)
			if s.metrics != nil {
				s.metrics.IncrementCacheError("set")
			}
		}
	}
	return result, errors.Join(errs...)
}

func (s *Service) lookupWhois(ctx context.Context, domain string) (models.Source, *models.Record, error) {
	server, tldName, ok := s.router.Resolve(domain)
	if !ok {
		return models.SourceWhois, nil, configurationError(domain, tldName)
	}
	record, err := s.queryWhois(ctx, domain, server, 0)
	return models.SourceWhois, record, err
}

func (s *Service) lookupRDAPFirst(ctx context.Context, domain string) (models.Source, *models.Record, error) {
	record, err := s.queryRDAP(ctx, domain)
	if err == nil {
		return models.SourceRDAP, record, nil
	}

	s.logger.WarnContext(ctx, "rdap lookup failed, falling back to whois", "domain", domain, "error", err)
	if s.metrics != nil {
		s.metrics.IncrementRDAPFallback()
	}

	server, _, ok := s.router.Resolve(domain)
	follow := 0
	if !ok {
		server = ""
		if tld.IsRegistrable(domain) {
			follow = s.maxFollow
		}
	}
	record, err = s.queryWhois(ctx, domain, server, follow)
	return models.SourceWhois, record, err
}

func (s *Service) queryWhois(ctx context.Context, domain, server string, follow int) (*models.Record, error) {
	s.logger.InfoContext(ctx, "whois query", "domain", domain, "server", server, "max_follow", follow)

	var raw string
	err := guard(domain, func() error {
		var err error
		raw, err = s.whois.Query(ctx, domain, server, follow)
		return err
	})
	if err != nil {
		return nil, asLookupError(ErrorTransport, domain, err)
	}

	var record *models.Record
	err = guard(domain, func() error {
		var err error
		record, err = s.parser.ParseWhois(raw)
		return err
	})
	if err != nil {
		return nil, asLookupError(ErrorParse, domain, err)
	}
	if record == nil {
		return nil, NewLookupError(ErrorParse, domain, "parser returned no record", nil)
	}
	return record, nil
}

func (s *Service) queryRDAP(ctx context.Context, domain string) (*models.Record, error) {
	var record *models.Record
	err := guard(domain, func() error {
		payload, err := s.rdap.Domain(ctx, domain)
		if err != nil {
			return err
		}
		record, err = s.parser.ParseRDAP(payload)
		if err != nil {
			return NewLookupError(ErrorParse, domain, "", err)
		}
		return nil
	})
	if err != nil {
		return nil, asLookupError(ErrorTransport, domain, err)
	}
	if record == nil {
		return nil, NewLookupError(ErrorParse, domain, "parser returned no record", nil)
	}
	return record, nil
}

var errIncompleteEntry = errors.New("cached entry has no source or outcome")

func (s *Service) readCache(ctx context.Context, key string) (*models.LookupResult, error) {
	var data []byte
	err := guard(key, func() error {
		var err error
		data, err = s.cache.Get(ctx, key)
		return err
	})
	if errors.Is(err, sentinel.ErrNotFound) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, &CacheError{Op: "get", Key: key, Err: err}
	}

	var result models.LookupResult
	if err := json.Unmarshal(data, &result); err != nil {
		return nil, &CacheError{Op: "decode", Key: key, Err: err}
	}
	if result.Source == "" || (result.Result == nil && result.Error == "") {
		return nil, &CacheError{Op: "decode", Key: key, Err: errIncompleteEntry}
	}
	return &result, nil
}

func (s *Service) writeCache(ctx context.Context, key string, result models.LookupResult) error {
	data, err := json.Marshal(result)
	if err != nil {
		return &CacheError{Op: "encode", Key: key, Err: err}
	}
	err = guard(key, func() error {
		return s.cache.Set(ctx, key, data)
	})
	if err != nil {
		return &CacheError{Op: "set", Key: key, Err: err}
	}
	return nil
}

// asLookupError keeps an existing categorization and otherwise applies category.
func asLookupError(category ErrorCategory, domain string, err error) error {
	var le *LookupError
	if errors.As(err, &le) {
		return le
	}
	return NewLookupError(category, domain, "", err)
}
