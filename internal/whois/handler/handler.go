package handler

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"golang.org/x/sync/errgroup"

	"domainlookup/internal/platform/metrics"
	"domainlookup/internal/platform/middleware"
	"domainlookup/internal/whois/models"
	"domainlookup/internal/whois/tld"
)

const (
	// MaxBatchSize bounds the number of domains in one batch request.
	MaxBatchSize = 50

	maxDomainLength = 253
	maxBodyBytes    = 64 << 10
	requestTimeout  = 60 * time.Second
)

// Service defines the lookup operations exposed over HTTP.
type Service interface {
	Lookup(ctx context.Context, domain string) models.LookupResult
	LookupWithCache(ctx context.Context, domain string) models.LookupResult
}

// HealthChecker reports whether a backing dependency is reachable.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Handler serves the lookup API.
type Handler struct {
	logger           *slog.Logger
	lookup           Service
	metrics          *metrics.Metrics
	health           HealthChecker
	batchConcurrency int
}

type Option func(*Handler)

// WithBatchConcurrency bounds concurrent lookups within one batch request.
func WithBatchConcurrency(n int) Option {
	return func(h *Handler) {
		if n > 0 {
			h.batchConcurrency = n
		}
	}
}

// WithHealthChecker makes /healthz report the checker's status.
func WithHealthChecker(c HealthChecker) Option {
	return func(h *Handler) {
		h.health = c
	}
}

// New creates a new lookup Handler. metrics may be nil.
func New(lookup Service, logger *slog.Logger, metrics *metrics.Metrics, opts ...Option) *Handler {
	h := &Handler{
		logger:           logger,
		lookup:           lookup,
		metrics:          metrics,
		batchConcurrency: 5,
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

// Register registers the lookup and health routes with the chi router.
func (h *Handler) Register(r chi.Router) {
	r.Get("/healthz", h.handleHealth)

	r.Route("/v1/whois", func(whoisRouter chi.Router) {
		whoisRouter.Use(middleware.Recovery(h.logger))
		whoisRouter.Use(middleware.RequestID)
		whoisRouter.Use(middleware.Logger(h.logger))
		whoisRouter.Use(middleware.Timeout(requestTimeout))
		whoisRouter.Use(middleware.ContentTypeJSON)
		whoisRouter.Use(middleware.LatencyMiddleware(h.metrics))
		whoisRouter.Post("/batch", h.handleBatch)
		whoisRouter.Get("/{domain}", h.handleLookup)
	})
}

// handleLookup looks up one domain. Lookup failures are still 200 with
// status=false; only malformed input is a 4xx.
func (h *Handler) handleLookup(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	domain, err := validateDomain(chi.URLParam(r, "domain"))
	if err != nil {
		h.logger.WarnContext(ctx, "invalid lookup request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	result := h.run(ctx, domain, useCache(r))
	writeJSON(w, http.StatusOK, result)
}

func (h *Handler) handleBatch(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := middleware.GetRequestID(ctx)

	var req BatchRequest
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	decoder.DisallowUnknownFields()
	if err := decoder.Decode(&req); err != nil {
		h.logger.WarnContext(ctx, "invalid batch request body",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "bad_request", "invalid request body")
		return
	}

	domains, err := req.validate()
	if err != nil {
		h.logger.WarnContext(ctx, "invalid batch request",
			"request_id", requestID,
			"error", err.Error(),
		)
		writeError(w, http.StatusBadRequest, "bad_request", err.Error())
		return
	}

	cached := useCache(r)
	results := make([]models.LookupResult, len(domains))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(h.batchConcurrency)
	for i, domain := range domains {
		g.Go(func() error {
			results[i] = h.run(gctx, domain, cached)
			return nil
		})
	}
	_ = g.Wait()

	h.logger.InfoContext(ctx, "batch lookup completed",
		"request_id", requestID,
		"domains", len(domains),
	)
	writeJSON(w, http.StatusOK, BatchResponse{Results: results})
}

func (h *Handler) handleHealth(w http.ResponseWriter, r *http.Request) {
	if h.health != nil {
		if err := h.health.Health(r.Context()); err != nil {
			h.logger.WarnContext(r.Context(), "health check failed", "error", err.Error())
			writeJSON(w, http.StatusServiceUnavailable, HealthResponse{Status: "unavailable", Error: err.Error()})
			return
		}
	}
	writeJSON(w, http.StatusOK, HealthResponse{Status: "ok"})
}

func (h *Handler) run(ctx context.Context, domain string, cached bool) models.LookupResult {
	if cached {
		return h.lookup.LookupWithCache(ctx, domain)
	}
	return h.lookup.Lookup(ctx, domain)
}

func useCache(r *http.Request) bool {
	return r.URL.Query().Get("cache") != "false"
}

// validateDomain rejects input that cannot be a domain name at all. Unknown
// TLDs are left to the lookup so they surface as configuration errors.
func validateDomain(raw string) (string, error) {
	domain := tld.Normalize(raw)
	switch {
	case domain == "":
		return "", errors.New("domain is required")
	case len(domain) > maxDomainLength:
		return "", errors.New("domain exceeds 253 characters")
	case strings.ContainsAny(domain, " \t\r\n/\\?#@"):
		return "", errors.New("domain contains invalid characters")
	}
	return domain, nil
}
