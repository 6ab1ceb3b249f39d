package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors for domain lookups.
type Metrics struct {
	LookupsTotal     *prometheus.CounterVec
	LookupDuration   *prometheus.HistogramVec
	FailuresTotal    *prometheus.CounterVec
	RDAPFallbacks    prometheus.Counter
	CacheHits        prometheus.Counter
	CacheMisses      prometheus.Counter
	CacheErrorsTotal *prometheus.CounterVec
}

// New creates the collectors and registers them with reg. Pass
// prometheus.DefaultRegisterer in production and a fresh registry in tests.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		LookupsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domainlookup_lookups_total",
			Help: "Total number of domain lookups by source, outcome and cache state",
		}, []string{"source", "status", "cached"}),
		LookupDuration: factory.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "domainlookup_lookup_duration_seconds",
			Help:    "Duration of live (uncached) domain lookups",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}, []string{"source"}),
		FailuresTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domainlookup_failures_total",
			Help: "Total number of failed lookups by error category",
		}, []string{"category"}),
		RDAPFallbacks: factory.NewCounter(prometheus.CounterOpts{
			Name: "domainlookup_rdap_fallbacks_total",
			Help: "Total number of RDAP failures that fell back to WHOIS",
		}),
		CacheHits: factory.NewCounter(prometheus.CounterOpts{
			Name: "domainlookup_cache_hits_total",
			Help: "Total number of lookups served from cache",
		}),
		CacheMisses: factory.NewCounter(prometheus.CounterOpts{
			Name: "domainlookup_cache_misses_total",
			Help: "Total number of cache misses",
		}),
		CacheErrorsTotal: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "domainlookup_cache_errors_total",
			Help: "Total number of recoverable cache failures by operation",
		}, []string{"op"}),
	}
}

func (m *Metrics) ObserveLookup(source string, status, cached bool, elapsed time.Duration) {
	m.LookupsTotal.WithLabelValues(source, outcome(status), strconv.FormatBool(cached)).Inc()
	if !cached {
		m.LookupDuration.WithLabelValues(source).Observe(elapsed.Seconds())
	}
}

func (m *Metrics) IncrementFailure(category string) {
	m.FailuresTotal.WithLabelValues(category).Inc()
}

func (m *Metrics) IncrementRDAPFallback() {
	m.RDAPFallbacks.Inc()
}

func (m *Metrics) IncrementCacheHit() {
	m.CacheHits.Inc()
}

func (m *Metrics) IncrementCacheMiss() {
	m.CacheMisses.Inc()
}

func (m *Metrics) IncrementCacheError(op string) {
	m.CacheErrorsTotal.WithLabelValues(op).Inc()
}

func outcome(status bool) string {
	if status {
		return "success"
	}
	return "failure"
}
