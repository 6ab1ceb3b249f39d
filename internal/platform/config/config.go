package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config is the full process configuration, read once at startup.
type Config struct {
	Server Server
	Redis  RedisConfig
	Lookup Lookup
}

// Server captures HTTP server level configuration.
type Server struct {
	Addr     string
	LogLevel slog.Level
}

// RedisConfig configures the optional Redis cache. An empty URL selects the
// in-memory cache.
type RedisConfig struct {
	URL          string
	PoolSize     int
	MinIdleConns int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	CacheTTL     time.Duration
}

// Lookup configures the lookup orchestrator and its protocol clients.
type Lookup struct {
	ServersFile      string
	Strategy         string
	MaxFollow        int
	WhoisTimeout     time.Duration
	WhoisProxy       string
	RDAPTimeout      time.Duration
	RDAPBootstrapURL string
	BatchConcurrency int
}

// FromEnv builds the config from environment variables so main stays lean.
func FromEnv() (Config, error) {
	return load(os.Getenv)
}

func load(getenv func(string) string) (Config, error) {
	e := env{getenv: getenv}

	cfg := Config{
		Server: Server{
			Addr:     e.str("WHOIS_ADDR", ":8080"),
			LogLevel: e.level("LOG_LEVEL", slog.LevelInfo),
		},
		Redis: RedisConfig{
			URL:          e.str("REDIS_URL", ""),
			PoolSize:     e.int("REDIS_POOL_SIZE", 10),
			MinIdleConns: e.int("REDIS_MIN_IDLE_CONNS", 2),
			DialTimeout:  e.duration("REDIS_DIAL_TIMEOUT", 5*time.Second),
			ReadTimeout:  e.duration("REDIS_READ_TIMEOUT", 3*time.Second),
			WriteTimeout: e.duration("REDIS_WRITE_TIMEOUT", 3*time.Second),
			CacheTTL:     e.duration("WHOIS_CACHE_TTL", 0),
		},
		Lookup: Lookup{
			ServersFile:      e.str("WHOIS_SERVERS_FILE", "config/tld_servers.json"),
			Strategy:         e.str("WHOIS_STRATEGY", "whois"),
			MaxFollow:        e.int("WHOIS_MAX_FOLLOW", 1),
			WhoisTimeout:     e.duration("WHOIS_TIMEOUT", 10*time.Second),
			WhoisProxy:       e.str("WHOIS_PROXY", ""),
			RDAPTimeout:      e.duration("RDAP_TIMEOUT", 10*time.Second),
			RDAPBootstrapURL: e.str("RDAP_BOOTSTRAP_URL", "https://data.iana.org/rdap/dns.json"),
			BatchConcurrency: e.int("BATCH_CONCURRENCY", 5),
		},
	}
	if e.err != nil {
		return Config{}, e.err
	}

	if cfg.Lookup.MaxFollow < 0 {
		return Config{}, fmt.Errorf("WHOIS_MAX_FOLLOW must not be negative, got %d", cfg.Lookup.MaxFollow)
	}
	if cfg.Lookup.BatchConcurrency < 1 {
		return Config{}, fmt.Errorf("BATCH_CONCURRENCY must be at least 1, got %d", cfg.Lookup.BatchConcurrency)
	}
	if cfg.Redis.CacheTTL < 0 {
		return Config{}, fmt.Errorf("WHOIS_CACHE_TTL must not be negative, got %s", cfg.Redis.CacheTTL)
	}
	return cfg, nil
}

// env reads typed values and keeps the first parse error.
type env struct {
	getenv func(string) string
	err    error
}

func (e *env) str(key, def string) string {
	if v := strings.TrimSpace(e.getenv(key)); v != "" {
		return v
	}
	return def
}

func (e *env) int(key string, def int) int {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid integer %q: %w", key, v, err))
		return def
	}
	return n
}

func (e *env) duration(key string, def time.Duration) time.Duration {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		e.fail(fmt.Errorf("%s: invalid duration %q: %w", key, v, err))
		return def
	}
	return d
}

func (e *env) level(key string, def slog.Level) slog.Level {
	v := strings.TrimSpace(e.getenv(key))
	if v == "" {
		return def
	}
	var l slog.Level
	if err := l.UnmarshalText([]byte(v)); err != nil {
		e.fail(fmt.Errorf("%s: invalid log level %q: %w", key, v, err))
		return def
	}
	return l
}

func (e *env) fail(err error) {
	if e.err == nil {
		e.err = err
	}
}
