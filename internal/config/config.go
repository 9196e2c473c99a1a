package config

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	OrderAPIAddress string
	ClientKey       string
	ClientKeyHeader string
	APIKeyHeader    string
	OrderLookupMode string
	RequestTimeout  time.Duration

	BoardPollInterval  time.Duration
	PublicPollInterval time.Duration
	LongPressDelay     time.Duration
	BoardIdleTimeout   time.Duration
	ShutdownTimeout    time.Duration

	SessionSecret string
	SessionTTL    time.Duration

	CredentialBackend string
	CredentialTTL     time.Duration
	DatabaseURI       string
	RedisAddr         string
	RedisPassword     string
	RedisDB           int

	NATSURL            string
	EventSubjectPrefix string

	LogLevel string
}

const (
	defaultRunAddress         = ":8080"
	defaultClientKeyHeader    = "X-Client-Key"
	defaultAPIKeyHeader       = "X-API-Key"
	defaultOrderLookupMode    = "scan"
	defaultRequestTimeout     = 10 * time.Second
	defaultBoardPollInterval  = 4 * time.Second
	defaultPublicPollInterval = 10 * time.Second
	defaultLongPressDelay     = 160 * time.Millisecond
	defaultBoardIdleTimeout   = 10 * time.Minute
	defaultShutdownTimeout    = 10 * time.Second
	defaultSessionSecret      = "change-me-in-production"
	defaultSessionTTL         = 30 * 24 * time.Hour
	defaultCredentialBackend  = "memory"
	defaultCredentialTTL      = 30 * 24 * time.Hour
	defaultRedisAddr          = "localhost:6379"
	defaultEventSubjectPrefix = "kakigori.orders"
	defaultLogLevel           = "info"
	defaultEnvFile            = ".env"
)

// Load parses configuration from flags, environment variables and an optional
// .env file. Real environment variables take precedence over the file.
func Load() (*Config, error) {
	lookup, err := withDotEnv(os.LookupEnv, getString(os.LookupEnv, "ENV_FILE", defaultEnvFile))
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], lookup)
}

type envLookup func(string) (string, bool)

func withDotEnv(lookup envLookup, path string) (envLookup, error) {
	values, err := godotenv.Read(path)
	if errors.Is(err, os.ErrNotExist) {
		return lookup, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read env file %s: %w", path, err)
	}
	return func(key string) (string, bool) {
		if v, ok := lookup(key); ok {
			return v, true
		}
		v, ok := values[key]
		return v, ok
	}, nil
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:         getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		OrderAPIAddress:    getString(lookup, "ORDER_API_ADDRESS", ""),
		ClientKey:          getString(lookup, "CLIENT_KEY", ""),
		ClientKeyHeader:    getString(lookup, "CLIENT_KEY_HEADER", defaultClientKeyHeader),
		APIKeyHeader:       getString(lookup, "API_KEY_HEADER", defaultAPIKeyHeader),
		OrderLookupMode:    getString(lookup, "ORDER_LOOKUP_MODE", defaultOrderLookupMode),
		RequestTimeout:     getDuration(lookup, "REQUEST_TIMEOUT", defaultRequestTimeout),
		BoardPollInterval:  getDuration(lookup, "BOARD_POLL_INTERVAL", defaultBoardPollInterval),
		PublicPollInterval: getDuration(lookup, "PUBLIC_POLL_INTERVAL", defaultPublicPollInterval),
		LongPressDelay:     getDuration(lookup, "LONG_PRESS_DELAY", defaultLongPressDelay),
		BoardIdleTimeout:   getDuration(lookup, "BOARD_IDLE_TIMEOUT", defaultBoardIdleTimeout),
		ShutdownTimeout:    getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		SessionSecret:      getString(lookup, "SESSION_SECRET", defaultSessionSecret),
		SessionTTL:         getDuration(lookup, "SESSION_TTL", defaultSessionTTL),
		CredentialBackend:  getString(lookup, "CREDENTIAL_BACKEND", defaultCredentialBackend),
		CredentialTTL:      getDuration(lookup, "CREDENTIAL_TTL", defaultCredentialTTL),
		DatabaseURI:        getString(lookup, "DATABASE_URI", ""),
		RedisAddr:          getString(lookup, "REDIS_ADDR", defaultRedisAddr),
		RedisPassword:      getString(lookup, "REDIS_PASSWORD", ""),
		RedisDB:            getInt(lookup, "REDIS_DB", 0),
		NATSURL:            getString(lookup, "NATS_URL", ""),
		EventSubjectPrefix: getString(lookup, "EVENT_SUBJECT_PREFIX", defaultEventSubjectPrefix),
		LogLevel:           getString(lookup, "LOG_LEVEL", defaultLogLevel),
	}

	fs := flag.NewFlagSet("kakigori", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		boardPollStr       = cfg.BoardPollInterval.String()
		publicPollStr      = cfg.PublicPollInterval.String()
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		requestTimeoutStr  = cfg.RequestTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.OrderAPIAddress, "o", cfg.OrderAPIAddress, "Order service base URL")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN for the postgres credential backend")
	fs.StringVar(&cfg.CredentialBackend, "credentials", cfg.CredentialBackend, "Credential backend: memory, postgres or redis")
	fs.StringVar(&cfg.OrderLookupMode, "lookup", cfg.OrderLookupMode, "Order lookup mode: scan, direct or auto")
	fs.StringVar(&cfg.SessionSecret, "session-secret", cfg.SessionSecret, "Secret for signing session cookies")
	fs.StringVar(&cfg.NATSURL, "nats", cfg.NATSURL, "NATS server URL for order events")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	fs.StringVar(&boardPollStr, "board-poll", boardPollStr, "Interval between admin board reloads")
	fs.StringVar(&publicPollStr, "public-poll", publicPollStr, "Interval between public board reloads")
	fs.StringVar(&requestTimeoutStr, "request-timeout", requestTimeoutStr, "Order service request timeout")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.BoardPollInterval, err = time.ParseDuration(boardPollStr); err != nil {
		return nil, fmt.Errorf("invalid board poll interval: %w", err)
	}

	if cfg.PublicPollInterval, err = time.ParseDuration(publicPollStr); err != nil {
		return nil, fmt.Errorf("invalid public poll interval: %w", err)
	}

	if cfg.RequestTimeout, err = time.ParseDuration(requestTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid request timeout: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("SESSION_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read session secret file: %w", err)
		}
		cfg.SessionSecret = strings.TrimSpace(string(content))
	}

	normalize(cfg)

	if cfg.OrderAPIAddress == "" {
		return nil, fmt.Errorf("order API address must be provided")
	}

	switch cfg.CredentialBackend {
	case "memory", "redis":
	case "postgres":
		if cfg.DatabaseURI == "" {
			return nil, fmt.Errorf("database URI must be provided for the postgres credential backend")
		}
	default:
		return nil, fmt.Errorf("unknown credential backend %q", cfg.CredentialBackend)
	}

	return cfg, nil
}

func normalize(cfg *Config) {
	if cfg.RequestTimeout <= 0 {
		cfg.RequestTimeout = defaultRequestTimeout
	}

	if cfg.BoardPollInterval <= 0 {
		cfg.BoardPollInterval = defaultBoardPollInterval
	}

	if cfg.PublicPollInterval <= 0 {
		cfg.PublicPollInterval = defaultPublicPollInterval
	}

	if cfg.LongPressDelay <= 0 {
		cfg.LongPressDelay = defaultLongPressDelay
	}

	if cfg.BoardIdleTimeout <= 0 {
		cfg.BoardIdleTimeout = defaultBoardIdleTimeout
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}

	if cfg.CredentialTTL < 0 {
		cfg.CredentialTTL = defaultCredentialTTL
	}

	cfg.CredentialBackend = strings.ToLower(cfg.CredentialBackend)
	cfg.OrderLookupMode = strings.ToLower(cfg.OrderLookupMode)
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
