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

// SellerTransitionPolicy controls which status changes a seller may apply.
type SellerTransitionPolicy string

const (
	// SellerTransitionsAny accepts any known status, including backward jumps.
	SellerTransitionsAny SellerTransitionPolicy = "any"
	// SellerTransitionsForward accepts forward moves and cancellation only.
	SellerTransitionsForward SellerTransitionPolicy = "forward"
)

// SalesBucketing selects how the monthly sales series groups orders.
type SalesBucketing string

const (
	// BucketByMonth groups by calendar month name, collapsing years.
	BucketByMonth SalesBucketing = "month"
	// BucketByYearMonth groups by year and month.
	BucketByYearMonth SalesBucketing = "year-month"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress      string
	DatabaseURI     string
	JWTSecret       string
	TokenTTL        time.Duration
	ShutdownTimeout time.Duration
	LogLevel        string

	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	MailFrom     string

	EmailTimeout   time.Duration
	EmailWorkers   int
	EmailQueueSize int

	StreamBuffer    int
	StreamKeepAlive time.Duration

	SellerTransitions      SellerTransitionPolicy
	EnforceSellerOwnership bool
	VerifyOrderTotal       bool
	SalesBucketing         SalesBucketing
}

const (
	defaultRunAddress      = ":5000"
	defaultJWTSecret       = "change-me-in-production"
	defaultTokenTTL        = 24 * time.Hour
	defaultShutdownTimeout = 10 * time.Second
	defaultLogLevel        = "info"
	defaultSMTPPort        = 587
	defaultMailFrom        = "E-Shop <no-reply@eshop.local>"
	defaultEmailTimeout    = 10 * time.Second
	defaultEmailWorkers    = 2
	defaultEmailQueueSize  = 64
	defaultStreamBuffer    = 16
	defaultStreamKeepAlive = 25 * time.Second
	defaultEnvFile         = ".env"
)

// Load parses configuration from flags, environment variables and an optional .env file.
func Load() (*Config, error) {
	dotenv, err := readDotEnv(defaultEnvFile)
	if err != nil {
		return nil, err
	}
	return load(os.Args[1:], layered(os.LookupEnv, mapLookup(dotenv)))
}

type envLookup func(string) (string, bool)

func readDotEnv(path string) (map[string]string, error) {
	values, err := godotenv.Read(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return values, nil
}

func mapLookup(values map[string]string) envLookup {
	return func(key string) (string, bool) {
		v, ok := values[key]
		return v, ok
	}
}

// layered returns the first non-empty value across lookups.
func layered(lookups ...envLookup) envLookup {
	return func(key string) (string, bool) {
		for _, lookup := range lookups {
			if v, ok := lookup(key); ok && v != "" {
				return v, true
			}
		}
		return "", false
	}
}

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:             getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:            getString(lookup, "DATABASE_URI", ""),
		JWTSecret:              getString(lookup, "JWT_SECRET", defaultJWTSecret),
		TokenTTL:               getDuration(lookup, "TOKEN_TTL", defaultTokenTTL),
		ShutdownTimeout:        getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		LogLevel:               getString(lookup, "LOG_LEVEL", defaultLogLevel),
		SMTPHost:               getString(lookup, "SMTP_HOST", ""),
		SMTPPort:               getInt(lookup, "SMTP_PORT", defaultSMTPPort),
		SMTPUsername:           getString(lookup, "SMTP_USERNAME", ""),
		SMTPPassword:           getString(lookup, "SMTP_PASSWORD", ""),
		MailFrom:               getString(lookup, "MAIL_FROM", defaultMailFrom),
		EmailTimeout:           getDuration(lookup, "EMAIL_TIMEOUT", defaultEmailTimeout),
		EmailWorkers:           getInt(lookup, "EMAIL_WORKERS", defaultEmailWorkers),
		EmailQueueSize:         getInt(lookup, "EMAIL_QUEUE_SIZE", defaultEmailQueueSize),
		StreamBuffer:           getInt(lookup, "SSE_BUFFER", defaultStreamBuffer),
		StreamKeepAlive:        getDuration(lookup, "SSE_KEEPALIVE", defaultStreamKeepAlive),
		SellerTransitions:      SellerTransitionPolicy(getString(lookup, "SELLER_TRANSITIONS", string(SellerTransitionsAny))),
		EnforceSellerOwnership: getBool(lookup, "ENFORCE_SELLER_OWNERSHIP", false),
		VerifyOrderTotal:       getBool(lookup, "VERIFY_ORDER_TOTAL", false),
		SalesBucketing:         SalesBucketing(getString(lookup, "SALES_BUCKETING", string(BucketByMonth))),
	}

	fs := flag.NewFlagSet("marketplace", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		shutdownTimeoutStr = cfg.ShutdownTimeout.String()
		emailTimeoutStr    = cfg.EmailTimeout.String()
		transitionsStr     = string(cfg.SellerTransitions)
		bucketingStr       = string(cfg.SalesBucketing)
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.JWTSecret, "jwt-secret", cfg.JWTSecret, "Secret for signing auth tokens")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn, error")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.StringVar(&emailTimeoutStr, "email-timeout", emailTimeoutStr, "Timeout for a single email delivery")
	fs.IntVar(&cfg.EmailWorkers, "email-workers", cfg.EmailWorkers, "Number of concurrent email workers")
	fs.StringVar(&transitionsStr, "seller-transitions", transitionsStr, "Seller status policy: any or forward")
	fs.StringVar(&bucketingStr, "sales-bucketing", bucketingStr, "Sales series bucketing: month or year-month")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if cfg.EmailTimeout, err = time.ParseDuration(emailTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid email timeout: %w", err)
	}

	if secretFile, ok := lookup("JWT_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read jwt secret file: %w", err)
		}
		cfg.JWTSecret = strings.TrimSpace(string(content))
	}

	cfg.SellerTransitions = SellerTransitionPolicy(strings.ToLower(transitionsStr))
	switch cfg.SellerTransitions {
	case SellerTransitionsAny, SellerTransitionsForward:
	default:
		return nil, fmt.Errorf("invalid seller transitions policy %q", transitionsStr)
	}

	cfg.SalesBucketing = SalesBucketing(strings.ToLower(bucketingStr))
	switch cfg.SalesBucketing {
	case BucketByMonth, BucketByYearMonth:
	default:
		return nil, fmt.Errorf("invalid sales bucketing %q", bucketingStr)
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = defaultTokenTTL
	}

	if cfg.EmailTimeout <= 0 {
		cfg.EmailTimeout = defaultEmailTimeout
	}

	if cfg.EmailWorkers <= 0 {
		cfg.EmailWorkers = defaultEmailWorkers
	}

	if cfg.EmailQueueSize <= 0 {
		cfg.EmailQueueSize = defaultEmailQueueSize
	}

	if cfg.StreamBuffer <= 0 {
		cfg.StreamBuffer = defaultStreamBuffer
	}

	if cfg.StreamKeepAlive <= 0 {
		cfg.StreamKeepAlive = defaultStreamKeepAlive
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	return cfg, nil
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

func getBool(lookup envLookup, key string, def bool) bool {
	if v, ok := lookup(key); ok && v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
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
