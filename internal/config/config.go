// Package config loads and validates application configuration from environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "5000".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// LogFormat selects the log handler: "json" (default) or "text" for
	// colourised human-readable output in development.
	LogFormat string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Defaults to ["http://localhost:5173"] (Vite dev server).
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps request bodies. Defaults to 1 MiB.
	MaxBodyBytes int64

	// JWTSecret signs bearer tokens. Required.
	JWTSecret string
	// JWTTTL is the lifetime of an issued token. Defaults to 7 days.
	JWTTTL time.Duration

	LLM      LLMConfig
	Currency CurrencyConfig
	Geocode  GeocodeConfig
	Mappls   MapplsConfig
}

// LLMConfig points at an OpenAI-compatible chat completion API.
// An empty APIKey disables the model and every trip uses the template plan.
type LLMConfig struct {
	APIKey  string
	BaseURL string
	Model   string
	Timeout time.Duration
}

// CurrencyConfig is the local currency trip plans are priced in.
type CurrencyConfig struct {
	Code   string
	Symbol string
}

// GeocodeConfig configures the Nominatim client.
type GeocodeConfig struct {
	BaseURL   string
	UserAgent string
	CacheTTL  time.Duration

	// BatchSize lookups run concurrently, with BatchDelay between batches.
	BatchSize  int
	BatchDelay time.Duration
}

// MapplsConfig holds Mappls OAuth credentials and endpoints. Both
// credentials must be set for the integration to be enabled.
type MapplsConfig struct {
	ClientID     string
	ClientSecret string
	TokenURL     string
	SearchURL    string
}

// Enabled reports whether both credentials are present.
func (m MapplsConfig) Enabled() bool {
	return m.ClientID != "" && m.ClientSecret != ""
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, joined
// with any variables that are set but malformed.
func Load() (Config, error) {
	var errs []error

	cfg := Config{
		Port:        getEnv("PORT", "5000"),
		LogLevel:    strings.ToLower(getEnv("LOG_LEVEL", "info")),
		LogFormat:   strings.ToLower(getEnv("LOG_FORMAT", "json")),
		CORSOrigins: splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		LLM: LLMConfig{
			APIKey:  os.Getenv("LLM_API_KEY"),
			BaseURL: os.Getenv("LLM_BASE_URL"),
			Model:   os.Getenv("LLM_MODEL"),
		},
		Currency: CurrencyConfig{
			Code:   strings.ToUpper(getEnv("CURRENCY_CODE", "INR")),
			Symbol: getEnv("CURRENCY_SYMBOL", "₹"),
		},
		Geocode: GeocodeConfig{
			BaseURL:   os.Getenv("NOMINATIM_URL"),
			UserAgent: os.Getenv("GEOCODE_USER_AGENT"),
		},
		Mappls: MapplsConfig{
			ClientID:     os.Getenv("MAPPLS_CLIENT_ID"),
			ClientSecret: os.Getenv("MAPPLS_CLIENT_SECRET"),
			TokenURL:     os.Getenv("MAPPLS_TOKEN_URL"),
			SearchURL:    os.Getenv("MAPPLS_SEARCH_URL"),
		},
	}

	cfg.JWTTTL = getDuration("JWT_TTL", 7*24*time.Hour, &errs)
	cfg.LLM.Timeout = getDuration("LLM_TIMEOUT", 60*time.Second, &errs)
	cfg.Geocode.CacheTTL = getDuration("GEOCODE_CACHE_TTL", 24*time.Hour, &errs)
	cfg.Geocode.BatchSize = int(getInt64("GEOCODE_BATCH_SIZE", 3, &errs))
	cfg.Geocode.BatchDelay = getDuration("GEOCODE_BATCH_DELAY", 400*time.Millisecond, &errs)
	cfg.MaxBodyBytes = getInt64("MAX_BODY_BYTES", 1<<20, &errs)

	switch cfg.LogFormat {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("LOG_FORMAT: must be json or text, got %q", cfg.LogFormat))
	}

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		missing = append(missing, "JWT_SECRET")
	}

	if len(missing) > 0 {
		errs = append([]error{fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))}, errs...)
	}
	if len(errs) > 0 {
		return Config{}, errors.Join(errs...)
	}

	return cfg, nil
}

// DatabaseURL returns DATABASE_URL alone, for commands such as migrate that
// never start the HTTP server.
func DatabaseURL() (string, error) {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		return "", errors.New("required environment variables not set: DATABASE_URL")
	}
	return dsn, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// getDuration parses key as a time.Duration ("90s", "168h"). Parse failures
// and non-positive values are recorded in errs.
func getDuration(key string, fallback time.Duration, errs *[]error) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid duration %q", key, v))
		return fallback
	}
	return d
}

func getInt64(key string, fallback int64, errs *[]error) int64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		*errs = append(*errs, fmt.Errorf("%s: invalid positive integer %q", key, v))
		return fallback
	}
	return n
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
