package streamvault

import (
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/Netflix/go-env"
	"github.com/jub0bs/cors"
)

// Environment variables with defaults
type ServerEnvironment struct {
	Environment       string        `env:"ENVIRONMENT,default=production"`
	Host              string        `env:"HOST,default=0.0.0.0"`
	Port              int           `env:"PORT,default=3000"`
	LogLevel          string        `env:"LOG_LEVEL,default=info"`
	AppVersion        string        `env:"APP_VERSION,default=1.0.0"`
	StaticDir         string        `env:"STATIC_DIR,default=./dist"`
	ReadTimeout       time.Duration `env:"READ_TIMEOUT,default=15s"`
	WriteTimeout      time.Duration `env:"WRITE_TIMEOUT,default=15s"`
	IdleTimeout       time.Duration `env:"IDLE_TIMEOUT,default=60s"`
	AllowedOrigins    []string      `env:"ALLOWED_ORIGINS,separator=|"`
	RateLimitRPS      int           `env:"RATE_LIMIT_RPS,default=100"`
	RateLimitBurst    int           `env:"RATE_LIMIT_BURST,default=20"`
	CatalogAPIBaseURL string        `env:"CATALOG_API_BASE_URL,default=https://api.themoviedb.org/3"`
	CatalogAPIKey     string        `env:"CATALOG_API_KEY"`

	// derived from CATALOG_API_BASE_URL during validation - used in the CSP connect-src directive
	CatalogOrigin string
}

// CORSConfigs holds the CORS middleware instances for different endpoint types
type CORSConfigs struct {
	Public *cors.Middleware
}

const (
	// Operational timeouts
	ServerShutdownTimeout = 10 * time.Second // Server graceful shutdown timeout

	// CORS settings
	CORSMaxAgeInSeconds = 86400 // 24 hours
)

// common maps - used to validate enum values

var validEnvs = map[string]bool{
	"dev":        true,
	"test":       true,
	"staging":    true,
	"production": true,
}

// NewServerConfig loads environment variables and returns a ServerEnvironment struct and CORSConfigs
func NewServerConfig() (*ServerEnvironment, *CORSConfigs, error) {
	var cfg ServerEnvironment

	_, err := env.UnmarshalFromEnviron(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to unmarshal environment variables: %w", err)
	}

	if err := validateConfig(&cfg); err != nil {
		return nil, nil, err
	}

	corsConfigs, err := createCORSConfigs(&cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("CORS configuration failed: %w", err)
	}

	return &cfg, corsConfigs, nil
}

// validateConfig checks for required env variables
func validateConfig(cfg *ServerEnvironment) error {
	if cfg.Port < 1 || cfg.Port > 65535 {
		return fmt.Errorf("PORT must be between 1 and 65535")
	}
	if !validEnvs[cfg.Environment] {
		return fmt.Errorf("invalid ENVIRONMENT: %s", cfg.Environment)
	}

	if cfg.ReadTimeout <= 0 || cfg.WriteTimeout <= 0 || cfg.IdleTimeout <= 0 {
		return fmt.Errorf("server timeouts must be positive")
	}

	if cfg.StaticDir == "" {
		return fmt.Errorf("STATIC_DIR cannot be empty")
	}

	u, err := url.ParseRequestURI(cfg.CatalogAPIBaseURL)
	if err != nil {
		return fmt.Errorf("CATALOG_API_BASE_URL is not a valid URL: %s", cfg.CatalogAPIBaseURL)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("CATALOG_API_BASE_URL must use http or https: %s", cfg.CatalogAPIBaseURL)
	}
	if u.Hostname() == "" {
		return fmt.Errorf("CATALOG_API_BASE_URL does not include a host: %s", cfg.CatalogAPIBaseURL)
	}
	cfg.CatalogOrigin = fmt.Sprintf("%s://%s", u.Scheme, u.Host)

	if cfg.Environment == "production" {
		if len(cfg.AllowedOrigins) == 0 {
			return fmt.Errorf("ALLOWED_ORIGINS must be set in %v", cfg.Environment)
		}
		if cfg.AllowedOrigins[0] == "*" {
			return fmt.Errorf("ALLOWED_ORIGINS must not be set to '*' in %v", cfg.Environment)
		}
	}

	// default to all origins when not in production
	if len(cfg.AllowedOrigins) == 0 {
		cfg.AllowedOrigins = []string{"*"}
	}
	return nil
}

// createCORSConfigs creates the CORS configurations based on the server config
func createCORSConfigs(cfg *ServerEnvironment) (*CORSConfigs, error) {
	// Trim whitespace from all origins
	origins := make([]string, len(cfg.AllowedOrigins))
	for i, origin := range cfg.AllowedOrigins {
		origins[i] = strings.TrimSpace(origin)
	}

	publicConfig := cors.Config{
		Origins: origins,
		Methods: []string{
			http.MethodGet,
			http.MethodHead,
			http.MethodOptions,
		},
		RequestHeaders: []string{
			"Accept",
			"Content-Type",
			"X-Requested-With",
		},
		MaxAgeInSeconds: CORSMaxAgeInSeconds,
	}

	publicMiddleware, err := cors.NewMiddleware(publicConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create public CORS middleware: %w", err)
	}

	return &CORSConfigs{Public: publicMiddleware}, nil
}
