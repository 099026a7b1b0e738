package config

import (
	"fmt"
	"net/url"
	"os"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// DefaultCatalogURL is the public product catalog used when CATALOG_URLS is unset.
const DefaultCatalogURL = "https://fakestoreapi.com/products"

// Config holds all configuration for the application
// Following 12-factor app principles, all config is loaded from environment variables
type Config struct {
	Server   ServerConfig
	Auth     AuthConfig
	Catalog  CatalogConfig
	Session  SessionConfig
	CORS     CORSConfig
	Tracing  TracingConfig
	LogLevel string
}

type ServerConfig struct {
	Port            string
	Host            string
	ReadTimeout     int
	WriteTimeout    int
	ShutdownTimeout int
}

type AuthConfig struct {
	APIKeys []string // Valid API keys for catalog administration
}

type CatalogConfig struct {
	// URLs of JSON product arrays. "static" selects the built-in menu.
	URLs            []string
	FetchTimeout    time.Duration
	MaxBytes        int64
	DefaultStock    int
	RefreshInterval time.Duration // zero disables periodic refresh
}

// Static reports whether the built-in menu should be served instead of a
// remote catalog.
func (c CatalogConfig) Static() bool {
	return len(c.URLs) == 1 && c.URLs[0] == "static"
}

type SessionConfig struct {
	CookieName string
	TTL        time.Duration
}

type CORSConfig struct {
	AllowedOrigins []string
}

// AllowCredentials reports whether browsers may send the session cookie
// cross-origin. It is off whenever any origin is allowed.
func (c CORSConfig) AllowCredentials() bool {
	return len(c.AllowedOrigins) > 0 && !slices.Contains(c.AllowedOrigins, "*")
}

type TracingConfig struct {
	Enabled     bool
	ServiceName string
}

// Load reads configuration from environment variables, after applying a
// .env file from the working directory when one exists.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("failed to read .env: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Port:            getEnv("PORT", "8080"),
			Host:            getEnv("HOST", "0.0.0.0"),
			ReadTimeout:     getEnvAsInt("READ_TIMEOUT", 15),
			WriteTimeout:    getEnvAsInt("WRITE_TIMEOUT", 15),
			ShutdownTimeout: getEnvAsInt("SHUTDOWN_TIMEOUT", 30),
		},
		Auth: AuthConfig{
			APIKeys: getEnvAsSlice("API_KEYS", []string{"apitest"}),
		},
		Catalog: CatalogConfig{
			URLs:            getEnvAsSlice("CATALOG_URLS", []string{DefaultCatalogURL}),
			FetchTimeout:    getEnvAsDuration("CATALOG_FETCH_TIMEOUT", 30*time.Second),
			MaxBytes:        int64(getEnvAsInt("CATALOG_MAX_BYTES", 10<<20)),
			DefaultStock:    getEnvAsInt("CATALOG_DEFAULT_STOCK", 10),
			RefreshInterval: getEnvAsDuration("CATALOG_REFRESH_INTERVAL", 0),
		},
		Session: SessionConfig{
			CookieName: getEnv("SESSION_COOKIE", "cart_session"),
			TTL:        getEnvAsDuration("SESSION_TTL", 2*time.Hour),
		},
		CORS: CORSConfig{
			AllowedOrigins: getEnvAsSlice("CORS_ALLOWED_ORIGINS", []string{"http://localhost:3000"}),
		},
		Tracing: TracingConfig{
			Enabled:     getEnvAsBool("TRACING_ENABLED", false),
			ServiceName: getEnv("SERVICE_NAME", "storefront"),
		},
		LogLevel: getEnv("LOG_LEVEL", "info"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, nil
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf("PORT is required")
	}

	if len(c.Auth.APIKeys) == 0 {
		return fmt.Errorf("at least one API key must be configured")
	}

	validLogLevels := map[string]bool{"debug": true, "info": true, "warn": true, "error": true}
	if !validLogLevels[strings.ToLower(c.LogLevel)] {
		return fmt.Errorf("invalid log level: %s (must be debug, info, warn, or error)", c.LogLevel)
	}

	if len(c.Catalog.URLs) == 0 {
		return fmt.Errorf("CATALOG_URLS must name at least one URL or \"static\"")
	}
	if !c.Catalog.Static() {
		for _, raw := range c.Catalog.URLs {
			u, err := url.Parse(raw)
			if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
				return fmt.Errorf("invalid catalog URL: %q", raw)
			}
		}
	}

	if c.Catalog.DefaultStock < 0 {
		return fmt.Errorf("CATALOG_DEFAULT_STOCK must not be negative")
	}
	if c.Catalog.MaxBytes <= 0 {
		return fmt.Errorf("CATALOG_MAX_BYTES must be positive")
	}
	if c.Session.TTL <= 0 {
		return fmt.Errorf("SESSION_TTL must be positive")
	}
	if c.Session.CookieName == "" {
		return fmt.Errorf("SESSION_COOKIE is required")
	}

	return nil
}

// Helper functions for reading environment variables

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.Atoi(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsBool(key string, defaultValue bool) bool {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := strconv.ParseBool(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	value, err := time.ParseDuration(valueStr)
	if err != nil {
		return defaultValue
	}
	return value
}

func getEnvAsSlice(key string, defaultValue []string) []string {
	valueStr := os.Getenv(key)
	if valueStr == "" {
		return defaultValue
	}
	parts := strings.Split(valueStr, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
