package config

import (
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which needs Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestLoad_Defaults(t *testing.T) {
	chdir(t, t.TempDir())

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, []string{"apitest"}, cfg.Auth.APIKeys)
	assert.Equal(t, []string{DefaultCatalogURL}, cfg.Catalog.URLs)
	assert.Equal(t, 10, cfg.Catalog.DefaultStock)
	assert.Equal(t, "cart_session", cfg.Session.CookieName)
	assert.Equal(t, 2*time.Hour, cfg.Session.TTL)
	assert.False(t, cfg.Tracing.Enabled)
	assert.Equal(t, []string{"http://localhost:3000"}, cfg.CORS.AllowedOrigins)
	assert.True(t, cfg.CORS.AllowCredentials())
}

func TestLoad_FromEnv(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("API_KEYS", "one, two ,")
	t.Setenv("CATALOG_URLS", "static")
	t.Setenv("CATALOG_DEFAULT_STOCK", "3")
	t.Setenv("CATALOG_REFRESH_INTERVAL", "5m")
	t.Setenv("SESSION_TTL", "30m")
	t.Setenv("TRACING_ENABLED", "true")
	t.Setenv("LOG_LEVEL", "debug")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Server.Port)
	assert.Equal(t, []string{"one", "two"}, cfg.Auth.APIKeys)
	assert.True(t, cfg.Catalog.Static())
	assert.Equal(t, 3, cfg.Catalog.DefaultStock)
	assert.Equal(t, 5*time.Minute, cfg.Catalog.RefreshInterval)
	assert.Equal(t, 30*time.Minute, cfg.Session.TTL)
	assert.True(t, cfg.Tracing.Enabled)
}

func TestCORSConfig_AllowCredentials(t *testing.T) {
	tests := []struct {
		name    string
		origins []string
		want    bool
	}{
		{"explicit origins", []string{"https://shop.example.com", "http://localhost:3000"}, true},
		{"wildcard", []string{"*"}, false},
		{"wildcard among others", []string{"https://shop.example.com", "*"}, false},
		{"none", nil, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CORSConfig{AllowedOrigins: tt.origins}.AllowCredentials())
		})
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		return &Config{
			Server:   ServerConfig{Port: "8080"},
			Auth:     AuthConfig{APIKeys: []string{"k"}},
			Catalog:  CatalogConfig{URLs: []string{"https://example.com/products"}, MaxBytes: 1},
			Session:  SessionConfig{CookieName: "c", TTL: time.Minute},
			LogLevel: "info",
		}
	}

	tests := []struct {
		name    string
		mod     func(c *Config)
		wantErr bool
	}{
		{"valid", func(c *Config) {}, false},
		{"missing port", func(c *Config) { c.Server.Port = "" }, true},
		{"no api keys", func(c *Config) { c.Auth.APIKeys = nil }, true},
		{"bad log level", func(c *Config) { c.LogLevel = "loud" }, true},
		{"no catalog", func(c *Config) { c.Catalog.URLs = nil }, true},
		{"relative catalog url", func(c *Config) { c.Catalog.URLs = []string{"/products"} }, true},
		{"negative default stock", func(c *Config) { c.Catalog.DefaultStock = -1 }, true},
		{"zero ttl", func(c *Config) { c.Session.TTL = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid()
			tt.mod(c)
			err := c.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
