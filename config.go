package portfolio

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/labstack/echo/v4"

	"github.com/eringen/portfolio/kvstore"
)

// SiteConfig holds all configuration for a portfolio site. LoadConfig fills
// it from the environment; the env tags name the variables.
type SiteConfig struct {
	Name        string `env:"SITE_NAME"`        // Site owner's display name (default "Portfolio")
	URL         string `env:"SITE_URL"`         // Canonical URL (default "http://localhost:3000")
	Description string `env:"SITE_DESCRIPTION"` // Meta description
	Author      string `env:"SITE_AUTHOR"`      // Author name for JSON-LD, defaults to Name

	Addr              string `env:"ADDR"`                // Listen address (default ":3000")
	DatabasePath      string `env:"DATABASE_PATH"`       // SQLite path (default "data/portfolio.db")
	StorageQuotaBytes int64  `env:"STORAGE_QUOTA_BYTES"` // Total stored bytes allowed (default 5 MiB, -1 for unlimited)

	AdminPassword     string        `env:"ADMIN_PASSWORD"`      // Plain admin password
	AdminPasswordHash string        `env:"ADMIN_PASSWORD_HASH"` // bcrypt hash; takes precedence over AdminPassword
	SessionSecret     string        `env:"SESSION_SECRET"`      // Required: session encryption secret
	SessionTTL        time.Duration `env:"SESSION_TTL"`         // Admin session lifetime (default 12h)
	CookieSecure      bool          `env:"COOKIE_SECURE"`       // Set true for HTTPS

	SnapshotTTL time.Duration `env:"SNAPSHOT_TTL"` // Public page content cache TTL (default 1min)
	LogLevel    string        `env:"LOG_LEVEL"`    // debug, info, warn, error (default info)
}

// LoadConfig reads a SiteConfig from the environment and applies defaults.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("portfolio: parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Portfolio"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Author == "" {
		c.Author = c.Name
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/portfolio.db"
	}
	if c.StorageQuotaBytes == 0 {
		c.StorageQuotaBytes = 5 << 20
	}
	if c.StorageQuotaBytes < 0 {
		c.StorageQuotaBytes = 0
	}
	if c.SessionTTL == 0 {
		c.SessionTTL = 12 * time.Hour
	}
	if c.SnapshotTTL == 0 {
		c.SnapshotTTL = time.Minute
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
}

func (c *SiteConfig) validate() error {
	if c.AdminPassword == "" && c.AdminPasswordHash == "" {
		return errors.New("portfolio: ADMIN_PASSWORD or ADMIN_PASSWORD_HASH is required")
	}
	if c.SessionSecret == "" {
		return errors.New("portfolio: SESSION_SECRET is required")
	}
	return nil
}

// Option configures additional App behavior.
type Option func(*App)

// WithStorage replaces the SQLite store opened from DatabasePath. The App
// does not close a store supplied this way.
func WithStorage(s kvstore.Storage) Option {
	return func(a *App) {
		a.storage = s
	}
}

// WithLogger sets the structured logger (default: tint handler on stderr).
func WithLogger(l *slog.Logger) Option {
	return func(a *App) {
		a.Logger = l
	}
}

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App after the built-in routes are set up.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithEcho lets tests and embedders supply a preconfigured Echo instance.
func WithEcho(e *echo.Echo) Option {
	return func(a *App) {
		a.Echo = e
	}
}
