package galleria

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"

	"github.com/eringen/galleria/views"
)

// SiteConfig holds all configuration for a galleria site.
type SiteConfig struct {
	Name string `env:"SITE_NAME" envDefault:"Galleria"`              // Site name
	URL  string `env:"SITE_URL" envDefault:"http://localhost:3000"` // Canonical URL

	Addr         string `env:"ADDR" envDefault:":3000"`                       // Listen address
	DatabasePath string `env:"DATABASE_PATH" envDefault:"data/galleria.db"` // SQLite path

	AdminPassword string `env:"ADMIN_PASSWORD"`       // Required: admin login password
	SessionSecret string `env:"ADMIN_SESSION_SECRET"` // Required: session encryption secret
	CookieSecure  bool   `env:"COOKIE_SECURE"`        // Set true for HTTPS

	// IngestToken guards the message webhook. Empty disables it.
	IngestToken string `env:"INGEST_TOKEN"`

	PostCacheTTL time.Duration `env:"POST_CACHE_TTL" envDefault:"5m"`
}

// LoadConfig reads SiteConfig from the environment.
func LoadConfig() (SiteConfig, error) {
	var cfg SiteConfig
	if err := env.Parse(&cfg); err != nil {
		return SiteConfig{}, fmt.Errorf("galleria: parse env: %w", err)
	}
	cfg.setDefaults()
	return cfg, nil
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Galleria"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	c.URL = strings.TrimSuffix(c.URL, "/")
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/galleria.db"
	}
	if c.PostCacheTTL == 0 {
		c.PostCacheTTL = 5 * time.Minute
	}
}

func (c SiteConfig) views() views.SiteConfig {
	return views.SiteConfig{Name: c.Name, URL: c.URL}
}

// Option configures additional App behavior.
type Option func(*App)

// WithCustomRoutes registers additional routes on the Echo instance.
// The callback receives the App before the server starts.
func WithCustomRoutes(fn func(*App)) Option {
	return func(a *App) {
		a.customRoutes = append(a.customRoutes, fn)
	}
}

// WithStaticDir sets the directory for user-owned static assets and
// uploads (default "public").
func WithStaticDir(dir string) Option {
	return func(a *App) {
		a.staticDir = dir
	}
}

// WithStore uses an already opened store instead of opening DatabasePath.
func WithStore(s *Store) Option {
	return func(a *App) {
		a.Store = s
	}
}

// WithShell replaces the embedded page shell the gallery is mounted into.
func WithShell(shell string) Option {
	return func(a *App) {
		a.shell = shell
	}
}
