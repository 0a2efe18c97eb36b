package inkwell

import (
	"time"

	"github.com/rs/zerolog"
)

// SiteConfig holds all configuration for an inkwell site.
type SiteConfig struct {
	Name        string // Site name (default "Inkwell")
	URL         string // Canonical URL (default "http://localhost:3000")
	Description string // Site description for the feed and meta tags

	Addr         string // Listen address (default ":3000")
	DatabasePath string // SQLite path (default "data/inkwell.db")
	DatabaseURL  string // Postgres URL; when set it replaces SQLite

	SessionSecret string // Cookie session secret; generated per process when empty
	CookieSecure  bool   // Set true for HTTPS

	MaxUploadSize int64         // Per-image upload limit in bytes (default 10MB)
	SubmissionTTL time.Duration // Lifetime of a compose form token (default 2h)

	LogLevel  string // debug, info, warn, error (default "info")
	LogFormat string // "json" or "pretty" (default "json")
}

func (c *SiteConfig) setDefaults() {
	if c.Name == "" {
		c.Name = "Inkwell"
	}
	if c.URL == "" {
		c.URL = "http://localhost:3000"
	}
	if c.Addr == "" {
		c.Addr = ":3000"
	}
	if c.DatabasePath == "" {
		c.DatabasePath = "data/inkwell.db"
	}
	if c.MaxUploadSize <= 0 {
		c.MaxUploadSize = 10 << 20
	}
	if c.SubmissionTTL <= 0 {
		c.SubmissionTTL = 2 * time.Hour
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.LogFormat == "" {
		c.LogFormat = "json"
	}
}

// Option configures additional App behavior.
type Option func(*App)

// WithStore replaces the slot store opened by Start (useful for tests and for
// callers that manage their own database).
func WithStore(s SlotStore) Option {
	return func(a *App) {
		a.slots = s
	}
}

// WithSeeds replaces the built-in seed posts.
func WithSeeds(posts []Post) Option {
	return func(a *App) {
		a.seeds = posts
		a.seedsSet = true
	}
}

// WithClock overrides the time source used when publishing.
func WithClock(now func() time.Time) Option {
	return func(a *App) {
		a.now = now
	}
}

// WithLogger replaces the logger built from LogLevel and LogFormat.
func WithLogger(l zerolog.Logger) Option {
	return func(a *App) {
		a.Log = l
		a.logSet = true
	}
}
