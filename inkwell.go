// Package inkwell is a small personal blog: a filterable post listing, a detail
// page and a compose form whose rich-text content is sanitized to a fixed
// allow-list before it is stored.
//
// Pages are rendered by templ components supplied through ViewFuncs; the views
// package provides defaults.
package inkwell

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/a-h/templ"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

// ViewFuncs holds the templ components the handlers render.
type ViewFuncs struct {
	Home        func(page HomePage) templ.Component
	Post        func(page PostPage) templ.Component
	Create      func(page CreatePage) templ.Component
	NotFound    func(chrome Chrome) templ.Component
	ServerError func(chrome Chrome) templ.Component
}

// App wires the slot store, post index, handlers and middleware together.
type App struct {
	Config SiteConfig
	Echo   *echo.Echo
	Log    zerolog.Logger
	Views  ViewFuncs
	Posts  *PostIndex

	slots     SlotStore
	repo      *PostRepository
	publisher *Publisher
	ledger    *SubmissionLedger
	themes    *ThemeStore
	seeds     []Post
	seedsSet  bool
	now       func() time.Time
	logSet    bool
}

// New creates an App with the given configuration and views.
func New(cfg SiteConfig, views ViewFuncs, opts ...Option) *App {
	cfg.setDefaults()

	a := &App{
		Config: cfg,
		Echo:   echo.New(),
		Views:  views,
		now:    time.Now,
	}
	a.Echo.HideBanner = true
	a.Echo.HidePort = true

	for _, opt := range opts {
		opt(a)
	}
	if !a.logSet {
		a.Log = NewLogger(os.Stderr, cfg.LogLevel, cfg.LogFormat)
	}
	return a
}

// Init opens storage (unless WithStore was given), loads posts and registers
// middleware and routes. After Init the App can serve requests through Echo.
func (a *App) Init(ctx context.Context) error {
	if a.Config.SessionSecret == "" {
		secret, err := randomSecret()
		if err != nil {
			return fmt.Errorf("inkwell: generate session secret: %w", err)
		}
		a.Config.SessionSecret = secret
		a.Log.Warn().Msg("SESSION_SECRET not set, using a per-process secret")
	}

	if a.slots == nil {
		slots, err := OpenSlotStore(ctx, a.Config)
		if err != nil {
			return fmt.Errorf("inkwell: init store: %w", err)
		}
		a.slots = slots
	}

	if !a.seedsSet {
		seeds, err := LoadSeeds()
		if err != nil {
			return fmt.Errorf("inkwell: load seeds: %w", err)
		}
		a.seeds = seeds
	}

	a.repo = NewPostRepository(a.slots, a.Log)
	a.Posts = NewPostIndex(a.repo, a.seeds)
	if err := a.Posts.Reload(ctx); err != nil {
		return fmt.Errorf("inkwell: load posts: %w", err)
	}
	a.publisher = NewPublisher(a.repo, a.Posts, a.now, a.Log)
	a.themes = NewThemeStore(a.slots)
	a.ledger = NewSubmissionLedger(a.Config.SubmissionTTL)

	a.setupMiddleware()
	a.setupRoutes()
	return nil
}

// Start initializes the App and serves HTTP until the server stops.
func (a *App) Start() error {
	if err := a.Init(context.Background()); err != nil {
		return err
	}
	a.Log.Info().Str("addr", a.Config.Addr).Msg("listening")
	if err := a.Echo.Start(a.Config.Addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (a *App) setupRoutes() {
	e := a.Echo

	e.GET("/public/*", echo.WrapHandler(http.StripPrefix("/public/", http.FileServer(http.FS(publicFS())))))
	e.GET("/feed.xml", a.handleFeed)
	e.GET("/sitemap.xml", a.handleSitemap)

	e.GET("/", a.handleHome)
	e.GET("/post", a.handlePost)
	e.GET("/create", a.handleCreate)
	e.POST("/create", a.handleCreateSubmit)
	e.POST("/editor/image", a.handleEditorImage)
	e.POST("/theme", a.handleTheme)
}

// Close stops background work and closes the store.
func (a *App) Close() error {
	if a.ledger != nil {
		a.ledger.Stop()
	}
	if a.slots != nil {
		return a.slots.Close()
	}
	return nil
}

// OpenSlotStore opens Postgres when DatabaseURL is set, otherwise SQLite at
// DatabasePath.
func OpenSlotStore(ctx context.Context, cfg SiteConfig) (SlotStore, error) {
	if cfg.DatabaseURL != "" {
		return NewPgStore(ctx, cfg.DatabaseURL)
	}
	return NewStore(cfg.DatabasePath)
}

func randomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}

// EnvOr returns the value of the environment variable key, or fallback if empty.
func EnvOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
